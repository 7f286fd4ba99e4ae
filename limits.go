package retrogfx

import "fmt"

// Entry is a named resource a handler will serialize.
type Entry struct {
	// Name is the filename the entry will be stored under.
	Name string
	// NativeSize is the declared size in bytes of the encoded entry. It is
	// used to preallocate output buffers; zero means unknown.
	NativeSize int
	// Content lazily produces the entry's encoded bytes. It may be nil for
	// entries that have not been realised yet.
	Content func() []byte
}

// Collection is an ordered set of entries, the unit that limits checking
// operates on.
type Collection []Entry

// CheckLimits validates c against limits, returning one human-readable issue
// per violation. It never mutates c and never panics; an empty result means
// no blocking problems. Handlers use it to implement their CheckLimits
// method with their own descriptor limits.
func CheckLimits(c Collection, limits Limits) []string {
	var issues []string

	if limits.MaxFileCount > 0 && len(c) > limits.MaxFileCount {
		issues = append(issues, fmt.Sprintf("%d files, but the format allows at most %d", len(c), limits.MaxFileCount))
	}

	if limits.MaxFilenameLen > 0 {
		for _, e := range c {
			if len(e.Name) > limits.MaxFilenameLen {
				issues = append(issues, fmt.Sprintf("filename %q is %d characters, but the format allows at most %d", e.Name, len(e.Name), limits.MaxFilenameLen))
			}
		}
	}

	return issues
}

// Advisories reports non-blocking performance diagnostics for c, kept
// separate from CheckLimits so they can never abort a valid write. They are
// intended for development-time logging only.
func Advisories(c Collection) []string {
	var advisories []string

	for _, e := range c {
		if e.NativeSize == 0 && e.Content != nil && len(e.Content()) > 0 {
			advisories = append(advisories, fmt.Sprintf("entry %q has content but no declared native size, defeating preallocation", e.Name))
		}
	}

	return advisories
}
