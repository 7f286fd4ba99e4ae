package retrogfx

import (
	"errors"
	"image"
	"image/color"
)

// ErrNotImplemented is returned by Parse or Generate when a handler does not
// implement the operation. Seeing it means an abstract handler was wired into
// a code path that needs a concrete one.
var ErrNotImplemented = errors.New("retrogfx: not implemented")

// Confidence is the outcome of content-based format identification.
type Confidence int

const (
	// NoMatch means the content is definitely not this format.
	NoMatch Confidence = iota
	// PossibleMatch means the content is plausible but the format carries
	// no signature strong enough to be certain.
	PossibleMatch
	// DefiniteMatch means the content is unambiguously this format.
	DefiniteMatch
)

func (c Confidence) String() string {
	switch c {
	case DefiniteMatch:
		return "definite"
	case PossibleMatch:
		return "possible"
	}
	return "no match"
}

// Limits holds the structural constraints of a format. A zero value means
// unbounded.
type Limits struct {
	MaxFilenameLen int
	MaxFileCount   int
}

// Descriptor is the static metadata describing a handler. It is constructed
// once and never mutated.
type Descriptor struct {
	// ID uniquely identifies the handler within a registry.
	ID string
	// Title is the human-readable format name.
	Title string
	// Games lists titles known to use this format.
	Games []string
	// Glob lists filename patterns typically used by this format.
	Glob []string
	// Limits are the structural constraints enforced by CheckLimits.
	Limits Limits
}

// Asset is the canonical decoded form of a file. Exactly one field is set:
// Image for graphics formats, Palette for standalone palette formats.
type Asset struct {
	Image   *image.Paletted
	Palette color.Palette
}

// Handler is the contract every format implementation satisfies.
//
// Handlers are stateless; they neither retain references to the content they
// are given nor share buffers between invocations, so a single handler value
// may be used from multiple goroutines.
type Handler interface {
	// Metadata returns the descriptor for this format. It is constant per
	// handler.
	Metadata() *Descriptor

	// Identify inspects content and reports whether it is this format.
	Identify(content []byte) Confidence

	// Parse decodes content into the canonical model. supps carries the
	// contents of any supplementary files previously declared by Supps,
	// keyed by supplementary id; it may be nil.
	Parse(content []byte, supps map[string][]byte) (*Asset, error)

	// Generate encodes the canonical model back into the on-disk format.
	// Callers must run CheckLimits first; skipping it may produce a
	// structurally invalid file rather than an error.
	Generate(asset *Asset) ([]byte, error)

	// CheckLimits validates a collection of entries against the format's
	// limits, returning blocking issues as data. An empty result means no
	// blocking problems.
	CheckLimits(c Collection) []string

	// Supps maps supplementary ids to the filenames of companion files
	// this format needs, derived from the primary filename and/or content.
	// The returned filenames are matched case-insensitively by the caller.
	// A nil result means no supplementary files.
	Supps(name string, content []byte) map[string]string
}

// UnimplementedHandler provides defaults for the optional Handler operations.
// Concrete handlers embed it and override what they support; the Parse and
// Generate defaults fail with ErrNotImplemented rather than silently
// producing garbage.
type UnimplementedHandler struct{}

// Identify reports NoMatch.
func (UnimplementedHandler) Identify([]byte) Confidence { return NoMatch }

// Parse fails with ErrNotImplemented.
func (UnimplementedHandler) Parse([]byte, map[string][]byte) (*Asset, error) {
	return nil, ErrNotImplemented
}

// Generate fails with ErrNotImplemented.
func (UnimplementedHandler) Generate(*Asset) ([]byte, error) {
	return nil, ErrNotImplemented
}

// Supps reports no supplementary files.
func (UnimplementedHandler) Supps(string, []byte) map[string]string { return nil }
