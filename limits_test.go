package retrogfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLimitsFileCount(t *testing.T) {
	c := make(Collection, 5)
	for i := range c {
		c[i] = Entry{Name: "entry", NativeSize: 1}
	}

	issues := CheckLimits(c, Limits{MaxFileCount: 3})

	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "5")
	assert.Contains(t, issues[0], "3")
}

func TestCheckLimitsFilenameLen(t *testing.T) {
	const name = "twentycharacters.gfx" // 20 characters

	c := Collection{
		{Name: "short.gfx", NativeSize: 1},
		{Name: name, NativeSize: 1},
	}

	issues := CheckLimits(c, Limits{MaxFilenameLen: 12})

	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], name)
	assert.Contains(t, issues[0], "20")
	assert.Contains(t, issues[0], "12")
}

func TestCheckLimitsUnbounded(t *testing.T) {
	c := make(Collection, 1000)
	for i := range c {
		c[i] = Entry{Name: "averyveryveryverylongfilename.gfx", NativeSize: 1}
	}

	assert.Empty(t, CheckLimits(c, Limits{}))
}

func TestAdvisories(t *testing.T) {
	content := func() []byte { return []byte{0x00, 0x01} }

	c := Collection{
		{Name: "sized", NativeSize: 2, Content: content},
		{Name: "unsized", NativeSize: 0, Content: content},
		{Name: "empty", NativeSize: 0},
	}

	advisories := Advisories(c)

	require.Len(t, advisories, 1)
	assert.Contains(t, advisories[0], "unsized")

	// Advisories never count as blocking issues
	assert.Empty(t, CheckLimits(c, Limits{}))
}
