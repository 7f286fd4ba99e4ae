package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for _, h := range Registry().Handlers() {
		id := h.Metadata().ID
		_, ok := seen[id]
		assert.False(t, ok, id)
		seen[id] = struct{}{}
	}
}

func TestSignatureWins(t *testing.T) {
	// A tiny ILBM whose total size is also a whole number of EGA tiles;
	// the signature must short-circuit any weaker candidates.
	content := make([]byte, 64)
	copy(content, "FORM")
	copy(content[8:], "ILBM")

	found := Registry().Find(content)

	require.Len(t, found, 1)
	assert.Equal(t, "ilbm", found[0].Metadata().ID)
}

func TestAmbiguityOrder(t *testing.T) {
	// 768 bytes of 6-bit values is both a plausible palette and a whole
	// number of tiles; candidates come back in reliability order.
	content := make([]byte, 768)
	for i := range content {
		content[i] = byte(i) & 0x3f
	}

	found := Registry().Find(content)

	require.Len(t, found, 2)
	assert.Equal(t, "vga-pal", found[0].Metadata().ID)
	assert.Equal(t, "ega-tiles", found[1].Metadata().ID)
}

func TestFindNothing(t *testing.T) {
	assert.Empty(t, Registry().Find([]byte{0x00, 0x01, 0x02}))
}

func TestRoundTripThroughRegistry(t *testing.T) {
	r := Registry()

	content := make([]byte, 32000)
	for i := range content {
		content[i] = byte(i * 3)
	}

	found := r.Find(content)
	require.NotEmpty(t, found)
	require.Equal(t, "ega-raw", found[0].Metadata().ID)

	asset, err := found[0].Parse(content, nil)
	require.NoError(t, err)

	got, err := r.Handler("ega-raw").Generate(asset)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}
