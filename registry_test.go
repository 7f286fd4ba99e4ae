package retrogfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeHandler struct {
	UnimplementedHandler
	desc       *Descriptor
	confidence Confidence
	identified bool
}

func (h *fakeHandler) Metadata() *Descriptor { return h.desc }

func (h *fakeHandler) Identify([]byte) Confidence {
	h.identified = true
	return h.confidence
}

func (h *fakeHandler) CheckLimits(c Collection) []string {
	return CheckLimits(c, h.desc.Limits)
}

func newFakeHandler(id string, confidence Confidence) *fakeHandler {
	return &fakeHandler{
		desc:       &Descriptor{ID: id, Title: id},
		confidence: confidence,
	}
}

func TestHandlerByID(t *testing.T) {
	a, b := newFakeHandler("a", NoMatch), newFakeHandler("b", NoMatch)
	r := NewRegistry(a, b)

	assert.Equal(t, b, r.Handler("b"))
	assert.Nil(t, r.Handler("c"))
}

func TestFindShortCircuit(t *testing.T) {
	a := newFakeHandler("a", PossibleMatch)
	b := newFakeHandler("b", DefiniteMatch)
	c := newFakeHandler("c", NoMatch)
	r := NewRegistry(a, b, c)

	found := r.Find([]byte{0x00})

	assert.Equal(t, []Handler{b}, found)
	assert.False(t, c.identified)
}

func TestFindAmbiguous(t *testing.T) {
	a := newFakeHandler("a", PossibleMatch)
	b := newFakeHandler("b", NoMatch)
	c := newFakeHandler("c", PossibleMatch)
	r := NewRegistry(a, b, c)

	found := r.Find([]byte{0x00})

	assert.Equal(t, []Handler{a, c}, found)
}

func TestFindNothing(t *testing.T) {
	r := NewRegistry(newFakeHandler("a", NoMatch))

	assert.Empty(t, r.Find([]byte{0x00}))
}

func TestHandlers(t *testing.T) {
	a, b := newFakeHandler("a", NoMatch), newFakeHandler("b", NoMatch)
	r := NewRegistry(a, b)

	assert.Equal(t, []Handler{a, b}, r.Handlers())
}

func TestUnimplementedHandler(t *testing.T) {
	var h UnimplementedHandler

	assert.Equal(t, NoMatch, h.Identify([]byte{0x00}))
	assert.Nil(t, h.Supps("foo.bar", nil))

	_, err := h.Parse([]byte{0x00}, nil)
	assert.Equal(t, ErrNotImplemented, err)

	_, err = h.Generate(&Asset{})
	assert.Equal(t, ErrNotImplemented, err)
}
