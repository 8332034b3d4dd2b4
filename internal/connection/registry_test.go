package connection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetName(t *testing.T) {
	r := NewRegistry()
	r.SetName("conn-1", "Ana")

	assert.True(t, r.HasName("conn-1"))
	assert.Equal(t, "Ana", r.GetName("conn-1"))
}

func TestUnknownIDReturnsDefaults(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.HasName("missing"))
	assert.False(t, r.HasImages("missing"))
	assert.Equal(t, "", r.GetName("missing"))
	assert.Empty(t, r.GetImages("missing"))
}

func TestHasImagesRequiresNonEmptySet(t *testing.T) {
	r := NewRegistry()

	r.SetImages("conn-1", []string{})
	assert.False(t, r.HasImages("conn-1"))

	r.SetImages("conn-1", []string{"img-a"})
	assert.True(t, r.HasImages("conn-1"))
}

func TestGetImagesReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.SetImages("conn-1", []string{"img-a", "img-b"})

	imgs := r.GetImages("conn-1")
	imgs[0] = "tampered"

	assert.Equal(t, []string{"img-a", "img-b"}, r.GetImages("conn-1"))
}

func TestClearRemovesAllState(t *testing.T) {
	r := NewRegistry()
	r.SetName("conn-1", "Ana")
	r.SetImages("conn-1", []string{"img-a"})

	r.Clear("conn-1")

	assert.False(t, r.HasName("conn-1"))
	assert.False(t, r.HasImages("conn-1"))
}
