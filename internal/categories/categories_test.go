package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("sports"))
	assert.True(t, IsKnown(OtherKey))
	assert.False(t, IsKnown("bogus"))
	assert.False(t, IsKnown(""))
}

func TestRegistry(t *testing.T) {
	for key, c := range Registry {
		assert.NotEmpty(t, c.Label, key)
		assert.NotEmpty(t, c.Color, key)
	}
}
