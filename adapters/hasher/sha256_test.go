package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	h := New()
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", h.Hash([]byte("hello")))
	assert.Equal(t, h.Hash([]byte("same")), h.Hash([]byte("same")))
	assert.Len(t, h.Hash(nil), 64)
}
