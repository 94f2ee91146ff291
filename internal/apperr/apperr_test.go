package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "gone")))

	// Wrapped application errors keep their code.
	wrapped := fmt.Errorf("loading job: %w", New(CodeForbidden, "not yours"))
	assert.Equal(t, CodeForbidden, CodeOf(wrapped))

	// Anything else is a store error.
	assert.Equal(t, CodeStore, CodeOf(errors.New("disk on fire")))
}

func TestIs(t *testing.T) {
	err := Wrap(CodeStore, "query failed", errors.New("io timeout"))
	assert.True(t, Is(err, CodeStore))
	assert.False(t, Is(err, CodeNotFound))
	assert.False(t, Is(nil, CodeStore))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("io timeout")
	err := Wrap(CodeStore, "query failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store_error")
	assert.Contains(t, err.Error(), "io timeout")
}
