package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("gone")))
	assert.Equal(t, CodeDenied, CodeOf(Denied("no")))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestCodeOfWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", Authentication("bad session"))
	assert.Equal(t, CodeAuthentication, CodeOf(err))
}

func TestUnavailableUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("cache read failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
