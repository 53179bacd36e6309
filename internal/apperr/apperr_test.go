package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchSentinels(t *testing.T) {
	assert.True(t, IsValidation(Validation("x", "bad")))
	assert.True(t, IsConflict(Conflict("x", "dup")))
	assert.True(t, IsAuth(Auth("x", "no")))
	assert.True(t, IsNotFound(NotFound("x")))
	assert.True(t, IsStore(Store("x", errors.New("boom"))))
	assert.False(t, IsConflict(Validation("x", "bad")))
}

func TestWrappedErrorKeepsKindAndMessage(t *testing.T) {
	err := fmt.Errorf("register: %w", Conflict("username_taken", "Username already exists"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "Username already exists", Message(err))
	assert.Equal(t, "username_taken", CodeOf(err))
}

func TestStoreErrorHidesCause(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := Store("booking_insert", cause)
	assert.Equal(t, GenericMessage, Message(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestUnclassifiedErrorIsStore(t *testing.T) {
	err := errors.New("plain")
	assert.Equal(t, KindStore, KindOf(err))
	assert.Equal(t, GenericMessage, Message(err))
	assert.Equal(t, "", CodeOf(err))
}
