package submission

import (
	"errors"
	"testing"

	"Dealership/forms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAttemptHappyPathWithUploads(t *testing.T) {
	attempt := Begin("listing", zap.NewNop())
	assert.Equal(t, Validating, attempt.State())

	require.NoError(t, attempt.Advance(UploadingImages))
	require.NoError(t, attempt.Advance(Persisting))
	require.NoError(t, attempt.Succeed())

	assert.Equal(t, []State{Idle, Validating, UploadingImages, Persisting, Succeeded}, attempt.History())
}

func TestAttemptSkipsUploads(t *testing.T) {
	attempt := Begin("order", zap.NewNop())
	require.NoError(t, attempt.Advance(Persisting))
	require.NoError(t, attempt.Succeed())
	assert.Equal(t, Succeeded, attempt.State())
}

func TestAttemptFailReturnsError(t *testing.T) {
	attempt := Begin("trade-in", zap.NewNop())
	require.NoError(t, attempt.Advance(UploadingImages))

	uploadErr := errors.New("bucket unavailable")
	assert.Same(t, uploadErr, attempt.Fail(uploadErr))
	assert.Equal(t, Failed, attempt.State())

	assert.ErrorIs(t, attempt.Advance(Persisting), ErrInvalidTransition)
	assert.ErrorIs(t, attempt.Succeed(), ErrInvalidTransition)
}

func TestAttemptValidationFailure(t *testing.T) {
	attempt := Begin("order", zap.NewNop())
	err := &forms.ValidationError{Fields: map[string]string{"email": "Invalid email address"}}

	assert.Equal(t, error(err), attempt.Fail(err))
	assert.Equal(t, []State{Idle, Validating, Failed}, attempt.History())
}

func TestAttemptRejectsSkippingValidation(t *testing.T) {
	attempt := Begin("order", zap.NewNop())
	assert.ErrorIs(t, attempt.Advance(Succeeded), ErrInvalidTransition)
	assert.Equal(t, Validating, attempt.State())
}
