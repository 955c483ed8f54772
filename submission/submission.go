// Package submission tracks one form submission through its states.
package submission

import (
	"errors"
	"fmt"

	"Dealership/forms"

	"go.uber.org/zap"
)

type State string

const (
	Idle            State = "idle"
	Validating      State = "validating"
	UploadingImages State = "uploading-images"
	Persisting      State = "persisting"
	Succeeded       State = "success"
	Failed          State = "failed"
)

var ErrInvalidTransition = errors.New("invalid submission transition")

var transitions = map[State][]State{
	Idle:            {Validating},
	Validating:      {UploadingImages, Persisting, Failed},
	UploadingImages: {Persisting, Failed},
	Persisting:      {Succeeded, Failed},
}

type Attempt struct {
	flow    string
	state   State
	history []State
	logger  *zap.Logger
}

// Begin starts a submission of the named flow and moves it to Validating.
func Begin(flow string, logger *zap.Logger) *Attempt {
	a := &Attempt{
		flow:    flow,
		state:   Idle,
		history: []State{Idle},
		logger:  logger.With(zap.String("flow", flow)),
	}
	_ = a.Advance(Validating)
	return a
}

func (a *Attempt) State() State {
	return a.state
}

func (a *Attempt) History() []State {
	history := make([]State, len(a.history))
	copy(history, a.history)
	return history
}

func (a *Attempt) Advance(next State) error {
	for _, allowed := range transitions[a.state] {
		if allowed == next {
			a.state = next
			a.history = append(a.history, next)
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.state, next)
}

// Fail ends the attempt and returns err so callers can write
// `return attempt.Fail(err)`.
func (a *Attempt) Fail(err error) error {
	step := a.state
	if advanceErr := a.Advance(Failed); advanceErr != nil {
		a.logger.Error("submission failed in a terminal state", zap.String("state", string(step)), zap.Error(err))
		return err
	}

	var validationErr *forms.ValidationError
	if errors.As(err, &validationErr) {
		a.logger.Info("submission rejected", zap.Any("fields", validationErr.Fields))
		return err
	}
	a.logger.Error("submission failed", zap.String("step", string(step)), zap.Error(err))
	return err
}

func (a *Attempt) Succeed() error {
	if err := a.Advance(Succeeded); err != nil {
		return err
	}
	a.logger.Info("submission succeeded")
	return nil
}
