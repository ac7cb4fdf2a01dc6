package gateway

import (
	"context"
	"errors"

	"github.com/cruxstack/email-validator-view-go/internal/types"
)

// ErrEmptyResult is returned when a gateway answers without a result body.
var ErrEmptyResult = errors.New("validation service returned an empty result")

// Gateway performs one remote validation of an email address.
type Gateway interface {
	Name() string
	Validate(ctx context.Context, email string) (*types.ValidationResult, error)
}

// Func adapts a plain function to the Gateway interface.
type Func func(ctx context.Context, email string) (*types.ValidationResult, error)

func (f Func) Name() string {
	return "func"
}

func (f Func) Validate(ctx context.Context, email string) (*types.ValidationResult, error) {
	return f(ctx, email)
}
