package usecase

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/pkg/pricing"
)

// UpvoteOrderInput carries a validated vote order request.
type UpvoteOrderInput struct {
	Link     string  `validate:"required,url"`
	Service  int     `validate:"required,min=1,max=4"`
	Quantity int     `validate:"required,min=1,max=500"`
	Speed    float64 `validate:"required"`
}

// CommentOrderInput carries a validated comment order request.
type CommentOrderInput struct {
	Link    string `validate:"required,url"`
	Content string `validate:"required,min=1,max=10000"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validateUpvoteInput checks field constraints and the speed tier against the
// vendor catalog. Failures wrap ErrInvalidOrderInput.
func validateUpvoteInput(v *validator.Validate, input UpvoteOrderInput) error {
	if err := v.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrInvalidOrderInput, err)
	}
	if !pricing.KnownSpeed(input.Speed) {
		return fmt.Errorf("%w: unrecognized speed tier %v", domainErrors.ErrInvalidOrderInput, input.Speed)
	}
	return nil
}

func validateCommentInput(v *validator.Validate, input CommentOrderInput) error {
	if err := v.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrInvalidOrderInput, err)
	}
	return nil
}
