package schema

import (
	"errors"
	"sync"

	// Packages
	validator "github.com/go-playground/validator/v10"
	toolchat "github.com/mutablelogic/go-toolchat"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate checks the request against its struct constraints and returns
// an ErrBadParameter describing every failing field.
func (r *ChatCompletionRequest) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return toolchat.ErrBadParameter.With(err)
	}

	var result error
	for _, fieldErr := range fieldErrs {
		result = errors.Join(result, toolchat.ErrBadParameter.Withf("%s: failed %q constraint (%v)", fieldErr.Namespace(), fieldErr.Tag(), fieldErr.Value()))
	}
	return result
}
