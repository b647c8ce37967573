package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid marks writes rejected at the model boundary, such as negative
// price, amount or rating values.
var ErrInvalid = errors.New("validation rejected")

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("field %s failed on %q: %w", first.Field(), first.Tag(), ErrInvalid)
		}
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	return nil
}
