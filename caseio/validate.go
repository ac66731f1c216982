// SPDX-License-Identifier: MIT
package caseio

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// check runs the struct-tag rules on v and reports the first failure wrapped
// in sentinel.
func check(v any, sentinel error) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", sentinel, formatValidationError(err))
	}

	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	field := e.Namespace()

	switch e.Tag() {
	case "required", "required_if", "required_unless":
		return fmt.Errorf("%s: field is required", field)
	case "min", "gte":
		return fmt.Errorf("%s: must be at least %s", field, e.Param())
	case "max", "lte":
		return fmt.Errorf("%s: must not exceed %s", field, e.Param())
	case "gt":
		return fmt.Errorf("%s: must be greater than %s", field, e.Param())
	case "gtefield":
		return fmt.Errorf("%s: must not be below %s", field, e.Param())
	case "oneof":
		return fmt.Errorf("%s: %v is not one of [%s]", field, e.Value(), e.Param())
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}
