// SPDX-License-Identifier: MIT
package caseio

import "errors"

var (
	// ErrInvalidCase indicates a case document that fails decoding or validation.
	ErrInvalidCase = errors.New("caseio: invalid case")

	// ErrInvalidPlan indicates a plan document that fails decoding or validation.
	ErrInvalidPlan = errors.New("caseio: invalid plan")

	// ErrUnknownBus indicates a bus number referenced by a component but not declared.
	ErrUnknownBus = errors.New("caseio: unknown bus number")
)
