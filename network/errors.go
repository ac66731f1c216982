// SPDX-License-Identifier: MIT
// Package network: sentinel error set.
//
// Every message is prefixed with "network: ..." for consistency. Callers branch
// with errors.Is; context is attached at the method boundary with
// fmt.Errorf("Method: ...: %w", ErrX).
//
// Taxonomy:
//   - Classification errors (wrap ErrClassification): bad object type, flag set
//     or property passed to SetFlags. State is never touched.
//   - Consistency errors come from the quantity registry (quantity.ErrUnknownQuantity)
//     and are rejected before any mask is written.
//   - Construction errors: bad references or parameters while assembling a network.

package network

import (
	"errors"
	"fmt"
)

// ErrClassification is the common root of every SetFlags token rejection.
var ErrClassification = errors.New("network: classification error")

var (
	// ErrInvalidObjectType indicates an object type that is unknown or carries no flaggable quantities.
	ErrInvalidObjectType = fmt.Errorf("network: invalid object type: %w", ErrClassification)

	// ErrInvalidFlagSet indicates an empty or malformed flag set.
	ErrInvalidFlagSet = fmt.Errorf("network: invalid flag set: %w", ErrClassification)

	// ErrUnknownProperty indicates property bits that are not defined for the object type.
	ErrUnknownProperty = fmt.Errorf("network: unknown property: %w", ErrClassification)
)

var (
	// ErrBusNotFound indicates a bus index or number that does not exist.
	ErrBusNotFound = errors.New("network: bus not found")

	// ErrComponentNotFound indicates a component index outside its collection.
	ErrComponentNotFound = errors.New("network: component not found")

	// ErrDuplicateBusNumber indicates AddBus with a number already in use.
	ErrDuplicateBusNumber = errors.New("network: duplicate bus number")

	// ErrPeriodOutOfRange indicates a period outside [0, NumPeriods).
	ErrPeriodOutOfRange = errors.New("network: period out of range")

	// ErrInvalidParams indicates NaN/Inf values or inconsistent limits in component parameters.
	ErrInvalidParams = errors.New("network: invalid component parameters")

	// ErrVectorLength indicates a values vector whose length differs from NumVars.
	ErrVectorLength = errors.New("network: vector length mismatch")
)
