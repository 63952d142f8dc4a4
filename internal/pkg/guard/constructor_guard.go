// Package guard detects domain values that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built through its constructor. The zero value
// is "not constructed", so embedding a guard in a struct makes a zero-value
// instance of that struct fail validation.
//
// Example:
//
//	var ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft")
//
//	type Draft struct {
//	    weight kernel.Weight
//	    guard  guard.ConstructorGuard
//	}
//
//	func (d Draft) Validate() error {
//	    return d.guard.Validate(ErrDraftIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
