package unit

import "fmt"

// UnknownUnitError indicates that a referenced unit is not registered in a Context.
type UnknownUnitError struct {
	Unit string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unit: unknown unit %q", e.Unit)
}

// UnitAlreadyDefinedError indicates that Define was called with a name already in use.
type UnitAlreadyDefinedError struct {
	Unit string
}

func (e *UnitAlreadyDefinedError) Error() string {
	return fmt.Sprintf("unit: %q is already defined", e.Unit)
}

// UnknownReferentError indicates that Define referenced an undefined unit.
type UnknownReferentError struct {
	Referent string
}

func (e *UnknownReferentError) Error() string {
	return fmt.Sprintf("unit: unknown referent %q", e.Referent)
}

// IncommensurableUnitsError indicates that two units do not share a term,
// and so cannot be composed or converted between.
type IncommensurableUnitsError struct {
	A, B string
}

func (e *IncommensurableUnitsError) Error() string {
	return fmt.Sprintf("unit: %q and %q are incommensurable", e.A, e.B)
}

// UnknownContainerError indicates that a named container has not been registered.
type UnknownContainerError struct {
	Name string
}

func (e *UnknownContainerError) Error() string {
	return fmt.Sprintf("unit: unknown container %q", e.Name)
}
