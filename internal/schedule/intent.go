package schedule

import "github.com/google/uuid"

// Intent is the sealed set of things a user can drop onto a calendar
// day. Each variant carries only the fields relevant to it, so no
// runtime type inspection beyond a type switch is ever needed.
type Intent interface {
	isIntent()
}

// OperatorRef selects an operator as the active assignment context.
type OperatorRef struct {
	OperatorID uuid.UUID
}

// CustomerRef schedules a new visit at a customer's main location.
type CustomerRef struct {
	CustomerID uuid.UUID
}

// BranchRef schedules a new visit at a specific branch of a customer.
type BranchRef struct {
	BranchID   uuid.UUID
	CustomerID uuid.UUID
}

// ExistingVisitRef moves an already scheduled visit to another day.
type ExistingVisitRef struct {
	VisitID uuid.UUID
}

func (OperatorRef) isIntent()      {}
func (CustomerRef) isIntent()      {}
func (BranchRef) isIntent()        {}
func (ExistingVisitRef) isIntent() {}
