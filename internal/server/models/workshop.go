package models

import "time"

// WorkshopType is an entry of the workshop catalogue.
type WorkshopType struct {
	ID           string
	Name         string
	Description  string
	DurationDays int
}

// Workshop is an instructor's offer to run a WorkshopType. Recurrences holds
// an opaque recurrence rule that is stored as submitted.
type Workshop struct {
	ID             string
	InstructorID   string
	WorkshopTypeID string
	Recurrences    string
	CreatedAt      time.Time
}

// ProposalStatus tracks a coordinator's date proposal.
type ProposalStatus string

const ProposalPending ProposalStatus = "pending"

// ProposeWorkshopDate is a coordinator's request to host a workshop on a date.
type ProposeWorkshopDate struct {
	ID                   string
	CoordinatorID        string
	ConditionOne         bool
	ConditionTwo         bool
	ConditionThree       bool
	WorkshopTypeID       string
	ProposedWorkshopDate time.Time
	Status               ProposalStatus
	CreatedAt            time.Time
}
