package models

import "time"

// Position is the role a profile plays in the workshop programme.
type Position string

const (
	PositionCoordinator Position = "coordinator"
	PositionInstructor  Position = "instructor"
)

// Positions lists the valid choices in display order.
var Positions = []Position{PositionCoordinator, PositionInstructor}

// Label is the human readable name shown in choice lists.
func (p Position) Label() string {
	switch p {
	case PositionCoordinator:
		return "Coordinator"
	case PositionInstructor:
		return "Instructor"
	default:
		return string(p)
	}
}

// Valid reports whether p is one of Positions.
func (p Position) Valid() bool {
	for _, v := range Positions {
		if p == v {
			return true
		}
	}
	return false
}

// Profile carries the role specific data of exactly one Account.
type Profile struct {
	ID            string
	AccountID     string
	Institute     string
	Department    string
	Position      Position
	PhoneNumber   string
	ActivationKey string
	KeyExpiryTime time.Time
	CreatedAt     time.Time
}
