package session

import "github.com/dmitrijs2005/ozo/internal/client/models"

// Status is the controller's progress.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	Status Status
	// User is the loaded profile, nil when anonymous or not yet loaded.
	User *models.User
	// Message is the display message of the last failure.
	Message string
}
