package domain

import (
	"errors"
	"time"
)

// Mode represents how fast registry certificates are requested
type Mode string

const (
	ModeSimple Mode = "SIMPLE"
	ModeUrgent Mode = "URGENT"
)

// TaskStatus tells whether a request can still be filed in time
type TaskStatus string

const (
	TaskStatusOnTime TaskStatus = "ON_TIME"
	TaskStatusLate   TaskStatus = "LATE"
)

// Feasibility is the overall verdict of a closing plan
type Feasibility string

const (
	FeasibilityOK           Feasibility = "OK"
	FeasibilityCriticalRisk Feasibility = "CRITICAL_RISK"
)

// FeasibilityPlanRequest holds the inputs of a closing timeline
type FeasibilityPlanRequest struct {
	TargetDate   time.Time // Signing date
	Jurisdiction string    // Key into the lead-time table
	Mode         Mode
}

// Validate is the strict check callers run before planning
func (r *FeasibilityPlanRequest) Validate() error {
	if r.TargetDate.IsZero() {
		return errors.New("target date is required")
	}

	if r.Mode != ModeSimple && r.Mode != ModeUrgent {
		return errors.New("invalid mode: must be SIMPLE or URGENT")
	}

	return nil
}

// TimelineTask is a single certificate request in a closing plan
type TimelineTask struct {
	Requirement Requirement
	Action      string
	Deadline    time.Time // Last calendar date to file the request
	LeadDays    int       // Processing days plus safety buffer
	Status      TaskStatus
}

// FeasibilityPlan is the computed timeline for a signing date
type FeasibilityPlan struct {
	TargetDate  time.Time
	Feasibility Feasibility
	Tasks       []TimelineTask // Ascending by Deadline
	Alerts      []string       // One per LATE task, in evaluation order
}
