package timeline_planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/simaogato/notaryflow-backend/internal/domain"
)

// DefaultSafetyBufferDays is added to every processing time
const DefaultSafetyBufferDays = 3

// Rules are the tables and constants a plan is computed against
type Rules struct {
	Table            domain.LeadTimeTable
	SafetyBufferDays int
	DefaultLeadDays  int // Used when the table has no entry
}

// DefaultRules returns the built-in lead-time table with the standard buffer
func DefaultRules() Rules {
	return Rules{
		Table:            domain.DefaultLeadTimeTable(),
		SafetyBufferDays: DefaultSafetyBufferDays,
		DefaultLeadDays:  domain.DefaultLeadDays,
	}
}

// PlanTimeline computes the request deadline of every requirement for a signing date.
//
// Logic:
//   - Resolve each requirement's processing days (mode-suffixed key for DOMINIO and
//     INHIBICION, plain key otherwise, DefaultLeadDays on a miss)
//   - Deadline = target date minus (processing days + safety buffer), in calendar days
//   - A deadline strictly before today is LATE: an alert is appended and the plan
//     latches to CRITICAL_RISK
//   - Tasks are then stable-sorted by deadline; alerts keep evaluation order
//
// today is compared as a calendar date and must be read once by the caller.
func PlanTimeline(req domain.FeasibilityPlanRequest, today time.Time, rules Rules) domain.FeasibilityPlan {
	target := domain.DateOf(req.TargetDate)
	today = domain.DateOf(today)

	plan := domain.FeasibilityPlan{
		TargetDate:  target,
		Feasibility: domain.FeasibilityOK,
		Tasks:       make([]domain.TimelineTask, 0, len(domain.Requirements)),
		Alerts:      make([]string, 0),
	}

	for _, requirement := range domain.Requirements {
		leadDays := rules.Table.LeadDays(req.Jurisdiction, requirement.LookupKey(req.Mode), rules.DefaultLeadDays)
		totalLeadDays := leadDays + rules.SafetyBufferDays

		deadline := target.AddDate(0, 0, -totalLeadDays)

		status := domain.TaskStatusOnTime
		if deadline.Before(today) {
			status = domain.TaskStatusLate
			plan.Feasibility = domain.FeasibilityCriticalRisk
			plan.Alerts = append(plan.Alerts, lateAlert(requirement, req.Mode, deadline))
		}

		plan.Tasks = append(plan.Tasks, domain.TimelineTask{
			Requirement: requirement,
			Action:      fmt.Sprintf("Request %s (%s)", requirement, req.Mode),
			Deadline:    deadline,
			LeadDays:    totalLeadDays,
			Status:      status,
		})
	}

	sort.SliceStable(plan.Tasks, func(i, j int) bool {
		return plan.Tasks[i].Deadline.Before(plan.Tasks[j].Deadline)
	})

	return plan
}

func lateAlert(requirement domain.Requirement, mode domain.Mode, deadline time.Time) string {
	return fmt.Sprintf("Cannot obtain %s in %s mode: the request was due on %s. Consider moving the signing date.",
		requirement, mode, domain.FormatDate(deadline))
}

// Planner plans timelines against the wall clock
type Planner struct {
	Rules Rules
	Now   func() time.Time
}

// NewPlanner creates a new Planner using time.Now
func NewPlanner(rules Rules) *Planner {
	return &Planner{
		Rules: rules,
		Now:   time.Now,
	}
}

// PlanTimeline plans a signing date, reading the clock exactly once
func (p *Planner) PlanTimeline(targetDate time.Time, jurisdiction string, mode domain.Mode) domain.FeasibilityPlan {
	today := p.Now()
	return PlanTimeline(domain.FeasibilityPlanRequest{
		TargetDate:   targetDate,
		Jurisdiction: jurisdiction,
		Mode:         mode,
	}, today, p.Rules)
}
