package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/veldwijk/crewplan/internal/models"
)

const (
	MinShiftDuration      = 4 * time.Hour
	MaxShiftDurationAdult = 12 * time.Hour
	MaxShiftDurationMinor = 8 * time.Hour
	MinRestAdult          = 8 * time.Hour
	MinRestMinor          = 12 * time.Hour

	curfewStartHour = 22
	curfewEndHour   = 6
)

var (
	ErrInvalidShiftRange = errors.New("shift end must be after shift start")
	ErrNoAssignees       = errors.New("shift needs at least one assignee")
)

type ScheduleRule string

const (
	RuleMinDuration ScheduleRule = "min_duration"
	RuleMaxDuration ScheduleRule = "max_duration"
	RuleOverlap     ScheduleRule = "overlap"
	RuleRestPeriod  ScheduleRule = "rest_period"
	RuleCurfew      ScheduleRule = "curfew"
)

// ShiftCandidate is a proposed shift before persistence. Start and End are
// truncated to the minute before any rule runs.
type ShiftCandidate struct {
	CompanyID uint
	Start     time.Time
	End       time.Time
	Category  string
}

// AssigneeContext carries everything the validator needs to know about one
// assignee: their age and their existing shifts in a window around the
// candidate. The caller owns fetching that window.
type AssigneeContext struct {
	UserID         uint
	Age            int
	ExistingShifts []models.Schedule
}

type ScheduleViolation struct {
	UserID uint         `json:"assignee_id"`
	Rule   ScheduleRule `json:"rule"`
	Detail string       `json:"detail"`
}

// ScheduleValidationResult aggregates the outcome for all assignees. A
// multi-assignee creation either fully succeeds or is rejected with every
// per-assignee failure listed; nothing is ever partially accepted.
type ScheduleValidationResult struct {
	Accepted bool                `json:"accepted"`
	Failures []ScheduleViolation `json:"failures,omitempty"`
}

// TruncateToMinute zeroes seconds and sub-second precision so stored and
// candidate instants compare without sub-minute clock noise.
func TruncateToMinute(value time.Time) time.Time {
	return value.Truncate(time.Minute)
}

// ValidateScheduleCreation checks a candidate shift against every assignee's
// constraints. Malformed input (end not after start, no assignees) is an
// error before any rule runs; rule violations are reported as data.
//
// Rules run in order per assignee and short-circuit on the first violation
// for that assignee, but every assignee is always evaluated. The validator
// is a pre-check for precise error messages; the store-level overlap check
// inside the insert transaction is the actual persistence guarantee.
func ValidateScheduleCreation(candidate ShiftCandidate, assignees []AssigneeContext, curfewLocation *time.Location) (ScheduleValidationResult, error) {
	start := TruncateToMinute(candidate.Start)
	end := TruncateToMinute(candidate.End)
	if !end.After(start) {
		return ScheduleValidationResult{}, ErrInvalidShiftRange
	}
	if len(assignees) == 0 {
		return ScheduleValidationResult{}, ErrNoAssignees
	}
	if curfewLocation == nil {
		curfewLocation = time.UTC
	}

	failures := make([]ScheduleViolation, 0)
	for _, assignee := range assignees {
		if violation := checkAssignee(start, end, assignee, curfewLocation); violation != nil {
			failures = append(failures, *violation)
		}
	}

	return ScheduleValidationResult{
		Accepted: len(failures) == 0,
		Failures: failures,
	}, nil
}

func checkAssignee(start, end time.Time, assignee AssigneeContext, curfewLocation *time.Location) *ScheduleViolation {
	minor := assignee.Age < models.AdultAge
	duration := end.Sub(start)

	if duration < MinShiftDuration {
		return &ScheduleViolation{
			UserID: assignee.UserID,
			Rule:   RuleMinDuration,
			Detail: fmt.Sprintf("shift lasts %s, minimum is %s", duration, MinShiftDuration),
		}
	}

	maxDuration := MaxShiftDurationAdult
	if minor {
		maxDuration = MaxShiftDurationMinor
	}
	if duration > maxDuration {
		return &ScheduleViolation{
			UserID: assignee.UserID,
			Rule:   RuleMaxDuration,
			Detail: fmt.Sprintf("shift lasts %s, maximum is %s", duration, maxDuration),
		}
	}

	if violation := checkOverlap(start, end, assignee); violation != nil {
		return violation
	}
	if violation := checkRestPeriod(start, end, assignee, minor); violation != nil {
		return violation
	}
	if minor {
		if violation := checkCurfew(start, end, assignee.UserID, curfewLocation); violation != nil {
			return violation
		}
	}

	return nil
}

func checkOverlap(start, end time.Time, assignee AssigneeContext) *ScheduleViolation {
	for _, existing := range assignee.ExistingShifts {
		existingStart := TruncateToMinute(existing.Start)
		existingEnd := TruncateToMinute(existing.End)
		if start.Before(existingEnd) && existingStart.Before(end) {
			return &ScheduleViolation{
				UserID: assignee.UserID,
				Rule:   RuleOverlap,
				Detail: fmt.Sprintf("overlaps existing shift %s - %s",
					existingStart.Format(time.RFC3339), existingEnd.Format(time.RFC3339)),
			}
		}
	}
	return nil
}

// checkRestPeriod enforces the minimum gap against the nearest shift ending
// before the candidate starts and the nearest shift starting after it ends.
func checkRestPeriod(start, end time.Time, assignee AssigneeContext, minor bool) *ScheduleViolation {
	minRest := MinRestAdult
	if minor {
		minRest = MinRestMinor
	}

	var previousEnd, nextStart *time.Time
	for _, existing := range assignee.ExistingShifts {
		existingStart := TruncateToMinute(existing.Start)
		existingEnd := TruncateToMinute(existing.End)

		if !existingEnd.After(start) {
			if previousEnd == nil || existingEnd.After(*previousEnd) {
				endCopy := existingEnd
				previousEnd = &endCopy
			}
		}
		if !existingStart.Before(end) {
			if nextStart == nil || existingStart.Before(*nextStart) {
				startCopy := existingStart
				nextStart = &startCopy
			}
		}
	}

	if previousEnd != nil {
		if gap := start.Sub(*previousEnd); gap < minRest {
			return &ScheduleViolation{
				UserID: assignee.UserID,
				Rule:   RuleRestPeriod,
				Detail: fmt.Sprintf("only %s rest after previous shift, minimum is %s", gap, minRest),
			}
		}
	}
	if nextStart != nil {
		if gap := nextStart.Sub(end); gap < minRest {
			return &ScheduleViolation{
				UserID: assignee.UserID,
				Rule:   RuleRestPeriod,
				Detail: fmt.Sprintf("only %s rest before next shift, minimum is %s", gap, minRest),
			}
		}
	}
	return nil
}

// checkCurfew rejects any minor shift touching the 22:00-06:00 window in the
// reference location. The check uses the shift's own instants, never the
// current wall clock.
func checkCurfew(start, end time.Time, userID uint, location *time.Location) *ScheduleViolation {
	localStart := start.In(location)
	localEnd := end.In(location)

	// Walk the curfew windows of every day the shift could touch. Each
	// window runs from 22:00 on day d to 06:00 on day d+1.
	firstDay := localStart.AddDate(0, 0, -1)
	for day := firstDay; !dayOf(day, location).After(dayOf(localEnd, location)); day = day.AddDate(0, 0, 1) {
		windowStart := time.Date(day.Year(), day.Month(), day.Day(), curfewStartHour, 0, 0, 0, location)
		windowEnd := time.Date(day.Year(), day.Month(), day.Day(), curfewEndHour, 0, 0, 0, location).AddDate(0, 0, 1)
		if localStart.Before(windowEnd) && windowStart.Before(localEnd) {
			return &ScheduleViolation{
				UserID: userID,
				Rule:   RuleCurfew,
				Detail: fmt.Sprintf("shift falls within the %02d:00-%02d:00 curfew for minors", curfewStartHour, curfewEndHour),
			}
		}
	}
	return nil
}

func dayOf(value time.Time, location *time.Location) time.Time {
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}
