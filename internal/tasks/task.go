package tasks

import (
	"strconv"
	"strings"
	"time"
)

// Complexity tiers shown in the task form. The parenthetical time hint is
// part of the stored value.
var ComplexityTiers = []string{
	"Quick (2-5 mins)",
	"Easy (< 1 hour)",
	"Medium (few hours)",
	"Complex (days)",
	"Major Project (weeks)",
}

func ValidComplexity(c string) bool {
	for _, tier := range ComplexityTiers {
		if c == tier {
			return true
		}
	}
	return false
}

// Duration is the user's estimate. At least one field must be positive.
type Duration struct {
	Minutes int `json:"minutes"`
	Hours   int `json:"hours"`
	Days    int `json:"days"`
}

func (d Duration) IsZero() bool {
	return d.Minutes == 0 && d.Hours == 0 && d.Days == 0
}

// String renders the estimate the way the task list shows it:
// largest unit first, empty units omitted.
func (d Duration) String() string {
	var parts []string
	if d.Days > 0 {
		parts = append(parts, plural(d.Days, "day"))
	}
	if d.Hours > 0 {
		parts = append(parts, plural(d.Hours, "hour"))
	}
	if d.Minutes > 0 {
		parts = append(parts, plural(d.Minutes, "minute"))
	}
	if len(parts) == 0 {
		return "Not specified"
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

type Task struct {
	ID         string    `json:"id"`
	OwnerID    int       `json:"owner_id"`
	Title      string    `json:"title"`
	Details    string    `json:"details"`
	Deadline   string    `json:"deadline"` // YYYY-MM-DD
	Complexity string    `json:"complexity"`
	Duration   Duration  `json:"duration"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Input is what the client sends on create/update. IDs, ownership and
// timestamps are never taken from the client.
type Input struct {
	Title      string   `json:"title"`
	Details    string   `json:"details"`
	Deadline   string   `json:"deadline"`
	Complexity string   `json:"complexity"`
	Duration   Duration `json:"duration"`
}

func validate(in Input) error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(in.Details) == "" {
		return &ValidationError{Field: "details", Reason: "required"}
	}
	if strings.TrimSpace(in.Deadline) == "" {
		return &ValidationError{Field: "deadline", Reason: "required"}
	}
	if _, err := time.Parse(time.DateOnly, in.Deadline); err != nil {
		return &ValidationError{Field: "deadline", Reason: "must be a date in YYYY-MM-DD form"}
	}
	if !ValidComplexity(in.Complexity) {
		return &ValidationError{Field: "complexity", Reason: "unknown complexity tier"}
	}
	if in.Duration.Minutes < 0 || in.Duration.Hours < 0 || in.Duration.Days < 0 {
		return &ValidationError{Field: "duration", Reason: "values must not be negative"}
	}
	if in.Duration.IsZero() {
		return &ValidationError{Field: "duration", Reason: "specify at least one of minutes, hours or days"}
	}
	return nil
}
