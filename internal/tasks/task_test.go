package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		Title:      "Pay bills",
		Details:    "Electricity and rent",
		Deadline:   "2026-09-01",
		Complexity: "Quick (2-5 mins)",
		Duration:   Duration{Minutes: 10},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Input)
		wantErr string // failing field, "" for ok
	}{
		{"valid", func(in *Input) {}, ""},
		{"missing title", func(in *Input) { in.Title = "" }, "title"},
		{"whitespace title", func(in *Input) { in.Title = "   " }, "title"},
		{"missing details", func(in *Input) { in.Details = "" }, "details"},
		{"missing deadline", func(in *Input) { in.Deadline = "" }, "deadline"},
		{"garbage deadline", func(in *Input) { in.Deadline = "next tuesday" }, "deadline"},
		{"past deadline allowed", func(in *Input) { in.Deadline = "2020-01-01" }, ""},
		{"missing complexity", func(in *Input) { in.Complexity = "" }, "complexity"},
		{"unknown complexity", func(in *Input) { in.Complexity = "Trivial" }, "complexity"},
		{"zero duration", func(in *Input) { in.Duration = Duration{} }, "duration"},
		{"negative duration", func(in *Input) { in.Duration = Duration{Hours: -1, Minutes: 30} }, "duration"},
		{"hours only", func(in *Input) { in.Duration = Duration{Hours: 2} }, ""},
		{"days only", func(in *Input) { in.Duration = Duration{Days: 1} }, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := validate(in)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantErr, verr.Field)
		})
	}
}

func TestValidComplexity(t *testing.T) {
	for _, tier := range ComplexityTiers {
		assert.True(t, ValidComplexity(tier))
	}
	assert.False(t, ValidComplexity("Quick"))
	assert.False(t, ValidComplexity(""))
}

func TestDurationString(t *testing.T) {
	assert.Equal(t, "Not specified", Duration{}.String())
	assert.Equal(t, "10 minutes", Duration{Minutes: 10}.String())
	assert.Equal(t, "1 day, 2 hours", Duration{Days: 1, Hours: 2}.String())
	assert.Equal(t, "3 days, 2 hours, 30 minutes", Duration{Days: 3, Hours: 2, Minutes: 30}.String())
}
