package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrigger_Matches(t *testing.T) {
	tests := []struct {
		name    string
		trigger Trigger
		line    string
		want    bool
	}{
		{"contains default", Trigger{Text: "import B"}, "  import B from 'b';", true},
		{"contains miss", Trigger{Text: "import C", Mode: MatchContains}, "import B", false},
		{"exact hit", Trigger{Text: "x = 1", Mode: MatchExact}, "x = 1", true},
		{"exact rejects indentation", Trigger{Text: "x = 1", Mode: MatchExact}, "  x = 1", false},
		{"empty never matches", Trigger{}, "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.trigger.Matches(tt.line))
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Rule{Name: "ok", Trigger: Trigger{Text: "a"}, Action: ActionInsertAfter, Payload: []string{"b"}}

	tests := []struct {
		name    string
		rules   []Rule
		wantErr string
	}{
		{name: "valid", rules: []Rule{valid}},
		{name: "empty table", rules: nil},
		{
			name:    "missing name",
			rules:   []Rule{{Trigger: Trigger{Text: "a"}, Action: ActionReplaceLine}},
			wantErr: "name is empty",
		},
		{
			name:    "missing trigger",
			rules:   []Rule{{Name: "x", Action: ActionReplaceLine}},
			wantErr: "trigger is empty",
		},
		{
			name:    "unknown action",
			rules:   []Rule{{Name: "x", Trigger: Trigger{Text: "a"}, Action: "append"}},
			wantErr: "unknown action",
		},
		{
			name:    "unknown match mode",
			rules:   []Rule{{Name: "x", Trigger: Trigger{Text: "a", Mode: "regex"}, Action: ActionReplaceLine}},
			wantErr: "unknown match mode",
		},
		{
			name:    "insert needs payload",
			rules:   []Rule{{Name: "x", Trigger: Trigger{Text: "a"}, Action: ActionInsertAfter}},
			wantErr: "needs a payload",
		},
		{
			name:    "negative skip",
			rules:   []Rule{{Name: "x", Trigger: Trigger{Text: "a"}, Action: ActionSkipThenInsert, Payload: []string{"b"}, Skip: -1}},
			wantErr: "skip must be >= 0",
		},
		{
			name:    "skip on replace",
			rules:   []Rule{{Name: "x", Trigger: Trigger{Text: "a"}, Action: ActionReplaceLine, Skip: 2}},
			wantErr: "skip is only valid",
		},
		{
			name: "boundary without skip",
			rules: []Rule{{
				Name: "x", Trigger: Trigger{Text: "a"}, Action: ActionSkipThenInsert,
				Payload: []string{"b"}, Boundary: &Trigger{Text: "c"},
			}},
			wantErr: "boundary needs skip",
		},
		{
			name:    "payload with newline",
			rules:   []Rule{{Name: "x", Trigger: Trigger{Text: "a"}, Action: ActionInsertAfter, Payload: []string{"b\nc"}}},
			wantErr: "contains a line break",
		},
		{
			name:    "duplicate names",
			rules:   []Rule{valid, valid},
			wantErr: "duplicate name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.rules)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidRule)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestReport_Views(t *testing.T) {
	r := Report{Outcomes: []Outcome{
		{Rule: "a", Fired: 2},
		{Rule: "b", AlreadyApplied: 1},
		{Rule: "c"},
		{Rule: "d", BoundaryMismatches: 1},
	}}

	assert.Equal(t, 1, r.Fired())
	assert.True(t, r.Changed())
	assert.Equal(t, []string{"c", "d"}, r.Missing())
	assert.False(t, r.Complete())

	done := Report{Outcomes: []Outcome{{Rule: "a", Fired: 1}, {Rule: "b", AlreadyApplied: 1}}}
	assert.True(t, done.Complete())
	assert.Empty(t, done.Missing())
}
