package task

import (
	"strings"
	"testing"

	"github.com/Subramanya2/tasktrack-core/internal/auth"
)

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		wantFields []string // fields expected in the validation error, nil means valid
	}{
		{
			name:  "valid minimal",
			input: Input{Title: "Buy groceries"},
		},
		{
			name:  "valid full",
			input: Input{Title: "Buy groceries", Description: "Milk and eggs", Status: StatusInProgress},
		},
		{
			name:  "valid title at limit",
			input: Input{Title: strings.Repeat("a", 100)},
		},
		{
			name:       "missing title",
			input:      Input{Description: "no title"},
			wantFields: []string{"title"},
		},
		{
			name:       "title too long",
			input:      Input{Title: strings.Repeat("a", 101)},
			wantFields: []string{"title"},
		},
		{
			name:       "description too long",
			input:      Input{Title: "ok", Description: strings.Repeat("d", 501)},
			wantFields: []string{"description"},
		},
		{
			name:       "invalid status",
			input:      Input{Title: "ok", Status: Status("done")},
			wantFields: []string{"status"},
		},
		{
			name:       "all violations reported together",
			input:      Input{Description: strings.Repeat("d", 501), Status: Status("done")},
			wantFields: []string{"title", "description", "status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}

			verr, ok := auth.AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Fatalf("got %d field errors, want %d: %+v", len(verr.Fields), len(tt.wantFields), verr.Fields)
			}
			for i, want := range tt.wantFields {
				if verr.Fields[i].Field != want {
					t.Errorf("field[%d] = %q, want %q", i, verr.Fields[i].Field, want)
				}
			}
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = false", s)
		}
	}
	for _, s := range []Status{"", "done", "Pending", "in_progress"} {
		if IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = true", s)
		}
	}
}
