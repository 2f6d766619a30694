package tui

import (
	"errors"
	"testing"

	"github.com/tallyhq/tally/internal/tracker"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		count   int
		want    int
		wantErr bool
	}{
		{
			name:  "first project",
			input: "1",
			count: 3,
			want:  1,
		},
		{
			name:  "last project",
			input: "3",
			count: 3,
			want:  3,
		},
		{
			name:  "zero cancels",
			input: "0",
			count: 3,
			want:  0,
		},
		{
			name:  "whitespace tolerated",
			input: " 2 ",
			count: 3,
			want:  2,
		},
		{
			name:    "out of range",
			input:   "4",
			count:   3,
			wantErr: true,
		},
		{
			name:    "negative",
			input:   "-1",
			count:   3,
			wantErr: true,
		},
		{
			name:    "non-numeric",
			input:   "abc",
			count:   3,
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			count:   3,
			wantErr: true,
		},
		{
			name:    "any index invalid with no projects",
			input:   "1",
			count:   0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSelection(tt.input, tt.count)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSelection(%q, %d) error = %v, wantErr %v", tt.input, tt.count, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, tracker.ErrInvalidSelection) {
				t.Errorf("parseSelection(%q, %d) error = %v, want ErrInvalidSelection", tt.input, tt.count, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseSelection(%q, %d) = %d, want %d", tt.input, tt.count, got, tt.want)
			}
		})
	}
}
