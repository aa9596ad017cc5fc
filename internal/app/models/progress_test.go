package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProgressStatus(t *testing.T) {
	tests := []struct {
		raw       string
		want      ProgressStatus
		wantKnown bool
	}{
		{"completed", StatusCompleted, true},
		{"  In-Progress ", StatusInProgress, true},
		{"PENDING", StatusPending, true},
		{"failed", StatusFailed, true},
		{"Aprobado", "aprobado", true},
		{"done", "done", true},
		{"lost", "lost", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, known := ParseProgressStatus(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}

func TestKnownStatuses_AllParse(t *testing.T) {
	for _, s := range KnownStatuses() {
		_, known := ParseProgressStatus(s)
		assert.True(t, known, s)
	}
}
