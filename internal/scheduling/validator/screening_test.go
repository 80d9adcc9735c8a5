package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConflicts(t *testing.T) {
	buffer := 30 * time.Minute
	day := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	// existing screening runs 14:00-16:00
	existStart, existEnd := at(14, 0), at(16, 0)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		conflict bool
	}{
		{"well after buffer", at(17, 0), at(19, 0), false},
		{"well before buffer", at(10, 0), at(12, 0), false},
		{"inside existing window", at(14, 30), at(15, 30), true},
		{"covers existing window", at(13, 0), at(17, 0), true},
		{"starts inside turnaround", at(16, 25), at(18, 25), true},
		{"starts exactly at padded boundary", at(16, 30), at(18, 30), false},
		{"ends inside leading turnaround", at(11, 45), at(13, 45), true},
		{"ends exactly at padded boundary", at(11, 30), at(13, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Conflicts(tt.start, tt.end, existStart, existEnd, buffer)
			assert.Equal(t, tt.conflict, got)
		})
	}
}

func TestConflictsZeroBuffer(t *testing.T) {
	base := time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC)

	// back to back shows are fine without a buffer
	assert.False(t, Conflicts(base.Add(2*time.Hour), base.Add(4*time.Hour), base, base.Add(2*time.Hour), 0))
	assert.True(t, Conflicts(base.Add(time.Hour), base.Add(3*time.Hour), base, base.Add(2*time.Hour), 0))
}
