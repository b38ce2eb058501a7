package refund

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithinWindow(t *testing.T) {
	finished := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"immediately after", finished.Add(time.Minute), true},
		{"two days later", finished.Add(48 * time.Hour), true},
		{"exactly on the boundary", finished.Add(Window), true},
		{"just past the boundary", finished.Add(Window + time.Second), false},
		{"four days later", finished.Add(96 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinWindow(finished, tt.now))
		})
	}
}

func TestIsPending(t *testing.T) {
	r := &Request{TransactionID: 1, Reason: "not as described"}
	assert.True(t, r.IsPending())

	approved := true
	r.Status = &approved
	assert.False(t, r.IsPending())

	rejected := false
	r.Status = &rejected
	assert.False(t, r.IsPending())
}
