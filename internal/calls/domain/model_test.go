package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanReview(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending accepted", ApplicationPending, ApplicationAccepted, true},
		{"pending rejected", ApplicationPending, ApplicationRejected, true},
		{"accepted assigned", ApplicationAccepted, ApplicationAssigned, true},
		{"accepted rejected", ApplicationAccepted, ApplicationRejected, true},
		{"pending cannot jump to assigned", ApplicationPending, ApplicationAssigned, false},
		{"rejected is terminal", ApplicationRejected, ApplicationAccepted, false},
		{"assigned is terminal", ApplicationAssigned, ApplicationRejected, false},
		{"no self loop", ApplicationPending, ApplicationPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanReview(tc.from, tc.to))
		})
	}
}

func TestIsValidPriority(t *testing.T) {
	for _, p := range []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical} {
		assert.True(t, IsValidPriority(p), p)
	}
	assert.False(t, IsValidPriority("urgent"))
}
