package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/peoplehub/loan-engine/internal/domain"
)

func apr(day int) time.Time {
	return time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC)
}

func TestShouldPauseLoan(t *testing.T) {
	periodStart, periodEnd := apr(1), apr(30)

	tests := []struct {
		name      string
		vacations []domain.VacationRequest
		expected  bool
	}{
		{
			name: "approved overlapping tagged vacation pauses",
			vacations: []domain.VacationRequest{
				{
					StartDate: apr(1),
					EndDate:   apr(30),
					Status:    domain.VacationStatusApproved,
					Reason:    "Annual leave [pause-loans]",
				},
			},
			expected: true,
		},
		{
			name: "structured pause flag without tag pauses",
			vacations: []domain.VacationRequest{
				{
					StartDate:            apr(10),
					EndDate:              apr(20),
					Status:               domain.VacationStatusApproved,
					Reason:               "Annual leave",
					PauseAssociatedLoans: true,
				},
			},
			expected: true,
		},
		{
			name: "pending vacation does not pause",
			vacations: []domain.VacationRequest{
				{
					StartDate: apr(1),
					EndDate:   apr(30),
					Status:    domain.VacationStatusPending,
					Reason:    "Annual leave [pause-loans]",
				},
			},
			expected: false,
		},
		{
			name: "untagged vacation does not pause",
			vacations: []domain.VacationRequest{
				{
					StartDate: apr(1),
					EndDate:   apr(30),
					Status:    domain.VacationStatusApproved,
					Reason:    "Annual leave",
				},
			},
			expected: false,
		},
		{
			name: "tag match is case-sensitive",
			vacations: []domain.VacationRequest{
				{
					StartDate: apr(1),
					EndDate:   apr(30),
					Status:    domain.VacationStatusApproved,
					Reason:    "Annual leave [PAUSE-LOANS]",
				},
			},
			expected: false,
		},
		{
			name: "non-overlapping vacation does not pause",
			vacations: []domain.VacationRequest{
				{
					StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
					Status:    domain.VacationStatusApproved,
					Reason:    "May leave [pause-loans]",
				},
			},
			expected: false,
		},
		{
			name: "single-day boundary overlap pauses",
			vacations: []domain.VacationRequest{
				{
					StartDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
					EndDate:   apr(1),
					Status:    domain.VacationStatusApproved,
					Reason:    "[pause-loans] extended leave",
				},
			},
			expected: true,
		},
		{
			name: "one matching vacation among several suffices",
			vacations: []domain.VacationRequest{
				{StartDate: apr(1), EndDate: apr(5), Status: domain.VacationStatusApproved, Reason: "sick"},
				{StartDate: apr(10), EndDate: apr(12), Status: domain.VacationStatusApproved, Reason: "unpaid [pause-loans]"},
			},
			expected: true,
		},
		{
			name:      "empty list",
			vacations: nil,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldPauseLoan(tt.vacations, periodStart, periodEnd))
		})
	}
}
