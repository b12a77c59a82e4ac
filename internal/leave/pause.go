package leave

import (
	"strings"
	"time"

	"github.com/peoplehub/loan-engine/internal/domain"
	"github.com/peoplehub/loan-engine/pkg/utils"
)

// ShouldPauseLoan reports whether an employee's loan deductions should
// be skipped for the payroll period [start, end]. It is true when an
// approved vacation overlaps the period (boundaries inclusive) and
// carries the pause directive.
//
// The structured PauseAssociatedLoans flag is the primary signal;
// matching the legacy [pause-loans] tag inside the free-text reason is
// kept for records written before the flag existed. The tag match is
// an exact, case-sensitive substring check.
//
// Read-only: the decision is returned for the payroll run to act on.
func ShouldPauseLoan(vacations []domain.VacationRequest, start, end time.Time) bool {
	for _, v := range vacations {
		if v.Status != domain.VacationStatusApproved {
			continue
		}
		if !utils.PeriodsOverlap(v.StartDate, v.EndDate, start, end) {
			continue
		}
		if v.PauseAssociatedLoans || strings.Contains(v.Reason, domain.LoanPauseTag) {
			return true
		}
	}
	return false
}
