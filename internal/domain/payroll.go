package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PayrollEntryStatusDraft     = "draft"
	PayrollEntryStatusProcessed = "processed"
	PayrollEntryStatusPaid      = "paid"
)

// PayrollEntry is a per-employee per-run record. BaseSalary is the
// amount after any working-days discount; Employee carries the
// undiscounted full salary when the backing record was fetched.
type PayrollEntry struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	EmployeeID        string          `json:"employee_id" db:"employee_id"`
	PeriodStart       time.Time       `json:"period_start" db:"period_start"`
	PeriodEnd         time.Time       `json:"period_end" db:"period_end"`
	BaseSalary        decimal.Decimal `json:"base_salary" db:"base_salary"`
	WorkingDays       *int            `json:"working_days" db:"working_days"`
	ActualWorkingDays *int            `json:"actual_working_days" db:"actual_working_days"`
	Allowances        *AllowanceMap   `json:"allowances" db:"-"`
	Status            string          `json:"status" db:"status"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`

	Employee *Employee `json:"employee,omitempty" db:"-"`
}

// DeductionLine is a loan repayment line attached to a payroll entry.
type DeductionLine struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	EntryID   uuid.UUID       `json:"entry_id" db:"entry_id"`
	LoanID    string          `json:"loan_id" db:"loan_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Paused    bool            `json:"paused" db:"paused"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// AllowanceItem is one surviving allowance after filtering.
type AllowanceItem struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// AllowanceSummary aggregates an entry's allowances for payslip and
// export rendering.
type AllowanceSummary struct {
	Total   decimal.Decimal `json:"total"`
	Entries []AllowanceItem `json:"entries"`
}

// AllowanceMap is an open string-keyed mapping of allowance amounts
// that preserves JSON key encounter order. Label generation and CSV
// columns depend on that order, and Go maps do not keep it, so the
// pairs are stored as a slice.
type AllowanceMap struct {
	keys   []string
	values map[string]any
}

// NewAllowanceMap builds an ordered map from key/value pairs.
func NewAllowanceMap(pairs ...any) *AllowanceMap {
	m := &AllowanceMap{values: make(map[string]any)}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		m.Set(key, pairs[i+1])
	}
	return m
}

// Set adds or replaces a key, keeping first-insertion order.
func (m *AllowanceMap) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it exists.
func (m *AllowanceMap) Get(key string) (any, bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *AllowanceMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of keys.
func (m *AllowanceMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// MarshalJSON emits the entries as a JSON object in insertion order.
func (m *AllowanceMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key encounter order.
// Numbers are kept as json.Number so string-typed amounts and numeric
// amounts survive normalization identically.
func (m *AllowanceMap) UnmarshalJSON(data []byte) error {
	m.keys = nil
	m.values = make(map[string]any)

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	// Opening brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			continue
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		m.Set(key, value)
	}
	// Closing brace.
	_, err := dec.Token()
	return err
}

// DTOs for requests and responses

type PreviewEntryRequest struct {
	EmployeeID        string        `json:"employee_id" validate:"required"`
	BaseSalary        json.Number   `json:"base_salary"`
	WorkingDays       *int          `json:"working_days"`
	ActualWorkingDays *int          `json:"actual_working_days"`
	Allowances        *AllowanceMap `json:"allowances"`
	PeriodStart       time.Time     `json:"period_start" validate:"required"`
	PeriodEnd         time.Time     `json:"period_end" validate:"required"`
}

type PreviewEntryResponse struct {
	EmployeeID            string           `json:"employee_id"`
	WorkingDaysAdjustment decimal.Decimal  `json:"working_days_adjustment"`
	Allowances            AllowanceSummary `json:"allowances"`
	Deductions            []DeductionLine  `json:"deductions"`
	NetAdjustment         decimal.Decimal  `json:"net_adjustment"`
}

type LoanPauseResponse struct {
	EmployeeID string `json:"employee_id"`
	Paused     bool   `json:"paused"`
}
