/*
Package roster provides the core shift classification, break-compliance,
and pay computation engine.

PURPOSE:
  This package contains the rule-driven logic of the rostering system:
  deciding which pay category a shift falls into, computing the pay owed
  for it under the active rate table, detecting rest-period violations
  between consecutive shifts, and resolving the calendar window needed
  to render a month of shifts.

KEY CONCEPTS IN THIS FILE (types.go):
  - ClockTime:  A time of day (HH:MM) with minute precision
  - Date:       A calendar day (no time-of-day component)
  - MonthKey:   A year+month pair, formatted "YYYY-MM"
  - RateTable:  The active pay rates plus the pay-mode selector
  - Override:   Manual classification override (auto / category / sleepover)
  - RosterEntry: A single shift on the roster, with computed pay outputs

DESIGN PRINCIPLES:
  1. Purity: every computation is a function of its inputs; the engine
     owns no state and performs no I/O
  2. Precision: uses decimal.Decimal for money and hours to avoid
     floating-point error; rounding happens only at the edges
  3. Cached outputs: HoursWorked/BasePay/SleepoverAllowance/TotalPay on a
     RosterEntry are always derivable from the other fields plus the
     active RateTable, and are recomputed whenever an input changes

SEE ALSO:
  - classify.go: Shift type classification
  - pay.go:      Pay computation
  - breaks.go:   Rest-period compliance checking
  - window.go:   Month window resolution
*/
package roster

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHIFT TYPE AND PAY MODE
// =============================================================================

// ShiftType is the pay-rate category a shift is classified into.
type ShiftType string

const (
	ShiftWeekdayDay     ShiftType = "weekday_day"
	ShiftWeekdayEvening ShiftType = "weekday_evening"
	ShiftWeekdayNight   ShiftType = "weekday_night"
	ShiftSaturday       ShiftType = "saturday"
	ShiftSunday         ShiftType = "sunday"
	ShiftPublicHoliday  ShiftType = "public_holiday"
	ShiftSleepover      ShiftType = "sleepover"
)

// ValidShiftType reports whether s is one of the known categories.
func ValidShiftType(s ShiftType) bool {
	switch s {
	case ShiftWeekdayDay, ShiftWeekdayEvening, ShiftWeekdayNight,
		ShiftSaturday, ShiftSunday, ShiftPublicHoliday, ShiftSleepover:
		return true
	}
	return false
}

// PayMode selects which sleepover allowance applies.
type PayMode string

const (
	PayModeDefault PayMode = "default"
	PayModeSCHADS  PayMode = "schads"
)

// =============================================================================
// RATE TABLE - Immutable pay configuration
// =============================================================================

// Rate keys. Hourly rates are keyed by shift type; the two sleepover
// allowances are flat amounts selected by PayMode.
const (
	RateWeekdayDay       = "weekday_day"
	RateWeekdayEvening   = "weekday_evening"
	RateWeekdayNight     = "weekday_night"
	RateSaturday         = "saturday"
	RateSunday           = "sunday"
	RatePublicHoliday    = "public_holiday"
	RateSleepoverDefault = "sleepover_default"
	RateSleepoverSCHADS  = "sleepover_schads"
)

// RateKeys lists every rate a complete table carries.
var RateKeys = []string{
	RateWeekdayDay, RateWeekdayEvening, RateWeekdayNight,
	RateSaturday, RateSunday, RatePublicHoliday,
	RateSleepoverDefault, RateSleepoverSCHADS,
}

// RateTable holds the active pay rates. Treated as immutable by the
// engine: computations read from it, never write.
type RateTable struct {
	PayMode PayMode
	Rates   map[string]decimal.Decimal
}

// Rate returns the rate for the given key, or a ConfigurationError if
// the table does not carry it.
func (rt RateTable) Rate(key string) (decimal.Decimal, error) {
	r, ok := rt.Rates[key]
	if !ok {
		return decimal.Zero, &ConfigurationError{Key: key, Mode: rt.PayMode}
	}
	return r, nil
}

// HourlyRate returns the hourly rate for a non-sleepover category.
func (rt RateTable) HourlyRate(category ShiftType) (decimal.Decimal, error) {
	return rt.Rate(string(category))
}

// SleepoverAllowance returns the flat allowance for the active pay mode.
func (rt RateTable) SleepoverAllowance() (decimal.Decimal, error) {
	if rt.PayMode == PayModeSCHADS {
		return rt.Rate(RateSleepoverSCHADS)
	}
	return rt.Rate(RateSleepoverDefault)
}

// Validate checks the table invariants: a known pay mode and
// non-negative rates with at most 2 decimal places.
func (rt RateTable) Validate() error {
	if rt.PayMode != PayModeDefault && rt.PayMode != PayModeSCHADS {
		return &ValidationError{Field: "pay_mode", Value: string(rt.PayMode), Reason: "unknown pay mode"}
	}
	for key, rate := range rt.Rates {
		if rate.IsNegative() {
			return &ValidationError{Field: key, Value: rate.String(), Reason: "rate must be non-negative"}
		}
		if !rate.Equal(rate.Round(2)) {
			return &ValidationError{Field: key, Value: rate.String(), Reason: "rate must have at most 2 decimal places"}
		}
	}
	return nil
}

// DefaultRateTable returns the rates the system ships with.
func DefaultRateTable() RateTable {
	return RateTable{
		PayMode: PayModeDefault,
		Rates: map[string]decimal.Decimal{
			RateWeekdayDay:       decimal.NewFromFloat(42.00),
			RateWeekdayEvening:   decimal.NewFromFloat(44.50),
			RateWeekdayNight:     decimal.NewFromFloat(48.50),
			RateSaturday:         decimal.NewFromFloat(57.50),
			RateSunday:           decimal.NewFromFloat(74.00),
			RatePublicHoliday:    decimal.NewFromFloat(88.50),
			RateSleepoverDefault: decimal.NewFromFloat(175.00),
			RateSleepoverSCHADS:  decimal.NewFromFloat(60.02),
		},
	}
}

// Round2 rounds a monetary value for display or persistence. Intermediate
// computation stays unrounded to avoid compounding error.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// =============================================================================
// CLOCK TIME - Time of day with minute precision
// =============================================================================

// ClockTime is a time of day stored as minutes since midnight.
type ClockTime struct {
	mins int
}

// ParseClock parses a strict "HH:MM" string.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ClockTime{}, &ValidationError{Field: "time", Value: s, Reason: "expected HH:MM"}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return ClockTime{}, &ValidationError{Field: "time", Value: s, Reason: "hour out of range"}
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return ClockTime{}, &ValidationError{Field: "time", Value: s, Reason: "minute out of range"}
	}
	return ClockTime{mins: h*60 + m}, nil
}

// MustParseClock parses a ClockTime or panics. For tests and seed data.
func MustParseClock(s string) ClockTime {
	ct, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return ct
}

func NewClockTime(hour, minute int) ClockTime { return ClockTime{mins: hour*60 + minute} }

func (ct ClockTime) Hour() int    { return ct.mins / 60 }
func (ct ClockTime) Minute() int  { return ct.mins % 60 }
func (ct ClockTime) Minutes() int { return ct.mins }

func (ct ClockTime) Before(other ClockTime) bool { return ct.mins < other.mins }
func (ct ClockTime) After(other ClockTime) bool  { return ct.mins > other.mins }
func (ct ClockTime) Equal(other ClockTime) bool  { return ct.mins == other.mins }

func (ct ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", ct.Hour(), ct.Minute())
}

// =============================================================================
// DATE - Calendar day
// =============================================================================

// Date is a calendar day with no time-of-day component. Always UTC.
type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a strict "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return Date{Time: t.UTC()}, nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int            { return d.Time.Year() }
func (d Date) Month() time.Month    { return d.Time.Month() }
func (d Date) Day() int             { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) AddDays(n int) Date   { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) IsZero() bool         { return d.Time.IsZero() }

func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool  { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool  { return d.Time.Equal(other.Time) }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// TemplateWeekday returns the weekday index used by shift templates:
// 0=Monday through 6=Sunday.
func (d Date) TemplateWeekday() int { return (int(d.Weekday()) + 6) % 7 }

// At combines the date with a time of day into an absolute instant.
func (d Date) At(ct ClockTime) time.Time {
	return d.Time.Add(time.Duration(ct.Minutes()) * time.Minute)
}

// MonthKey returns the month this date belongs to.
func (d Date) MonthKey() MonthKey { return MonthKey{Year: d.Year(), Month: d.Month()} }

// =============================================================================
// MONTH KEY - "YYYY-MM"
// =============================================================================

// MonthKey identifies one calendar month of roster data.
type MonthKey struct {
	Year  int
	Month time.Month
}

// ParseMonthKey parses a strict "YYYY-MM" string.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, &ValidationError{Field: "month", Value: s, Reason: "expected YYYY-MM"}
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, nil
}

func (mk MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", mk.Year, int(mk.Month))
}

// First returns the first day of the month.
func (mk MonthKey) First() Date { return NewDate(mk.Year, mk.Month, 1) }

// Last returns the last day of the month (leap-year aware).
func (mk MonthKey) Last() Date {
	return Date{Time: time.Date(mk.Year, mk.Month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
}

// Days returns the number of days in the month.
func (mk MonthKey) Days() int { return mk.Last().Day() }

// Contains reports whether the date falls inside this month.
func (mk MonthKey) Contains(d Date) bool {
	return d.Year() == mk.Year && d.Month() == mk.Month
}

func (mk MonthKey) Next() MonthKey {
	t := time.Date(mk.Year, mk.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

func (mk MonthKey) Prev() MonthKey {
	t := time.Date(mk.Year, mk.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// =============================================================================
// OVERRIDE - Manual classification override as an explicit variant
// =============================================================================

// Override captures the manual classification state of a shift as a
// single variant rather than independently-nullable fields, so invalid
// combinations (a manual category AND a forced sleepover) cannot exist.
//
// The three variants:
//   Auto              - no override; automatic classification applies
//   Category(t)       - an explicit shift type, which may itself be sleepover
//   Sleepover(b)      - the sleepover flag is forced to b; when b is false
//                       the shift classifies automatically with the flag off
type Override struct {
	kind      overrideKind
	category  ShiftType
	sleepover bool
}

type overrideKind int

const (
	overrideAuto overrideKind = iota
	overrideCategory
	overrideSleepover
)

// Auto returns the no-override state.
func Auto() Override { return Override{kind: overrideAuto} }

// Category returns an explicit-category override.
func Category(t ShiftType) Override { return Override{kind: overrideCategory, category: t} }

// Sleepover returns a forced-sleepover override.
func Sleepover(forced bool) Override { return Override{kind: overrideSleepover, sleepover: forced} }

func (o Override) IsAuto() bool { return o.kind == overrideAuto }

// ManualCategory returns the explicit category, if set.
func (o Override) ManualCategory() (ShiftType, bool) {
	return o.category, o.kind == overrideCategory
}

// ManualSleepover returns the forced sleepover flag, if set.
func (o Override) ManualSleepover() (bool, bool) {
	return o.sleepover, o.kind == overrideSleepover
}

// OverrideFromFields builds an Override from the legacy nullable-field
// representation (manual_shift_type, manual_sleepover) used on the wire
// and in storage. Precedence matches classification: a non-nil true
// manual_sleepover wins; otherwise an explicit type; otherwise a non-nil
// false manual_sleepover still suppresses the automatic flag.
func OverrideFromFields(manualType *ShiftType, manualSleepover *bool) Override {
	if manualSleepover != nil && *manualSleepover {
		return Sleepover(true)
	}
	if manualType != nil && *manualType != "" {
		return Category(*manualType)
	}
	if manualSleepover != nil {
		return Sleepover(false)
	}
	return Auto()
}

// Fields decomposes the Override back into the nullable-field
// representation for storage and API payloads.
func (o Override) Fields() (manualType *ShiftType, manualSleepover *bool) {
	switch o.kind {
	case overrideCategory:
		t := o.category
		return &t, nil
	case overrideSleepover:
		b := o.sleepover
		return nil, &b
	default:
		return nil, nil
	}
}

// =============================================================================
// DOMAIN ENTITIES
// =============================================================================

// Staff is a rosterable staff member. Deletion is a soft deactivate so
// historical roster entries keep their assignee.
type Staff struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
}

// ShiftTemplate is a default start/end time for one weekday, used only
// to seed new roster entries. Editing a template never mutates entries
// already generated from it.
type ShiftTemplate struct {
	ID          string
	Name        string
	Start       ClockTime
	End         ClockTime
	IsSleepover bool
	DayOfWeek   int // 0=Monday .. 6=Sunday
}

// RosterEntry is one shift on the roster. The four computed fields at
// the bottom are cached results of ComputePay, not independent state.
type RosterEntry struct {
	ID         string
	Date       Date
	TemplateID string

	StaffID   *string
	StaffName *string

	Start       ClockTime
	End         ClockTime
	IsSleepover bool

	Override         Override
	ManualHourlyRate *decimal.Decimal
	ManualBasePay    *decimal.Decimal
	WakeHours        *decimal.Decimal

	HoursWorked        decimal.Decimal
	BasePay            decimal.Decimal
	SleepoverAllowance decimal.Decimal
	TotalPay           decimal.Decimal
}

// Assigned reports whether the entry has a staff member.
func (e RosterEntry) Assigned() bool { return e.StaffID != nil && *e.StaffID != "" }

// StartInstant is the absolute start of the shift.
func (e RosterEntry) StartInstant() time.Time { return e.Date.At(e.Start) }

// EndInstant is the absolute end of the shift. An end time earlier than
// the start time means the shift runs into the next calendar day.
func (e RosterEntry) EndInstant() time.Time {
	end := e.Date.At(e.End)
	if e.End.Before(e.Start) {
		end = end.Add(24 * time.Hour)
	}
	return end
}
