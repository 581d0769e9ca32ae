/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY ON THE WIRE:
  Monetary values travel as JSON numbers, rounded to 2 decimal places
  before conversion. Internally everything stays decimal; the float
  conversion happens only at this boundary.

SEE ALSO:
  - handlers.go: Uses these types
  - roster/types.go: Domain model
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// StaffDTO represents a staff member in API responses.
type StaffDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at,omitempty"`
}

// StaffRequest is the request to create or rename a staff member.
type StaffRequest struct {
	Name string `json:"name"`
}

// TemplateDTO represents a shift template.
type TemplateDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsSleepover bool   `json:"is_sleepover"`
	DayOfWeek   int    `json:"day_of_week"` // 0=Monday .. 6=Sunday
}

// TemplateRequest is the request to create or update a template.
type TemplateRequest struct {
	Name        string `json:"name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsSleepover bool   `json:"is_sleepover"`
	DayOfWeek   int    `json:"day_of_week"`
}

// ShiftDTO represents one roster entry with its computed pay.
type ShiftDTO struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	TemplateID string  `json:"template_id,omitempty"`
	StaffID    *string `json:"staff_id"`
	StaffName  *string `json:"staff_name"`

	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsSleepover bool   `json:"is_sleepover"`

	ManualShiftType  *string  `json:"manual_shift_type"`
	ManualSleepover  *bool    `json:"manual_sleepover"`
	ManualHourlyRate *float64 `json:"manual_hourly_rate"`
	ManualBasePay    *float64 `json:"manual_base_pay"`
	WakeHours        *float64 `json:"wake_hours"`

	ShiftType          string  `json:"shift_type"` // computed classification
	HoursWorked        float64 `json:"hours_worked"`
	BasePay            float64 `json:"base_pay"`
	SleepoverAllowance float64 `json:"sleepover_allowance"`
	TotalPay           float64 `json:"total_pay"`
}

// ShiftRequest is the request to create or update a roster entry. Nil
// optional fields clear the corresponding override on update.
type ShiftRequest struct {
	Date       string  `json:"date"`
	TemplateID string  `json:"template_id,omitempty"`
	StaffID    *string `json:"staff_id"`

	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsSleepover bool   `json:"is_sleepover"`

	ManualShiftType  *string  `json:"manual_shift_type"`
	ManualSleepover  *bool    `json:"manual_sleepover"`
	ManualHourlyRate *float64 `json:"manual_hourly_rate"`
	ManualBasePay    *float64 `json:"manual_base_pay"`
	WakeHours        *float64 `json:"wake_hours"`
}

// AssignRequest assigns (or with a nil staff_id, unassigns) a shift.
// Override commits the assignment even when a break violation exists.
type AssignRequest struct {
	StaffID  *string `json:"staff_id"`
	Override bool    `json:"override"`
}

// ViolationDTO describes a rest-period violation between two shifts.
type ViolationDTO struct {
	StaffID  string   `json:"staff_id"`
	GapHours float64  `json:"gap_hours"`
	Message  string   `json:"message"`
	Details  string   `json:"details"`
	Current  ShiftDTO `json:"current_shift"`
	Next     ShiftDTO `json:"next_shift"`
}

// GenerateResultDTO is the outcome of a month generation run.
type GenerateResultDTO struct {
	Month   string `json:"month"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

// DeleteMonthResultDTO reports a bulk month deletion.
type DeleteMonthResultDTO struct {
	Month   string `json:"month"`
	Deleted int    `json:"deleted"`
}

// WindowDTO is the resolved calendar window for one month.
type WindowDTO struct {
	Month  string       `json:"month"`
	Weeks  [][7]string  `json:"weeks"`
	Months []string     `json:"months"`
}

// SettingsDTO carries the active rate table.
type SettingsDTO struct {
	PayMode string             `json:"pay_mode"`
	Rates   map[string]float64 `json:"rates"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toStaffDTO(s roster.Staff) StaffDTO {
	return StaffDTO{
		ID:        s.ID,
		Name:      s.Name,
		Active:    s.Active,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}

func toTemplateDTO(t roster.ShiftTemplate) TemplateDTO {
	return TemplateDTO{
		ID:          t.ID,
		Name:        t.Name,
		StartTime:   t.Start.String(),
		EndTime:     t.End.String(),
		IsSleepover: t.IsSleepover,
		DayOfWeek:   t.DayOfWeek,
	}
}

func toShiftDTO(e roster.RosterEntry) ShiftDTO {
	manualType, manualSleepover := e.Override.Fields()

	dto := ShiftDTO{
		ID:          e.ID,
		Date:        e.Date.String(),
		TemplateID:  e.TemplateID,
		StaffID:     e.StaffID,
		StaffName:   e.StaffName,
		StartTime:   e.Start.String(),
		EndTime:     e.End.String(),
		IsSleepover: e.IsSleepover,

		ManualSleepover:  manualSleepover,
		ManualHourlyRate: moneyPtr(e.ManualHourlyRate),
		ManualBasePay:    moneyPtr(e.ManualBasePay),
		WakeHours:        moneyPtr(e.WakeHours),

		ShiftType:          string(roster.Classify(e)),
		HoursWorked:        money(e.HoursWorked),
		BasePay:            money(e.BasePay),
		SleepoverAllowance: money(e.SleepoverAllowance),
		TotalPay:           money(e.TotalPay),
	}
	if manualType != nil {
		t := string(*manualType)
		dto.ManualShiftType = &t
	}
	return dto
}

func toShiftDTOs(entries []roster.RosterEntry) []ShiftDTO {
	dtos := make([]ShiftDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toShiftDTO(e)
	}
	return dtos
}

func toViolationDTO(v *roster.BreakViolation) ViolationDTO {
	gap, _ := roster.Round2(v.GapHours).Float64()
	return ViolationDTO{
		StaffID:  v.StaffID,
		GapHours: gap,
		Message:  v.Message,
		Details:  v.Details,
		Current:  toShiftDTO(v.Current),
		Next:     toShiftDTO(v.Next),
	}
}

func toWindowDTO(w roster.MonthWindow) WindowDTO {
	dto := WindowDTO{Month: w.Month.String()}
	for _, week := range w.Weeks {
		var days [7]string
		for i, d := range week {
			days[i] = d.String()
		}
		dto.Weeks = append(dto.Weeks, days)
	}
	for _, m := range w.Months {
		dto.Months = append(dto.Months, m.String())
	}
	return dto
}

func toSettingsDTO(rt roster.RateTable) SettingsDTO {
	dto := SettingsDTO{
		PayMode: string(rt.PayMode),
		Rates:   make(map[string]float64, len(rt.Rates)),
	}
	for key, rate := range rt.Rates {
		dto.Rates[key] = money(rate)
	}
	return dto
}

func money(d decimal.Decimal) float64 {
	f, _ := roster.Round2(d).Float64()
	return f
}

func moneyPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := money(*d)
	return &f
}
