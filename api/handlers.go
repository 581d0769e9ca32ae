/*
handlers.go - HTTP API handlers for the roster engine

PURPOSE:
  Exposes the shift classification, break-compliance, and pay engine via
  REST API. Handles HTTP request/response, JSON serialization, and
  delegates all rule logic to the roster package.

ENDPOINTS:
  Health:
    GET    /api/health                   Liveness probe

  Staff:
    GET    /api/staff                    List staff (?active_only=true)
    POST   /api/staff                    Create staff member
    PUT    /api/staff/{id}               Rename staff member
    DELETE /api/staff/{id}               Deactivate (soft delete)

  Shift templates:
    GET    /api/shift-templates          List templates
    POST   /api/shift-templates          Create template
    PUT    /api/shift-templates/{id}     Update template
    DELETE /api/shift-templates/{id}     Delete template

  Roster:
    GET    /api/roster?month=YYYY-MM     Entries for a month
    POST   /api/roster                   Add a single shift
    PUT    /api/roster/{id}              Update a shift (pay recomputed)
    DELETE /api/roster/{id}              Delete a shift
    DELETE /api/roster/month/{month}     Clear a whole month
    POST   /api/roster/{id}/assign       Assign staff (break-checked)
    POST   /api/generate-roster/{month}  Generate entries from templates
    GET    /api/roster-window/{month}    Calendar window for the grid
    GET    /api/export/{month}           Export (?format=xlsx|csv)

  Settings:
    GET    /api/settings                 Active rate table
    PUT    /api/settings                 Replace rate table

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (classify, compute, check)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Break-compliance violation awaiting override
  - 500: Internal errors, incomplete rate configuration

BREAK CHECK CONTRACT:
  Assignment runs the rest-period check. A violation comes back as a
  409 with the violation payload; repeating the request with
  override=true commits the assignment anyway. The check never blocks
  on its own authority.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - seed.go: First-run default data
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/warp/roster-engine/export"
	"github.com/warp/roster-engine/metrics"
	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store roster.Store
	Log   zerolog.Logger
}

// NewHandler creates a new handler with the given store.
func NewHandler(store roster.Store, log zerolog.Logger) *Handler {
	return &Handler{Store: store, Log: log}
}

// rates loads the active rate table, falling back to the shipped
// defaults when none has been saved yet.
func (h *Handler) rates(ctx context.Context) (roster.RateTable, error) {
	rt, err := h.Store.GetRateTable(ctx)
	if err != nil {
		return roster.RateTable{}, err
	}
	if rt == nil {
		return roster.DefaultRateTable(), nil
	}
	return *rt, nil
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// STAFF HANDLERS
// =============================================================================

// ListStaff returns staff members, optionally only active ones.
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	staff, err := h.Store.ListStaff(r.Context(), activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff", err)
		return
	}

	dtos := make([]StaffDTO, len(staff))
	for i, s := range staff {
		dtos[i] = toStaffDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateStaff creates a new active staff member.
func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req StaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Staff name is required", nil)
		return
	}

	s := roster.Staff{ID: uuid.NewString(), Name: req.Name, Active: true}
	if err := h.Store.SaveStaff(r.Context(), s); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create staff", err)
		return
	}

	writeJSON(w, http.StatusCreated, toStaffDTO(s))
}

// UpdateStaff renames a staff member.
func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req StaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Staff name is required", nil)
		return
	}

	s, err := h.Store.GetStaff(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get staff", err)
		return
	}
	if s == nil {
		writeError(w, http.StatusNotFound, "Staff member not found", nil)
		return
	}

	s.Name = req.Name
	if err := h.Store.SaveStaff(r.Context(), *s); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update staff", err)
		return
	}
	writeJSON(w, http.StatusOK, toStaffDTO(*s))
}

// DeactivateStaff soft-deletes a staff member. Historical roster
// entries keep their assignee.
func (h *Handler) DeactivateStaff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, err := h.Store.GetStaff(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get staff", err)
		return
	}
	if s == nil {
		writeError(w, http.StatusNotFound, "Staff member not found", nil)
		return
	}

	if err := h.Store.DeactivateStaff(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to deactivate staff", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// =============================================================================
// TEMPLATE HANDLERS
// =============================================================================

// ListTemplates returns all shift templates.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Store.ListTemplates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list templates", err)
		return
	}

	dtos := make([]TemplateDTO, len(templates))
	for i, t := range templates {
		dtos[i] = toTemplateDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTemplate creates a shift template.
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	t, err := templateFromRequest(uuid.NewString(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid template", err)
		return
	}

	if err := h.Store.SaveTemplate(r.Context(), t); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create template", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTemplateDTO(t))
}

// UpdateTemplate updates a shift template. Entries already generated
// from it are untouched.
func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.Store.GetTemplate(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get template", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Template not found", nil)
		return
	}

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	t, err := templateFromRequest(id, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid template", err)
		return
	}

	if err := h.Store.SaveTemplate(r.Context(), t); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update template", err)
		return
	}
	writeJSON(w, http.StatusOK, toTemplateDTO(t))
}

// DeleteTemplate removes a template.
func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteTemplate(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete template", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func templateFromRequest(id string, req TemplateRequest) (roster.ShiftTemplate, error) {
	var t roster.ShiftTemplate
	var err error

	if req.Name == "" {
		return t, &roster.ValidationError{Field: "name", Reason: "name is required"}
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return t, &roster.ValidationError{
			Field: "day_of_week", Value: fmt.Sprint(req.DayOfWeek),
			Reason: "must be 0 (Monday) through 6 (Sunday)",
		}
	}

	t.ID = id
	t.Name = req.Name
	t.IsSleepover = req.IsSleepover
	t.DayOfWeek = req.DayOfWeek
	if t.Start, err = roster.ParseClock(req.StartTime); err != nil {
		return t, err
	}
	if t.End, err = roster.ParseClock(req.EndTime); err != nil {
		return t, err
	}
	return t, nil
}

// =============================================================================
// ROSTER HANDLERS
// =============================================================================

// GetRoster returns the entries of one month. Pay is recomputed from
// the active rate table on the way out: the stored figures are a cache,
// and a settings change since the last write must show up here.
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	month, err := roster.ParseMonthKey(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	entries, err := h.Store.EntriesForMonth(r.Context(), month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	entries, err = h.refreshPay(r.Context(), entries)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to recompute pay", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTOs(entries))
}

// refreshPay recomputes each entry against the current rate table and
// persists the ones whose cached figures went stale.
func (h *Handler) refreshPay(ctx context.Context, entries []roster.RosterEntry) ([]roster.RosterEntry, error) {
	rates, err := h.rates(ctx)
	if err != nil {
		return nil, err
	}

	for i, e := range entries {
		computed, err := roster.ComputePay(e, rates)
		if err != nil {
			// A per-entry rate gap must not take down the whole month.
			h.Log.Warn().Err(err).Str("entry_id", e.ID).Msg("pay recompute skipped")
			continue
		}
		metrics.IncPayComputed()
		computed = roster.RoundEntry(computed)
		if !computed.TotalPay.Equal(e.TotalPay) || !computed.BasePay.Equal(e.BasePay) ||
			!computed.SleepoverAllowance.Equal(e.SleepoverAllowance) {
			if err := h.Store.SaveEntry(ctx, computed); err != nil {
				return nil, err
			}
		}
		entries[i] = computed
	}
	return entries, nil
}

// CreateShift adds a single shift to the roster.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := h.entryFromRequest(r.Context(), uuid.NewString(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	computed, err := h.computeAndSave(r.Context(), entry)
	if err != nil {
		h.writeComputeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(computed))
}

// UpdateShift replaces a shift's inputs and recomputes its pay.
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.Store.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}

	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.TemplateID == "" {
		req.TemplateID = existing.TemplateID
	}

	entry, err := h.entryFromRequest(r.Context(), id, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	computed, err := h.computeAndSave(r.Context(), entry)
	if err != nil {
		h.writeComputeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(computed))
}

// DeleteShift removes one roster entry.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete shift", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DeleteMonth clears every entry of a month.
func (h *Handler) DeleteMonth(w http.ResponseWriter, r *http.Request) {
	month, err := roster.ParseMonthKey(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	deleted, err := h.Store.DeleteMonth(r.Context(), month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear month", err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteMonthResultDTO{Month: month.String(), Deleted: deleted})
}

// entryFromRequest builds a domain entry from the wire representation.
// The staff name is resolved here so break-violation messages and the
// grid can show it without a join.
func (h *Handler) entryFromRequest(ctx context.Context, id string, req ShiftRequest) (roster.RosterEntry, error) {
	var e roster.RosterEntry
	var err error

	e.ID = id
	e.TemplateID = req.TemplateID
	e.IsSleepover = req.IsSleepover

	if e.Date, err = roster.ParseDate(req.Date); err != nil {
		return e, err
	}
	if e.Start, err = roster.ParseClock(req.StartTime); err != nil {
		return e, err
	}
	if e.End, err = roster.ParseClock(req.EndTime); err != nil {
		return e, err
	}

	var manualType *roster.ShiftType
	if req.ManualShiftType != nil {
		t := roster.ShiftType(*req.ManualShiftType)
		if !roster.ValidShiftType(t) {
			return e, &roster.ValidationError{
				Field: "manual_shift_type", Value: *req.ManualShiftType,
				Reason: "unknown shift type",
			}
		}
		manualType = &t
	}
	e.Override = roster.OverrideFromFields(manualType, req.ManualSleepover)

	e.ManualHourlyRate = requestDecimal(req.ManualHourlyRate)
	e.ManualBasePay = requestDecimal(req.ManualBasePay)
	e.WakeHours = requestDecimal(req.WakeHours)

	if req.StaffID != nil && *req.StaffID != "" {
		if err := h.attachStaff(ctx, &e, *req.StaffID); err != nil {
			return e, err
		}
	}
	return e, nil
}

func (h *Handler) attachStaff(ctx context.Context, e *roster.RosterEntry, staffID string) error {
	s, err := h.Store.GetStaff(ctx, staffID)
	if err != nil {
		return err
	}
	if s == nil {
		return &roster.ValidationError{Field: "staff_id", Value: staffID, Reason: "unknown staff member"}
	}
	e.StaffID = &s.ID
	e.StaffName = &s.Name
	return nil
}

func (h *Handler) computeAndSave(ctx context.Context, entry roster.RosterEntry) (roster.RosterEntry, error) {
	rates, err := h.rates(ctx)
	if err != nil {
		return entry, err
	}
	computed, err := roster.ComputePay(entry, rates)
	if err != nil {
		return entry, err
	}
	metrics.IncPayComputed()
	if err := h.Store.SaveEntry(ctx, computed); err != nil {
		return entry, err
	}
	return roster.RoundEntry(computed), nil
}

func (h *Handler) writeComputeError(w http.ResponseWriter, err error) {
	switch {
	case roster.IsValidation(err):
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
	case roster.IsConfiguration(err):
		writeError(w, http.StatusInternalServerError, "Rate table is incomplete", err)
	default:
		writeError(w, http.StatusInternalServerError, "Failed to save shift", err)
	}
}

// =============================================================================
// ASSIGNMENT (break-checked)
// =============================================================================

// AssignShift assigns or unassigns a staff member, running the
// rest-period check. A violation is advisory: it comes back as a 409,
// and the client repeats the request with override=true to commit.
func (h *Handler) AssignShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	entry, err := h.Store.GetEntry(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	proposed := *entry
	proposed.StaffID = nil
	proposed.StaffName = nil
	if req.StaffID != nil && *req.StaffID != "" {
		if err := h.attachStaff(ctx, &proposed, *req.StaffID); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid assignment", err)
			return
		}
	}

	if proposed.Assigned() {
		existing, err := h.Store.EntriesForStaff(ctx, *proposed.StaffID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load staff shifts", err)
			return
		}
		if v := roster.CheckBreaks(proposed, existing); v != nil {
			metrics.IncBreakViolation()
			if !req.Override {
				metrics.IncShiftAssigned("violation")
				writeJSON(w, http.StatusConflict, map[string]any{
					"error":     "Break compliance violation",
					"code":      "BREAK_VIOLATION",
					"violation": toViolationDTO(v),
				})
				return
			}
			metrics.IncBreakOverride()
			h.Log.Info().
				Str("entry_id", proposed.ID).
				Str("staff_id", v.StaffID).
				Str("gap_hours", v.GapHours.StringFixed(1)).
				Msg("break violation overridden")
		}
	}

	computed, err := h.computeAndSave(ctx, proposed)
	if err != nil {
		metrics.IncShiftAssigned("error")
		h.writeComputeError(w, err)
		return
	}
	metrics.IncShiftAssigned("ok")
	writeJSON(w, http.StatusOK, toShiftDTO(computed))
}

// =============================================================================
// GENERATION AND WINDOW
// =============================================================================

// GenerateRoster creates the month's entries from the stored templates.
// Days that already carry an entry for a template are skipped, so
// re-generating a partially built month fills only the gaps.
func (h *Handler) GenerateRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	month, err := roster.ParseMonthKey(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	templates, err := h.Store.ListTemplates(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load templates", err)
		return
	}
	rates, err := h.rates(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load rates", err)
		return
	}

	entries, err := roster.GenerateMonth(month, templates, rates)
	if err != nil {
		metrics.IncRosterGenerated("error")
		h.writeComputeError(w, err)
		return
	}

	created, skipped := 0, 0
	for _, e := range entries {
		exists, err := h.Store.EntryExists(ctx, e.Date, e.TemplateID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to check existing entries", err)
			return
		}
		if exists {
			skipped++
			continue
		}
		e.ID = uuid.NewString()
		if err := h.Store.SaveEntry(ctx, e); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save entry", err)
			return
		}
		created++
	}

	metrics.IncRosterGenerated("ok")
	h.Log.Info().
		Str("month", month.String()).
		Int("created", created).
		Int("skipped", skipped).
		Msg("roster generated")
	writeJSON(w, http.StatusOK, GenerateResultDTO{
		Month:   month.String(),
		Created: created,
		Skipped: skipped,
	})
}

// GetWindow returns the Monday-aligned calendar window for a month.
func (h *Handler) GetWindow(w http.ResponseWriter, r *http.Request) {
	month, err := roster.ParseMonthKey(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}
	writeJSON(w, http.StatusOK, toWindowDTO(roster.ResolveWindow(month)))
}

// =============================================================================
// EXPORT
// =============================================================================

// Export streams the month's roster as a spreadsheet. Format is chosen
// with ?format=xlsx (default) or ?format=csv.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	month, err := roster.ParseMonthKey(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	entries, err := h.Store.EntriesForMonth(ctx, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}
	entries, err = h.refreshPay(ctx, entries)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to recompute pay", err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="roster-%s.csv"`, month))
		if err := export.CSV(w, entries); err != nil {
			h.Log.Error().Err(err).Msg("csv export failed")
		}
	case "", "xlsx":
		w.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="roster-%s.xlsx"`, month))
		if err := export.Excel(w, month, entries); err != nil {
			h.Log.Error().Err(err).Msg("excel export failed")
		}
	default:
		writeError(w, http.StatusBadRequest, "Unknown format (use xlsx or csv)", nil)
	}
}

// =============================================================================
// SETTINGS
// =============================================================================

// GetSettings returns the active rate table.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	rates, err := h.rates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(rates))
}

// UpdateSettings replaces the rate table. Cached pay figures go stale
// here and are refreshed the next time a month is read.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rt := roster.RateTable{
		PayMode: roster.PayMode(req.PayMode),
		Rates:   make(map[string]decimal.Decimal, len(req.Rates)),
	}
	for key, rate := range req.Rates {
		rt.Rates[key] = decimal.NewFromFloat(rate).Round(2)
	}

	if err := rt.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate table", err)
		return
	}

	if err := h.Store.SaveRateTable(r.Context(), rt); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}
	h.Log.Info().Str("pay_mode", req.PayMode).Msg("rate table updated")
	writeJSON(w, http.StatusOK, toSettingsDTO(rt))
}

// =============================================================================
// HELPERS
// =============================================================================

func requestDecimal(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
