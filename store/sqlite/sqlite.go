/*
Package sqlite provides a SQLite-backed implementation of roster.Store.

PURPOSE:
  Persists staff, shift templates, roster entries, and the active rate
  table. In production, the same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

KEY TABLES:
  staff:           Rosterable staff members (soft-deactivated, never deleted)
  shift_templates: Weekly default shift definitions
  roster_entries:  One row per rostered shift, with computed pay cached
  settings:        Key-value store; carries the rate table as JSON

REPRESENTATION:
  Dates are stored as "YYYY-MM-DD" and clock times as "HH:MM", matching
  the API wire format. Monetary values are stored as decimal TEXT, never
  floating point, and are rounded to 2 decimal places at write time.
  The manual override is flattened into the nullable manual_shift_type /
  manual_sleepover columns.

INDEXES:
  - idx_entries_date:          Month queries (hot path for the grid)
  - idx_entries_staff:         Per-staff timelines for break checks
  - idx_entries_date_template: Duplicate detection on re-generation

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, with WAL mode for better
  read concurrency and crash recovery.

USAGE:
  st, err := sqlite.New("./data/roster.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - roster/store.go:        Interface definition
  - roster/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/roster-engine/roster"
)

// Store implements roster.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Staff (soft-deactivated so historical entries keep their assignee)
	CREATE TABLE IF NOT EXISTS staff (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_staff_active
		ON staff(active);

	-- Shift templates (weekly defaults; day_of_week 0=Monday .. 6=Sunday)
	CREATE TABLE IF NOT EXISTS shift_templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		is_sleepover BOOLEAN NOT NULL DEFAULT FALSE,
		day_of_week INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_templates_day
		ON shift_templates(day_of_week);

	-- Roster entries (computed pay cached alongside the inputs)
	CREATE TABLE IF NOT EXISTS roster_entries (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		template_id TEXT NOT NULL DEFAULT '',
		staff_id TEXT,
		staff_name TEXT,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		is_sleepover BOOLEAN NOT NULL DEFAULT FALSE,
		manual_shift_type TEXT,
		manual_sleepover BOOLEAN,
		manual_hourly_rate TEXT,
		manual_base_pay TEXT,
		wake_hours TEXT,
		hours_worked TEXT NOT NULL,
		base_pay TEXT NOT NULL,
		sleepover_allowance TEXT NOT NULL,
		total_pay TEXT NOT NULL
	);

	-- Month queries scan by date prefix (hot path for the grid)
	CREATE INDEX IF NOT EXISTS idx_entries_date
		ON roster_entries(date);

	-- Per-staff timelines for break compliance checks
	CREATE INDEX IF NOT EXISTS idx_entries_staff
		ON roster_entries(staff_id) WHERE staff_id IS NOT NULL;

	-- Duplicate detection when re-generating a partially built month
	CREATE INDEX IF NOT EXISTS idx_entries_date_template
		ON roster_entries(date, template_id);

	-- Settings (rate table stored as JSON under key 'rates')
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// STAFF
// =============================================================================

func (s *Store) SaveStaff(ctx context.Context, st roster.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO staff (id, name, active, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			active = excluded.active
	`

	createdAt := st.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		st.ID, st.Name, st.Active, createdAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetStaff(ctx context.Context, id string) (*roster.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st roster.Staff
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, active, created_at FROM staff WHERE id = ?", id,
	).Scan(&st.ID, &st.Name, &st.Active, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	st.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &st, nil
}

func (s *Store) ListStaff(ctx context.Context, activeOnly bool) ([]roster.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, name, active, created_at FROM staff ORDER BY name"
	if activeOnly {
		query = "SELECT id, name, active, created_at FROM staff WHERE active = TRUE ORDER BY name"
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []roster.Staff
	for rows.Next() {
		var st roster.Staff
		var createdAt string
		if err := rows.Scan(&st.ID, &st.Name, &st.Active, &createdAt); err != nil {
			return nil, err
		}
		st.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		result = append(result, st)
	}
	return result, rows.Err()
}

func (s *Store) DeactivateStaff(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "UPDATE staff SET active = FALSE WHERE id = ?", id)
	return err
}

// =============================================================================
// SHIFT TEMPLATES
// =============================================================================

func (s *Store) SaveTemplate(ctx context.Context, t roster.ShiftTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO shift_templates (id, name, start_time, end_time, is_sleepover, day_of_week)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			is_sleepover = excluded.is_sleepover,
			day_of_week = excluded.day_of_week
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.Name, t.Start.String(), t.End.String(), t.IsSleepover, t.DayOfWeek)
	return err
}

func (s *Store) GetTemplate(ctx context.Context, id string) (*roster.ShiftTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, start_time, end_time, is_sleepover, day_of_week FROM shift_templates WHERE id = ?", id)

	t, err := scanTemplate(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]roster.ShiftTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, start_time, end_time, is_sleepover, day_of_week FROM shift_templates ORDER BY day_of_week, start_time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []roster.ShiftTemplate
	for rows.Next() {
		t, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func scanTemplate(scan func(...any) error) (roster.ShiftTemplate, error) {
	var t roster.ShiftTemplate
	var start, end string

	if err := scan(&t.ID, &t.Name, &start, &end, &t.IsSleepover, &t.DayOfWeek); err != nil {
		return t, err
	}

	var err error
	if t.Start, err = roster.ParseClock(start); err != nil {
		return t, fmt.Errorf("template %s: %w", t.ID, err)
	}
	if t.End, err = roster.ParseClock(end); err != nil {
		return t, fmt.Errorf("template %s: %w", t.ID, err)
	}
	return t, nil
}

func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM shift_templates WHERE id = ?", id)
	return err
}

// =============================================================================
// ROSTER ENTRIES
// =============================================================================

const entryColumns = `id, date, template_id, staff_id, staff_name, start_time, end_time,
	is_sleepover, manual_shift_type, manual_sleepover, manual_hourly_rate,
	manual_base_pay, wake_hours, hours_worked, base_pay, sleepover_allowance, total_pay`

func (s *Store) SaveEntry(ctx context.Context, e roster.RosterEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e = roster.RoundEntry(e)
	manualType, manualSleepover := e.Override.Fields()

	query := `
		INSERT INTO roster_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			template_id = excluded.template_id,
			staff_id = excluded.staff_id,
			staff_name = excluded.staff_name,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			is_sleepover = excluded.is_sleepover,
			manual_shift_type = excluded.manual_shift_type,
			manual_sleepover = excluded.manual_sleepover,
			manual_hourly_rate = excluded.manual_hourly_rate,
			manual_base_pay = excluded.manual_base_pay,
			wake_hours = excluded.wake_hours,
			hours_worked = excluded.hours_worked,
			base_pay = excluded.base_pay,
			sleepover_allowance = excluded.sleepover_allowance,
			total_pay = excluded.total_pay
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.Date.String(),
		e.TemplateID,
		e.StaffID,
		e.StaffName,
		e.Start.String(),
		e.End.String(),
		e.IsSleepover,
		shiftTypePtr(manualType),
		manualSleepover,
		decimalPtr(e.ManualHourlyRate),
		decimalPtr(e.ManualBasePay),
		decimalPtr(e.WakeHours),
		e.HoursWorked.String(),
		e.BasePay.String(),
		e.SleepoverAllowance.String(),
		e.TotalPay.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save roster entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, id string) (*roster.RosterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.queryEntries(ctx,
		"SELECT "+entryColumns+" FROM roster_entries WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *Store) EntriesForMonth(ctx context.Context, month roster.MonthKey) ([]roster.RosterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Date strings sort chronologically, so a month is a prefix match.
	return s.queryEntries(ctx,
		"SELECT "+entryColumns+` FROM roster_entries WHERE date LIKE ? ORDER BY date, start_time`,
		month.String()+"-%")
}

func (s *Store) EntriesForStaff(ctx context.Context, staffID string) ([]roster.RosterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEntries(ctx,
		"SELECT "+entryColumns+` FROM roster_entries WHERE staff_id = ? ORDER BY date, start_time`,
		staffID)
}

func (s *Store) EntryExists(ctx context.Context, date roster.Date, templateID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM roster_entries WHERE date = ? AND template_id = ?",
		date.String(), templateID,
	).Scan(&count)
	return count > 0, err
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM roster_entries WHERE id = ?", id)
	return err
}

func (s *Store) DeleteMonth(ctx context.Context, month roster.MonthKey) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM roster_entries WHERE date LIKE ?", month.String()+"-%")
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]roster.RosterEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster entries: %w", err)
	}
	defer rows.Close()

	var entries []roster.RosterEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (roster.RosterEntry, error) {
	var (
		e                roster.RosterEntry
		date, start, end string
		staffID          sql.NullString
		staffName        sql.NullString
		manualType       sql.NullString
		manualSleepover  sql.NullBool
		manualRate       sql.NullString
		manualBase       sql.NullString
		wakeHours        sql.NullString
		hours, base      string
		allowance, total string
	)

	err := rows.Scan(
		&e.ID, &date, &e.TemplateID, &staffID, &staffName, &start, &end,
		&e.IsSleepover, &manualType, &manualSleepover, &manualRate,
		&manualBase, &wakeHours, &hours, &base, &allowance, &total,
	)
	if err != nil {
		return e, fmt.Errorf("failed to scan roster entry: %w", err)
	}

	if e.Date, err = roster.ParseDate(date); err != nil {
		return e, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	if e.Start, err = roster.ParseClock(start); err != nil {
		return e, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	if e.End, err = roster.ParseClock(end); err != nil {
		return e, fmt.Errorf("entry %s: %w", e.ID, err)
	}

	if staffID.Valid {
		e.StaffID = &staffID.String
	}
	if staffName.Valid {
		e.StaffName = &staffName.String
	}

	var mt *roster.ShiftType
	if manualType.Valid {
		t := roster.ShiftType(manualType.String)
		mt = &t
	}
	var ms *bool
	if manualSleepover.Valid {
		ms = &manualSleepover.Bool
	}
	e.Override = roster.OverrideFromFields(mt, ms)

	if e.ManualHourlyRate, err = parseNullDecimal(manualRate); err != nil {
		return e, fmt.Errorf("entry %s manual_hourly_rate: %w", e.ID, err)
	}
	if e.ManualBasePay, err = parseNullDecimal(manualBase); err != nil {
		return e, fmt.Errorf("entry %s manual_base_pay: %w", e.ID, err)
	}
	if e.WakeHours, err = parseNullDecimal(wakeHours); err != nil {
		return e, fmt.Errorf("entry %s wake_hours: %w", e.ID, err)
	}

	if e.HoursWorked, err = decimal.NewFromString(hours); err != nil {
		return e, fmt.Errorf("entry %s hours_worked: %w", e.ID, err)
	}
	if e.BasePay, err = decimal.NewFromString(base); err != nil {
		return e, fmt.Errorf("entry %s base_pay: %w", e.ID, err)
	}
	if e.SleepoverAllowance, err = decimal.NewFromString(allowance); err != nil {
		return e, fmt.Errorf("entry %s sleepover_allowance: %w", e.ID, err)
	}
	if e.TotalPay, err = decimal.NewFromString(total); err != nil {
		return e, fmt.Errorf("entry %s total_pay: %w", e.ID, err)
	}

	return e, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

const ratesKey = "rates"

// rateSettings is the JSON shape of the persisted rate table.
type rateSettings struct {
	PayMode string            `json:"pay_mode"`
	Rates   map[string]string `json:"rates"`
}

func (s *Store) GetRateTable(ctx context.Context) (*roster.RateTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var valueJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT value_json FROM settings WHERE key = ?", ratesKey,
	).Scan(&valueJSON)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stored rateSettings
	if err := json.Unmarshal([]byte(valueJSON), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode rate settings: %w", err)
	}

	rt := roster.RateTable{
		PayMode: roster.PayMode(stored.PayMode),
		Rates:   make(map[string]decimal.Decimal, len(stored.Rates)),
	}
	for key, value := range stored.Rates {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("failed to decode rate %s: %w", key, err)
		}
		rt.Rates[key] = d
	}
	return &rt, nil
}

func (s *Store) SaveRateTable(ctx context.Context, rt roster.RateTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := rateSettings{
		PayMode: string(rt.PayMode),
		Rates:   make(map[string]string, len(rt.Rates)),
	}
	for key, value := range rt.Rates {
		stored.Rates[key] = value.String()
	}

	valueJSON, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode rate settings: %w", err)
	}

	query := `
		INSERT INTO settings (key, value_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value_json = excluded.value_json,
			updated_at = excluded.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		ratesKey, string(valueJSON), time.Now().UTC().Format(time.RFC3339))
	return err
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"roster_entries", "shift_templates", "staff", "settings"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func shiftTypePtr(t *roster.ShiftType) *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

func decimalPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseNullDecimal(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

var _ roster.Store = (*Store)(nil)
