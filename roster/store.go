/*
store.go - Persistence interface for roster data

PURPOSE:
  Defines the interface between the engine's callers and the database.
  The engine itself never touches a Store; handlers load plain data,
  run the pure computations, and persist the results.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - roster/store/memory.go: In-memory for testing

CONVENTIONS:
  Get* methods return (nil, nil) for a missing record; callers translate
  that to their own not-found handling. Monetary fields are rounded to
  2 decimal places by the implementation at write time.
*/
package roster

import "context"

// Store handles persistence of staff, templates, roster entries, and
// the active rate table.
type Store interface {
	// Staff. Deletion is a soft deactivate.
	SaveStaff(ctx context.Context, s Staff) error
	GetStaff(ctx context.Context, id string) (*Staff, error)
	ListStaff(ctx context.Context, activeOnly bool) ([]Staff, error)
	DeactivateStaff(ctx context.Context, id string) error

	// Shift templates. Deleting a template never touches entries already
	// generated from it.
	SaveTemplate(ctx context.Context, t ShiftTemplate) error
	GetTemplate(ctx context.Context, id string) (*ShiftTemplate, error)
	ListTemplates(ctx context.Context) ([]ShiftTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error

	// Roster entries.
	SaveEntry(ctx context.Context, e RosterEntry) error
	GetEntry(ctx context.Context, id string) (*RosterEntry, error)
	EntriesForMonth(ctx context.Context, month MonthKey) ([]RosterEntry, error)
	EntriesForStaff(ctx context.Context, staffID string) ([]RosterEntry, error)
	EntryExists(ctx context.Context, date Date, templateID string) (bool, error)
	DeleteEntry(ctx context.Context, id string) error

	// DeleteMonth removes every entry in the month and returns how many
	// were removed.
	DeleteMonth(ctx context.Context, month MonthKey) (int, error)

	// Settings. GetRateTable returns (nil, nil) when none is stored yet.
	GetRateTable(ctx context.Context) (*RateTable, error)
	SaveRateTable(ctx context.Context, rt RateTable) error
}
