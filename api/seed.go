/*
seed.go - First-run default data

PURPOSE:
  Populates an empty database with the data the system ships with: the
  default staff roster, the weekly shift template set, and the default
  rate table. Each section seeds independently and only when empty, so
  a partially configured database is never overwritten.
*/
package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/warp/roster-engine/roster"
)

// Seed fills empty sections of the store with default data.
func Seed(ctx context.Context, store roster.Store, log zerolog.Logger) error {
	staff, err := store.ListStaff(ctx, false)
	if err != nil {
		return err
	}
	if len(staff) == 0 {
		for _, name := range roster.DefaultStaffNames {
			s := roster.Staff{ID: uuid.NewString(), Name: name, Active: true}
			if err := store.SaveStaff(ctx, s); err != nil {
				return err
			}
		}
		log.Info().Int("count", len(roster.DefaultStaffNames)).Msg("seeded default staff")
	}

	templates, err := store.ListTemplates(ctx)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		defaults := roster.DefaultTemplates()
		for _, t := range defaults {
			t.ID = uuid.NewString()
			if err := store.SaveTemplate(ctx, t); err != nil {
				return err
			}
		}
		log.Info().Int("count", len(defaults)).Msg("seeded default templates")
	}

	rates, err := store.GetRateTable(ctx)
	if err != nil {
		return err
	}
	if rates == nil {
		if err := store.SaveRateTable(ctx, roster.DefaultRateTable()); err != nil {
			return err
		}
		log.Info().Msg("seeded default rate table")
	}

	return nil
}
