// Package store provides an in-memory roster.Store implementation for
// testing and development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/roster-engine/roster"
)

// Memory implements roster.Store with maps behind a RWMutex.
type Memory struct {
	mu        sync.RWMutex
	staff     map[string]roster.Staff
	templates map[string]roster.ShiftTemplate
	entries   map[string]roster.RosterEntry
	rates     *roster.RateTable
}

func NewMemory() *Memory {
	return &Memory{
		staff:     make(map[string]roster.Staff),
		templates: make(map[string]roster.ShiftTemplate),
		entries:   make(map[string]roster.RosterEntry),
	}
}

// =============================================================================
// STAFF
// =============================================================================

func (m *Memory) SaveStaff(_ context.Context, s roster.Staff) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staff[s.ID] = s
	return nil
}

func (m *Memory) GetStaff(_ context.Context, id string) (*roster.Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.staff[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *Memory) ListStaff(_ context.Context, activeOnly bool) ([]roster.Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []roster.Staff
	for _, s := range m.staff {
		if activeOnly && !s.Active {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *Memory) DeactivateStaff(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.staff[id]
	if !ok {
		return nil
	}
	s.Active = false
	m.staff[id] = s
	return nil
}

// =============================================================================
// TEMPLATES
// =============================================================================

func (m *Memory) SaveTemplate(_ context.Context, t roster.ShiftTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[t.ID] = t
	return nil
}

func (m *Memory) GetTemplate(_ context.Context, id string) (*roster.ShiftTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *Memory) ListTemplates(_ context.Context) ([]roster.ShiftTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []roster.ShiftTemplate
	for _, t := range m.templates {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DayOfWeek != result[j].DayOfWeek {
			return result[i].DayOfWeek < result[j].DayOfWeek
		}
		return result[i].Start.Minutes() < result[j].Start.Minutes()
	})
	return result, nil
}

func (m *Memory) DeleteTemplate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.templates, id)
	return nil
}

// =============================================================================
// ROSTER ENTRIES
// =============================================================================

func (m *Memory) SaveEntry(_ context.Context, e roster.RosterEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = roster.RoundEntry(e)
	return nil
}

func (m *Memory) GetEntry(_ context.Context, id string) (*roster.RosterEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *Memory) EntriesForMonth(_ context.Context, month roster.MonthKey) ([]roster.RosterEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []roster.RosterEntry
	for _, e := range m.entries {
		if month.Contains(e.Date) {
			result = append(result, e)
		}
	}
	sortEntries(result)
	return result, nil
}

func (m *Memory) EntriesForStaff(_ context.Context, staffID string) ([]roster.RosterEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []roster.RosterEntry
	for _, e := range m.entries {
		if e.StaffID != nil && *e.StaffID == staffID {
			result = append(result, e)
		}
	}
	sortEntries(result)
	return result, nil
}

func (m *Memory) EntryExists(_ context.Context, date roster.Date, templateID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.TemplateID == templateID && e.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) DeleteEntry(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *Memory) DeleteMonth(_ context.Context, month roster.MonthKey) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := 0
	for id, e := range m.entries {
		if month.Contains(e.Date) {
			delete(m.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (m *Memory) GetRateTable(_ context.Context) (*roster.RateTable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.rates == nil {
		return nil, nil
	}
	cp := *m.rates
	return &cp, nil
}

func (m *Memory) SaveRateTable(_ context.Context, rt roster.RateTable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates = &rt
	return nil
}

func sortEntries(entries []roster.RosterEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartInstant().Before(entries[j].StartInstant())
	})
}

var _ roster.Store = (*Memory)(nil)
