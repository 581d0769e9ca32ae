/*
window.go - Month window resolution for the roster grid

PURPOSE:
  Computes the Monday-aligned calendar weeks needed to render one month
  with no partial weeks, and the set of months whose shift data must be
  loaded to cover that window. Pure calendar arithmetic: owns no data,
  has no side effects.

WINDOW SHAPE:
  Weeks start on the Monday at or before the 1st of the month and
  continue until a week starting outside the target month has been
  rendered, capped at 6 weeks. The trailing spillover week is included
  even when the month ends exactly on a Sunday; the grid always shows at
  least one day past the month.
*/
package roster

// MaxWindowWeeks caps the rendered grid height.
const MaxWindowWeeks = 6

// Week is one Monday-first row of the roster grid.
type Week [7]Date

// MonthWindow is the resolved grid for one target month.
type MonthWindow struct {
	Month MonthKey
	Weeks []Week

	// Months lists, in calendar order, every month overlapping the
	// window. Always contains the target month; contains the previous
	// month when the first Monday spills backward, and the next month
	// when the last rendered Sunday spills forward.
	Months []MonthKey
}

// First returns the first rendered day.
func (w MonthWindow) First() Date { return w.Weeks[0][0] }

// Last returns the last rendered day.
func (w MonthWindow) Last() Date { return w.Weeks[len(w.Weeks)-1][6] }

// ResolveWindow computes the calendar window for a target month.
func ResolveWindow(month MonthKey) MonthWindow {
	first := month.First()
	cursor := first.AddDays(-first.TemplateWeekday()) // Monday at or before the 1st

	var weeks []Week
	for len(weeks) < MaxWindowWeeks {
		var week Week
		for i := 0; i < 7; i++ {
			week[i] = cursor
			cursor = cursor.AddDays(1)
		}
		weeks = append(weeks, week)

		// Stop once a week starting past the target month is rendered.
		if len(weeks) > 1 && !month.Contains(week[0]) {
			break
		}
	}

	w := MonthWindow{Month: month, Weeks: weeks}
	w.Months = windowMonths(w.First(), w.Last())
	return w
}

// windowMonths returns the distinct months overlapping [first, last] in
// calendar order. The window is contiguous and always spans the target
// month, so the endpoints determine the set.
func windowMonths(first, last Date) []MonthKey {
	months := []MonthKey{first.MonthKey()}
	for cursor := first.MonthKey(); cursor != last.MonthKey(); cursor = cursor.Next() {
		months = append(months, cursor.Next())
	}
	return months
}
