/*
classify.go - Shift type classification

PURPOSE:
  Determines which pay-rate category applies to a shift. This is the
  single source of truth for classification: both roster generation and
  assignment/edit paths call it, so the presentation and persistence
  layers can never drift apart.

PRECEDENCE (first match wins):
  1. A forced sleepover override (true) classifies as sleepover
     regardless of day or time.
  2. An explicit category override is used directly; it may itself be
     "sleepover", which forces sleepover-style pay.
  3. Automatic detection:
     a. the shift's own sleepover flag (possibly suppressed by a
        Sleepover(false) override)
     b. Saturday / Sunday by weekday
     c. weekday hour heuristic (see below)

HOUR HEURISTIC:
  The weekday rule is deliberately hour-granular - it inspects only the
  hour component of the start and end times:

    start hour < 6, or the shift appears to wrap past midnight
    (end hour <= start hour with a non-zero end hour)  -> night
    start hour >= 20                                   -> evening
    otherwise                                          -> day

  Downstream pay depends on these boundaries bit-for-bit, so they must
  not be "improved" (e.g. to minute granularity).

KNOWN GAP:
  The automatic path never yields public_holiday: no holiday calendar is
  consulted. public_holiday is only reachable through an explicit
  category override. This matches the behavior the business signed off
  on; do not add a holiday lookup here.
*/
package roster

import "time"

// Classify returns the pay-rate category for a shift, honoring any
// manual override before falling back to automatic detection.
func Classify(e RosterEntry) ShiftType {
	sleepover := e.IsSleepover

	if forced, ok := e.Override.ManualSleepover(); ok {
		if forced {
			return ShiftSleepover
		}
		sleepover = false
	}

	if category, ok := e.Override.ManualCategory(); ok {
		return category
	}

	if sleepover {
		return ShiftSleepover
	}

	return autoCategory(e.Date, e.Start, e.End)
}

// autoCategory is the automatic non-sleepover classification of a time
// window: Saturday/Sunday by weekday, then the weekday hour heuristic.
func autoCategory(date Date, start, end ClockTime) ShiftType {
	switch date.Weekday() {
	case time.Saturday:
		return ShiftSaturday
	case time.Sunday:
		return ShiftSunday
	}

	startHour := start.Hour()
	endHour := end.Hour()

	// end hour at or before the start hour (and non-zero) means the
	// shift appears to wrap past midnight
	if startHour < 6 || (endHour <= startHour && endHour > 0) {
		return ShiftWeekdayNight
	}
	if startHour >= 20 {
		return ShiftWeekdayEvening
	}
	return ShiftWeekdayDay
}

// HourlyCategory returns the category whose hourly rate applies to the
// shift's time window, ignoring sleepover status. Used to price wake
// hours on sleepover shifts.
func HourlyCategory(e RosterEntry) ShiftType {
	if category, ok := e.Override.ManualCategory(); ok && category != ShiftSleepover {
		return category
	}
	return autoCategory(e.Date, e.Start, e.End)
}

// IsSleepoverShift reports whether the shift classifies as a sleepover,
// after overrides.
func IsSleepoverShift(e RosterEntry) bool {
	return Classify(e) == ShiftSleepover
}
