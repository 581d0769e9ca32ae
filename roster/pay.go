/*
pay.go - Pay computation for classified shifts

PURPOSE:
  Computes hours worked, base pay, sleepover allowance, and total pay
  for a single roster entry under the active rate table. The computed
  values are written back onto the entry; they are cached outputs,
  always derivable from the entry's inputs plus the rate table.

RULES:
  Non-sleepover:
    base = hours x rate(category), with a manual hourly rate taking the
    place of the category rate when present. Allowance is zero.

  Sleepover:
    The flat allowance (default or SCHADS, per pay mode) compensates the
    first 2 wake hours. Wake hours beyond 2 are paid at the hourly rate
    that would otherwise apply to the same time window (or the manual
    hourly rate) and form the base pay.

  A manual base pay replaces the computed base outright. Total is always
  base + allowance.

ROUNDING:
  Results are kept at full precision here. Rounding to 2 decimal places
  happens at persistence/serialization (Round2), never mid-computation.
*/
package roster

import "github.com/shopspring/decimal"

var (
	sixty            = decimal.NewFromInt(60)
	includedWakeHours = decimal.NewFromInt(2)
)

// HoursWorked returns the decimal hours between start and end. An end
// at or before the start is treated as spanning into the next day.
func HoursWorked(start, end ClockTime) decimal.Decimal {
	endMins := end.Minutes()
	if endMins <= start.Minutes() {
		endMins += 24 * 60
	}
	return decimal.NewFromInt(int64(endMins - start.Minutes())).Div(sixty)
}

// ComputePay fills in the computed fields of a roster entry. The input
// entry is not mutated; the computed copy is returned. A failure is
// scoped to this entry and must not affect others.
func ComputePay(e RosterEntry, rates RateTable) (RosterEntry, error) {
	e.HoursWorked = HoursWorked(e.Start, e.End)

	var basePay, allowance decimal.Decimal

	if Classify(e) == ShiftSleepover {
		var err error
		allowance, err = rates.SleepoverAllowance()
		if err != nil {
			return e, err
		}
		basePay, err = sleepoverWakePay(e, rates)
		if err != nil {
			return e, err
		}
	} else {
		rate, err := hourlyRateFor(e, rates)
		if err != nil {
			return e, err
		}
		basePay = e.HoursWorked.Mul(rate)
		allowance = decimal.Zero
	}

	if e.ManualBasePay != nil {
		basePay = *e.ManualBasePay
	}

	e.BasePay = basePay
	e.SleepoverAllowance = allowance
	e.TotalPay = basePay.Add(allowance)
	return e, nil
}

// sleepoverWakePay prices wake hours beyond the 2 included in the flat
// allowance. The rate lookup is deferred until extra hours exist, so an
// incomplete rate table does not block a plain sleepover.
func sleepoverWakePay(e RosterEntry, rates RateTable) (decimal.Decimal, error) {
	if e.WakeHours == nil {
		return decimal.Zero, nil
	}
	extra := e.WakeHours.Sub(includedWakeHours)
	if !extra.IsPositive() {
		return decimal.Zero, nil
	}

	rate, err := wakeHourRate(e, rates)
	if err != nil {
		return decimal.Zero, err
	}
	return extra.Mul(rate), nil
}

func wakeHourRate(e RosterEntry, rates RateTable) (decimal.Decimal, error) {
	if e.ManualHourlyRate != nil {
		return *e.ManualHourlyRate, nil
	}
	return rates.HourlyRate(HourlyCategory(e))
}

func hourlyRateFor(e RosterEntry, rates RateTable) (decimal.Decimal, error) {
	if e.ManualHourlyRate != nil {
		return *e.ManualHourlyRate, nil
	}
	return rates.HourlyRate(Classify(e))
}

// RoundEntry returns a copy with all monetary outputs and hours rounded
// for persistence or display.
func RoundEntry(e RosterEntry) RosterEntry {
	e.HoursWorked = Round2(e.HoursWorked)
	e.BasePay = Round2(e.BasePay)
	e.SleepoverAllowance = Round2(e.SleepoverAllowance)
	e.TotalPay = Round2(e.TotalPay)
	return e
}
