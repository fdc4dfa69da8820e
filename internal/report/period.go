package report

import "time"

// PeriodKey identifies a calendar month as "YYYY-MM"
type PeriodKey string

// Periods holds the two compared months and the month-to-date day cutoff
type Periods struct {
	CurrentMonth  PeriodKey `json:"current_month"`
	PreviousMonth PeriodKey `json:"previous_month"`
	DayCutoff     int       `json:"day_cutoff"`
}

const anchorLayout = "2006-01-02"
const periodLayout = "2006-01"

// ResolvePeriods derives the current and previous comparison months from an
// anchor date string ("YYYY-MM-DD"). An empty or unparseable anchor falls back
// to now, so the function never fails. The day cutoff is the anchor's
// day-of-month and is meant to be applied to both months identically.
func ResolvePeriods(anchor string, now time.Time) Periods {
	date := now
	if anchor != "" {
		if parsed, err := time.Parse(anchorLayout, anchor); err == nil {
			date = parsed
		}
	}

	// Previous month is derived from the 15th so that an anchor day beyond
	// the previous month's length (e.g. March 31st) can never produce an
	// invalid date during the rollover.
	midMonth := time.Date(date.Year(), date.Month(), 15, 0, 0, 0, 0, time.UTC)
	previous := midMonth.AddDate(0, -1, 0)

	return Periods{
		CurrentMonth:  PeriodKey(date.Format(periodLayout)),
		PreviousMonth: PeriodKey(previous.Format(periodLayout)),
		DayCutoff:     date.Day(),
	}
}
