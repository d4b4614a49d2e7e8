package domain

import (
	"time"

	"github.com/Prodbylino/shiftflow/pkg/errors"
)

const (
	// DateFormat is the wire format for dates
	DateFormat = "2006-01-02"
	// ClockFormat is the wire format for times of day
	ClockFormat = "15:04:05"
	// clockFormatShort accepts HH:MM input without seconds
	clockFormatShort = "15:04"
)

// Interval is a shift's occupancy in time. Date and StartTime mark the
// start, EndDate and EndTime the end. An empty EndDate means the shift
// ends on its start date; a shift crossing midnight must say so with an
// explicit EndDate. There is no implicit overnight rollover.
type Interval struct {
	Date      string
	EndDate   string
	StartTime string
	EndTime   string
}

// Start returns the interval's start as a point in time (UTC).
func (i Interval) Start() (time.Time, error) {
	return combine(i.Date, i.StartTime, "date", "start_time")
}

// End returns the interval's end as a point in time (UTC).
func (i Interval) End() (time.Time, error) {
	endDate := i.EndDate
	if endDate == "" {
		endDate = i.Date
	}
	return combine(endDate, i.EndTime, "end_date", "end_time")
}

// Validate checks that the interval is well formed and has a strictly
// positive duration.
func (i Interval) Validate() error {
	start, err := i.Start()
	if err != nil {
		return err
	}

	end, err := i.End()
	if err != nil {
		return err
	}

	if i.EndDate != "" && end.Truncate(24*time.Hour).Before(start.Truncate(24*time.Hour)) {
		return errors.Validation(map[string]string{
			"end_date": "must not precede the start date",
		})
	}

	if !end.After(start) {
		return errors.Validation(map[string]string{
			"end_time": "shift must end strictly after it starts; overnight shifts need an explicit end_date",
		})
	}

	return nil
}

// Hours returns the interval's duration in hours, using full date and
// time-of-day arithmetic so multi-day shifts are counted in full.
func (i Interval) Hours() (float64, error) {
	if err := i.Validate(); err != nil {
		return 0, err
	}

	start, _ := i.Start()
	end, _ := i.End()

	return end.Sub(start).Seconds() / 3600, nil
}

func combine(date, clock, dateField, clockField string) (time.Time, error) {
	d, err := time.ParseInLocation(DateFormat, date, time.UTC)
	if err != nil {
		return time.Time{}, errors.Validation(map[string]string{
			dateField: "must be a date in YYYY-MM-DD format",
		})
	}

	c, err := time.ParseInLocation(ClockFormat, clock, time.UTC)
	if err != nil {
		c, err = time.ParseInLocation(clockFormatShort, clock, time.UTC)
		if err != nil {
			return time.Time{}, errors.Validation(map[string]string{
				clockField: "must be a time in HH:MM or HH:MM:SS format",
			})
		}
	}

	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC), nil
}
