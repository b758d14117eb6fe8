// Package schedule expands recurring weekly availability windows into
// concrete bookable slots. It is shared by the API handlers and the Go SDK
// so both sides agree on slot boundaries.
package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SlotDuration is the fixed length of a bookable appointment slot.
const SlotDuration = 60 // minutes

// DefaultHorizonDays is how far ahead patients can book.
const DefaultHorizonDays = 14

// Window is one recurring weekly availability interval.
type Window struct {
	ID        string `json:"id"`
	DayOfWeek string `json:"day_of_week"` // "Monday".."Sunday"
	StartTime string `json:"start_time"`  // "HH:MM:SS" or "HH:MM"
	EndTime   string `json:"end_time"`
}

var weekdayIndex = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// WeekdayIndex maps a day name to its weekday. The mapping is total over the
// seven canonical names; anything else reports ok=false.
func WeekdayIndex(name string) (time.Weekday, bool) {
	wd, ok := weekdayIndex[name]
	return wd, ok
}

// parseClock converts the "HH:MM" prefix of a time string to minutes past
// midnight. Seconds, if present, are ignored.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("schedule: malformed time %q", s)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("schedule: malformed hour in %q", s)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("schedule: malformed minute in %q", s)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("schedule: time %q out of range", s)
	}
	return hh*60 + mm, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// StartTimesByWeekday expands each window into hour-aligned "HH:MM" start
// times bucketed by weekday. A slot is emitted only when the full hour fits
// inside the window, so a window ending on a partial hour drops the trailing
// fragment. Windows with unrecognized day names or malformed times are
// skipped, never fatal. Buckets are deduplicated and sorted ascending.
func StartTimesByWeekday(windows []Window) map[time.Weekday][]string {
	byDow := make(map[time.Weekday][]string)
	seen := make(map[time.Weekday]map[string]struct{})

	for _, w := range windows {
		dow, ok := WeekdayIndex(w.DayOfWeek)
		if !ok {
			continue
		}
		start, err := parseClock(w.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(w.EndTime)
		if err != nil {
			continue
		}
		if start >= end {
			continue
		}
		if seen[dow] == nil {
			seen[dow] = make(map[string]struct{})
		}
		for cur := start; cur+SlotDuration <= end; cur += SlotDuration {
			t := formatClock(cur)
			if _, dup := seen[dow][t]; dup {
				continue
			}
			seen[dow][t] = struct{}{}
			byDow[dow] = append(byDow[dow], t)
		}
	}

	for dow := range byDow {
		sort.Strings(byDow[dow])
	}
	return byDow
}

// HorizonDate is one upcoming calendar date with at least one bookable slot.
type HorizonDate struct {
	Date    string       `json:"date"`  // "YYYY-MM-DD"
	Label   string       `json:"label"` // "Jan 2 • Mon"
	Weekday time.Weekday `json:"-"`
}

// BookableDates enumerates the next horizonDays calendar dates starting at
// now, keeping only the dates whose weekday has at least one start time.
func BookableDates(byDow map[time.Weekday][]string, now time.Time, horizonDays int) []HorizonDate {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	dates := make([]HorizonDate, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		d := now.AddDate(0, 0, i)
		dow := d.Weekday()
		if len(byDow[dow]) == 0 {
			continue
		}
		dates = append(dates, HorizonDate{
			Date:    d.Format("2006-01-02"),
			Label:   d.Format("Jan 2") + " • " + d.Format("Mon"),
			Weekday: dow,
		})
	}
	return dates
}

// Candidate is one offered slot for a selected date.
type Candidate struct {
	Start  string `json:"start"`  // "HH:MM"
	Booked bool   `json:"booked"` // retained but flagged so callers can render it disabled
}

// CandidatesForDate annotates the expanded start times for the selected
// date. Slots whose start matches an entry of the booked set ("HH:MM:SS"
// strings) are flagged booked. When the selected date is today, slots whose
// start hour is not later than the current hour are dropped entirely; the
// comparison is deliberately hour-granular.
func CandidatesForDate(byDow map[time.Weekday][]string, selectedDate string, booked []string, now time.Time) []Candidate {
	day, err := time.ParseInLocation("2006-01-02", selectedDate, now.Location())
	if err != nil {
		return nil
	}
	times := byDow[day.Weekday()]
	if len(times) == 0 {
		return nil
	}

	bookedSet := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		bookedSet[b] = struct{}{}
	}

	isToday := selectedDate == now.Format("2006-01-02")
	out := make([]Candidate, 0, len(times))
	for _, t := range times {
		if isToday {
			hour, err := strconv.Atoi(strings.SplitN(t, ":", 2)[0])
			if err != nil || hour <= now.Hour() {
				continue
			}
		}
		_, isBooked := bookedSet[t+":00"]
		out = append(out, Candidate{Start: t, Booked: isBooked})
	}
	return out
}
