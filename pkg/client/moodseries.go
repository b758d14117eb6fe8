package client

import (
	"math"
	"time"
)

// SeriesPoint is one day in a gap-filled mood series.
type SeriesPoint struct {
	// Date is the UTC calendar day in "2006-01-02" form.
	Date string
	// Label is the short display form, e.g. "Jan 2".
	Label string
	// Score is the mood value for the day, filled from a neighbor when
	// the day has no entry of its own.
	Score int
	// Filled reports whether the score was carried from another day.
	Filled bool
}

// MoodSeries is a chart-ready window of consecutive days ending today.
type MoodSeries struct {
	Points []SeriesPoint
	// Average is the mean of the days that had real entries, rounded to
	// one decimal. Nil when the window has no entries at all.
	Average *float64
}

// BuildMoodSeries prepares entries for a line chart over the trailing
// window of days (7 or 30) ending at now. Each entry is bucketed by its
// UTC calendar day with the later entry winning a day, then gaps are
// closed with a forward fill followed by a backward fill so the line has
// no holes. Days outside any entry's reach keep score zero. The average
// considers only days that had real entries, not filled ones.
func BuildMoodSeries(entries []MoodEntry, days int, now time.Time) MoodSeries {
	if days != 7 {
		days = 30
	}

	byDay := make(map[string]int, len(entries))
	for _, e := range entries {
		byDay[e.CreatedAt.UTC().Format("2006-01-02")] = e.MoodScore
	}

	today := now.UTC().Truncate(24 * time.Hour)
	points := make([]SeriesPoint, days)
	for i := range points {
		day := today.AddDate(0, 0, i-(days-1))
		date := day.Format("2006-01-02")
		p := SeriesPoint{Date: date, Label: day.Format("Jan 2")}
		if score, ok := byDay[date]; ok {
			p.Score = score
		} else {
			p.Filled = true
		}
		points[i] = p
	}

	// Forward fill, then backward fill for leading gaps.
	last := 0
	for i := range points {
		if !points[i].Filled {
			last = points[i].Score
		} else if last != 0 {
			points[i].Score = last
		}
	}
	next := 0
	for i := len(points) - 1; i >= 0; i-- {
		if !points[i].Filled {
			next = points[i].Score
		} else if points[i].Score == 0 && next != 0 {
			points[i].Score = next
		}
	}

	series := MoodSeries{Points: points}
	sum, n := 0, 0
	for _, p := range points {
		if !p.Filled {
			sum += p.Score
			n++
		}
	}
	if n > 0 {
		avg := math.Round(float64(sum)/float64(n)*10) / 10
		series.Average = &avg
	}
	return series
}
