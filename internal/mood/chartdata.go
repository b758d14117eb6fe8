package mood

import (
	"math"
	"time"
)

// ChartPoint is one day of the dense chart series. A score of 0 means the
// day has no entry; real scores are 1-5. This zero-sentinel convention
// belongs to the chart-data endpoint only and is distinct from the SDK's
// gap-filled series, which never materializes an "absent" value as zero.
type ChartPoint struct {
	Date      string `json:"date"` // "YYYY-MM-DD"
	MoodScore int    `json:"mood_score"`
}

// ChartData is the response body of GET /mood/chart-data/.
type ChartData struct {
	ChartData    []ChartPoint `json:"chart_data"`
	AverageMood  float64      `json:"average_mood"`
	Trend        string       `json:"trend"`
	TotalEntries int          `json:"total_entries"`
	Days         int          `json:"days"`
}

// Trend labels.
const (
	TrendImproving = "Improving"
	TrendDeclining = "Declining"
	TrendStable    = "Stable"
	TrendNoData    = "No data"
)

// trendThreshold is the minimum half-over-half mean delta that counts as a
// real movement rather than noise.
const trendThreshold = 0.3

// BuildChartData derives the dense N-day series ending today from raw
// entries. Entries must be ordered oldest first; when a day has several
// entries the latest one wins. Days are bucketed on the UTC calendar so the
// series lines up with the date strings the API emits.
func BuildChartData(entries []Entry, days int, today time.Time) ChartData {
	if days != 7 && days != 30 {
		days = 30
	}

	byDay := make(map[string]int)
	for _, e := range entries {
		byDay[e.CreatedAt.UTC().Format("2006-01-02")] = e.MoodScore
	}

	todayUTC := today.UTC().Truncate(24 * time.Hour)
	start := todayUTC.AddDate(0, 0, -(days - 1))

	points := make([]ChartPoint, days)
	var firstHalf, secondHalf []int
	var sum, known int
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		score := byDay[day] // zero when absent
		points[i] = ChartPoint{Date: day, MoodScore: score}
		if score > 0 {
			sum += score
			known++
			if i < days/2 {
				firstHalf = append(firstHalf, score)
			} else {
				secondHalf = append(secondHalf, score)
			}
		}
	}

	cd := ChartData{
		ChartData:    points,
		Trend:        TrendNoData,
		TotalEntries: countInWindow(entries, start),
		Days:         days,
	}
	if known == 0 {
		return cd
	}

	cd.AverageMood = round1(float64(sum) / float64(known))
	cd.Trend = classifyTrend(firstHalf, secondHalf)
	return cd
}

func countInWindow(entries []Entry, start time.Time) int {
	n := 0
	for _, e := range entries {
		if !e.CreatedAt.UTC().Before(start) {
			n++
		}
	}
	return n
}

func classifyTrend(firstHalf, secondHalf []int) string {
	if len(firstHalf) == 0 || len(secondHalf) == 0 {
		return TrendStable
	}
	delta := mean(secondHalf) - mean(firstHalf)
	switch {
	case delta >= trendThreshold:
		return TrendImproving
	case delta <= -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func mean(xs []int) float64 {
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
