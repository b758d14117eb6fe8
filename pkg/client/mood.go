package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// MoodEntry is one logged mood observation.
type MoodEntry struct {
	ID        string    `json:"id"`
	MoodScore int       `json:"mood_score"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// ListMood returns one page of the user's entries, newest first.
func (c *Client) ListMood(ctx context.Context, page int) (*Page[MoodEntry], error) {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	var out Page[MoodEntry]
	if err := c.get(ctx, "/api/v1/mood/", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMood logs a mood score (1..5) with an optional note.
func (c *Client) CreateMood(ctx context.Context, score int, note string) (*MoodEntry, error) {
	in := map[string]any{"mood_score": score, "note": note}
	var out struct {
		Message string     `json:"message"`
		Entry   *MoodEntry `json:"entry"`
	}
	if err := c.post(ctx, "/api/v1/mood/", in, &out); err != nil {
		return nil, err
	}
	return out.Entry, nil
}

// UpdateMood rewrites an existing entry.
func (c *Client) UpdateMood(ctx context.Context, id string, score int, note string) (*MoodEntry, error) {
	in := map[string]any{"mood_score": score, "note": note}
	var out struct {
		Message string     `json:"message"`
		Entry   *MoodEntry `json:"entry"`
	}
	if err := c.put(ctx, "/api/v1/mood/"+url.PathEscape(id)+"/", in, &out); err != nil {
		return nil, err
	}
	return out.Entry, nil
}

// ChartPoint is one day in the server-computed chart series. MoodScore is
// zero for days with no entry.
type ChartPoint struct {
	Date      string `json:"date"`
	MoodScore int    `json:"mood_score"`
}

// ChartData is the server-computed mood analytics payload.
type ChartData struct {
	ChartData    []ChartPoint `json:"chart_data"`
	AverageMood  float64      `json:"average_mood"`
	Trend        string       `json:"trend"`
	TotalEntries int          `json:"total_entries"`
	Days         int          `json:"days"`
}

// MoodChartData fetches the server-side chart series for a 7 or 30 day
// window. For the client-side gap-filled rendering see BuildMoodSeries.
func (c *Client) MoodChartData(ctx context.Context, days int) (*ChartData, error) {
	q := url.Values{}
	if days == 7 {
		q.Set("days", "7")
	}
	var out ChartData
	if err := c.get(ctx, "/api/v1/mood/chart-data/", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
