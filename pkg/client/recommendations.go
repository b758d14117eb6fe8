package client

import "context"

// Recommendation is one self-care suggestion.
type Recommendation struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Recommendations is the personalized recommendations payload. AverageMood
// is nil and Message is set when the user has no recent mood entries.
type Recommendations struct {
	AverageMood     *float64         `json:"average_mood"`
	Category        string           `json:"category"`
	Message         string           `json:"message"`
	Recommendations []Recommendation `json:"recommendations"`
}

// GetRecommendations fetches recommendations matched to the user's recent
// mood average.
func (c *Client) GetRecommendations(ctx context.Context) (*Recommendations, error) {
	var out Recommendations
	if err := c.get(ctx, "/api/v1/recommendations/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
