package recommendations

import "testing"

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{1.0, CategoryUplifting},
		{2.0, CategoryUplifting},
		{2.1, CategoryCalming},
		{3.0, CategoryCalming},
		{3.5, CategoryMaintenance},
		{4.0, CategoryMaintenance},
		{4.1, CategoryGratitude},
		{5.0, CategoryGratitude},
	}
	for _, tt := range tests {
		if got := CategoryFor(tt.avg); got != tt.want {
			t.Errorf("CategoryFor(%.1f) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}
