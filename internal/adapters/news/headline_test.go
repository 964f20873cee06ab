package news

import "testing"

func TestIsValidHeadline(t *testing.T) {
	tests := []struct {
		name     string
		headline string
		valid    bool
	}{
		{
			name:     "real headline",
			headline: "Apple reports record quarterly revenue on iPhone strength",
			valid:    true,
		},
		{
			name:     "navigation text rejected regardless of length",
			headline: "Sign in to view more",
			valid:    false,
		},
		{
			name:     "nineteen characters too short",
			headline: "Apple beats the str",
			valid:    false,
		},
		{
			name:     "exactly twenty characters accepted",
			headline: "Apple beats the stre",
			valid:    true,
		},
		{
			name:     "denylist term inside long headline",
			headline: "Subscribe now for unlimited access to premium market coverage",
			valid:    false,
		},
		{
			name:     "provider self reference",
			headline: "MarketWatch provides the latest stock market news today",
			valid:    false,
		},
		{
			name:     "empty headline",
			headline: "",
			valid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidHeadline(tt.headline); got != tt.valid {
				t.Errorf("IsValidHeadline(%q) = %v, want %v", tt.headline, got, tt.valid)
			}
		})
	}
}
