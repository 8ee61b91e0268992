package scoring

import (
	"math"
	"testing"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

func TestBaseScore(t *testing.T) {
	counts := domain.ReactionCounts{
		Upvotes:       15,
		Downvotes:     3,
		Confirmations: 4,
		Disputes:      1,
		SpamReports:   1,
	}
	// 15 - 3 + 8 - 2 - 5 = 13
	if got := BaseScore(counts); got != 13 {
		t.Errorf("BaseScore = %d, want 13", got)
	}

	if got := BaseScore(domain.ReactionCounts{}); got != 0 {
		t.Errorf("BaseScore of zero counts = %d, want 0", got)
	}
}

func TestHotScoreCalibration(t *testing.T) {
	t.Run("positive fixture", func(t *testing.T) {
		got := HotScore(61, 1)
		if math.Abs(got-0.34) > 0.01 {
			t.Errorf("HotScore(61, 1h) = %v, want ~0.34", got)
		}
	})

	t.Run("negative fixture", func(t *testing.T) {
		got := HotScore(-15, 24)
		if math.Abs(got-(-0.0089)) > 0.0005 {
			t.Errorf("HotScore(-15, 24h) = %v, want ~-0.0089", got)
		}
	})
}

func TestHotScoreProperties(t *testing.T) {
	t.Run("sign follows base score", func(t *testing.T) {
		if HotScore(20, 5) <= 0 {
			t.Error("Expected positive hot score for positive base score")
		}
		if HotScore(-20, 5) >= 0 {
			t.Error("Expected negative hot score for negative base score")
		}
		if HotScore(0, 5) != 0 {
			t.Error("Expected zero hot score for zero base score")
		}
	})

	t.Run("strictly decays with age", func(t *testing.T) {
		h1 := HotScore(40, 1)
		h12 := HotScore(40, 12)
		h48 := HotScore(40, 48)
		if !(h1 > h12 && h12 > h48 && h48 > 0) {
			t.Errorf("Expected 1h > 12h > 48h > 0, got %v, %v, %v", h1, h12, h48)
		}
	})

	t.Run("no blowup at age zero", func(t *testing.T) {
		if got := HotScore(100, 0); math.IsInf(got, 0) || got > 1 {
			t.Errorf("Expected bounded hot score at age 0, got %v", got)
		}
	})
}

func TestClassifyVisibility(t *testing.T) {
	cases := []struct {
		name        string
		score       int
		spamReports int
		want        domain.Visibility
	}{
		{"spam reports force hidden despite high score", 90, 3, domain.VisibilityHidden},
		{"very negative score hidden", -5, 0, domain.VisibilityHidden},
		{"below hide threshold", -20, 0, domain.VisibilityHidden},
		{"low quality band lower bound", -4, 0, domain.VisibilityLowQuality},
		{"low quality band upper bound", -1, 0, domain.VisibilityLowQuality},
		{"zero score visible", 0, 0, domain.VisibilityVisible},
		{"positive score visible", 25, 2, domain.VisibilityVisible},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClassifyVisibility(c.score, c.spamReports); got != c.want {
				t.Errorf("ClassifyVisibility(%d, %d) = %s, want %s", c.score, c.spamReports, got, c.want)
			}
		})
	}
}
