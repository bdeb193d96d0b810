package risk

import "testing"

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name       string
		hr, bp, o2 float64
		score      int
		status     Status
	}{
		{"all normal", 72, 120, 98, 0, StatusNormal},
		{"hr at threshold", 100, 120, 98, 0, StatusNormal},
		{"spo2 at threshold", 72, 120, 95, 0, StatusNormal},
		{"high hr only", 101, 120, 98, 20, StatusNormal},
		{"high hr low spo2", 101, 120, 94, 90, StatusCritical},
		{"low spo2 plus subtle", 95, 120, 94.5, 70, StatusModerate},
		{"all three fire", 105, 120, 90, 90, StatusCritical},
		{"subtle alone", 95, 120, 95.5, 30, StatusNormal},
		{"moderate boundary", 101, 120, 95.5, 50, StatusModerate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.hr, tc.bp, tc.o2)
			if got.Score != tc.score {
				t.Errorf("Evaluate(%v,%v,%v) score=%d, want %d", tc.hr, tc.bp, tc.o2, got.Score, tc.score)
			}
			if got.Status != tc.status {
				t.Errorf("Evaluate(%v,%v,%v) status=%s, want %s", tc.hr, tc.bp, tc.o2, got.Status, tc.status)
			}
		})
	}
}

func TestEvaluate_ExactlySeventyIsNotCritical(t *testing.T) {
	// 40 (spo2<95) + 30 (95>90 and 94.5<96) = 70; critical requires score > 70.
	got := Evaluate(95, 120, 94.5)
	if got.Score != 70 || got.Status != StatusModerate {
		t.Errorf("got %+v, want score 70 moderate_risk", got)
	}
}

func TestEvaluate_ScoreStaysInRange(t *testing.T) {
	extremes := []struct{ hr, o2 float64 }{
		{500, 0}, {0, 200}, {-50, -50}, {200, 50},
	}
	for _, e := range extremes {
		got := Evaluate(e.hr, 120, e.o2)
		if got.Score < 0 || got.Score > 100 {
			t.Errorf("Evaluate(%v,120,%v) score out of range: %d", e.hr, e.o2, got.Score)
		}
	}
}
