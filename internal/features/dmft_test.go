// ABOUTME: Tests for the DMFT scorer
// ABOUTME: Covers the status-code buckets, ignored codes, and nil input
package features

import "testing"

func TestScoreDMFT_AllBuckets(t *testing.T) {
	teeth := map[string]string{
		"tooth_11": "1", // decayed
		"tooth_12": "B", // decayed
		"tooth_21": "2", // filled
		"tooth_22": "C", // filled
		"tooth_31": "3", // missing
		"tooth_32": "4", // missing
		"tooth_41": "D", // missing
		"tooth_42": "E", // missing
		"tooth_51": "0", // sound, not counted
		"tooth_52": "A", // sound, not counted
	}

	score := ScoreDMFT(teeth)

	if score.Decayed != 2 {
		t.Errorf("Decayed = %d, want 2", score.Decayed)
	}
	if score.Filled != 2 {
		t.Errorf("Filled = %d, want 2", score.Filled)
	}
	if score.Missing != 4 {
		t.Errorf("Missing = %d, want 4", score.Missing)
	}
	if score.Total != 8 {
		t.Errorf("Total = %d, want 8", score.Total)
	}
}

func TestScoreDMFT_Empty(t *testing.T) {
	for _, teeth := range []map[string]string{nil, {}} {
		score := ScoreDMFT(teeth)
		if score.Decayed != 0 || score.Missing != 0 || score.Filled != 0 || score.Total != 0 {
			t.Errorf("ScoreDMFT(%v) = %+v, want all zeros", teeth, score)
		}
	}
}

func TestScoreDMFT_UnknownCodesIgnored(t *testing.T) {
	score := ScoreDMFT(map[string]string{
		"tooth_11": "decayed", // free text is not a status code
		"tooth_12": "",
		"tooth_13": "X",
	})
	if score.Total != 0 {
		t.Errorf("Total = %d, want 0 for unknown codes", score.Total)
	}
}
