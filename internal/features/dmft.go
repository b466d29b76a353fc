// ABOUTME: DMFT scorer reduces a tooth-status map to decayed/missing/filled counts
// ABOUTME: Codes outside the three buckets (sound, unerupted) are ignored
package features

// DMFTScore summarizes a tooth-status map.
type DMFTScore struct {
	Decayed int `json:"d"`
	Missing int `json:"m"`
	Filled  int `json:"f"`
	Total   int `json:"dmft"`
}

// ScoreDMFT counts teeth by status code. Decayed is '1' or 'B', filled is '2'
// or 'C', missing is '3', '4', 'D', or 'E'. A nil map scores zero, never errors.
func ScoreDMFT(teeth map[string]string) DMFTScore {
	var score DMFTScore
	for _, status := range teeth {
		switch status {
		case "1", "B":
			score.Decayed++
		case "2", "C":
			score.Filled++
		case "3", "4", "D", "E":
			score.Missing++
		}
	}
	score.Total = score.Decayed + score.Missing + score.Filled
	return score
}
