// ABOUTME: Encodes free-text frequency/timing/quantity answers to small ordinals
// ABOUTME: Table lookups first, then a digit-average fallback bucketed into 0-4
package features

import (
	"strconv"
	"strings"
	"unicode"
)

// frequencyTable maps the known form answers to their ordinal encodings.
// Existing trained artifacts depend on these exact values.
var frequencyTable = map[string]float64{
	"1-3_day":  2,
	"4-6_day":  4,
	"1-3_week": 1,
	"4-6_week": 3,

	"with_meals":     1,
	"between_meals":  2,
	"before_bedtime": 3,
}

// EncodeFrequency maps a frequency, timing, or quantity answer to an ordinal
// in [0,4]. Empty answers encode to 0. Known answers go through the lookup
// table. Anything else falls back to averaging the digits embedded in the text
// and bucketing the result; digitless strings default to 1 (low frequency)
// rather than 0 so that a garbled answer is not mistaken for "never consumed".
func EncodeFrequency(value string) float64 {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return 0
	}
	v = strings.ReplaceAll(v, " ", "_")

	if encoded, ok := frequencyTable[v]; ok {
		return encoded
	}

	nums, ok := embeddedNumbers(v)
	if !ok {
		return 1
	}
	sum := 0.0
	for _, n := range nums {
		sum += float64(n)
	}
	return bucket(sum / float64(len(nums)))
}

// bucket maps an averaged count onto the 0-4 ordinal scale.
func bucket(avg float64) float64 {
	switch {
	case avg == 0:
		return 0
	case avg <= 2:
		return 1
	case avg <= 5:
		return 2
	case avg <= 8:
		return 3
	default:
		return 4
	}
}

// embeddedNumbers extracts every run of digits in s.
func embeddedNumbers(s string) ([]int, bool) {
	var nums []int
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if n, err := strconv.Atoi(s[start:i]); err == nil {
				nums = append(nums, n)
			}
			start = -1
		}
	}
	if start >= 0 {
		if n, err := strconv.Atoi(s[start:]); err == nil {
			nums = append(nums, n)
		}
	}
	return nums, len(nums) > 0
}
