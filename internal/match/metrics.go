package match

import (
	"math"
	"time"
)

// Accuracy is the share of target graphemes never marked wrong, floored to a
// whole percent. Any mistake counts even if it was corrected later.
func Accuracy(wrong, total int) int {
	if total <= 0 {
		return 100
	}
	if wrong >= total {
		return 0
	}
	if wrong < 0 {
		wrong = 0
	}
	return (total - wrong) * 100 / total
}

// Speed is the confirmed prefix length per elapsed minute, floored. A zero
// elapsed time yields zero.
func Speed(prefix int, elapsed time.Duration) int {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return int(math.Floor(float64(prefix) / minutes))
}
