// Package format renders durations, sizes and scores for humans.
package format

import (
	"fmt"
	"math"
	"strconv"
)

// Seconds renders a duration given in seconds: "4.2s", "2m 5.0s" or "1h 3m".
func Seconds(s float64) string {
	switch {
	case s < 60:
		return fmt.Sprintf("%.1fs", s)
	case s < 3600:
		minutes := math.Floor(s / 60)
		return fmt.Sprintf("%dm %.1fs", int(minutes), s-minutes*60)
	default:
		hours := int(s / 3600)
		minutes := int(math.Mod(s, 3600) / 60)
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FileSize renders a byte count with binary units, e.g. "1.5 KB".
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	// Two decimals, trailing zeros dropped.
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + " " + sizeUnits[i]
}

// Score renders a score out of max with one decimal, e.g. "12.5/15".
func Score(score float64, max int) string {
	return fmt.Sprintf("%.1f/%d", score, max)
}
