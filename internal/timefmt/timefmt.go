// Package timefmt formats track positions for display and clip filenames.
package timefmt

import "fmt"

// Seconds formats a position as m:ss — unpadded minutes, zero-padded
// seconds, floored, no hours component.
func Seconds(t float64) string {
	if t < 0 {
		t = 0
	}
	whole := int(t)
	return fmt.Sprintf("%d:%02d", whole/60, whole%60)
}
