package output

import (
	"fmt"
	"time"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes formats n with two decimals in the largest 1024-based unit below
// 1024, capping at TB.
func Bytes(n int64) string {
	v := float64(n)
	for i, unit := range byteUnits {
		if v < 1024 || i == len(byteUnits)-1 {
			return fmt.Sprintf("%.2f %s", v, unit)
		}
		v /= 1024
	}
	return ""
}

// Elapsed formats d as HH:MM:SS.ffff, ffff being ten-thousandths of a second.
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	frac := int64(d%time.Second) / int64(100*time.Microsecond)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d.%04d", hours, minutes, seconds, frac)
}
