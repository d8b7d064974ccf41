package moderation

import "time"

// DurationFor maps an offender's cumulative violation count to the length
// of the next temporary restriction. Step function, monotonically
// non-decreasing:
//
//	1st violation -> 24h
//	2nd           -> 3 days
//	3rd           -> 7 days
//	4th and up    -> 7 days + 7 days per violation past the 3rd
func DurationFor(count int) time.Duration {
	switch {
	case count <= 1:
		return 24 * time.Hour
	case count == 2:
		return 3 * 24 * time.Hour
	case count == 3:
		return 7 * 24 * time.Hour
	default:
		return time.Duration(count-3+1) * 7 * 24 * time.Hour
	}
}
