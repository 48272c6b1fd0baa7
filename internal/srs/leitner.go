package srs

import "time"

// BoxIntervals is the expanding Leitner schedule in days, box 0 first.
var BoxIntervals = []int{1, 3, 7, 14, 30, 60}

// MaxBox is the highest Leitner box index.
const MaxBox = 5

// LeitnerReview moves a card between boxes: up one on a pass, back to box 0
// on a fail. Returns the new box and the next due time, with the interval
// scaled by the dial multiplier.
func LeitnerReview(box int, correct bool, now time.Time, multiplier float64) (int, time.Time) {
	if multiplier <= 0 {
		multiplier = 1.0
	}
	if correct {
		box++
		if box > MaxBox {
			box = MaxBox
		}
	} else {
		box = 0
	}
	days := float64(BoxIntervals[box]) * multiplier
	return box, now.Add(time.Duration(days * 24 * float64(time.Hour)))
}
