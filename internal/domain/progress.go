package domain

import (
	"math"
	"time"
)

// Progress describes how far through the UTC calendar year an instant is.
type Progress struct {
	// Year is the UTC calendar year the instant falls in
	Year int

	// Percent is floor(Fraction), in [0,99] for every instant inside a year
	Percent int

	// Fraction is the elapsed share of the year in percent, in [0,100)
	Fraction float64
}

// YearProgress computes the elapsed share of the UTC year containing now.
// The reference timezone used for display never affects the result.
func YearProgress(now time.Time) Progress {
	u := now.UTC()
	start := time.Date(u.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	elapsed := int64(u.Sub(start))
	total := int64(end.Sub(start))

	// elapsed*100 stays below 1<<63 for any year length in nanoseconds.
	percent := int(elapsed * 100 / total)

	fraction := float64(elapsed) / float64(total) * 100
	if fraction >= 100 {
		fraction = math.Nextafter(100, 0)
	}

	return Progress{
		Year:     u.Year(),
		Percent:  percent,
		Fraction: fraction,
	}
}
