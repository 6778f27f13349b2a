// Package earnings converts recording time spans into credited amounts.
package earnings

// DefaultRateCentsPerHour is the payout rate used when none is configured:
// 100 cents per 60 minutes of recording time.
const DefaultRateCentsPerHour int64 = 100

// Calculator computes the amount earned for a recording's span.
type Calculator struct {
	RateCentsPerHour int64
}

// NewCalculator creates a Calculator. Non-positive rates fall back to the default.
func NewCalculator(rateCentsPerHour int64) *Calculator {
	if rateCentsPerHour <= 0 {
		rateCentsPerHour = DefaultRateCentsPerHour
	}
	return &Calculator{RateCentsPerHour: rateCentsPerHour}
}

// Compute returns the amount earned for a recording spanning
// [startTime, endTime) in seconds. Negative spans earn nothing. Fractional
// minutes are discarded before applying the rate and the result rounds down:
// at the default rate a 61-minute span earns 101 cents, not 101.67.
func (c *Calculator) Compute(startTime, endTime int64) int64 {
	durationSeconds := endTime - startTime
	if durationSeconds < 0 {
		return 0
	}
	durationMinutes := durationSeconds / 60
	return durationMinutes * c.RateCentsPerHour / 60
}
