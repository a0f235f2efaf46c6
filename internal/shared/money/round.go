// Package money holds rounding shared by the back-test and account return.
package money

import "math"

// Round2 rounds x to 2 decimal places.
func Round2(x float64) float64 {
	r := math.Round(x*100) / 100
	if r == 0 {
		return 0 // -0 を 0 に揃える
	}
	return r
}
