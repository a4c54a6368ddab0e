package service

import "math"

// Volatility returns the population standard deviation of period-over-period
// returns of the given price series. A series shorter than two points has no
// returns and yields 0.
func Volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance)
}
