package analysis

import "math"

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func ratio(num, den float64) float64 {
	return num / math.Max(1, den)
}

func clamp100(x float64) float64 {
	return math.Min(100, math.Max(0, x))
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// variance is the population variance of xs.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		sum += (x - m) * (x - m)
	}
	return sum / float64(len(xs))
}

// overallScore weighs complexity 40%, connectedness 30% and balance 30%.
func overallScore(complexity int, connected, balanced bool) int {
	conn := 50.0
	if connected {
		conn = 100
	}
	bal := 70.0
	if balanced {
		bal = 100
	}
	return int(math.Round(0.4*float64(complexity) + 0.3*conn + 0.3*bal))
}
