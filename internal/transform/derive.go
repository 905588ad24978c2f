package transform

import "econcharts/internal/frame"

// Ratio returns num / den * 100 element-wise. A result is missing when either
// side is missing or the denominator is zero.
func Ratio(num, den []frame.Value) []frame.Value {
	n := min(len(num), len(den))
	out := make([]frame.Value, n)
	for i := 0; i < n; i++ {
		if !num[i].Valid || !den[i].Valid || den[i].Float == 0 {
			continue
		}
		out[i] = frame.Some(num[i].Float / den[i].Float * 100)
	}
	return out
}

// Growth returns the period-over-period percent change
// (v[t] - v[t-1]) / v[t-1] * 100. The first period is always missing, as is
// any period whose own or prior value is missing or whose prior value is zero.
func Growth(vals []frame.Value) []frame.Value {
	out := make([]frame.Value, len(vals))
	for i := 1; i < len(vals); i++ {
		prev, cur := vals[i-1], vals[i]
		if !prev.Valid || !cur.Valid || prev.Float == 0 {
			continue
		}
		out[i] = frame.Some((cur.Float - prev.Float) / prev.Float * 100)
	}
	return out
}

// RollingMean returns the mean of the window most recent observations ending
// at each position. The first window-1 positions are missing, as is any
// window containing a missing value. A window below 1 yields all missing.
func RollingMean(vals []frame.Value, window int) []frame.Value {
	out := make([]frame.Value, len(vals))
	if window < 1 {
		return out
	}

	for i := window - 1; i < len(vals); i++ {
		var sum float64
		complete := true
		for _, v := range vals[i-window+1 : i+1] {
			if !v.Valid {
				complete = false
				break
			}
			sum += v.Float
		}
		if complete {
			out[i] = frame.Some(sum / float64(window))
		}
	}
	return out
}

// Scale multiplies every present value by factor.
func Scale(vals []frame.Value, factor float64) []frame.Value {
	out := make([]frame.Value, len(vals))
	for i, v := range vals {
		if v.Valid {
			out[i] = frame.Some(v.Float * factor)
		}
	}
	return out
}
