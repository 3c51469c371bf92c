package bitting

// Violations returns the sorted indices of concrete positions whose depth
// differs from a concrete neighbour by more than macs. Positions that are not
// concrete are never reported.
func Violations(values []Value, macs int) []int {
	var out []int
	last := -1
	for i := 1; i < len(values); i++ {
		a, okA := values[i-1].DepthValue()
		b, okB := values[i].DepthValue()
		if !okA || !okB || abs(a-b) <= macs {
			continue
		}
		if last != i-1 {
			out = append(out, i-1)
		}
		out = append(out, i)
		last = i
	}
	return out
}

// ValidCode reports whether every adjacent pair of the code is within macs
func ValidCode(code Code, macs int) bool {
	for i := 1; i < len(code); i++ {
		if abs(code[i]-code[i-1]) > macs {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
