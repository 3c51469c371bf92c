package bitting

import "sort"

// CutStep is one entry of a progressive cutting order
type CutStep struct {
	Index int `json:"index"`
	Depth int `json:"depth"`
	Order int `json:"order"`
}

// CuttingOrder suggests the order in which to cut the concrete positions:
// shallowest first, ties broken by position. Order is 1-based.
func CuttingOrder(values []Value) []CutStep {
	steps := make([]CutStep, 0, len(values))
	for i, v := range values {
		if d, ok := v.DepthValue(); ok {
			steps = append(steps, CutStep{Index: i, Depth: d})
		}
	}
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Depth < steps[j].Depth
	})
	for i := range steps {
		steps[i].Order = i + 1
	}
	return steps
}
