package progress

// Rollup holds the effective weight and progress of a parent code.
//
// Weight sums the entered weights of direct children only; weight rolls up
// one level at a time and is never recursively re-derived. Progress is the
// weighted mean over direct children, where a child that is itself a parent
// contributes its own rolled-up progress instead of its raw field, so the
// computation is depth-first and bottom-up.
type Rollup struct {
	Weight   float64
	Progress float64
}

// Rollup computes the effective weight/progress for code. Non-parent codes
// return the zero value; callers must use the raw item fields in that case.
func (h *Hierarchy) Rollup(code string) Rollup {
	if !h.IsParent(code) {
		return Rollup{}
	}

	var weightSum, weightedProgress float64
	for _, child := range h.DirectChildren(code) {
		p := child.Progress
		if h.IsParent(child.Code) {
			p = h.Rollup(child.Code).Progress
		}
		weightSum += child.Weight
		weightedProgress += child.Weight * p / 100
	}

	if weightSum == 0 {
		return Rollup{}
	}
	return Rollup{
		Weight:   weightSum,
		Progress: weightedProgress / weightSum * 100,
	}
}

// Overall computes the project-wide completion percentage from the top-level
// items only. Parent contributions use their rollup pair, leaves their raw
// fields. The result is the weight-normalized average of the contributions,
// degrading to the unweighted mean when all weights are zero and to 0 for an
// empty list. If no top-level items are detected the whole flat list is
// treated as top-level.
func Overall(items []Item) float64 {
	if len(items) == 0 {
		return 0
	}

	h := Derive(items)
	top := h.TopLevel()
	if len(top) == 0 {
		top = items
	}

	var weightSum, weightedProgress, progressSum float64
	for _, it := range top {
		w, p := it.Weight, it.Progress
		if h.IsParent(it.Code) {
			r := h.Rollup(it.Code)
			w, p = r.Weight, r.Progress
		}
		weightSum += w
		weightedProgress += w * p / 100
		progressSum += p
	}

	if weightSum == 0 {
		return progressSum / float64(len(top))
	}
	return weightedProgress / weightSum * 100
}
