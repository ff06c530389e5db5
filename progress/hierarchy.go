package progress

import "strings"

// Hierarchy is the derived parent/child relation over a flat item list.
// It is rebuilt from scratch on every recomputation; nothing is stored.
//
// The relation is purely textual: item B descends from item A iff B's trimmed
// code starts with A's trimmed code plus ".". Direct children are exactly one
// segment deeper. Equal codes are siblings, never parent/child, and a blank
// code is neither a parent nor a child. Missing intermediate levels are
// tolerated: "1.3" is a direct child of "1" even when "1.1" and "1.2" do not
// exist, while "1.2.3" without a "1.2" item still marks "1" as a parent but is
// nobody's direct child.
type Hierarchy struct {
	items    []Item
	children map[string][]int // trimmed parent code -> direct child indexes, input order
	parents  map[string]bool  // codes with at least one descendant
	top      []int            // indexes of items with no ancestor, input order
}

// Derive builds the hierarchy index for the given flat list.
func Derive(items []Item) *Hierarchy {
	h := &Hierarchy{
		items:    items,
		children: make(map[string][]int),
		parents:  make(map[string]bool),
	}

	present := make(map[string]bool, len(items))
	for _, it := range items {
		if code := strings.TrimSpace(it.Code); code != "" {
			present[code] = true
		}
	}

	for i, it := range items {
		code := strings.TrimSpace(it.Code)
		if code == "" {
			h.top = append(h.top, i)
			continue
		}

		segs := strings.Split(code, ".")
		hasAncestor := false
		for k := 1; k < len(segs); k++ {
			prefix := strings.Join(segs[:k], ".")
			h.parents[prefix] = true
			if present[prefix] {
				hasAncestor = true
			}
		}

		if len(segs) > 1 {
			parent := strings.Join(segs[:len(segs)-1], ".")
			h.children[parent] = append(h.children[parent], i)
		}
		if !hasAncestor {
			h.top = append(h.top, i)
		}
	}

	return h
}

// IsParent reports whether at least one other item descends from code.
func (h *Hierarchy) IsParent(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	return h.parents[code]
}

// DirectChildren returns the items exactly one hierarchy level below code,
// in stored order. Deeper descendants belong to their own immediate parent.
func (h *Hierarchy) DirectChildren(code string) []Item {
	idxs := h.children[strings.TrimSpace(code)]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Item, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, h.items[i])
	}
	return out
}

// TopLevel returns the items with no ancestor, in stored order.
func (h *Hierarchy) TopLevel() []Item {
	out := make([]Item, 0, len(h.top))
	for _, i := range h.top {
		out = append(out, h.items[i])
	}
	return out
}

// IndentLevel counts the dots in the trimmed code. Display only; it feeds no
// numeric computation.
func IndentLevel(code string) int {
	return strings.Count(strings.TrimSpace(code), ".")
}
