package domain

// ProductsChanged reports whether the current cart lines differ from the
// snapshot taken when the order was loaded for editing. Lines are matched by
// product id, not position. The result feeds the changeProduct flag on update
// requests so the backend knows whether to recompute dependent aggregates.
func ProductsChanged(original []OriginalProduct, current []CartLine) bool {
	if len(original) != len(current) {
		return true
	}

	byID := make(map[int]OriginalProduct, len(original))
	for _, p := range original {
		byID[p.ProductID] = p
	}

	for _, line := range current {
		orig, ok := byID[line.ProductID]
		if !ok {
			return true
		}
		if line.Quantity != orig.Quantity || line.UnitPrice != orig.UnitPrice {
			return true
		}
	}
	return false
}
