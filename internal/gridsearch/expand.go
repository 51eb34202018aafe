package gridsearch

import (
	"github.com/nomoriel/phase2vec/internal/configstore"
)

// Expand computes the full set of concrete parameter-set variants for the
// given base and scan groups. Each group contributes one axis of size equal
// to its shared value-list length; the output is the cross product over all
// axes, ordered with groups traversed in declaration order and the
// last-declared group varying fastest.
//
// Zero scans yield exactly the base document (one baseline job). Expand is
// pure: it never touches the filesystem and never mutates its inputs.
func Expand(base *configstore.Document, scans []ScanGroup) ([]*configstore.Document, error) {
	for _, group := range scans {
		if err := group.Validate(); err != nil {
			return nil, err
		}
	}

	total := 1
	for _, group := range scans {
		total *= group.Size()
	}

	variants := make([]*configstore.Document, 0, total)
	indices := make([]int, len(scans))
	for n := 0; n < total; n++ {
		variant := base.Clone()
		for gi, group := range scans {
			for _, p := range group.Params {
				variant.Set(p.Name, p.Values[indices[gi]])
			}
		}
		variants = append(variants, variant)

		// Odometer increment, last axis fastest.
		for gi := len(scans) - 1; gi >= 0; gi-- {
			indices[gi]++
			if indices[gi] < scans[gi].Size() {
				break
			}
			indices[gi] = 0
		}
	}
	return variants, nil
}

// ScannedParams returns the names of all scanned parameters in declaration
// order: group by group, parameters in their in-group order.
func ScannedParams(scans []ScanGroup) []string {
	var names []string
	for _, group := range scans {
		for _, p := range group.Params {
			names = append(names, p.Name)
		}
	}
	return names
}
