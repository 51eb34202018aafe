package aggregate

import "strings"

// Pair is one parameter/value extracted from a job directory name.
type Pair struct {
	Name  string
	Value string
}

// ParseJobName inverts the materializer's naming convention: underscore-
// joined <param>-<value> segments, parameters in scan declaration order.
//
// Parameter names may themselves contain underscores, so segments are
// re-joined greedily: tokens accumulate until one contains a "-", which
// terminates the pair. The split inside the terminating token happens at its
// first "-", keeping negative values intact. Names that contain a literal
// "-" are not recoverable from the directory name alone; callers should
// prefer the co-located config artifact when present.
func ParseJobName(name string) []Pair {
	if name == "" || name == "baseline" {
		return nil
	}

	var pairs []Pair
	var pending []string
	for _, token := range strings.Split(name, "_") {
		idx := strings.Index(token, "-")
		if idx < 0 {
			pending = append(pending, token)
			continue
		}
		param := strings.Join(append(pending, token[:idx]), "_")
		pairs = append(pairs, Pair{Name: param, Value: token[idx+1:]})
		pending = nil
	}
	return pairs
}
