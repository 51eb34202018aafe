package gridsearch

import "fmt"

// MalformedScanError reports a scan group whose value lists are empty or, for
// linked parameters, of unequal length. It is detected before any file I/O.
type MalformedScanError struct {
	Scan   string
	Reason string
}

func (e *MalformedScanError) Error() string {
	return fmt.Sprintf("malformed scan %q: %s", e.Scan, e.Reason)
}

// DuplicateJobNameError reports two variants that render to the same job
// name. Materialization aborts without writing anything.
type DuplicateJobNameError struct {
	Name string
}

func (e *DuplicateJobNameError) Error() string {
	return fmt.Sprintf("duplicate job name %q: two variants render identically", e.Name)
}
