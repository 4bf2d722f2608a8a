package expe

import "fmt"

// FailureSnapshotName builds the failure-tagged file name the concurrent
// driver uses when an unhandled exception in one QA's task forces a
// snapshot save: "Stopped_at_<i>_of_<N>_<base>".
func FailureSnapshotName(base string, i, n int) string {
	return fmt.Sprintf("Stopped_at_%d_of_%d_%s", i, n, base)
}
