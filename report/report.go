// Package report formats a resolver run's unsatisfied demands for the
// command line.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/swenson/guicelint/resolver"
)

// Print writes a header and one line per unsatisfied demand to w, sorted
// by (class name, tag). An untagged demand prints as "<class>"; a tagged
// one prints as "Named(<tag>) <class>". It reports true iff the set was
// non-empty, which the caller uses to pick a process exit code.
func Print(w io.Writer, unsatisfied []resolver.Demand) bool {
	if len(unsatisfied) == 0 {
		return false
	}

	sorted := append([]resolver.Demand{}, unsatisfied...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		// Untagged demands sort before tagged ones for the same class.
		if a.HasTag != b.HasTag {
			return !a.HasTag
		}
		return a.Tag < b.Tag
	})

	fmt.Fprintln(w, "Error! Could not resolve the following injections:")
	for _, d := range sorted {
		if d.HasTag {
			fmt.Fprintf(w, "  Named(%s) %s\n", d.Tag, d.Class)
		} else {
			fmt.Fprintf(w, "  %s\n", d.Class)
		}
	}
	return true
}
