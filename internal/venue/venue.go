// Package venue holds the per-journal word limits used for the length
// verdict. The table mirrors the limits published in the journals' length
// guides; changing a limit is a code change, not runtime configuration.
package venue

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultVenue is used when no venue is selected on the command line.
const DefaultVenue = "PRL"

// AbstractLimit is the advisory abstract length in characters. Exceeding it
// is reported but never fatal.
const AbstractLimit = 600

var limits = map[string]int{
	"PRL":            3750,
	"PRA-RC":         4500,
	"PRB-RC":         4500,
	"PRC-RC":         4500,
	"PRD-RC":         4500,
	"PRApplied":      3500,
	"PRMaterials-RC": 4500,
}

// Limit returns the word limit for the given venue identifier. An unknown
// venue is a configuration error; the message lists the known identifiers.
func Limit(id string) (int, error) {
	if n, ok := limits[id]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("unknown venue %q (known: %s)", id, strings.Join(Known(), ", "))
}

// Known returns the sorted list of venue identifiers.
func Known() []string {
	out := make([]string, 0, len(limits))
	for k := range limits {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
