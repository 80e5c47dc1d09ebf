// Package diff is the one pure piece of the pipeline: which of the
// fetched listings has nobody been told about yet.
package diff

import "github.com/Monika-msk/vtu-watcher/internal/domain"

// New returns every listing whose id is absent from seen, in fetch
// order. Inputs are never mutated.
func New(all []domain.Listing, seen map[string]struct{}) []domain.Listing {
	var out []domain.Listing
	for _, l := range all {
		if _, ok := seen[l.ID]; ok {
			continue
		}
		out = append(out, l)
	}
	return out
}

// IDs collects the identifiers of listings, in order.
func IDs(listings []domain.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}
