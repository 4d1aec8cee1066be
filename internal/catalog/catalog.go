// Package catalog holds the last-loaded Localized Vendor Rating list.
package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Vendor is one LVR row. Immutable once loaded.
type Vendor struct {
	Name                 string  `json:"name"`
	Type                 string  `json:"type"`
	LVRScore             float64 `json:"lvr_score"`
	Reliability          string  `json:"reliability"`
	PriceCompetitiveness string  `json:"price_competitiveness"`
	Contact              string  `json:"contact"`
}

// Catalog keeps the score-sorted vendor list plus load bookkeeping.
// Confined to the update loop; no locking.
type Catalog struct {
	vendors []Vendor
	loaded  bool
	loading bool
	lastErr string
}

// Begin marks a load as outstanding. It returns false when a load is
// already in flight, in which case the caller must not issue a second
// request: the pending one answers for both.
func (c *Catalog) Begin() bool {
	if c.loading {
		return false
	}
	c.loading = true
	return true
}

// Loading reports whether a load is outstanding.
func (c *Catalog) Loading() bool { return c.loading }

// Apply stores a successful load, sorted descending by LVR score.
// The sort is stable so vendors with equal scores keep fetch order.
func (c *Catalog) Apply(vendors []Vendor) {
	sorted := make([]Vendor, len(vendors))
	copy(sorted, vendors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LVRScore > sorted[j].LVRScore
	})
	c.vendors = sorted
	c.loaded = true
	c.loading = false
	c.lastErr = ""
}

// Fail records a failed load. A previously loaded list stays available:
// stale-but-valid beats blanking the pane.
func (c *Catalog) Fail(reason string) {
	c.loading = false
	c.lastErr = reason
}

// Vendors returns the current list, newest successful load, sorted.
func (c *Catalog) Vendors() []Vendor { return c.vendors }

// HasData reports whether any load has ever succeeded.
func (c *Catalog) HasData() bool { return c.loaded }

// Err returns the most recent failure reason, empty after a success.
func (c *Catalog) Err() string { return c.lastErr }

// Search ranks vendors against a fuzzy query over name and type.
// Exact substring hits come first, then closest edit distance. An empty
// query returns the full list. The catalog itself is not mutated.
func (c *Catalog) Search(query string) []Vendor {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.vendors
	}
	type ranked struct {
		v    Vendor
		tier int
		dist int
	}
	maxDist := len(q) / 2
	if maxDist < 1 {
		maxDist = 1
	}
	var hits []ranked
	for _, v := range c.vendors {
		name := strings.ToLower(v.Name)
		kind := strings.ToLower(v.Type)
		if strings.Contains(name, q) || strings.Contains(kind, q) {
			hits = append(hits, ranked{v: v, tier: 0})
			continue
		}
		d := -1
		for _, token := range strings.Fields(name + " " + kind) {
			td := levenshtein.ComputeDistance(q, token)
			if d == -1 || td < d {
				d = td
			}
		}
		if d == -1 || d > maxDist {
			continue
		}
		hits = append(hits, ranked{v: v, tier: 1, dist: d})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].tier != hits[j].tier {
			return hits[i].tier < hits[j].tier
		}
		return hits[i].dist < hits[j].dist
	})
	out := make([]Vendor, len(hits))
	for i, h := range hits {
		out[i] = h.v
	}
	return out
}
