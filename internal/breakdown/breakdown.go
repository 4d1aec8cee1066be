// Package breakdown caches the last successful script analysis.
package breakdown

import "strings"

// Scene is one breakdown row as the NLP service reports it.
type Scene struct {
	Number  int    `json:"number"`
	Heading string `json:"heading"`
}

// Result is the structured payload produced by the NLP collaborator.
// Consumed read-only, for display and quote prefill.
type Result struct {
	EstimatedShootDays int      `json:"estimated_shoot_days"`
	SceneCount         int      `json:"scene_count"`
	LocationCount      int      `json:"location_count"`
	CharacterCount     int      `json:"character_count"`
	ComplexityScore    int      `json:"complexity_score"`
	Locations          []string `json:"locations"`
	Characters         []string `json:"characters"`
	Scenes             []Scene  `json:"scenes"`
}

// Hint carries the fields the quote workflow prefills from.
type Hint struct {
	EstimatedShootDays int
	VisualElements     string
	SceneCount         int
}

// Model holds the last successful result. Replaced wholesale on a new
// success; a failed analysis leaves the previous result untouched so
// the pane keeps showing stale-but-valid data next to the error.
type Model struct {
	result *Result
}

// Set replaces the cached result.
func (m *Model) Set(r Result) { m.result = &r }

// Result returns the cached result, nil when no analysis has succeeded.
func (m *Model) Result() *Result { return m.result }

// Hint derives quote-prefill defaults from the cached result. The
// second return is false when nothing has been analyzed yet. Visual
// elements join the first three locations, mirroring how the dashboard
// lists key locations.
func (m *Model) Hint() (Hint, bool) {
	if m.result == nil {
		return Hint{}, false
	}
	locs := m.result.Locations
	if len(locs) > 3 {
		locs = locs[:3]
	}
	return Hint{
		EstimatedShootDays: m.result.EstimatedShootDays,
		VisualElements:     strings.Join(locs, ", "),
		SceneCount:         m.result.SceneCount,
	}, true
}
