// Package bonuses implements the contextual adjustment layers: bonuses
// for wins earned the hard way, penalties for flawed analysis, the
// per-sport extensions of both, and the staleness penalty. Every check
// reads optional context records and treats a missing record as "flag
// absent", so the layers never fail a prop.
package bonuses

// Adjustment is one summed layer plus the names of the checks that
// fired, for audit output.
type Adjustment struct {
	Total   float64  `json:"total"`
	Applied []string `json:"applied,omitempty"`
}

func (a *Adjustment) add(amount float64, name string) {
	a.Total += amount
	a.Applied = append(a.Applied, name)
}
