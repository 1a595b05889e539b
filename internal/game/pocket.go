package game

// Capture is one ball falling into a pocket.
type Capture struct {
	Number int  `json:"number"`
	Kind   Kind `json:"kind"`
	Pocket int  `json:"pocket"`
}

// DetectPockets tests every on-table ball against the pockets, first pocket
// wins. Captured object balls leave the table; a captured cue ball is put
// back on its spot at rest.
func DetectPockets(s *BallSet, t Table) []Capture {
	var captures []Capture
	for _, n := range s.Live() {
		b := s.Get(n)
		for _, p := range t.Pockets {
			if b.Position.DistanceTo(p.Position) >= t.PocketRadius {
				continue
			}
			captures = append(captures, Capture{Number: n, Kind: b.Kind, Pocket: p.ID})
			if n == CueBall {
				s.Place(CueBall, t.CueSpot())
			} else {
				s.Remove(n)
			}
			break
		}
	}
	return captures
}

// PocketContacts converts captures into contacts for the render collaborator.
func PocketContacts(captures []Capture) []Contact {
	contacts := make([]Contact, 0, len(captures))
	for _, c := range captures {
		contacts = append(contacts, Contact{Type: ContactPocket, Ball: c.Number, Target: c.Pocket})
	}
	return contacts
}
