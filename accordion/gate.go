package accordion

// Gate is a panel's re-entrancy lock, held from the moment a show or hide is
// requested until its transition completes or it is rejected.
type Gate struct {
	held bool
}

// Claim takes the gate. It returns false when a transition is already in
// flight.
func (g *Gate) Claim() bool {
	if g.held {
		return false
	}
	g.held = true
	return true
}

func (g *Gate) Release() { g.held = false }

func (g *Gate) Held() bool { return g.held }
