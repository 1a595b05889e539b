package game

// Pair is an unordered ball pair keyed lower number first.
type Pair struct {
	A int `json:"a"`
	B int `json:"b"`
}

func MakePair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Neighbors is the frame-scoped proximity set used to prune ball-ball checks.
// It is rebuilt from scratch every frame.
type Neighbors struct {
	lists [NumBalls][]int
	pairs []Pair
}

// Rebuild records every pair of on-table balls closer than the sum of their
// radii plus the larger radius.
func (nb *Neighbors) Rebuild(s *BallSet) {
	for i := range nb.lists {
		nb.lists[i] = nb.lists[i][:0]
	}
	nb.pairs = nb.pairs[:0]

	live := s.Live()
	for i, a := range live {
		ba := s.Get(a)
		for _, b := range live[i+1:] {
			bb := s.Get(b)
			reach := ba.Radius + bb.Radius + max(ba.Radius, bb.Radius)
			if ba.Position.DistanceSquaredTo(bb.Position) < reach*reach {
				nb.lists[a] = append(nb.lists[a], b)
				nb.lists[b] = append(nb.lists[b], a)
				nb.pairs = append(nb.pairs, Pair{A: a, B: b})
			}
		}
	}
}

// Of returns the neighbors of ball n in ascending order.
func (nb *Neighbors) Of(n int) []int {
	if n < 0 || n >= NumBalls {
		return nil
	}
	return nb.lists[n]
}

// Pairs returns every recorded pair, each exactly once, sorted by A then B.
func (nb *Neighbors) Pairs() []Pair {
	return nb.pairs
}
