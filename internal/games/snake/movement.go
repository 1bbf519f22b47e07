package snake

import "time"

type tickOutcome int

const (
	tickNone tickOutcome = iota
	tickMoved
	tickLost
)

// advance accumulates frame time and performs a step once the interval has
// elapsed or the requested direction differs from the committed one.
func (g *Game) advance(dt time.Duration) tickOutcome {
	g.elapsed += dt
	if g.elapsed < g.interval && g.requested == g.committed {
		return tickNone
	}
	g.elapsed = 0
	g.committed = g.requested
	return g.step()
}

// step moves the snake one cell. It is transactional: when the move is
// fatal the body is left exactly as it was.
func (g *Game) step() tickOutcome {
	if len(g.body) == 0 {
		return tickNone
	}
	g.ticks++

	head := g.body[0].Add(g.committed)
	if IsWallCollision(head) {
		if !g.cfg.WrapWalls {
			return tickLost
		}
		head = WrapPosition(head)
	}
	if g.cfg.Holes && IsHoleCollision(head, g.holes) {
		return tickLost
	}

	next := nextBody(g.body, head, g.growing)
	if IsSelfCollision(head, next[1:], g.transitioning) {
		return tickLost
	}
	g.body = next
	g.growing = false
	return tickMoved
}

// nextBody returns the body after moving to head. The tail is kept when
// growing.
func nextBody(body []Position, head Position, growing bool) []Position {
	keep := len(body)
	if !growing {
		keep--
	}
	next := make([]Position, keep+1, keep+2)
	next[0] = head
	copy(next[1:], body[:keep])
	return next
}
