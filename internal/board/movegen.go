package board

// Rules selects the rule variant used for generation and validation.
// The zero value is American checkers: short kings, any maximal chain.
type Rules struct {
	// FlyingKings lets kings slide along open diagonals and capture a
	// distant piece, landing on any empty square beyond it.
	FlyingKings bool

	// MaximumCapture restricts captures to the chains taking the most pieces.
	MaximumCapture bool
}

// AmericanRules is the default rule set.
var AmericanRules = Rules{}

// InternationalRules uses flying kings and the majority capture rule.
var InternationalRules = Rules{FlyingKings: true, MaximumCapture: true}

// LegalTurns returns every legal turn for the side to move under the
// default rules.
func (s State) LegalTurns() TurnList {
	return GenerateTurns(s, AmericanRules)
}

// GenerateTurns returns every legal turn for the side to move. When any
// capture exists, only capture chains are returned. The result is
// deterministic: ascending origin square, then direction order.
func GenerateTurns(s State, r Rules) TurnList {
	captures := generateCaptures(s, r)
	if len(captures) > 0 {
		if r.MaximumCapture {
			captures = longestOnly(captures)
		}
		return captures
	}
	return generateSteps(s, r)
}

// HasCapture returns true if the side to move has at least one capture.
func HasCapture(s State, r Rules) bool {
	us := s.side
	them := s.Pieces(us.Other())
	empty := s.EmptySquares()

	men := s.pieces[us][Man]
	for _, d := range us.Forward() {
		if (men.Shift(d)&them).Shift(d)&empty != 0 {
			return true
		}
	}
	kings := s.pieces[us][King]
	if kings == 0 {
		return false
	}
	if r.FlyingKings {
		return len(generateCaptures(s, r)) > 0
	}
	for _, d := range Directions {
		if (kings.Shift(d)&them).Shift(d)&empty != 0 {
			return true
		}
	}
	return false
}

// generateSteps generates all non-capturing turns.
func generateSteps(s State, r Rules) TurnList {
	us := s.side
	occupied := s.Occupied()
	var turns TurnList

	pieces := s.Pieces(us)
	for pieces != 0 {
		from := pieces.PopLSB()
		king := s.pieces[us][King].IsSet(from)
		for _, d := range pieceDirections(us, king) {
			reach := Ray(from, d, occupied)
			for to := from.Neighbor(d); reach.IsSet(to); to = to.Neighbor(d) {
				turns = append(turns, Turn{NewMove(from, to)})
				if !king || !r.FlyingKings {
					break
				}
			}
		}
	}
	return turns
}

// pieceDirections returns the directions a piece may move in.
func pieceDirections(c Color, king bool) []Direction {
	if king {
		return Directions[:]
	}
	fwd := c.Forward()
	return fwd[:]
}

// chainSearch holds the scratch state of a capture chain search. The
// moving piece is lifted off its origin; captured pieces stay on the board
// as blockers until the turn ends but cannot be jumped again.
type chainSearch struct {
	rules    Rules
	color    Color
	king     bool
	occupied Bitboard
	enemies  Bitboard
	out      TurnList
}

// generateCaptures generates all maximal capture chains.
func generateCaptures(s State, r Rules) TurnList {
	us := s.side
	var out TurnList

	pieces := s.Pieces(us)
	for pieces != 0 {
		from := pieces.PopLSB()
		cs := chainSearch{
			rules:    r,
			color:    us,
			king:     s.pieces[us][King].IsSet(from),
			occupied: s.Occupied().Clear(from),
			enemies:  s.Pieces(us.Other()),
		}
		cs.extend(from, 0, nil)
		out = append(out, cs.out...)
	}
	return out
}

// extend explores every jump from sq given the pieces already captured.
// A chain is emitted once no further jump is possible.
func (cs *chainSearch) extend(sq Square, captured Bitboard, path Turn) {
	found := false
	for _, d := range pieceDirections(cs.color, cs.king) {
		for _, j := range cs.jumps(sq, d, captured) {
			found = true
			next := append(path[:len(path):len(path)], NewJump(sq, j.land))
			if !cs.king && cs.color.PromotionRow().IsSet(j.land) {
				cs.out = append(cs.out, next)
				continue
			}
			cs.extend(j.land, captured|SquareBB(j.victim), next)
		}
	}
	if !found && len(path) > 0 {
		cs.out = append(cs.out, path)
	}
}

type jump struct {
	victim Square
	land   Square
}

// jumps lists the jumps available from sq in direction d.
func (cs *chainSearch) jumps(sq Square, d Direction, captured Bitboard) []jump {
	targets := cs.enemies &^ captured

	if !cs.king || !cs.rules.FlyingKings {
		victim := sq.Neighbor(d)
		if victim == NoSquare || !targets.IsSet(victim) {
			return nil
		}
		land := victim.Neighbor(d)
		if land == NoSquare || cs.occupied.IsSet(land) {
			return nil
		}
		return []jump{{victim: victim, land: land}}
	}

	// Flying king: slide over empties to the first piece, which must be a
	// capturable enemy, then land on any empty square beyond it.
	open := Ray(sq, d, cs.occupied)
	victim := ((open | SquareBB(sq)).Shift(d) &^ open).LSB()
	if victim == NoSquare || !targets.IsSet(victim) {
		return nil
	}
	var out []jump
	landing := Ray(victim, d, cs.occupied)
	for land := victim.Neighbor(d); landing.IsSet(land); land = land.Neighbor(d) {
		out = append(out, jump{victim: victim, land: land})
	}
	return out
}

// longestOnly keeps the chains with the most jumps.
func longestOnly(turns TurnList) TurnList {
	best := 0
	for _, t := range turns {
		best = max(best, len(t))
	}
	out := turns[:0:0]
	for _, t := range turns {
		if len(t) == best {
			out = append(out, t)
		}
	}
	return out
}

// Perft counts the number of leaf states reachable in exactly depth turns.
func Perft(s State, depth int, r Rules) int64 {
	if depth == 0 {
		return 1
	}
	turns := GenerateTurns(s, r)
	if depth == 1 {
		return int64(len(turns))
	}
	var nodes int64
	for _, t := range turns {
		nodes += Perft(Apply(s, t), depth-1, r)
	}
	return nodes
}
