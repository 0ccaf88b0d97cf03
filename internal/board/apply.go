package board

import "slices"

// Validate matches t against the legal turns of s by exact move sequence.
// It returns nil on a match and an *IllegalMoveError carrying the most
// specific reason otherwise.
func Validate(s State, t Turn, r Rules) error {
	if len(t) == 0 {
		return illegal(t, ReasonNotLegal)
	}
	legal := GenerateTurns(s, r)
	if legal.Contains(t) {
		return nil
	}
	return illegal(t, diagnose(s, t, r, legal))
}

// diagnose explains why t is not among the legal turns.
func diagnose(s State, t Turn, r Rules, legal TurnList) Reason {
	us := s.side
	if !t.IsCapture() && HasCapture(s, r) {
		return ReasonMandatoryCapture
	}

	p := s.PieceAt(t.From())
	if p == NoPiece {
		return ReasonNoPiece
	}
	if p.Color() != us {
		return ReasonWrongOwner
	}

	king := p.Kind() == King
	flying := king && r.FlyingKings
	dirs := pieceDirections(us, king)
	occupied := s.Occupied().Clear(t.From())
	enemies := s.Pieces(us.Other())

	var captured Bitboard
	pos := t.From()
	for _, m := range t {
		if m.From != pos {
			return ReasonBrokenChain
		}
		if m.Capture != t.IsCapture() {
			return ReasonMarkerMismatch
		}
		line, ok := LineBetween(m.From, m.To)
		if !ok {
			return ReasonNotDiagonal
		}
		if !slices.Contains(dirs, line.Dir) {
			return ReasonWrongDirection
		}
		if occupied.IsSet(m.To) {
			return ReasonDestinationOccupied
		}

		if m.Capture {
			victims := line.Between & enemies &^ captured
			switch {
			case line.Distance == 1:
				return ReasonMarkerMismatch
			case !flying && line.Distance != 2:
				return ReasonNotDiagonal
			case !victims.Single() || line.Between&occupied != victims:
				return ReasonNothingToCapture
			}
			captured |= victims
		} else {
			switch {
			case !flying && line.Distance == 2 && line.Between&enemies != 0:
				return ReasonMarkerMismatch
			case !flying && line.Distance > 1:
				return ReasonNotDiagonal
			case line.Between&occupied != 0:
				return ReasonDestinationOccupied
			}
		}
		pos = m.To
	}

	if t.IsCapture() {
		for _, l := range legal {
			if l.HasPrefix(t) {
				return ReasonIncompleteChain
			}
		}
		if r.MaximumCapture && generateCaptures(s, r).Contains(t) {
			return ReasonNotMaximum
		}
	}
	return ReasonNotLegal
}

// Apply returns the state reached by playing t in s: the piece moves from
// origin to final destination, captured pieces are removed, a man ending on
// its promotion row is crowned and the side to move flips. t must be legal
// for s; Apply does not validate it.
func Apply(s State, t Turn) State {
	from, to := t.From(), t.To()
	p := s.PieceAt(from)
	if p == NoPiece {
		return s
	}
	us := p.Color()

	captured := t.Captured(s)
	next := s.without(from)
	for k := Man; k <= King; k++ {
		next.pieces[us.Other()][k] &^= captured
	}
	if p.Kind() == Man && us.PromotionRow().IsSet(to) {
		p = NewPiece(King, us)
	}
	next = next.with(p, to)
	next.side = s.side.Other()
	return next
}

// Promotes reports whether playing t in s crowns the moving piece.
func Promotes(s State, t Turn) bool {
	p := s.PieceAt(t.From())
	return p != NoPiece && p.Kind() == Man && p.Color().PromotionRow().IsSet(t.To())
}
