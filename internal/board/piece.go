package board

// Color represents the color of a piece or player.
type Color uint8

const (
	Black Color = iota
	Red
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
		return "NoColor"
	}
}

// PromotionRow returns the mask of squares on which men of this color
// are crowned.
func (c Color) PromotionRow() Bitboard {
	if c == Black {
		return RedBackRank
	}
	return BlackBackRank
}

// Forward returns the two diagonals a man of this color may move along.
func (c Color) Forward() [2]Direction {
	if c == Black {
		return [2]Direction{SouthWest, SouthEast}
	}
	return [2]Direction{NorthWest, NorthEast}
}

// Kind distinguishes men from kings.
type Kind uint8

const (
	Man Kind = iota
	King
	NoKind Kind = 2
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Man:
		return "Man"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Piece combines Kind and Color into a single value.
// Encoded as: kind + color*2
type Piece uint8

const (
	BlackMan  Piece = Piece(Man) + Piece(Black)*2
	BlackKing Piece = Piece(King) + Piece(Black)*2
	RedMan    Piece = Piece(Man) + Piece(Red)*2
	RedKing   Piece = Piece(King) + Piece(Red)*2
	NoPiece   Piece = 4
)

// NewPiece creates a Piece from Kind and Color.
func NewPiece(k Kind, c Color) Piece {
	if k >= NoKind || c >= NoColor {
		return NoPiece
	}
	return Piece(k) + Piece(c)*2
}

// Kind returns the Kind of the piece.
func (p Piece) Kind() Kind {
	if p >= NoPiece {
		return NoKind
	}
	return Kind(p % 2)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 2)
}

// String returns the diagram character for the piece.
// Lowercase for men, uppercase for kings.
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	return string("bBrR"[p])
}
