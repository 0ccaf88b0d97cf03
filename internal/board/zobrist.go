package board

// Zobrist hash keys for state hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][2][32]uint64 // [Color][Kind][bit]
	zobristSideToMove uint64           // XOR when red to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := Black; c <= Red; c++ {
		for k := Man; k <= King; k++ {
			for i := 0; i < 32; i++ {
				zobristPiece[c][k][i] = rng.next()
			}
		}
	}
	zobristSideToMove = rng.next()
}

// Hash computes the Zobrist hash of the state.
func (s State) Hash() uint64 {
	var hash uint64
	for c := Black; c <= Red; c++ {
		for k := Man; k <= King; k++ {
			keys := &zobristPiece[c][k]
			s.pieces[c][k].ForEach(func(sq Square) {
				hash ^= keys[sq.Bit()]
			})
		}
	}
	if s.side == Red {
		hash ^= zobristSideToMove
	}
	return hash
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(p Piece, sq Square) uint64 {
	return zobristPiece[p.Color()][p.Kind()][sq.Bit()]
}
