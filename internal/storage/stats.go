package storage

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed int `json:"games_played"`
	BlackWins   int `json:"black_wins"`
	RedWins     int `json:"red_wins"`
	Unfinished  int `json:"unfinished"`
	TotalTurns  int `json:"total_turns"`
	LongestGame int `json:"longest_game"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{}
}

// AverageTurns returns the mean number of turns per recorded game.
func (s *GameStats) AverageTurns() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.GamesPlayed)
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.putJSON(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	_, err := s.getJSON(keyStats, stats)
	return stats, err
}

// RecordResult adds a finished or abandoned game of the given length to
// the statistics.
func (s *Storage) RecordResult(result Result, turns int) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalTurns += turns
	stats.LongestGame = max(stats.LongestGame, turns)

	switch result {
	case ResultBlackWins:
		stats.BlackWins++
	case ResultRedWins:
		stats.RedWins++
	default:
		stats.Unfinished++
	}

	return s.SaveStats(stats)
}
