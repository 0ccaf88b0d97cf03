// Package protocol implements the line-based text protocol used to play a
// game from a terminal or a driving program.
package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/hailam/checkers/internal/board"
	"github.com/hailam/checkers/internal/movecache"
	"github.com/hailam/checkers/internal/render"
	"github.com/hailam/checkers/internal/storage"
)

// ErrNoStorage is returned by commands that need a database when none is attached.
var ErrNoStorage = errors.New("no storage attached")

// Protocol reads commands line by line and writes responses.
type Protocol struct {
	board  *board.Board
	rules  board.Rules // applied by the next new or position
	out    io.Writer
	log    zerolog.Logger
	store  *storage.Storage
	cache  *movecache.Cache
	render render.Options

	// record is the saved game the board was loaded from or last saved as.
	record   *storage.GameRecord
	// recorded is set once the current game's result is in the stats.
	recorded bool
}

// Option configures a Protocol.
type Option func(*Protocol)

// WithOutput sets where responses are written. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Protocol) { p.out = w }
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Protocol) { p.log = l }
}

// WithStorage enables the save, load, games and stats commands.
func WithStorage(s *storage.Storage) Option {
	return func(p *Protocol) { p.store = s }
}

// WithCache serves moves and perft through c when its rules match the board.
func WithCache(c *movecache.Cache) Option {
	return func(p *Protocol) { p.cache = c }
}

// WithRenderOptions sets the options used by the render command.
func WithRenderOptions(o render.Options) Option {
	return func(p *Protocol) { p.render = o }
}

// New creates a protocol handler driving b.
func New(b *board.Board, opts ...Option) *Protocol {
	p := &Protocol{
		board: b,
		rules: b.Rules(),
		out:   os.Stdout,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Board returns the board currently being played.
func (p *Protocol) Board() *board.Board {
	return p.board
}

// Run processes commands from r until it is exhausted, quit is received or
// ctx is cancelled. Command errors are reported on the output and do not
// stop the loop.
func (p *Protocol) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := p.Execute(scanner.Text())
		if err != nil {
			p.log.Debug().Str("line", scanner.Text()).Err(err).Msg("command failed")
			fmt.Fprintf(p.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. It reports whether the loop should stop.
func (p *Protocol) Execute(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}

	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		p.handleHelp()
	case "new":
		p.handleNew()
	case "position":
		return false, p.handlePosition(args)
	case "move":
		if len(args) == 0 {
			return false, errors.New("usage: move <turn>")
		}
		return false, p.handleMove(strings.Join(args, ""))
	case "undo":
		return false, p.handleUndo()
	case "moves":
		p.handleMoves()
	case "d":
		fmt.Fprint(p.out, p.board.CurrentState().String())
	case "fen":
		fmt.Fprintln(p.out, p.board.CurrentState().FEN())
	case "history":
		fmt.Fprintln(p.out, formatHistory(p.board))
	case "status":
		p.handleStatus()
	case "perft":
		return false, p.handlePerft(args)
	case "set":
		return false, p.handleSet(args)
	case "save":
		return false, p.handleSave(args)
	case "load":
		return false, p.handleLoad(args)
	case "games":
		return false, p.handleGames()
	case "stats":
		return false, p.handleStats()
	case "render":
		return false, p.handleRender(args)
	case "dump":
		spew.Fdump(p.out, p.board.CurrentState(), p.board.Turns())
	default:
		if isTurn(cmd) {
			return false, p.handleMove(strings.Join(parts, ""))
		}
		return false, fmt.Errorf("unknown command %q", parts[0])
	}
	return false, nil
}

// isTurn reports whether a command looks like turn notation.
func isTurn(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func (p *Protocol) handleHelp() {
	fmt.Fprint(p.out, `commands:
  new                                 start a new game
  position startpos|fen <fen> [moves <turn>...]
  move <turn> | <turn>                play a turn, e.g. 11-15 or 14x23x30
  undo                                take back the last turn
  moves                               list legal turns
  d | fen | history | status          show the game
  perft <depth>                       count leaf positions
  set flying|maxcapture on|off        rules for the next game
  save [name] | load <id> | games | stats
  render <file.svg|file.png>          draw the position
  dump                                dump internal state
  quit
`)
}

func (p *Protocol) newBoard(start board.State, turns []string) (*board.Board, error) {
	return board.Replay(start, turns, board.WithRules(p.rules), board.WithLogger(p.log))
}

// handleNew resets the board to the starting position.
func (p *Protocol) handleNew() {
	p.board = board.NewBoard(board.WithRules(p.rules), board.WithLogger(p.log))
	p.record = nil
	p.recorded = false
	fmt.Fprintln(p.out, "ok")
}

// handlePosition sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves 11-15 23-18
//   - position fen <fen>
//   - position fen <fen> moves 11-15
func (p *Protocol) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: position startpos|fen <fen> [moves ...]")
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}
	var turns []string
	if movesAt < len(args) {
		turns = args[movesAt+1:]
	}

	var start board.State
	switch args[0] {
	case "startpos":
		start = board.NewState()
	case "fen":
		s, err := board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			return err
		}
		start = s
	default:
		return fmt.Errorf("unknown position type %q", args[0])
	}

	b, err := p.newBoard(start, turns)
	if err != nil {
		return err
	}
	p.board = b
	p.record = nil
	p.recorded = false
	fmt.Fprintln(p.out, "ok")
	return nil
}

func (p *Protocol) handleMove(text string) error {
	before := p.board.CurrentState()
	if _, err := p.board.PushTurn(text); err != nil {
		return err
	}
	turns := p.board.Turns()
	played := turns[len(turns)-1]
	fmt.Fprintf(p.out, "ok %s\n", played)

	if board.Promotes(before, played) {
		fmt.Fprintf(p.out, "crowned %s\n", played.To())
	}
	if winner, over := p.board.Winner(); over {
		fmt.Fprintf(p.out, "game over: %s wins\n", strings.ToLower(winner.String()))
		if p.store != nil && !p.recorded {
			if err := p.store.RecordResult(storage.ResultOf(p.board), len(turns)); err != nil {
				p.log.Warn().Err(err).Msg("failed to record result")
			} else {
				p.recorded = true
			}
		}
	}
	return nil
}

func (p *Protocol) handleUndo() error {
	turns := p.board.Turns()
	if _, err := p.board.PopTurn(); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "undone %s\n", turns[len(turns)-1])
	return nil
}

// legalTurns serves from the cache when it generates under the board's rules.
func (p *Protocol) legalTurns() board.TurnList {
	if p.cache != nil && p.cache.Rules() == p.board.Rules() {
		return p.cache.Legal(p.board.CurrentState())
	}
	return p.board.LegalTurns()
}

func (p *Protocol) handleMoves() {
	turns := p.legalTurns()
	if len(turns) == 0 {
		fmt.Fprintln(p.out, "(none)")
		return
	}
	fmt.Fprintln(p.out, strings.Join(turns.Strings(), " "))
}

func (p *Protocol) handleStatus() {
	s := p.board.CurrentState()
	if winner, over := p.board.Winner(); over {
		fmt.Fprintf(p.out, "complete, %s wins\n", strings.ToLower(winner.String()))
		return
	}
	fmt.Fprintf(p.out, "ongoing, %s to move\n", strings.ToLower(s.SideToMove().String()))
}

// handlePerft runs a perft test.
func (p *Protocol) handlePerft(args []string) error {
	depth := 5
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			return fmt.Errorf("invalid depth %q", args[0])
		}
		depth = d
	}

	s := p.board.CurrentState()
	start := time.Now()
	var nodes int64
	if p.cache != nil && p.cache.Rules() == p.board.Rules() {
		nodes = p.cache.Perft(s, depth)
	} else {
		nodes = board.Perft(s, depth, p.board.Rules())
	}
	elapsed := time.Since(start)

	fmt.Fprintf(p.out, "Nodes: %s\n", humanize.Comma(nodes))
	p.log.Debug().Int("depth", depth).Int64("nodes", nodes).Dur("elapsed", elapsed).Msg("perft")
	return nil
}

// handleSet changes the rules used by the next new or position command.
// Format: set flying|maxcapture on|off
func (p *Protocol) handleSet(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set flying|maxcapture on|off")
	}
	var on bool
	switch strings.ToLower(args[1]) {
	case "on", "true", "1":
		on = true
	case "off", "false", "0":
	default:
		return fmt.Errorf("invalid value %q", args[1])
	}

	switch strings.ToLower(args[0]) {
	case "flying", "flyingkings":
		p.rules.FlyingKings = on
	case "maxcapture", "maximumcapture":
		p.rules.MaximumCapture = on
	default:
		return fmt.Errorf("unknown option %q", args[0])
	}
	fmt.Fprintln(p.out, "ok")
	return nil
}

func (p *Protocol) handleSave(args []string) error {
	if p.store == nil {
		return ErrNoStorage
	}

	rec := storage.NewGameRecord(p.board, strings.Join(args, " "))
	if p.record != nil {
		rec.ID = p.record.ID
		rec.CreatedAt = p.record.CreatedAt
		if rec.Name == "" {
			rec.Name = p.record.Name
		}
	}
	if err := p.store.SaveGame(rec); err != nil {
		return err
	}
	p.record = rec
	p.rememberLastGame(rec.ID)
	fmt.Fprintf(p.out, "saved %s\n", rec.ShortID())
	return nil
}

func (p *Protocol) handleLoad(args []string) error {
	if p.store == nil {
		return ErrNoStorage
	}
	if len(args) != 1 {
		return errors.New("usage: load <id>")
	}

	rec, err := p.store.FindGame(args[0])
	if err != nil {
		return err
	}
	b, err := rec.Replay(board.WithLogger(p.log))
	if err != nil {
		return err
	}
	p.board = b
	p.rules = b.Rules()
	p.record = rec
	p.recorded = false
	p.rememberLastGame(rec.ID)
	fmt.Fprintf(p.out, "loaded %s %q (%d turns)\n", rec.ShortID(), rec.Name, len(rec.Turns))
	return nil
}

func (p *Protocol) rememberLastGame(id string) {
	prefs, err := p.store.LoadPreferences()
	if err == nil {
		prefs.LastGameID = id
		err = p.store.SavePreferences(prefs)
	}
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to update preferences")
	}
}

func (p *Protocol) handleGames() error {
	if p.store == nil {
		return ErrNoStorage
	}
	games, err := p.store.ListGames()
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(p.out, "(no saved games)")
		return nil
	}
	for _, g := range games {
		fmt.Fprintln(p.out, FormatGameLine(g))
	}
	return nil
}

// FormatGameLine returns a one-line summary of a saved game.
func FormatGameLine(g *storage.GameRecord) string {
	name := g.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s  %-20s %3d turns  %-5s  %s",
		g.ShortID(), name, len(g.Turns), g.Result, humanize.Time(g.UpdatedAt))
}

func (p *Protocol) handleStats() error {
	if p.store == nil {
		return ErrNoStorage
	}
	stats, err := p.store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "games %d  black %d  red %d  unfinished %d  longest %d  average %.1f\n",
		stats.GamesPlayed, stats.BlackWins, stats.RedWins, stats.Unfinished,
		stats.LongestGame, stats.AverageTurns())
	return nil
}

// handleRender writes the current position to a file. The format follows
// the extension: .svg writes SVG, anything else PNG.
func (p *Protocol) handleRender(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: render <file>")
	}
	path := args[0]

	opts := p.render
	if turns := p.board.Turns(); len(turns) > 0 {
		opts.Highlight = turns[len(turns)-1]
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if strings.HasSuffix(strings.ToLower(path), ".svg") {
		_, err = io.WriteString(f, render.SVG(p.board.CurrentState(), opts))
	} else {
		err = render.PNG(f, p.board.CurrentState(), opts)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "wrote %s\n", path)
	return nil
}
