// Command checkers plays, analyses and renders checkers games.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/hailam/checkers/internal/board"
	"github.com/hailam/checkers/internal/config"
	"github.com/hailam/checkers/internal/logging"
	"github.com/hailam/checkers/internal/movecache"
	"github.com/hailam/checkers/internal/protocol"
	"github.com/hailam/checkers/internal/render"
	"github.com/hailam/checkers/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env carries the settings resolved before any command runs.
type env struct {
	cfg config.Config
	log zerolog.Logger
}

func newApp() *cli.App {
	e := &env{}
	return &cli.App{
		Name:  "checkers",
		Usage: "play and analyse checkers games",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load settings from this .env file",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "directory holding the game database",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "flying-kings",
				Usage: "kings move and capture along whole diagonals",
			},
			&cli.BoolFlag{
				Name:  "max-capture",
				Usage: "only the longest capture chains are legal",
			},
		},
		Before: func(cCtx *cli.Context) error {
			var paths []string
			if p := cCtx.String("env-file"); p != "" {
				paths = append(paths, p)
			}
			cfg, err := config.Load(paths...)
			if err != nil {
				return err
			}
			if cCtx.IsSet("data-dir") {
				cfg.DataDir = cCtx.String("data-dir")
			}
			if cCtx.IsSet("log-level") {
				cfg.LogLevel = cCtx.String("log-level")
			}
			if cCtx.IsSet("flying-kings") {
				cfg.FlyingKings = cCtx.Bool("flying-kings")
			}
			if cCtx.IsSet("max-capture") {
				cfg.MaximumCapture = cCtx.Bool("max-capture")
			}
			e.cfg = cfg
			e.log = logging.Stderr(cfg.LogLevel)
			return nil
		},
		Commands: []*cli.Command{
			e.playCommand(),
			e.perftCommand(),
			e.renderCommand(),
			e.gamesCommand(),
		},
	}
}

func (e *env) openStorage(memory bool) (*storage.Storage, error) {
	if memory {
		return storage.OpenInMemory(storage.WithLogger(e.log))
	}
	if e.cfg.DataDir != "" {
		return storage.Open(e.cfg.DataDir, storage.WithLogger(e.log))
	}
	return storage.NewStorage(storage.WithLogger(e.log))
}

func (e *env) playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "play a game over the text protocol on stdin/stdout",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "memory",
				Usage: "keep saved games in memory only",
			},
		},
		Action: func(cCtx *cli.Context) error {
			store, err := e.openStorage(cCtx.Bool("memory"))
			if err != nil {
				return err
			}
			defer store.Close()

			cache, err := movecache.New(e.cfg.CacheEntries, e.cfg.Rules())
			if err != nil {
				return err
			}
			defer cache.Close()

			prefs, err := store.LoadPreferences()
			if err != nil {
				return err
			}

			b := board.NewBoard(board.WithRules(e.cfg.Rules()), board.WithLogger(e.log))
			p := protocol.New(b,
				protocol.WithLogger(e.log),
				protocol.WithStorage(store),
				protocol.WithCache(cache),
				protocol.WithRenderOptions(render.Options{Size: prefs.RenderSize}),
			)

			if first, err := store.IsFirstLaunch(); err == nil && first {
				fmt.Println(`Welcome to checkers. Type "help" for commands.`)
				if err := store.MarkFirstLaunchComplete(); err != nil {
					e.log.Warn().Err(err).Msg("failed to mark first launch")
				}
			}

			err = p.Run(cCtx.Context, os.Stdin)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func (e *env) perftCommand() *cli.Command {
	return &cli.Command{
		Name:  "perft",
		Usage: "count leaf positions to a fixed depth",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "depth",
				Aliases: []string{"d"},
				Value:   6,
			},
			&cli.StringFlag{
				Name:  "fen",
				Value: board.StartFEN,
			},
			&cli.BoolFlag{
				Name:  "cached",
				Usage: "memoise generation in the move cache",
			},
		},
		Action: func(cCtx *cli.Context) error {
			s, err := board.ParseFEN(cCtx.String("fen"))
			if err != nil {
				return err
			}
			depth := cCtx.Int("depth")
			rules := e.cfg.Rules()

			count := func(d int) int64 { return board.Perft(s, d, rules) }
			if cCtx.Bool("cached") {
				cache, err := movecache.New(e.cfg.CacheEntries, rules)
				if err != nil {
					return err
				}
				defer cache.Close()
				count = func(d int) int64 { return cache.Perft(s, d) }
			}

			start := time.Now()
			for d := 1; d <= depth; d++ {
				fmt.Printf("perft(%d) = %s\n", d, humanize.Comma(count(d)))
			}
			e.log.Info().Dur("elapsed", time.Since(start)).Msg("perft done")
			return nil
		},
	}
}

func (e *env) renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "draw a position as SVG or PNG",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "fen",
				Value: board.StartFEN,
			},
			&cli.StringFlag{
				Name:  "turns",
				Usage: "space separated turns to play from the position first",
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "output file; .svg writes SVG, anything else PNG",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "size",
				Value: render.DefaultSize,
			},
			&cli.BoolFlag{
				Name:  "numbers",
				Usage: "label the squares",
			},
			&cli.BoolFlag{
				Name:  "flip",
				Usage: "red at the top",
			},
		},
		Action: func(cCtx *cli.Context) error {
			start, err := board.ParseFEN(cCtx.String("fen"))
			if err != nil {
				return err
			}
			b, err := board.Replay(start, strings.Fields(cCtx.String("turns")), board.WithRules(e.cfg.Rules()))
			if err != nil {
				return err
			}

			opts := render.Options{
				Size:    cCtx.Int("size"),
				Numbers: cCtx.Bool("numbers"),
				Flip:    cCtx.Bool("flip"),
			}
			if turns := b.Turns(); len(turns) > 0 {
				opts.Highlight = turns[len(turns)-1]
			}

			out := cCtx.String("out")
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if strings.HasSuffix(strings.ToLower(out), ".svg") {
				_, err = f.WriteString(render.SVG(b.CurrentState(), opts))
			} else {
				err = render.PNG(f, b.CurrentState(), opts)
			}
			if err != nil {
				return err
			}
			e.log.Info().Str("file", out).Msg("rendered")
			return f.Close()
		},
	}
}

func (e *env) gamesCommand() *cli.Command {
	withStore := func(fn func(cCtx *cli.Context, store *storage.Storage) error) cli.ActionFunc {
		return func(cCtx *cli.Context) error {
			store, err := e.openStorage(false)
			if err != nil {
				return err
			}
			defer store.Close()
			return fn(cCtx, store)
		}
	}

	return &cli.Command{
		Name:  "games",
		Usage: "manage saved games",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list saved games, newest first",
				Action: withStore(func(cCtx *cli.Context, store *storage.Storage) error {
					games, err := store.ListGames()
					if err != nil {
						return err
					}
					for _, g := range games {
						fmt.Println(protocol.FormatGameLine(g))
					}
					return nil
				}),
			},
			{
				Name:      "show",
				Usage:     "replay a saved game and print its final position",
				ArgsUsage: "<id>",
				Action: withStore(func(cCtx *cli.Context, store *storage.Storage) error {
					g, err := store.FindGame(cCtx.Args().First())
					if err != nil {
						return err
					}
					b, err := g.Replay()
					if err != nil {
						return err
					}
					fmt.Printf("%s %q created %s\n", g.ID, g.Name, humanize.Time(g.CreatedAt))
					fmt.Println(board.FormatTurns(b.Turns()))
					fmt.Print(b.CurrentState().String())
					return nil
				}),
			},
			{
				Name:      "delete",
				Usage:     "delete a saved game",
				ArgsUsage: "<id>",
				Action: withStore(func(cCtx *cli.Context, store *storage.Storage) error {
					g, err := store.FindGame(cCtx.Args().First())
					if err != nil {
						return err
					}
					if err := store.DeleteGame(g.ID); err != nil {
						return err
					}
					fmt.Printf("deleted %s\n", g.ShortID())
					return nil
				}),
			},
		},
	}
}
