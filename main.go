package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"patzer/agent"
	"patzer/engine"
	"patzer/experiments"
	"patzer/game"
	"patzer/gamemaster"
	"patzer/meta"
	"patzer/player"
	"patzer/prompt"
	"strings"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	white      string
	black      string
	depth      int
	games      int
	experiment bool
	fen        string
	logLevel   string
}

func main() {
	cfg := config{}
	strategies := strings.Join(agent.Names(), ", ")
	flag.StringVar(&cfg.white, "white", "human", "white player: human or one of "+strategies)
	flag.StringVar(&cfg.black, "black", agent.AlphaBeta, "black player: human or one of "+strategies)
	flag.IntVar(&cfg.depth, "depth", meta.DEFAULT_DEPTH, "search depth of the hope and alphabeta strategies")
	flag.IntVar(&cfg.games, "games", 1, "number of headless games, or games per match up with -experiment")
	flag.BoolVar(&cfg.experiment, "experiment", false, "run the strategy tournament and write csv results")
	flag.StringVar(&cfg.fen, "fen", "", "starting position in FEN")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	level, err := zerolog.ParseLevel(cfg.logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("patzer failed")
	}
}

func run(cfg config) error {
	if cfg.experiment {
		_, err := experiments.RunTournament("results", "tournament", experiments.Baseline, cfg.games)
		return err
	}

	white, err := agent.Parse(cfg.white, cfg.depth)
	if err != nil {
		return fmt.Errorf("white: %w", err)
	}
	black, err := agent.Parse(cfg.black, cfg.depth)
	if err != nil {
		return fmt.Errorf("black: %w", err)
	}

	if white.IsHuman() || black.IsHuman() {
		return playInteractive(white, black, cfg.fen)
	}
	return playHeadless(white, black, cfg.fen, cfg.games)
}

// playHeadless runs computer against computer without think delays.
func playHeadless(white, black player.Player, fen string, games int) error {
	for i := 0; i < games; i++ {
		options := []engine.Option{}
		if fen != "" {
			record, err := gamemaster.NewRecordFromFEN(white.Name(), black.Name(), fen)
			if err != nil {
				return err
			}
			options = append(options, engine.WithRecord(record))
		}

		e := engine.NewLocal(white, black, options...)
		result, _, _ := e.Run()
		fmt.Printf("Game %d is over! %s\n", i+1, result)
		fmt.Println(e.Record().PGN())
	}
	return nil
}

// playInteractive plays a human on the terminal against the match's computer
// workers.
func playInteractive(white, black player.Player, fen string) error {
	var m *gamemaster.Match
	if fen != "" {
		var err error
		if m, err = gamemaster.NewMatchFromFEN(white, black, fen); err != nil {
			return err
		}
	} else {
		m = gamemaster.NewMatch(white, black)
	}

	p := prompt.New(os.Stdin, os.Stdout)
	m.Start()
	defer m.Reset()

	shown := -1
	for !m.IsFinished() {
		if !m.HumanToMove() {
			time.Sleep(meta.POLL_INTERVAL)
			continue
		}

		pos := m.Position()
		if plies := m.Plies(); plies != shown {
			p.Show(pos)
			shown = plies
		}
		move, err := p.ReadMove(pos)
		if errors.Is(err, io.EOF) {
			move = nil
		} else if err != nil {
			return err
		}
		if move == nil {
			fmt.Printf("%s resigns\n", game.ColorName(pos.Turn()))
			m.Resign(pos.Turn())
			break
		}
		m.SubmitMove(move.S1(), move.S2(), move.Promo())
	}

	final := m.Position()
	fmt.Println(final.Board().Draw())
	fmt.Printf("Game is over! %s\n", m.StatusMessage())
	if winner := m.Result().Winner(); winner != chess.NoColor {
		whiteName, blackName := m.PlayerNames()
		name := whiteName
		if winner == chess.Black {
			name = blackName
		}
		fmt.Printf("%s wins\n", name)
	}
	fmt.Println(m.PGN())
	return nil
}
