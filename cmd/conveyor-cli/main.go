package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"conveyor/internal/agent"
	"conveyor/internal/config"
	"conveyor/internal/game"
	gamelog "conveyor/internal/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	games := flag.Int("games", cfg.Games, "number of matches to run")
	seed := flag.Uint64("seed", cfg.Seed, "base shuffle seed (match i uses seed+i)")
	depth := flag.Int("depth", cfg.Depth, "lookahead search depth in plies")
	horizon := flag.Int("horizon", cfg.Horizon, "rounds per match")
	pool := flag.String("pool", cfg.Pool, "YAML card-pool file restricting the deck")
	p0 := flag.String("p0", cfg.P0, "player 1 agent (random|greedy|lookahead)")
	p1 := flag.String("p1", cfg.P1, "player 2 agent (random|greedy|lookahead)")
	verbose := flag.Bool("v", cfg.Verbose, "print the per-match event log")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(*games, *seed, *depth, *horizon, *pool, *p0, *p1, *verbose); err != nil {
		log.Fatal().Err(err).Msg("match run failed")
	}
}

func run(games int, seed uint64, depth, horizon int, poolPath, p0Name, p1Name string, verbose bool) error {
	var poolCards []string
	if poolPath != "" {
		pf, err := game.ParsePoolFile(poolPath)
		if err != nil {
			return err
		}
		poolCards = pf.Cards
		log.Info().Str("pool", pf.Name).Int("cards", len(pf.Cards)).Msg("loaded card pool")
	}

	wins := [2]int{}
	ties := 0
	for i := 0; i < games; i++ {
		player0, err := agent.New(p0Name, seed+uint64(i), depth)
		if err != nil {
			return err
		}
		player1, err := agent.New(p1Name, seed+uint64(i)+0x9e3779b9, depth)
		if err != nil {
			return err
		}

		var logger gamelog.EventLogger = gamelog.NewMemoryLogger()
		if verbose {
			logger = gamelog.NewTextLogger(os.Stdout)
		}

		m, err := game.NewMatch(game.MatchConfig{
			Pool:    poolCards,
			Seed:    seed + uint64(i),
			Horizon: horizon,
			Logger:  logger,
		}, player0, player1)
		if err != nil {
			return err
		}

		final, err := m.Run()
		if err != nil {
			// Dump the transcript so a resolver defect is diagnosable.
			fmt.Fprint(os.Stderr, gamelog.FormatAll(logger.Events()))
			return err
		}

		ev := log.Info().
			Int("game", i+1).
			Uint64("seed", seed+uint64(i)).
			Int("p1_score", final.Players[0].Score).
			Int("p2_score", final.Players[1].Score)
		switch final.Winner {
		case -1:
			ties++
			ev.Msg("tie")
		default:
			wins[final.Winner]++
			name := p0Name
			if final.Winner == 1 {
				name = p1Name
			}
			ev.Str("winner", fmt.Sprintf("P%d (%s)", final.Winner+1, name)).Msg("match over")
		}
	}

	log.Info().
		Int("games", games).
		Int("p1_wins", wins[0]).
		Int("p2_wins", wins[1]).
		Int("ties", ties).
		Str("p1", p0Name).
		Str("p2", p1Name).
		Msg("summary")
	return nil
}
