package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ltettoni/ana2-puissance4/agent"
	"github.com/ltettoni/ana2-puissance4/engine"
	"github.com/ltettoni/ana2-puissance4/experiments"
	"github.com/ltettoni/ana2-puissance4/game"
	"github.com/ltettoni/ana2-puissance4/searcher"
)

const dumpDepth = 3 // Levels of the search tree kept in DOT dumps

func main() {
	p1 := flag.String("p1", "human", "First player: human, random, mcts or negamax")
	p2 := flag.String("p2", "mcts", "Second player: human, random, mcts or negamax")
	iterations := flag.Int("iterations", searcher.DefaultIterations, "Number of playouts per move for mcts players")
	depth := flag.Int("depth", searcher.DefaultDepth, "Search depth for negamax players")
	seed := flag.Uint64("seed", 0, "Seed for mcts and random players, 0 for time-based")
	dumpTree := flag.String("dump-tree", "", "File for DOT dumps of every mcts search tree")
	arena := flag.Bool("arena", false, "Run a round-robin tournament instead of a single game")
	games := flag.Int("games", experiments.DefaultGames, "Number of games per tournament matchup")
	out := flag.String("out", "results", "Directory for tournament records")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *arena {
		if err := experiments.RunTournament(*out, *games); err != nil {
			log.Fatal().Err(err).Msg("tournament failed")
		}
		return
	}

	var dump io.Writer
	if *dumpTree != "" {
		file, err := os.Create(*dumpTree)
		if err != nil {
			log.Fatal().Err(err).Msgf("failed to create %s", *dumpTree)
		}
		defer file.Close()
		dump = file
	}

	first := buildAgent(*p1, *iterations, *depth, *seed, dump)
	second := buildAgent(*p2, *iterations, *depth, *seed, dump)

	e := engine.Local(first, second, engine.WithObserver(announceMove))
	result, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}

	fmt.Printf("%s", result.Final)
	if result.Winner == game.None {
		fmt.Printf("Draw after %d moves.\n", result.Moves)
	} else {
		fmt.Printf("%s wins after %d moves.\n", result.Winner, result.Moves)
	}
}

func announceMove(turn int, player game.Piece, column int, board game.Board) {
	fmt.Printf("Turn %d: %s played column %d.\n", turn, player, column)
}

func buildAgent(kind string, iterations, depth int, seed uint64, dump io.Writer) agent.Agent {
	switch kind {
	case "human":
		return agent.NewHumanAgent(os.Stdin, os.Stdout)
	case "random":
		if seed > 0 {
			return agent.NewSeededRandomAgent(seed)
		}
		return agent.NewRandomAgent()
	case "negamax":
		return agent.NewNegamaxAgent(searcher.WithDepth(depth))
	case "mcts":
		options := []searcher.Option{searcher.WithIterations(iterations)}
		if seed > 0 {
			options = append(options, searcher.WithSeed(seed))
		}
		if dump != nil {
			options = append(options, searcher.WithTreeDump(dump, dumpDepth))
		}
		return agent.NewMCTSAgent(options...)
	default:
		log.Fatal().Msgf("unknown player kind: %s", kind)
		return nil
	}
}
