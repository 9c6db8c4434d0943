package experiments

import (
	"fmt"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ltettoni/ana2-puissance4/agent"
	"github.com/ltettoni/ana2-puissance4/engine"
	"github.com/ltettoni/ana2-puissance4/experiments/metrics"
	"github.com/ltettoni/ana2-puissance4/game"
	"github.com/ltettoni/ana2-puissance4/searcher"
)

const DefaultGames = 30 // Per matchup

var defaultRoster = []metrics.AgentConfig{
	{ID: 1, Kind: "random"},
	{ID: 2, Kind: "negamax", Depth: searcher.DefaultDepth},
	{ID: 3, Kind: "mcts", Iterations: searcher.DefaultIterations},
}

type playedGame struct {
	first     metrics.AgentConfig
	second    metrics.AgentConfig
	startTime time.Time
	endTime   time.Time
	result    engine.Result
}

// RunTournament plays a round robin between the roster agents and stores
// agent, game and move records as CSV under outDir. Every second game of a
// matchup swaps which agent moves first. Games run concurrently, one
// goroutine per game, bounded by the CPU count.
func RunTournament(outDir string, gamesPerMatchup int, roster ...metrics.AgentConfig) error {
	if gamesPerMatchup <= 0 {
		gamesPerMatchup = DefaultGames
	}
	configs := defaultRoster
	if len(roster) > 0 {
		configs = roster
	}

	matchups := [][2]metrics.AgentConfig{}
	for i := 0; i < len(configs); i++ {
		for j := i + 1; j < len(configs); j++ {
			matchups = append(matchups, [2]metrics.AgentConfig{configs[i], configs[j]})
		}
	}

	log.Info().Int("matchups", len(matchups)).Int("games", gamesPerMatchup).Msg("starting tournament")

	played := make([]playedGame, len(matchups)*gamesPerMatchup)
	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())

	count := 0
	for mi, matchup := range matchups {
		for gi := 0; gi < gamesPerMatchup; gi++ {
			mi, gi := mi, gi
			index := count
			count++
			first, second := matchup[0], matchup[1]
			if gi%2 == 1 { // Alternate the starting agent
				first, second = second, first
			}
			group.Go(func() error {
				log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(matchups), gi+1, gamesPerMatchup)

				g, err := runGame(first, second, uint64(index))
				if err != nil {
					return errors.Wrapf(err, "matchup %d game %d", mi+1, gi+1)
				}
				played[index] = g
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return errors.Wrap(err, "tournament aborted")
	}

	log.Info().Msg("completed tournament")

	return store(outDir, configs, played)
}

// runGame plays one game between fresh agents built from the two configs.
func runGame(first, second metrics.AgentConfig, index uint64) (playedGame, error) {
	e := engine.Local(createAgent(first, first.Seed+2*index+1), createAgent(second, second.Seed+2*index+2))

	start := time.Now()
	result, err := e.Run()
	if err != nil {
		return playedGame{}, err
	}

	return playedGame{
		first:     first,
		second:    second,
		startTime: start,
		endTime:   time.Now(),
		result:    result,
	}, nil
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	switch config.Kind {
	case "random":
		return agent.NewSeededRandomAgent(seed)
	case "negamax":
		options := []searcher.NegamaxOption{searcher.WithNegamaxMetrics()}
		if config.Depth > 0 {
			options = append(options, searcher.WithDepth(config.Depth))
		}
		return agent.NewNegamaxAgent(options...)
	case "mcts":
		options := []searcher.Option{searcher.WithMetrics(), searcher.WithSeed(seed)}
		if config.Iterations > 0 {
			options = append(options, searcher.WithIterations(config.Iterations))
		}
		return agent.NewMCTSAgent(options...)
	default:
		panic(fmt.Sprintf("unknown agent kind: %s", config.Kind))
	}
}

func store(outDir string, configs []metrics.AgentConfig, played []playedGame) error {
	gameRecords := make([]metrics.GameRecord, 0, len(played))
	moveRecords := []metrics.MoveRecord{}
	for i, g := range played {
		id := i + 1
		winner := "draw"
		switch g.result.Winner {
		case game.Player1:
			winner = g.first.Kind
		case game.Player2:
			winner = g.second.Kind
		}
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:        id,
			Agent1:    g.first.ID,
			Agent2:    g.second.ID,
			Winner:    winner,
			Moves:     g.result.Moves,
			StartTime: g.startTime,
			EndTime:   g.endTime,
			Duration:  g.endTime.Sub(g.startTime),
		})
		for _, move := range g.result.Records {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:         id,
				Step:         move.Turn,
				Player:       move.Player.String(),
				Column:       move.Column,
				Duration:     move.Metrics.Duration,
				Iterations:   move.Metrics.Iterations,
				PlayoutMoves: move.Metrics.PlayoutMoves,
				Nodes:        move.Metrics.Nodes,
				Cutoffs:      move.Metrics.Cutoffs,
			})
		}
	}

	writer, err := metrics.NewWriter(outDir, "tournament")
	if err != nil {
		return errors.Wrap(err, "failed to create record writer")
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return errors.Wrap(err, "failed to store agent configs")
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return errors.Wrap(err, "failed to store game records")
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return errors.Wrap(err, "failed to store move records")
	}

	log.Info().Str("dir", writer.Dir()).Msg("stored tournament records")
	return nil
}
