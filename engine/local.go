package engine

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ltettoni/ana2-puissance4/agent"
	"github.com/ltettoni/ana2-puissance4/game"
)

// Engine drives a full game between two agents. The first agent always
// plays Player1 and moves first.
type Engine struct {
	first    agent.Agent
	second   agent.Agent
	board    game.Board
	observer Observer
}

func Local(first, second agent.Agent, options ...Option) *Engine {
	e := &Engine{
		first:  first,
		second: second,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays the game until a win or a draw. Agent failures and illegal
// moves abort the game with an error instead of being retried.
func (e *Engine) Run() (Result, error) {
	board := e.board
	if board.Status(game.Player1) != game.Ongoing || board.Status(game.Player2) != game.Ongoing {
		return Result{}, errors.New("starting board is already decided")
	}

	log.Info().Str("first", e.first.Name()).Str("second", e.second.Name()).Msg("game starting")

	player := game.Player1
	var records []MoveRecord
	for turn := 1; turn <= game.Rows*game.Cols; turn++ {
		current := e.first
		if player == game.Player2 {
			current = e.second
		}

		column, metric, err := current.GenerateMove(board, player)
		if err != nil {
			return Result{}, errors.Wrapf(err, "%s (%s) failed to move on turn %d", current.Name(), player, turn)
		}
		next, err := board.Apply(column, player)
		if err != nil {
			return Result{}, errors.Wrapf(err, "%s (%s) played column %d on turn %d", current.Name(), player, column, turn)
		}
		board = next
		records = append(records, MoveRecord{Turn: turn, Player: player, Column: column, Metrics: metric})

		if e.observer != nil {
			e.observer(turn, player, column, board)
		}
		log.Debug().Int("turn", turn).Stringer("player", player).Int("column", column).Msg("move played")

		switch board.Status(player) {
		case game.Win:
			log.Info().Stringer("winner", player).Str("agent", current.Name()).Int("moves", turn).Msg("game over")
			return Result{Winner: player, Moves: turn, Final: board, Records: records}, nil
		case game.Draw:
			log.Info().Int("moves", turn).Msg("game drawn")
			return Result{Moves: turn, Final: board, Records: records}, nil
		}

		player = player.Other()
	}
	return Result{}, errors.New("board filled without a result")
}
