package searcher

import (
	"math"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ltettoni/ana2-puissance4/game"
)

type NegamaxOption func(negamax *Negamax)

// Negamax finds moves by fixed-depth negamax search with alpha-beta
// pruning and a terminal-only evaluation.
type Negamax struct {
	depth   int
	metrics MetricsCollector
}

func WithDepth(depth int) NegamaxOption {
	return func(n *Negamax) {
		if depth > 0 {
			n.depth = depth
		}
	}
}

func WithNegamaxMetrics() NegamaxOption {
	return func(n *Negamax) {
		n.metrics = NewMetricsCollector()
	}
}

func NewNegamax(options ...NegamaxOption) *Negamax {
	n := &Negamax{ // Default values
		depth:   DefaultDepth,
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(n)
	}
	return n
}

// FindNextMove searches from board with player to move and returns the
// column to play.
func (n *Negamax) FindNextMove(board game.Board, player game.Piece) (int, SearchMetrics, error) {
	n.metrics.Start()
	column, value := n.search(board, n.depth, ScoreLoss, ScoreWin, player, game.NoColumn)
	metric := n.metrics.Complete()

	if column == game.NoColumn {
		return game.NoColumn, metric, errors.New("no move to find: game is already over")
	}
	log.Debug().Int("column", column).Int("value", value).Msg("negamax found move")
	return column, metric, nil
}

// search implements negamax with alpha-beta pruning
// (https://en.wikipedia.org/wiki/Negamax): the value of a position for the
// side to move is the highest negated value of the positions one move
// ahead. last is the column whose drop produced board; the cutoff frame
// hands it back so the winning frame's caller learns which column scored.
func (n *Negamax) search(board game.Board, depth, alpha, beta int, player game.Piece, last int) (int, int) {
	n.metrics.AddNode()

	other := player.Other()
	if depth == 0 || board.Status(other) != game.Ongoing {
		return last, heuristic(board, player, depth)
	}

	bestColumn := game.NoColumn
	bestValue := math.MinInt
	for _, column := range reorder(board.LegalColumns()) {
		next := mustApply(board, column, player)
		_, reply := n.search(next, depth-1, -beta, -alpha, other, column)
		if value := -reply; value > bestValue {
			bestValue = value
			bestColumn = column
		}
		if bestValue > alpha {
			alpha = bestValue
		}
		if alpha >= beta {
			n.metrics.AddCutoff()
			break
		}
	}
	return bestColumn, bestValue
}

// heuristic scores a cutoff board for player. depth is the remaining
// search budget, so outcomes reached in fewer moves weigh more.
func heuristic(board game.Board, player game.Piece, depth int) int {
	weight := depth + 1
	switch {
	case board.ConnectedFour(player):
		return ScoreWin * weight
	case board.ConnectedFour(player.Other()):
		return ScoreLoss * weight
	case board.Full():
		return 0
	default:
		return ScoreOngoing * weight
	}
}

// reorder arranges candidate columns center first, alternating right and
// left outward, with the leftmost candidate last.
func reorder(columns []int) []int {
	n := len(columns)
	if n == 0 {
		return nil
	}

	middle := n / 2
	ordered := make([]int, 0, n)
	for i := 0; i < middle; i++ {
		ordered = append(ordered, columns[middle-i])
		if n%2 == 0 && i == middle-1 {
			continue
		}
		ordered = append(ordered, columns[middle+i+1])
	}
	return append(ordered, columns[0])
}
