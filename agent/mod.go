package agent

import (
	"github.com/ltettoni/ana2-puissance4/game"
	"github.com/ltettoni/ana2-puissance4/searcher"
)

// Agent picks one column for player on the given board. Implementations
// must return a playable column; the engine treats anything else as a
// forfeit-level error.
type Agent interface {
	Name() string
	GenerateMove(board game.Board, player game.Piece) (int, searcher.SearchMetrics, error)
}

type MCTSAgent struct {
	mcts *searcher.MCTS
}

func NewMCTSAgent(options ...searcher.Option) *MCTSAgent {
	return &MCTSAgent{mcts: searcher.NewMCTS(options...)}
}

func (a *MCTSAgent) Name() string {
	return "mcts"
}

// GenerateMove opens at the center column without searching and delegates
// every later move to the tree search.
func (a *MCTSAgent) GenerateMove(board game.Board, player game.Piece) (int, searcher.SearchMetrics, error) {
	if board == (game.Board{}) {
		return game.Cols / 2, searcher.SearchMetrics{}, nil
	}
	return a.mcts.FindNextMove(board, player)
}

type NegamaxAgent struct {
	negamax *searcher.Negamax
}

func NewNegamaxAgent(options ...searcher.NegamaxOption) *NegamaxAgent {
	return &NegamaxAgent{negamax: searcher.NewNegamax(options...)}
}

func (a *NegamaxAgent) Name() string {
	return "negamax"
}

func (a *NegamaxAgent) GenerateMove(board game.Board, player game.Piece) (int, searcher.SearchMetrics, error) {
	return a.negamax.FindNextMove(board, player)
}
