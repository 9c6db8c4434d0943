package engine

import (
	"github.com/ltettoni/ana2-puissance4/game"
	"github.com/ltettoni/ana2-puissance4/searcher"
)

// MoveRecord describes one played move together with the search metrics
// its agent reported.
type MoveRecord struct {
	Turn    int
	Player  game.Piece
	Column  int
	Metrics searcher.SearchMetrics
}

// Result is the outcome of a finished game. Winner is game.None on a draw.
type Result struct {
	Winner  game.Piece
	Moves   int
	Final   game.Board
	Records []MoveRecord
}

// Observer is called after every applied move with the resulting board.
type Observer func(turn int, player game.Piece, column int, board game.Board)

type Option func(engine *Engine)

// WithBoard starts the game from a position instead of an empty board.
func WithBoard(board game.Board) Option {
	return func(e *Engine) {
		e.board = board
	}
}

func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observer = observer
		}
	}
}
