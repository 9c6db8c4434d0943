package agent

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/ltettoni/ana2-puissance4/game"
	"github.com/ltettoni/ana2-puissance4/searcher"
)

// RandomAgent plays a uniformly random legal column.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent() *RandomAgent {
	return NewSeededRandomAgent(uint64(time.Now().UnixNano()))
}

func NewSeededRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) Name() string {
	return "random"
}

func (a *RandomAgent) GenerateMove(board game.Board, player game.Piece) (int, searcher.SearchMetrics, error) {
	columns := board.LegalColumns()
	if len(columns) == 0 {
		return game.NoColumn, searcher.SearchMetrics{}, errors.New("no legal column to play")
	}
	return columns[a.rng.Intn(len(columns))], searcher.SearchMetrics{}, nil
}
