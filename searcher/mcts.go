package searcher

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/ltettoni/ana2-puissance4/game"
)

type Option func(mcts *MCTS)

// MCTS finds moves by Monte Carlo tree search with random playouts. Each
// call to FindNextMove grows a fresh tree from the given position.
type MCTS struct {
	iterations int
	rng        *rand.Rand
	metrics    MetricsCollector
	dump       io.Writer
	dumpDepth  int
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithSeed makes every search reproducible by seeding the playout RNG.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

// WithTreeDump writes the search tree in DOT format to w after each move,
// truncated maxDepth levels below the root.
func WithTreeDump(w io.Writer, maxDepth int) Option {
	return func(m *MCTS) {
		if w != nil && maxDepth > 0 {
			m.dump = w
			m.dumpDepth = maxDepth
		}
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations: DefaultIterations,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindNextMove searches from board with player to move and returns the
// column to play. The root's children are ranked by loss-based UCB1: a
// child's losses are playouts won by the side that moved into it.
func (m *MCTS) FindNextMove(board game.Board, player game.Piece) (int, SearchMetrics, error) {
	root := newNode(board, player, nil, game.NoColumn)
	if root.isTerminal() {
		return game.NoColumn, SearchMetrics{}, errors.New("no move to find: game is already over")
	}

	m.metrics.Start()
	for i := 0; i < m.iterations; i++ {
		m.simulate(root)
		m.metrics.AddIteration()
	}
	metric := m.metrics.Complete()

	best := root.bestChild(lossCount)
	if m.dump != nil {
		if err := dumpTree(m.dump, root, m.dumpDepth); err != nil {
			log.Warn().Err(err).Msg("failed to dump search tree")
		}
	}
	log.Debug().Int("column", best.action).Int("visits", best.visits).
		Int("losses", best.losses).Msg("mcts found move")
	return best.action, metric, nil
}

func (m *MCTS) simulate(root *node) {
	leaf := m.selectThenExpand(root)
	result := m.rollout(leaf)
	backup(leaf, result)
}

// selectThenExpand descends by win-based UCB1 through fully tried nodes,
// then expands one random untried column. A terminal node ends the descent
// and is returned as is.
func (m *MCTS) selectThenExpand(root *node) *node {
	node := root
	for node.triedAll() && !node.isTerminal() {
		node = node.bestChild(winCount)
	}
	if node.isTerminal() {
		return node
	}
	return node.expand(m.rng)
}

// rollout plays uniformly random columns until the walking side's game is
// over. The loop checks only the walker's own side, so one extra move can
// land after the opponent's win; resultFor absorbs that by scoring the
// opponent's connect four first.
func (m *MCTS) rollout(leaf *node) int {
	board := leaf.board
	player := leaf.player
	var moves int64
	for board.Status(player) == game.Ongoing {
		columns := board.LegalColumns()
		column := columns[m.rng.Intn(len(columns))]
		board = mustApply(board, column, player)
		player = player.Other()
		moves++
	}
	m.metrics.AddPlayoutMoves(moves)

	return resultFor(board, leaf.player)
}

// backup walks from leaf to root, adding one visit per node and crediting
// the playout result with an alternating sign, so wins and losses stay
// mutually exclusive along the path.
func backup(leaf *node, result int) {
	for node := leaf; node != nil; node = node.parent {
		node.visits++
		switch result {
		case Win:
			node.wins++
		case Loss:
			node.losses++
		}
		result = -result
	}
}
