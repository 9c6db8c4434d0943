package searcher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ltettoni/ana2-puissance4/game"
)

// winInOneBoard gives O a vertical three on the center column.
const winInOneBoard = `|==============|
|              |
|              |
|              |
|      O       |
|      O       |
|      O       |
|==============|
|0 1 2 3 4 5 6 |
`

// crowdedWinBoard leaves columns 0, 1, 4 and 6 open; O completes a
// horizontal four by playing column 4.
const crowdedWinBoard = `|==============|
|    O O   O   |
|X O X O X X O |
|O O O X O X X |
|O X O X O X O |
|O O X X X O X |
|X X X O X X O |
|==============|
|0 1 2 3 4 5 6 |
`

// forcedColumnBoard leaves only column 0 open, where X completes a
// vertical four on the forced move.
const forcedColumnBoard = `|==============|
|  X O O X O X |
|  O X O O X O |
|  O O X O X X |
|X X O X O X O |
|X O X X X O X |
|X X X O X X O |
|==============|
|0 1 2 3 4 5 6 |
`

// lastColumnBoard leaves only column 0 open, where O completes a vertical
// four; expanding it yields lastColumnExpanded, lost for X.
const lastColumnBoard = `|==============|
|  X X O X O O |
|O O X O O X O |
|O O O X O X X |
|O X O X O X O |
|X O X X X O X |
|X X X O X X O |
|==============|
|0 1 2 3 4 5 6 |
`

const lastColumnExpanded = `|==============|
|O X X O X O O |
|O O X O O X O |
|O O O X O X X |
|O X O X O X O |
|X O X X X O X |
|X X X O X X O |
|==============|
|0 1 2 3 4 5 6 |
`

func mustParse(t *testing.T, rendered string) game.Board {
	t.Helper()
	board, err := game.Parse(rendered)
	require.NoError(t, err, "Fixture should parse")
	return board
}

func TestNewMCTS(t *testing.T) {
	t.Run("applying defaults", func(t *testing.T) {
		m := NewMCTS()

		require.Equal(t, DefaultIterations, m.iterations, "Iterations should default")
		require.NotNil(t, m.rng, "RNG should be seeded")
		require.IsType(t, &noMetricsCollector{}, m.metrics, "Metrics should be off by default")
		require.Nil(t, m.dump, "Tree dumping should be off by default")
	})

	t.Run("ignoring out-of-range options", func(t *testing.T) {
		m := NewMCTS(WithIterations(0), WithTreeDump(nil, 3))

		require.Equal(t, DefaultIterations, m.iterations, "Zero iterations should keep the default")
		require.Nil(t, m.dump, "Nil writer should keep dumping off")
	})

	t.Run("installing a metrics collector", func(t *testing.T) {
		m := NewMCTS(WithMetrics())

		require.IsType(t, &metricsCollector{}, m.metrics, "Option should install a collector")
	})
}

func TestSelectThenExpand(t *testing.T) {
	t.Run("expanding the root first", func(t *testing.T) {
		m := NewMCTS(WithSeed(1))
		root := newNode(game.Board{}, game.Player1, nil, game.NoColumn)

		leaf := m.selectThenExpand(root)

		require.Same(t, root, leaf.parent, "First simulation should expand the root")
		require.Len(t, root.children, 1, "Root should gain one child")
	})

	t.Run("descending through fully tried levels", func(t *testing.T) {
		m := NewMCTS(WithSeed(1))
		root := newNode(game.Board{}, game.Player1, nil, game.NoColumn)
		for col := 0; col < game.Cols; col++ {
			root.expand(m.rng)
		}
		root.visits = 7
		for _, child := range root.children {
			child.visits = 1
		}
		root.children[4].wins = 1

		leaf := m.selectThenExpand(root)

		require.Same(t, root.children[4], leaf.parent,
			"Descent should pass through the highest scoring child")
		require.Len(t, root.children[4].children, 1, "Best child should gain one child")
	})

	t.Run("expanding the only column into a decided board", func(t *testing.T) {
		m := NewMCTS(WithSeed(1))
		root := newNode(mustParse(t, lastColumnBoard), game.Player2, nil, game.NoColumn)

		leaf := m.selectThenExpand(root)

		require.Equal(t, 0, leaf.action, "Only column 0 should be playable")
		require.Equal(t, game.Player1, leaf.player, "Child should flip the side to move")
		require.Equal(t, mustParse(t, lastColumnExpanded), leaf.board,
			"Child board should hold the dropped piece")
		require.True(t, leaf.isTerminal(), "Drop should finish the game")
	})

	t.Run("returning a terminal root untouched", func(t *testing.T) {
		m := NewMCTS(WithSeed(1))
		root := newNode(wonBoard(game.Player1), game.Player2, nil, game.NoColumn)

		leaf := m.selectThenExpand(root)

		require.Same(t, root, leaf, "Terminal root should come back as the leaf")
		require.Empty(t, root.children, "Terminal root should not expand")
	})
}

func TestRollout(t *testing.T) {
	t.Run("winning on the forced move with one overshoot", func(t *testing.T) {
		m := NewMCTS(WithSeed(3), WithMetrics())
		leaf := newNode(mustParse(t, forcedColumnBoard), game.Player1, nil, game.NoColumn)

		result := m.rollout(leaf)

		require.Equal(t, Win, result, "Forced column should complete the four")
		require.Equal(t, int64(2), m.metrics.Complete().PlayoutMoves,
			"Playout should win on the forced move and overshoot once")
	})

	t.Run("scoring a drawn board without moving", func(t *testing.T) {
		m := NewMCTS(WithSeed(3), WithMetrics())
		leaf := newNode(drawnBoard(), game.Player1, nil, game.NoColumn)

		result := m.rollout(leaf)

		require.Equal(t, 0, result, "Draw should score zero")
		require.Zero(t, m.metrics.Complete().PlayoutMoves, "No move should be played")
	})

	t.Run("playing out an open game within bounds", func(t *testing.T) {
		m := NewMCTS(WithSeed(9), WithMetrics())
		leaf := newNode(game.Board{}, game.Player1, nil, game.NoColumn)

		result := m.rollout(leaf)

		require.Contains(t, []int{Win, 0, Loss}, result, "Playout should score a finished game")
		moves := m.metrics.Complete().PlayoutMoves
		require.GreaterOrEqual(t, moves, int64(7), "Game cannot end in under seven moves")
		require.LessOrEqual(t, moves, int64(42), "Game cannot outlast the board")
	})
}

func TestBackup(t *testing.T) {
	chain := func() (*node, *node, *node) {
		root := newNode(game.Board{}, game.Player1, nil, game.NoColumn)
		mid := newNode(game.Board{}, game.Player2, root, 3)
		leaf := newNode(game.Board{}, game.Player1, mid, 4)
		return root, mid, leaf
	}

	t.Run("crediting a win up the path", func(t *testing.T) {
		root, mid, leaf := chain()

		backup(leaf, Win)

		require.Equal(t, []int{1, 1, 0}, []int{leaf.visits, leaf.wins, leaf.losses},
			"Leaf should record the win")
		require.Equal(t, []int{1, 0, 1}, []int{mid.visits, mid.wins, mid.losses},
			"Win should alternate into a loss one level up")
		require.Equal(t, []int{1, 1, 0}, []int{root.visits, root.wins, root.losses},
			"Result should flip back at the root")
	})

	t.Run("crediting a loss up the path", func(t *testing.T) {
		root, mid, leaf := chain()

		backup(leaf, Loss)

		require.Equal(t, []int{1, 0, 1}, []int{leaf.visits, leaf.wins, leaf.losses},
			"Leaf should record the loss")
		require.Equal(t, []int{1, 1, 0}, []int{mid.visits, mid.wins, mid.losses},
			"Loss should alternate into a win one level up")
		require.Equal(t, []int{1, 0, 1}, []int{root.visits, root.wins, root.losses},
			"Result should flip back at the root")
	})

	t.Run("counting only the visit on a draw", func(t *testing.T) {
		root, mid, leaf := chain()

		backup(leaf, 0)

		for _, n := range []*node{leaf, mid, root} {
			require.Equal(t, 1, n.visits, "Draw should still count a visit")
			require.Zero(t, n.wins, "Draw should credit no win")
			require.Zero(t, n.losses, "Draw should credit no loss")
		}
	})

	t.Run("accumulating across simulations", func(t *testing.T) {
		root, mid, leaf := chain()

		backup(leaf, Win)
		backup(leaf, Loss)

		for _, n := range []*node{leaf, mid, root} {
			require.Equal(t, 2, n.visits, "Each simulation should add one visit")
			require.Equal(t, 1, n.wins, "One simulation should credit a win")
			require.Equal(t, 1, n.losses, "One simulation should credit a loss")
		}
	})
}

func TestFindNextMove(t *testing.T) {
	t.Run("completing a vertical four", func(t *testing.T) {
		m := NewMCTS(WithSeed(1))

		column, _, err := m.FindNextMove(mustParse(t, winInOneBoard), game.Player2)

		require.NoError(t, err)
		require.Equal(t, 3, column, "Search should complete the vertical four")
	})

	t.Run("winning on a crowded board", func(t *testing.T) {
		m := NewMCTS(WithSeed(2))

		column, _, err := m.FindNextMove(mustParse(t, crowdedWinBoard), game.Player2)

		require.NoError(t, err)
		require.Equal(t, 4, column, "Search should complete the horizontal four")
	})

	t.Run("erroring on a finished game", func(t *testing.T) {
		m := NewMCTS(WithSeed(1))

		column, _, err := m.FindNextMove(wonBoard(game.Player1), game.Player2)

		require.Error(t, err, "Finished game should have no move to find")
		require.Equal(t, game.NoColumn, column, "No column should come back")
	})

	t.Run("repeating moves under the same seed", func(t *testing.T) {
		first := NewMCTS(WithSeed(99), WithIterations(300))
		second := NewMCTS(WithSeed(99), WithIterations(300))

		columnFirst, _, err := first.FindNextMove(game.Board{}, game.Player1)
		require.NoError(t, err)
		columnSecond, _, err := second.FindNextMove(game.Board{}, game.Player1)
		require.NoError(t, err)

		require.Equal(t, columnFirst, columnSecond, "Same seed should repeat the move")
	})

	t.Run("collecting metrics when enabled", func(t *testing.T) {
		m := NewMCTS(WithSeed(5), WithIterations(64), WithMetrics())

		_, metric, err := m.FindNextMove(game.Board{}, game.Player1)

		require.NoError(t, err)
		require.Equal(t, int64(64), metric.Iterations, "Every iteration should be counted")
		require.Positive(t, metric.PlayoutMoves, "Playout moves should accumulate")
		require.Positive(t, metric.Duration, "Search duration should be measured")
	})

	t.Run("skipping metrics by default", func(t *testing.T) {
		m := NewMCTS(WithSeed(5), WithIterations(64))

		_, metric, err := m.FindNextMove(game.Board{}, game.Player1)

		require.NoError(t, err)
		require.Equal(t, SearchMetrics{}, metric, "Disabled collector should report nothing")
	})

	t.Run("dumping the search tree in dot format", func(t *testing.T) {
		var buf bytes.Buffer
		m := NewMCTS(WithSeed(4), WithIterations(32), WithTreeDump(&buf, 2))

		_, _, err := m.FindNextMove(game.Board{}, game.Player1)

		require.NoError(t, err)
		out := buf.String()
		require.Contains(t, out, "digraph mcts", "Dump should be a named digraph")
		require.Contains(t, out, "root", "Dump should label the root")
		require.Contains(t, out, "box", "Dump should shape the nodes")
	})
}
