package engine

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/ltettoni/ana2-puissance4/agent"
	"github.com/ltettoni/ana2-puissance4/game"
	"github.com/ltettoni/ana2-puissance4/searcher"
)

type stubAgent struct {
	column int
	err    error
}

func (s stubAgent) Name() string {
	return "stub"
}

func (s stubAgent) GenerateMove(game.Board, game.Piece) (int, searcher.SearchMetrics, error) {
	return s.column, searcher.SearchMetrics{}, s.err
}

func countPieces(board game.Board) int {
	count := 0
	for row := 0; row < game.Rows; row++ {
		for col := 0; col < game.Cols; col++ {
			if board[row][col] != game.None {
				count++
			}
		}
	}
	return count
}

// nearlyDrawnBoard fills the board four-free except the top of column 6.
func nearlyDrawnBoard() game.Board {
	colA := [game.Rows]game.Piece{game.Player1, game.Player1, game.Player1, game.Player2, game.Player2, game.Player2}
	colB := [game.Rows]game.Piece{game.Player2, game.Player2, game.Player2, game.Player1, game.Player1, game.Player1}
	var b game.Board
	for col := 0; col < game.Cols; col++ {
		pieces := colA
		if col%2 == 1 {
			pieces = colB
		}
		for row := 0; row < game.Rows; row++ {
			b[row][col] = pieces[row]
		}
	}
	b[game.Rows-1][game.Cols-1] = game.None
	return b
}

func TestRun(t *testing.T) {
	t.Run("finishing a random game on the board", func(t *testing.T) {
		e := Local(agent.NewSeededRandomAgent(1), agent.NewSeededRandomAgent(2))

		result, err := e.Run()

		require.NoError(t, err)
		require.GreaterOrEqual(t, result.Moves, 7, "Game cannot end in under seven moves")
		require.LessOrEqual(t, result.Moves, 42, "Game cannot outlast the board")
		require.Len(t, result.Records, result.Moves, "Every move should be recorded")
		require.Equal(t, result.Moves, countPieces(result.Final), "Final board should hold every move")
		for i, record := range result.Records {
			want := game.Player1
			if i%2 == 1 {
				want = game.Player2
			}
			require.Equal(t, want, record.Player, "Players should alternate")
			require.Equal(t, i+1, record.Turn, "Turns should count up")
		}
	})

	t.Run("declaring the connecting winner", func(t *testing.T) {
		var board game.Board
		for row := 0; row < 3; row++ {
			board[row][2] = game.Player1
		}
		e := Local(stubAgent{column: 2}, agent.NewSeededRandomAgent(1), WithBoard(board))

		result, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.Player1, result.Winner, "Completing the four should win")
		require.Equal(t, 1, result.Moves, "Game should end on the winning move")
	})

	t.Run("declaring a draw on the filling move", func(t *testing.T) {
		e := Local(stubAgent{column: 6}, agent.NewSeededRandomAgent(1), WithBoard(nearlyDrawnBoard()))

		result, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.None, result.Winner, "Draw should have no winner")
		require.Equal(t, 1, result.Moves, "Game should end on the filling move")
	})

	t.Run("rejecting an illegal column", func(t *testing.T) {
		e := Local(stubAgent{column: 9}, agent.NewSeededRandomAgent(1))

		_, err := e.Run()

		require.Error(t, err, "Illegal move should abort the game")
		require.ErrorIs(t, err, game.ErrIllegalMove, "Cause should be the board rejection")
	})

	t.Run("surfacing an agent failure", func(t *testing.T) {
		e := Local(stubAgent{err: errors.New("boom")}, agent.NewSeededRandomAgent(1))

		_, err := e.Run()

		require.Error(t, err, "Agent failure should abort the game")
		require.ErrorContains(t, err, "failed to move on turn 1")
	})

	t.Run("rejecting a decided starting board", func(t *testing.T) {
		var board game.Board
		for col := 0; col < 4; col++ {
			board[0][col] = game.Player2
		}
		e := Local(agent.NewSeededRandomAgent(1), agent.NewSeededRandomAgent(2), WithBoard(board))

		_, err := e.Run()

		require.Error(t, err, "Decided board should not start a game")
	})

	t.Run("replaying moves to the observer", func(t *testing.T) {
		var turns []int
		var last game.Board
		observer := func(turn int, player game.Piece, column int, board game.Board) {
			turns = append(turns, turn)
			last = board
		}
		e := Local(agent.NewSeededRandomAgent(3), agent.NewSeededRandomAgent(4), WithObserver(observer))

		result, err := e.Run()

		require.NoError(t, err)
		require.Len(t, turns, result.Moves, "Observer should see every move")
		require.Equal(t, result.Final, last, "Observer should see the final board")
	})

	t.Run("running search agents end to end", func(t *testing.T) {
		first := agent.NewMCTSAgent(searcher.WithSeed(5), searcher.WithIterations(200))
		second := agent.NewNegamaxAgent()
		e := Local(first, second)

		result, err := e.Run()

		require.NoError(t, err)
		require.LessOrEqual(t, result.Moves, 42, "Game cannot outlast the board")
		require.Equal(t, result.Moves, countPieces(result.Final), "Final board should hold every move")
	})
}
