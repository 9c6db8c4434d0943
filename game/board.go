package game

import (
	"github.com/pkg/errors"
)

const (
	Rows = 6
	Cols = 7

	// connectN pieces in a line win the game.
	connectN = 4
)

// NoColumn marks the absence of a column, such as the incoming action of a
// search tree root.
const NoColumn = -1

// ErrIllegalMove reports a drop into a column that is out of range or full.
var ErrIllegalMove = errors.New("illegal move")

// Piece is the content of a single board cell.
type Piece uint8

const (
	None Piece = iota
	Player1
	Player2
)

// Other returns the opponent of p, or None for None.
func (p Piece) Other() Piece {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return None
}

func (p Piece) String() string {
	switch p {
	case Player1:
		return "X"
	case Player2:
		return "O"
	}
	return " "
}

// Status is the state of the game from one player's point of view.
type Status int

const (
	Ongoing Status = iota
	Win
	Draw
)

func (s Status) String() string {
	switch s {
	case Win:
		return "win"
	case Draw:
		return "draw"
	}
	return "ongoing"
}

// Board is a Connect Four position, indexed board[row][col] with row 0 at
// the bottom. The zero value is an empty board. Board is a plain value:
// Apply returns a fresh board and never touches its receiver, so positions
// can be copied, compared and used as map keys freely.
type Board [Rows][Cols]Piece

// Apply drops p into column col and returns the resulting board, leaving
// the receiver unchanged. Returns an ErrIllegalMove-based error when col is
// out of range or already full.
func (b Board) Apply(col int, p Piece) (Board, error) {
	if col < 0 || col >= Cols {
		return Board{}, errors.Wrapf(ErrIllegalMove, "column %d out of range", col)
	}
	for row := 0; row < Rows; row++ {
		if b[row][col] == None {
			b[row][col] = p
			return b, nil
		}
	}
	return Board{}, errors.Wrapf(ErrIllegalMove, "column %d is full", col)
}

// LegalColumns returns the playable columns in ascending order. A column
// is playable while its top cell is empty.
func (b Board) LegalColumns() []int {
	cols := make([]int, 0, Cols)
	for col := 0; col < Cols; col++ {
		if b[Rows-1][col] == None {
			cols = append(cols, col)
		}
	}
	return cols
}

// Full reports whether the board has no empty cell left.
func (b Board) Full() bool {
	for col := 0; col < Cols; col++ {
		if b[Rows-1][col] == None {
			return false
		}
	}
	return true
}

// Status returns the state of the game for p: Win when p has four
// connected, else Draw when the board is full, else Ongoing. A win on the
// filling move outranks the draw.
func (b Board) Status(p Piece) Status {
	if b.ConnectedFour(p) {
		return Win
	}
	if b.Full() {
		return Draw
	}
	return Ongoing
}

// ConnectedFour reports whether p owns four adjacent cells in a row, a
// column or either diagonal.
func (b Board) ConnectedFour(p Piece) bool {
	return b.fourInRow(p) || b.fourInColumn(p) || b.fourDiagonal(p)
}

func (b Board) fourInRow(p Piece) bool {
	for row := 0; row < Rows; row++ {
		run := 0
		for col := 0; col < Cols; col++ {
			if b[row][col] != p {
				run = 0
				continue
			}
			run++
			if run == connectN {
				return true
			}
		}
	}
	return false
}

func (b Board) fourInColumn(p Piece) bool {
	for col := 0; col < Cols; col++ {
		run := 0
		for row := 0; row < Rows; row++ {
			if b[row][col] != p {
				run = 0
				continue
			}
			run++
			if run == connectN {
				return true
			}
		}
	}
	return false
}

func (b Board) fourDiagonal(p Piece) bool {
	for row := 0; row+connectN <= Rows; row++ {
		for col := 0; col < Cols; col++ {
			// Rising diagonal, bottom-left to top-right
			if col+connectN <= Cols &&
				b[row][col] == p && b[row+1][col+1] == p &&
				b[row+2][col+2] == p && b[row+3][col+3] == p {
				return true
			}
			// Falling diagonal, bottom-right to top-left
			if col-connectN >= -1 &&
				b[row][col] == p && b[row+1][col-1] == p &&
				b[row+2][col-2] == p && b[row+3][col-3] == p {
				return true
			}
		}
	}
	return false
}
