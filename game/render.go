package game

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	borderLine = "|==============|"
	indexLine  = "|0 1 2 3 4 5 6 |"
)

// String renders the board for the console, top row first:
//
//	|==============|
//	|              |
//	|              |
//	|    X X       |
//	|    O X X     |
//	|  O X O O     |
//	|  O O X X     |
//	|==============|
//	|0 1 2 3 4 5 6 |
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString(borderLine)
	sb.WriteByte('\n')
	for row := Rows - 1; row >= 0; row-- {
		sb.WriteByte('|')
		for col := 0; col < Cols; col++ {
			sb.WriteString(b[row][col].String())
			sb.WriteByte(' ')
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(borderLine)
	sb.WriteByte('\n')
	sb.WriteString(indexLine)
	sb.WriteByte('\n')
	return sb.String()
}

// Parse rebuilds a board from its String rendering. It is the exact
// inverse of String for well-formed input, which makes it handy for test
// fixtures and for replaying a crashed game from its last printed board.
func Parse(s string) (Board, error) {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != Rows+3 {
		return Board{}, errors.Errorf("malformed board: expected %d lines, got %d", Rows+3, len(lines))
	}
	if lines[0] != borderLine || lines[Rows+1] != borderLine {
		return Board{}, errors.New("malformed board: missing border")
	}
	if lines[Rows+2] != indexLine {
		return Board{}, errors.New("malformed board: missing column indices")
	}

	var b Board
	for i, line := range lines[1 : Rows+1] {
		if len(line) != len(borderLine) {
			return Board{}, errors.Errorf("malformed board: row %d has width %d", i, len(line))
		}
		row := Rows - 1 - i
		for col := 0; col < Cols; col++ {
			switch line[1+2*col] {
			case 'X':
				b[row][col] = Player1
			case 'O':
				b[row][col] = Player2
			case ' ':
				b[row][col] = None
			default:
				return Board{}, errors.Errorf("malformed board: unknown cell %q in row %d", line[1+2*col], i)
			}
		}
	}
	return b, nil
}
