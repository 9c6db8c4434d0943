package agent

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ltettoni/ana2-puissance4/game"
	"github.com/ltettoni/ana2-puissance4/searcher"
	"github.com/ltettoni/ana2-puissance4/utils"
)

// HumanAgent reads columns interactively, re-prompting until the input
// names a playable column.
type HumanAgent struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHumanAgent(in io.Reader, out io.Writer) *HumanAgent {
	return &HumanAgent{in: bufio.NewScanner(in), out: out}
}

func (a *HumanAgent) Name() string {
	return "human"
}

func (a *HumanAgent) GenerateMove(board game.Board, player game.Piece) (int, searcher.SearchMetrics, error) {
	fmt.Fprintf(a.out, "%s%s to move.\n", board, player)

	legal := board.LegalColumns()
	for {
		fmt.Fprintf(a.out, "Enter a column for %s: ", player)
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return game.NoColumn, searcher.SearchMetrics{}, errors.Wrap(err, "failed to read column")
			}
			return game.NoColumn, searcher.SearchMetrics{}, errors.New("input closed before a column was chosen")
		}

		text := strings.TrimSpace(a.in.Text())
		column, err := strconv.Atoi(text)
		if err != nil {
			fmt.Fprintf(a.out, "%q is not a column number.\n", text)
			continue
		}
		if !utils.Contains(legal, column) {
			fmt.Fprintf(a.out, "Column %d is not playable.\n", column)
			continue
		}
		return column, searcher.SearchMetrics{}, nil
	}
}
