package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/ltettoni/ana2-puissance4/game"
	"github.com/ltettoni/ana2-puissance4/utils"
)

// counter selects which tally of a node a UCB1 score is computed from.
// Selection descends by win rate; the final move pick ranks the root's
// children by loss rate, because a child's losses are the parent's wins.
type counter func(n *node) int

func winCount(n *node) int  { return n.wins }
func lossCount(n *node) int { return n.losses }

// node is a state in the search tree. player is the side to move in board;
// action is the column whose drop produced board from the parent's board.
type node struct {
	board    game.Board
	player   game.Piece
	parent   *node
	action   int
	children []*node
	visits   int
	wins     int
	losses   int
	tried    []int
	untried  []int
	status   game.Status
}

func newNode(board game.Board, player game.Piece, parent *node, action int) *node {
	return &node{
		board:   board,
		player:  player,
		parent:  parent,
		action:  action,
		untried: board.LegalColumns(),
		status:  board.Status(player),
	}
}

// updateActions repartitions the legal columns into tried (one child each)
// and untried, so stale snapshots never leak into expansion.
func (n *node) updateActions() {
	n.tried = n.tried[:0]
	for _, child := range n.children {
		n.tried = append(n.tried, child.action)
	}
	n.untried = n.untried[:0]
	for _, column := range n.board.LegalColumns() {
		if !utils.Contains(n.tried, column) {
			n.untried = append(n.untried, column)
		}
	}
}

func (n *node) triedAll() bool {
	n.updateActions()
	return len(n.untried) == 0
}

// isTerminal reports whether the game is over in n.board, for either side.
func (n *node) isTerminal() bool {
	return n.status != game.Ongoing || n.board.Status(n.player.Other()) != game.Ongoing
}

func (n *node) result() int {
	return resultFor(n.board, n.player)
}

// resultFor scores a finished board for player: Win if player connected
// four, Loss if the opponent did, 0 on a draw. The opponent is checked
// first because a playout can leave a junk move on the board after the
// win that ended it.
func resultFor(board game.Board, player game.Piece) int {
	if board.ConnectedFour(player.Other()) {
		return Loss
	}
	if board.ConnectedFour(player) {
		return Win
	}
	return 0
}

// ucb1 scores n for selection from its parent. count picks the tally the
// exploitation term is computed from.
func (n *node) ucb1(count counter) float64 {
	if n.visits == 0 || n.parent == nil || n.parent.visits == 0 {
		panic("cannot compute ucb1: 0 visits")
	}

	exploit := float64(count(n)) / float64(n.visits)
	explore := math.Sqrt(CSquared * math.Log(float64(n.parent.visits)) / float64(n.visits))
	return exploit + explore
}

// bestChild returns the child with the highest UCB1 score under count,
// keeping the first on ties.
func (n *node) bestChild(count counter) *node {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	best := n.children[0]
	bestScore := best.ucb1(count)
	for _, child := range n.children[1:] {
		if score := child.ucb1(count); score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}

// expand plays one untried column chosen uniformly at random and returns
// the resulting child node.
func (n *node) expand(rng *rand.Rand) *node {
	n.updateActions()
	column := n.untried[rng.Intn(len(n.untried))]

	board := mustApply(n.board, column, n.player)
	child := newNode(board, n.player.Other(), n, column)
	n.children = append(n.children, child)
	n.updateActions()
	return child
}

func mustApply(board game.Board, column int, player game.Piece) game.Board {
	next, err := board.Apply(column, player)
	if err != nil {
		panic(err)
	}
	return next
}
