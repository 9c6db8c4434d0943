package searcher

// Hyperparameters for the two searchers

// CSquared is the squared UCB1 exploration constant, i.e. C = sqrt(2).
const CSquared = 2.0

// DefaultIterations is the MCTS simulation budget per move.
const DefaultIterations = 1500

// Playout results from the point of view of the node being scored.
const (
	Win  = 1
	Loss = -1
)

// DefaultDepth is the negamax search horizon in plies.
const DefaultDepth = 4

// Negamax evaluation bands, each scaled by depth+1 at the cutoff frame so
// that shallower outcomes outweigh deeper ones. The pruning window opens at
// (ScoreLoss, ScoreWin); an ongoing position scores just outside it.
const (
	ScoreWin     = 100
	ScoreLoss    = -100
	ScoreOngoing = 101
)
