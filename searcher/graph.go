package searcher

import (
	"fmt"
	"io"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"

	"github.com/ltettoni/ana2-puissance4/game"
)

// dumpTree writes the search tree rooted at root to w in DOT format,
// truncated maxDepth levels below the root.
func dumpTree(w io.Writer, root *node, maxDepth int) error {
	graph := gographviz.NewGraph()
	if err := graph.SetName("mcts"); err != nil {
		return errors.Wrap(err, "failed to name graph")
	}
	if err := graph.SetDir(true); err != nil {
		return errors.Wrap(err, "failed to set graph directed")
	}

	if err := addNode(graph, root, "", 0, maxDepth); err != nil {
		return err
	}

	_, err := io.WriteString(w, graph.String())
	return errors.Wrap(err, "failed to write search tree")
}

func addNode(graph *gographviz.Graph, n *node, parentID string, depth, maxDepth int) error {
	id := fmt.Sprintf("n%d", len(graph.Nodes.Nodes))
	attrs := map[string]string{
		"shape": "box",
		"label": nodeLabel(n),
	}
	if err := graph.AddNode("mcts", id, attrs); err != nil {
		return errors.Wrapf(err, "failed to add node %s", id)
	}
	if parentID != "" {
		if err := graph.AddEdge(parentID, id, true, nil); err != nil {
			return errors.Wrapf(err, "failed to add edge %s -> %s", parentID, id)
		}
	}

	if depth >= maxDepth {
		return nil
	}
	for _, child := range n.children {
		if err := addNode(graph, child, id, depth+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel(n *node) string {
	head := "root"
	if n.action != game.NoColumn {
		head = fmt.Sprintf("col %d", n.action)
	}
	return fmt.Sprintf(`"%s\n%s to move\n%dW %dL / %d visits"`, head, n.player, n.wins, n.losses, n.visits)
}
