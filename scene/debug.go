package scene

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// debugEnabled gates the tree-operation checks below. The scene is
// single-threaded, so a plain package variable is enough.
var debugEnabled bool

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and tree depth and child count warnings are logged.
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("scene debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		log.Warn().Int("depth", depth).Int("max", debugMaxTreeDepth).Str("node", n.Name).
			Msg("scene: tree depth exceeds threshold")
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		log.Warn().Int("children", len(n.children)).Int("max", debugMaxChildCount).Str("node", n.Name).
			Msg("scene: child count exceeds threshold")
	}
}
