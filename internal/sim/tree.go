package sim

import "battlebot/internal/battle"

// NoParent is the parent index of the root.
const NoParent = -1

// Tree is the arena of nodes built by one search. Nodes refer to their
// parent by index, so the arena may grow without invalidating links;
// pointers returned by Node are only valid until the next Add.
type Tree struct {
	nodes []BattleStatus
}

func NewTree(root BattleStatus) *Tree {
	root.ID, root.Parent = 0, NoParent
	return &Tree{nodes: []BattleStatus{root}}
}

// Add appends n as a child of parent and returns its index.
func (t *Tree) Add(parent int, n BattleStatus) int {
	n.ID = len(t.nodes)
	n.Parent = parent
	t.nodes = append(t.nodes, n)
	return n.ID
}

func (t *Tree) Node(id int) *BattleStatus { return &t.nodes[id] }
func (t *Tree) Root() *BattleStatus       { return &t.nodes[0] }
func (t *Tree) Len() int                  { return len(t.nodes) }

func (t *Tree) SetScore(id int, score float64) { t.nodes[id].Score = score }

// Path returns the node indices from the first child of the root down to
// id. The root itself yields an empty path.
func (t *Tree) Path(id int) []int {
	var rev []int
	for id > 0 {
		rev = append(rev, id)
		id = t.nodes[id].Parent
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// RootAction is the action the root took on the way to id.
func (t *Tree) RootAction(id int) battle.Action {
	p := t.Path(id)
	if len(p) == 0 {
		return battle.Action{}
	}
	return t.nodes[p[0]].Action
}
