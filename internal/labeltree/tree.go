// Package labeltree assigns every selectable window a short key sequence by
// partitioning the windows into a balanced tree whose edges are alphabet
// characters.
//
// Buckets are split as evenly as possible: with m windows and K characters the
// first m%K children receive m/K+1 windows and the rest receive m/K. A bucket
// of one window becomes a Leaf; anything larger becomes an Internal node and is
// partitioned again. Characters are handed out in alphabet order at every
// level, so the first character always selects the first child.
package labeltree

import "github.com/atomicstack/xorg-choose-window/internal/window"

// Node is either a *Leaf or an *Internal.
type Node interface {
	Label() rune
	node()
}

// Leaf selects exactly one window.
type Leaf struct {
	Char   rune
	Window window.Window
}

// Internal narrows the selection to its children.
type Internal struct {
	Char     rune
	Children []Node
}

func (l *Leaf) Label() rune     { return l.Char }
func (n *Internal) Label() rune { return n.Char }

func (*Leaf) node()     {}
func (*Internal) node() {}

// Build returns the initial frontier for windows over the alphabet chars.
// Zero windows yield an empty frontier; a single window yields one Leaf
// labelled with the first character. chars must hold at least two runes.
func Build(windows []window.Window, chars []rune) []Node {
	switch len(windows) {
	case 0:
		return nil
	case 1:
		return []Node{&Leaf{Char: chars[0], Window: windows[0]}}
	}
	return partition(windows, chars)
}

func partition(windows []window.Window, chars []rune) []Node {
	m, k := len(windows), len(chars)
	p, r := m/k, m%k
	n := k
	if p == 0 {
		n = r
	}
	nodes := make([]Node, 0, n)
	offset := 0
	for i := 0; i < n; i++ {
		size := p
		if i < r {
			size++
		}
		bucket := windows[offset : offset+size]
		offset += size
		if size == 1 {
			nodes = append(nodes, &Leaf{Char: chars[i], Window: bucket[0]})
			continue
		}
		nodes = append(nodes, &Internal{Char: chars[i], Children: partition(bucket, chars)})
	}
	return nodes
}

// Depth is the nominal label length ceil(log_k(max(n-1, 1))) computed with
// integer arithmetic. It can be one short of Height; Build never relies on it.
func Depth(n, k int) int {
	target := n - 1
	if target < 1 {
		target = 1
	}
	return ceilLog(target, k)
}

// Height is the longest label Build produces for n windows over k characters:
// the smallest h with k^h >= n, or 0 when n < 2.
func Height(n, k int) int {
	if n < 2 {
		return 0
	}
	return ceilLog(n, k)
}

func ceilLog(n, k int) int {
	d := 0
	for capacity := 1; capacity < n; capacity *= k {
		d++
	}
	return d
}

// Walk visits every node in depth-first order, passing the characters from
// the frontier down to and including the node. Returning false from fn skips
// the node's children.
func Walk(frontier []Node, fn func(path []rune, n Node) bool) {
	walk(frontier, nil, fn)
}

func walk(nodes []Node, prefix []rune, fn func([]rune, Node) bool) {
	for _, n := range nodes {
		path := append(prefix[:len(prefix):len(prefix)], n.Label())
		if !fn(path, n) {
			continue
		}
		if in, ok := n.(*Internal); ok {
			walk(in.Children, path, fn)
		}
	}
}

// Leaves returns every leaf under frontier in traversal order.
func Leaves(frontier []Node) []*Leaf {
	var out []*Leaf
	Walk(frontier, func(_ []rune, n Node) bool {
		if leaf, ok := n.(*Leaf); ok {
			out = append(out, leaf)
		}
		return true
	})
	return out
}

// Find returns the frontier member labelled c.
func Find(frontier []Node, c rune) (Node, bool) {
	for _, n := range frontier {
		if n.Label() == c {
			return n, true
		}
	}
	return nil, false
}
