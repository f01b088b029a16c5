package depparse

import (
	"fmt"

	"github.com/dgallion1/aaerminer/internal/temporal"
)

// wireToken is one token as the parser sidecar serializes it. Head and
// Children are indices into the token array; a root token points at itself.
type wireToken struct {
	Text     string `json:"text"`
	Lemma    string `json:"lemma"`
	Shape    string `json:"shape"`
	Dep      string `json:"dep"`
	Head     int    `json:"head"`
	Children []int  `json:"children"`
}

// Entity is a named entity recognized by the sidecar.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// node materializes the token graph behind the read-only Token interface.
type node struct {
	wire     wireToken
	head     *node
	children []*node
}

func (n *node) Text() string  { return n.wire.Text }
func (n *node) Lemma() string { return n.wire.Lemma }
func (n *node) Shape() string { return n.wire.Shape }
func (n *node) Dep() string   { return n.wire.Dep }

func (n *node) Head() temporal.Token {
	if n.head == nil {
		return nil
	}
	return n.head
}

func (n *node) Children() []temporal.Token {
	out := make([]temporal.Token, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// linkTokens rebuilds the dependency graph from wire indices.
func linkTokens(wire []wireToken) ([]temporal.Token, error) {
	nodes := make([]*node, len(wire))
	for i := range wire {
		nodes[i] = &node{wire: wire[i]}
	}
	for i, w := range wire {
		if w.Head < 0 || w.Head >= len(nodes) {
			return nil, fmt.Errorf("token %d: head index %d out of range", i, w.Head)
		}
		if w.Head != i {
			nodes[i].head = nodes[w.Head]
		}
		for _, c := range w.Children {
			if c < 0 || c >= len(nodes) {
				return nil, fmt.Errorf("token %d: child index %d out of range", i, c)
			}
			nodes[i].children = append(nodes[i].children, nodes[c])
		}
	}

	out := make([]temporal.Token, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out, nil
}
