package vpagateway

import "github.com/dekarrin/vpagen/vpa"

// nodeJSON is the wire shape of a parse tree node returned by POST
// .../parse: either a leaf string or a nonterminal/rule pair with children.
type nodeJSON struct {
	Leaf        string     `json:"leaf,omitempty"`
	Nonterminal *int       `json:"nonterminal,omitempty"`
	Rule        *int       `json:"rule,omitempty"`
	Children    []nodeJSON `json:"children,omitempty"`
}

func nodeToJSON(n *vpa.ParseTree) nodeJSON {
	id, rule := n.Identifier, n.RuleNr
	out := nodeJSON{Nonterminal: &id, Rule: &rule}
	for _, c := range n.Children {
		if c.IsNode() {
			out.Children = append(out.Children, nodeToJSON(c.Node))
		} else {
			out.Children = append(out.Children, nodeJSON{Leaf: c.Leaf})
		}
	}
	return out
}
