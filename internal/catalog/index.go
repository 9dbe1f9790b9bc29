// internal/catalog/index.go
package catalog

import (
	"encoding/json"

	"github.com/haspco/safety-catalog/internal/models"
)

// GroupBy selects the top level of an Index.
type GroupBy string

const (
	ByManufacturer GroupBy = "manufacturer"
	ByCategory     GroupBy = "category"
)

// ParseGroupBy accepts "manufacturer", "category" or "" (manufacturer).
func ParseGroupBy(value string) (GroupBy, bool) {
	switch GroupBy(Key(value)) {
	case "", ByManufacturer:
		return ByManufacturer, true
	case ByCategory:
		return ByCategory, true
	}
	return "", false
}

// NextLevel is the level OptionsAt lists for sel, or LevelProducts once
// every level is chosen.
func NextLevel(sel Selection, by GroupBy) Level {
	levels := by.levels()
	depth := sel.Truncate(by, len(levels)).Depth(by)
	if depth >= len(levels) {
		return LevelProducts
	}
	return levels[depth]
}

func (g GroupBy) levels() []Level {
	if g == ByCategory {
		return []Level{LevelCategory, LevelSubCategory, LevelSubSubCategory}
	}
	return []Level{LevelManufacturer, LevelCategory, LevelSubCategory, LevelSubSubCategory}
}

type ProductRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Node is one grouping level. Products whose classification stops at this
// level live in DirectProducts; deeper products live under Children.
type Node struct {
	Name           string
	DirectProducts []ProductRef

	children map[string]*Node
	order    []*Node
}

func newNode(name string) *Node {
	return &Node{Name: name, children: make(map[string]*Node)}
}

// Children returns the child nodes in first-seen order.
func (n *Node) Children() []*Node {
	return n.order
}

// Child looks a child up by name using catalog key folding.
func (n *Node) Child(name string) (*Node, bool) {
	child, ok := n.children[Key(name)]
	return child, ok
}

func (n *Node) childOrCreate(name string) *Node {
	key := Key(name)
	if child, ok := n.children[key]; ok {
		return child
	}
	child := newNode(name)
	n.children[key] = child
	n.order = append(n.order, child)
	return child
}

// Count returns the number of product refs in n and everything below it.
func (n *Node) Count() int {
	total := len(n.DirectProducts)
	for _, child := range n.order {
		total += child.Count()
	}
	return total
}

func (n *Node) MarshalJSON() ([]byte, error) {
	products := n.DirectProducts
	if products == nil {
		products = []ProductRef{}
	}
	children := n.order
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(struct {
		Name     string       `json:"name"`
		Products []ProductRef `json:"products"`
		Children []*Node      `json:"children"`
	}{n.Name, products, children})
}

// Index is the nested lookup built from a flat product list.
type Index struct {
	By   GroupBy `json:"by"`
	Root *Node   `json:"root"`
}

// Build groups products in a single pass. Each product is appended to the
// deepest node for which it has a classification value; walking stops at
// the first absent level. Key order follows first appearance in products.
func Build(products []models.Product, by GroupBy) *Index {
	if by != ByCategory {
		by = ByManufacturer
	}
	levels := by.levels()
	root := newNode("")

	for i := range products {
		p := &products[i]
		node := root
		for _, level := range levels {
			value := levelValue(p, level)
			if value == "" {
				break
			}
			node = node.childOrCreate(value)
		}
		node.DirectProducts = append(node.DirectProducts, ProductRef{ID: p.ID, Name: p.Name})
	}

	return &Index{By: by, Root: root}
}

// Lookup walks the index along path and returns the node it ends on.
func (idx *Index) Lookup(path ...string) (*Node, bool) {
	node := idx.Root
	for _, name := range path {
		child, ok := node.Child(name)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}
