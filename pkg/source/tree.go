package source

import (
	"encoding/json"
	"fmt"
)

// NodeID indexes a Declaration inside its Tree.
type NodeID int

// NoParent is the Parent of top-level declarations.
const NoParent NodeID = -1

// Declaration is one node of the declaration tree. Parent and Children are
// ids into the owning Tree's arena.
type Declaration struct {
	ID         NodeID         `json:"-" yaml:"-"`
	Kind       Kind           `json:"kind" yaml:"kind"`
	Name       string         `json:"name" yaml:"name"`
	StartLine  int            `json:"startLine" yaml:"startLine"`
	EndLine    int            `json:"endLine" yaml:"endLine"`
	IsExported bool           `json:"isExported" yaml:"isExported"`
	Doc        string         `json:"doc,omitempty" yaml:"doc,omitempty"`
	Parent     NodeID         `json:"-" yaml:"-"`
	Children   []NodeID       `json:"-" yaml:"-"`
	Metadata   map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Span is the number of lines the declaration covers beyond its first.
func (d *Declaration) Span() int {
	return d.EndLine - d.StartLine
}

// Key is the "{kind}:{name}" identifier used by structural diffs.
func (d *Declaration) Key() string {
	return string(d.Kind) + ":" + d.Name
}

type memberKey struct {
	parent NodeID
	kind   Kind
	name   string
}

// Tree is an append-only arena of declarations. Roots lists the top-level
// declarations in source order.
type Tree struct {
	Nodes []Declaration
	Roots []NodeID

	members map[memberKey]NodeID
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{members: make(map[memberKey]NodeID)}
}

// Add appends d under parent (NoParent for a top-level declaration) and
// returns its id. Members of classes and interfaces are indexed by name; the
// first member with a given kind and name wins.
func (t *Tree) Add(parent NodeID, d Declaration) NodeID {
	if t.members == nil {
		t.members = make(map[memberKey]NodeID)
	}
	id := NodeID(len(t.Nodes))
	d.ID = id
	d.Parent = parent
	d.Children = nil
	t.Nodes = append(t.Nodes, d)

	if parent == NoParent {
		t.Roots = append(t.Roots, id)
		return id
	}
	p := &t.Nodes[parent]
	p.Children = append(p.Children, id)
	key := memberKey{parent: parent, kind: d.Kind, name: d.Name}
	if _, exists := t.members[key]; !exists {
		t.members[key] = id
	}
	return id
}

// Node returns the declaration with the given id.
func (t *Tree) Node(id NodeID) *Declaration {
	return &t.Nodes[id]
}

// Len returns the number of declarations in the arena.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}

// TopLevel returns the top-level declarations in source order.
func (t *Tree) TopLevel() []*Declaration {
	if t == nil {
		return nil
	}
	out := make([]*Declaration, 0, len(t.Roots))
	for _, id := range t.Roots {
		out = append(out, &t.Nodes[id])
	}
	return out
}

// ChildrenOf returns the members of id in source order.
func (t *Tree) ChildrenOf(id NodeID) []*Declaration {
	kids := t.Nodes[id].Children
	out := make([]*Declaration, 0, len(kids))
	for _, c := range kids {
		out = append(out, &t.Nodes[c])
	}
	return out
}

// Walk visits every declaration, parents before children, in source order.
// Returning false from fn skips the declaration's children.
func (t *Tree) Walk(fn func(*Declaration) bool) {
	if t == nil {
		return
	}
	var visit func(id NodeID)
	visit = func(id NodeID) {
		d := &t.Nodes[id]
		if !fn(d) {
			return
		}
		for _, c := range d.Children {
			visit(c)
		}
	}
	for _, id := range t.Roots {
		visit(id)
	}
}

// Find returns the first top-level declaration of kind named name.
func (t *Tree) Find(kind Kind, name string) (*Declaration, bool) {
	for _, d := range t.TopLevel() {
		if d.Kind == kind && d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// Member looks up a member of a class or interface by kind and name.
func (t *Tree) Member(parent NodeID, kind Kind, name string) (*Declaration, bool) {
	id, ok := t.members[memberKey{parent: parent, kind: kind, name: name}]
	if !ok {
		return nil, false
	}
	return &t.Nodes[id], true
}

// Count returns the number of declarations of the given kind anywhere in
// the tree.
func (t *Tree) Count(kind Kind) int {
	n := 0
	t.Walk(func(d *Declaration) bool {
		if d.Kind == kind {
			n++
		}
		return true
	})
	return n
}

// Validate checks that parent links are consistent, the tree is acyclic, and
// every child's line span lies within its parent's.
func (t *Tree) Validate() error {
	seen := make(map[NodeID]bool, len(t.Nodes))
	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		if seen[id] {
			return fmt.Errorf("declaration %d reached twice", id)
		}
		seen[id] = true
		d := &t.Nodes[id]
		for _, c := range d.Children {
			child := &t.Nodes[c]
			if child.Parent != id {
				return fmt.Errorf("declaration %q has parent %d, listed under %d", child.Name, child.Parent, id)
			}
			if child.StartLine < d.StartLine || child.EndLine > d.EndLine {
				return fmt.Errorf("member %q (lines %d-%d) outside %q (lines %d-%d)",
					child.Name, child.StartLine, child.EndLine, d.Name, d.StartLine, d.EndLine)
			}
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, id := range t.Roots {
		if t.Nodes[id].Parent != NoParent {
			return fmt.Errorf("root %q has a parent", t.Nodes[id].Name)
		}
		if err := visit(id); err != nil {
			return err
		}
	}
	if len(seen) != len(t.Nodes) {
		return fmt.Errorf("%d declarations unreachable from roots", len(t.Nodes)-len(seen))
	}
	return nil
}

// NestedDeclaration is the serialized form of a declaration and its members.
type NestedDeclaration struct {
	Kind       Kind                `json:"kind" yaml:"kind"`
	Name       string              `json:"name" yaml:"name"`
	StartLine  int                 `json:"startLine" yaml:"startLine"`
	EndLine    int                 `json:"endLine" yaml:"endLine"`
	IsExported bool                `json:"isExported" yaml:"isExported"`
	Doc        string              `json:"doc,omitempty" yaml:"doc,omitempty"`
	Metadata   map[string]any      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Children   []NestedDeclaration `json:"children,omitempty" yaml:"children,omitempty"`
}

// Nested converts the arena into nested form with an ordered walk.
func (t *Tree) Nested() []NestedDeclaration {
	if t == nil {
		return []NestedDeclaration{}
	}
	var build func(id NodeID) NestedDeclaration
	build = func(id NodeID) NestedDeclaration {
		d := &t.Nodes[id]
		n := NestedDeclaration{
			Kind:       d.Kind,
			Name:       d.Name,
			StartLine:  d.StartLine,
			EndLine:    d.EndLine,
			IsExported: d.IsExported,
			Doc:        d.Doc,
			Metadata:   d.Metadata,
		}
		for _, c := range d.Children {
			n.Children = append(n.Children, build(c))
		}
		return n
	}
	out := make([]NestedDeclaration, 0, len(t.Roots))
	for _, id := range t.Roots {
		out = append(out, build(id))
	}
	return out
}

// MarshalJSON emits the nested form.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Nested())
}

// MarshalYAML emits the nested form.
func (t *Tree) MarshalYAML() (any, error) {
	return t.Nested(), nil
}
