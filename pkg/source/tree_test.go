package source

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Tree {
	t := NewTree()
	user := t.Add(NoParent, Declaration{Kind: KindClass, Name: "User", StartLine: 1, EndLine: 10, IsExported: true})
	t.Add(user, Declaration{Kind: KindProperty, Name: "name", StartLine: 2, EndLine: 2})
	t.Add(user, Declaration{Kind: KindMethod, Name: "greet", StartLine: 4, EndLine: 6})
	t.Add(user, Declaration{Kind: KindMethod, Name: "greet", StartLine: 7, EndLine: 9})
	t.Add(NoParent, Declaration{Kind: KindFunction, Name: "main", StartLine: 12, EndLine: 14})
	return t
}

func TestTree_Structure(t *testing.T) {
	tree := sampleTree()

	assert.Equal(t, 5, tree.Len())
	require.Len(t, tree.TopLevel(), 2)
	assert.Equal(t, "User", tree.TopLevel()[0].Name)
	assert.Equal(t, "main", tree.TopLevel()[1].Name)
	assert.Len(t, tree.ChildrenOf(0), 3)
	assert.Equal(t, 2, tree.Count(KindMethod))
	assert.NoError(t, tree.Validate())
}

func TestTree_Member(t *testing.T) {
	tree := sampleTree()

	m, ok := tree.Member(0, KindMethod, "greet")
	require.True(t, ok)
	assert.Equal(t, 4, m.StartLine, "first member with a name wins")

	_, ok = tree.Member(0, KindMethod, "missing")
	assert.False(t, ok)
	_, ok = tree.Member(0, KindProperty, "greet")
	assert.False(t, ok)
}

func TestTree_Find(t *testing.T) {
	tree := sampleTree()

	d, ok := tree.Find(KindFunction, "main")
	require.True(t, ok)
	assert.Equal(t, "function:main", d.Key())
	assert.Equal(t, 2, d.Span())

	_, ok = tree.Find(KindClass, "main")
	assert.False(t, ok)
}

func TestTree_WalkSkipsChildren(t *testing.T) {
	tree := sampleTree()

	var names []string
	tree.Walk(func(d *Declaration) bool {
		names = append(names, d.Name)
		return d.Kind != KindClass
	})
	assert.Equal(t, []string{"User", "main"}, names)
}

func TestTree_ValidateMemberOutsideParent(t *testing.T) {
	tree := NewTree()
	c := tree.Add(NoParent, Declaration{Kind: KindClass, Name: "A", StartLine: 1, EndLine: 3})
	tree.Add(c, Declaration{Kind: KindMethod, Name: "m", StartLine: 2, EndLine: 5})

	assert.ErrorContains(t, tree.Validate(), `member "m" (lines 2-5) outside "A"`)
}

func TestTree_MarshalJSONNested(t *testing.T) {
	tree := sampleTree()

	data, err := json.Marshal(tree)
	require.NoError(t, err)

	var nested []NestedDeclaration
	require.NoError(t, json.Unmarshal(data, &nested))
	require.Len(t, nested, 2)
	assert.Len(t, nested[0].Children, 3)
	assert.Equal(t, KindProperty, nested[0].Children[0].Kind)
	assert.Empty(t, nested[1].Children)
}

func TestTree_NilIsEmpty(t *testing.T) {
	var tree *Tree
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.TopLevel())
	assert.Equal(t, []NestedDeclaration{}, tree.Nested())
}

func TestSpecifierNames(t *testing.T) {
	tests := []struct {
		spec, imported, local string
	}{
		{"a", "a", "a"},
		{"a as b", "a", "b"},
		{"type T", "T", "T"},
		{" type T as U ", "T", "U"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.imported, ImportedName(tt.spec))
			assert.Equal(t, tt.local, LocalName(tt.spec))
		})
	}
}
