// Package tree builds and renders the hierarchical change-status view.
package tree

import (
	"path"
	"sort"
	"strings"

	"github.com/chmouel/lazystatus/internal/models"
)

// NodeKind tags the variant a Node holds.
type NodeKind int

const (
	NodeGroup NodeKind = iota
	NodeDir
	NodeFile
)

// IndentState records, per ancestor level, whether that ancestor was the
// last child among its siblings. Its length equals the node's depth. A nil
// state on a file node signals flat (non-hierarchical) display.
type IndentState []bool

// Node is one entry of the status view.
type Node struct {
	Kind     NodeKind
	Label    string             // group label
	Count    int                // group file count
	Root     string             // repository root, set on the group node
	Name     string             // dir/file basename
	Path     string             // repository-relative path
	Expanded bool               // group and dir disclosure state
	Children []*Node            // dirs only
	File     *models.StatusFile // files only
	Group    models.Group
	Indent   IndentState
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Kind == NodeDir
}

// BuildTreeNodes converts an ordered record list into the flattened
// depth-first node sequence for hierarchical display, headed by a group
// node. The tree is rebuilt in full on every call; within a level
// directories precede files and both sort case-sensitively by name.
func BuildTreeNodes(records []models.StatusFile, gitRoot string, group models.Group) []*Node {
	root := &Node{Kind: NodeDir, Expanded: true}
	byPath := make(map[string]*Node)

	for i := range records {
		rec := &records[i]
		parts := strings.Split(rec.Path, "/")

		current := root
		for j := range parts {
			pathSoFar := strings.Join(parts[:j+1], "/")
			if existing, ok := byPath[pathSoFar]; ok {
				current = existing
				continue
			}

			var node *Node
			if j == len(parts)-1 {
				node = &Node{
					Kind:  NodeFile,
					Name:  parts[j],
					Path:  pathSoFar,
					File:  rec,
					Group: group,
				}
			} else {
				node = &Node{
					Kind:     NodeDir,
					Name:     parts[j],
					Path:     pathSoFar,
					Expanded: true,
					Group:    group,
				}
			}
			current.Children = append(current.Children, node)
			byPath[pathSoFar] = node
			current = node
		}
	}

	sortChildren(root)

	out := []*Node{groupNode(group, gitRoot, len(records))}
	flatten(root, IndentState{}, &out)
	return out
}

// BuildFlatNodes emits one file node per record with no indent metadata,
// signalling the renderer to show full relative paths.
func BuildFlatNodes(records []models.StatusFile, gitRoot string, group models.Group) []*Node {
	out := make([]*Node, 0, len(records)+1)
	out = append(out, groupNode(group, gitRoot, len(records)))
	for i := range records {
		rec := &records[i]
		out = append(out, &Node{
			Kind:  NodeFile,
			Name:  path.Base(rec.Path),
			Path:  rec.Path,
			File:  rec,
			Group: group,
		})
	}
	return out
}

// Visible filters the flattened sequence down to nodes whose ancestors are
// all expanded, and marks collapsed directories on the way.
func Visible(nodes []*Node, collapsed map[string]bool) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, node := range nodes {
		if node.Kind == NodeDir {
			node.Expanded = !collapsed[node.Path]
		}
		if hiddenByAncestor(node.Path, collapsed) {
			continue
		}
		out = append(out, node)
	}
	return out
}

func hiddenByAncestor(p string, collapsed map[string]bool) bool {
	for dir := range collapsed {
		if !collapsed[dir] {
			continue
		}
		if strings.HasPrefix(p, dir+"/") {
			return true
		}
	}
	return false
}

func groupNode(group models.Group, gitRoot string, count int) *Node {
	return &Node{
		Kind:     NodeGroup,
		Label:    string(group),
		Count:    count,
		Root:     gitRoot,
		Expanded: true,
		Group:    group,
	}
}

// sortChildren orders each level: directories first, then case-sensitive
// lexicographic by name within each kind.
func sortChildren(node *Node) {
	if node == nil || node.Children == nil {
		return
	}

	sort.SliceStable(node.Children, func(i, j int) bool {
		iDir := node.Children[i].IsDir()
		jDir := node.Children[j].IsDir()
		if iDir != jDir {
			return iDir
		}
		return node.Children[i].Name < node.Children[j].Name
	})

	for _, child := range node.Children {
		sortChildren(child)
	}
}

// flatten walks depth-first, extending a copy of the parent state with one
// last-among-siblings boolean per node.
func flatten(node *Node, state IndentState, out *[]*Node) {
	for i, child := range node.Children {
		last := i == len(node.Children)-1

		childState := make(IndentState, len(state)+1)
		copy(childState, state)
		childState[len(state)] = last
		child.Indent = childState

		*out = append(*out, child)
		if child.IsDir() {
			flatten(child, childState, out)
		}
	}
}
