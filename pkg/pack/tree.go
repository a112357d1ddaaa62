// File: pkg/pack/tree.go
package pack

import (
	"strings"
)

// TreeNode is a directory or file in a tree built from relative paths.
type TreeNode struct {
	Name     string
	Children []*TreeNode

	dir   bool
	index map[string]*TreeNode
}

// IsDir reports whether the node has been seen as a directory.
func (n *TreeNode) IsDir() bool {
	return n.dir
}

// BuildTree groups slash separated paths into a tree. Children keep the
// order in which they were first seen and every directory appears once.
func BuildTree(paths []string) *TreeNode {
	root := &TreeNode{dir: true, index: map[string]*TreeNode{}}
	for _, p := range paths {
		parts := strings.Split(strings.Trim(p, "/"), "/")
		node := root
		for i, part := range parts {
			if part == "" || part == "." {
				continue
			}
			child, ok := node.index[part]
			if !ok {
				child = &TreeNode{Name: part, index: map[string]*TreeNode{}}
				node.index[part] = child
				node.Children = append(node.Children, child)
			}
			if i < len(parts)-1 {
				child.dir = true
			}
			node = child
		}
	}
	return root
}

// RenderTree draws the tree with box-drawing connectors, one entry per
// line. Directories get a trailing slash.
func RenderTree(root *TreeNode) string {
	var lines []string
	renderTreeRecursively(root, "", &lines)
	return strings.Join(lines, "\n")
}

func renderTreeRecursively(node *TreeNode, prefix string, lines *[]string) {
	for i, child := range node.Children {
		connector := "├── "
		extension := "│   "
		if i == len(node.Children)-1 {
			connector = "└── "
			extension = "    "
		}

		name := child.Name
		if child.dir {
			name += "/"
		}
		*lines = append(*lines, prefix+connector+name)
		if child.dir {
			renderTreeRecursively(child, prefix+extension, lines)
		}
	}
}
