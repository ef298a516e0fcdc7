// Package gamecube provides GameCube-specific disc image structures and
// functionality. This file contains the in-memory directory/file tree the
// FST codec decodes into and the image writer rebuilds from.
package gamecube

import (
	"fmt"
	"math"
	"strings"

	"github.com/hansbonini/gctools/pkg/common"
)

// NodeKind distinguishes directory nodes from file nodes
type NodeKind int

const (
	// DirectoryNode owns an ordered sequence of children
	DirectoryNode NodeKind = iota
	// FileNode carries a content source and a length
	FileNode
)

// FileSource describes where a file's bytes live until rebuild time
type FileSource interface {
	// Size returns the file length in bytes
	Size() uint32
}

// BorrowedSource references a byte range of the source image. The bytes
// are read lazily at extract or rebuild time, so untouched files are
// never copied during ordinary tree mutation.
type BorrowedSource struct {
	Offset uint32
	Length uint32
}

// Size returns the length of the borrowed range
func (s BorrowedSource) Size() uint32 { return s.Length }

// OwnedSource holds injected or replaced content in memory
type OwnedSource struct {
	Data []byte
}

// Size returns the length of the owned buffer
func (s OwnedSource) Size() uint32 { return uint32(len(s.Data)) }

// Node is a single directory or file in the disc tree. Every node has
// exactly one owning parent except the root. Child order is insertion
// order, which is also disc order: it determines FST encoding order and
// therefore file layout in a rebuilt image.
type Node struct {
	Kind     NodeKind
	Name     string
	Children []*Node    // directories only
	Source   FileSource // files only

	parent *Node
}

// NewRoot creates an empty root directory. The root has an empty name
// and no parent.
func NewRoot() *Node {
	return &Node{Kind: DirectoryNode}
}

// IsDir reports whether the node is a directory
func (n *Node) IsDir() bool {
	return n.Kind == DirectoryNode
}

// Parent returns the owning directory, or nil for the root
func (n *Node) Parent() *Node {
	return n.parent
}

// Size returns the file length in bytes. Directories have size 0.
func (n *Node) Size() uint32 {
	if n.Kind != FileNode || n.Source == nil {
		return 0
	}
	return n.Source.Size()
}

// Path returns the slash-separated path of the node from the root.
// The root's path is the empty string.
func (n *Node) Path() string {
	if n.parent == nil {
		return ""
	}
	parent := n.parent.Path()
	if parent == "" {
		return n.Name
	}
	return parent + "/" + n.Name
}

// Child returns the direct child with the given name, or nil.
// Comparison is case-sensitive exact byte match.
func (n *Node) Child(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// FindByPath resolves a slash-separated path relative to n. Empty
// segments (leading, trailing or doubled slashes) are ignored, so
// "/audio/us/" resolves the same as "audio/us". The empty path resolves
// to n itself.
func (n *Node) FindByPath(path string) (*Node, error) {
	current := n
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		if !current.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		next := current.Child(segment)
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		current = next
	}
	return current, nil
}

func (n *Node) attach(child *Node) error {
	if !n.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNotFound, n.Path())
	}
	if !common.IsValidNodeName(child.Name) {
		return fmt.Errorf("invalid name %q", child.Name)
	}
	if n.Child(child.Name) != nil {
		return fmt.Errorf("%w: %s", ErrNameCollision, child.Name)
	}
	child.parent = n
	n.Children = append(n.Children, child)
	return nil
}

// InsertFile adds a file with owned content to the directory n. It fails
// with ErrNameCollision if a sibling already carries the name.
func (n *Node) InsertFile(name string, data []byte) (*Node, error) {
	if int64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, name, len(data))
	}
	file := &Node{Kind: FileNode, Name: name, Source: OwnedSource{Data: data}}
	if err := n.attach(file); err != nil {
		return nil, err
	}
	return file, nil
}

// InsertBorrowedFile adds a file whose content is a range of the source
// image. Used by the FST decoder.
func (n *Node) InsertBorrowedFile(name string, offset, length uint32) (*Node, error) {
	file := &Node{Kind: FileNode, Name: name, Source: BorrowedSource{Offset: offset, Length: length}}
	if err := n.attach(file); err != nil {
		return nil, err
	}
	return file, nil
}

// InsertDir adds an empty subdirectory to the directory n
func (n *Node) InsertDir(name string) (*Node, error) {
	dir := &Node{Kind: DirectoryNode, Name: name}
	if err := n.attach(dir); err != nil {
		return nil, err
	}
	return dir, nil
}

// Remove detaches the node from its parent. The root cannot be removed.
func (n *Node) Remove() error {
	if n.parent == nil {
		return fmt.Errorf("cannot remove the root directory")
	}
	siblings := n.parent.Children
	for i, sibling := range siblings {
		if sibling == n {
			n.parent.Children = append(siblings[:i], siblings[i+1:]...)
			n.parent = nil
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, n.Name)
}

// Rename changes the node's name. It fails with ErrNameCollision if a
// sibling already carries the new name; the tree is left unchanged.
func (n *Node) Rename(name string) error {
	if n.parent == nil {
		return fmt.Errorf("cannot rename the root directory")
	}
	if !common.IsValidNodeName(name) {
		return fmt.Errorf("invalid name %q", name)
	}
	if name == n.Name {
		return nil
	}
	if n.parent.Child(name) != nil {
		return fmt.Errorf("%w: %s", ErrNameCollision, name)
	}
	n.Name = name
	return nil
}

// ReplaceContent swaps the file's content source for an owned buffer.
// Disc offsets are not touched; layout is entirely a rebuild concern.
func (n *Node) ReplaceContent(data []byte) error {
	if n.Kind != FileNode {
		return fmt.Errorf("%s is not a file", n.Path())
	}
	if int64(len(data)) > math.MaxUint32 {
		return fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, n.Path(), len(data))
	}
	n.Source = OwnedSource{Data: data}
	return nil
}

// Walk visits the subtree rooted at n in pre-order (a node before its
// children, children in insertion order). Returning an error from fn
// stops the walk.
func (n *Node) Walk(fn func(node *Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	if n.Kind == DirectoryNode {
		for _, child := range n.Children {
			if err := child.Walk(fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// CountEntries returns the number of FST entries the subtree encodes to,
// including n itself
func (n *Node) CountEntries() int {
	count := 0
	n.Walk(func(node *Node) error {
		count++
		return nil
	})
	return count
}

// CountFiles returns the number of file nodes in the subtree
func (n *Node) CountFiles() int {
	count := 0
	n.Walk(func(node *Node) error {
		if node.Kind == FileNode {
			count++
		}
		return nil
	})
	return count
}
