package treeconf

import (
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Node is the configuration tree contract the mapping engine works against.
// A node holds a scalar value, an ordered list of children, an ordered
// string-keyed map of children, or nothing at all (a virtual node).
//
// Virtual nodes are placeholders: navigating to a missing child with Child
// returns a virtual node that only becomes part of the tree once something
// is written to it or beneath it.
type Node interface {
	// Value returns the raw value held by this node. Scalar nodes return
	// their value, list nodes a []any of child values, map nodes a
	// map[string]any of child values. Virtual nodes return nil.
	Value() any

	// SetValue replaces this node's content. Passing nil clears the node
	// to an explicit null (the node stays attached). A map[string]any or
	// []any value materializes map or list children recursively.
	SetValue(value any)

	// IsVirtual reports whether this node has never been written to.
	IsVirtual() bool

	// Child returns the node at the given map key, creating a virtual
	// placeholder if no such child exists. The placeholder does not
	// attach to this node until written.
	Child(key string) Node

	// HasListChildren reports whether the node holds list children.
	HasListChildren() bool

	// HasMapChildren reports whether the node holds map children.
	HasMapChildren() bool

	// ListChildren returns the node's list children in order. The slice
	// is empty for non-list nodes.
	ListChildren() []Node

	// MapChildren returns the node's map children in insertion order.
	MapChildren() []MapEntry

	// AppendChild adds and returns a new trailing list child, converting
	// the node to a list if it is not one already.
	AppendChild() Node

	// Options returns the options this node inherited from its root.
	Options() *Options
}

// CommentedNode is implemented by node variants able to carry a comment
// alongside their value, for formats that support it.
type CommentedNode interface {
	Node

	// Comment returns the node's comment, empty if none is set.
	Comment() string

	// SetComment replaces the node's comment.
	SetComment(comment string)

	// SetCommentIfAbsent sets the comment only when the node has none,
	// preserving comments already present.
	SetCommentIfAbsent(comment string)
}

// MapEntry is one key/node pair of a map-shaped node.
type MapEntry struct {
	Key  string
	Node Node
}

// NewNode creates a detached virtual root node carrying the given options.
// A nil opts uses DefaultOptions.
func NewNode(opts *Options) Node {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &treeNode{opts: opts}
}

// treeNode is the default Node implementation. It is comment-capable.
type treeNode struct {
	opts    *Options
	parent  *treeNode
	key     string
	kind    nodeKind
	value   any
	list    []*treeNode
	entries *orderedmap.OrderedMap[string, *treeNode]
	comment string
}

var _ CommentedNode = (*treeNode)(nil)

func (n *treeNode) Options() *Options { return n.opts }

func (n *treeNode) IsVirtual() bool { return n.kind == kindVirtual }

func (n *treeNode) Value() any {
	switch n.kind {
	case kindScalar:
		return n.value
	case kindList:
		out := make([]any, len(n.list))
		for i, c := range n.list {
			out[i] = c.Value()
		}
		return out
	case kindMap:
		out := make(map[string]any, n.entries.Len())
		for pair := n.entries.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = pair.Value.Value()
		}
		return out
	default:
		return nil
	}
}

func (n *treeNode) SetValue(value any) {
	switch v := value.(type) {
	case nil:
		n.clear()
		n.kind = kindScalar
	case map[string]any:
		n.clear()
		n.kind = kindMap
		n.entries = orderedmap.New[string, *treeNode]()
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := &treeNode{opts: n.opts, parent: n, key: k}
			n.entries.Set(k, child)
			child.SetValue(v[k])
		}
	case []any:
		n.clear()
		n.kind = kindList
		for _, item := range v {
			child := &treeNode{opts: n.opts, parent: n, key: strconv.Itoa(len(n.list))}
			n.list = append(n.list, child)
			child.SetValue(item)
		}
	default:
		n.clear()
		n.kind = kindScalar
		n.value = value
	}
	n.attach()
}

func (n *treeNode) Child(key string) Node {
	if n.kind == kindMap {
		if child, ok := n.entries.Get(key); ok {
			return child
		}
	}
	// Lazily virtual: not registered with the parent until written.
	return &treeNode{opts: n.opts, parent: n, key: key}
}

func (n *treeNode) HasListChildren() bool { return n.kind == kindList }

func (n *treeNode) HasMapChildren() bool { return n.kind == kindMap }

func (n *treeNode) ListChildren() []Node {
	if n.kind != kindList {
		return nil
	}
	out := make([]Node, len(n.list))
	for i, c := range n.list {
		out[i] = c
	}
	return out
}

func (n *treeNode) MapChildren() []MapEntry {
	if n.kind != kindMap {
		return nil
	}
	out := make([]MapEntry, 0, n.entries.Len())
	for pair := n.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, MapEntry{Key: pair.Key, Node: pair.Value})
	}
	return out
}

func (n *treeNode) AppendChild() Node {
	if n.kind != kindList {
		n.clear()
		n.kind = kindList
		n.attach()
	}
	child := &treeNode{opts: n.opts, parent: n, key: strconv.Itoa(len(n.list))}
	n.list = append(n.list, child)
	return child
}

func (n *treeNode) Comment() string { return n.comment }

func (n *treeNode) SetComment(comment string) { n.comment = comment }

func (n *treeNode) SetCommentIfAbsent(comment string) {
	if n.comment == "" {
		n.comment = comment
	}
}

// clear drops any value or children without detaching the node.
func (n *treeNode) clear() {
	n.kind = kindScalar
	n.value = nil
	n.list = nil
	n.entries = nil
}

// attach registers this node with its parent, materializing the parent as a
// map if needed. Attachment cascades up to the root, so writing to a deep
// virtual path concretizes every node along the way.
func (n *treeNode) attach() {
	if n.parent == nil {
		return
	}
	n.parent.attachChild(n)
}

func (n *treeNode) attachChild(child *treeNode) {
	if n.kind == kindList {
		// List children are already registered by AppendChild. A keyed
		// child arriving here is a map-style write, which wins: the node
		// converts to a map and the list content is dropped.
		for _, c := range n.list {
			if c == child {
				return
			}
		}
	}
	if n.kind != kindMap {
		n.clear()
		n.kind = kindMap
		n.entries = orderedmap.New[string, *treeNode]()
		n.attach()
	}
	n.entries.Set(child.key, child)
}
