package treeconf

// nodeKind identifies the shape a node currently holds.
type nodeKind int

const (
	// kindVirtual marks a node that has never been written to. Virtual
	// nodes are not attached to their parent and report IsVirtual.
	kindVirtual nodeKind = iota
	// kindScalar holds a single value, possibly an explicit nil.
	kindScalar
	// kindList holds an ordered sequence of child nodes.
	kindList
	// kindMap holds an ordered set of string-keyed child nodes.
	kindMap
)

func (k nodeKind) String() string {
	switch k {
	case kindVirtual:
		return "virtual"
	case kindScalar:
		return "scalar"
	case kindList:
		return "list"
	case kindMap:
		return "map"
	default:
		return "unknown"
	}
}
