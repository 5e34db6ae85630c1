package domain

// CategoryNode is one node of the category tree fetched from the catalog.
// Children are owned by their parent; the tree has no back-references and
// is treated as immutable for the lifetime of a request.
type CategoryNode struct {
	UID          string          `json:"uid"`
	URLKey       string          `json:"url_key"`
	URLPath      string          `json:"url_path"`
	Name         string          `json:"name"`
	ProductCount int             `json:"product_count"`
	Children     []*CategoryNode `json:"children,omitempty"`
}

// Walk visits the node and its descendants in pre-order (node before
// children, children in slice order). Returning false from fn stops the walk.
// Walk reports whether the traversal ran to completion.
func (n *CategoryNode) Walk(fn func(*CategoryNode) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// FindByURLKey searches the tree depth-first in pre-order and returns the
// first node whose URL key equals key.
//
// When the same URL key exists in more than one branch the node reached
// first wins. The catalog is not expected to contain duplicates, so this is
// the de facto tie-break rather than a guarded case.
func FindByURLKey(tree []*CategoryNode, key string) (*CategoryNode, bool) {
	var found *CategoryNode
	for _, root := range tree {
		completed := root.Walk(func(n *CategoryNode) bool {
			if n.URLKey == key {
				found = n
				return false
			}
			return true
		})
		if !completed {
			return found, true
		}
	}
	return nil, false
}

// CollectSubtreeUIDs returns the uid of node followed by the uids of all of
// its descendants, in pre-order.
func CollectSubtreeUIDs(node *CategoryNode) []string {
	if node == nil {
		return nil
	}
	uids := make([]string, 0, 1+len(node.Children))
	node.Walk(func(n *CategoryNode) bool {
		uids = append(uids, n.UID)
		return true
	})
	return uids
}
