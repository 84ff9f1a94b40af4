package services

import "github.com/swiftex-sim/swiftex/internal/domain/vo"

// archiveNode is one node of the id-ordered binary search tree holding
// terminal parcels (spec §4.5: "Archive insertion is into a binary search
// tree keyed by parcel id to keep history output ordered by id").
type archiveNode struct {
	parcel *vo.Parcel
	left   *archiveNode
	right  *archiveNode
}

// Archive retains delivered/returned parcels permanently, ordered by id.
type Archive struct {
	root  *archiveNode
	count int
}

// NewArchive constructs an empty Archive.
func NewArchive() *Archive {
	return &Archive{}
}

// Insert adds a parcel to the archive.
func (a *Archive) Insert(p *vo.Parcel) {
	a.root = insertNode(a.root, p)
	a.count++
}

func insertNode(n *archiveNode, p *vo.Parcel) *archiveNode {
	if n == nil {
		return &archiveNode{parcel: p}
	}
	if p.ID() < n.parcel.ID() {
		n.left = insertNode(n.left, p)
	} else {
		n.right = insertNode(n.right, p)
	}

	return n
}

// Len returns the number of archived parcels.
func (a *Archive) Len() int {
	return a.count
}

// InOrder returns every archived parcel ordered by id.
func (a *Archive) InOrder() []*vo.Parcel {
	out := make([]*vo.Parcel, 0, a.count)
	var walk func(*archiveNode)
	walk = func(n *archiveNode) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.parcel)
		walk(n.right)
	}
	walk(a.root)

	return out
}
