// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package cidr

// MergeCase tells which rule MergeWithCase applied.
type MergeCase uint8

const (
	// MergeNone means no single block covers exactly both inputs.
	MergeNone MergeCase = iota
	// MergeIdentical means both inputs are the same block.
	MergeIdentical
	// MergeSuperset means one input covers the other.
	MergeSuperset
	// MergeSiblings means the inputs are the two halves of their parent.
	MergeSiblings
)

func (c MergeCase) String() string {
	switch c {
	case MergeNone:
		return "none"
	case MergeIdentical:
		return "identical"
	case MergeSuperset:
		return "superset"
	case MergeSiblings:
		return "siblings"
	}
	return "unknown"
}

// Merge returns the single block covering exactly the addresses of a and
// b, if there is one. That is the case when a and b are the same block,
// when one contains the other, or when they are the lower and upper half
// of the same parent block. Merge is symmetric.
func Merge(a, b Block) (Block, bool) {
	m, c := MergeWithCase(a, b)
	return m, c != MergeNone
}

// MergeWithCase is Merge, additionally reporting which rule produced the
// result. The returned block is the zero Block for MergeNone.
func MergeWithCase(a, b Block) (Block, MergeCase) {
	if !a.IsValid() || !b.IsValid() || a.Family() != b.Family() {
		return Block{}, MergeNone
	}
	if a == b {
		return a, MergeIdentical
	}
	if a.Covers(b) {
		return a, MergeSuperset
	}
	if b.Covers(a) {
		return b, MergeSuperset
	}
	if a.bits == b.bits {
		// a != b here, so equal parents mean the bases differ only in
		// the last prefix bit.
		pa, ok := a.Parent()
		if ok {
			if pb, _ := b.Parent(); pa == pb {
				return pa, MergeSiblings
			}
		}
	}
	return Block{}, MergeNone
}
