package accessor

import (
	"cmp"
	"iter"
	"slices"
)

// Positionable is a tree node ordered by declared position.
type Positionable[P any] interface {
	comparable
	Position() int
	Level() int
	Parent() P
}

// ComparePositions orders two nodes of the same tree. An ancestor comes
// before its descendants; other nodes are ordered by the positions of their
// ancestors just below the closest common ancestor.
func ComparePositions[P Positionable[P]](a, b P) int {
	var none P
	advance := 0
	for a.Level() != b.Level() {
		if a.Level() > b.Level() {
			if a.Parent() == none {
				break
			}
			a = a.Parent()
			advance++
		} else {
			if b.Parent() == none {
				break
			}
			b = b.Parent()
			advance--
		}
	}
	if a == b && advance != 0 {
		return advance
	}
	for a.Parent() != b.Parent() && a.Parent() != none && b.Parent() != none {
		a = a.Parent()
		b = b.Parent()
	}
	return cmp.Compare(a.Position(), b.Position())
}

// Compare is ComparePositions for accessors.
func Compare(a, b *Accessor) int {
	return ComparePositions(a, b)
}

// Sorted collects seq and sorts it with Compare. Equal nodes keep their
// order.
func Sorted(seq iter.Seq[*Accessor]) []*Accessor {
	out := slices.Collect(seq)
	slices.SortStableFunc(out, Compare)
	return out
}
