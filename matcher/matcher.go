// Package matcher is a small combinator calculus for filtering lazy
// sequences of candidate values.
//
// A Matcher maps a reference value to the values it matches. Matchers
// compose with Or, And, Having and That; evaluation happens only when the
// resulting sequence is consumed.
package matcher

import (
	"iter"
	"reflect"
)

// Matcher returns the values matching v.
type Matcher[V, M any] func(v V) iter.Seq[M]

// Predicate is the test side of a matcher, consumed by filtering call sites.
type Predicate[V any] interface {
	Matches(v V) bool
}

// Func adapts a plain function to Predicate.
type Func[V any] func(v V) bool

// Matches calls f.
func (f Func[V]) Matches(v V) bool { return f(v) }

// Match returns the values matching v. A nil matcher matches nothing.
func (m Matcher[V, M]) Match(v V) iter.Seq[M] {
	if m == nil {
		return empty[M]
	}
	return m(v)
}

// Matches reports whether m yields at least one value for v.
func (m Matcher[V, M]) Matches(v V) bool {
	for range m.Match(v) {
		return true
	}
	return false
}

// Or yields the values of m followed by those of other, without duplicates.
func (m Matcher[V, M]) Or(other Matcher[V, M]) Matcher[V, M] {
	return func(v V) iter.Seq[M] {
		return distinct(concat(m.Match(v), other.Match(v)))
	}
}

// And yields the values of other, provided m matches v at all. It is not an
// intersection: the values of m are never yielded.
func (m Matcher[V, M]) And(other Matcher[V, M]) Matcher[V, M] {
	return And(m, other)
}

// Having keeps the values of m that other matches.
func (m Matcher[V, M]) Having(other Matcher[M, M]) Matcher[V, M] {
	return m.That(other.Matches)
}

// Matching is an alias of Having.
func (m Matcher[V, M]) Matching(other Matcher[M, M]) Matcher[V, M] {
	return m.Having(other)
}

// That keeps the values of m satisfying pred.
func (m Matcher[V, M]) That(pred func(M) bool) Matcher[V, M] {
	return func(v V) iter.Seq[M] {
		return Filter(m.Match(v), Func[M](pred))
	}
}

// Where is an alias of That.
func (m Matcher[V, M]) Where(pred func(M) bool) Matcher[V, M] {
	return m.That(pred)
}

// Or combines matchers with different result types.
func Or[V, M, R any](a Matcher[V, M], b Matcher[V, R]) Matcher[V, any] {
	return func(v V) iter.Seq[any] {
		return distinct(concat(widen(a.Match(v)), widen(b.Match(v))))
	}
}

// And yields the values of b when a matches v, and nothing otherwise.
func And[V, M, R any](a Matcher[V, M], b Matcher[V, R]) Matcher[V, R] {
	return func(v V) iter.Seq[R] {
		if !a.Matches(v) {
			return empty[R]
		}
		return b.Match(v)
	}
}

// The matches a value against itself: it yields v when pred holds.
func The[M any](pred func(M) bool) Matcher[M, M] {
	return func(v M) iter.Seq[M] {
		return func(yield func(M) bool) {
			if pred(v) {
				yield(v)
			}
		}
	}
}

// Filter yields the values of seq that p matches.
func Filter[V any](seq iter.Seq[V], p Predicate[V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for v := range seq {
			if p.Matches(v) && !yield(v) {
				return
			}
		}
	}
}

func empty[M any](func(M) bool) {}

func concat[M any](a, b iter.Seq[M]) iter.Seq[M] {
	return func(yield func(M) bool) {
		for v := range a {
			if !yield(v) {
				return
			}
		}
		for v := range b {
			if !yield(v) {
				return
			}
		}
	}
}

func widen[M any](seq iter.Seq[M]) iter.Seq[any] {
	return func(yield func(any) bool) {
		for v := range seq {
			if !yield(v) {
				return
			}
		}
	}
}

// distinct drops repeated values. Comparable values are tracked in a set,
// the rest are compared with reflect.DeepEqual.
func distinct[M any](seq iter.Seq[M]) iter.Seq[M] {
	return func(yield func(M) bool) {
		seen := map[any]struct{}{}
		var others []any
		for v := range seq {
			key := any(v)
			if reflect.ValueOf(key).Comparable() {
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			} else {
				dup := false
				for _, o := range others {
					if reflect.DeepEqual(o, key) {
						dup = true
						break
					}
				}
				if dup {
					continue
				}
				others = append(others, key)
			}
			if !yield(v) {
				return
			}
		}
	}
}
