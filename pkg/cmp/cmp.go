package cmp

// predicator saying elements from two collections are equivalent or not.
type BiPredicator[S, T any] func(S, T) bool

func EqEq[T comparable](a, b T) bool {
	return a == b
}

// Equaler is something having Equal method against its own type.
type Equaler[T any] interface {
	Equal(T) bool
}

// EqualEqualer compares two Equalers.
func EqualEqualer[T Equaler[T]](a, b T) bool {
	return a.Equal(b)
}

// check 2 slices have same elements in same order.
func SliceEq[T comparable](a []T, b []T) bool {
	return SliceEqWith(a, b, EqEq[T])
}

// check 2 slices have equivalent elements in same order.
//
// args:
//   - a, b: slices to be compared
//   - pred: returns true if elements at the same index are equivalent
func SliceEqWith[S any, T any](a []S, b []T, pred BiPredicator[S, T]) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !pred(a[nth], b[nth]) {
			return false
		}
	}
	return true
}

// check 2 slices have same content, ignoring ordering.
//
// In other words, this function answers equality of two bags (or multi-sets).
//
// example:
//
//	SliceContentEq([]string{"a", "b"}, []string{"b", "a"})       // ==> true
//	SliceContentEq([]string{"a", "b"}, []string{"b", "a", "z"})  // ==> false
//	SliceContentEq([]string{"a", "a", "b"}, []string{"a", "b"})  // ==> false. left has 2 "a"s.
func SliceContentEq[T comparable](a, b []T) bool {
	return SliceContentEqWith(a, b, EqEq[T])
}

// check 2 slices have equivalent content, ignoring ordering.
//
// args:
//   - a, b: slices to be compared
//   - equiv: returns true if an element from a and an element from b are equivalent
//
// return:
//
//	true when a and b are equivalent as bags. otherwise, false.
func SliceContentEqWith[S, T any](a []S, b []T, equiv BiPredicator[S, T]) bool {
	if len(a) != len(b) {
		return false
	}

	rest := make(map[int]*T, len(b))
	for i := range b {
		rest[i] = &b[i]
	}

NEXT_A:
	for _, va := range a {
		for k, vb := range rest {
			if equiv(va, *vb) {
				delete(rest, k)
				continue NEXT_A
			}
		}
		return false
	}

	return len(rest) == 0
}

// check 2 maps have same keys and equivalent values.
func MapEqWith[K comparable, S, T any](a map[K]S, b map[K]T, equiv BiPredicator[S, T]) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !equiv(va, vb) {
			return false
		}
	}
	return true
}
