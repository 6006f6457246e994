package sequence

import "iter"

// EdgesCycle yields every element paired with its successor, wrapping the
// last element back to the first. A single element yields (v, v); an empty
// slice yields nothing.
func EdgesCycle[T any](data []T) iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		n := len(data)
		for i := 0; i < n; i++ {
			if !yield(data[i], data[(i+1)%n]) {
				return
			}
		}
	}
}

// Edges yields consecutive pairs without wrapping, as for an open path.
func Edges[T any](data []T) iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		for i := 0; i+1 < len(data); i++ {
			if !yield(data[i], data[i+1]) {
				return
			}
		}
	}
}

// Pair is a materialized element of a Seq2.
type Pair[T any] struct {
	First  T
	Second T
}

// CollectPairs exhausts seq into a slice.
func CollectPairs[T any](seq iter.Seq2[T, T]) []Pair[T] {
	var out []Pair[T]
	for a, b := range seq {
		out = append(out, Pair[T]{First: a, Second: b})
	}
	return out
}

// Chain2 concatenates pair sequences.
func Chain2[K, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for k, v := range seq {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}
