// Package collection provides the minimal in-memory realization of
// the bulk-parallel collection collaborator spec.md §6 specifies as an
// external dependency. spec.md declares the runtime itself out of
// scope; this package exists only so the partitioning/indexing/
// operator core can be built and tested against a real (if minimal)
// collaborator instead of a mock, per SPEC_FULL.md §4.9.
//
// Partition fan-out uses github.com/grailbio/base/traverse.Each, the
// same per-shard worker-pool idiom pileup/snp/pileup.go uses to spread
// BAM shards across goroutines, and reports failures through
// github.com/grailbio/base/log the same way.
package collection

import (
	"context"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"

	"github.com/grailbio/stark/sterrors"
)

// Dataset is a partitioned in-memory collection of T.
type Dataset[T any] struct {
	partitions [][]T
}

// Parallelize splits vec into numPartitions roughly-equal partitions,
// preserving element order within each partition.
func Parallelize[T any](vec []T, numPartitions int) *Dataset[T] {
	if numPartitions <= 0 {
		numPartitions = 1
	}
	partitions := make([][]T, numPartitions)
	n := len(vec)
	for i := 0; i < numPartitions; i++ {
		start := (i * n) / numPartitions
		end := ((i + 1) * n) / numPartitions
		partitions[i] = vec[start:end]
	}
	return &Dataset[T]{partitions: partitions}
}

// FromPartitions wraps an already-partitioned slice-of-slices
// directly, for callers (like partition.Partitioner users) that
// produce partitions themselves rather than starting from a flat
// vector.
func FromPartitions[T any](partitions [][]T) *Dataset[T] {
	return &Dataset[T]{partitions: partitions}
}

// NumPartitions returns the number of partitions.
func (d *Dataset[T]) NumPartitions() int { return len(d.partitions) }

// Partition returns the raw elements of partition idx, for callers
// that need direct access (e.g. an operator building a per-partition
// index). The returned slice must not be mutated.
func (d *Dataset[T]) Partition(idx int) []T { return d.partitions[idx] }

// Iterator returns a cancellable element stream over partition idx,
// matching spec.md §6's iterator(partition, context) contract: Next
// checks ctx.Err() between emissions so a cancelled context surfaces
// as InterruptedError instead of silently draining the partition.
type Iterator[T any] struct {
	ctx   context.Context
	items []T
	pos   int
}

// Iterator builds an Iterator over partition idx honoring ctx.
func (d *Dataset[T]) Iterator(ctx context.Context, idx int) *Iterator[T] {
	return &Iterator[T]{ctx: ctx, items: d.partitions[idx]}
}

// Next returns the next element, ok=false at end of partition, or an
// InterruptedError if ctx was cancelled.
func (it *Iterator[T]) Next() (v T, ok bool, err error) {
	if err := it.ctx.Err(); err != nil {
		return v, false, sterrors.Interruptedf("collection.Iterator.Next", "%v", err)
	}
	if it.pos >= len(it.items) {
		return v, false, nil
	}
	v = it.items[it.pos]
	it.pos++
	return v, true, nil
}

// Collect flattens all partitions into a single slice, in partition
// order.
func (d *Dataset[T]) Collect() []T {
	total := 0
	for _, p := range d.partitions {
		total += len(p)
	}
	out := make([]T, 0, total)
	for _, p := range d.partitions {
		out = append(out, p...)
	}
	return out
}

// Take returns the first k elements in partition order.
func (d *Dataset[T]) Take(k int) []T {
	out := make([]T, 0, k)
	for _, p := range d.partitions {
		for _, v := range p {
			if len(out) == k {
				return out
			}
			out = append(out, v)
		}
	}
	return out
}

// SortByKey returns a new single-partition Dataset with all elements
// sorted by less.
func (d *Dataset[T]) SortByKey(less func(a, b T) bool) *Dataset[T] {
	all := d.Collect()
	sortSlice(all, less)
	return &Dataset[T]{partitions: [][]T{all}}
}

func sortSlice[T any](s []T, less func(a, b T) bool) {
	// Insertion sort would be too slow for real datasets; use a small
	// hand-rolled generic quicksort (Lomuto partition, last element as
	// pivot) that takes less as a closure instead of a sort.Interface.
	n := len(s)
	if n < 2 {
		return
	}
	quickSort(s, 0, n-1, less)
}

func quickSort[T any](s []T, lo, hi int, less func(a, b T) bool) {
	for lo < hi {
		p := partition(s, lo, hi, less)
		if p-lo < hi-p {
			quickSort(s, lo, p-1, less)
			lo = p + 1
		} else {
			quickSort(s, p+1, hi, less)
			hi = p - 1
		}
	}
}

func partition[T any](s []T, lo, hi int, less func(a, b T) bool) int {
	pivot := s[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if less(s[j], pivot) {
			s[i], s[j] = s[j], s[i]
			i++
		}
	}
	s[i], s[hi] = s[hi], s[i]
	return i
}

// Broadcast models spec.md §6's broadcast(v): a read-only value made
// available to every partition task without re-sending it per task.
type Broadcast[T any] struct{ v T }

// NewBroadcast wraps v for broadcast.
func NewBroadcast[T any](v T) *Broadcast[T] { return &Broadcast[T]{v: v} }

// Value returns the broadcast value.
func (b *Broadcast[T]) Value() T { return b.v }

// MapPartitionsWithIndex runs f over every partition concurrently via
// traverse.Each(parallelism, ...), the same per-shard fan-out idiom
// pileup/snp/pileup.go uses, and reassembles the per-partition results
// into a new Dataset. f receives the stable partition index spec.md
// §6 requires.
func MapPartitionsWithIndex[T, U any](ctx context.Context, d *Dataset[T], parallelism int, f func(ctx context.Context, idx int, in []T) ([]U, error)) (*Dataset[U], error) {
	if parallelism <= 0 {
		parallelism = d.NumPartitions()
	}
	if log.At(log.Debug) {
		log.Debug.Printf("collection: mapping %d partitions at parallelism %d", d.NumPartitions(), parallelism)
	}
	out := make([][]U, d.NumPartitions())
	err := traverse.Each(parallelism, func(idx int) error {
		res, err := f(ctx, idx, d.partitions[idx])
		if err != nil {
			return err
		}
		out[idx] = res
		return nil
	})
	if err != nil {
		log.Error.Printf("collection: MapPartitionsWithIndex failed: %v", err)
		return nil, err
	}
	return &Dataset[U]{partitions: out}, nil
}

// MapPartitions is MapPartitionsWithIndex without the index.
func MapPartitions[T, U any](ctx context.Context, d *Dataset[T], parallelism int, f func(ctx context.Context, in []T) ([]U, error)) (*Dataset[U], error) {
	return MapPartitionsWithIndex(ctx, d, parallelism, func(ctx context.Context, _ int, in []T) ([]U, error) {
		return f(ctx, in)
	})
}

// PartitionBy rehashes every element of d into numPartitions new
// buckets via getPartitionID, matching spec.md §6's
// partitionBy(partitioner) contract.
func PartitionBy[T any](d *Dataset[T], numPartitions int, getPartitionID func(T) (int, error)) (*Dataset[T], error) {
	buckets := make([][]T, numPartitions)
	for _, part := range d.partitions {
		for _, v := range part {
			id, err := getPartitionID(v)
			if err != nil {
				return nil, err
			}
			if id < 0 || id >= numPartitions {
				return nil, sterrors.Domainf("collection.PartitionBy", "partition id %d out of range [0,%d)", id, numPartitions)
			}
			buckets[id] = append(buckets[id], v)
		}
	}
	return &Dataset[T]{partitions: buckets}, nil
}

// Aggregate folds d into a single U via a sequential per-partition
// fold (seq) followed by a pairwise tree reduction of partition
// results (comb), matching spec.md §6's aggregate(zero)(seq, comb)
// contract; comb must be associative and commutative, exactly the
// property CellHistogram.Merge already guarantees.
func Aggregate[T, U any](d *Dataset[T], zero U, seq func(acc U, v T) U, comb func(a, b U) U) U {
	partials := make([]U, d.NumPartitions())
	for i, part := range d.partitions {
		acc := zero
		for _, v := range part {
			acc = seq(acc, v)
		}
		partials[i] = acc
	}
	return treeReduce(partials, zero, comb)
}

func treeReduce[U any](vals []U, zero U, comb func(a, b U) U) U {
	if len(vals) == 0 {
		return zero
	}
	for len(vals) > 1 {
		next := make([]U, 0, (len(vals)+1)/2)
		for i := 0; i < len(vals); i += 2 {
			if i+1 < len(vals) {
				next = append(next, comb(vals[i], vals[i+1]))
			} else {
				next = append(next, vals[i])
			}
		}
		vals = next
	}
	return vals[0]
}
