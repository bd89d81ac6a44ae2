package collection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelizeAndCollectPreservesOrder(t *testing.T) {
	d := Parallelize([]int{1, 2, 3, 4, 5, 6, 7}, 3)
	assert.Equal(t, 3, d.NumPartitions())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, d.Collect())
}

func TestTake(t *testing.T) {
	d := Parallelize([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, []int{1, 2, 3}, d.Take(3))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, d.Take(100))
}

func TestSortByKey(t *testing.T) {
	d := Parallelize([]int{5, 3, 1, 4, 2}, 3)
	sorted := d.SortByKey(func(a, b int) bool { return a < b })
	assert.Equal(t, []int{1, 2, 3, 4, 5}, sorted.Collect())
}

func TestMapPartitionsWithIndex(t *testing.T) {
	d := Parallelize([]int{1, 2, 3, 4}, 2)
	out, err := MapPartitionsWithIndex(context.Background(), d, 2, func(_ context.Context, idx int, in []int) ([]int, error) {
		doubled := make([]int, len(in))
		for i, v := range in {
			doubled[i] = v * 10 * (idx + 1)
		}
		return doubled, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, out.NumPartitions())
	assert.ElementsMatch(t, []int{10, 20, 60, 80}, out.Collect())
}

func TestPartitionByRehashes(t *testing.T) {
	d := Parallelize([]int{1, 2, 3, 4, 5, 6}, 1)
	out, err := PartitionBy(d, 3, func(v int) (int, error) { return v % 3, nil })
	assert.NoError(t, err)
	assert.Equal(t, 3, out.NumPartitions())
	assert.ElementsMatch(t, []int{3, 6}, out.Partition(0))
	assert.ElementsMatch(t, []int{1, 4}, out.Partition(1))
	assert.ElementsMatch(t, []int{2, 5}, out.Partition(2))
}

func TestAggregateSumsAcrossPartitions(t *testing.T) {
	d := Parallelize([]int{1, 2, 3, 4, 5, 6}, 3)
	sum := Aggregate(d, 0, func(acc, v int) int { return acc + v }, func(a, b int) int { return a + b })
	assert.Equal(t, 21, sum)
}

func TestBroadcastValue(t *testing.T) {
	b := NewBroadcast([]string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, b.Value())
}

func TestIteratorHonorsCancellation(t *testing.T) {
	d := Parallelize([]int{1, 2, 3}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	it := d.Iterator(ctx, 0)

	v, ok, err := it.Next()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	cancel()
	_, ok, err = it.Next()
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestIteratorDrainsToEnd(t *testing.T) {
	d := Parallelize([]int{1, 2}, 1)
	it := d.Iterator(context.Background(), 0)
	var got []int
	for {
		v, ok, err := it.Next()
		assert.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
}
