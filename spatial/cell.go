package spatial

// Cell is one bucket of a uniform grid over a universe: a fixed range
// plus the accumulated extent of whatever objects have been folded
// into it (spec.md §3). extent ⊇ range always holds once any object
// has contributed; for a freshly built empty cell, extent equals
// range exactly (an empty accumulation has nothing to extend with).
type Cell struct {
	ID     uint64
	Range  NRectRange
	Extent NRectRange
}

// CellBuilder accumulates the extent of objects whose centroid falls
// inside a cell's range, without mutating a shared Cell value mid-fold
// (spec.md §9 "Global mutable extent in Cell" design note: the source
// mutates extent in place during histogram construction; this module
// instead threads an explicit builder and only emits an immutable Cell
// at Build()).
type CellBuilder struct {
	id         uint64
	rng        NRectRange
	extent     NRectRange
	count      uint64
	hasExtent  bool
	pointsOnly bool
}

// NewCellBuilder starts a builder for the cell with the given id and
// range. pointsOnly, when true, keeps extent==range throughout (spec.md
// §3: "For point-only datasets extent == range is maintained to save
// work").
func NewCellBuilder(id uint64, rng NRectRange, pointsOnly bool) *CellBuilder {
	return &CellBuilder{id: id, rng: rng, extent: rng, pointsOnly: pointsOnly}
}

// Add folds one object's envelope into the builder, incrementing count.
func (b *CellBuilder) Add(envelope NRectRange) {
	b.count++
	if b.pointsOnly {
		return
	}
	if !b.hasExtent {
		b.extent = envelope
		b.hasExtent = true
		return
	}
	b.extent = b.extent.Extend(envelope)
}

// Count returns the number of objects folded into the builder so far.
func (b *CellBuilder) Count() uint64 { return b.count }

// Merge folds another builder's accumulated state into b. Used by
// CellHistogram.Merge (spec.md §4.1), which must be associative and
// commutative.
func (b *CellBuilder) Merge(other *CellBuilder) {
	b.count += other.count
	if b.pointsOnly {
		return
	}
	if !other.hasExtent {
		return
	}
	if !b.hasExtent {
		b.extent = other.extent
		b.hasExtent = true
		return
	}
	b.extent = b.extent.Extend(other.extent)
}

// Build emits the immutable Cell.
func (b *CellBuilder) Build() Cell {
	extent := b.rng
	if b.hasExtent && !b.pointsOnly {
		extent = b.rng.Extend(b.extent)
	}
	return Cell{ID: b.id, Range: b.rng, Extent: extent}
}
