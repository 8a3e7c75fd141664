package audit

// BidirectionalIterator steps through items with support for revisiting the
// previous one, which is what lets an operator back up during an audit.
type BidirectionalIterator[T any] struct {
	items    []T
	index    int
	stepBack bool
}

// NewIterator creates an iterator positioned before the first item.
func NewIterator[T any](items []T) *BidirectionalIterator[T] {
	return &BidirectionalIterator[T]{items: items, index: -1}
}

// Next advances (or steps back, if requested) and returns the current item.
func (it *BidirectionalIterator[T]) Next() (T, bool) {
	if it.stepBack {
		it.stepBack = false
		it.index--
	} else {
		it.index++
	}
	if it.index < 0 || it.index >= len(it.items) {
		var zero T
		return zero, false
	}
	return it.items[it.index], true
}

// Index returns the zero-based position of the current item.
func (it *BidirectionalIterator[T]) Index() int { return it.index }

// Len returns the total number of items.
func (it *BidirectionalIterator[T]) Len() int { return len(it.items) }

// CanStepBack reports whether a previous item exists.
func (it *BidirectionalIterator[T]) CanStepBack() bool { return it.index > 0 }

// StepBackOnNextIteration makes the next call to Next return the previous
// item instead of advancing.
func (it *BidirectionalIterator[T]) StepBackOnNextIteration() {
	if it.CanStepBack() {
		it.stepBack = true
	}
}
