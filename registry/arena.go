package registry

import "iter"

const (
	blockSize = 64
)

// arena stores values of type T in fixed-size blocks. Deleted slots are
// recycled, so slot indices are stable for the lifetime of a value.
type arena[T any] struct {
	blocks    [][blockSize]T
	filled    [][blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

// Append adds a value to the arena and returns its slot.
func (a *arena[T]) Append(item T) int {
	a.count++

	if len(a.freeSlots) > 0 {
		index := a.freeSlots[len(a.freeSlots)-1]
		a.freeSlots = a.freeSlots[:len(a.freeSlots)-1]

		blockIdx := index / blockSize
		slotIdx := index % blockSize

		a.blocks[blockIdx][slotIdx] = item
		a.filled[blockIdx][slotIdx] = true
		return index
	}

	index := a.nextIndex
	a.nextIndex++

	blockIdx := index / blockSize
	slotIdx := index % blockSize

	if blockIdx >= len(a.blocks) {
		a.blocks = append(a.blocks, [blockSize]T{})
		a.filled = append(a.filled, [blockSize]bool{})
	}

	a.blocks[blockIdx][slotIdx] = item
	a.filled[blockIdx][slotIdx] = true
	return index
}

// Get returns a pointer to the value in the slot, or nil if the slot is empty.
func (a *arena[T]) Get(index int) *T {
	if !a.Has(index) {
		return nil
	}
	return &a.blocks[index/blockSize][index%blockSize]
}

// Delete empties the slot. It reports false if the slot was already empty.
func (a *arena[T]) Delete(index int) bool {
	if !a.Has(index) {
		return false
	}

	blockIdx := index / blockSize
	slotIdx := index % blockSize

	a.filled[blockIdx][slotIdx] = false
	var zero T
	a.blocks[blockIdx][slotIdx] = zero
	a.freeSlots = append(a.freeSlots, index)
	a.count--
	return true
}

// Has checks if a value exists in the slot.
func (a *arena[T]) Has(index int) bool {
	if index < 0 || index >= a.nextIndex {
		return false
	}

	blockIdx := index / blockSize
	if blockIdx >= len(a.filled) {
		return false
	}

	return a.filled[blockIdx][index%blockSize]
}

// Len returns the number of occupied slots.
func (a *arena[T]) Len() int {
	return a.count
}

// Reset drops every value and releases all blocks but the first.
func (a *arena[T]) Reset() {
	a.blocks = make([][blockSize]T, 1)
	a.filled = make([][blockSize]bool, 1)
	a.freeSlots = nil
	a.nextIndex = 0
	a.count = 0
}

// Compact moves values down to remove empty slots and returns the old->new slot mapping.
func (a *arena[T]) Compact() map[int]int {
	indexMap := make(map[int]int, a.count)
	if a.count == 0 {
		a.Reset()
		return indexMap
	}

	numBlocks := (a.count + blockSize - 1) / blockSize
	newBlocks := make([][blockSize]T, numBlocks)
	newFilled := make([][blockSize]bool, numBlocks)

	writePos := 0
	for readIdx := range a.Iter() {
		indexMap[readIdx] = writePos
		newBlocks[writePos/blockSize][writePos%blockSize] = a.blocks[readIdx/blockSize][readIdx%blockSize]
		newFilled[writePos/blockSize][writePos%blockSize] = true
		writePos++
	}

	a.blocks = newBlocks
	a.filled = newFilled
	a.freeSlots = nil
	a.nextIndex = writePos

	return indexMap
}

// Iter yields occupied slots in ascending order.
func (a *arena[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < a.nextIndex; i++ {
			blockIdx := i / blockSize
			if blockIdx >= len(a.filled) {
				return
			}
			if a.filled[blockIdx][i%blockSize] {
				if !yield(i) {
					return
				}
			}
		}
	}
}
