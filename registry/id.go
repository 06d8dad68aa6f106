package registry

import (
	"fmt"
	"strconv"
)

// ItemId encodes both the spawn sequence (upper 32 bits) and a random suffix (lower 32 bits).
// The sequence orders ids by spawn time and never restarts for the life of a registry;
// the suffix keeps ids from different registries (or a wrapped sequence) apart.
type ItemId uint64

// NewItemId creates an ItemId from a spawn sequence and a random suffix
func NewItemId(seq uint32, suffix uint32) ItemId {
	return ItemId(uint64(seq)<<32 | uint64(suffix))
}

// Seq extracts the spawn sequence from the item ID
func (id ItemId) Seq() uint32 {
	return uint32(id >> 32)
}

// Suffix extracts the random suffix from the item ID
func (id ItemId) Suffix() uint32 {
	return uint32(id & 0xFFFFFFFF)
}

// String renders the id as fixed-width hex, the form hosts pass back on hits.
func (id ItemId) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// ParseItemId parses the hex form produced by String.
func ParseItemId(s string) (ItemId, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, err
	}
	return ItemId(v), nil
}
