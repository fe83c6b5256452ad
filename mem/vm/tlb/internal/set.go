// Package internal provides the definition required for defining TLB.
package internal

import "log"

// An Entry is one slot of a TLB table.
type Entry struct {
	// Tag is the full virtual address that was stored, not only the bits
	// above the index.
	Tag   uint32
	PAddr uint32
	Valid bool
}

// A Table holds the translation entries of a TLB.
type Table interface {
	// Lookup returns the entry holding vAddr. hit is false if the slot that
	// vAddr maps to is invalid or holds another address.
	Lookup(vAddr uint32) (entry Entry, hit bool)

	// Update overwrites the slot that vAddr maps to.
	Update(vAddr, pAddr uint32)

	// Index returns the slot that vAddr maps to.
	Index(vAddr uint32) int

	// Capacity returns the number of slots.
	Capacity() int

	// Reset invalidates all the slots.
	Reset()

	// Entries returns a copy of all the slots.
	Entries() []Entry
}

// NewDirectMappedTable creates a table in which every address maps to exactly
// one slot. The log2BlockSize low bits of an address are ignored when forming
// the slot index.
func NewDirectMappedTable(capacity int, log2BlockSize uint) Table {
	if capacity <= 0 {
		log.Panicf("TLB capacity must be positive, got %d", capacity)
	}

	t := &directMappedTable{
		entries:    make([]Entry, capacity),
		offsetBits: log2BlockSize,
	}

	return t
}

type directMappedTable struct {
	entries    []Entry
	offsetBits uint
}

func (t *directMappedTable) Index(vAddr uint32) int {
	return int(uint64(vAddr>>t.offsetBits) % uint64(len(t.entries)))
}

func (t *directMappedTable) Lookup(vAddr uint32) (Entry, bool) {
	entry := t.entries[t.Index(vAddr)]
	if !entry.Valid || entry.Tag != vAddr {
		return Entry{}, false
	}

	return entry, true
}

func (t *directMappedTable) Update(vAddr, pAddr uint32) {
	t.entries[t.Index(vAddr)] = Entry{
		Tag:   vAddr,
		PAddr: pAddr,
		Valid: true,
	}
}

func (t *directMappedTable) Capacity() int {
	return len(t.entries)
}

func (t *directMappedTable) Reset() {
	clear(t.entries)
}

func (t *directMappedTable) Entries() []Entry {
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)

	return entries
}
