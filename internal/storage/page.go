package storage

import (
	"encoding/binary"
	"iter"
)

// PageSize is the on-disk size of every page. It is independent of the
// slot size; a page holds PageSize/slotSize whole slots and any
// remainder is dead padding.
const PageSize = 4096

// slotHeaderSize is the length prefix in front of every record.
const slotHeaderSize = 8

// Slot layout
//
//	------------------------------------------------------
//	| length: u64 big endian | payload | zero padding     |
//	------------------------------------------------------
//	|<------ 8 bytes ------->|<-- length -->|             |
//	|<-------------------- slot size ------------------->|
//
// A page is a sequence of such slots followed by zero fill up to
// PageSize. A zero length prefix marks the end of the committed slots
// in a page that was read back from disk.

// Page packs encoded records into fixed size slots within one
// page-sized buffer. Pages are built by sequential appends only; a
// page read back from disk is never modified.
type Page struct {
	slotSize int
	data     []byte
}

func checkSlotSize(slotSize int) error {
	if slotSize <= slotHeaderSize || slotSize > PageSize {
		return ErrInvalidSlotSize
	}
	return nil
}

// NewPage returns an empty page that packs records into slots of
// slotSize bytes.
func NewPage(slotSize int) (*Page, error) {
	if err := checkSlotSize(slotSize); err != nil {
		return nil, err
	}
	return &Page{
		slotSize: slotSize,
		data:     make([]byte, 0, PageSize),
	}, nil
}

// PageFromBytes reconstructs a page from a buffer read back from disk.
// The buffer must be exactly PageSize bytes.
func PageFromBytes(data []byte, slotSize int) (*Page, error) {
	if err := checkSlotSize(slotSize); err != nil {
		return nil, err
	}
	if len(data) != PageSize {
		return nil, ErrSizeMismatch
	}
	return &Page{
		slotSize: slotSize,
		data:     data,
	}, nil
}

// Append packs one encoded record into the next free slot. The bounds
// are checked before the buffer is touched: a payload that does not
// fit its slot is rejected with ErrRecordTooLarge and the page is left
// unchanged.
func (p *Page) Append(payload []byte) error {
	if len(payload) == 0 {
		return ErrEmptyRecord
	}
	if len(payload)+slotHeaderSize > p.slotSize {
		return ErrRecordTooLarge
	}
	if p.AvailableSlots() == 0 {
		return ErrPageFull
	}

	off := len(p.data)
	p.data = append(p.data, make([]byte, p.slotSize)...)
	binary.BigEndian.PutUint64(p.data[off:], uint64(len(payload)))
	copy(p.data[off+slotHeaderSize:], payload)
	return nil
}

// Records walks the committed slots in append order and yields the raw
// payload of each one. The sequence is lazy and can be ranged over any
// number of times.
//
// Iteration stops at the first window that would run past the buffer
// and at the first zero length prefix, so a page read back from disk
// yields only its committed records and never its zero padding. A
// corrupt length prefix is clamped to the slot payload area; the
// garbage span is yielded as-is and left for the decode policy to
// reject.
func (p *Page) Records() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for off := 0; off+p.slotSize <= len(p.data); off += p.slotSize {
			n := binary.BigEndian.Uint64(p.data[off:])
			if n == 0 {
				return
			}
			// Clamp in uint64 space: a corrupt prefix can exceed not
			// just the slot but the int range.
			end := off + p.slotSize
			if n < uint64(p.slotSize-slotHeaderSize) {
				end = off + slotHeaderSize + int(n)
			}
			if !yield(p.data[off+slotHeaderSize : end]) {
				return
			}
		}
	}
}

// AvailableSlots reports how many more records fit before the page is
// full.
func (p *Page) AvailableSlots() int {
	return (PageSize - len(p.data)) / p.slotSize
}

// Len is the number of committed bytes in the page buffer, always a
// multiple of the slot size while the page is being built.
func (p *Page) Len() int {
	return len(p.data)
}

// SlotSize returns the slot width the page was built with.
func (p *Page) SlotSize() int {
	return p.slotSize
}

// Bytes exposes the page buffer. The caller must not modify it.
func (p *Page) Bytes() []byte {
	return p.data
}

// committedBytes reports how far the committed slots of a page read
// back from disk extend, by walking windows until the zero padding or
// the end of the buffer.
func (p *Page) committedBytes() int {
	off := 0
	for off+p.slotSize <= len(p.data) {
		if binary.BigEndian.Uint64(p.data[off:]) == 0 {
			break
		}
		off += p.slotSize
	}
	return off
}
