package storage

import "errors"

var (
	// page
	ErrRecordTooLarge  = errors.New("record does not fit in one slot")
	ErrEmptyRecord     = errors.New("record encoded to zero bytes")
	ErrPageFull        = errors.New("not enough space to write record")
	ErrSizeMismatch    = errors.New("page data is not exactly one page long")
	ErrInvalidSlotSize = errors.New("slot size must be larger than the slot header and at most one page")
	// log
	ErrInvalidFileSig   = errors.New("invalid file signature")
	ErrVersionMismatch  = errors.New("unsupported file format version")
	ErrSlotSizeMismatch = errors.New("slot size does not match file header")
	ErrPageSizeMismatch = errors.New("page size does not match file header")
	ErrTruncated        = errors.New("file ends inside a page")
	ErrClosed           = errors.New("log is closed")
)
