package storage

import (
	"encoding/binary"
	"errors"
)

// The first page of every log file is a header page: the fields below
// at offset 0, zero padded to PageSize. Data pages follow it, so the
// file stays a plain sequence of page-aligned blocks. The header makes
// a file self-describing; the slot size no longer has to be known
// out-of-band by the opener.
const (
	fileMagic     = 0x706c6f67 // "plog"
	formatVersion = 1
	fileHeaderLen = 16
)

type fileHeader struct {
	magic    uint32
	version  uint16
	flags    uint16 // reserved
	slotSize uint32
	pageSize uint32
}

func (h fileHeader) MarshalBinary() ([]byte, error) {
	buf := make([]byte, fileHeaderLen)
	binary.BigEndian.PutUint32(buf[0:4], h.magic)
	binary.BigEndian.PutUint16(buf[4:6], h.version)
	binary.BigEndian.PutUint16(buf[6:8], h.flags)
	binary.BigEndian.PutUint32(buf[8:12], h.slotSize)
	binary.BigEndian.PutUint32(buf[12:16], h.pageSize)
	return buf, nil
}

func (h *fileHeader) UnmarshalBinary(data []byte) error {
	if len(data) < fileHeaderLen {
		return errors.New("insufficient data to unmarshal file header")
	}
	h.magic = binary.BigEndian.Uint32(data[0:4])
	h.version = binary.BigEndian.Uint16(data[4:6])
	h.flags = binary.BigEndian.Uint16(data[6:8])
	h.slotSize = binary.BigEndian.Uint32(data[8:12])
	h.pageSize = binary.BigEndian.Uint32(data[12:16])
	return nil
}

func (h fileHeader) Validate() error {
	if h.magic != fileMagic {
		return ErrInvalidFileSig
	}
	if h.version != formatVersion {
		return ErrVersionMismatch
	}
	if h.pageSize != PageSize {
		return ErrPageSizeMismatch
	}
	return checkSlotSize(int(h.slotSize))
}
