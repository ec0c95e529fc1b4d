// Package storage implements a file-backed record log: encoded records
// are packed into fixed size slots, slots into fixed size pages, and
// pages are flushed to page-aligned offsets in a single file. Records
// come back from a scan in the order they were appended.
package storage

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"sync/atomic"
)

// Log persists an ordered stream of typed records to a page-structured
// file and scans it back in order. It owns one writer handle positioned
// over the page currently being filled and one independent reader
// handle used only by scans.
//
// A Log holds no internal locking: callers must serialize appends.
// Scans use the reader handle and may run concurrently with appends,
// but a scan may observe either the old or the new image of the page
// an append is rewriting.
type Log[T any] struct {
	path     string
	slotSize int
	codec    Codec[T]
	opts     Options

	writer *os.File
	reader *os.File
	page   *Page

	skipped atomic.Uint64
}

// Open opens the record log at path. By default any existing contents
// are discarded; with opts.Preserve the file is kept, its header is
// validated and appends continue in the page where a previous run
// stopped. slotSize 0 adopts the slot size recorded in the header of
// an existing file; a file without a header needs an explicit one.
func Open[T any](path string, slotSize int, codec Codec[T], opts *Options) (*Log[T], error) {
	if codec == nil {
		return nil, errors.New("codec must not be nil")
	}
	o := defaultOptions
	if opts != nil {
		o = *opts
		if o.FileMode == 0 {
			o.FileMode = defaultOptions.FileMode
		}
	}

	w, err := os.OpenFile(path, o.fileFlag(), o.FileMode)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &Log[T]{
		path:   path,
		codec:  codec,
		opts:   o,
		writer: w,
	}
	if err := l.init(slotSize); err != nil {
		w.Close()
		if l.reader != nil {
			l.reader.Close()
		}
		return nil, err
	}
	return l, nil
}

// init writes or validates the header page, opens the reader handle
// and positions the writer for the next append.
func (l *Log[T]) init(slotSize int) error {
	fi, err := l.writer.Stat()
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	size := fi.Size()

	if size < PageSize {
		if size != 0 {
			// A torn header cannot hold data pages, so with a caller
			// supplied slot size it is safe to start over. Without one
			// there is nothing to adopt and nothing to rebuild from.
			if l.opts.Strict || slotSize == 0 {
				return fmt.Errorf("header page: %w", ErrTruncated)
			}
			l.warnf("discarding torn header page (%d bytes) in %s", size, l.path)
			if err := l.writer.Truncate(0); err != nil {
				return fmt.Errorf("truncate log file: %w", err)
			}
		}
		if slotSize == 0 {
			return fmt.Errorf("no header to adopt a slot size from: %w", ErrInvalidSlotSize)
		}
		if err := checkSlotSize(slotSize); err != nil {
			return err
		}
		l.slotSize = slotSize
		if err := l.writeHeader(); err != nil {
			return err
		}
		size = PageSize
	} else {
		hdr, err := l.readHeader()
		if err != nil {
			return err
		}
		if slotSize == 0 {
			slotSize = int(hdr.slotSize)
		} else if slotSize != int(hdr.slotSize) {
			return ErrSlotSizeMismatch
		}
		l.slotSize = slotSize

		if rem := size % PageSize; rem != 0 {
			// A torn page tail from an interrupted write. Whole pages
			// before it are intact.
			if l.opts.Strict {
				return fmt.Errorf("trailing page (%d bytes): %w", rem, ErrTruncated)
			}
			size -= rem
			l.warnf("trimming torn page tail (%d bytes) in %s", rem, l.path)
			if err := l.writer.Truncate(size); err != nil {
				return fmt.Errorf("truncate log file: %w", err)
			}
		}
	}

	r, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("open log file for reading: %w", err)
	}
	l.reader = r

	return l.restore(size)
}

// restore finds the append position: a partially filled trailing page
// is loaded back into memory so the next append rewrites it in place,
// otherwise a fresh page starts at the end of the file.
func (l *Log[T]) restore(size int64) error {
	dataPages := int(size/PageSize) - 1

	fresh := func(at int64) error {
		p, err := NewPage(l.slotSize)
		if err != nil {
			return err
		}
		l.page = p
		if _, err := l.writer.Seek(at, io.SeekStart); err != nil {
			return fmt.Errorf("seek writer: %w", err)
		}
		return nil
	}

	if dataPages == 0 {
		return fresh(PageSize)
	}

	last := int64(dataPages) * PageSize // file offset of the last data page
	raw := make([]byte, PageSize)
	if _, err := l.reader.ReadAt(raw, last); err != nil {
		return fmt.Errorf("read trailing page: %w", err)
	}
	p, err := PageFromBytes(raw, l.slotSize)
	if err != nil {
		return err
	}

	committed := p.committedBytes()
	if (PageSize-committed)/l.slotSize == 0 {
		// Trailing page is full; the next append starts a new one.
		return fresh(size)
	}

	l.page = &Page{
		slotSize: l.slotSize,
		data:     append(make([]byte, 0, PageSize), raw[:committed]...),
	}
	if _, err := l.writer.Seek(last, io.SeekStart); err != nil {
		return fmt.Errorf("seek writer: %w", err)
	}
	return nil
}

func (l *Log[T]) writeHeader() error {
	hdr := fileHeader{
		magic:    fileMagic,
		version:  formatVersion,
		slotSize: uint32(l.slotSize),
		pageSize: PageSize,
	}
	b, err := hdr.MarshalBinary()
	if err != nil {
		return err
	}
	buf := make([]byte, PageSize)
	copy(buf, b)
	if _, err := l.writer.WriteAt(buf, 0); err != nil {
		return fmt.Errorf("write header page: %w", err)
	}
	return nil
}

func (l *Log[T]) readHeader() (fileHeader, error) {
	buf := make([]byte, fileHeaderLen)
	if _, err := l.writer.ReadAt(buf, 0); err != nil {
		return fileHeader{}, fmt.Errorf("read header page: %w", err)
	}
	var hdr fileHeader
	if err := hdr.UnmarshalBinary(buf); err != nil {
		return fileHeader{}, err
	}
	if err := hdr.Validate(); err != nil {
		return fileHeader{}, err
	}
	return hdr, nil
}

// Append encodes one record and makes it durable. Every append
// rewrites the full image of the page being filled, so its on-disk
// state always reflects all records appended to it so far; the cost is
// one PageSize write per append regardless of record size.
//
// A record that does not fit its slot fails with ErrRecordTooLarge
// before anything is written. If the flush fails, the record is kept
// in the in-memory page but must not be considered committed until an
// Append returns nil.
func (l *Log[T]) Append(rec T) error {
	if l.writer == nil {
		return ErrClosed
	}

	payload, err := l.codec.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := l.page.Append(payload); err != nil {
		return err
	}

	if err := l.flushPage(); err != nil {
		return err
	}

	if l.page.AvailableSlots() == 0 {
		// Page is done; the writer already sits at the next
		// page-aligned offset.
		p, err := NewPage(l.slotSize)
		if err != nil {
			return err
		}
		l.page = p
		return nil
	}

	// Seek back so the next append overwrites this page image with a
	// larger one.
	if _, err := l.writer.Seek(-PageSize, io.SeekEnd); err != nil {
		return fmt.Errorf("seek writer: %w", err)
	}
	return nil
}

// flushPage writes the current page buffer padded to a full page in a
// single write, so a page image lands or fails as one I/O operation.
func (l *Log[T]) flushPage() error {
	buf := make([]byte, PageSize)
	copy(buf, l.page.Bytes())
	if _, err := l.writer.Write(buf); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// Pages reads the file back page by page through the reader handle.
// The sequence ends cleanly at the end of the file. In strict mode a
// short read surfaces as ErrTruncated and any other read or seek
// failure is reported; the lenient default ends the sequence instead,
// which is the historical behavior.
func (l *Log[T]) Pages() iter.Seq2[*Page, error] {
	return func(yield func(*Page, error) bool) {
		if l.reader == nil {
			yield(nil, ErrClosed)
			return
		}
		for i := 0; ; i++ {
			off := int64(1+i) * PageSize
			if _, err := l.reader.Seek(off, io.SeekStart); err != nil {
				if l.opts.Strict {
					yield(nil, fmt.Errorf("seek page %d: %w", i, err))
					return
				}
				l.warnf("ending scan of %s: seek page %d: %v", l.path, i, err)
				return
			}

			buf := make([]byte, PageSize)
			_, err := io.ReadFull(l.reader, buf)
			if errors.Is(err, io.EOF) {
				return
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				if l.opts.Strict {
					yield(nil, fmt.Errorf("page %d: %w", i, ErrTruncated))
					return
				}
				l.warnf("ending scan of %s: page %d is torn", l.path, i)
				return
			}
			if err != nil {
				if l.opts.Strict {
					yield(nil, fmt.Errorf("read page %d: %w", i, err))
					return
				}
				l.warnf("ending scan of %s: read page %d: %v", l.path, i, err)
				return
			}

			p, err := PageFromBytes(buf, l.slotSize)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

// Scan replays every committed record in append order. The sequence is
// lazy and restartable; ranging over it twice on an unmodified file
// yields identical records.
//
// A record that fails to decode is skipped and counted in lenient
// mode, or yielded as an error in strict mode, where the scan then
// stops. Page level failures follow the Pages policy.
func (l *Log[T]) Scan() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		pageNo := 0
		for p, err := range l.Pages() {
			if err != nil {
				yield(zero, err)
				return
			}
			slot := 0
			for raw := range p.Records() {
				rec, err := l.codec.Unmarshal(raw)
				if err != nil {
					if l.opts.Strict {
						yield(zero, fmt.Errorf("decode record (page %d, slot %d): %w", pageNo, slot, err))
						return
					}
					l.skipped.Add(1)
					l.warnf("skipping undecodable record in %s (page %d, slot %d): %v", l.path, pageNo, slot, err)
					slot++
					continue
				}
				if !yield(rec, nil) {
					return
				}
				slot++
			}
			pageNo++
		}
	}
}

// Skipped reports how many undecodable records lenient scans have
// passed over since the log was opened.
func (l *Log[T]) Skipped() uint64 {
	return l.skipped.Load()
}

// SlotSize returns the slot width of the file.
func (l *Log[T]) SlotSize() int {
	return l.slotSize
}

// Path returns the file path the log was opened with.
func (l *Log[T]) Path() string {
	return l.path
}

// Size returns the current file size in bytes, header page included.
func (l *Log[T]) Size() (int64, error) {
	if l.writer == nil {
		return 0, ErrClosed
	}
	fi, err := l.writer.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat log file: %w", err)
	}
	return fi.Size(), nil
}

// Sync flushes the file to stable storage. Appends themselves only
// guarantee the write reached the kernel.
func (l *Log[T]) Sync() error {
	if l.writer == nil {
		return ErrClosed
	}
	return l.writer.Sync()
}

// Close releases both file handles. Closing twice is harmless.
func (l *Log[T]) Close() error {
	if l.writer == nil {
		return nil
	}
	werr := l.writer.Close()
	rerr := l.reader.Close()
	l.writer = nil
	l.reader = nil
	if werr != nil {
		return werr
	}
	return rerr
}

func (l *Log[T]) warnf(format string, args ...any) {
	if l.opts.Logger != nil {
		l.opts.Logger.Warnf(format, args...)
	}
}
