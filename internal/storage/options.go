package storage

import (
	"os"

	"go.pagelog/internal/logger"
)

var defaultOptions = Options{
	FileMode: 0o666,
}

// Options control how a log file is opened and how scans treat
// failures. The zero value and a nil *Options mean the same thing:
// the file is opened fresh, any existing contents are discarded, and
// scans are lenient.
type Options struct {
	// Preserve keeps an existing file instead of truncating it. The
	// header is validated and appends continue in the page where a
	// previous run stopped.
	Preserve bool

	// Strict makes scans surface what the lenient default hides: a
	// short page read or seek failure is reported instead of ending
	// the sequence, and a record that fails to decode is reported
	// instead of being skipped and counted.
	Strict bool

	// Logger, when set, receives a WARN line for every record or page
	// the lenient mode passes over.
	Logger *logger.Logger

	// FileMode is used when the file is created.
	FileMode os.FileMode
}

func (o *Options) fileFlag() int {
	flag := os.O_RDWR | os.O_CREATE
	if !o.Preserve {
		flag |= os.O_TRUNC
	}
	return flag
}
