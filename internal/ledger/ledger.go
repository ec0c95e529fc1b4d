// Package ledger keeps per-account transaction books on top of the
// record log. Each posted transaction is persisted together with the
// running balance it produced, so opening an account is a single
// ordered replay: the last entry carries the closing balance and the
// tail of the stream carries the recent history.
package ledger

import "time"

// Kind tags a transaction as a credit or a debit.
type Kind string

const (
	Credit Kind = "c"
	Debit  Kind = "d"
)

type Transaction struct {
	Value       int64     `json:"value"`
	Kind        Kind      `json:"kind"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Entry is what an account appends to its log: the transaction and the
// balance after it.
type Entry struct {
	Balance int64       `json:"balance"`
	Tx      Transaction `json:"tx"`
}

// SlotSize is the slot width of account log files. Entries with short
// descriptions encode well inside one slot; an oversized description
// fails the post with storage.ErrRecordTooLarge.
const SlotSize = 256

// RecentSize bounds how many transactions an account keeps in memory
// for statements.
const RecentSize = 10
