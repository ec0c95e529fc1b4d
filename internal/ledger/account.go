package ledger

import (
	"fmt"
	"sync"
	"time"

	"go.pagelog/internal/storage"
)

// Account is a single ledger backed by one log file. All methods are
// safe for concurrent use.
type Account struct {
	mu      sync.RWMutex
	limit   int64
	balance int64
	recent  *Ring[Transaction]
	log     *storage.Log[Entry]
}

// Statement is a point-in-time view of an account.
type Statement struct {
	Balance int64         `json:"balance"`
	Limit   int64         `json:"limit"`
	At      time.Time     `json:"at"`
	Recent  []Transaction `json:"recent"`
}

// OpenAccount opens the account log at path and replays it into memory.
// The balance comes from the last entry, the recent history from the
// tail of the stream. The log is always opened preserving existing
// entries so the books survive restarts; opts carries the scan policy
// and logger.
func OpenAccount(path string, limit int64, opts *storage.Options) (*Account, error) {
	var o storage.Options
	if opts != nil {
		o = *opts
	}
	o.Preserve = true

	lg, err := storage.Open(path, SlotSize, storage.JSONCodec[Entry]{}, &o)
	if err != nil {
		return nil, err
	}

	a := &Account{
		limit:  limit,
		recent: NewRing[Transaction](RecentSize),
		log:    lg,
	}
	replayed := 0
	for e, err := range lg.Scan() {
		if err != nil {
			lg.Close()
			return nil, fmt.Errorf("replay %s: %w", path, err)
		}
		a.balance = e.Balance
		a.recent.Push(e.Tx)
		replayed++
	}
	if o.Logger != nil {
		o.Logger.Infof("replayed %d entries from %s, balance %d", replayed, path, a.balance)
	}
	return a, nil
}

// Post applies one transaction: credits add to the balance, debits
// subtract. The entry is appended to the log first and only a
// successful append updates the in-memory state. Returns the balance
// after the transaction.
func (a *Account) Post(tx Transaction) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	balance := a.balance
	switch tx.Kind {
	case Credit:
		balance += tx.Value
	case Debit:
		balance -= tx.Value
	default:
		return a.balance, fmt.Errorf("unknown transaction kind %q", tx.Kind)
	}

	if err := a.log.Append(Entry{Balance: balance, Tx: tx}); err != nil {
		return a.balance, fmt.Errorf("append transaction: %w", err)
	}
	a.balance = balance
	a.recent.Push(tx)
	return balance, nil
}

func (a *Account) Balance() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

func (a *Account) Limit() int64 { return a.limit }

func (a *Account) Statement() Statement {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Statement{
		Balance: a.balance,
		Limit:   a.limit,
		At:      time.Now().UTC(),
		Recent:  a.recent.Items(),
	}
}

// Sync flushes the underlying log file to stable storage.
func (a *Account) Sync() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.log.Sync()
}

func (a *Account) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.log.Close()
}
