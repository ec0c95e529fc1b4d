package engine

import (
	"os"
	"path/filepath"
	"strings"

	"go.pagelog/internal/config"
	"go.pagelog/internal/ledger"
	"go.pagelog/internal/storage"
)

// Account is a ledger account opened through the engine.
type Account struct {
	*ledger.Account
	logFile *os.File
}

// OpenAccount opens one configured account and replays its books. The
// account's log file lives under the data directory and its logger
// writes next to the other logs.
func OpenAccount(def config.Account, cfg *config.Config) (*Account, error) {
	file := def.LogFile()
	name := strings.TrimSuffix(file, filepath.Ext(file))

	log, logFile, err := newLogger(name, cfg)
	if err != nil {
		return nil, err
	}

	opts := &storage.Options{Strict: cfg.Strict, Logger: log}
	acct, err := ledger.OpenAccount(filepath.Join(cfg.DataDir, file), def.Limit, opts)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	return &Account{Account: acct, logFile: logFile}, nil
}

func (a *Account) Close() error {
	err := a.Account.Close()
	if a.logFile != nil {
		if cerr := a.logFile.Close(); err == nil {
			err = cerr
		}
		a.logFile = nil
	}
	return err
}
