package engine_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.pagelog/internal/config"
	"go.pagelog/internal/engine"
	"go.pagelog/internal/ledger"
	"go.pagelog/internal/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(t.TempDir(), "")
	require.NoError(t, err)
	return cfg
}

func TestOpenNamedStore(t *testing.T) {
	cfg := testConfig(t)

	st, err := engine.Open("events", 64, storage.RawCodec{}, cfg)
	require.NoError(t, err)

	require.NoError(t, st.Append([]byte("hello")))
	require.NoError(t, st.Close())

	assert.FileExists(t, filepath.Join(cfg.DataDir, "events.plog"))
	assert.FileExists(t, filepath.Join(cfg.LogDir, "events.log"))

	// Reopening by name preserves the data.
	st, err = engine.Open("events", 0, storage.RawCodec{}, cfg)
	require.NoError(t, err)
	defer st.Close()

	var got [][]byte
	for rec, sErr := range st.Scan() {
		require.NoError(t, sErr)
		got = append(got, rec)
	}
	require.Len(t, got, 1)
	assert.Equal(t, []byte("hello"), got[0])
}

func TestOpenNewStoreNeedsSlotSize(t *testing.T) {
	cfg := testConfig(t)

	// Slot size 0 only works for a log that already has a header.
	_, err := engine.Open("missing", 0, storage.RawCodec{}, cfg)
	require.ErrorIs(t, err, storage.ErrInvalidSlotSize)
	assert.ErrorContains(t, err, "no header to adopt")
}

func TestOpenRejectsBadLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogLevel = "loud"

	_, err := engine.Open("events", 64, storage.RawCodec{}, cfg)
	assert.Error(t, err)
}

func TestOpenAccount(t *testing.T) {
	cfg := testConfig(t)
	def, ok := cfg.FindAccount(1)
	require.True(t, ok)

	acct, err := engine.OpenAccount(def, cfg)
	require.NoError(t, err)

	_, err = acct.Post(ledger.Transaction{Value: 250, Kind: ledger.Credit, Description: "pay"})
	require.NoError(t, err)
	require.NoError(t, acct.Close())

	assert.FileExists(t, filepath.Join(cfg.DataDir, "account-1.plog"))
	assert.FileExists(t, filepath.Join(cfg.LogDir, "account-1.log"))

	// The books survive a reopen.
	acct, err = engine.OpenAccount(def, cfg)
	require.NoError(t, err)
	defer acct.Close()

	assert.Equal(t, int64(250), acct.Balance())
	assert.Equal(t, def.Limit, acct.Limit())
}
