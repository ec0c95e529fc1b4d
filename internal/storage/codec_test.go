package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.pagelog/internal/storage"
)

func TestJSONCodec(t *testing.T) {
	codec := storage.JSONCodec[event]{}

	data, err := codec.Marshal(event{Seq: 42, Name: "answer"})
	require.NoError(t, err)

	got, err := codec.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, event{Seq: 42, Name: "answer"}, got)

	_, err = codec.Unmarshal([]byte("{not json"))
	assert.Error(t, err)
}

func TestRawCodecClonesOnUnmarshal(t *testing.T) {
	codec := storage.RawCodec{}

	src := []byte("abc")
	got, err := codec.Unmarshal(src)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)

	// The slot buffer may be reused; the record must not alias it.
	src[0] = 'x'
	assert.Equal(t, []byte("abc"), got)
}
