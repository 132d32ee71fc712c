package mpa

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceReaderUnread(t *testing.T) {
	src := NewSourceReader(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8}))

	buf := make([]byte, 8)
	n, err := src.ReadFull(buf)
	require.NoError(t, err)
	require.Equal(t, 8, n)

	require.NoError(t, src.Unread(4))

	again := make([]byte, 4)
	n, err = src.ReadFull(again)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	assert.Equal(t, []byte{5, 6, 7, 8}, again)
}

func TestSourceReaderUnreadTwice(t *testing.T) {
	src := NewSourceReader(bytes.NewReader([]byte{1, 2, 3, 4}))

	buf := make([]byte, 4)
	_, err := src.ReadFull(buf)
	require.NoError(t, err)

	require.NoError(t, src.Unread(2))
	require.NoError(t, src.Unread(2))

	_, err = src.ReadFull(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
}

func TestSourceReaderPushbackOverflow(t *testing.T) {
	src := NewSourceReader(bytes.NewReader([]byte{1, 2, 3}))

	buf := make([]byte, 3)
	_, err := src.ReadFull(buf)
	require.NoError(t, err)

	err = src.Unread(4)
	assert.ErrorIs(t, err, ErrStream)
}

func TestSourceReaderShortRead(t *testing.T) {
	src := NewSourceReader(bytes.NewReader([]byte{1, 2, 3}))

	buf := make([]byte, 8)
	n, err := src.ReadFull(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = src.Read(buf)
	assert.Equal(t, io.EOF, err)
}
