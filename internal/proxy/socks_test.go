package proxy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSocksClientTimeout(t *testing.T) {
	c, err := NewSocksClient("127.0.0.1:1080", 30*time.Second)
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, c.Timeout)
}

func TestNewSocksClientDefaultTimeout(t *testing.T) {
	c, err := NewSocksClient("127.0.0.1:1080", 0)
	require.NoError(t, err)
	require.Equal(t, DefaultTimeout, c.Timeout)
}
