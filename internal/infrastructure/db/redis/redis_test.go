package redis

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig_Options(t *testing.T) {
	opts := Config{Addr: "redis:6379", Password: "pw", DB: 2}.options()
	require.Equal(t, "redis:6379", opts.Addr)
	require.Equal(t, "pw", opts.Password)
	require.Equal(t, 2, opts.DB)
	require.Equal(t, defaultTimeout, opts.DialTimeout)
	require.Equal(t, defaultTimeout, opts.ReadTimeout)
	require.Equal(t, defaultTimeout, opts.WriteTimeout)

	opts = Config{Timeout: 300 * time.Millisecond}.options()
	require.Equal(t, 300*time.Millisecond, opts.DialTimeout)
}

func TestOpen_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = Open(context.Background(), Config{Addr: addr, Timeout: 500 * time.Millisecond})
	require.ErrorContains(t, err, "redis ping "+addr)
}
