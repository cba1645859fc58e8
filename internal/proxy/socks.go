// Package proxy builds the HTTP client used to reach the model API from
// networks where it is only reachable through a SOCKS5 tunnel.
package proxy

import (
	"context"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/proxy"
)

// DefaultTimeout bounds a whole request; speech synthesis responses can be
// large, so it is generous.
const DefaultTimeout = 2 * time.Minute

// NewSocksClient returns an http.Client that dials through the SOCKS5 proxy
// at addr. A non-positive timeout falls back to DefaultTimeout.
func NewSocksClient(addr string, timeout time.Duration) (*http.Client, error) {
	dialer, err := proxy.SOCKS5("tcp", addr, nil, proxy.Direct)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dial := func(ctx context.Context, network, address string) (net.Conn, error) {
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			return cd.DialContext(ctx, network, address)
		}
		return dialer.Dial(network, address)
	}

	return &http.Client{
		Transport: &http.Transport{DialContext: dial},
		Timeout:   timeout,
	}, nil
}
