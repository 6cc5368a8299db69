package client

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/net/proxy"

	"paladin/internal/security"
)

// NewHTTPClient builds the HTTP client shared by every LLM call in the
// process. proxyAddr, or ALL_PROXY when empty, selects an http(s) or SOCKS
// proxy; otherwise HTTP_PROXY/HTTPS_PROXY apply as usual.
func NewHTTPClient(timeout time.Duration, proxyAddr string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = security.SecureTLSConfig()

	if proxyAddr == "" {
		proxyAddr = firstNonEmpty(os.Getenv("ALL_PROXY"), os.Getenv("all_proxy"))
	}

	if proxyAddr != "" {
		u, err := url.Parse(proxyAddr)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", proxyAddr, err)
		}
		if u.Scheme == "socks" {
			u.Scheme = "socks5"
		}

		switch u.Scheme {
		case "http", "https":
			transport.Proxy = http.ProxyURL(u)
		default:
			direct := &net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}
			dialer, err := proxy.FromURL(u, direct)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy %q: %w", proxyAddr, err)
			}
			transport.Proxy = nil
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				transport.DialContext = cd.DialContext
			} else {
				transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
					return dialer.Dial(network, addr)
				}
			}
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
