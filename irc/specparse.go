/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package irc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nabbar/go-srsirc/iconn/proxy"
	"github.com/nabbar/go-srsirc/ircerr"
)

// ProxySpec is the parsed form of a "<type>:<host>[:port][/ssl]" specifier,
// the grammar an embedder's command-line front-end accepts for --proxy.
type ProxySpec struct {
	Kind proxy.Kind
	Host string
	Port uint16
	SSL  bool
}

// HostSpec is the parsed form of a "srvaddr[:port][/ssl]" specifier, with
// bracketed IPv6 syntax ("[::1]:6697") supported for the host part.
type HostSpec struct {
	Host string
	Port uint16
	SSL  bool
}

// ParseProxySpec parses "<type>:<host>[:port][/ssl]" where type is one of
// HTTP, SOCKS4, SOCKS5 (case-insensitive).
func ParseProxySpec(spec string) (ProxySpec, ircerr.Error) {
	body, ssl := splitSSLSuffix(spec)

	typeStr, rest, ok := strings.Cut(body, ":")
	if !ok {
		//nolint goerr113
		return ProxySpec{}, ircerr.ErrConfig.Error(fmt.Errorf("proxy spec %q is missing a type prefix", spec))
	}

	var kind proxy.Kind
	switch strings.ToUpper(typeStr) {
	case "HTTP":
		kind = proxy.HTTPConnect
	case "SOCKS4":
		kind = proxy.SOCKS4
	case "SOCKS5":
		kind = proxy.SOCKS5
	default:
		//nolint goerr113
		return ProxySpec{}, ircerr.ErrConfig.Error(fmt.Errorf("proxy spec %q has unknown type %q", spec, typeStr))
	}

	host, port, err := splitHostPort(rest)
	if err != nil {
		return ProxySpec{}, ircerr.ErrConfig.Error(err)
	}

	return ProxySpec{Kind: kind, Host: host, Port: port, SSL: ssl}, nil
}

// ParseHostSpec parses "srvaddr[:port][/ssl]".
func ParseHostSpec(spec string) (HostSpec, ircerr.Error) {
	body, ssl := splitSSLSuffix(spec)

	host, port, err := splitHostPort(body)
	if err != nil {
		return HostSpec{}, ircerr.ErrConfig.Error(err)
	}

	return HostSpec{Host: host, Port: port, SSL: ssl}, nil
}

func splitSSLSuffix(spec string) (body string, ssl bool) {
	if rest, ok := strings.CutSuffix(spec, "/ssl"); ok {
		return rest, true
	}
	return spec, false
}

// splitHostPort understands bracketed IPv6 ("[::1]:6697") as well as plain
// "host:port" and bare "host" (no port).
func splitHostPort(s string) (host string, port uint16, err error) {
	if strings.HasPrefix(s, "[") {
		closeIdx := strings.IndexByte(s, ']')
		if closeIdx < 0 {
			//nolint goerr113
			return "", 0, fmt.Errorf("host spec %q has unterminated IPv6 bracket", s)
		}
		host = s[1:closeIdx]
		remainder := s[closeIdx+1:]
		if remainder == "" {
			return host, 0, nil
		}
		remainder = strings.TrimPrefix(remainder, ":")
		p, perr := strconv.ParseUint(remainder, 10, 16)
		if perr != nil {
			//nolint goerr113
			return "", 0, fmt.Errorf("host spec %q has invalid port %q", s, remainder)
		}
		return host, uint16(p), nil
	}

	h, p, ok := strings.Cut(s, ":")
	if !ok {
		return s, 0, nil
	}
	n, perr := strconv.ParseUint(p, 10, 16)
	if perr != nil {
		//nolint goerr113
		return "", 0, fmt.Errorf("host spec %q has invalid port %q", s, p)
	}
	return h, uint16(n), nil
}
