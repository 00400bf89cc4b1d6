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

// Package sockaddr resolves host:port pairs to an ordered list of dial
// candidates and, on Unix systems, drives the raw non-blocking connect/select
// sequence the transport layer needs to observe as a phase distinct from
// the framed-read phase that follows it.
package sockaddr

import (
	"context"
	"net"
	"net/netip"

	liberr "github.com/nabbar/go-srsirc/errors"
	"golang.org/x/net/idna"
)

const (
	// ErrResolve is raised when resolution yields zero usable addresses.
	ErrResolve liberr.CodeError = liberr.MinPkgSockAddr + iota + 1
	// ErrNoCandidate is raised when a connect attempt to one candidate
	// fails (connect, poll or SO_ERROR failure).
	ErrNoCandidate
)

func init() {
	liberr.RegisterIdFctMessage(ErrResolve, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrResolve:
		return "no address could be resolved for the given host"
	case ErrNoCandidate:
		return "every resolved candidate was exhausted"
	}
	return ""
}

// Family identifies the address family of a Candidate.
type Family uint8

const (
	FamilyIPv4 Family = iota
	FamilyIPv6
)

// Candidate is one resolved dial target, in the order net.DefaultResolver
// returned it.
type Candidate struct {
	Family Family
	IP     netip.Addr
	Port   uint16
	Text   string // host:port form, ready for logging
}

// Resolve looks up host and fans out to one Candidate per resolved address,
// preserving the resolver's ordering (the order the spec's connect loop
// walks).
func Resolve(ctx context.Context, host string, port uint16) ([]Candidate, error) {
	if host == "" {
		return nil, ErrResolve.Error(nil)
	}

	if ip, err := netip.ParseAddr(host); err == nil {
		return []Candidate{candidateFromAddr(ip, port)}, nil
	}

	// non-IP hosts may be internationalized domain names; ToASCII is a
	// no-op on already-ASCII hosts and on addresses netip couldn't parse.
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, ErrResolve.Error(err)
	}

	out := make([]Candidate, 0, len(addrs))
	for _, a := range addrs {
		ip, ok := netip.AddrFromSlice(a.IP)
		if !ok {
			continue
		}
		out = append(out, candidateFromAddr(ip.Unmap(), port))
	}

	if len(out) == 0 {
		return nil, ErrResolve.Error(nil)
	}

	return out, nil
}

func candidateFromAddr(ip netip.Addr, port uint16) Candidate {
	fam := FamilyIPv4
	if ip.Is6() && !ip.Is4In6() {
		fam = FamilyIPv6
	}

	return Candidate{
		Family: fam,
		IP:     ip,
		Port:   port,
		Text:   net.JoinHostPort(ip.String(), portString(port)),
	}
}

func portString(port uint16) string {
	const digits = "0123456789"
	if port == 0 {
		return "0"
	}
	var buf [5]byte
	i := len(buf)
	for port > 0 {
		i--
		buf[i] = digits[port%10]
		port /= 10
	}
	return string(buf[i:])
}
