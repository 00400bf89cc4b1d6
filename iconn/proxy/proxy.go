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

// Package proxy implements the three handshakes iconn can tunnel through
// before the IRC protocol itself starts: an HTTP CONNECT tunnel, and
// SOCKS4 and SOCKS5 as specified by their respective RFCs/informal specs.
package proxy

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"time"

	"github.com/nabbar/go-srsirc/internal/sockaddr"
	liberr "github.com/nabbar/go-srsirc/errors"
)

const (
	// ErrHandshake is raised when a proxy rejects or garbles the handshake.
	ErrHandshake liberr.CodeError = liberr.MinPkgProxy + iota + 1
	// ErrUnsupportedKind is raised by Dial for an unknown Kind.
	ErrUnsupportedKind
)

func init() {
	liberr.RegisterIdFctMessage(ErrHandshake, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrHandshake:
		return "proxy handshake failed"
	case ErrUnsupportedKind:
		return "unsupported proxy kind"
	}
	return ""
}

// Kind identifies which proxy handshake Dial should perform.
type Kind uint8

const (
	// None means no proxy hop; iconn dials the IRC server directly.
	None Kind = iota
	HTTPConnect
	SOCKS4
	SOCKS5
)

// Dial performs the handshake identified by kind over rw, which must
// already be connected to the proxy itself. targetHost/targetPort name the
// final destination (the IRC server) the proxy should tunnel to. budget
// bounds the whole handshake.
func Dial(ctx context.Context, rw io.ReadWriter, kind Kind, targetHost string, targetPort uint16, budget time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	if d, ok := rw.(interface{ SetDeadline(time.Time) error }); ok {
		if dl, ok := ctx.Deadline(); ok {
			_ = d.SetDeadline(dl)
			defer func() { _ = d.SetDeadline(time.Time{}) }()
		}
	}

	switch kind {
	case None:
		return nil
	case HTTPConnect:
		return dialHTTPConnect(rw, targetHost, targetPort)
	case SOCKS4:
		return dialSOCKS4(ctx, rw, targetHost, targetPort)
	case SOCKS5:
		return dialSOCKS5(rw, targetHost, targetPort)
	default:
		return ErrUnsupportedKind.Error(nil)
	}
}

func dialHTTPConnect(rw io.ReadWriter, host string, port uint16) error {
	addr := host + ":" + strconv.Itoa(int(port))

	req := fmt.Sprintf("CONNECT %s HTTP/1.1\r\nHost: %s\r\n\r\n", addr, addr)
	if _, err := io.WriteString(rw, req); err != nil {
		return ErrHandshake.Error(err)
	}

	r := textproto.NewReader(bufio.NewReader(rw))
	line, err := r.ReadLine()
	if err != nil {
		return ErrHandshake.Error(err)
	}

	var major, minor, code int
	if _, err := fmt.Sscanf(line, "HTTP/%d.%d %d", &major, &minor, &code); err != nil {
		return ErrHandshake.Error(err)
	}
	if code < 200 || code >= 300 {
		//nolint goerr113
		return ErrHandshake.Error(fmt.Errorf("proxy returned status %d", code))
	}

	// drain the rest of the response headers
	if _, err := r.ReadMIMEHeader(); err != nil && err != io.EOF {
		return ErrHandshake.Error(err)
	}

	return nil
}

// dialSOCKS4 always sends a SOCKS4 (not 4a) request: the target hostname
// is resolved client-side first via internal/sockaddr.Resolve. SOCKS4a
// remote-name resolution is not required by the spec this implements.
func dialSOCKS4(ctx context.Context, rw io.ReadWriter, host string, port uint16) error {
	cands, err := sockaddr.Resolve(ctx, host, port)
	if err != nil {
		return ErrHandshake.Error(err)
	}

	var ip [4]byte
	found := false
	for _, c := range cands {
		if c.Family == sockaddr.FamilyIPv4 {
			ip = c.IP.As4()
			found = true
			break
		}
	}
	if !found {
		//nolint goerr113
		return ErrHandshake.Error(fmt.Errorf("no IPv4 address resolved for %s", host))
	}

	req := make([]byte, 0, 9)
	req = append(req, 0x04, 0x01) // version 4, CONNECT
	req = append(req, byte(port>>8), byte(port))
	req = append(req, ip[:]...)
	req = append(req, 0x00) // empty USERID, null-terminated

	if _, err := rw.Write(req); err != nil {
		return ErrHandshake.Error(err)
	}

	reply := make([]byte, 8)
	if _, err := io.ReadFull(rw, reply); err != nil {
		return ErrHandshake.Error(err)
	}

	if reply[0] != 0x00 || reply[1] != 0x5A {
		//nolint goerr113
		return ErrHandshake.Error(fmt.Errorf("socks4 request rejected, code 0x%02x", reply[1]))
	}

	return nil
}

func dialSOCKS5(rw io.ReadWriter, host string, port uint16) error {
	// greeting: version 5, one method, no authentication
	if _, err := rw.Write([]byte{0x05, 0x01, 0x00}); err != nil {
		return ErrHandshake.Error(err)
	}

	greetReply := make([]byte, 2)
	if _, err := io.ReadFull(rw, greetReply); err != nil {
		return ErrHandshake.Error(err)
	}
	if greetReply[0] != 0x05 || greetReply[1] != 0x00 {
		//nolint goerr113
		return ErrHandshake.Error(fmt.Errorf("socks5 greeting refused, method 0x%02x", greetReply[1]))
	}

	req := make([]byte, 0, 7+len(host))
	req = append(req, 0x05, 0x01, 0x00, 0x03) // version, CONNECT, reserved, ATYP=domain
	req = append(req, byte(len(host)))
	req = append(req, host...)
	req = append(req, byte(port>>8), byte(port))

	if _, err := rw.Write(req); err != nil {
		return ErrHandshake.Error(err)
	}

	header := make([]byte, 4)
	if _, err := io.ReadFull(rw, header); err != nil {
		return ErrHandshake.Error(err)
	}
	if header[1] != 0x00 {
		//nolint goerr113
		return ErrHandshake.Error(fmt.Errorf("socks5 request rejected, code 0x%02x", header[1]))
	}

	var addrLen int
	switch header[3] {
	case 0x01: // IPv4
		addrLen = 4
	case 0x04: // IPv6
		addrLen = 16
	case 0x03: // domain
		l := make([]byte, 1)
		if _, err := io.ReadFull(rw, l); err != nil {
			return ErrHandshake.Error(err)
		}
		addrLen = int(l[0])
	default:
		//nolint goerr113
		return ErrHandshake.Error(fmt.Errorf("socks5 reply has unknown address type 0x%02x", header[3]))
	}

	rest := make([]byte, addrLen+2) // address + port
	if _, err := io.ReadFull(rw, rest); err != nil {
		return ErrHandshake.Error(err)
	}

	return nil
}
