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

package iconn

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"time"

	"github.com/nabbar/go-srsirc/iconn/proxy"
	"github.com/nabbar/go-srsirc/internal/sockaddr"
	"github.com/nabbar/go-srsirc/ircmsg"
)

// Conn is the transport handle: a connected socket (optionally tunneled
// through a proxy and wrapped in TLS), with a framing ring buffer layered
// on top so callers read whole IRC lines instead of raw bytes.
type Conn struct {
	cfg *Config
	nc  net.Conn
	rb  *ircmsg.RingBuffer
}

// New validates cfg and returns an unconnected Conn; call Connect to
// establish the transport.
func New(cfg *Config) (*Conn, error) {
	if cfg == nil {
		return nil, ErrorValidatorError.Error(nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Conn{cfg: cfg, rb: ircmsg.NewRingBuffer()}, nil
}

// Connect resolves the dial target, walks the candidate list performing a
// non-blocking connect-then-select on each in turn, runs the configured
// proxy handshake, and finally wraps the transport in TLS if requested.
// The whole sequence is bounded by cfg.HardTimeout.
func (c *Conn) Connect(ctx context.Context) error {
	if c.nc != nil {
		return ErrorValidatorError.Error(nil)
	}

	budget := c.cfg.HardTimeout.Time()
	if budget <= 0 {
		budget = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	cands, err := sockaddr.Resolve(ctx, c.cfg.dialHost(), c.cfg.dialPort())
	if err != nil {
		return err
	}

	var lastErr error
	for _, cand := range cands {
		nc, derr := dialCandidate(ctx, cand, budget)
		if derr != nil {
			lastErr = derr
			continue
		}

		if c.cfg.ProxyKind != proxy.None {
			if perr := proxy.Dial(ctx, nc, c.cfg.ProxyKind, c.cfg.Host, c.cfg.Port, budget); perr != nil {
				_ = nc.Close()
				lastErr = perr
				continue
			}
		}

		if c.cfg.TLS {
			tc, terr := c.wrapTLS(ctx, nc)
			if terr != nil {
				_ = nc.Close()
				lastErr = terr
				continue
			}
			nc = tc
		}

		c.nc = nc
		return nil
	}

	if lastErr != nil {
		return ErrorNoCandidate.Error(lastErr)
	}
	return ErrorNoCandidate.Error(nil)
}

// dialCandidate drives a raw non-blocking connect(2)-then-select(2) cycle
// through internal/sockaddr.Nonblocking rather than net.Dialer: the spec
// treats "connecting" and "framed reading" as two distinct observable
// phases, and net.DialContext collapses both into one blocking call with
// no way to inspect the connect-in-progress state in between.
func dialCandidate(ctx context.Context, c sockaddr.Candidate, budget time.Duration) (net.Conn, error) {
	nb, err := sockaddr.NewNonblocking(c.Family)
	if err != nil {
		return nil, err
	}

	if err = nb.Connect(c); err != nil {
		return nil, err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(budget)
	}
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			_ = nb.Close()
			return nil, ErrorHardTimeout.Error(nil)
		}

		connected, werr := nb.Wait(remaining)
		if werr != nil {
			_ = nb.Close()
			return nil, werr
		}
		if connected {
			break
		}

		select {
		case <-ctx.Done():
			_ = nb.Close()
			return nil, ErrorHardTimeout.Error(ctx.Err())
		default:
		}
	}

	f := nb.File()
	nc, err := net.FileConn(f)
	if err != nil {
		_ = f.Close()
		return nil, ErrorNoCandidate.Error(err)
	}
	return nc, nil
}

func (c *Conn) wrapTLS(ctx context.Context, nc net.Conn) (net.Conn, error) {
	var tcfg *tls.Config
	if c.cfg.TLSConfig != nil {
		tlsCfg := c.cfg.TLSConfig.New()
		if tlsCfg != nil {
			tcfg = tlsCfg.TLS(c.cfg.Host)
		}
	}
	if tcfg == nil {
		tcfg = &tls.Config{ServerName: c.cfg.Host, MinVersion: tls.VersionTLS12}
	}

	tc := tls.Client(nc, tcfg)
	if err := tc.HandshakeContext(ctx); err != nil {
		return nil, ErrorTLSHandshake.Error(err)
	}
	return tc, nil
}

// Read returns the next complete IRC line, blocking until one is framed,
// a per-call soft timeout elapses, or the transport reports EOF/error.
func (c *Conn) Read() (*ircmsg.Message, error) {
	if c.nc == nil {
		return nil, ErrorClosed.Error(nil)
	}

	for {
		line, ok, err := c.rb.Frame()
		if err != nil {
			return nil, err
		}
		if ok {
			return ircmsg.Tokenize(line)
		}

		if d := c.cfg.SoftTimeout.Time(); d > 0 {
			_ = c.nc.SetReadDeadline(time.Now().Add(d))
		}

		n, rerr := c.nc.Read(c.rb.Fill())
		if n > 0 {
			c.rb.Advance(n)
		}
		if rerr != nil {
			if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				return nil, ErrorSoftTimeout.Error(rerr)
			}
			if rerr == io.EOF {
				return nil, ErrorEOF.Error(rerr)
			}
			return nil, ErrorIO.Error(rerr)
		}
	}
}

// Write sends a pre-formatted IRC line (CRLF terminated by the caller, per
// the irc package's encoder), bounded by the soft timeout.
func (c *Conn) Write(line []byte) error {
	if c.nc == nil {
		return ErrorClosed.Error(nil)
	}

	if d := c.cfg.SoftTimeout.Time(); d > 0 {
		_ = c.nc.SetWriteDeadline(time.Now().Add(d))
	}

	_, err := c.nc.Write(line)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return ErrorSoftTimeout.Error(err)
		}
		return ErrorIO.Error(err)
	}
	return nil
}

// Reset discards any buffered-but-unframed bytes, used after a protocol
// desync to resynchronize on the next line boundary.
func (c *Conn) Reset() {
	c.rb = ircmsg.NewRingBuffer()
}

// Dispose closes the transport. Subsequent Read/Write calls return
// ErrorClosed.
func (c *Conn) Dispose() error {
	if c.nc == nil {
		return nil
	}
	err := c.nc.Close()
	c.nc = nil
	if err != nil {
		return ErrorClosed.Error(err)
	}
	return nil
}
