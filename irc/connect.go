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
	"context"
	"fmt"

	"github.com/nabbar/go-srsirc/iconn"
	"github.com/nabbar/go-srsirc/ircerr"
	"github.com/nabbar/go-srsirc/ircmsg"
)

// Connect opens the transport (resolve/dial/proxy/TLS, per iconn), resets
// per-connection state, and begins the logon conversation. It returns once
// the transport is up; registration itself proceeds as the caller's loop
// calls ReadOne, which hands each inbound message to the session.
func (s *Session) Connect(ctx context.Context) ircerr.Error {
	if s.state != Disconnected {
		//nolint goerr113
		err := ircerr.ErrConfig.Error(fmt.Errorf("session is not disconnected"))
		s.setLastError(err)
		return err
	}

	conn, nerr := iconn.New(&iconn.Config{
		Host:        s.cfg.Host,
		Port:        s.cfg.Port,
		TLS:         s.cfg.SSL,
		ProxyKind:   s.cfg.ProxyKind,
		ProxyHost:   s.cfg.ProxyHost,
		ProxyPort:   s.cfg.ProxyPort,
		SoftTimeout: s.cfg.ConnectTimeoutSoft,
		HardTimeout: s.cfg.ConnectTimeoutHard,
	})
	if nerr != nil {
		err := ircerr.ErrConnectTimeout.Error(nerr)
		s.setLastError(err)
		return err
	}

	if cerr := conn.Connect(ctx); cerr != nil {
		err := ircerr.ErrConnectTimeout.Error(cerr)
		s.setLastError(err)
		return err
	}

	s.conn = conn
	s.banned = false
	s.banMsg = ""
	s.logonCount = 0
	s.lastErr = nil
	s.state = TransportUp

	if s.tracker != nil {
		s.tracker.Reset()
	}

	return s.beginLogon()
}

// Disconnect tears down the transport and resets the session so it can be
// Connect-ed again; configuration is preserved.
func (s *Session) Disconnect() {
	if s.conn != nil {
		_ = s.conn.Dispose()
		s.conn = nil
	}
	s.state = Disconnected
	if s.tracker != nil {
		s.tracker.Reset()
	}
}

// ReadOne reads and dispatches the next inbound message, updating logon
// state or tracker state as appropriate, and returns the tokenized message
// for callers that also want to observe it directly.
func (s *Session) ReadOne() (*ircmsg.Message, ircerr.Error) {
	if s.conn == nil {
		//nolint goerr113
		err := ircerr.ErrIO.Error(fmt.Errorf("session has no active transport"))
		s.setLastError(err)
		return nil, err
	}

	msg, rerr := s.conn.Read()
	if rerr != nil {
		err := ircerr.ErrIO.Error(rerr)
		s.setLastError(err)
		s.state = Disconnected
		return nil, err
	}

	_, s.colonTrail = msg.Trailing()
	s.handleInbound(msg)

	return msg, nil
}

// Send writes a logical line to the transport, appending "\r\n" if the
// caller did not already.
func (s *Session) Send(line string) ircerr.Error {
	if s.conn == nil {
		//nolint goerr113
		return ircerr.ErrIO.Error(fmt.Errorf("session has no active transport"))
	}

	b := []byte(line)
	if len(b) < 2 || b[len(b)-2] != '\r' || b[len(b)-1] != '\n' {
		b = append(b, '\r', '\n')
	}

	if werr := s.conn.Write(b); werr != nil {
		err := ircerr.ErrIO.Error(werr)
		s.setLastError(err)
		return err
	}
	return nil
}
