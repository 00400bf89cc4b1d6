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
	"math/rand"
	"time"

	"github.com/nabbar/go-srsirc/iconn"
	"github.com/nabbar/go-srsirc/ircerr"
	"github.com/nabbar/go-srsirc/ircmsg"
	"github.com/nabbar/go-srsirc/logger"
	"github.com/nabbar/go-srsirc/tracker"
)

// logonCaptureSlots is the size of the logon conversation capture buffer:
// the first four non-PING messages received during registration.
const logonCaptureSlots = 4

// Session is the client-facing handle: configuration, live registration
// state, the transport, the optional tracker, and the dispatch table.
//
// A *Session is not safe for concurrent use — see iconn.Conn's doc.go for
// the same single-goroutine-ownership rationale, which applies here too
// since Session drives a Conn directly.
type Session struct {
	cfg *Config

	conn    *iconn.Conn
	state   State
	tracker *tracker.Tracker

	nick       string
	hostmask   string
	params     *Params
	serverVers string

	banned bool
	banMsg string

	colonTrail bool

	logonBuf   [logonCaptureSlots]*ircmsg.Message
	logonCount int

	dispatch map[string][]handlerEntry

	lastErr ircerr.Error
	log     logger.Logger

	rng *rand.Rand
}

// NewSession validates cfg and returns an unconnected Session; call Connect
// to start the transport and logon sequence.
func NewSession(cfg *Config) (*Session, ircerr.Error) {
	if cfg == nil {
		return nil, ircerr.ErrConfig.Error(nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		state:    Disconnected,
		nick:     cfg.Nick,
		params:   NewParams(),
		dispatch: make(map[string][]handlerEntry),
		log:      logger.New(context.Background()),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if cfg.Tracking {
		s.tracker = tracker.New(s.params.CaseMapping)
	}

	return s, nil
}

// SetLogger replaces the session's diagnostic logger. Diagnostic lines for
// silently-tolerated conditions (bare unknown 005 token, malformed PREFIX,
// unknown mode letter) go through Warning.
func (s *Session) SetLogger(l logger.Logger) {
	if l != nil {
		s.log = l
	}
}

// LastError returns the most recent ircerr.Error the session recorded, or
// nil if none occurred since the last Connect.
func (s *Session) LastError() error {
	if s.lastErr == nil {
		return nil
	}
	return s.lastErr
}

// State returns the session's current logon state.
func (s *Session) State() State {
	return s.state
}

// Online reports whether the session is REGISTERED.
func (s *Session) Online() bool {
	return s.state == Registered
}

// Banned reports whether the server banned this session on connect.
func (s *Session) Banned() bool {
	return s.banned
}

// BanMessage returns the server's ban message, if Banned is true.
func (s *Session) BanMessage() string {
	return s.banMsg
}

// Nick returns the session's current, server-confirmed nickname.
func (s *Session) Nick() string {
	return s.nick
}

// Hostmask returns the session's own hostmask, captured from RPL_WELCOME
// when the server provides one, empty otherwise.
func (s *Session) Hostmask() string {
	return s.hostmask
}

// ServerVersion returns the server name/version string captured from
// RPL_MYINFO (numeric 004), empty before it is received.
func (s *Session) ServerVersion() string {
	return s.serverVers
}

// Params returns the session's current 005/ISUPPORT parameters block.
func (s *Session) Params() *Params {
	return s.params
}

// Tracker returns the session's channel/user tracker, or nil if tracking
// is disabled.
func (s *Session) Tracker() *tracker.Tracker {
	return s.tracker
}

// ColonTrail reports whether the most recently received message's last
// argument was colon-introduced — a heuristic callers may mirror on
// output. It can be wrong immediately after a reconnect.
func (s *Session) ColonTrail() bool {
	return s.colonTrail
}

// LogonConversation returns the logon capture buffer: the first (up to 4)
// non-PING messages received since Connect, including those that arrive
// after the session reached REGISTERED.
func (s *Session) LogonConversation() []*ircmsg.Message {
	return s.logonBuf[:s.logonCount]
}

func (s *Session) setLastError(err ircerr.Error) {
	s.lastErr = err
}

func (s *Session) warnf(message string, data interface{}) {
	if s.log != nil {
		s.log.Warning(message, data)
	}
}
