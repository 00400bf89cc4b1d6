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
	"strings"

	"github.com/nabbar/go-srsirc/ircerr"
	"github.com/nabbar/go-srsirc/ircmsg"
)

// registeringWelcomeNumerics is the set of numerics whose receipt moves the
// session from REGISTERING to REGISTERED, per the logon state machine.
var registeringWelcomeNumerics = map[string]bool{
	"001": true, "002": true, "003": true, "004": true,
	"005": true, "422": true, "376": true,
}

// beginLogon sends the registration lines (PASS if configured, then NICK
// and USER or SERVICE) and moves the session to REGISTERING.
func (s *Session) beginLogon() ircerr.Error {
	if s.cfg.Pass != "" {
		if err := s.Send("PASS " + s.cfg.Pass); err != nil {
			return err
		}
	}

	if err := s.Send("NICK " + s.nick); err != nil {
		return err
	}

	var regLine string
	if s.cfg.Service.Enable {
		regLine = fmt.Sprintf("SERVICE %s * %s %s * :%s",
			s.nick, s.cfg.Service.Dist, s.cfg.Service.Type, s.cfg.Service.Info)
	} else {
		fname := s.cfg.FName
		if fname == "" {
			fname = s.cfg.User
		}
		regLine = fmt.Sprintf("USER %s %d * :%s", s.cfg.User, s.cfg.ConnFlags, fname)
	}

	if err := s.Send(regLine); err != nil {
		return err
	}

	s.state = Registering
	return nil
}

// handleInbound is the single entry point every message read off the
// transport passes through: logon capture, state-machine transitions,
// automatic PING response, nick-collision retry, fatal-numeric handling,
// and the Pre/builtin/Post dispatch chain, which runs for every message
// that does not end the session, during logon as well as after it.
func (s *Session) handleInbound(msg *ircmsg.Message) {
	cmd := strings.ToUpper(msg.Command)

	// Capture is gated on slot count alone, not live state: REGISTERING can
	// end on the very first welcome numeric (001), but the capture buffer
	// is meant to hold the first four non-PING messages of the whole logon
	// exchange, several of which typically arrive after that transition.
	if cmd != "PING" && s.logonCount < logonCaptureSlots {
		s.logonBuf[s.logonCount] = msg.Clone()
		s.logonCount++
	}

	if cmd == "PING" && !s.cfg.Dumb {
		payload := ""
		if len(msg.Params) > 0 {
			payload = msg.Params[0]
		}
		_ = s.Send("PONG :" + payload)
	}

	if s.state == Registering {
		s.handleRegistering(cmd, msg)
		if s.state == Disconnected {
			// a fatal numeric (464/465/ERROR) already tore down the session
			return
		}
	}

	if cmd == "004" && len(msg.Params) >= 3 {
		s.serverVers = msg.Params[1] + " " + msg.Params[2]
	}

	if cmd == "005" {
		s.apply005(msg)
	}

	if registeringWelcomeNumerics[cmd] && s.state != Registered {
		s.state = Registered
	}

	if cmd == "001" && len(msg.Params) > 0 {
		s.nick = msg.Params[0]
		if t, ok := msg.Trailing(); ok {
			if f := strings.Fields(t); len(f) > 0 && strings.ContainsAny(f[len(f)-1], "!@") {
				s.hostmask = f[len(f)-1]
			}
		}
	}

	s.dispatchMessage(msg, s.builtinTrackerHandler)
}

// handleRegistering reacts to the numerics the logon conversation can
// produce before the session reaches REGISTERED: nick collision retry and
// the two fatal outcomes (bad password, banned) plus an explicit ERROR.
func (s *Session) handleRegistering(cmd string, msg *ircmsg.Message) {
	switch cmd {
	case "432", "433", "436":
		s.nick = mutateNick(s.nick, s.rng)
		_ = s.Send("NICK " + s.nick)
	case "464":
		err := ircerr.ErrLogonPassword.Error(nil)
		s.setLastError(err)
		s.Disconnect()
	case "465":
		s.banned = true
		if t, ok := msg.Trailing(); ok {
			s.banMsg = t
		}
		err := ircerr.ErrLogonBanned.Error(nil)
		s.setLastError(err)
		s.Disconnect()
	case "ERROR":
		//nolint goerr113
		err := ircerr.ErrLogonFatal.Error(fmt.Errorf("server sent ERROR during registration"))
		s.setLastError(err)
		s.Disconnect()
	}
}

// apply005 parses every KEY[=VAL] token of an RPL_ISUPPORT line, updating
// s.params, and re-folds the tracker's maps if CASEMAPPING changed.
func (s *Session) apply005(msg *ircmsg.Message) {
	prevMapping := s.params.CaseMapping

	// Params[0] is the target nick, the last param (if colon-introduced)
	// is the free-text "are supported by this server" trailer, not a token.
	tokens := msg.Params
	if len(tokens) > 0 {
		tokens = tokens[1:]
	}
	if _, hasTrailing := msg.Trailing(); hasTrailing && len(tokens) > 0 {
		tokens = tokens[:len(tokens)-1]
	}

	for _, tok := range tokens {
		if !s.params.Apply(tok) {
			s.warnf("unrecognized 005 token", tok)
		}
	}

	if s.tracker != nil && s.params.CaseMapping != prevMapping {
		s.tracker.SetMapping(s.params.CaseMapping)
	}
}
