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
	"strings"

	"github.com/nabbar/go-srsirc/ircmsg"
)

// Decision is a handler's verdict on whether dispatch should keep walking
// the handler chain for this message.
type Decision uint8

const (
	Continue Decision = iota
	Stop
)

// Phase tags a handler as running before or after the session's built-in
// reactions for a command (PING auto-pong, tracker updates, …).
type Phase uint8

const (
	Pre Phase = iota
	Post
)

// Handler observes (and may react to) one inbound message.
type Handler func(s *Session, msg *ircmsg.Message) Decision

type handlerEntry struct {
	phase Phase
	fn    Handler
}

// OnMessage registers fn to run for every message whose Command matches cmd
// (case-insensitive), in the given phase. Pre handlers run before the
// session's built-in reaction for that command; Post handlers run after.
func (s *Session) OnMessage(cmd string, phase Phase, fn Handler) {
	cmd = strings.ToUpper(cmd)
	s.dispatch[cmd] = append(s.dispatch[cmd], handlerEntry{phase: phase, fn: fn})
}

// dispatchMessage runs every handler registered for msg.Command in Pre, built-in,
// Post order. built-in is the session's own numeric/PING/tracker reaction,
// supplied by the caller of dispatch (logon.go / builtin.go).
func (s *Session) dispatchMessage(msg *ircmsg.Message, builtin Handler) {
	cmd := strings.ToUpper(msg.Command)
	entries := s.dispatch[cmd]

	for _, e := range entries {
		if e.phase != Pre {
			continue
		}
		if e.fn(s, msg) == Stop {
			return
		}
	}

	if builtin != nil {
		if builtin(s, msg) == Stop {
			return
		}
	}

	for _, e := range entries {
		if e.phase != Post {
			continue
		}
		if e.fn(s, msg) == Stop {
			return
		}
	}
}
