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

// Package ircmsg implements RFC1459 line framing and tokenization: a ring
// buffer that extracts one CRLF/LF/CR-terminated line at a time from a
// streaming transport, and a tokenizer that splits that line into prefix,
// command and parameters. IRCv3 message tags are not parsed.
package ircmsg

import liberr "github.com/nabbar/go-srsirc/errors"

const (
	// ErrLineTooLong is raised when a line exceeds MaxLineLength without a
	// terminator having been found yet.
	ErrLineTooLong liberr.CodeError = liberr.MinPkgIRCMsg + iota + 1
	// ErrLeadingSpace is raised when a line begins with a space.
	ErrLeadingSpace
	// ErrEmptyCommand is raised when tokenizing yields no command token.
	ErrEmptyCommand
)

func init() {
	liberr.RegisterIdFctMessage(ErrLineTooLong, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrLineTooLong:
		return "line exceeds the maximum length without a terminator"
	case ErrLeadingSpace:
		return "line begins with a space"
	case ErrEmptyCommand:
		return "line has no command token"
	}
	return ""
}

// MaxLineLength is the wire cap on a single IRC line (RFC1459 §2.3), CRLF
// included.
const MaxLineLength = 512

// Message is one parsed IRC line: the optional prefix, the command token
// and its parameters. Raw aliases the framed line (the ring buffer's
// backing array); Prefix, Command and every entry of Params are string
// copies and stay valid after the buffer is reused.
type Message struct {
	Raw     []byte
	Prefix  string
	Command string
	Params  []string

	hasTrailing bool
}

// Trailing returns the last parameter and true if the message carried a
// colon-prefixed trailing parameter, distinguishing "PRIVMSG #chan :"
// (empty trailing, ok=true) from a message with no trailing parameter at
// all (ok=false).
func (m *Message) Trailing() (string, bool) {
	if m == nil || !m.hasTrailing {
		return "", false
	}
	if len(m.Params) == 0 {
		return "", true
	}
	return m.Params[len(m.Params)-1], true
}

// Clone returns a deep copy of m whose Raw no longer aliases the ring
// buffer, safe to retain past the next Read call that reuses the buffer's
// backing array.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}

	raw := make([]byte, len(m.Raw))
	copy(raw, m.Raw)

	params := make([]string, len(m.Params))
	copy(params, m.Params)

	return &Message{
		Raw:         raw,
		Prefix:      m.Prefix,
		Command:     m.Command,
		Params:      params,
		hasTrailing: m.hasTrailing,
	}
}
