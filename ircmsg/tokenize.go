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

package ircmsg

// Tokenize splits one already-framed line (as returned by
// RingBuffer.Frame) into a Message. Prefix, Command and every Params
// entry are copied out of line as strings; Raw is line itself, so it is
// only valid until the backing array is reused; call (*Message).Clone to
// retain Raw longer.
func Tokenize(line []byte) (*Message, error) {
	m := &Message{Raw: line}

	rest := line
	if len(rest) > 0 && rest[0] == ':' {
		i := indexByte(rest, ' ')
		if i < 0 {
			m.Prefix = string(rest[1:])
			rest = rest[len(rest):]
		} else {
			m.Prefix = string(rest[1:i])
			rest = skipSpaces(rest[i:])
		}
	}

	i := indexByte(rest, ' ')
	if i < 0 {
		if len(rest) == 0 {
			return nil, ErrEmptyCommand.Error(nil)
		}
		m.Command = string(rest)
		return m, nil
	}
	m.Command = string(rest[:i])
	rest = skipSpaces(rest[i:])

	if m.Command == "" {
		return nil, ErrEmptyCommand.Error(nil)
	}

	params := make([]string, 0, 15)
	for len(rest) > 0 {
		if rest[0] == ':' {
			params = append(params, string(rest[1:]))
			m.hasTrailing = true
			break
		}

		i = indexByte(rest, ' ')
		if i < 0 {
			params = append(params, string(rest))
			break
		}

		params = append(params, string(rest[:i]))
		rest = skipSpaces(rest[i:])
	}

	m.Params = params
	return m, nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func skipSpaces(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == ' ' {
		i++
	}
	return b[i:]
}
