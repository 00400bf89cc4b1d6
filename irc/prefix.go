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

import "strings"

// SplitPrefix splits a message prefix ("nick!user@host", "nick@host", or
// bare "nick") into its three components. Missing parts are returned as
// empty strings.
func SplitPrefix(prefix string) (nick, user, host string) {
	atIdx := strings.IndexByte(prefix, '@')
	if atIdx < 0 {
		return prefix, "", ""
	}
	host = prefix[atIdx+1:]

	left := prefix[:atIdx]
	bangIdx := strings.IndexByte(left, '!')
	if bangIdx < 0 {
		return left, "", host
	}
	return left[:bangIdx], left[bangIdx+1:], host
}

func (s *Session) foldEqual(a, b string) bool {
	if s.tracker != nil {
		return s.tracker.Mapping().Equal(a, b)
	}
	return s.params.CaseMapping.Equal(a, b)
}
