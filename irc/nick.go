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

import "math/rand"

// maxMutatedNickLen is the length at which underscore-appending stops and
// the mutator switches to replacing a random interior digit.
const maxMutatedNickLen = 9

// mutateNick implements the collision-retry sequence from a 432/433/436
// numeric: append '_' until the nickname reaches maxMutatedNickLen, then
// replace a random character in positions [1, len-1] with a random digit.
// rng is a math/rand source, never crypto/rand. NewSession seeds
// Session.rng from the clock, so the sequence differs between sessions;
// passing a fixed-seed rng makes it reproducible.
func mutateNick(nick string, rng *rand.Rand) string {
	if len(nick) < maxMutatedNickLen {
		return nick + "_"
	}

	b := []byte(nick)
	if len(b) > maxMutatedNickLen {
		b = b[:maxMutatedNickLen]
	}

	pos := 1 + rng.Intn(len(b)-1)
	b[pos] = byte('0' + rng.Intn(10))
	return string(b)
}
