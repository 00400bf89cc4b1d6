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

// Package casemap implements the three case-folding rules IRC servers
// advertise via ISUPPORT CASEMAPPING, plus a generic, case-folding bucketed
// hash map used to key channels/members/users without allocating a folded
// copy of every key on every lookup.
package casemap

// Mapping identifies which CASEMAPPING fold table to apply.
type Mapping uint8

const (
	// ASCII folds only 'A'-'Z' to 'a'-'z'.
	ASCII Mapping = iota
	// RFC1459 additionally folds {}|^ to []\~.
	RFC1459
	// StrictRFC1459 additionally folds {}| to []\ but leaves ^ and ~ alone.
	StrictRFC1459
)

// ParseMapping converts an ISUPPORT CASEMAPPING token into a Mapping,
// defaulting to RFC1459 (the historical default before CASEMAPPING was
// advertised at all) when the token is unrecognized.
func ParseMapping(token string) Mapping {
	switch token {
	case "ascii":
		return ASCII
	case "strict-rfc1459":
		return StrictRFC1459
	case "rfc1459", "":
		return RFC1459
	default:
		return RFC1459
	}
}

// FoldByte folds a single byte according to m.
func (m Mapping) FoldByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}

	switch m {
	case RFC1459:
		switch b {
		case '{':
			return '['
		case '}':
			return ']'
		case '|':
			return '\\'
		case '^':
			return '~'
		}
	case StrictRFC1459:
		switch b {
		case '{':
			return '['
		case '}':
			return ']'
		case '|':
			return '\\'
		}
	}

	return b
}

// Fold returns a lower-cased copy of s using m's fold table. It allocates;
// Map below avoids this allocation on the hot lookup path by folding
// byte-by-byte during comparison instead.
func (m Mapping) Fold(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = m.FoldByte(s[i])
	}
	return string(out)
}

// Equal reports whether a and b are equal under m's fold table, without
// allocating a folded copy of either.
func (m Mapping) Equal(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if m.FoldByte(a[i]) != m.FoldByte(b[i]) {
			return false
		}
	}
	return true
}

// Hash returns a case-folded FNV-1a hash of s, used to bucket Map entries.
func (m Mapping) Hash(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)

	var h uint64 = offset64
	for i := 0; i < len(s); i++ {
		h ^= uint64(m.FoldByte(s[i]))
		h *= prime64
	}
	return h
}
