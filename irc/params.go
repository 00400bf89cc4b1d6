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

	"github.com/nabbar/go-srsirc/casemap"
)

// Params is the per-server-parameters block built from RPL_ISUPPORT (005)
// tokens: the four CHANMODES classes, and the rank-aligned prefix mode
// letters/symbols.
type Params struct {
	// ChanModesA/B/C/D partition channel-mode letters by argument behavior:
	// A always takes an argument (address lists, e.g. ban), B always takes
	// one (e.g. key), C only when setting (e.g. limit), D never.
	ChanModesA string
	ChanModesB string
	ChanModesC string
	ChanModesD string

	// PrefixModes and PrefixSymbols are same-length, rank-aligned strings,
	// index 0 is the highest rank (e.g. "ov" / "@+").
	PrefixModes   string
	PrefixSymbols string

	Network     string
	CaseMapping casemap.Mapping
}

// NewParams returns the RFC 2812 defaults, used until/unless the server's
// 005 line overrides them.
func NewParams() *Params {
	return &Params{
		ChanModesB:    "k",
		ChanModesC:    "l",
		ChanModesD:    "imnpst",
		ChanModesA:    "b",
		PrefixModes:   "ov",
		PrefixSymbols: "@+",
		CaseMapping:   casemap.RFC1459,
	}
}

// Apply parses one 005 token (either "KEY=VAL" or a bare "KEY") and updates
// the recognized fields. It returns true for a known key and also for any
// other token that carries "=VAL"; it returns false for a bare unknown KEY
// and for a malformed PREFIX. A false result is not an error — apply005
// logs the token at Warning and moves on.
func (p *Params) Apply(token string) (recognized bool) {
	key, val, hasVal := strings.Cut(token, "=")
	key = strings.ToUpper(key)

	switch key {
	case "CHANMODES":
		parts := strings.SplitN(val, ",", 4)
		if len(parts) > 0 {
			p.ChanModesA = parts[0]
		}
		if len(parts) > 1 {
			p.ChanModesB = parts[1]
		}
		if len(parts) > 2 {
			p.ChanModesC = parts[2]
		}
		if len(parts) > 3 {
			p.ChanModesD = parts[3]
		}
		return true
	case "PREFIX":
		modes, symbols, ok := parsePrefix(val)
		if ok {
			p.PrefixModes = modes
			p.PrefixSymbols = symbols
		}
		return ok
	case "CASEMAPPING":
		p.CaseMapping = casemap.ParseMapping(val)
		return true
	case "NETWORK":
		p.Network = val
		return true
	default:
		return hasVal || false
	}
}

// parsePrefix splits PREFIX=(ov)@+ into "ov" and "@+".
func parsePrefix(val string) (modes, symbols string, ok bool) {
	if len(val) == 0 || val[0] != '(' {
		return "", "", false
	}
	closeIdx := strings.IndexByte(val, ')')
	if closeIdx < 0 || closeIdx == len(val)-1 {
		return "", "", false
	}
	return val[1:closeIdx], val[closeIdx+1:], true
}

// ModeClass reports which CHANMODES class a mode letter belongs to, or 0 if
// it is not listed in any class (an unknown mode letter).
func (p *Params) ModeClass(letter byte) byte {
	if strings.IndexByte(p.ChanModesA, letter) >= 0 {
		return 'A'
	}
	if strings.IndexByte(p.ChanModesB, letter) >= 0 {
		return 'B'
	}
	if strings.IndexByte(p.ChanModesC, letter) >= 0 {
		return 'C'
	}
	if strings.IndexByte(p.ChanModesD, letter) >= 0 {
		return 'D'
	}
	return 0
}

// PrefixRank returns the rank (0 = highest) of a mode letter in the prefix
// alphabet, and whether it is a prefix-bearing mode at all.
func (p *Params) PrefixRank(letter byte) (rank int, ok bool) {
	i := strings.IndexByte(p.PrefixModes, letter)
	if i < 0 {
		return 0, false
	}
	return i, true
}

// PrefixSymbol returns the rank-th prefix symbol (e.g. '@' for rank 0).
func (p *Params) PrefixSymbol(rank int) byte {
	if rank < 0 || rank >= len(p.PrefixSymbols) {
		return 0
	}
	return p.PrefixSymbols[rank]
}
