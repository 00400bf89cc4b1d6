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

// Package tracker maintains an in-memory, authoritative model of joined
// channels, their members, and observed users, keyed by folded name under
// the session's active case map.
package tracker

import (
	"time"

	"github.com/nabbar/go-srsirc/casemap"
)

// ModeClassifier resolves channel-mode letters against the server's
// advertised CHANMODES/PREFIX parameters. irc.Params implements this
// interface; tracker depends only on the interface to avoid importing irc.
type ModeClassifier interface {
	// ModeClass returns 'A', 'B', 'C', 'D', or 0 for an unknown letter.
	ModeClass(letter byte) byte
	// PrefixRank returns the rank (0 = highest) of a prefix-bearing mode
	// letter, and whether letter is one at all.
	PrefixRank(letter byte) (rank int, ok bool)
	// PrefixSymbol returns the rank-th prefix symbol (e.g. '@' for rank 0).
	PrefixSymbol(rank int) byte
}

// ChannelMode is one active mode on a channel: a letter plus its optional
// argument (e.g. 'k' with argument "secret", or 'm' with no argument).
type ChannelMode struct {
	Letter byte
	Arg    string
}

// User is an observed IRC user: identity fields plus a membership count
// used to decide when the user entry is garbage.
type User struct {
	Nick     string // canonical (most-recently-observed) casing
	Ident    string
	Host     string
	RealName string

	// NChans is the number of tracked channels this user currently
	// belongs to; the user is destroyed when it drops to zero.
	NChans int

	// Dangling marks a user removed from every channel but still
	// referenced elsewhere (debugging aid, mirrors the source model).
	Dangling bool

	// Tag is an opaque slot for caller-attached data.
	Tag any
}

// Member is one user's membership record within one channel: a pointer to
// the shared User plus that user's mode-prefix string in this channel,
// ordered highest rank first (e.g. "@+").
type Member struct {
	User    *User
	Modepfx string
}

// Channel is one tracked channel: topic metadata, the member map (keyed by
// folded nick), and the set of currently active channel modes.
type Channel struct {
	Name string // canonical casing

	Topic      string
	TopicSetBy string
	TopicSetAt time.Time
	CreatedAt  time.Time

	Members *casemap.Map[*Member]

	// Modes holds every currently active mode on the channel, keyed by
	// letter, one entry per letter. Unsetting a mode removes its entry;
	// a mode set without an argument (class D) has an empty Arg.
	Modes map[byte]ChannelMode

	// Desync is set if NAMES end (366) has not yet been observed for a
	// freshly joined channel; membership is provisional until then.
	Desync bool

	// Tag is an opaque slot for caller-attached data, with an auto-free
	// bit the caller can flip to request the tracker release it on PART.
	Tag         any
	TagAutoFree bool
}
