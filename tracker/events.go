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

package tracker

import (
	"strings"
	"time"

	"github.com/nabbar/go-srsirc/casemap"
)

// Join records nick (with ident/host, when known) as a member of channel.
// If isSelf, the channel entry is created if it does not already exist
// (the self-JOIN that brings a channel under tracking); otherwise the
// channel must already exist, since a non-self JOIN can't be observed
// before the session's own JOIN.
func (t *Tracker) Join(channel, nick, ident, host string, isSelf bool) {
	ch, ok := t.channels.Get(channel)
	if !ok {
		if !isSelf {
			return
		}
		ch = &Channel{
			Name:      channel,
			CreatedAt: timeNow(),
			Members:   casemap.NewMap[*Member](t.mapping),
			Modes:     make(map[byte]ChannelMode),
			Desync:    true,
		}
		t.channels.Set(channel, ch)
	}

	u := t.internUser(nick, ident, host)
	if _, exists := ch.Members.Get(nick); exists {
		return
	}

	ch.Members.Set(nick, &Member{User: u})
	u.NChans++
}

// removeMember removes nick from channel's member map, decrements the
// user's channel count, and releases the user if it now belongs to none.
func (t *Tracker) removeMember(channel, nick string) {
	ch, ok := t.channels.Get(channel)
	if !ok {
		return
	}
	m, ok := ch.Members.Get(nick)
	if !ok {
		return
	}
	ch.Members.Delete(nick)
	m.User.NChans--
	t.releaseUser(m.User)
}

// Part removes nick from channel. If nick is the session's own current
// nick, the channel entry itself is dropped (self-PART destroys tracking
// for that channel).
func (t *Tracker) Part(channel, nick string, isSelf bool) {
	t.removeMember(channel, nick)
	if isSelf {
		if ch, ok := t.channels.Get(channel); ok {
			for _, other := range ch.Members.Keys() {
				t.removeMember(channel, other)
			}
		}
		t.channels.Delete(channel)
	}
}

// Kick removes the kicked nick from channel, exactly like Part; isSelf
// marks a self-kick, which also drops the channel entry.
func (t *Tracker) Kick(channel, kickedNick string, isSelf bool) {
	t.Part(channel, kickedNick, isSelf)
}

// Quit removes nick from every channel it was a member of and destroys the
// user entry.
func (t *Tracker) Quit(nick string) {
	u, ok := t.users.Get(nick)
	if !ok {
		return
	}

	for _, chName := range t.channels.Keys() {
		ch, _ := t.channels.Get(chName)
		if _, member := ch.Members.Get(nick); member {
			ch.Members.Delete(nick)
			u.NChans--
		}
	}

	u.NChans = 0
	t.users.Delete(nick)
}

// Nick renames a user in the global user map and in every channel member
// map, preserving NChans and mode-prefix strings; the canonical casing
// stored on User is updated to the new nick.
func (t *Tracker) Nick(oldNick, newNick string) {
	u, ok := t.users.Get(oldNick)
	if !ok {
		return
	}

	u.Nick = newNick
	t.users.Delete(oldNick)
	t.users.Set(newNick, u)

	for _, chName := range t.channels.Keys() {
		ch, _ := t.channels.Get(chName)
		if m, member := ch.Members.Get(oldNick); member {
			ch.Members.Delete(oldNick)
			ch.Members.Set(newNick, m)
		}
	}
}

// Topic sets a channel's topic metadata (from TOPIC, 332, or 333).
func (t *Tracker) Topic(channel, topic, setBy string, setAt time.Time) {
	ch, ok := t.channels.Get(channel)
	if !ok {
		return
	}
	if topic != "" || setBy == "" {
		ch.Topic = topic
	}
	if setBy != "" {
		ch.TopicSetBy = setBy
	}
	if !setAt.IsZero() {
		ch.TopicSetAt = setAt
	}
}

// ModeChange is one applied channel-mode change: the letter, whether it was
// being set (+) or unset (-), and its argument (empty if the mode class
// takes none).
type ModeChange struct {
	Letter byte
	Set    bool
	Arg    string
}

// Mode parses a MODE line's mode string and argument list against mc (the
// server's CHANMODES/PREFIX classification) and applies every recognized
// change: class A/B modes always consume an argument; class C only when
// setting; class D never; prefix-bearing letters adjust the named member's
// mode-prefix string instead of the channel's Modes map. Unknown letters
// are skipped and returned in unknown for the caller to log.
func (t *Tracker) Mode(channel, modeStr string, args []string, mc ModeClassifier) (applied []ModeChange, unknown []byte) {
	ch, ok := t.channels.Get(channel)
	if !ok {
		return nil, nil
	}

	argi := 0
	nextArg := func() (string, bool) {
		if argi >= len(args) {
			return "", false
		}
		a := args[argi]
		argi++
		return a, true
	}

	set := true
	for i := 0; i < len(modeStr); i++ {
		c := modeStr[i]
		switch c {
		case '+':
			set = true
			continue
		case '-':
			set = false
			continue
		}

		if rank, isPrefix := mc.PrefixRank(c); isPrefix {
			arg, ok := nextArg()
			if !ok {
				continue
			}
			applyPrefixChange(ch, arg, mc, rank, set)
			applied = append(applied, ModeChange{Letter: c, Set: set, Arg: arg})
			continue
		}

		class := mc.ModeClass(c)
		var arg string
		switch class {
		case 'A', 'B':
			a, ok := nextArg()
			if !ok {
				continue
			}
			arg = a
		case 'C':
			if set {
				a, ok := nextArg()
				if !ok {
					continue
				}
				arg = a
			}
		case 'D':
			// no argument
		default:
			unknown = append(unknown, c)
			continue
		}

		if set {
			ch.Modes[c] = ChannelMode{Letter: c, Arg: arg}
		} else {
			delete(ch.Modes, c)
		}
		applied = append(applied, ModeChange{Letter: c, Set: set, Arg: arg})
	}

	return applied, unknown
}

func applyPrefixChange(ch *Channel, nick string, mc ModeClassifier, rank int, set bool) {
	m, ok := ch.Members.Get(nick)
	if !ok {
		return
	}

	symbol := mc.PrefixSymbol(rank)
	if symbol == 0 {
		return
	}

	if set {
		if strings.IndexByte(m.Modepfx, symbol) >= 0 {
			return
		}
		m.Modepfx = insertByRank(m.Modepfx, symbol, mc)
	} else {
		m.Modepfx = strings.ReplaceAll(m.Modepfx, string(symbol), "")
	}
}

// insertByRank inserts symbol into pfx keeping descending rank order; rank
// of a symbol already present earlier in the string outranks one added
// later only by virtue of this insertion sort, so prefixes always read
// highest-rank-first as the spec requires.
func insertByRank(pfx string, symbol byte, mc ModeClassifier) string {
	rankOf := func(s byte) int {
		for r := 0; r < 32; r++ {
			if mc.PrefixSymbol(r) == s {
				return r
			}
			if mc.PrefixSymbol(r) == 0 {
				break
			}
		}
		return 1 << 30
	}

	newRank := rankOf(symbol)
	i := 0
	for ; i < len(pfx); i++ {
		if rankOf(pfx[i]) > newRank {
			break
		}
	}
	return pfx[:i] + string(symbol) + pfx[i:]
}

// Names353 ingests one RPL_NAMREPLY entry list: each entry may be prefixed
// by one or more rank symbols (e.g. "@nick", "+nick", "nick"). Unprefixed
// entries get an empty mode-prefix string.
func (t *Tracker) Names353(channel string, entries []string, mc ModeClassifier) {
	ch, ok := t.channels.Get(channel)
	if !ok {
		return
	}

	for _, entry := range entries {
		if entry == "" {
			continue
		}

		i := 0
		for i < len(entry) && isPrefixSymbol(entry[i], mc) {
			i++
		}
		prefixes := entry[:i]
		nick := entry[i:]
		if nick == "" {
			continue
		}

		u := t.internUser(nick, "", "")
		m, exists := ch.Members.Get(nick)
		if !exists {
			m = &Member{User: u}
			ch.Members.Set(nick, m)
			u.NChans++
		}

		for j := 0; j < len(prefixes); j++ {
			if rank, ok := symbolRank(prefixes[j], mc); ok {
				m.Modepfx = insertByRank(m.Modepfx, mc.PrefixSymbol(rank), mc)
			}
		}
	}
}

// Names366 marks channel as fully synced (end of NAMES list observed).
func (t *Tracker) Names366(channel string) {
	if ch, ok := t.channels.Get(channel); ok {
		ch.Desync = false
	}
}

func isPrefixSymbol(b byte, mc ModeClassifier) bool {
	_, ok := symbolRank(b, mc)
	return ok
}

func symbolRank(symbol byte, mc ModeClassifier) (int, bool) {
	for r := 0; r < 32; r++ {
		s := mc.PrefixSymbol(r)
		if s == 0 {
			return 0, false
		}
		if s == symbol {
			return r, true
		}
	}
	return 0, false
}

// timeNow returns the wall clock directly and is not injectable: channel
// creation timestamps are informational only and Channel.CreatedAt is not
// compared in any invariant.
func timeNow() time.Time {
	return time.Now()
}
