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

import "github.com/nabbar/go-srsirc/casemap"

// Tracker owns the two session-wide maps (channels, users), both keyed by
// folded name under the active case map. The irc package creates one when
// the embedder opts into tracking (Config.Tracking or SetTracking); no
// server capability is checked. When tracking is off the irc package
// simply never calls it.
type Tracker struct {
	mapping  casemap.Mapping
	channels *casemap.Map[*Channel]
	users    *casemap.Map[*User]
}

// New returns an empty Tracker folding keys under mapping.
func New(mapping casemap.Mapping) *Tracker {
	return &Tracker{
		mapping:  mapping,
		channels: casemap.NewMap[*Channel](mapping),
		users:    casemap.NewMap[*User](mapping),
	}
}

// SetMapping re-folds the tracker under a new case map, used when the
// server's CASEMAPPING 005 token arrives after the tracker was created with
// the RFC1459 default. Existing entries are re-keyed under the new folding.
func (t *Tracker) SetMapping(mapping casemap.Mapping) {
	if mapping == t.mapping {
		return
	}

	next := casemap.NewMap[*Channel](mapping)
	t.channels.Iterate(func(key string, val *Channel) bool {
		next.Set(val.Name, val)
		return true
	})
	t.channels = next

	nextUsers := casemap.NewMap[*User](mapping)
	t.users.Iterate(func(key string, val *User) bool {
		nextUsers.Set(val.Nick, val)
		return true
	})
	t.users = nextUsers

	t.mapping = mapping
}

// Mapping returns the case map the tracker currently folds keys under.
func (t *Tracker) Mapping() casemap.Mapping {
	return t.mapping
}

// Channel returns the tracked channel by name, if any.
func (t *Tracker) Channel(name string) (*Channel, bool) {
	return t.channels.Get(name)
}

// User returns the tracked user by nick, if any.
func (t *Tracker) User(nick string) (*User, bool) {
	return t.users.Get(nick)
}

// Channels returns every currently tracked channel name.
func (t *Tracker) Channels() []string {
	return t.channels.Keys()
}

// Users returns every currently tracked user nick.
func (t *Tracker) Users() []string {
	return t.users.Keys()
}

// Reset clears both maps, used on session disconnect/reset.
func (t *Tracker) Reset() {
	t.channels = casemap.NewMap[*Channel](t.mapping)
	t.users = casemap.NewMap[*User](t.mapping)
}

func (t *Tracker) internUser(nick, ident, host string) *User {
	if u, ok := t.users.Get(nick); ok {
		u.Nick = nick
		if ident != "" {
			u.Ident = ident
		}
		if host != "" {
			u.Host = host
		}
		return u
	}

	u := &User{Nick: nick, Ident: ident, Host: host}
	t.users.Set(nick, u)
	return u
}

func (t *Tracker) releaseUser(u *User) {
	if u.NChans > 0 {
		return
	}
	if existing, ok := t.users.Get(u.Nick); ok && existing == u {
		t.users.Delete(u.Nick)
	}
}
