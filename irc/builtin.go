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
	"time"

	"github.com/nabbar/go-srsirc/ircmsg"
)

// builtinTrackerHandler is the session's built-in reaction to a dispatched
// message: it keeps the tracker consistent for the events in §4.G.
// PRIVMSG/NOTICE are passthrough (no built-in reaction beyond delivery to
// registered handlers). It always returns Continue: tracking is an
// observer, never a gate on delivery.
func (s *Session) builtinTrackerHandler(sess *Session, msg *ircmsg.Message) Decision {
	if s.tracker == nil {
		return Continue
	}

	cmd := strings.ToUpper(msg.Command)
	nick, ident, host := SplitPrefix(msg.Prefix)

	switch cmd {
	case "JOIN":
		if len(msg.Params) == 0 {
			return Continue
		}
		channel := msg.Params[0]
		s.tracker.Join(channel, nick, ident, host, s.foldEqual(nick, s.nick))

	case "PART":
		if len(msg.Params) == 0 {
			return Continue
		}
		channel := msg.Params[0]
		s.tracker.Part(channel, nick, s.foldEqual(nick, s.nick))

	case "KICK":
		if len(msg.Params) < 2 {
			return Continue
		}
		channel := msg.Params[0]
		kicked := msg.Params[1]
		s.tracker.Kick(channel, kicked, s.foldEqual(kicked, s.nick))

	case "QUIT":
		s.tracker.Quit(nick)

	case "NICK":
		newNick := ""
		if t, ok := msg.Trailing(); ok {
			newNick = t
		} else if len(msg.Params) > 0 {
			newNick = msg.Params[0]
		}
		if newNick != "" {
			s.tracker.Nick(nick, newNick)
			if s.foldEqual(nick, s.nick) {
				s.nick = newNick
			}
		}

	case "MODE":
		if len(msg.Params) < 2 {
			return Continue
		}
		channel := msg.Params[0]
		modeStr := msg.Params[1]
		args := msg.Params[2:]
		_, unknown := s.tracker.Mode(channel, modeStr, args, s.params)
		for _, u := range unknown {
			s.warnf("unknown channel mode letter", string(u))
		}

	case "TOPIC":
		if len(msg.Params) == 0 {
			return Continue
		}
		channel := msg.Params[0]
		topic, _ := msg.Trailing()
		s.tracker.Topic(channel, topic, nick, time.Now())

	case "332": // RPL_TOPIC
		if len(msg.Params) < 2 {
			return Continue
		}
		channel := msg.Params[1]
		topic, _ := msg.Trailing()
		s.tracker.Topic(channel, topic, "", time.Time{})

	case "333": // RPL_TOPICWHOTIME
		if len(msg.Params) < 3 {
			return Continue
		}
		channel := msg.Params[1]
		setter := msg.Params[2]
		s.tracker.Topic(channel, "", setter, time.Time{})

	case "353": // RPL_NAMREPLY
		if len(msg.Params) < 3 {
			return Continue
		}
		channel := msg.Params[2]
		names, _ := msg.Trailing()
		s.tracker.Names353(channel, strings.Fields(names), s.params)

	case "366": // RPL_ENDOFNAMES
		if len(msg.Params) < 2 {
			return Continue
		}
		s.tracker.Names366(msg.Params[1])
	}

	return Continue
}
