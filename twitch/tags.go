package twitch

import (
	"strconv"
	"strings"
)

// EmoteRange is one occurrence of an emote, as the indices of the first and
// last characters of the emote code within the message content.
type EmoteRange struct {
	Begin int
	End   int
}

// Tags carries the IRCv3 tags of a message.  All holds the raw name/value
// pairs exactly as received; the remaining fields are typed projections of
// the tag names known to the parser.  Numeric projections default to 0 when
// a value is absent or unparseable.
type Tags struct {
	// All maps every tag name to its raw, still-escaped value.
	All map[string]string

	// DisplayName is the name of the user as it should be displayed,
	// with proper capitalization.
	DisplayName string

	// Badges is the set of badges shown in front of the user's name.
	Badges map[string]struct{}

	// Emotes maps an emote ID to the instances of that emote in the
	// message content.
	Emotes map[int][]EmoteRange

	// Color is the color of the user's display name in RRGGBB form.
	Color uint32

	// Timestamp is when the message was sent, in seconds past the UNIX
	// epoch, with TimeMilliseconds carrying the fractional part.
	Timestamp        int64
	TimeMilliseconds int

	// ChannelID is the ID of the channel the message was sent to.
	ChannelID uint64

	// UserID is the ID of the user the message is from or about.
	UserID uint64

	// ID is the unique ID of the message.
	ID string
}

// splitNameValue breaks a tag fragment at the first unescaped equal sign.
// A fragment without one is all name and has an empty value.
func splitNameValue(s string) (name, value string) {
	escape := false
	for i := 0; i < len(s); i++ {
		if escape {
			escape = false
		} else if s[i] == '\\' {
			escape = true
		} else if s[i] == '=' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

// UnescapeTagValue replaces the tag-value escape sequences `\s`, `\n`, `\:`
// and `\\` with space, newline, semicolon and backslash.  Unknown escape
// sequences are dropped.
func UnescapeTagValue(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escape := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escape {
			switch c {
			case 's':
				b.WriteByte(' ')
			case 'n':
				b.WriteByte('\n')
			case ':':
				b.WriteByte(';')
			case '\\':
				b.WriteByte('\\')
			}
			escape = false
		} else if c == '\\' {
			escape = true
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func parseTags(unparsed string) (tags Tags) {
	tags.All = map[string]string{}
	if unparsed == "" {
		return
	}
	for _, fragment := range strings.Split(unparsed, ";") {
		if fragment == "" {
			continue
		}
		name, value := splitNameValue(fragment)
		tags.All[name] = value
		switch name {
		case "badges":
			tags.Badges = map[string]struct{}{}
			for _, badge := range strings.Split(value, ",") {
				if badge != "" {
					tags.Badges[badge] = struct{}{}
				}
			}
		case "color":
			if strings.HasPrefix(value, "#") {
				color, err := strconv.ParseUint(value[1:], 16, 32)
				if err == nil {
					tags.Color = uint32(color)
				}
			}
		case "display-name":
			tags.DisplayName = value
		case "emotes":
			tags.Emotes = parseEmotes(value)
		case "tmi-sent-ts":
			ts, err := strconv.ParseUint(value, 10, 64)
			if err == nil {
				tags.Timestamp = int64(ts / 1000)
				tags.TimeMilliseconds = int(ts % 1000)
			}
		case "room-id":
			tags.ChannelID, _ = strconv.ParseUint(value, 10, 64)
		case "user-id", "target-user-id":
			tags.UserID, _ = strconv.ParseUint(value, 10, 64)
		case "id":
			tags.ID = value
		}
	}
	return
}

func parseEmotes(value string) map[int][]EmoteRange {
	emotes := map[int][]EmoteRange{}
	for _, emote := range strings.Split(value, "/") {
		idInstances := strings.SplitN(emote, ":", 2)
		if len(idInstances) != 2 {
			continue
		}
		id, err := strconv.Atoi(idInstances[0])
		if err != nil {
			continue
		}
		for _, instance := range strings.Split(idInstances[1], ",") {
			beginEnd := strings.SplitN(instance, "-", 2)
			if len(beginEnd) != 2 {
				continue
			}
			begin, err := strconv.Atoi(beginEnd[0])
			if err != nil {
				continue
			}
			end, err := strconv.Atoi(beginEnd[1])
			if err != nil {
				continue
			}
			emotes[id] = append(emotes[id], EmoteRange{Begin: begin, End: end})
		}
	}
	return emotes
}
