package twitch

import (
	"reflect"
	"testing"
)

func TestUnescapeTagValue(t *testing.T) {
	cases := []struct {
		escaped   string
		unescaped string
	}{
		{`hello\sworld`, "hello world"},
		{`a\nb`, "a\nb"},
		{`semi\:colon`, "semi;colon"},
		{`back\\slash`, `back\slash`},
		{`plain`, "plain"},
		// Unknown escape sequences are dropped.
		{`a\rb`, "ab"},
		{`trailing\`, "trailing"},
	}
	for _, c := range cases {
		if got := UnescapeTagValue(c.escaped); got != c.unescaped {
			t.Errorf("%q: got %q, expected %q", c.escaped, got, c.unescaped)
		}
	}
}

func TestParseTagsRawValues(t *testing.T) {
	buf := []byte(`@mystery=b\sc;empty=;flag;known\=odd=x=y :p CMD` + "\r\n")
	msg, _, ok := NextMessage(&buf)
	if !ok {
		t.Fatal("expected a message")
	}
	// Values in All stay raw; names split at the first unescaped '='.
	expected := map[string]string{
		`mystery`:    `b\sc`,
		`empty`:      ``,
		`flag`:       ``,
		`known\=odd`: `x=y`,
	}
	if !reflect.DeepEqual(msg.Tags.All, expected) {
		t.Errorf("tags are %#v, expected %#v", msg.Tags.All, expected)
	}
}

func TestParseTagsTypedProjections(t *testing.T) {
	tags := parseTags(`badges=broadcaster/1,subscriber/0;color=#1E90FF;` +
		`display-name=Bob;emotes=25:0-4,6-10/1902:12-16;` +
		`tmi-sent-ts=1507246572675;room-id=1337;user-id=42;id=abc-def`)
	if _, ok := tags.Badges["broadcaster/1"]; !ok {
		t.Error("broadcaster badge missing")
	}
	if _, ok := tags.Badges["subscriber/0"]; !ok {
		t.Error("subscriber badge missing")
	}
	if tags.Color != 0x1E90FF {
		t.Errorf("color is %#x", tags.Color)
	}
	if tags.DisplayName != "Bob" {
		t.Errorf("display name is %q", tags.DisplayName)
	}
	expectedEmotes := map[int][]EmoteRange{
		25:   {{Begin: 0, End: 4}, {Begin: 6, End: 10}},
		1902: {{Begin: 12, End: 16}},
	}
	if !reflect.DeepEqual(tags.Emotes, expectedEmotes) {
		t.Errorf("emotes are %#v", tags.Emotes)
	}
	if tags.Timestamp != 1507246572 || tags.TimeMilliseconds != 675 {
		t.Errorf("timestamp is %d.%03d", tags.Timestamp, tags.TimeMilliseconds)
	}
	if tags.ChannelID != 1337 {
		t.Errorf("channel ID is %d", tags.ChannelID)
	}
	if tags.UserID != 42 {
		t.Errorf("user ID is %d", tags.UserID)
	}
	if tags.ID != "abc-def" {
		t.Errorf("id is %q", tags.ID)
	}
}

func TestParseTagsTargetUserID(t *testing.T) {
	tags := parseTags("target-user-id=99")
	if tags.UserID != 99 {
		t.Errorf("user ID is %d", tags.UserID)
	}
}

func TestParseTagsNumericDefaults(t *testing.T) {
	// Numeric projections never fail; they default to zero.
	tags := parseTags("color=notacolor;tmi-sent-ts=soon;room-id=x;user-id=y")
	if tags.Color != 0 {
		t.Errorf("color is %#x", tags.Color)
	}
	if tags.Timestamp != 0 || tags.TimeMilliseconds != 0 {
		t.Errorf("timestamp is %d.%03d", tags.Timestamp, tags.TimeMilliseconds)
	}
	if tags.ChannelID != 0 {
		t.Errorf("channel ID is %d", tags.ChannelID)
	}
	if tags.UserID != 0 {
		t.Errorf("user ID is %d", tags.UserID)
	}
}

func TestParseTagsMalformedEmotes(t *testing.T) {
	tags := parseTags("emotes=25:0-4,bad/nope/1902:3-x")
	expected := map[int][]EmoteRange{
		25: {{Begin: 0, End: 4}},
	}
	if !reflect.DeepEqual(tags.Emotes, expected) {
		t.Errorf("emotes are %#v", tags.Emotes)
	}
}
