package twitch

import (
	"reflect"
	"testing"
)

func TestNextMessageIncompleteLine(t *testing.T) {
	for _, data := range []string{"", "PING", "PING :tmi.twitch.tv", "@tag=1 :prefix PRIVMSG #chan :hi\r"} {
		buf := []byte(data)
		_, _, ok := NextMessage(&buf)
		if ok {
			t.Errorf("%q: expected no message", data)
		}
		if string(buf) != data {
			t.Errorf("%q: buffer changed to %q", data, buf)
		}
	}
}

func TestNextMessage(t *testing.T) {
	cases := []struct {
		line    string
		prefix  string
		command string
		params  []string
	}{
		{
			line:    "PING :tmi.twitch.tv",
			command: "PING",
			params:  []string{"tmi.twitch.tv"},
		},
		{
			line:    ":bob!bob@bob.tmi.twitch.tv PRIVMSG #room :hello to  you",
			prefix:  "bob!bob@bob.tmi.twitch.tv",
			command: "PRIVMSG",
			params:  []string{"#room", "hello to  you"},
		},
		{
			line:    ":tmi.twitch.tv CAP * LS :twitch.tv/tags",
			prefix:  "tmi.twitch.tv",
			command: "CAP",
			params:  []string{"*", "LS", "twitch.tv/tags"},
		},
		{
			line:    "376",
			command: "376",
		},
		{
			// Runs of spaces between tokens are skipped.
			line:    ":p   CMD   a   b",
			prefix:  "p",
			command: "CMD",
			params:  []string{"a", "b"},
		},
		{
			// An empty trailer is still one parameter.
			line:    "CMD :",
			command: "CMD",
			params:  []string{""},
		},
		{
			line:    "@badge-info=;id=x :tmi.twitch.tv CLEARCHAT #room bob",
			prefix:  "tmi.twitch.tv",
			command: "CLEARCHAT",
			params:  []string{"#room", "bob"},
		},
	}
	for _, c := range cases {
		buf := []byte(c.line + "\r\n")
		msg, raw, ok := NextMessage(&buf)
		if !ok {
			t.Errorf("%q: expected a message", c.line)
			continue
		}
		if raw != c.line {
			t.Errorf("%q: raw line is %q", c.line, raw)
		}
		if len(buf) != 0 {
			t.Errorf("%q: %q left in buffer", c.line, buf)
		}
		if msg.Prefix != c.prefix {
			t.Errorf("%q: prefix is %q, expected %q", c.line, msg.Prefix, c.prefix)
		}
		if msg.Command != c.command {
			t.Errorf("%q: command is %q, expected %q", c.line, msg.Command, c.command)
		}
		if !reflect.DeepEqual(msg.Params, c.params) {
			t.Errorf("%q: params are %#v, expected %#v", c.line, msg.Params, c.params)
		}
	}
}

func TestNextMessageMalformed(t *testing.T) {
	// Lines that end before the command starts signal the error with an
	// empty command.
	for _, line := range []string{"", ":prefixonly", "@tags=only", "@tags=only ", ":prefix ", "@tags :prefix "} {
		buf := []byte(line + "\r\n")
		msg, _, ok := NextMessage(&buf)
		if !ok {
			t.Errorf("%q: expected the line to be consumed", line)
			continue
		}
		if msg.Command != "" {
			t.Errorf("%q: command is %q, expected empty", line, msg.Command)
		}
		if len(buf) != 0 {
			t.Errorf("%q: %q left in buffer", line, buf)
		}
	}
}

func TestNextMessageConsumesOneLine(t *testing.T) {
	buf := []byte("PING :a\r\n376 bob :>\r\nPART")
	msg, _, ok := NextMessage(&buf)
	if !ok || msg.Command != "PING" {
		t.Fatalf("first message is %#v", msg)
	}
	msg, _, ok = NextMessage(&buf)
	if !ok || msg.Command != "376" {
		t.Fatalf("second message is %#v", msg)
	}
	if _, _, ok := NextMessage(&buf); ok {
		t.Fatal("expected no third message")
	}
	if string(buf) != "PART" {
		t.Fatalf("buffer is %q, expected the partial line", buf)
	}
}

func TestNickname(t *testing.T) {
	cases := []struct {
		prefix string
		nick   string
	}{
		{"alice!alice@alice.tmi.twitch.tv", "alice"},
		{"tmi.twitch.tv", ""},
		{"", ""},
	}
	for _, c := range cases {
		msg := Message{Prefix: c.prefix}
		if nick := msg.Nickname(); nick != c.nick {
			t.Errorf("%q: nickname is %q, expected %q", c.prefix, nick, c.nick)
		}
	}
}
