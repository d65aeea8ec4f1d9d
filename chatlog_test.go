package tmi

import (
	"path/filepath"
	"testing"
)

func TestChatLogRoundTrip(t *testing.T) {
	chatLog, err := OpenChatLog(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer chatLog.Close()

	if err := chatLog.RecordMessage("room", "alice", "first", 0); err != nil {
		t.Fatal(err)
	}
	if err := chatLog.RecordMessage("room", "bob", "second", 100); err != nil {
		t.Fatal(err)
	}
	if err := chatLog.RecordMessage("other", "carol", "elsewhere", 0); err != nil {
		t.Fatal(err)
	}
	if err := chatLog.RecordLink("room", "alice", "https://example.com"); err != nil {
		t.Fatal(err)
	}

	messages, err := chatLog.RecentMessages("room", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 2 {
		t.Fatalf("messages are %#v", messages)
	}
	// Newest first.
	if messages[0].User != "bob" || messages[0].Content != "second" || messages[0].Bits != 100 {
		t.Errorf("first message is %#v", messages[0])
	}
	if messages[1].User != "alice" || messages[1].Content != "first" {
		t.Errorf("second message is %#v", messages[1])
	}
}

func TestExtractLinks(t *testing.T) {
	links := extractLinks("see https://example.com/a and http://b.example.org, nothing else")
	if len(links) != 2 || links[0] != "https://example.com/a" || links[1] != "http://b.example.org" {
		t.Errorf("links are %#v", links)
	}
}
