package tmi

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ChatLog persists received messages and the links they contain to a SQLite
// database.
type ChatLog struct {
	db *sql.DB
}

func OpenChatLog(path string) (*ChatLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY,
			at INTEGER,
			channel TEXT,
			user TEXT,
			content TEXT,
			bits INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS links (
			id INTEGER PRIMARY KEY,
			at INTEGER,
			channel TEXT,
			user TEXT,
			url TEXT
		);`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}
	return &ChatLog{db: db}, nil
}

func (l *ChatLog) Close() error {
	return l.db.Close()
}

func (l *ChatLog) RecordMessage(channel, user, content string, bits int) error {
	_, err := l.db.Exec(
		"INSERT INTO messages (at, channel, user, content, bits) VALUES (?, ?, ?, ?, ?);",
		time.Now().Unix(), channel, user, content, bits,
	)
	return err
}

func (l *ChatLog) RecordLink(channel, user, url string) error {
	_, err := l.db.Exec(
		"INSERT INTO links (at, channel, user, url) VALUES (?, ?, ?, ?);",
		time.Now().Unix(), channel, user, url,
	)
	return err
}

// RecentMessages returns up to limit messages of the channel, newest first.
func (l *ChatLog) RecentMessages(channel string, limit int) ([]LoggedMessage, error) {
	rows, err := l.db.Query(
		"SELECT at, user, content, bits FROM messages WHERE channel = ? ORDER BY id DESC LIMIT ?;",
		channel, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []LoggedMessage
	for rows.Next() {
		var m LoggedMessage
		var at int64
		if err := rows.Scan(&at, &m.User, &m.Content, &m.Bits); err != nil {
			return nil, err
		}
		m.At = time.Unix(at, 0)
		m.Channel = channel
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

type LoggedMessage struct {
	At      time.Time
	Channel string
	User    string
	Content string
	Bits    int
}
