package tmi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
	"mvdan.cc/xurls/v2"

	"git.sr.ht/~avafel/tmi/twitch"
)

// messageInterval paces outbound messages under Twitch's limit of 20
// messages per 30 seconds for regular users.
const messageInterval = 1500 * time.Millisecond

// App is a line-oriented Twitch chat client: it drives one session, prints
// incoming events through its logger, and records messages and links to an
// optional chat log.
type App struct {
	twitch.NoopHandler

	cfg     Config
	logger  *log.Logger
	session *twitch.Session
	chatLog *ChatLog
	limiter *rate.Limiter

	// lastChannel is the target of bare input lines.
	mu          sync.Mutex
	lastChannel string

	loggedOut chan struct{}
	closeOnce sync.Once
}

func NewApp(cfg Config) (*App, error) {
	if !cfg.Anonymous && cfg.Token == "" {
		return nil, errors.New("token is required unless logging in anonymously")
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tmi",
	})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	app := &App{
		cfg:       cfg,
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Every(messageInterval), 1),
		loggedOut: make(chan struct{}),
	}
	if len(cfg.Channels) > 0 {
		app.lastChannel = cfg.Channels[0]
	}

	if cfg.ChatLog != "" {
		chatLog, err := OpenChatLog(cfg.ChatLog)
		if err != nil {
			return nil, fmt.Errorf("error opening chat log: %v", err)
		}
		app.chatLog = chatLog
	}

	session := twitch.NewSession()
	session.SetConnectionFactory(func() twitch.Connection {
		return twitch.NewNetConnection(cfg.Addr, cfg.TLS)
	})
	session.SetClock(twitch.NewSystemClock())
	session.SetHandler(app)
	session.SubscribeDiagnostics(func(line string) {
		logger.Debug(line)
	})
	app.session = session

	return app, nil
}

func (app *App) Close() {
	app.session.Close()
	if app.chatLog != nil {
		app.chatLog.Close()
	}
}

// Run logs in and processes commands from input until the session ends or
// input is exhausted.  It returns when the session has logged out.
func (app *App) Run(input io.Reader) error {
	if app.cfg.Anonymous {
		app.session.LogInAnonymously()
	} else {
		app.session.LogIn(app.cfg.Nick, app.cfg.Token)
	}

	go app.inputLoop(input)

	<-app.loggedOut
	return nil
}

func (app *App) inputLoop(input io.Reader) {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		app.handleInput(line)
	}
}

func (app *App) handleInput(line string) {
	if !strings.HasPrefix(line, "/") {
		app.mu.Lock()
		channel := app.lastChannel
		app.mu.Unlock()
		if channel == "" {
			app.logger.Error("no channel to send to; /join one first")
			return
		}
		app.sendMessage(channel, line)
		return
	}

	command, rest, _ := strings.Cut(line[1:], " ")
	switch command {
	case "join":
		app.mu.Lock()
		app.lastChannel = rest
		app.mu.Unlock()
		app.session.Join(rest)
	case "leave", "part":
		app.session.Leave(rest)
	case "msg":
		channel, text, ok := strings.Cut(rest, " ")
		if !ok {
			app.logger.Error("usage: /msg <channel> <text>")
			return
		}
		app.sendMessage(channel, text)
	case "reply":
		args := strings.SplitN(rest, " ", 3)
		if len(args) < 3 {
			app.logger.Error("usage: /reply <channel> <message-id> <text>")
			return
		}
		if err := app.limiter.Wait(context.Background()); err == nil {
			app.session.SendResponse(args[0], args[2], args[1])
		}
	case "w", "whisper":
		nick, text, ok := strings.Cut(rest, " ")
		if !ok {
			app.logger.Error("usage: /w <nickname> <text>")
			return
		}
		app.session.SendWhisper(nick, text)
	case "quit":
		app.session.LogOut(rest)
	default:
		app.logger.Error("unknown command", "command", command)
	}
}

func (app *App) sendMessage(channel, text string) {
	if err := app.limiter.Wait(context.Background()); err != nil {
		return
	}
	app.session.SendMessage(channel, text)
}

// LogIn joins the configured channels once the server accepts us.
func (app *App) LogIn() {
	app.logger.Info("logged in", "addr", app.cfg.Addr)
	for _, channel := range app.cfg.Channels {
		app.session.Join(channel)
	}
}

func (app *App) LogOut() {
	app.logger.Info("logged out")
	app.closeOnce.Do(func() { close(app.loggedOut) })
}

func (app *App) Doom() {
	// The server is about to drop us; no reconnection is attempted.
	app.logger.Warn("server is going down, logging out")
	app.session.LogOut("server going down")
}

func (app *App) Join(info twitch.MembershipInfo) {
	app.logger.Info("join", "channel", info.Channel, "user", info.User)
}

func (app *App) Leave(info twitch.MembershipInfo) {
	app.logger.Info("leave", "channel", info.Channel, "user", info.User)
}

func (app *App) NameList(info twitch.NameListInfo) {
	app.logger.Info("names", "channel", info.Channel, "count", len(info.Names))
}

func (app *App) Message(info twitch.MessageInfo) {
	name := info.User
	if info.Tags.DisplayName != "" {
		name = info.Tags.DisplayName
	}
	if info.IsAction {
		app.logger.Info(fmt.Sprintf("#%s * %s %s", info.Channel, name, info.Content))
	} else {
		app.logger.Info(fmt.Sprintf("#%s <%s> %s", info.Channel, name, info.Content))
	}
	app.recordMessage(info)
}

func (app *App) PrivateMessage(info twitch.MessageInfo) {
	app.logger.Info(fmt.Sprintf("<%s> %s", info.User, info.Content))
}

func (app *App) Whisper(info twitch.WhisperInfo) {
	app.logger.Info(fmt.Sprintf("[whisper] <%s> %s", info.User, info.Content))
}

func (app *App) Notice(info twitch.NoticeInfo) {
	app.logger.Info("notice", "channel", info.Channel, "id", info.ID, "text", info.Content)
}

func (app *App) Host(info twitch.HostInfo) {
	if info.On {
		app.logger.Info("hosting", "channel", info.Hosting, "target", info.BeingHosted, "viewers", info.Viewers)
	} else {
		app.logger.Info("hosting stopped", "channel", info.Hosting)
	}
}

func (app *App) RoomModeChange(info twitch.RoomModeChangeInfo) {
	app.logger.Info("room mode", "channel", info.Channel, "mode", info.Mode, "parameter", info.Parameter)
}

func (app *App) Clear(info twitch.ClearInfo) {
	switch info.Type {
	case twitch.ClearAll:
		app.logger.Info("chat cleared", "channel", info.Channel)
	case twitch.ClearMessage:
		app.logger.Info("message deleted", "channel", info.Channel, "user", info.User, "id", info.OffendingMessageID)
	case twitch.ClearTimeout:
		app.logger.Info("timeout", "channel", info.Channel, "user", info.User, "seconds", info.Duration, "reason", info.Reason)
	case twitch.ClearBan:
		app.logger.Info("ban", "channel", info.Channel, "user", info.User, "reason", info.Reason)
	}
}

func (app *App) Mod(info twitch.ModInfo) {
	app.logger.Info("mod", "channel", info.Channel, "user", info.User, "moderator", info.Mod)
}

func (app *App) Sub(info twitch.SubInfo) {
	app.logger.Info("sub", "channel", info.Channel, "user", info.User, "message", info.SystemMessage)
}

func (app *App) Raid(info twitch.RaidInfo) {
	app.logger.Info("raid", "channel", info.Channel, "raider", info.Raider, "viewers", info.Viewers)
}

func (app *App) recordMessage(info twitch.MessageInfo) {
	if app.chatLog == nil {
		return
	}
	if err := app.chatLog.RecordMessage(info.Channel, info.User, info.Content, info.Bits); err != nil {
		app.logger.Error("error recording message", "err", err)
		return
	}
	for _, url := range extractLinks(info.Content) {
		if err := app.chatLog.RecordLink(info.Channel, info.User, url); err != nil {
			app.logger.Error("error recording link", "err", err)
		}
	}
}

var urlPattern = xurls.Strict()

func extractLinks(content string) []string {
	return urlPattern.FindAllString(content, -1)
}
