package twitch

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// logInTimeoutSeconds bounds each stage of the log-in handshake when the
// session has a clock.
const logInTimeoutSeconds = 5.0

// pendingResponsePark bounds how long the worker sleeps between timeout
// checks while actions await server responses.
const pendingResponsePark = 50 * time.Millisecond

// anonymousNicknamePattern matches only the nickname of an anonymous
// Twitch user.
var anonymousNicknamePattern = regexp.MustCompile(`^justinfan[0-9]+$`)

type actionKind int

const (
	// actionLogIn establishes a new connection and uses it to log in.
	actionLogIn actionKind = iota

	// actionRequestCaps awaits the response to a capability request.
	actionRequestCaps

	// actionAwaitMotd awaits the message of the day from the server.
	actionAwaitMotd

	// actionLogOut logs out and closes the active connection.
	actionLogOut

	// actionProcessMessagesReceived processes data from the server.
	actionProcessMessagesReceived

	// actionServerDisconnected handles the server closing its end.
	actionServerDisconnected

	actionJoin
	actionLeave
	actionSendMessage
	actionSendWhisper
)

// action conveys one unit of caller intent for the worker to perform, or to
// hold while awaiting a server response.
type action struct {
	kind     actionKind
	nickname string
	token    string
	message  string

	// parent, when not empty, is the ID of the message that a message to
	// be sent replies to.
	parent string

	anonymous bool

	// expiration is the clock time at which the action times out while
	// awaiting a response; 0 means no deadline.
	expiration float64
}

// Session is a user agent for the Twitch messaging interface: it logs into
// chat, joins and leaves channels, sends messages and whispers, and
// dispatches server events to a Handler.
//
// The log-in, channel and send methods post work to a single worker
// goroutine and return without blocking; the worker owns the connection and
// the protocol state.  Close waits for the worker to exit.
type Session struct {
	mu    sync.Mutex
	wake  chan struct{}
	stop  bool
	queue []action

	factory ConnectionFactory
	clock   Clock
	handler Handler

	diag diagnosticsSender
	done chan struct{}

	// Everything below is owned by the worker goroutine and accessed
	// without locking.

	conn          Connection
	dataReceived  []byte
	anonymous     bool
	loggedIn      bool
	awaiting      []action
	capsSupported map[string]struct{}
}

// NewSession creates an idle session and starts its worker.  Close must be
// called to release the worker.
func NewSession() *Session {
	s := &Session{
		wake:    make(chan struct{}, 1),
		handler: NoopHandler{},
		done:    make(chan struct{}),
	}
	go s.worker()
	return s
}

// Close stops the worker and waits for it to exit.  The session must not be
// used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.stop = true
	s.mu.Unlock()
	s.wakeWorker()
	<-s.done
}

// SetConnectionFactory provides the session with its means of establishing
// connections to the Twitch server.
func (s *Session) SetConnectionFactory(factory ConnectionFactory) {
	s.mu.Lock()
	s.factory = factory
	s.mu.Unlock()
}

// SetClock provides the session with its means of measuring elapsed time.
// Without a clock, handshake timeouts are not enforced.
func (s *Session) SetClock(clock Clock) {
	s.mu.Lock()
	s.clock = clock
	s.mu.Unlock()
}

// SetHandler sets the object receiving the session's events.  Handler
// callbacks run on the worker goroutine.
func (s *Session) SetHandler(handler Handler) {
	s.mu.Lock()
	s.handler = handler
	s.mu.Unlock()
}

// SubscribeDiagnostics registers a listener for the session's wire
// diagnostics and returns a function cancelling the subscription.
func (s *Session) SubscribeDiagnostics(l DiagnosticListener) (unsubscribe func()) {
	return s.diag.subscribe(l)
}

// LogIn starts logging into the Twitch server as a registered user or bot.
// The token is the OAuth token authenticating the nickname.
func (s *Session) LogIn(nickname, token string) {
	s.post(action{
		kind:     actionLogIn,
		nickname: nickname,
		token:    token,
	})
}

// LogInAnonymously starts logging into the Twitch server as an anonymous
// viewer.  The nickname is drawn from the process-wide random source;
// uniqueness across clients is not guaranteed.
func (s *Session) LogInAnonymously() {
	s.post(action{
		kind:      actionLogIn,
		nickname:  fmt.Sprintf("justinfan%d", rand.Int()),
		anonymous: true,
	})
}

// LogOut starts logging out of the Twitch server.  The farewell is included
// in the QUIT command sent just before the connection is closed.
func (s *Session) LogOut(farewell string) {
	s.post(action{kind: actionLogOut, message: farewell})
}

// Join starts joining a chat channel.
func (s *Session) Join(channel string) {
	s.post(action{kind: actionJoin, nickname: channel})
}

// Leave starts leaving a chat channel.
func (s *Session) Leave(channel string) {
	s.post(action{kind: actionLeave, nickname: channel})
}

// SendMessage sends a message to a chat channel.
func (s *Session) SendMessage(channel, message string) {
	s.post(action{kind: actionSendMessage, nickname: channel, message: message})
}

// SendResponse sends a message to a chat channel in reply to the message
// with the given parent ID.
func (s *Session) SendResponse(channel, message, parent string) {
	s.post(action{
		kind:     actionSendMessage,
		nickname: channel,
		message:  message,
		parent:   parent,
	})
}

// SendWhisper sends a whisper to another user.
func (s *Session) SendWhisper(nickname, message string) {
	s.post(action{kind: actionSendWhisper, nickname: nickname, message: message})
}

// post appends one action to the intake queue and wakes the worker.  It
// never blocks.
func (s *Session) post(a action) {
	s.mu.Lock()
	s.queue = append(s.queue, a)
	s.mu.Unlock()
	s.wakeWorker()
}

func (s *Session) wakeWorker() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Session) user() Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler
}

func (s *Session) timeSource() Clock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

func (s *Session) connFactory() ConnectionFactory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.factory
}

// worker is the session's single background goroutine.  Each pass it times
// out expired awaiting actions, drains the intake queue, then parks: for at
// most pendingResponsePark when responses are pending, indefinitely
// otherwise.
func (s *Session) worker() {
	defer close(s.done)
	for {
		if clock := s.timeSource(); clock != nil {
			s.processTimeouts(clock)
		}
		s.mu.Lock()
		for len(s.queue) > 0 {
			a := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			s.perform(a)
			s.mu.Lock()
		}
		stop := s.stop
		s.mu.Unlock()
		if stop {
			return
		}
		if s.conn == nil {
			s.awaiting = s.awaiting[:0]
		}
		if len(s.awaiting) > 0 {
			select {
			case <-s.wake:
			case <-time.After(pendingResponsePark):
			}
		} else {
			<-s.wake
		}
	}
}

func (s *Session) perform(a action) {
	switch a.kind {
	case actionLogIn:
		s.performLogIn(a)
	case actionLogOut:
		s.disconnect(a.message)
	case actionProcessMessagesReceived:
		s.performProcessMessagesReceived(a)
	case actionServerDisconnected:
		s.disconnect("")
	case actionJoin:
		if s.conn != nil {
			s.sendLine("JOIN #" + a.nickname)
		}
	case actionLeave:
		if s.conn != nil {
			s.sendLine("PART #" + a.nickname)
		}
	case actionSendMessage:
		s.performSendMessage(a)
	case actionSendWhisper:
		if s.conn == nil || s.anonymous {
			return
		}
		s.sendLine("PRIVMSG #jtv :.w " + a.nickname + " " + a.message)
	}
}

// sendLine sends one line to the server, terminating it with CRLF and
// publishing it to diagnostics with the OAuth token redacted.
func (s *Session) sendLine(rawLine string) {
	if strings.HasPrefix(rawLine, "PASS oauth:") {
		s.diag.send("< PASS oauth:**********************")
	} else {
		s.diag.send("< " + rawLine)
	}
	s.conn.Send(rawLine + crlf)
}

func (s *Session) performLogIn(a action) {
	if s.conn != nil {
		return
	}
	factory := s.connFactory()
	if factory == nil {
		s.user().LogOut()
		return
	}
	conn := factory()
	conn.SetMessageReceived(func(data string) {
		s.post(action{kind: actionProcessMessagesReceived, message: data})
	})
	conn.SetDisconnected(func() {
		s.post(action{kind: actionServerDisconnected})
	})
	if err := conn.Connect(); err != nil {
		s.user().LogOut()
		return
	}
	s.conn = conn
	s.capsSupported = map[string]struct{}{}
	s.anonymous = a.anonymous
	s.sendLine("CAP LS 302")
	if clock := s.timeSource(); clock != nil {
		a.expiration = clock.Now() + logInTimeoutSeconds
	}
	s.awaiting = append(s.awaiting, a)
}

func (s *Session) performSendMessage(a action) {
	if s.conn == nil || s.anonymous {
		return
	}
	if a.parent == "" {
		s.sendLine("PRIVMSG #" + a.nickname + " :" + a.message)
	} else {
		s.sendLine("@reply-parent-msg-id=" + a.parent + " PRIVMSG #" + a.nickname + " :" + a.message)
	}
}

func (s *Session) performProcessMessagesReceived(a action) {
	s.dataReceived = append(s.dataReceived, a.message...)
	for {
		msg, raw, ok := NextMessage(&s.dataReceived)
		if !ok {
			break
		}
		s.diag.send("> " + raw)
		s.handleCommand(msg)
	}
}

// disconnect is the canonical connection teardown.  With a farewell, a QUIT
// is sent first.  Exactly one LogOut callback fires per held connection;
// without one, disconnect is a no-op.
func (s *Session) disconnect(farewell string) {
	if s.conn == nil {
		return
	}
	if farewell != "" {
		s.sendLine("QUIT :" + farewell)
	}
	s.conn.Disconnect()
	s.user().LogOut()
	s.conn = nil
	s.loggedIn = false
	s.awaiting = s.awaiting[:0]
	s.capsSupported = nil
}

// processTimeouts removes every awaiting action whose deadline has passed
// and runs its timeout behavior.
func (s *Session) processTimeouts(clock Clock) {
	now := clock.Now()
	var expired []action
	kept := s.awaiting[:0]
	for _, a := range s.awaiting {
		if a.expiration != 0 && now >= a.expiration {
			expired = append(expired, a)
		} else {
			kept = append(kept, a)
		}
	}
	s.awaiting = kept
	for _, a := range expired {
		switch a.kind {
		case actionLogIn:
			s.disconnect("Timeout waiting for capability list")
		case actionRequestCaps:
			s.disconnect("Timeout waiting for response to capability request")
		case actionAwaitMotd:
			s.disconnect("Timeout waiting for MOTD")
		}
	}
}

// awaitProcessor examines one message in the context of one awaiting
// action.  It reports whether the action completed and should be removed.
type awaitProcessor func(s *Session, a *action, msg Message) bool

var (
	capProcessors = map[actionKind]awaitProcessor{
		actionLogIn:       (*Session).processLogInCap,
		actionRequestCaps: (*Session).processRequestCapsCap,
	}
	motdProcessors = map[actionKind]awaitProcessor{
		actionAwaitMotd: (*Session).processAwaitMotdMotd,
	}
	loginFailProcessors = map[actionKind]awaitProcessor{
		actionAwaitMotd: (*Session).discardAction,
	}
)

// processAwaiting runs the given message through every awaiting action that
// has a processor, removing the actions the processors complete.  Entries
// appended by a processor are not themselves visited.
func (s *Session) processAwaiting(msg Message, procs map[actionKind]awaitProcessor) {
	n := len(s.awaiting)
	for i := 0; i < n; {
		proc, ok := procs[s.awaiting[i].kind]
		if ok && proc(s, &s.awaiting[i], msg) {
			s.awaiting = append(s.awaiting[:i], s.awaiting[i+1:]...)
			n--
		} else {
			i++
		}
	}
}

func (s *Session) discardAction(a *action, msg Message) bool {
	return true
}

// processLogInCap merges capability list chunks.  On the final chunk the
// handshake either proceeds straight to authentication, when the server
// already advertises every capability used with Twitch chat, or requests
// them first.
func (s *Session) processLogInCap(a *action, msg Message) bool {
	if len(msg.Params) < 3 || msg.Params[1] != "LS" {
		return false
	}
	if msg.Params[2] == "*" {
		if len(msg.Params) >= 4 {
			s.addSupportedCaps(msg.Params[3])
		}
		return false
	}
	s.addSupportedCaps(msg.Params[2])
	if s.hasCap(CapCommands) && s.hasCap(CapMembership) && s.hasCap(CapTags) {
		s.endCapabilitiesHandshakeAndAuthenticate(*a)
	} else {
		s.requestCapabilities(*a)
	}
	return true
}

func (s *Session) processRequestCapsCap(a *action, msg Message) bool {
	if len(msg.Params) < 2 || (msg.Params[1] != "ACK" && msg.Params[1] != "NAK") {
		return false
	}
	// The handshake proceeds whether or not the server granted the
	// capabilities.
	s.endCapabilitiesHandshakeAndAuthenticate(*a)
	return true
}

func (s *Session) processAwaitMotdMotd(a *action, msg Message) bool {
	if !s.loggedIn {
		s.loggedIn = true
		s.user().LogIn()
	}
	return true
}

func (s *Session) addSupportedCaps(list string) {
	for _, c := range strings.Split(list, " ") {
		if c != "" {
			s.capsSupported[c] = struct{}{}
		}
	}
}

func (s *Session) hasCap(capability string) bool {
	_, ok := s.capsSupported[capability]
	return ok
}

// requestCapabilities asks the server for the capabilities used with Twitch
// chat and turns the awaiting entry into a RequestCaps one.
func (s *Session) requestCapabilities(a action) {
	s.sendLine("CAP REQ :" + CapCommands + " " + CapMembership + " " + CapTags)
	a.kind = actionRequestCaps
	if clock := s.timeSource(); clock != nil {
		a.expiration = clock.Now() + logInTimeoutSeconds
	}
	s.awaiting = append(s.awaiting, a)
}

// endCapabilitiesHandshakeAndAuthenticate closes capability negotiation,
// submits the user's credentials, and begins awaiting the message of the
// day confirming a successful log-in.
func (s *Session) endCapabilitiesHandshakeAndAuthenticate(a action) {
	s.sendLine("CAP END")
	if !s.anonymous {
		s.sendLine("PASS oauth:" + a.token)
	}
	s.sendLine("NICK " + a.nickname)
	a.kind = actionAwaitMotd
	if clock := s.timeSource(); clock != nil {
		a.expiration = clock.Now() + logInTimeoutSeconds
	}
	s.awaiting = append(s.awaiting, a)
}

func (s *Session) handleCommand(msg Message) {
	switch msg.Command {
	case rplNamReply:
		s.handleNameList(msg)
	case rplEndOfMotd:
		s.processAwaiting(msg, motdProcessors)
	case cmdCap:
		s.processAwaiting(msg, capProcessors)
	case cmdPing:
		s.handlePing(msg)
	case cmdJoin:
		s.handleMembership(msg, s.user().Join)
	case cmdPart:
		s.handleMembership(msg, s.user().Leave)
	case cmdPrivMsg:
		s.handlePrivMsg(msg)
	case cmdWhisper:
		s.handleWhisper(msg)
	case cmdNotice:
		s.handleNotice(msg)
	case cmdHostTarget:
		s.handleHostTarget(msg)
	case cmdRoomState:
		s.handleRoomState(msg)
	case cmdClearChat:
		s.handleClearChat(msg)
	case cmdClearMsg:
		s.handleClearMessage(msg)
	case cmdMode:
		s.handleMode(msg)
	case cmdGlobalUserState:
		s.user().UserState(UserStateInfo{Global: true, Tags: msg.Tags})
	case cmdUserState:
		s.handleUserState(msg)
	case cmdReconnect:
		s.user().Doom()
	case cmdUserNotice:
		s.handleUserNotice(msg)
	}
}

func (s *Session) handleNameList(msg Message) {
	if len(msg.Params) < 4 || len(msg.Params[2]) < 2 {
		return
	}
	var names []string
	for _, name := range strings.Split(msg.Params[3], " ") {
		if name != "" {
			names = append(names, name)
		}
	}
	s.user().NameList(NameListInfo{
		Channel: msg.Params[2][1:],
		Names:   names,
	})
}

func (s *Session) handlePing(msg Message) {
	if len(msg.Params) < 1 {
		return
	}
	if s.conn != nil {
		s.sendLine("PONG :" + msg.Params[0])
	}
}

func (s *Session) handleMembership(msg Message, callback func(MembershipInfo)) {
	if len(msg.Params) < 1 || len(msg.Params[0]) < 2 {
		return
	}
	nickname := msg.Nickname()
	if nickname == "" || anonymousNicknamePattern.MatchString(nickname) {
		return
	}
	callback(MembershipInfo{
		User:    nickname,
		Channel: msg.Params[0][1:],
	})
}

func (s *Session) handlePrivMsg(msg Message) {
	if len(msg.Params) < 2 {
		return
	}
	info := MessageInfo{
		Tags:      msg.Tags,
		User:      msg.Nickname(),
		MessageID: msg.Tags.ID,
	}
	content := msg.Params[1]
	if strings.HasPrefix(content, "\x01ACTION ") && strings.HasSuffix(content, "\x01") {
		info.IsAction = true
		info.Content = content[8 : len(content)-1]
	} else {
		info.Content = content
	}
	if bits, ok := msg.Tags.All["bits"]; ok {
		info.Bits, _ = strconv.Atoi(bits)
		if info.Bits < 0 {
			info.Bits = 0
		}
	}
	if strings.HasPrefix(msg.Params[0], "#") {
		info.Channel = msg.Params[0][1:]
		s.user().Message(info)
	} else {
		s.user().PrivateMessage(info)
	}
}

func (s *Session) handleWhisper(msg Message) {
	if len(msg.Params) < 2 {
		return
	}
	s.user().Whisper(WhisperInfo{
		Tags:    msg.Tags,
		User:    msg.Nickname(),
		Content: msg.Params[1],
	})
}

func (s *Session) handleNotice(msg Message) {
	if len(msg.Params) < 2 {
		return
	}
	text := msg.Params[1]
	notice := NoticeInfo{
		ID:      msg.Tags.All["msg-id"],
		Content: text,
	}
	if msg.Params[0] != "*" && len(msg.Params[0]) >= 1 {
		notice.Channel = msg.Params[0][1:]
	}
	s.user().Notice(notice)
	if !s.loggedIn && (text == "Login unsuccessful" || text == "Login authentication failed") {
		s.user().LogOut()
		s.processAwaiting(msg, loginFailProcessors)
	}
}

func (s *Session) handleHostTarget(msg Message) {
	if len(msg.Params) < 2 || len(msg.Params[0]) < 2 {
		return
	}
	host := HostInfo{
		Hosting: msg.Params[0][1:],
	}
	parts := strings.Split(msg.Params[1], " ")
	if parts[0] != "-" {
		host.On = true
		host.BeingHosted = parts[0]
	}
	if len(parts) >= 2 {
		host.Viewers, _ = strconv.Atoi(parts[1])
		if host.Viewers < 0 {
			host.Viewers = 0
		}
	}
	s.user().Host(host)
}

// roomModes lists the room modes announced via ROOMSTATE, in the order
// their change events are emitted.
var roomModes = []string{"slow", "followers-only", "r9k", "emote-only", "subs-only"}

func (s *Session) handleRoomState(msg Message) {
	if len(msg.Params) < 1 || len(msg.Params[0]) < 2 {
		return
	}
	for _, mode := range roomModes {
		value, ok := msg.Tags.All[mode]
		if !ok {
			continue
		}
		parameter, err := strconv.Atoi(value)
		if err != nil {
			parameter = 0
		}
		s.user().RoomModeChange(RoomModeChangeInfo{
			Channel:   msg.Params[0][1:],
			ChannelID: msg.Tags.ChannelID,
			Mode:      mode,
			Parameter: parameter,
		})
	}
}

func (s *Session) handleClearChat(msg Message) {
	if len(msg.Params) < 1 || len(msg.Params[0]) < 2 {
		return
	}
	clear := ClearInfo{
		Tags:    msg.Tags,
		Channel: msg.Params[0][1:],
	}
	if len(msg.Params) == 1 {
		clear.Type = ClearAll
	} else {
		clear.User = msg.Params[1]
		if reason, ok := msg.Tags.All["ban-reason"]; ok {
			clear.Reason = UnescapeTagValue(reason)
		}
		if duration, ok := msg.Tags.All["ban-duration"]; ok {
			clear.Type = ClearTimeout
			clear.Duration, _ = strconv.Atoi(duration)
			if clear.Duration < 0 {
				clear.Duration = 0
			}
		} else {
			clear.Type = ClearBan
		}
	}
	s.user().Clear(clear)
}

func (s *Session) handleClearMessage(msg Message) {
	if len(msg.Params) < 2 || len(msg.Params[0]) < 2 {
		return
	}
	s.user().Clear(ClearInfo{
		Tags:                    msg.Tags,
		Type:                    ClearMessage,
		Channel:                 msg.Params[0][1:],
		User:                    msg.Tags.All["login"],
		OffendingMessageID:      msg.Tags.All["target-msg-id"],
		OffendingMessageContent: msg.Params[1],
	})
}

func (s *Session) handleMode(msg Message) {
	if len(msg.Params) < 3 || len(msg.Params[0]) < 2 || len(msg.Params[1]) < 2 {
		return
	}
	mod := ModInfo{
		Channel: msg.Params[0][1:],
		User:    msg.Params[2],
	}
	switch msg.Params[1] {
	case "+o":
		mod.Mod = true
	case "-o":
		mod.Mod = false
	default:
		return
	}
	s.user().Mod(mod)
}

func (s *Session) handleUserState(msg Message) {
	if len(msg.Params) < 1 || len(msg.Params[0]) < 2 {
		return
	}
	s.user().UserState(UserStateInfo{
		Channel: msg.Params[0][1:],
		Tags:    msg.Tags,
	})
}

func (s *Session) handleUserNotice(msg Message) {
	if len(msg.Params) < 1 || len(msg.Params[0]) < 2 {
		return
	}
	messageID, ok := msg.Tags.All["msg-id"]
	if !ok {
		return
	}
	channel := msg.Params[0][1:]
	switch messageID {
	case "ritual":
		s.user().Ritual(RitualInfo{
			Tags:          msg.Tags,
			Channel:       channel,
			User:          msg.Tags.All["login"],
			Ritual:        msg.Tags.All["msg-param-ritual-name"],
			SystemMessage: UnescapeTagValue(msg.Tags.All["system-msg"]),
		})
	case "raid":
		raid := RaidInfo{
			Tags:          msg.Tags,
			Channel:       channel,
			Raider:        msg.Tags.All["login"],
			SystemMessage: UnescapeTagValue(msg.Tags.All["system-msg"]),
		}
		raid.Viewers, _ = strconv.Atoi(msg.Tags.All["msg-param-viewerCount"])
		if raid.Viewers < 0 {
			raid.Viewers = 0
		}
		s.user().Raid(raid)
	default:
		s.handleSubNotice(msg, channel, messageID)
	}
}

func (s *Session) handleSubNotice(msg Message, channel, messageID string) {
	sub := SubInfo{
		Tags:          msg.Tags,
		Channel:       channel,
		User:          msg.Tags.All["login"],
		SystemMessage: UnescapeTagValue(msg.Tags.All["system-msg"]),
		PlanName:      UnescapeTagValue(msg.Tags.All["msg-param-sub-plan-name"]),
	}
	if len(msg.Params) >= 2 {
		sub.UserMessage = msg.Params[1]
	}
	sub.PlanID, _ = strconv.ParseUint(msg.Tags.All["msg-param-sub-plan"], 10, 64)
	switch messageID {
	case "sub":
		sub.Type = SubTypeSub
	case "resub":
		sub.Type = SubTypeResub
		sub.Months = tagInt(msg.Tags, "msg-param-months")
	case "subgift":
		sub.Type = SubTypeGifted
		sub.RecipientDisplayName = msg.Tags.All["msg-param-recipient-display-name"]
		sub.RecipientUserName = msg.Tags.All["msg-param-recipient-user-name"]
		sub.RecipientID, _ = strconv.ParseUint(msg.Tags.All["msg-param-recipient-id"], 10, 64)
		sub.SenderCount = tagInt(msg.Tags, "msg-param-sender-count")
	case "submysterygift":
		sub.Type = SubTypeMysteryGift
		sub.MassGiftCount = tagInt(msg.Tags, "msg-param-mass-gift-count")
		sub.SenderCount = tagInt(msg.Tags, "msg-param-sender-count")
	}
	s.user().Sub(sub)
}

func tagInt(tags Tags, name string) int {
	n, err := strconv.Atoi(tags.All[name])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
