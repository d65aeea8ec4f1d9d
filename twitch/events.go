package twitch

// MessageInfo describes a chat message received in a channel, or privately.
type MessageInfo struct {
	Tags Tags

	// Channel is the channel the message was sent to.  It is empty for
	// private messages.
	Channel string

	// User is the name of the user who sent the message.
	User string

	// Content is the text of the message.  For "/me" messages the ACTION
	// wrapper is stripped and IsAction is set instead.
	Content string

	// MessageID is the unique ID of the message.
	MessageID string

	// Bits is the number of bits cheered with the message.
	Bits int

	IsAction bool
}

// WhisperInfo describes a whisper received from another user.
type WhisperInfo struct {
	Tags    Tags
	User    string
	Content string
}

// NoticeInfo describes a notice received from the server.
type NoticeInfo struct {
	// ID is the machine-readable notice ID from the msg-id tag.
	ID string

	Content string

	// Channel is the channel the notice applies to, or "" for a global
	// server notice.
	Channel string
}

// MembershipInfo describes a change of channel membership.
type MembershipInfo struct {
	Channel string
	User    string
}

// HostInfo describes a hosting change.
type HostInfo struct {
	// On indicates whether hosting was turned on or off.
	On bool

	// Hosting is the channel doing the hosting.
	Hosting string

	// BeingHosted is the channel being hosted, when hosting is on.
	BeingHosted string

	// Viewers is the number of viewers visiting the hosted channel.
	Viewers int
}

// RoomModeChangeInfo describes a change of one chat room mode.
type RoomModeChangeInfo struct {
	// Mode is one of "slow", "followers-only", "r9k", "emote-only" or
	// "subs-only".
	Mode string

	// Parameter accompanies the mode: seconds for slow mode, minutes for
	// followers-only (-1 when off), 1/0 on-off for the others.
	Parameter int

	Channel   string
	ChannelID uint64
}

// ClearType identifies what kind of chat clear happened.
type ClearType int

const (
	// ClearAll clears all messages from chat.
	ClearAll ClearType = iota

	// ClearMessage deletes one message from chat.
	ClearMessage

	// ClearTimeout forbids a user from chatting for a fixed duration.
	ClearTimeout

	// ClearBan permanently bans a user from the channel.
	ClearBan
)

// ClearInfo describes a chat clear, a deleted message, a timeout or a ban.
type ClearInfo struct {
	Tags Tags

	Type    ClearType
	Channel string

	// User is the timed-out or banned user (ClearTimeout, ClearBan), or
	// the author of the deleted message (ClearMessage).
	User string

	// Reason explains the timeout or ban, if the server provided one.
	Reason string

	// OffendingMessageID and OffendingMessageContent identify the deleted
	// message for ClearMessage clears.
	OffendingMessageID      string
	OffendingMessageContent string

	// Duration is the timeout length in seconds for ClearTimeout clears.
	Duration int
}

// ModInfo describes a moderator status announcement.
type ModInfo struct {
	// Mod indicates whether the user is now a moderator.
	Mod bool

	Channel string
	User    string
}

// UserStateInfo describes the user's own state, globally or in a channel.
type UserStateInfo struct {
	Tags Tags

	// Global is set when the state applies to the user everywhere rather
	// than in one channel.
	Global  bool
	Channel string
}

// SubType identifies the kind of a subscription announcement.
type SubType int

const (
	// SubTypeUnknown is an unrecognized announcement; check the msg-id
	// tag in Tags.All.
	SubTypeUnknown SubType = iota

	// SubTypeSub is a new subscription.
	SubTypeSub

	// SubTypeResub is a renewed subscription.
	SubTypeResub

	// SubTypeGifted is a subscription gifted to a user by another user.
	SubTypeGifted

	// SubTypeMysteryGift is a number of subscriptions gifted to a
	// channel's community.
	SubTypeMysteryGift
)

// SubInfo describes a subscription announcement in a channel.
type SubInfo struct {
	Tags Tags

	Type    SubType
	Channel string
	User    string

	// Recipient fields are set for gifted subscriptions.
	RecipientDisplayName string
	RecipientUserName    string
	RecipientID          uint64

	// MassGiftCount is the number of community subs in a mystery gift.
	MassGiftCount int

	// SenderCount is the number of subs the gifter has given in this
	// channel so far.
	SenderCount int

	// Months is the consecutive month count of a renewal.
	Months int

	// UserMessage is the message the subscriber attached, if any;
	// SystemMessage is the server-provided announcement text.
	UserMessage   string
	SystemMessage string

	// PlanID and PlanName identify the subscription plan.
	PlanID   uint64
	PlanName string
}

// RaidInfo describes an incoming raid announcement.
type RaidInfo struct {
	Tags Tags

	Channel string

	// Raider is the user/channel raiding.
	Raider string

	// Viewers is the number of viewers coming in with the raid.
	Viewers int

	SystemMessage string
}

// RitualInfo describes a channel ritual announcement, such as a user's
// first message in a channel.
type RitualInfo struct {
	Tags Tags

	Channel string
	User    string

	// Ritual names the ritual, e.g. "new_chatter".
	Ritual string

	SystemMessage string
}

// NameListInfo carries the member list of a channel as reported by the
// server when the channel is joined.
type NameListInfo struct {
	Channel string
	Names   []string
}

// Handler receives the events of a session.  Callbacks are invoked from the
// session's worker goroutine, one at a time, in the order the server sent
// the corresponding messages; implementations must be safe to call from
// that goroutine.
type Handler interface {
	// Doom is called when the server announces it is about to go down.
	// The user should log out and may log back in after a short wait.
	Doom()

	// LogIn is called when the session has logged in successfully.
	LogIn()

	// LogOut is called when the session finishes logging out, when the
	// connection closes, or when it could not be established at all.
	LogOut()

	Join(MembershipInfo)
	Leave(MembershipInfo)
	NameList(NameListInfo)

	Message(MessageInfo)
	PrivateMessage(MessageInfo)
	Whisper(WhisperInfo)
	Notice(NoticeInfo)

	Host(HostInfo)
	RoomModeChange(RoomModeChangeInfo)
	Clear(ClearInfo)
	Mod(ModInfo)
	UserState(UserStateInfo)

	Sub(SubInfo)
	Raid(RaidInfo)
	Ritual(RitualInfo)
}

// NoopHandler is a Handler that drops every event.  Embed it to implement
// only the callbacks of interest.
type NoopHandler struct{}

func (NoopHandler) Doom()                             {}
func (NoopHandler) LogIn()                            {}
func (NoopHandler) LogOut()                           {}
func (NoopHandler) Join(MembershipInfo)               {}
func (NoopHandler) Leave(MembershipInfo)              {}
func (NoopHandler) NameList(NameListInfo)             {}
func (NoopHandler) Message(MessageInfo)               {}
func (NoopHandler) PrivateMessage(MessageInfo)        {}
func (NoopHandler) Whisper(WhisperInfo)               {}
func (NoopHandler) Notice(NoticeInfo)                 {}
func (NoopHandler) Host(HostInfo)                     {}
func (NoopHandler) RoomModeChange(RoomModeChangeInfo) {}
func (NoopHandler) Clear(ClearInfo)                   {}
func (NoopHandler) Mod(ModInfo)                       {}
func (NoopHandler) UserState(UserStateInfo)           {}
func (NoopHandler) Sub(SubInfo)                       {}
func (NoopHandler) Raid(RaidInfo)                     {}
func (NoopHandler) Ritual(RitualInfo)                 {}
