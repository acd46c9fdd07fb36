package models

// ChatMember is a user that joined the group
type ChatMember struct {
	ID        int64
	FirstName string
	Username  string
	IsBot     bool
}

// InboundMessage is a transport-independent view of a Telegram message
type InboundMessage struct {
	UpdateID  int
	ChatID    int64
	MessageID int
	SenderID  int64
	FromBot   bool
	Text      string

	// IsCommand is set when the text starts with a bot command entity.
	// Command holds the command name without the slash or @botname suffix.
	IsCommand bool
	Command   string

	NewChatMembers []ChatMember
}

// ParseMode tells the messenger how the reply text should be rendered
type ParseMode string

const (
	ParseModePlain    ParseMode = ""
	ParseModeMarkdown ParseMode = "Markdown"
)
