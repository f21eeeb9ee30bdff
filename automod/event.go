package automod

// Identity of the account which authored a message.
type Author struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Single uploaded file on a message.
type Attachment struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

// A fully-parsed message-create event, as delivered by the ingestion
// collaborator. Immutable during evaluation; wire-format parsing and shape
// validation happen before this type is constructed.
type MessageEvent struct {
	MessageID   string       `json:"message_id"`
	GuildID     string       `json:"guild_id"`
	ChannelID   string       `json:"channel_id"`
	Author      Author       `json:"author"`
	AuthorRoles []string     `json:"author_roles,omitempty"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
	// IDs of accounts mentioned in the message content
	Mentions []string `json:"mentions,omitempty"`
}
