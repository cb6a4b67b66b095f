package telegram

// Update is the subset of the Bot API update payload the bot consumes.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is an inbound chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text"`
}

// User is the message sender.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Chat identifies the conversation; its ID is the session key.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}
