package httpdto

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required,uuid"`
	Content    string `json:"content" binding:"required"`
	Type       string `json:"type"`
	MediaURL   string `json:"media_url"`
}

type ReceiveMessageRequest struct {
	SenderID string `json:"sender_id" binding:"required,uuid"`
	Content  string `json:"content" binding:"required"`
	Type     string `json:"type"`
	MediaURL string `json:"media_url"`
}

type MarkMessagesRequest struct {
	MessageIDs []string `json:"message_ids" binding:"required"`
}

type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// ActiveConversationResponse carries the focused conversation id, nil when
// nothing is focused.
type ActiveConversationResponse struct {
	ConversationID *string `json:"conversation_id"`
}
