package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ripple-chat/internal/domain/message"
	"ripple-chat/internal/services"
	"ripple-chat/internal/transport/httpdto"
)

type MessageHandler struct {
	service *services.MessagingService
}

func NewMessageHandler(service *services.MessagingService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	receiverID, ok := bodyUUID(c, req.ReceiverID, "receiver_id")
	if !ok {
		return
	}

	msgType := message.Type(req.Type)
	if req.Type == "" {
		msgType = message.TypeText
	}

	msg, err := h.service.Send(userID, req.Content, receiverID, msgType, req.MediaURL)
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "SEND_FAILED"))
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(msg))
}

// Receive records an inbound message addressed to the authenticated user,
// bumping unread and preview state for the sending contact.
func (h *MessageHandler) Receive(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req httpdto.ReceiveMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	senderID, ok := bodyUUID(c, req.SenderID, "sender_id")
	if !ok {
		return
	}

	msgType := message.Type(req.Type)
	if req.Type == "" {
		msgType = message.TypeText
	}

	msg, err := h.service.Receive(userID, senderID, req.Content, msgType, req.MediaURL)
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "RECEIVE_FAILED"))
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(msg))
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req httpdto.MarkMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	messageIDs, err := parseUUIDs(req.MessageIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}

	if err := h.service.MarkRead(userID, messageIDs); err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "REQUEST_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) MarkDelivered(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req httpdto.MarkMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	messageIDs, err := parseUUIDs(req.MessageIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}

	if err := h.service.MarkDelivered(userID, messageIDs); err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "REQUEST_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) Edit(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	conversationID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}
	messageID, ok := pathUUID(c, "message_id")
	if !ok {
		return
	}

	var req httpdto.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	h.service.Edit(messageID, conversationID, req.Content)
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) Delete(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	conversationID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}
	messageID, ok := pathUUID(c, "message_id")
	if !ok {
		return
	}

	h.service.Delete(messageID, conversationID)
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) Messages(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	conversationID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(h.service.Messages(conversationID)))
}

func (h *MessageHandler) Conversations(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(h.service.Conversations()))
}

// OrCreateConversation returns the individual conversation with the given
// participant, creating it on first use.
func (h *MessageHandler) OrCreateConversation(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	participantID, ok := pathUUID(c, "participant_id")
	if !ok {
		return
	}

	conv, err := h.service.OrCreateConversation(userID, participantID)
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "REQUEST_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(conv))
}

// Activate focuses a conversation, marking its inbound messages read.
func (h *MessageHandler) Activate(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	conversationID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}

	if err := h.service.Activate(userID, conversationID); err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "REQUEST_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) ActiveConversation(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}

	id, active := h.service.ActiveConversation()
	resp := httpdto.ActiveConversationResponse{}
	if active {
		s := id.String()
		resp.ConversationID = &s
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(resp))
}
