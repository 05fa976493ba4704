package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ripple-chat/internal/domain/contact"
	"ripple-chat/internal/domain/user"
	"ripple-chat/internal/services"
	"ripple-chat/internal/transport/httpdto"
)

type ContactHandler struct {
	service *services.ContactService
}

func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Add(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}

	var req httpdto.AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid user_id", "INVALID_REQUEST"))
		return
	}

	status := user.Presence(req.Status)
	if req.Status == "" {
		status = user.PresenceOffline
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid status", "INVALID_REQUEST"))
		return
	}

	entry := contact.Contact{
		UserID:   userID,
		Username: req.Username,
		Avatar:   req.Avatar,
		Status:   status,
	}
	if err := h.service.Add(entry); err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "CONTACT_EXISTS"))
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(entry))
}

func (h *ContactHandler) Remove(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	h.service.Remove(userID)
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *ContactHandler) List(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(h.service.List()))
}

func (h *ContactHandler) Get(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	entry, found := h.service.Get(userID)
	if !found {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("contact not found", "NOT_FOUND"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(entry))
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	var req httpdto.UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	h.service.UpdateStatus(userID, user.Presence(req.Status))
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// RefreshPresence re-reads every contact's published presence.
func (h *ContactHandler) RefreshPresence(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	h.service.RefreshPresence(c.Request.Context())
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(h.service.List()))
}
