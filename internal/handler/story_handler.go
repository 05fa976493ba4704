package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ripple-chat/internal/domain/story"
	"ripple-chat/internal/services"
	"ripple-chat/internal/transport/httpdto"
)

type StoryHandler struct {
	service *services.StoryService
}

func NewStoryHandler(service *services.StoryService) *StoryHandler {
	return &StoryHandler{service: service}
}

func (h *StoryHandler) Create(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req httpdto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	created, err := h.service.Add(userID, req.MediaURL, story.MediaType(req.MediaType), req.Caption)
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "STORY_FAILED"))
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(created))
}

// View records the authenticated user as a viewer. Viewing twice is a
// no-op, as is viewing an unknown story.
func (h *StoryHandler) View(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	storyID, ok := pathUUID(c, "story_id")
	if !ok {
		return
	}

	if err := h.service.View(userID, storyID); err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "REQUEST_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *StoryHandler) Visible(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(h.service.Visible()))
}

func (h *StoryHandler) UserStories(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(h.service.UserStories(userID)))
}

// Active returns visible stories grouped per author, groups ordered by
// first appearance.
func (h *StoryHandler) Active(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.NewStoryGroups(h.service.Active())))
}
