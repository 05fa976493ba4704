package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ripple-chat/internal/services"
	"ripple-chat/internal/transport/httpdto"
)

// actorID pulls the authenticated user id out of the request context. It
// responds 401 and returns false when the middleware did not attach one.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok || userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("not authenticated", "UNAUTHORIZED"))
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a uuid path parameter, responding 400 on a malformed id.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid "+name, "INVALID_REQUEST"))
		return uuid.Nil, false
	}
	return id, true
}

// bodyUUID parses a uuid carried in a request body field.
func bodyUUID(c *gin.Context, raw, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid "+name, "INVALID_REQUEST"))
		return uuid.Nil, false
	}
	return id, true
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
