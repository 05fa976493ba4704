package httpdto

import (
	"ripple-chat/internal/domain/story"
	"ripple-chat/internal/store"
)

type CreateStoryRequest struct {
	MediaURL  string `json:"media_url" binding:"required"`
	MediaType string `json:"media_type" binding:"required,oneof=image video"`
	Caption   string `json:"caption"`
}

// StoryGroupResponse carries one author's visible stories. Groups are
// ordered by first appearance, not by recency.
type StoryGroupResponse struct {
	UserID  string        `json:"user_id"`
	Stories []story.Story `json:"stories"`
}

func NewStoryGroups(groups []store.StoryGroup) []StoryGroupResponse {
	out := make([]StoryGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, StoryGroupResponse{
			UserID:  g.UserID.String(),
			Stories: g.Stories,
		})
	}
	return out
}
