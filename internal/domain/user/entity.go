package user

import (
	"time"

	"github.com/google/uuid"
)

// Presence is a user's availability state.
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceAway    Presence = "away"
	PresenceOffline Presence = "offline"
)

// Valid reports whether p is one of the known presence values.
func (p Presence) Valid() bool {
	switch p {
	case PresenceOnline, PresenceAway, PresenceOffline:
		return true
	}
	return false
}

// User is the profile record owned by the identity provider. The client
// caches it and never mutates it except through a profile update call.
type User struct {
	ID         uuid.UUID  `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Avatar     string     `json:"avatar"`
	Bio        string     `json:"bio,omitempty"`
	Website    string     `json:"website,omitempty"`
	Location   string     `json:"location,omitempty"`
	DarkMode   bool       `json:"dark_mode"`
	Status     Presence   `json:"status"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	IsVerified bool       `json:"is_verified"`
	Followers  int        `json:"followers"`
	Following  int        `json:"following"`
	Settings   Settings   `json:"settings"`
}

type Settings struct {
	Privacy       PrivacySettings      `json:"privacy"`
	Notifications NotificationSettings `json:"notifications"`
	Content       ContentSettings      `json:"content"`
}

type PrivacySettings struct {
	ProfileVisibility string `json:"profile_visibility"` // public | private | followers
	StoryVisibility   string `json:"story_visibility"`   // public | followers | close-friends
	MessagePrivacy    string `json:"message_privacy"`    // everyone | followers | nobody
	ShowOnlineStatus  bool   `json:"show_online_status"`
	ShowReadReceipts  bool   `json:"show_read_receipts"`
}

type NotificationSettings struct {
	Posts    bool `json:"posts"`
	Stories  bool `json:"stories"`
	Messages bool `json:"messages"`
	Calls    bool `json:"calls"`
	Mentions bool `json:"mentions"`
}

type ContentSettings struct {
	AutoplayVideos        bool   `json:"autoplay_videos"`
	SaveData              bool   `json:"save_data"`
	DefaultPostVisibility string `json:"default_post_visibility"` // public | followers | private
}

// DefaultSettings is the settings block assigned to every new account.
func DefaultSettings() Settings {
	return Settings{
		Privacy: PrivacySettings{
			ProfileVisibility: "public",
			StoryVisibility:   "followers",
			MessagePrivacy:    "everyone",
			ShowOnlineStatus:  true,
			ShowReadReceipts:  true,
		},
		Notifications: NotificationSettings{
			Posts:    true,
			Stories:  true,
			Messages: true,
			Calls:    true,
			Mentions: true,
		},
		Content: ContentSettings{
			AutoplayVideos:        true,
			SaveData:              false,
			DefaultPostVisibility: "public",
		},
	}
}
