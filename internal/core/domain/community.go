package domain

import "time"

// PostStatus is the moderation state of a community post.
type PostStatus string

const (
	PostPending  PostStatus = "pending"
	PostApproved PostStatus = "approved"
	PostRejected PostStatus = "rejected"
)

// Valid reports whether s is one of the known moderation states.
func (s PostStatus) Valid() bool {
	switch s {
	case PostPending, PostApproved, PostRejected:
		return true
	}
	return false
}

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// CommunityPost is a traveller's experience report.
type CommunityPost struct {
	ID           string     `json:"id"`
	AuthorID     string     `json:"author_id"`
	AuthorName   string     `json:"author_name"`
	AuthorAvatar string     `json:"author_avatar,omitempty"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	CountryCode  string     `json:"country_code,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Status       PostStatus `json:"status"`
	Likes        int        `json:"likes"`
	Dislikes     int        `json:"dislikes"`
	Comments     int        `json:"comments"`
	Views        int        `json:"views"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
