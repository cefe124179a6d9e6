// models/post.go
package models

import "time"

const (
	// ForumDays is the number of daily forums; days 1-5 are the science
	// category, 6-10 the media category.
	ForumDays = 10

	// ScienceForumMax is the last forum number counted as science.
	ScienceForumMax = 5

	// PunishScore is forced onto a post deleted as a penalty.
	PunishScore = -1

	// CommentSeparator delimits moderator comments appended to a post body:
	// body;;comments;;moderator.
	CommentSeparator = ";;"
)

// Post is one forum submission. The same shape lives in three tables
// (staged, published, deleted); Epoch is the identity key a post keeps while
// moderation moves it between them, so it must be unique across all three.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Body     string `gorm:"type:text" json:"body"`
	PostedAt string `json:"posted_at"`
	Epoch    int64  `gorm:"uniqueIndex;not null" json:"epoch"`
	Score    int    `gorm:"default:0" json:"score"`
	Username string `gorm:"index;not null" json:"username"`
	Forum    int    `gorm:"index;not null" json:"forum"`

	CreatedAt time.Time `json:"created_at"`
}

// IsScience reports whether the post belongs to the science category.
func (p Post) IsScience() bool {
	return p.Forum <= ScienceForumMax
}

// ValidForum reports whether n names one of the daily forums.
func ValidForum(n int) bool {
	return n >= 1 && n <= ForumDays
}

// StagedPost awaits moderation and is not publicly visible.
type StagedPost struct {
	Post
}

func (StagedPost) TableName() string {
	return "staged_posts"
}

// PublishedPost is live on its forum and counts towards the scoreboard.
type PublishedPost struct {
	Post
}

func (PublishedPost) TableName() string {
	return "published_posts"
}

// DeletedPost is archived off the forum; it can be restored to either of the
// other two states.
type DeletedPost struct {
	Post
}

func (DeletedPost) TableName() string {
	return "deleted_posts"
}
