package model

import "time"

type Post struct {
	ID           uint64     `gorm:"primaryKey" json:"id"`
	VillageID    uint64     `gorm:"not null;index:idx_village_time,priority:1" json:"villageId"`
	AuthorID     uint64     `gorm:"not null;index" json:"authorId"`
	Content      string     `gorm:"type:text" json:"content"`
	Images       StringList `gorm:"type:text" json:"images"`
	Tags         StringList `gorm:"type:text" json:"tags"`
	LikeCount    int64      `gorm:"not null;default:0" json:"likeCount"`
	CommentCount int64      `gorm:"not null;default:0" json:"commentCount"`
	CreatedAt    time.Time  `gorm:"index:idx_village_time,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Like 存在即点赞；(post_id, user_id) 唯一，靠库约束挡并发重复
type Like struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;index;uniqueIndex:uk_post_user" json:"postId"`
	UserID    uint64    `gorm:"not null;uniqueIndex:uk_post_user" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string { return "likes" }

// Comment 单层回复：顶层评论可带回复，回复不再嵌套
type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;index" json:"postId"`
	AuthorID  uint64    `gorm:"not null;index" json:"authorId"`
	ParentID  *uint64   `gorm:"index" json:"parentId,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
