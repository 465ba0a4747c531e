package model

import (
	"time"

	"gorm.io/gorm"
)

// Comment 评论模型，评论创建后不可修改，只能删除
// 排序契约：timestamp_seconds 升序，created_at 升序兜底
type Comment struct {
	ID               string         `gorm:"primaryKey;size:36;comment:评论ID" json:"id"`
	VideoID          string         `gorm:"size:36;not null;index:idx_comments_video_id;comment:被评论视频ID" json:"video_id"`
	AuthorID         *string        `gorm:"size:64;index:idx_comments_author_id;comment:评论用户ID，NULL 表示游客" json:"author_id"`
	AuthorName       string         `gorm:"size:255;not null;comment:展示名" json:"author_name"`
	TimestampSeconds float64        `gorm:"not null;index:idx_comments_timestamp_seconds;comment:视频时间轴位置（秒）" json:"timestamp_seconds"`
	Body             string         `gorm:"type:text;not null;comment:评论内容" json:"body"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index:idx_comments_created_at;comment:评论时间" json:"created_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index:idx_comments_deleted_at" json:"-"`

	// 关联关系
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsGuest 是否为游客评论（游客评论任何人都不可删除）
func (c *Comment) IsGuest() bool {
	return c.AuthorID == nil
}
