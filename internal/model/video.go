package model

import "time"

// Video 视频模型
type Video struct {
	ID              string    `gorm:"primaryKey;size:36;comment:视频标识" json:"id"`
	OwnerID         *string   `gorm:"size:64;index:idx_videos_owner_id;comment:导入视频的用户ID" json:"owner_id"`
	Title           string    `gorm:"size:255;not null;comment:视频标题" json:"title"`
	Description     string    `gorm:"type:text;comment:视频描述" json:"description"`
	VideoURL        string    `gorm:"size:500;not null;comment:视频播放地址" json:"video_url"`
	ThumbnailURL    string    `gorm:"size:500;comment:视频封面地址" json:"thumbnail_url"`
	DurationSeconds *int      `gorm:"comment:视频时长（秒）" json:"duration_seconds"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"created_at"`

	// 关联关系，删除视频时级联删除全部评论
	Comments []Comment `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
