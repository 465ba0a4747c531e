package dto

import "time"

// VideoCreateRequest 导入视频请求
type VideoCreateRequest struct {
	Title           string `json:"title" binding:"required,min=1,max=255"`
	Description     string `json:"description" binding:"omitempty"`
	VideoURL        string `json:"video_url" binding:"required,url,max=500"`
	ThumbnailURL    string `json:"thumbnail_url" binding:"omitempty,url,max=500"`
	DurationSeconds *int   `json:"duration_seconds" binding:"omitempty,gte=0"`
}

// VideoInfo 视频详情
type VideoInfo struct {
	ID              string    `json:"id"`
	OwnerID         *string   `json:"owner_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"video_url"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	DurationSeconds *int      `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

// VideoListData 视频列表响应数据
type VideoListData struct {
	Videos []VideoInfo `json:"videos"`
	Total  int64       `json:"total"`
}
