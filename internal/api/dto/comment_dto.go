package dto

import "time"

// CommentCreateRequest 发表评论请求
// timestamp_seconds 用指针区分"未传"和合法的 0 秒
type CommentCreateRequest struct {
	AuthorName       string   `json:"author_name" binding:"omitempty,max=255"`
	TimestampSeconds *float64 `json:"timestamp_seconds" binding:"required"`
	Body             string   `json:"body" binding:"required"`
}

// CommentListQuery 评论列表筛选参数，after/before 为时间轴位置闭区间
type CommentListQuery struct {
	After  *float64 `form:"after"`
	Before *float64 `form:"before"`
	Limit  int      `form:"limit"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID               string    `json:"id"`
	VideoID          string    `json:"video_id"`
	AuthorID         *string   `json:"author_id"`
	AuthorName       string    `json:"author_name"`
	TimestampSeconds float64   `json:"timestamp_seconds"`
	Body             string    `json:"body"`
	CreatedAt        time.Time `json:"created_at"`
}

// CommentListData 评论列表数据
type CommentListData struct {
	Comments []CommentInfo `json:"comments"`
	Count    int           `json:"count"`
}
