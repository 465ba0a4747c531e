package repository

import (
	"remo-go/internal/model"

	"gorm.io/gorm"
)

// DefaultCommentLimit 单次评论查询的默认/最大条数
const DefaultCommentLimit = 200

// CommentFilter 评论列表筛选条件，after/before 按时间轴位置闭区间过滤
type CommentFilter struct {
	After  *float64
	Before *float64
	Limit  int
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) GetByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByVideoAndID 按 (video_id, comment_id) 复合条件查询
func (r *CommentRepository) GetByVideoAndID(videoID, commentID string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("video_id = ? AND id = ?", videoID, commentID).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByVideo 获取视频的评论列表
// 排序契约：timestamp_seconds 升序，created_at 升序兜底，任何插入顺序下结果一致
func (r *CommentRepository) ListByVideo(videoID string, filter CommentFilter) ([]model.Comment, error) {
	query := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID)

	if filter.After != nil {
		query = query.Where("timestamp_seconds >= ?", *filter.After)
	}
	if filter.Before != nil {
		query = query.Where("timestamp_seconds <= ?", *filter.Before)
	}

	limit := filter.Limit
	if limit <= 0 || limit > DefaultCommentLimit {
		limit = DefaultCommentLimit
	}

	comments := make([]model.Comment, 0)
	err := query.Order("timestamp_seconds ASC, created_at ASC").
		Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// Delete 删除评论（软删除），按 (video_id, comment_id) 复合条件匹配
func (r *CommentRepository) Delete(videoID, commentID string) (bool, error) {
	result := r.db.Where("video_id = ? AND id = ?", videoID, commentID).Delete(&model.Comment{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByVideo 统计视频的评论数
func (r *CommentRepository) CountByVideo(videoID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}
