package repository

import (
	"remo-go/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(id string) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Exists 视频是否存在
func (r *VideoRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建视频记录
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// List 视频列表，按创建时间倒序
func (r *VideoRepository) List(skip, limit int) ([]model.Video, int64, error) {
	var total int64
	if err := r.db.Model(&model.Video{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	videos := make([]model.Video, 0)
	err := r.db.Order("created_at DESC").Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// Count 视频总数
func (r *VideoRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Count(&count).Error
	return count, err
}

// Delete 删除视频并级联删除全部评论
// 同一事务内先删评论再删视频，不依赖某个驱动是否强制外键
func (r *VideoRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("video_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.Video{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
