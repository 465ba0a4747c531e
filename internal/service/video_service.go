package service

import (
	"errors"

	"remo-go/internal/api/dto"
	"remo-go/internal/model"
	"remo-go/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound        = errors.New("video not found")
	ErrVideoDeleteForbidden = errors.New("only the owner can delete this video")
)

type VideoService struct {
	videoRepo *repository.VideoRepository
}

func NewVideoService(videoRepo *repository.VideoRepository) *VideoService {
	return &VideoService{videoRepo: videoRepo}
}

// Create 导入视频，已登录时记录归属用户
func (s *VideoService) Create(identity model.Identity, req *dto.VideoCreateRequest) (*dto.VideoInfo, error) {
	var ownerID *string
	if userID, ok := identity.UserID(); ok {
		ownerID = &userID
	}

	video := &model.Video{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Title:           req.Title,
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		ThumbnailURL:    req.ThumbnailURL,
		DurationSeconds: req.DurationSeconds,
	}

	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	return toVideoInfo(video), nil
}

// GetByID 获取视频详情
func (s *VideoService) GetByID(id string) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return toVideoInfo(video), nil
}

// List 视频列表
func (s *VideoService) List(skip, limit int) (*dto.VideoListData, error) {
	videos, total, err := s.videoRepo.List(skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoInfo(&videos[i]))
	}

	return &dto.VideoListData{Videos: items, Total: total}, nil
}

// Delete 删除视频及其全部评论
// 只有归属用户可删，无归属的种子/匿名导入视频不开放删除
func (s *VideoService) Delete(identity model.Identity, id string) error {
	video, err := s.videoRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	requesterID, ok := identity.UserID()
	if !ok {
		return ErrAuthenticationRequired
	}
	if video.OwnerID == nil || *video.OwnerID != requesterID {
		return ErrVideoDeleteForbidden
	}

	if err := s.videoRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	return nil
}

// Seed 写入示例视频，库里已有视频时不重复写入
func (s *VideoService) Seed() (int, error) {
	count, err := s.videoRepo.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	samples := sampleVideos()
	for i := range samples {
		if err := s.videoRepo.Create(&samples[i]); err != nil {
			return 0, err
		}
	}

	return len(samples), nil
}

func sampleVideos() []model.Video {
	duration := func(seconds int) *int { return &seconds }

	return []model.Video{
		{
			ID:              uuid.NewString(),
			Title:           "Big Buck Bunny",
			Description:     "A giant rabbit takes revenge on three bullying rodents.",
			VideoURL:        "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
			ThumbnailURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/images/BigBuckBunny.jpg",
			DurationSeconds: duration(596),
		},
		{
			ID:              uuid.NewString(),
			Title:           "Elephants Dream",
			Description:     "Two strange characters explore a surreal machine world.",
			VideoURL:        "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
			ThumbnailURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/images/ElephantsDream.jpg",
			DurationSeconds: duration(653),
		},
		{
			ID:              uuid.NewString(),
			Title:           "Sintel",
			Description:     "A girl searches for the dragon she once rescued.",
			VideoURL:        "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/Sintel.mp4",
			ThumbnailURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/images/Sintel.jpg",
			DurationSeconds: duration(888),
		},
	}
}

func toVideoInfo(video *model.Video) *dto.VideoInfo {
	return &dto.VideoInfo{
		ID:              video.ID,
		OwnerID:         video.OwnerID,
		Title:           video.Title,
		Description:     video.Description,
		VideoURL:        video.VideoURL,
		ThumbnailURL:    video.ThumbnailURL,
		DurationSeconds: video.DurationSeconds,
		CreatedAt:       video.CreatedAt,
	}
}
