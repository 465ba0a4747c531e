package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"remo-go/internal/api/dto"
	infraKafka "remo-go/internal/infra/kafka"
	"remo-go/internal/model"
	"remo-go/internal/ratelimit"
	"remo-go/internal/repository"
	"remo-go/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 评论内容上限（去除首尾空白后的字符数）
const maxCommentBodyLength = 5000

var (
	ErrCommentNotFound     = errors.New("comment not found")
	ErrDisplayNameRequired = errors.New("display name is required for guest comments")
	ErrInvalidTimestamp    = errors.New("timestamp_seconds must be non-negative")
	ErrEmptyBody           = errors.New("comment body must not be empty")
	ErrBodyTooLong         = errors.New("comment body must be at most 5000 characters")
)

// RateLimitError 限流错误，携带重试等待秒数
type RateLimitError struct {
	RetryAfterSeconds int
	Message           string
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// CommentEventPublisher 评论事件发布回调，nil 表示不发布
type CommentEventPublisher func(ctx context.Context, event *infraKafka.CommentEvent) error

type CommentService struct {
	commentRepo  *repository.CommentRepository
	videoRepo    *repository.VideoRepository
	limiter      ratelimit.Limiter
	publishEvent CommentEventPublisher
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	videoRepo *repository.VideoRepository,
	limiter ratelimit.Limiter,
	publishEvent CommentEventPublisher,
) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		videoRepo:    videoRepo,
		limiter:      limiter,
		publishEvent: publishEvent,
	}
}

// Create 发表评论
// 流程：确定作者与展示名 → 限流 → 校验视频/时间点/内容 → 入库
func (s *CommentService) Create(ctx context.Context, identity model.Identity, videoID string, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	// 已认证用户默认用账号里的名字或邮箱做展示名，请求里可覆盖
	var authorID *string
	displayName := strings.TrimSpace(req.AuthorName)
	if userID, ok := identity.UserID(); ok {
		authorID = &userID
		if displayName == "" {
			displayName = identity.Name()
		}
		if displayName == "" {
			displayName = identity.Email()
		}
	}
	if displayName == "" {
		return nil, ErrDisplayNameRequired
	}

	// 限流只作用于评论创建，游客共享 guest 桶
	if result := s.limiter.Check(ctx, identity.RateLimitKey()); !result.Allowed {
		return nil, &RateLimitError{
			RetryAfterSeconds: result.RetryAfterSeconds(),
			Message:           result.Message(),
		}
	}

	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if req.TimestampSeconds == nil || *req.TimestampSeconds < 0 {
		return nil, ErrInvalidTimestamp
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	if utf8.RuneCountInString(body) > maxCommentBodyLength {
		return nil, ErrBodyTooLong
	}

	comment := &model.Comment{
		ID:               uuid.NewString(),
		VideoID:          videoID,
		AuthorID:         authorID,
		AuthorName:       displayName,
		TimestampSeconds: *req.TimestampSeconds,
		Body:             body,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	s.publish(ctx, infraKafka.EventCommentCreated, comment)

	return toCommentInfo(comment), nil
}

// ListByVideo 获取视频评论列表，按 (timestamp_seconds, created_at) 升序
func (s *CommentService) ListByVideo(videoID string, query *dto.CommentListQuery) (*dto.CommentListData, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.ListByVideo(videoID, repository.CommentFilter{
		After:  query.After,
		Before: query.Before,
		Limit:  query.Limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		items = append(items, *toCommentInfo(&comments[i]))
	}

	return &dto.CommentListData{Comments: items, Count: len(items)}, nil
}

// Delete 删除评论，授权通过后才执行删除
func (s *CommentService) Delete(ctx context.Context, identity model.Identity, videoID, commentID string) error {
	comment, err := s.commentRepo.GetByVideoAndID(videoID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if err := authorizeDelete(comment, identity); err != nil {
		return err
	}

	deleted, err := s.commentRepo.Delete(videoID, commentID)
	if err != nil {
		return err
	}
	if !deleted {
		// 并发删除时另一请求已先删掉
		return ErrCommentNotFound
	}

	s.publish(ctx, infraKafka.EventCommentDeleted, comment)

	return nil
}

// publish 发布评论事件，失败只记日志不影响请求
func (s *CommentService) publish(ctx context.Context, eventType string, comment *model.Comment) {
	if s.publishEvent == nil {
		return
	}

	event := &infraKafka.CommentEvent{
		Type:             eventType,
		CommentID:        comment.ID,
		VideoID:          comment.VideoID,
		AuthorID:         comment.AuthorID,
		AuthorName:       comment.AuthorName,
		TimestampSeconds: comment.TimestampSeconds,
		OccurredAt:       comment.CreatedAt,
	}

	if err := s.publishEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish comment event",
			zap.String("type", eventType),
			zap.String("comment_id", comment.ID),
			zap.Error(err),
		)
	}
}

func toCommentInfo(c *model.Comment) *dto.CommentInfo {
	return &dto.CommentInfo{
		ID:               c.ID,
		VideoID:          c.VideoID,
		AuthorID:         c.AuthorID,
		AuthorName:       c.AuthorName,
		TimestampSeconds: c.TimestampSeconds,
		Body:             c.Body,
		CreatedAt:        c.CreatedAt,
	}
}
