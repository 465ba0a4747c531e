package repository

import (
	"testing"
	"time"

	"remo-go/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Video{}, &model.Comment{}))

	return db
}

func createTestVideo(t *testing.T, db *gorm.DB) *model.Video {
	t.Helper()

	video := &model.Video{
		ID:       uuid.NewString(),
		Title:    "test video",
		VideoURL: "https://example.com/video.mp4",
	}
	require.NoError(t, NewVideoRepository(db).Create(video))

	return video
}

func newComment(videoID string, ts float64, createdAt time.Time) *model.Comment {
	return &model.Comment{
		ID:               uuid.NewString(),
		VideoID:          videoID,
		AuthorName:       "tester",
		TimestampSeconds: ts,
		Body:             "body",
		CreatedAt:        createdAt,
	}
}

func TestListByVideoOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	video := createTestVideo(t, db)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 插入顺序 5, 5, 3，created_at 递增
	first := newComment(video.ID, 5, base)
	second := newComment(video.ID, 5, base.Add(time.Second))
	third := newComment(video.ID, 3, base.Add(2*time.Second))
	for _, c := range []*model.Comment{first, second, third} {
		require.NoError(t, repo.Create(c))
	}

	comments, err := repo.ListByVideo(video.ID, CommentFilter{})
	require.NoError(t, err)
	require.Len(t, comments, 3)

	// timestamp_seconds 升序，同一时间点按 created_at 升序
	assert.Equal(t, third.ID, comments[0].ID)
	assert.Equal(t, first.ID, comments[1].ID)
	assert.Equal(t, second.ID, comments[2].ID)
}

func TestListByVideoIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	video := createTestVideo(t, db)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, ts := range []float64{9, 1, 4, 4, 7} {
		require.NoError(t, repo.Create(newComment(video.ID, ts, base.Add(time.Duration(i)*time.Second))))
	}

	filter := CommentFilter{}
	firstPass, err := repo.ListByVideo(video.ID, filter)
	require.NoError(t, err)
	secondPass, err := repo.ListByVideo(video.ID, filter)
	require.NoError(t, err)

	assert.Equal(t, firstPass, secondPass)
}

func TestListByVideoRangeFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	video := createTestVideo(t, db)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, ts := range []float64{0, 10, 20, 30, 40} {
		require.NoError(t, repo.Create(newComment(video.ID, ts, base.Add(time.Duration(i)*time.Second))))
	}

	after, before := 10.0, 30.0
	comments, err := repo.ListByVideo(video.ID, CommentFilter{After: &after, Before: &before})
	require.NoError(t, err)

	// 闭区间，边界值包含在内
	require.Len(t, comments, 3)
	assert.Equal(t, 10.0, comments[0].TimestampSeconds)
	assert.Equal(t, 30.0, comments[2].TimestampSeconds)
}

func TestListByVideoLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	video := createTestVideo(t, db)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		require.NoError(t, repo.Create(newComment(video.ID, float64(i), base.Add(time.Duration(i)*time.Second))))
	}

	comments, err := repo.ListByVideo(video.ID, CommentFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, comments, 3)

	// 超出上限的 limit 被压到默认上限
	comments, err = repo.ListByVideo(video.ID, CommentFilter{Limit: DefaultCommentLimit + 1})
	require.NoError(t, err)
	assert.Len(t, comments, 10)
}

func TestListByVideoEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	video := createTestVideo(t, db)

	comments, err := repo.ListByVideo(video.ID, CommentFilter{})
	require.NoError(t, err)

	// 空列表不是错误
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestDeleteCompositeMatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	videoA := createTestVideo(t, db)
	videoB := createTestVideo(t, db)

	comment := newComment(videoA.ID, 1, time.Now())
	require.NoError(t, repo.Create(comment))

	// 挂在别的视频下删不掉
	deleted, err := repo.Delete(videoB.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(videoA.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// 软删除后列表里不再出现
	comments, err := repo.ListByVideo(videoA.ID, CommentFilter{})
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestVideoDeleteCascadesComments(t *testing.T) {
	db := newTestDB(t)
	commentRepo := NewCommentRepository(db)
	videoRepo := NewVideoRepository(db)
	video := createTestVideo(t, db)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, commentRepo.Create(newComment(video.ID, float64(i), base.Add(time.Duration(i)*time.Second))))
	}

	// 其中一条先软删除，级联时一并物理清除
	deleted, err := commentRepo.Delete(video.ID, mustFirstCommentID(t, db, video.ID))
	require.NoError(t, err)
	require.True(t, deleted)

	require.NoError(t, videoRepo.Delete(video.ID))

	var orphans int64
	require.NoError(t, db.Unscoped().Model(&model.Comment{}).Where("video_id = ?", video.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	_, err = videoRepo.GetByID(video.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVideoDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	videoRepo := NewVideoRepository(db)

	err := videoRepo.Delete(uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func mustFirstCommentID(t *testing.T, db *gorm.DB, videoID string) string {
	t.Helper()

	var comment model.Comment
	require.NoError(t, db.Where("video_id = ?", videoID).Order("created_at ASC").First(&comment).Error)
	return comment.ID
}
