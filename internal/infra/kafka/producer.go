package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"remo-go/internal/config"
	"remo-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// 评论事件类型
const (
	EventCommentCreated = "comment.created"
	EventCommentDeleted = "comment.deleted"
)

// CommentEvent 评论生命周期事件，供实时评论流等下游消费
type CommentEvent struct {
	Type             string    `json:"type"`
	CommentID        string    `json:"comment_id"`
	VideoID          string    `json:"video_id"`
	AuthorID         *string   `json:"author_id,omitempty"`
	AuthorName       string    `json:"author_name,omitempty"`
	TimestampSeconds float64   `json:"timestamp_seconds"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// PublishCommentEvent 发布评论事件
// 按 video_id 作为 key，保证同一视频的事件有序
func PublishCommentEvent(ctx context.Context, topic string, event *CommentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal comment event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte("video-" + event.VideoID),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send comment event: %w", err)
	}

	logger.Debug("Comment event published",
		zap.String("type", event.Type),
		zap.String("comment_id", event.CommentID),
		zap.String("video_id", event.VideoID),
		zap.String("topic", topic),
	)

	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
