package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/domain/repository"
)

const (
	readBatch        = 10
	defaultReadBlock = time.Second
)

type streamRepository struct {
	client    *redis.Client
	readBlock time.Duration
	logger    *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository.
// readBlock - сколько XREADGROUP ждёт новых сообщений.
func NewStreamRepository(client *redis.Client, readBlock time.Duration, logger *zap.Logger) repository.StreamRepository {
	if readBlock <= 0 {
		readBlock = defaultReadBlock
	}
	return &streamRepository{
		client:    client,
		readBlock: readBlock,
		logger:    logger,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// "$" - только новые сообщения, MKSTREAM создаст стрим при необходимости
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает сообщения из стрима с использованием consumer group.
// Канал закрывается при отмене контекста.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	msgChan := make(chan domain.StreamMessage, readBatch)

	go func() {
		defer close(msgChan)

		for {
			if ctx.Err() != nil {
				r.logger.Info("Stream consumer stopped",
					zap.String("stream", stream),
					zap.String("consumer", consumer))
				return
			}

			result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    readBatch,
				Block:    r.readBlock,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))

				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				}
				continue
			}

			for _, s := range result {
				for _, msg := range s.Messages {
					data, ok := msg.Values["data"].(string)
					if !ok {
						r.logger.Warn("Message does not contain 'data' field",
							zap.String("message_id", msg.ID))
						continue
					}

					select {
					case msgChan <- domain.StreamMessage{ID: msg.ID, Data: data}:
						r.logger.Debug("Message sent to channel",
							zap.String("message_id", msg.ID))
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return msgChan, nil
}

// ClaimPending через XAUTOCLAIM переназначает consumer'у сообщения группы,
// не подтверждённые дольше minIdle. Сообщение без поля "data" возвращается
// с пустым Data, чтобы обработчик мог его подтвердить и убрать из pending.
func (r *streamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration) ([]domain.StreamMessage, error) {
	var claimed []domain.StreamMessage

	start := "0-0"
	for {
		msgs, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   stream,
			Group:    group,
			Consumer: consumer,
			MinIdle:  minIdle,
			Start:    start,
			Count:    readBatch,
		}).Result()
		if err != nil {
			r.logger.Error("Failed to claim pending messages",
				zap.String("stream", stream),
				zap.String("group", group),
				zap.Error(err))
			return nil, fmt.Errorf("failed to claim pending messages: %w", err)
		}

		for _, msg := range msgs {
			data, _ := msg.Values["data"].(string)
			claimed = append(claimed, domain.StreamMessage{ID: msg.ID, Data: data})
		}

		if next == "" || next == "0-0" {
			break
		}
		start = next
	}

	if len(claimed) > 0 {
		r.logger.Info("Claimed pending messages",
			zap.String("stream", stream),
			zap.String("consumer", consumer),
			zap.Int("count", len(claimed)))
	}
	return claimed, nil
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	err := r.client.XAck(ctx, stream, group, messageID).Err()
	if err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}

	r.logger.Debug("Message acknowledged", zap.String("message_id", messageID))
	return nil
}

// PublishToStream сериализует data в JSON и публикует в поле "data"
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("Failed to marshal data",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
