package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	attendanceerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/attendance/errors"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/events"
)

// PunchConsumer folds hardware punch events into attendance records.
// Duplicate external references and unmapped cards are committed and skipped;
// anything else is retried by not committing the message.
type PunchConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewPunchConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *PunchConsumer {
	l := zap.L().Named("attendance.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.consumer")
	}

	return &PunchConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.AttendancePunchTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *PunchConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume attendance punch failed", zap.Error(err))
				continue
			}

			var event events.AttendancePunchEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode attendance punch event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid attendance punch event failed", zap.Error(commitErr))
				}
				continue
			}

			_, err = c.service.IngestPunch(ctx, event.CompanyID, IngestPunchRequest{
				CardNumber:  event.CardNumber,
				DeviceID:    event.DeviceID,
				ExternalRef: event.ExternalRef,
				PunchedAt:   event.PunchedAt.Format(time.RFC3339),
			})
			if err != nil {
				if errors.Is(err, attendanceerrors.ErrDuplicatePunch) ||
					errors.Is(err, attendanceerrors.ErrUnknownCard) ||
					errors.Is(err, attendanceerrors.ErrInvalidPunch) {
					c.logger.Warn("attendance punch event skipped",
						zap.String("external_ref", event.ExternalRef),
						zap.String("card_number", event.CardNumber),
						zap.Error(err),
					)
					if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
						c.logger.Error("commit skipped attendance punch event failed", zap.Error(commitErr))
					}
					continue
				}

				c.logger.Error("ingest attendance punch event failed",
					zap.String("external_ref", event.ExternalRef),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit attendance punch event failed", zap.Error(err))
				continue
			}

			c.logger.Info("attendance punch ingested from event",
				zap.String("company_id", event.CompanyID),
				zap.String("external_ref", event.ExternalRef),
			)
		}
	}()
}
