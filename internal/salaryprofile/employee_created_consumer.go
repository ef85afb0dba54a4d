package salaryprofile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/events"
	profileerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/salaryprofile/errors"
)

// EmployeeCreatedConsumer seeds a zero-amount salary profile whenever a new
// employee event arrives, so payroll never hits an employee without one.
type EmployeeCreatedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewEmployeeCreatedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *EmployeeCreatedConsumer {
	l := zap.L().Named("salaryprofile.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryprofile.consumer")
	}

	return &EmployeeCreatedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.EmployeeCreatedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *EmployeeCreatedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume employee_created failed", zap.Error(err))
				continue
			}

			var event events.EmployeeCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode employee_created event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid employee_created event failed", zap.Error(commitErr))
				}
				continue
			}

			_, err = c.service.SeedDefault(ctx, event.CompanyID, event.EmployeeID)
			if err != nil {
				// Redelivered event for an already seeded employee is safe to skip.
				if errors.Is(err, profileerrors.ErrActiveProfileExists) {
					c.logger.Warn("salary profile already exists for event, skipping",
						zap.String("employee_id", event.EmployeeID),
						zap.String("company_id", event.CompanyID),
					)
					if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
						c.logger.Error("commit duplicate employee_created event failed", zap.Error(commitErr))
					}
					continue
				}

				c.logger.Error("seed default salary profile failed",
					zap.String("employee_id", event.EmployeeID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit employee_created event failed", zap.Error(err))
				continue
			}

			c.logger.Info("salary profile seeded from employee_created event",
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
			)
		}
	}()
}
