package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/events"
	payrollerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/payroll/errors"
)

// RunApprovedConsumer renders payslip PDFs after a run is approved, keeping
// the approval request itself fast.
type RunApprovedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewRunApprovedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *RunApprovedConsumer {
	l := zap.L().Named("payroll.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.consumer")
	}

	return &RunApprovedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.PayrollRunApprovedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *RunApprovedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume payroll_run_approved failed", zap.Error(err))
				continue
			}

			var event events.PayrollRunApprovedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode payroll_run_approved event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid payroll_run_approved event failed", zap.Error(commitErr))
				}
				continue
			}

			if err := c.service.GeneratePayslips(ctx, event.CompanyID, event.RunID); err != nil {
				// A deleted or cancelled run will never become generatable;
				// retrying those events would wedge the partition.
				if errors.Is(err, payrollerrors.ErrRunNotFound) ||
					errors.Is(err, payrollerrors.ErrRunNotApproved) {
					c.logger.Warn("payslip generation skipped for event",
						zap.String("run_id", event.RunID),
						zap.String("company_id", event.CompanyID),
						zap.Error(err),
					)
					if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
						c.logger.Error("commit skipped payroll_run_approved event failed", zap.Error(commitErr))
					}
					continue
				}

				c.logger.Error("generate payslips from event failed",
					zap.String("run_id", event.RunID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit payroll_run_approved event failed", zap.Error(err))
				continue
			}

			c.logger.Info("payslips generated from approval event",
				zap.String("run_id", event.RunID),
				zap.String("company_id", event.CompanyID),
			)
		}
	}()
}
