package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vthr/internal/events"
	payrollerrors "vthr/internal/payroll/errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PayslipRequestedConsumer renders payslips for payrolls announced on the
// payslip-requested topic. Rendering is idempotent, so redelivery is safe.
type PayslipRequestedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewPayslipRequestedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *PayslipRequestedConsumer {
	l := zap.L().Named("payroll.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.consumer")
	}

	return &PayslipRequestedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.PayrollPayslipRequestedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *PayslipRequestedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume payslip_requested failed", zap.Error(err))
				continue
			}

			var event events.PayrollPayslipRequestedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode payslip_requested event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid payslip_requested event failed", zap.Error(commitErr))
				}
				continue
			}

			if _, err := c.service.GeneratePayslip(ctx, event.PayrollID); err != nil {
				// The payroll may have been deleted after the event was queued.
				if errors.Is(err, payrollerrors.ErrPayrollNotFound) {
					c.logger.Warn("payroll gone before payslip render, skipping",
						zap.String("payroll_id", event.PayrollID),
					)
					if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
						c.logger.Error("commit stale payslip_requested event failed", zap.Error(commitErr))
					}
					continue
				}

				c.logger.Error("render payslip from event failed",
					zap.String("payroll_id", event.PayrollID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit payslip_requested event failed", zap.Error(err))
				continue
			}

			c.logger.Info("payslip rendered from event",
				zap.String("payroll_id", event.PayrollID),
				zap.String("request_id", event.RequestID),
			)
		}
	}()
}

func (c *PayslipRequestedConsumer) Close() error {
	return c.reader.Close()
}
