package jobs

import (
	"context"
	"log/slog"

	"staffing/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderExpiryJob runs the scheduled expiry sweep. On every tick it asks the
// refresh handler to expire staffing orders whose exact scheduled time has
// passed. "Soon" orders are never touched by the sweep.
type OrderExpiryJob struct {
	handler  commands.RefreshOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderExpiryJob creates the expiry sweep job. The schedule is a cron
// expression with a seconds field, e.g. "0 * * * * *" for every minute.
func NewOrderExpiryJob(
	handler commands.RefreshOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_expiry_job"),
	}
}

// Start begins the expiry sweep on its schedule.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewRefreshOrdersCommand()

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order expiry sweep failed", "error", err)
			return
		}

		// An empty sweep is the usual case and not worth a log line.
		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired overdue orders", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started", "schedule", j.schedule)
	return nil
}

// Stop stops the expiry sweep.
func (j *OrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
