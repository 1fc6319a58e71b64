package app

import (
	"context"
	"time"

	"github.com/sheetsite/core/internal/modules/system/locator"
	pkgcron "github.com/sheetsite/core/internal/pkg/cron"
)

const refreshJobName = "refresh_snapshot"

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, svc *locator.Service, interval time.Duration) {
	sched.Register(pkgcron.Job{
		Name:        refreshJobName,
		Description: "Rebuild the content snapshot from the current spreadsheet",
		Interval:    interval,
		Immediate:   true,
		Fn: func(ctx context.Context) error {
			_, err := svc.Refresh(ctx)
			return err
		},
	})
}
