// Package async provides a small, cancelable interval runner used to drive
// background JWKS refresh without pinning an OS thread: a single goroutine
// per scheduler, woken by a time.Ticker, stopped via context cancellation.
//
// Basic usage:
//
//	sched := async.NewScheduler(60*time.Second, func(ctx context.Context) {
//		if err := loader.refresh(ctx); err != nil {
//			log.Warn("refresh failed", logger.Error(err))
//		}
//	})
//	sched.Start(ctx)
//	defer sched.Stop()
//
// Start runs the function once immediately (synchronously, before
// returning) so a newly constructed loader has a best-effort snapshot
// before serving its first request, then continues on the ticker in its
// own goroutine.
package async
