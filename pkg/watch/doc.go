// Package watch re-runs the gate when dictionary inputs change or on a
// cron schedule.
//
// FileWatcher wraps fsnotify: directories are watched recursively, events
// are filtered by extension and debounced so that an editor save or a bulk
// copy produces one run. Scheduler wraps robfig/cron. Runner serializes the
// runs requested by both so that a gate run never overlaps another.
//
//	runner := watch.NewRunner(func(ctx context.Context, trig watch.Trigger) {
//	    runGate(ctx, trig)
//	})
//	fw, _ := watch.NewFileWatcher(&watch.FileWatcherConfig{Paths: paths}, logger)
//	go fw.Watch(ctx, func([]string) { runner.Request(ctx, watch.TriggerChange) })
package watch
