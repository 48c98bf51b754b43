package app

import (
	"context"
	"errors"

	"github.com/dshills/ropeview/internal/watch"
)

// Watch runs scripts once, then again after every event from src, until
// ctx is done or src is closed. Script failures are logged and do not
// stop the loop. Watch does not close src.
func (r *Runner) Watch(ctx context.Context, scripts []Script, src watch.Source) error {
	if len(scripts) == 0 {
		return ErrNoScripts
	}

	r.rerun(ctx, scripts)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-src.Events():
			if !ok {
				return nil
			}
			r.log.WithField("path", ev.Path).WithField("op", ev.Op.String()).Info("change detected, rerunning")
			r.rerun(ctx, scripts)

		case err, ok := <-src.Errors():
			if !ok {
				return nil
			}
			r.log.WithError(err).Warn("watch error")
		}
	}
}

// rerun runs scripts and logs failures that runScript has not logged.
func (r *Runner) rerun(ctx context.Context, scripts []Script) {
	err := r.Run(ctx, scripts)
	var serr *ScriptError
	if err == nil || errors.As(err, &serr) || ctx.Err() != nil {
		return
	}
	r.log.WithError(err).Error("run failed")
}

// WatchFiles tracks the file scripts with a debounced fsnotify watcher and
// runs the watch loop. Inline scripts run on every rerun but are not
// watched.
func (r *Runner) WatchFiles(ctx context.Context, scripts []Script) error {
	fw, err := watch.NewFileWatcher()
	if err != nil {
		return &ComponentError{Component: "watch", Action: "create watcher", Err: err}
	}

	for _, script := range scripts {
		if script.Path == "" {
			continue
		}
		if err := fw.Add(script.Path); err != nil {
			fw.Close()
			return &ComponentError{Component: "watch", Action: "add " + script.Path, Err: err}
		}
	}

	src := watch.NewDebounced(fw, r.cfg.Watch.Debounce.Duration)
	defer src.Close()

	r.log.WithField("files", len(fw.Files())).Info("watching for changes")
	return r.Watch(ctx, scripts, src)
}
