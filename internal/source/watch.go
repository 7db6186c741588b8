package source

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

const changeOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watch calls onChange for every created, written, removed or renamed record
// file in dir until ctx is done. Watcher errors, such as a dropped event
// queue, go to onError and watching goes on. It blocks; run it in its own
// goroutine. Only a failure to start the watcher is returned.
func Watch(ctx context.Context, dir string, onChange func(name string), onError func(err error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	watchLoop(ctx, w.Events, w.Errors, onChange, onError)
	return nil
}

func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, onChange func(string), onError func(error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Op&changeOps != 0 && Supported(ev.Name) {
				onChange(ev.Name)
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
