// pkg/config/watch.go

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// watchSettle absorbs the burst of events editors produce for one save.
const watchSettle = 100 * time.Millisecond

// Watch re-reads path whenever it is written or replaced and passes the
// result to onChange. Invalid edits are logged and skipped. The directory is
// watched rather than the file so atomic renames are seen. Watch returns once
// the watcher is running; it stops when ctx is done.
func Watch(ctx context.Context, path string, log *zap.Logger, onChange func(*Config)) error {
	if log == nil {
		log = zap.NewNop()
	}
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return err
	}

	go runWatcher(ctx, path, log, w, onChange)
	return nil
}

func runWatcher(ctx context.Context, path string, log *zap.Logger, w *fsnotify.Watcher, onChange func(*Config)) {
	defer func() { _ = w.Close() }()

	var settle <-chan time.Time
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				settle = time.After(watchSettle)
			}

		case <-settle:
			settle = nil
			cfg, err := reload(path)
			if err != nil {
				log.Warn("Ignoring config change", zap.String("path", path), zap.Error(err))
				continue
			}
			log.Info("Config file changed", zap.String("path", path))
			onChange(cfg)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("Config watch error", zap.Error(err))

		case <-ctx.Done():
			return
		}
	}
}

// reload reads path on its own, without environment or flags.
func reload(path string) (*Config, error) {
	v := viper.New()
	if _, err := readConfigFile(v, path); err != nil {
		return nil, err
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
