package render

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch 监听 path 所在目录，path 变化后经 debounce 调用 fn，直到 ctx 取消。
//
// 目标文件被整体替换 (写临时文件后重命名) 时同样触发。
func watch(ctx context.Context, path string, debounce time.Duration, fn func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerC = timer.C

			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(debounce)
		timerC = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timerC:
			timerC = nil
			fn()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldRender(evt, abs) {
				resetTimer()
			}
		}
	}
}

// shouldRender 判断事件是否涉及目标文件的内容变化。
func shouldRender(evt fsnotify.Event, target string) bool {
	if evt.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}

	name, err := filepath.Abs(evt.Name)
	if err != nil {
		return false
	}

	return name == target
}
