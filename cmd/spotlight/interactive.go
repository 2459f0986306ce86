package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yourusername/spotlight/internal/logging"
	"github.com/yourusername/spotlight/internal/output"
	"github.com/yourusername/spotlight/internal/types"
)

type keyAction int

const (
	keyMove keyAction = iota
	keyQuit
	keyPause
	keyHistory
)

type keyEvent struct {
	action keyAction
	dir    types.Direction
}

// parseKeys decodes raw terminal input. Unknown bytes are dropped.
func parseKeys(buf []byte) []keyEvent {
	var events []keyEvent
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == 0x1b && i+2 < len(buf) && buf[i+1] == '[' {
			if dir, ok := arrowDirection(buf[i+2]); ok {
				events = append(events, keyEvent{action: keyMove, dir: dir})
			}
			i += 2
			continue
		}
		switch b {
		case 'h':
			events = append(events, keyEvent{action: keyMove, dir: types.DirLeft})
		case 'j':
			events = append(events, keyEvent{action: keyMove, dir: types.DirDown})
		case 'k':
			events = append(events, keyEvent{action: keyMove, dir: types.DirUp})
		case 'l':
			events = append(events, keyEvent{action: keyMove, dir: types.DirRight})
		case 'p':
			events = append(events, keyEvent{action: keyPause})
		case 't':
			events = append(events, keyEvent{action: keyHistory})
		case 'q', 0x03, 0x04: // q, Ctrl-C, Ctrl-D
			events = append(events, keyEvent{action: keyQuit})
		}
	}
	return events
}

func arrowDirection(b byte) (types.Direction, bool) {
	switch b {
	case 'A':
		return types.DirUp, true
	case 'B':
		return types.DirDown, true
	case 'C':
		return types.DirRight, true
	case 'D':
		return types.DirLeft, true
	}
	return 0, false
}

// isSceneEvent reports whether a watcher event changed the scene file
func isSceneEvent(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(path) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// readKeys forwards stdin chunks until it fails
func readKeys(r io.Reader, out chan<- []byte) {
	defer close(out)
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			out <- chunk
		}
		if err != nil {
			return
		}
	}
}

// runInteractive puts the terminal in raw mode and drives the navigator from key presses
func runInteractive(ss *session) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("interactive mode needs a terminal")
	}

	path := resolvedScenePath()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Warn().Err(err).Msg("scene file watching disabled")
	} else {
		defer watcher.Close()
		// Editors often replace the file, so watch its directory
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("scene file watching disabled")
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	keys := make(chan []byte)
	go readKeys(os.Stdin, keys)

	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	if watcher != nil {
		events = watcher.Events
		watchErrs = watcher.Errors
	}

	status := "arrows/hjkl move · p pause · t history · q quit"
	showHistory := false
	for {
		draw(os.Stdout, ss, status, showHistory)

		select {
		case chunk, ok := <-keys:
			if !ok {
				return nil
			}
			for _, ev := range parseKeys(chunk) {
				switch ev.action {
				case keyQuit:
					fmt.Fprint(os.Stdout, "\x1b[H\x1b[2J")
					return nil
				case keyPause:
					if ss.nav.Paused() {
						ss.nav.Resume()
						status = "resumed"
					} else {
						ss.nav.Pause()
						status = "paused"
					}
				case keyHistory:
					showHistory = !showHistory
				case keyMove:
					from := ss.currentName()
					if ss.nav.Move(ev.dir) {
						status = fmt.Sprintf("%s: %s → %s", ev.dir, from, ss.currentName())
					} else {
						status = fmt.Sprintf("%s: no target", ev.dir)
					}
				}
			}

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !isSceneEvent(ev, path) {
				continue
			}
			updated, added, removed, err := ss.reload()
			if err != nil {
				logging.Warn().Err(err).Msg("scene reload failed")
				status = "reload failed: " + err.Error()
				continue
			}
			logging.Info().Int("updated", updated).Int("added", added).Int("removed", removed).Msg("scene reloaded")
			status = fmt.Sprintf("reloaded: %d updated, %d added, %d removed", updated, added, removed)

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			logging.Warn().Err(err).Msg("scene watcher error")
		}
	}
}

// draw repaints the whole screen. Raw mode needs explicit carriage returns.
func draw(w io.Writer, ss *session, status string, showHistory bool) {
	opts := getVisualizationOptions()
	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if showWidth == 0 {
			opts.MaxWidth = width
		}
		if showHeight == 0 {
			opts.MaxHeight = height - 3
		}
	}

	var buf bytes.Buffer
	if showHistory {
		if err := output.PrintHistoryTable(&buf, ss.scene, ss.nav.History()); err != nil {
			logging.Warn().Err(err).Msg("failed to render history")
		}
	} else if err := output.PrintVisualization(&buf, ss.scene, ss.nav.Current(), opts); err != nil {
		logging.Warn().Err(err).Msg("failed to render scene")
	}

	screen := strings.ReplaceAll(buf.String(), "\n", "\r\n")
	fmt.Fprintf(w, "\x1b[H\x1b[2J%s", screen)
	if ss.nav.Paused() {
		infoColor.Fprint(w, "[paused] ")
	}
	fmt.Fprint(w, status)
}
