// Package app assembles the shell: classifier, dispatcher, executor,
// history, and plugins, behind the raw-line entry points the REPL
// consumes.
package app

import (
	"context"
	"os"
	"strings"

	"github.com/dshills/aish/internal/classify"
	"github.com/dshills/aish/internal/config"
	"github.com/dshills/aish/internal/dispatch"
	"github.com/dshills/aish/internal/executor"
	"github.com/dshills/aish/internal/history"
	"github.com/dshills/aish/internal/luaplugin"
	"github.com/dshills/aish/internal/parse"
)

// Assistant is the external natural-language collaborator. Lines the
// classifier routes away from the execution core are handed here.
type Assistant interface {
	// Respond answers a natural-language line. recent is the recent
	// command context from the history collaborator.
	Respond(ctx context.Context, line, recent string) (string, error)
}

// Shell wires the execution core together. It processes one line at a
// time; none of its entry points are safe for concurrent use.
type Shell struct {
	cfg config.Config
	log *Logger

	classifier *classify.Classifier
	watcher    *classify.Watcher
	dispatcher *dispatch.Dispatcher
	runner     *executor.Runner
	store      *history.Store
	plugins    *luaplugin.Manager
	assistant  Assistant

	logFile *os.File
}

// Options configures a Shell.
type Options struct {
	Config    config.Config
	Assistant Assistant // nil when no assistant is wired

	// DisableWatcher turns off the fsnotify PATH watcher.
	DisableWatcher bool
}

// New builds a shell from options. History and plugin failures are
// degraded, not fatal: the shell runs without them.
func New(opts Options) (*Shell, error) {
	cfg := opts.Config

	s := &Shell{cfg: cfg, assistant: opts.Assistant}

	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	// Logging to a file keeps diagnostics off the command streams.
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err == nil {
			s.logFile = f
			s.log = NewLogger(f, ParseLogLevel(cfg.LogLevel))
		}
	}
	if s.log == nil {
		s.log = NewLogger(nil, LogLevelInfo)
	}

	index := classify.NewPathIndex()
	s.classifier = classify.New(index, cfg.AssistantName)
	s.log.Debug("path index built: %d names", index.Len())

	if !opts.DisableWatcher {
		w, err := classify.NewWatcher(index)
		if err != nil {
			s.log.Warn("path watcher unavailable: %v", err)
		} else {
			s.watcher = w
		}
	}

	store, err := history.Open(cfg.HistoryPath, s.log)
	if err != nil {
		s.log.Warn("history store unavailable: %v", err)
	} else {
		s.store = store
	}

	s.runner = executor.NewRunner()

	dispatchOpts := []dispatch.Option{
		dispatch.WithPathChangeHook(func() {
			index.Reload()
			if s.watcher != nil {
				s.watcher.Rewatch()
			}
			s.log.Debug("path index reloaded: %d names", index.Len())
		}),
	}
	if s.store != nil {
		dispatchOpts = append(dispatchOpts, dispatch.WithHistory(historyLines{s.store}))
	}
	s.dispatcher = dispatch.New(s.runner, dispatchOpts...)

	s.plugins = luaplugin.NewManager()
	for _, err := range s.plugins.LoadDir(cfg.PluginDir, s.dispatcher) {
		s.log.Warn("plugin load: %v", err)
	}

	return s, nil
}

// Close releases the shell's resources.
func (s *Shell) Close() {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.plugins != nil {
		s.plugins.Close()
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

// Classify decides what a raw line is without executing anything.
func (s *Shell) Classify(line string) classify.Kind {
	return s.classifier.Classify(line)
}

// Classifier exposes the classifier, whose path index serves the line
// editor's completion and highlighting consumers.
func (s *Shell) Classifier() *classify.Classifier {
	return s.classifier
}

// Execute parses and runs a command line, records it in history, and
// returns the normalized result. An empty line is a no-op command.
func (s *Shell) Execute(line string) executor.Result {
	if strings.TrimSpace(line) == "" {
		return executor.Result{}
	}

	p, err := parse.ParseLine(line)
	if err != nil {
		res := executor.Errorf(1, "%v", err)
		s.record(line, res)
		return res
	}

	res := s.dispatcher.Route(p)
	s.record(line, res)
	return res
}

// ExecuteBuiltin runs line if and only if its first word names a
// builtin command. It reports false without parsing otherwise, so the
// caller can route natural-language punctuation to the assistant
// without tripping over parse errors.
func (s *Shell) ExecuteBuiltin(line string) (executor.Result, bool) {
	res, ok := s.dispatcher.TryBuiltin(line)
	if ok {
		s.record(line, res)
	}
	return res, ok
}

// RecentContext renders recent command history for the assistant.
func (s *Shell) RecentContext(n int) string {
	if s.store == nil {
		return ""
	}
	return s.store.RecentContext(n)
}

// record persists fire-and-forget; the store logs and swallows its own
// failures.
func (s *Shell) record(line string, res executor.Result) {
	if s.store != nil {
		s.store.Record(line, res)
	}
}

// historyLines adapts the history store to the dispatch builtin's
// narrower interface.
type historyLines struct {
	store *history.Store
}

func (h historyLines) Recent(n int) ([]string, error) {
	entries, err := h.store.Recent(n)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line
	}
	return lines, nil
}
