package attach

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

const resultsIndent = "    "

// Results accumulates extracted metrics for one run.
type Results struct {
	data      types.RunResult
	sink      Sink
	path      string
	persisted bool
	logger    *slog.Logger
}

func NewResults(sink Sink, path string, logger *slog.Logger) *Results {
	if logger == nil {
		logger = slog.Default()
	}
	return &Results{
		data:   types.RunResult{},
		sink:   sink,
		path:   path,
		logger: logger,
	}
}

// Record stores metrics under key, replacing any earlier entry. Records
// after Persist are ignored.
func (r *Results) Record(key string, metrics map[string]string) {
	if r.persisted {
		r.logger.Warn("results already persisted, dropping record", "ticket", key)
		return
	}
	copied := make(map[string]string, len(metrics))
	for k, v := range metrics {
		copied[k] = v
	}
	r.data[key] = copied
}

func (r *Results) Len() int {
	return len(r.data)
}

// Snapshot returns a copy of the accumulated results.
func (r *Results) Snapshot() types.RunResult {
	out := make(types.RunResult, len(r.data))
	for k, m := range r.data {
		inner := make(map[string]string, len(m))
		for name, v := range m {
			inner[name] = v
		}
		out[k] = inner
	}
	return out
}

// Persist writes the results once when there is anything to write. A write
// error is logged and reported as false; it never aborts the run.
func (r *Results) Persist() bool {
	if r.persisted || len(r.data) == 0 {
		return false
	}
	r.persisted = true

	if err := r.sink.WriteStructured(r.path, r.data); err != nil {
		r.logger.Error("problem writing the results file", "path", r.path, "error", err)
		return false
	}
	r.logger.Info("results posted", "path", r.path, "tickets", len(r.data))
	return true
}

// JSONFileSink writes indented JSON files atomically.
type JSONFileSink struct{}

func (JSONFileSink) WriteStructured(path string, value any) error {
	data, err := json.MarshalIndent(value, "", resultsIndent)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// ResultsFileName returns <dir>/<name>_<stamp>.json.
func ResultsFileName(dir, name, stamp string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.json", name, stamp))
}
