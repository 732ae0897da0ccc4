// Package dataset serializes generated entries to CSV files.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/25smoking/aggsynth/internal/core"
	"go.uber.org/zap"
)

// Progress observes row generation. Implementations must tolerate total == 0.
type Progress interface {
	Start(total int)
	Advance(n int)
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(int)   {}
func (nopProgress) Advance(int) {}
func (nopProgress) Finish()     {}

// Result describes one GenerateData call.
type Result struct {
	Path     string        `json:"path"`
	Rows     int           `json:"rows"`
	Skipped  bool          `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// Writer turns an EntrySource into a CSV dataset.
type Writer struct {
	src          core.EntrySource
	noAttributes int
	log          *zap.Logger
	progress     Progress
}

type WriterOption func(*Writer)

func WithLogger(l *zap.Logger) WriterOption {
	return func(w *Writer) {
		if l != nil {
			w.log = l
		}
	}
}

func WithProgress(p Progress) WriterOption {
	return func(w *Writer) {
		if p != nil {
			w.progress = p
		}
	}
}

func NewWriter(src core.EntrySource, noAttributes int, opts ...WriterOption) *Writer {
	w := &Writer{
		src:          src,
		noAttributes: noAttributes,
		log:          zap.NewNop(),
		progress:     nopProgress{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Header returns hash_0..hash_{n-1} followed by the statistic names.
func Header(noAttributes int) []string {
	header := make([]string, 0, noAttributes+len(core.StatisticNames))
	for i := 0; i < noAttributes; i++ {
		header = append(header, "hash_"+strconv.Itoa(i))
	}
	return append(header, core.StatisticNames...)
}

// GenerateData writes a header and count entries to filename. An existing
// file is left untouched unless force is set, in which case it is removed
// first. Rows go to filename+".tmp" and are renamed into place on success.
func (w *Writer) GenerateData(ctx context.Context, count int, filename string, force bool) (Result, error) {
	res := Result{Path: filename}
	if count < 0 {
		return res, fmt.Errorf("invalid row count %d", count)
	}

	if _, err := os.Stat(filename); err == nil {
		if !force {
			w.log.Info("dataset exists, skipping", zap.String("path", filename))
			res.Skipped = true
			return res, nil
		}
		if err := os.Remove(filename); err != nil {
			return res, fmt.Errorf("failed to remove existing dataset: %w", err)
		}
		w.log.Info("removed existing dataset", zap.String("path", filename))
	} else if !errors.Is(err, os.ErrNotExist) {
		return res, fmt.Errorf("failed to stat dataset: %w", err)
	}

	start := time.Now()
	tmp := filename + ".tmp"
	rows, err := w.writeRows(ctx, count, tmp)
	res.Rows = rows
	if err != nil {
		os.Remove(tmp)
		return res, err
	}
	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return res, fmt.Errorf("failed to move dataset into place: %w", err)
	}
	res.Duration = time.Since(start)

	w.log.Info("dataset written",
		zap.String("path", filename),
		zap.Int("rows", rows),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

func (w *Writer) writeRows(ctx context.Context, count int, path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create dataset: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Header(w.noAttributes)); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	w.progress.Start(count)
	defer w.progress.Finish()

	record := make([]string, 0, w.noAttributes+len(core.StatisticNames))
	for i := 0; i < count; i++ {
		entry, err := core.SafeGenerate(ctx, w.src, w.log)
		if err != nil {
			return i, fmt.Errorf("failed to generate entry %d: %w", i, err)
		}
		if len(entry.Features) != w.noAttributes || len(entry.Targets) != len(core.StatisticNames) {
			return i, fmt.Errorf("entry %d has %d features and %d targets, want %d and %d",
				i, len(entry.Features), len(entry.Targets), w.noAttributes, len(core.StatisticNames))
		}

		record = record[:0]
		for _, v := range entry.Features {
			record = append(record, formatFeature(v))
		}
		for _, v := range entry.Targets {
			record = append(record, formatFloat(v))
		}
		if err := cw.Write(record); err != nil {
			return i, fmt.Errorf("failed to write row %d: %w", i, err)
		}
		w.progress.Advance(1)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return count, fmt.Errorf("failed to flush dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		return count, fmt.Errorf("failed to close dataset: %w", err)
	}
	return count, nil
}

// formatFeature keeps hash-like attribute values in plain decimal notation.
func formatFeature(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
