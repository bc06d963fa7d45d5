// Package store appends contact records to a CSV file.
package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/smileynet/contactcsv/internal/contact"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrEmptyField = errors.New("store: record has an empty field")
	ErrBadHeader  = errors.New("store: unexpected header row")
)

// CSVStore appends records to a single CSV file. Rows are never rewritten.
type CSVStore struct {
	path   string
	delay  time.Duration
	logger *zap.Logger
}

// Option configures a CSVStore.
type Option func(*CSVStore)

// WithDelay sets a pause taken before each write.
func WithDelay(d time.Duration) Option {
	return func(s *CSVStore) {
		s.delay = d
	}
}

// WithLogger sets the logger for store operations.
func WithLogger(l *zap.Logger) Option {
	return func(s *CSVStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewCSVStore creates a CSVStore writing to path.
func NewCSVStore(path string, opts ...Option) *CSVStore {
	s := &CSVStore{path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store appends to.
func (s *CSVStore) Path() string {
	return s.path
}

// Append writes rec as one row, preceded by the header row when the file is
// new or empty. Nothing is written if ctx is done before the write starts.
func (s *CSVStore) Append(ctx context.Context, rec contact.Record) error {
	if !rec.Complete() {
		return fmt.Errorf("%w: %+v", ErrEmptyField, rec)
	}

	if err := s.wait(ctx); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: creating directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		s.logger.Error("open failed", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("store: opening %s: %w", s.path, err)
	}

	if err := s.write(f, rec); err != nil {
		_ = f.Close()
		s.logger.Error("append failed", zap.String("path", s.path), zap.Error(err))
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("store: closing %s: %w", s.path, err)
	}

	s.logger.Info("contact appended",
		zap.String("path", s.path),
		zap.String("name", rec.Name),
		zap.Time("created_at", rec.CreatedAt),
	)
	return nil
}

// wait pauses for the configured delay, returning early if ctx is done.
func (s *CSVStore) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *CSVStore) write(f *os.File, rec contact.Record) error {
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("store: stat %s: %w", s.path, err)
	}

	if info.Size() > 0 {
		if err := s.terminateLastLine(f, info.Size()); err != nil {
			return err
		}
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(contact.Header); err != nil {
			return fmt.Errorf("store: writing header: %w", err)
		}
		s.logger.Debug("header written", zap.String("path", s.path))
	}
	if err := w.Write(rec.Row()); err != nil {
		return fmt.Errorf("store: writing row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("store: flushing %s: %w", s.path, err)
	}
	return nil
}

// terminateLastLine appends a newline when the file's last line is unterminated,
// so the next row starts on its own line.
func (s *CSVStore) terminateLastLine(f *os.File, size int64) error {
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, size-1); err != nil {
		return fmt.Errorf("store: reading %s: %w", s.path, err)
	}
	if last[0] == '\n' {
		return nil
	}
	if _, err := f.Write([]byte("\n")); err != nil {
		return fmt.Errorf("store: terminating last line of %s: %w", s.path, err)
	}
	s.logger.Warn("unterminated last line repaired", zap.String("path", s.path))
	return nil
}

// ReadAll reads every record stored at path. A missing file yields no records.
func ReadAll(path string) ([]contact.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(contact.Header)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: reading header: %w", err)
	}
	for i, col := range contact.Header {
		if header[i] != col {
			return nil, fmt.Errorf("%w: %q", ErrBadHeader, header)
		}
	}

	var records []contact.Record
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("store: reading %s: %w", path, err)
		}
		createdAt, err := time.Parse(contact.TimeFormat, row[3])
		if err != nil {
			return nil, fmt.Errorf("store: parsing created_at %q: %w", row[3], err)
		}
		records = append(records, contact.Record{
			Name:      row[0],
			Number:    row[1],
			Email:     row[2],
			CreatedAt: createdAt,
		})
	}
	return records, nil
}
