package report

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"

	corereport "github.com/kilianp07/fleetsim/core/report"
)

// ZstdStore writes one compressed JSONL entry per tick. Each writing session
// is its own zstd frame, so the file stays readable between sessions.
type ZstdStore struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewZstdStore(path string) (*ZstdStore, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return &ZstdStore{path: path}, nil
}

func (s *ZstdStore) Append(_ context.Context, rec corereport.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		if err := s.openLocked(); err != nil {
			return err
		}
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Query ends the current frame and decodes the whole file.
func (s *ZstdStore) Query(_ context.Context, q corereport.Query) ([]corereport.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.closeLocked(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return scanRecords(dec, q)
}

func (s *ZstdStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *ZstdStore) openLocked() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	s.f = f
	s.enc = enc
	s.w = bufio.NewWriterSize(enc, 128*1024)
	return nil
}

func (s *ZstdStore) closeLocked() error {
	var firstErr error
	if s.w != nil {
		firstErr = s.w.Flush()
	}
	if s.enc != nil {
		if err := s.enc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.f != nil {
		if err := s.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.f, s.enc, s.w = nil, nil, nil
	return firstErr
}
