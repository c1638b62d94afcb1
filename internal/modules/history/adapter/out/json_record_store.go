package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tomato/internal/modules/history/domain"
	historyout "tomato/internal/modules/history/port/out"
	apperrors "tomato/internal/platform/errors"
)

type JSONRecordStore struct {
	path string
}

func NewJSONRecordStore(path string) historyout.RecordStore {
	return &JSONRecordStore{path: path}
}

func (s *JSONRecordStore) Load(_ context.Context) ([]domain.Record, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Record{}, nil
		}
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return []domain.Record{}, nil
	}
	records := []domain.Record{}
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptStore, s.path, err)
	}
	return records, nil
}

// Append rewrites the whole file. A failed load aborts so a corrupt file is
// never replaced with a truncated history.
func (s *JSONRecordStore) Append(ctx context.Context, record domain.Record) error {
	records, err := s.Load(ctx)
	if err != nil {
		return err
	}
	records = append(records, record)
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	return writeAtomic(s.path, append(payload, '\n'))
}

func writeAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sessions dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write sessions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close sessions: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod sessions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace sessions: %w", err)
	}
	return nil
}
