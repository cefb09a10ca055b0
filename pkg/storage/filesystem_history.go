package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/felixgeelhaar/cadence/pkg/domain"
)

// AppendHistory adds one metric snapshot to .cadence/history.json. The
// file is a small JSON array, rewritten whole on each append.
func (r *FilesystemRepository) AppendHistory(snapshot domain.MetricSnapshot) error {
	history, err := r.LoadHistory()
	if err != nil {
		return err
	}
	history = append(history, snapshot)

	path, err := r.ResolvePath(HistoryFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadHistory() ([]domain.MetricSnapshot, error) {
	path, err := r.ResolvePath(HistoryFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.MetricSnapshot{}, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var history []domain.MetricSnapshot
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	return history, nil
}
