package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain"
	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"
)

const CadenceDir = ".cadence"
const ChannelsFile = "channels.yaml"
const TemplatesFile = "templates.yaml"
const ScheduleFile = "schedule.json"
const SettingsFile = "settings.yaml"
const HistoryFile = "history.json"
const EventsFile = "events.jsonl"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path is within the .cadence directory and prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	// Base directory is strictly root/.cadence
	baseDir := filepath.Join(r.root, CadenceDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	// Check for traversal and ensure it's a direct child (no nested subdirs in .cadence for now)
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, CadenceDir)
	// G301: Use 0700 for directories
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .cadence directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, CadenceDir))
	return err == nil
}

func (r *FilesystemRepository) SaveChannels(channels []schedule.Channel) error {
	path, err := r.ResolvePath(ChannelsFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(channels)
	if err != nil {
		return fmt.Errorf("failed to marshal channels: %w", err)
	}

	// G306: Use 0600 for files
	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadChannels() ([]schedule.Channel, error) {
	retryer := retry.New[[]schedule.Channel](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) ([]schedule.Channel, error) {
		path, err := r.ResolvePath(ChannelsFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return []schedule.Channel{}, nil
			}
			return nil, fmt.Errorf("failed to read channels file: %w", err)
		}

		var channels []schedule.Channel
		if err := yaml.Unmarshal(data, &channels); err != nil {
			return nil, fmt.Errorf("failed to unmarshal channels: %w", err)
		}

		return channels, nil
	})
}

func (r *FilesystemRepository) SaveTemplates(templates []schedule.Template) error {
	path, err := r.ResolvePath(TemplatesFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(templates)
	if err != nil {
		return fmt.Errorf("failed to marshal templates: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadTemplates() ([]schedule.Template, error) {
	path, err := r.ResolvePath(TemplatesFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []schedule.Template{}, nil
		}
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}

	var templates []schedule.Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal templates: %w", err)
	}

	return templates, nil
}

// SaveSettings saves the planner settings to .cadence/settings.yaml.
func (r *FilesystemRepository) SaveSettings(cfg *domain.PlannerSettings) error {
	path, err := r.ResolvePath(SettingsFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadSettings loads the planner settings from .cadence/settings.yaml.
// A missing file yields the defaults; a partially filled file is normalized.
func (r *FilesystemRepository) LoadSettings() (*domain.PlannerSettings, error) {
	path, err := r.ResolvePath(SettingsFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultPlannerSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var cfg domain.PlannerSettings
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	cfg.Normalize()

	return &cfg, nil
}
