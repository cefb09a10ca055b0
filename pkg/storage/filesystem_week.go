package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/xeipuuv/gojsonschema"
)

// weekSchemaJSON guards schedule.json against hand edits that would
// silently corrupt the planning data. Unknown extra fields are allowed;
// structural damage is not.
const weekSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["start_date", "tasks"],
  "properties": {
    "start_date": { "type": "string" },
    "capacity_hours": { "type": "number", "minimum": 0 },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "channel_id", "title", "estimated_hours", "status", "scheduled_start", "scheduled_end"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "channel_id": { "type": "string", "minLength": 1 },
          "title": { "type": "string", "minLength": 1 },
          "estimated_hours": { "type": "number", "exclusiveMinimum": 0 },
          "status": { "type": "string", "enum": ["planned", "in_progress", "completed", "overdue", ""] },
          "scheduled_start": { "type": "string" },
          "scheduled_end": { "type": "string" }
        }
      }
    }
  }
}`

var weekSchemaLoader = gojsonschema.NewStringLoader(weekSchemaJSON)

func (r *FilesystemRepository) SaveWeek(week *schedule.Week) error {
	path, err := r.ResolvePath(ScheduleFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(week, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal week: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadWeek reads the current week from .cadence/schedule.json, validating
// it against the embedded schema first. A missing file yields an empty
// week so a fresh workspace works without a separate bootstrap step.
func (r *FilesystemRepository) LoadWeek() (*schedule.Week, error) {
	retryer := retry.New[*schedule.Week](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*schedule.Week, error) {
		path, err := r.ResolvePath(ScheduleFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return &schedule.Week{Tasks: []schedule.Task{}}, nil
			}
			return nil, fmt.Errorf("failed to read schedule file: %w", err)
		}

		if err := validateWeekDocument(data); err != nil {
			return nil, err
		}

		var week schedule.Week
		if err := json.Unmarshal(data, &week); err != nil {
			return nil, fmt.Errorf("failed to unmarshal week: %w", err)
		}
		if week.Tasks == nil {
			week.Tasks = []schedule.Task{}
		}

		return &week, nil
	})
}

func validateWeekDocument(data []byte) error {
	result, err := gojsonschema.Validate(weekSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate schedule file: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("schedule file is invalid: %s", strings.Join(issues, "; "))
}
