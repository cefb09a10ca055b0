package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain"
	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/google/uuid"
)

type ChannelService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewChannelService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *ChannelService {
	return &ChannelService{repo: repo, audit: audit}
}

// AddChannel registers a new distribution channel. Names are unique
// case-insensitively so "Podcast" and "podcast" cannot coexist.
func (s *ChannelService) AddChannel(name string, contentType schedule.ContentType, posting schedule.PostingSchedule) (*schedule.Channel, error) {
	channels, err := s.repo.LoadChannels()
	if err != nil {
		return nil, err
	}

	for _, ch := range channels {
		if strings.EqualFold(ch.Name, name) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateChannel, name)
		}
	}

	channel := schedule.Channel{
		ID:              uuid.New().String(),
		Name:            name,
		ContentType:     contentType,
		PostingSchedule: posting,
		IsActive:        true,
		CreatedAt:       time.Now(),
	}
	if err := channel.Validate(); err != nil {
		return nil, err
	}

	channels = append(channels, channel)
	if err := s.repo.SaveChannels(channels); err != nil {
		return nil, err
	}

	if err := s.audit.Log("channel.add", map[string]interface{}{
		"channel_id": channel.ID,
		"name":       channel.Name,
	}); err != nil {
		return nil, err
	}

	return &channel, nil
}

func (s *ChannelService) ListChannels() ([]schedule.Channel, error) {
	return s.repo.LoadChannels()
}

// GetChannel resolves a channel by ID or, as a convenience, by exact name.
func (s *ChannelService) GetChannel(idOrName string) (*schedule.Channel, error) {
	channels, err := s.repo.LoadChannels()
	if err != nil {
		return nil, err
	}

	for i := range channels {
		if channels[i].ID == idOrName || strings.EqualFold(channels[i].Name, idOrName) {
			return &channels[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, idOrName)
}

// ArchiveChannel deactivates a channel. Existing tasks keep their channel
// reference; the task lifecycle guard stops new work from being picked up
// on an archived channel.
func (s *ChannelService) ArchiveChannel(idOrName string) error {
	channels, err := s.repo.LoadChannels()
	if err != nil {
		return err
	}

	for i := range channels {
		if channels[i].ID == idOrName || strings.EqualFold(channels[i].Name, idOrName) {
			if !channels[i].IsActive {
				return nil // already archived
			}
			channels[i].IsActive = false
			if err := s.repo.SaveChannels(channels); err != nil {
				return err
			}
			return s.audit.Log("channel.archive", map[string]interface{}{
				"channel_id": channels[i].ID,
				"name":       channels[i].Name,
			})
		}
	}
	return fmt.Errorf("%w: %s", ErrChannelNotFound, idOrName)
}

// RestoreChannel reactivates an archived channel.
func (s *ChannelService) RestoreChannel(idOrName string) error {
	channels, err := s.repo.LoadChannels()
	if err != nil {
		return err
	}

	for i := range channels {
		if channels[i].ID == idOrName || strings.EqualFold(channels[i].Name, idOrName) {
			channels[i].IsActive = true
			if err := s.repo.SaveChannels(channels); err != nil {
				return err
			}
			return s.audit.Log("channel.restore", map[string]interface{}{
				"channel_id": channels[i].ID,
			})
		}
	}
	return fmt.Errorf("%w: %s", ErrChannelNotFound, idOrName)
}
