// File: services/catalog/service.go
package catalog

import (
	"context"
	"errors"

	slotRepo "slotbook/database/repository/slot"
	trackRepo "slotbook/database/repository/track"
	"slotbook/models"
	"slotbook/services/sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound indicates the referenced slot or track does not exist.
var ErrNotFound = errors.New("catalog entry not found")

// CatalogService manages the standing slot catalog and the track list. Both
// are administrative configuration; slots are immutable once created.
type CatalogService interface {
	ListSlots(ctx context.Context) ([]models.TimeSlot, error)
	CreateSlot(ctx context.Context, slot models.TimeSlot) (*models.TimeSlot, error)
	DeleteSlot(ctx context.Context, id string) error

	ListTracks(ctx context.Context) ([]models.Track, error)
	CreateTrack(ctx context.Context, track models.Track) (*models.Track, error)
	DeleteTrack(ctx context.Context, id string) error
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Slots     slotRepo.SlotRepository
	Tracks    trackRepo.TrackRepository
	Publisher *sync.Publisher
	Refresher *sync.Refresher
}

func (s *DefaultCatalogService) ListSlots(ctx context.Context) ([]models.TimeSlot, error) {
	return s.Slots.List(ctx)
}

func (s *DefaultCatalogService) CreateSlot(ctx context.Context, slot models.TimeSlot) (*models.TimeSlot, error) {
	if err := slot.Validate(); err != nil {
		return nil, err
	}

	created, err := s.Slots.Create(ctx, slot)
	if err != nil {
		return nil, err
	}

	s.Publisher.Publish(ctx, sync.CollSlots)
	s.Refresher.ScheduleRefresh(ctx)
	return created, nil
}

func (s *DefaultCatalogService) DeleteSlot(ctx context.Context, id string) error {
	if err := s.Slots.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	s.Publisher.Publish(ctx, sync.CollSlots)
	s.Refresher.ScheduleRefresh(ctx)
	return nil
}

func (s *DefaultCatalogService) ListTracks(ctx context.Context) ([]models.Track, error) {
	return s.Tracks.List(ctx)
}

func (s *DefaultCatalogService) CreateTrack(ctx context.Context, track models.Track) (*models.Track, error) {
	if track.Name == "" {
		return nil, errors.New("track name is required")
	}

	created, err := s.Tracks.Create(ctx, track)
	if err != nil {
		return nil, err
	}

	s.Publisher.Publish(ctx, sync.CollTracks)
	s.Refresher.ScheduleRefresh(ctx)
	return created, nil
}

func (s *DefaultCatalogService) DeleteTrack(ctx context.Context, id string) error {
	if err := s.Tracks.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	s.Publisher.Publish(ctx, sync.CollTracks)
	s.Refresher.ScheduleRefresh(ctx)
	return nil
}
