// File: services/sync/refresher.go
package sync

import (
	"context"
	"time"

	reservationRepo "slotbook/database/repository/reservation"
	slotRepo "slotbook/database/repository/slot"
	trackRepo "slotbook/database/repository/track"
	userRepo "slotbook/database/repository/user"
	"slotbook/models"
	"slotbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeSyncRefresh is the asynq task type for a delayed full refetch.
const TypeSyncRefresh = "sync:refresh"

// Refresher refetches all collections from the database into the store. The
// delay before a scheduled refresh gives the database time to finish
// propagating a mutation before the snapshot is rebuilt.
type Refresher struct {
	Slots        slotRepo.SlotRepository
	Tracks       trackRepo.TrackRepository
	Users        userRepo.UserRepository
	Reservations reservationRepo.ReservationRepository
	Store        *Store

	// Delay before a scheduled refresh runs. Configurable so tests can
	// shrink it; defaults to 500ms via config.
	Delay time.Duration

	// AsynqClient enqueues scheduled refreshes. When nil (tests, degraded
	// mode) a local timer is used instead.
	AsynqClient *asynq.Client
}

// RefreshNow refetches everything and installs the result, unless a newer
// refresh finished in the meantime. A failed fetch leaves the store as is.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	seq := r.Store.NextSeq()

	slots, err := r.Slots.List(ctx)
	if err != nil {
		return err
	}
	tracks, err := r.Tracks.List(ctx)
	if err != nil {
		return err
	}
	users, err := r.Users.List(ctx)
	if err != nil {
		return err
	}
	reservations, err := r.Reservations.List(ctx, models.ReservationFilter{})
	if err != nil {
		return err
	}

	applied := r.Store.ReplaceAll(seq, models.Snapshot{
		Slots:        slots,
		Reservations: reservations,
		Users:        users,
		Tracks:       tracks,
	})
	if !applied {
		utils.GetLogger().Debug("stale refresh discarded", zap.Uint64("seq", seq))
	}
	return nil
}

// ScheduleRefresh arranges a refresh after the configured delay. Mutation
// paths call this as a safety net in addition to the change-event
// subscription; duplicate refreshes are harmless because only the newest
// sequence is applied.
func (r *Refresher) ScheduleRefresh(ctx context.Context) {
	if r.AsynqClient != nil {
		task := asynq.NewTask(TypeSyncRefresh, nil)
		_, err := r.AsynqClient.Enqueue(task, asynq.ProcessIn(r.Delay))
		if err == nil {
			return
		}
		utils.GetLogger().Warn("failed to enqueue refresh task, falling back to local timer", zap.Error(err))
	}

	time.AfterFunc(r.Delay, func() {
		if err := r.RefreshNow(context.Background()); err != nil {
			utils.GetLogger().Warn("delayed refresh failed", zap.Error(err))
		}
	})
}
