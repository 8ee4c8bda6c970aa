// File: services/sync/publisher.go
package sync

import (
	"context"

	"slotbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ChannelPrefix namespaces the Redis pub/sub channels carrying change
// notifications between service instances.
const ChannelPrefix = "changes:"

// Collections with change channels.
const (
	CollReservations = "reservations"
	CollSlots        = "creneaux"
	CollTracks       = "filieres"
	CollUsers        = "users"
)

// Publisher broadcasts coarse "something changed" events over Redis pub/sub.
type Publisher struct {
	Client *redis.Client
}

// Publish announces a change in the named collection. Failures are logged and
// swallowed: the delayed refresh fallback covers missed notifications.
func (p *Publisher) Publish(ctx context.Context, collection string) {
	if p == nil || p.Client == nil {
		return
	}
	if err := p.Client.Publish(ctx, ChannelPrefix+collection, "changed").Err(); err != nil {
		utils.GetLogger().Warn("failed to publish change event",
			zap.String("collection", collection), zap.Error(err))
	}
}

// Subscriber listens on the change channels and triggers a delayed refresh
// for every event received.
type Subscriber struct {
	Client    *redis.Client
	Refresher *Refresher
}

// Listen blocks consuming change events until ctx is cancelled. Run it in its
// own goroutine.
func (s *Subscriber) Listen(ctx context.Context) {
	channels := []string{
		ChannelPrefix + CollReservations,
		ChannelPrefix + CollSlots,
		ChannelPrefix + CollTracks,
		ChannelPrefix + CollUsers,
	}
	sub := s.Client.Subscribe(ctx, channels...)
	defer sub.Close()

	logger := utils.GetLogger()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			logger.Debug("change event received", zap.String("channel", msg.Channel))
			s.Refresher.ScheduleRefresh(ctx)
		}
	}
}
