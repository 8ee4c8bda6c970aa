package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	reservationRepo "slotbook/database/repository/reservation"
	"slotbook/models"
	syncSvc "slotbook/services/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeReservationRepo is an in-memory ReservationRepository enforcing the
// same (creneau_id, date, filiere_id) uniqueness as the real collection.
type fakeReservationRepo struct {
	items   map[string]models.Reservation
	failAll bool
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{items: make(map[string]models.Reservation)}
}

var errFakeDown = errors.New("fake repo unavailable")

func (f *fakeReservationRepo) Create(ctx context.Context, res models.Reservation) (*models.Reservation, error) {
	if f.failAll {
		return nil, errFakeDown
	}
	for _, existing := range f.items {
		if existing.SlotID == res.SlotID && existing.Date == res.Date && existing.TrackID == res.TrackID {
			return nil, reservationRepo.ErrDuplicate
		}
	}
	f.items[res.ID] = res
	return &res, nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, id string, upd models.ReservationUpdate) (*models.Reservation, error) {
	if f.failAll {
		return nil, errFakeDown
	}
	res, ok := f.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if upd.ModuleTitle != nil {
		res.ModuleTitle = *upd.ModuleTitle
	}
	if upd.Description != nil {
		res.Description = *upd.Description
	}
	if upd.TeachingAxis != nil {
		res.TeachingAxis = *upd.TeachingAxis
	}
	if upd.Room != nil {
		res.Room = *upd.Room
	}
	f.items[id] = res
	return &res, nil
}

func (f *fakeReservationRepo) Delete(ctx context.Context, id string) error {
	if f.failAll {
		return errFakeDown
	}
	if _, ok := f.items[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.items, id)
	return nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	if f.failAll {
		return nil, errFakeDown
	}
	res, ok := f.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &res, nil
}

func (f *fakeReservationRepo) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	if f.failAll {
		return nil, errFakeDown
	}
	out := []models.Reservation{}
	for _, res := range f.items {
		if filter.TrackID != "" && res.TrackID != filter.TrackID {
			continue
		}
		if filter.DateFrom != "" && res.Date < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && res.Date > filter.DateTo {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (f *fakeReservationRepo) FindBySlotDateTrack(ctx context.Context, slotID, date, trackID string) (*models.Reservation, error) {
	for _, res := range f.items {
		if res.SlotID == slotID && res.Date == date && res.TrackID == trackID {
			return &res, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakeSlotRepo struct{ slots []models.TimeSlot }

func (f *fakeSlotRepo) Create(ctx context.Context, slot models.TimeSlot) (*models.TimeSlot, error) {
	f.slots = append(f.slots, slot)
	return &slot, nil
}
func (f *fakeSlotRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeSlotRepo) GetByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	return nil, mongo.ErrNoDocuments
}
func (f *fakeSlotRepo) List(ctx context.Context) ([]models.TimeSlot, error) { return f.slots, nil }

type fakeTrackRepo struct{ tracks []models.Track }

func (f *fakeTrackRepo) Create(ctx context.Context, track models.Track) (*models.Track, error) {
	f.tracks = append(f.tracks, track)
	return &track, nil
}
func (f *fakeTrackRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeTrackRepo) GetByID(ctx context.Context, id string) (*models.Track, error) {
	return nil, mongo.ErrNoDocuments
}
func (f *fakeTrackRepo) List(ctx context.Context) ([]models.Track, error) { return f.tracks, nil }

type fakeUserRepo struct{ users []models.User }

func (f *fakeUserRepo) Create(ctx context.Context, usr models.User) (*models.User, error) {
	f.users = append(f.users, usr)
	return &usr, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, id string, upd models.UserUpdateRequest) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}
func (f *fakeUserRepo) List(ctx context.Context) ([]models.User, error) { return f.users, nil }
func (f *fakeUserRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	return nil
}

// newTestService wires a schedule service against in-memory fakes, with the
// store preloaded from the snapshot and a long refresh delay so background
// timers stay inert during the test.
func newTestService(snap models.Snapshot, now time.Time) (*DefaultScheduleService, *fakeReservationRepo) {
	resRepo := newFakeReservationRepo()
	for _, r := range snap.Reservations {
		resRepo.items[r.ID] = r
	}

	store := syncSvc.NewStore()
	store.ReplaceAll(store.NextSeq(), snap)

	refresher := &syncSvc.Refresher{
		Slots:        &fakeSlotRepo{slots: snap.Slots},
		Tracks:       &fakeTrackRepo{tracks: snap.Tracks},
		Users:        &fakeUserRepo{users: snap.Users},
		Reservations: resRepo,
		Store:        store,
		Delay:        time.Hour,
	}

	svc := &DefaultScheduleService{
		Reservations: resRepo,
		Store:        store,
		Refresher:    refresher,
		Now:          func() time.Time { return now },
	}
	return svc, resRepo
}

func TestCreateReservation(t *testing.T) {
	now := time.Date(2025, time.March, 2, 20, 0, 0, 0, time.UTC)
	svc, repo := newTestService(testSnapshot(), now)

	created, err := svc.CreateReservation(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UserID)

	assert.Len(t, repo.items, 1)
	assert.False(t, svc.Store.IsPending(created.ID), "confirmed writes are no longer pending")

	snap := svc.Store.Snapshot()
	require.Len(t, snap.Reservations, 1)
	assert.Equal(t, created.ID, snap.Reservations[0].ID)
}

func TestCreateReservationAddsAttribution(t *testing.T) {
	now := time.Date(2025, time.March, 2, 20, 0, 0, 0, time.UTC)
	svc, _ := newTestService(testSnapshot(), now)

	created, err := svc.CreateReservation(context.Background(), validInput())
	require.NoError(t, err)
	assert.Contains(t, created.Description, "Module présenté par Marie Durand")

	// A description already carrying the line is not double-prefixed.
	in := validInput()
	in.SlotID = "s2"
	in.Description = "Module présenté par Marie Durand\n\nSuite du cours."
	created, err = svc.CreateReservation(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in.Description, created.Description)
}

func TestCreateReservationConflict(t *testing.T) {
	now := time.Date(2025, time.March, 2, 20, 0, 0, 0, time.UTC)
	svc, repo := newTestService(testSnapshot(), now)

	first, err := svc.CreateReservation(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.UserID = "u2"
	_, err = svc.CreateReservation(context.Background(), in)
	assert.Equal(t, CodeSlotTaken, ErrCode(err))
	require.NotNil(t, ConflictOf(err))
	assert.Equal(t, first.ID, ConflictOf(err).ID)

	assert.Len(t, repo.items, 1, "the losing request writes nothing")
}

func TestCreateReservationLostRace(t *testing.T) {
	// The guard passes on a stale snapshot but the write hits the unique
	// index: the optimistic insert is rolled back and the caller sees the
	// same conflict error the guard would have produced.
	now := time.Date(2025, time.March, 2, 20, 0, 0, 0, time.UTC)
	svc, repo := newTestService(testSnapshot(), now)

	winner := models.Reservation{ID: "r-winner", UserID: "u2", TrackID: "t1", SlotID: "s1", Date: "2025-03-03"}
	repo.items[winner.ID] = winner

	_, err := svc.CreateReservation(context.Background(), validInput())
	assert.Equal(t, CodeSlotTaken, ErrCode(err))
	require.NotNil(t, ConflictOf(err))
	assert.Equal(t, "r-winner", ConflictOf(err).ID)

	assert.Empty(t, svc.Store.Snapshot().Reservations, "optimistic insert rolled back")
}

func TestCreateReservationStoreDown(t *testing.T) {
	now := time.Date(2025, time.March, 2, 20, 0, 0, 0, time.UTC)
	svc, repo := newTestService(testSnapshot(), now)
	repo.failAll = true

	_, err := svc.CreateReservation(context.Background(), validInput())
	assert.Equal(t, CodeConnection, ErrCode(err))
	assert.Empty(t, svc.Store.Snapshot().Reservations)
}

func TestUpdateReservationOwnerOnly(t *testing.T) {
	now := time.Date(2025, time.March, 2, 20, 0, 0, 0, time.UTC)
	svc, repo := newTestService(testSnapshot(), now)

	created, err := svc.CreateReservation(context.Background(), validInput())
	require.NoError(t, err)

	title := "Nouveau titre"
	_, err = svc.UpdateReservation(context.Background(), created.ID, "u2", models.ReservationUpdate{ModuleTitle: &title})
	assert.Equal(t, CodeForbidden, ErrCode(err))
	assert.Equal(t, created.ModuleTitle, repo.items[created.ID].ModuleTitle, "record untouched")

	updated, err := svc.UpdateReservation(context.Background(), created.ID, "u1", models.ReservationUpdate{ModuleTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, "Nouveau titre", updated.ModuleTitle)
}

func TestUpdateReservationNotFound(t *testing.T) {
	now := time.Date(2025, time.March, 2, 20, 0, 0, 0, time.UTC)
	svc, _ := newTestService(testSnapshot(), now)

	title := "x"
	_, err := svc.UpdateReservation(context.Background(), "missing", "u1", models.ReservationUpdate{ModuleTitle: &title})
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestDeleteReservationOwnerOnly(t *testing.T) {
	now := time.Date(2025, time.March, 2, 20, 0, 0, 0, time.UTC)
	svc, repo := newTestService(testSnapshot(), now)

	created, err := svc.CreateReservation(context.Background(), validInput())
	require.NoError(t, err)

	err = svc.DeleteReservation(context.Background(), created.ID, "u2")
	assert.Equal(t, CodeForbidden, ErrCode(err))
	assert.Len(t, repo.items, 1, "a forbidden delete never removes the record")

	err = svc.DeleteReservation(context.Background(), created.ID, "u1")
	require.NoError(t, err)
	assert.Empty(t, repo.items)
	assert.Empty(t, svc.Store.Snapshot().Reservations)
}

func TestDeleteReservationNotFound(t *testing.T) {
	now := time.Date(2025, time.March, 2, 20, 0, 0, 0, time.UTC)
	svc, _ := newTestService(testSnapshot(), now)

	err := svc.DeleteReservation(context.Background(), "missing", "u1")
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestWeekScheduleReflectsCreate(t *testing.T) {
	now := time.Date(2025, time.March, 2, 20, 0, 0, 0, time.UTC)
	svc, _ := newTestService(testSnapshot(), now)

	week, err := svc.WeekSchedule(context.Background(), date(2025, time.March, 3), "t1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, week.Days[models.Monday][0].Status)

	_, err = svc.CreateReservation(context.Background(), validInput())
	require.NoError(t, err)

	week, err = svc.WeekSchedule(context.Background(), date(2025, time.March, 3), "t1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReserved, week.Days[models.Monday][0].Status)
}

func TestUserReservationsSplit(t *testing.T) {
	now := time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)
	snap := testSnapshot()
	snap.Reservations = []models.Reservation{
		{ID: "r-past", UserID: "u1", TrackID: "t1", SlotID: "s1", Date: "2025-03-03"},
		{ID: "r-today", UserID: "u1", TrackID: "t1", SlotID: "s2", Date: "2025-03-04"},
		{ID: "r-future", UserID: "u1", TrackID: "t1", SlotID: "s3", Date: "2025-03-07"},
		{ID: "r-other", UserID: "u2", TrackID: "t2", SlotID: "s1", Date: "2025-03-10"},
	}
	svc, _ := newTestService(snap, now)

	upcoming, past, err := svc.UserReservations(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, past, 1)
	assert.Equal(t, "r-past", past[0].ID)

	require.Len(t, upcoming, 2, "today's reservations count as upcoming")
	ids := []string{upcoming[0].ID, upcoming[1].ID}
	assert.ElementsMatch(t, []string{"r-today", "r-future"}, ids)
}
