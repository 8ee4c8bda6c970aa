package schedule

import (
	"testing"

	"slotbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() models.ReservationInput {
	return models.ReservationInput{
		UserID:      "u1",
		TrackID:     "t1",
		SlotID:      "s1",
		Date:        "2025-03-03",
		ModuleTitle: "Algorithmique avancée",
		Description: "Introduction aux structures de données persistantes.",
	}
}

func TestCheckReservationPasses(t *testing.T) {
	assert.NoError(t, CheckReservation(validInput(), testSnapshot()))
}

func TestCheckReservationMissingFields(t *testing.T) {
	cases := []struct {
		field string
		mut   func(*models.ReservationInput)
	}{
		{"utilisateur_id", func(in *models.ReservationInput) { in.UserID = "" }},
		{"filiere_id", func(in *models.ReservationInput) { in.TrackID = "" }},
		{"creneau_id", func(in *models.ReservationInput) { in.SlotID = "" }},
		{"date", func(in *models.ReservationInput) { in.Date = "" }},
		{"titre_module", func(in *models.ReservationInput) { in.ModuleTitle = "" }},
		{"description", func(in *models.ReservationInput) { in.Description = "" }},
	}

	for _, tc := range cases {
		in := validInput()
		tc.mut(&in)
		err := CheckReservation(in, testSnapshot())
		assert.Equal(t, CodeMissingField, ErrCode(err), "field %s", tc.field)
		assert.Contains(t, err.Error(), tc.field)
	}
}

func TestCheckReservationFieldOrderComesFirst(t *testing.T) {
	// With every field empty the first missing field is reported, not a
	// not-found or conflict error.
	err := CheckReservation(models.ReservationInput{}, testSnapshot())
	assert.Equal(t, CodeMissingField, ErrCode(err))
	assert.Contains(t, err.Error(), "utilisateur_id")
}

func TestCheckReservationUnknownReferences(t *testing.T) {
	in := validInput()
	in.UserID = "ghost"
	assert.Equal(t, CodeNotFound, ErrCode(CheckReservation(in, testSnapshot())))

	in = validInput()
	in.TrackID = "ghost"
	assert.Equal(t, CodeNotFound, ErrCode(CheckReservation(in, testSnapshot())))

	in = validInput()
	in.SlotID = "ghost"
	assert.Equal(t, CodeNotFound, ErrCode(CheckReservation(in, testSnapshot())))
}

func TestCheckReservationConflict(t *testing.T) {
	snap := testSnapshot()
	snap.Reservations = []models.Reservation{
		{ID: "r1", UserID: "u2", TrackID: "t1", SlotID: "s1", Date: "2025-03-03"},
	}

	err := CheckReservation(validInput(), snap)
	assert.Equal(t, CodeSlotTaken, ErrCode(err))
	require.NotNil(t, ConflictOf(err))
	assert.Equal(t, "r1", ConflictOf(err).ID)
}

func TestCheckReservationNoConflictAcrossTracks(t *testing.T) {
	snap := testSnapshot()
	snap.Reservations = []models.Reservation{
		{ID: "r1", UserID: "u2", TrackID: "t2", SlotID: "s1", Date: "2025-03-03"},
	}

	assert.NoError(t, CheckReservation(validInput(), snap), "same slot and date on another track is not a conflict")
}

func TestCheckReservationNoConflictAcrossDates(t *testing.T) {
	snap := testSnapshot()
	snap.Reservations = []models.Reservation{
		{ID: "r1", UserID: "u2", TrackID: "t1", SlotID: "s1", Date: "2025-03-10"},
	}

	assert.NoError(t, CheckReservation(validInput(), snap))
}

func TestCheckReservationIsDeterministic(t *testing.T) {
	snap := testSnapshot()
	snap.Reservations = []models.Reservation{
		{ID: "r1", UserID: "u2", TrackID: "t1", SlotID: "s1", Date: "2025-03-03"},
	}

	first := CheckReservation(validInput(), snap)
	second := CheckReservation(validInput(), snap)
	assert.Equal(t, first, second)
}
