package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/ptr"
)

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"booking", "block", "maintenance", "event", "class"} {
		m, err := ParseMode(valid)
		require.NoError(t, err)
		assert.Equal(t, Mode(valid), m)
	}

	_, err := ParseMode("tournament")
	assert.Error(t, err)
}

func TestMode_Capabilities(t *testing.T) {
	tests := []struct {
		mode      Mode
		priced    bool
		quantized bool
		minMin    int
		maxMin    int
		required  []Field
	}{
		{ModeBooking, true, true, 30, 480, []Field{FieldCustomer}},
		{ModeEvent, true, true, 60, 480, []Field{FieldEventName}},
		{ModeClass, true, true, 60, 240, []Field{FieldEventName}},
		{ModeBlock, false, false, 1, 1440, []Field{FieldReason}},
		{ModeMaintenance, false, false, 1, 1440, []Field{FieldReason}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.priced, tt.mode.Priced())
			assert.Equal(t, tt.quantized, tt.mode.Quantized())
			assert.Equal(t, tt.priced, tt.mode.WithinOperatingHours())
			assert.Equal(t, tt.minMin, tt.mode.MinDurationMinutes())
			assert.Equal(t, tt.maxMin, tt.mode.MaxDurationMinutes())
			assert.Equal(t, tt.required, tt.mode.RequiredFields())
		})
	}
}

func TestReservation_SharesResource(t *testing.T) {
	r := &Reservation{ResourceIDs: []int64{2, 5}}

	assert.True(t, r.SharesResource([]int64{5}))
	assert.True(t, r.SharesResource([]int64{1, 2}))
	assert.False(t, r.SharesResource([]int64{3, 4}))
	assert.False(t, r.SharesResource(nil))

	assert.Equal(t, []int64{2}, r.SharedResources([]int64{1, 2, 3}))
	assert.Empty(t, r.SharedResources([]int64{9}))
}

func TestReservation_DisplayLabel(t *testing.T) {
	t.Run("booking with name", func(t *testing.T) {
		r := &Reservation{Mode: ModeBooking, CustomerName: ptr.Ptr("Dana Aldridge")}
		assert.Equal(t, "Dana Aldridge", r.DisplayLabel())
	})

	t.Run("booking without name falls back to Guest", func(t *testing.T) {
		r := &Reservation{Mode: ModeBooking}
		assert.Equal(t, "Guest", r.DisplayLabel())

		r.CustomerName = ptr.Ptr("")
		assert.Equal(t, "Guest", r.DisplayLabel())
	})

	t.Run("block shows reason", func(t *testing.T) {
		r := &Reservation{Mode: ModeBlock, Reason: ptr.Ptr("league night setup")}
		assert.Equal(t, "league night setup", r.DisplayLabel())
		assert.Equal(t, ConflictAdminBlock, r.ConflictKind())
	})

	t.Run("maintenance without reason", func(t *testing.T) {
		r := &Reservation{Mode: ModeMaintenance}
		assert.Equal(t, "Blocked", r.DisplayLabel())
		assert.Equal(t, ConflictAdminBlock, r.ConflictKind())
	})

	t.Run("booking conflict kind", func(t *testing.T) {
		r := &Reservation{Mode: ModeBooking}
		assert.Equal(t, ConflictReservation, r.ConflictKind())
	})
}

func TestReservation_IsActive(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusConfirmed}).IsActive())
	assert.True(t, (&Reservation{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Reservation{Status: StatusCancelled}).IsActive())
}
