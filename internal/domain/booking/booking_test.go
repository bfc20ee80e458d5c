package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staynest/service-rental/internal/domain"
)

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	bk, err := NewBooking(
		uuid.New(), uuid.New(),
		NewStay(date(2026, 6, 10), date(2026, 6, 15)),
		2,
		50000,
		"late arrival",
	)
	require.NoError(t, err)
	return bk
}

func TestNewBooking(t *testing.T) {
	bk := newTestBooking(t)

	assert.Equal(t, StatusPending, bk.Status())
	assert.Equal(t, int64(1), bk.Version())
	assert.Equal(t, 5, bk.Stay().Nights())
	assert.Equal(t, int64(50000), bk.TotalPriceCents())
}

func TestNewBooking_Validation(t *testing.T) {
	stay := NewStay(date(2026, 6, 10), date(2026, 6, 15))

	_, err := NewBooking(uuid.Nil, uuid.New(), stay, 2, 50000, "")
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.Nil, stay, 2, 50000, "")
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.New(), stay, 0, 50000, "")
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.New(), stay, 2, 0, "")
	assert.Error(t, err)

	reversed := NewStay(date(2026, 6, 15), date(2026, 6, 10))
	_, err = NewBooking(uuid.New(), uuid.New(), reversed, 2, 50000, "")
	assert.Error(t, err)
}

func TestBooking_ApproveAndReject(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.Approve())
	assert.Equal(t, StatusApproved, bk.Status())

	// A decided booking cannot be decided again.
	err := bk.Reject()
	require.Error(t, err)
	var stateErr *domain.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)

	bk2 := newTestBooking(t)
	require.NoError(t, bk2.Reject())
	assert.Equal(t, StatusRejected, bk2.Status())
	assert.Error(t, bk2.Approve())
}

func TestBooking_CancelPending(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.Cancel(date(2026, 6, 1)))
	assert.Equal(t, StatusCancelled, bk.Status())

	assert.Error(t, bk.Cancel(date(2026, 6, 1)))
}

func TestBooking_CancelApprovedBeforeStart(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.Approve())

	require.NoError(t, bk.Cancel(date(2026, 6, 9)))
	assert.Equal(t, StatusCancelled, bk.Status())
}

func TestBooking_CancelApprovedAfterStartRefused(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.Approve())

	// The stay starts on the 10th; from that day on the cancellation
	// window is closed.
	err := bk.Cancel(date(2026, 6, 10))
	require.Error(t, err)
	var stateErr *domain.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, StatusApproved, bk.Status())
}

func TestBooking_IncrementVersion(t *testing.T) {
	bk := newTestBooking(t)
	bk.IncrementVersion()
	assert.Equal(t, int64(2), bk.Version())
}
