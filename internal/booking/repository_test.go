package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func bookingRows(id int, status string, start, end time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "gym_id", "membership_id", "start_date", "end_date", "price_cents",
		"status", "payment_status", "cancelled_at", "cancelled_by", "cancellation_reason",
		"created_at", "updated_at",
	}).AddRow(id, 5, 1, nil, start, end, int64(500000), status, "unpaid", nil, nil, nil, now, now)
}

func TestRepository_GetBookingByID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)

	mock.ExpectQuery("FROM bookings WHERE id = \\$1").
		WithArgs(10).
		WillReturnRows(bookingRows(10, "pending", start, end))

	got, err := repo.GetBookingByID(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, 10, got.ID)
	require.Equal(t, "pending", got.Status)

	mock.ExpectQuery("FROM bookings WHERE id = \\$1").
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetBookingByID(context.Background(), 11)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_CreateBooking_ChecksOverlapInTx(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	detailRows := sqlmock.NewRows([]string{
		"id", "user_id", "gym_id", "membership_id", "start_date", "end_date", "price_cents",
		"status", "payment_status", "cancelled_at", "cancelled_by", "cancellation_reason",
		"created_at", "updated_at", "gym_name", "gym_location", "user_name", "user_email",
	}).AddRow(3, 5, 1, nil, start, end, int64(500000), "pending", "unpaid", nil, nil, nil,
		now, now, "Iron Temple", "Kathmandu", "Member", "member@example.com")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(5, 1, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(5, 1, nil, start, end, int64(500000)).
		WillReturnRows(detailRows)
	mock.ExpectCommit()

	created, err := repo.CreateBooking(context.Background(), &Booking{
		UserID: 5, GymID: 1, StartDate: start, EndDate: end, PriceCents: 500000,
	})
	require.NoError(t, err)
	require.Equal(t, "pending", created.Status)
	require.Equal(t, "Iron Temple", created.GymName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateBooking_Overlap(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	// A Jan 14-20 request clashing with an existing Jan 10-15 booking
	// rolls back without inserting.
	start := time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(5, 1, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.CreateBooking(context.Background(), &Booking{
		UserID: 5, GymID: 1, StartDate: start, EndDate: end, PriceCents: 500000,
	})
	require.ErrorIs(t, err, ErrOverlap)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkCancelled(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	mock.ExpectQuery("UPDATE bookings").
		WithArgs(5, 5, "travel").
		WillReturnRows(bookingRows(5, "cancelled", start, end))

	b, err := repo.MarkCancelled(context.Background(), 5, 5, "travel")
	require.NoError(t, err)
	require.Equal(t, "cancelled", b.Status)

	// Already terminal: the WHERE clause matches nothing.
	mock.ExpectQuery("UPDATE bookings").
		WithArgs(6, 5, "travel").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.MarkCancelled(context.Background(), 6, 5, "travel")
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetUserBookings_Paging(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE user_id = $1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	mock.ExpectQuery("LIMIT 10 OFFSET 10").
		WithArgs(5).
		WillReturnRows(bookingRows(12, "confirmed", start, end))

	bookings, total, err := repo.GetUserBookings(context.Background(), 5, 2, 10)
	require.NoError(t, err)
	require.Equal(t, 25, total)
	require.Len(t, bookings, 1)
	require.Equal(t, 12, bookings[0].ID)
}
