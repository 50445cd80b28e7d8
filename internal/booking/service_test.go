package booking

import (
	"context"
	"testing"
	"time"

	"github.com/prataprai7/gymbooking-sub000/internal/apperr"
	"github.com/prataprai7/gymbooking-sub000/internal/auth"
	"github.com/prataprai7/gymbooking-sub000/internal/gym"
	"github.com/prataprai7/gymbooking-sub000/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories
type MockBookingRepo struct{ mock.Mock }
type MockGymRepo struct{ mock.Mock }
type MockUserRepo struct{ mock.Mock }

func (m *MockBookingRepo) CreateBooking(ctx context.Context, b *Booking) (*BookingWithDetails, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingWithDetails), args.Error(1)
}

func (m *MockBookingRepo) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) GetBookingWithGymOwner(ctx context.Context, id int) (*Booking, int, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*Booking), args.Int(1), args.Error(2)
}

func (m *MockBookingRepo) MarkCancelled(ctx context.Context, id, cancelledBy int, reason string) (*Booking, error) {
	args := m.Called(ctx, id, cancelledBy, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int, status, paymentStatus *string) (*Booking, error) {
	args := m.Called(ctx, id, status, paymentStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) GetUserBookings(ctx context.Context, userID, page, limit int) ([]Booking, int, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Booking), args.Int(1), args.Error(2)
}

func (m *MockBookingRepo) GetBookingsByGym(ctx context.Context, gymID, page, limit int) ([]BookingWithDetails, int, error) {
	args := m.Called(ctx, gymID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]BookingWithDetails), args.Int(1), args.Error(2)
}

func (m *MockGymRepo) CreateGym(ctx context.Context, ownerID int, req gym.CreateGymRequest) (*gym.Gym, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gym.Gym), args.Error(1)
}

func (m *MockGymRepo) ListGyms(ctx context.Context, filter gym.ListFilter) ([]gym.Gym, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]gym.Gym), args.Int(1), args.Error(2)
}

func (m *MockGymRepo) GetGymByID(ctx context.Context, id int) (*gym.Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gym.Gym), args.Error(1)
}

func (m *MockGymRepo) UpdateGym(ctx context.Context, g *gym.Gym) (*gym.Gym, error) {
	args := m.Called(ctx, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gym.Gym), args.Error(1)
}

func (m *MockGymRepo) SetVerified(ctx context.Context, id int, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

func (m *MockGymRepo) SetActive(ctx context.Context, id int, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockUserRepo) Create(ctx context.Context, name, email, phone, passwordHash, role string) (*user.User, error) {
	args := m.Called(ctx, name, email, phone, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, id int, name, phone string) (*user.User, error) {
	args := m.Called(ctx, id, name, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) SetActive(ctx context.Context, id int, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func newTestService(br *MockBookingRepo, gr *MockGymRepo, ur *MockUserRepo, now time.Time) *service {
	return &service{
		repo:     br,
		gymRepo:  gr,
		userRepo: ur,
		now:      func() time.Time { return now },
	}
}

func activeGym() *gym.Gym {
	return &gym.Gym{
		ID:                1,
		OwnerID:           10,
		Name:              "Iron Temple",
		Location:          "Kathmandu",
		MonthlyPriceCents: 500000,
		IsActive:          true,
	}
}

func TestService_CreateBooking(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		req        CreateBookingRequest
		setupMocks func(*MockBookingRepo, *MockGymRepo)
		wantKind   apperr.Kind
		wantErr    bool
	}{
		{
			name: "successful booking",
			req: CreateBookingRequest{
				GymID:     1,
				StartDate: "2025-01-10T00:00:00Z",
				EndDate:   "2025-01-15T00:00:00Z",
			},
			setupMocks: func(br *MockBookingRepo, gr *MockGymRepo) {
				gr.On("GetGymByID", mock.Anything, 1).Return(activeGym(), nil)
				br.On("CreateBooking", mock.Anything, mock.Anything).Return(&BookingWithDetails{
					Booking: Booking{
						ID:         1,
						UserID:     5,
						GymID:      1,
						Status:     StatusPending,
						PriceCents: 500000,
					},
					GymName:   "Iron Temple",
					UserEmail: "member@example.com",
					UserName:  "Member",
				}, nil)
			},
		},
		{
			name: "invalid start date",
			req: CreateBookingRequest{
				GymID:     1,
				StartDate: "not-a-date",
				EndDate:   "2025-01-15T00:00:00Z",
			},
			setupMocks: func(br *MockBookingRepo, gr *MockGymRepo) {},
			wantErr:    true,
			wantKind:   apperr.KindValidation,
		},
		{
			name: "end before start",
			req: CreateBookingRequest{
				GymID:     1,
				StartDate: "2025-01-15T00:00:00Z",
				EndDate:   "2025-01-10T00:00:00Z",
			},
			setupMocks: func(br *MockBookingRepo, gr *MockGymRepo) {},
			wantErr:    true,
			wantKind:   apperr.KindValidation,
		},
		{
			name: "gym not found",
			req: CreateBookingRequest{
				GymID:     99,
				StartDate: "2025-01-10T00:00:00Z",
				EndDate:   "2025-01-15T00:00:00Z",
			},
			setupMocks: func(br *MockBookingRepo, gr *MockGymRepo) {
				gr.On("GetGymByID", mock.Anything, 99).Return(nil, gym.ErrGymNotFound)
			},
			wantErr:  true,
			wantKind: apperr.KindNotFound,
		},
		{
			name: "inactive gym",
			req: CreateBookingRequest{
				GymID:     1,
				StartDate: "2025-01-10T00:00:00Z",
				EndDate:   "2025-01-15T00:00:00Z",
			},
			setupMocks: func(br *MockBookingRepo, gr *MockGymRepo) {
				g := activeGym()
				g.IsActive = false
				gr.On("GetGymByID", mock.Anything, 1).Return(g, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name: "overlapping booking rejected",
			req: CreateBookingRequest{
				GymID:     1,
				StartDate: "2025-01-14T00:00:00Z",
				EndDate:   "2025-01-20T00:00:00Z",
			},
			setupMocks: func(br *MockBookingRepo, gr *MockGymRepo) {
				gr.On("GetGymByID", mock.Anything, 1).Return(activeGym(), nil)
				br.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, ErrOverlap)
			},
			wantErr:  true,
			wantKind: apperr.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := new(MockBookingRepo)
			gr := new(MockGymRepo)
			ur := new(MockUserRepo)
			tt.setupMocks(br, gr)

			svc := newTestService(br, gr, ur, now)

			created, err := svc.CreateBooking(context.Background(), 5, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, apperr.IsKind(err, tt.wantKind), "kind = %v", apperr.KindOf(err))
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, created)
				assert.Equal(t, StatusPending, created.Status)
				assert.Equal(t, int64(500000), created.PriceCents)
			}
			br.AssertExpectations(t)
			gr.AssertExpectations(t)
		})
	}
}

func TestService_CreateBooking_PriceFromGym(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	br := new(MockBookingRepo)
	gr := new(MockGymRepo)
	ur := new(MockUserRepo)

	gr.On("GetGymByID", mock.Anything, 1).Return(activeGym(), nil)
	br.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b *Booking) bool {
		return b.PriceCents == 500000
	})).Return(&BookingWithDetails{Booking: Booking{ID: 1, Status: StatusPending, PriceCents: 500000}}, nil)

	svc := newTestService(br, gr, ur, now)

	_, err := svc.CreateBooking(context.Background(), 5, CreateBookingRequest{
		GymID:     1,
		StartDate: "2025-01-16T00:00:00Z",
		EndDate:   "2025-01-20T00:00:00Z",
	})

	assert.NoError(t, err)
	br.AssertExpectations(t)
}

func TestService_CancelBooking(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		userID     int
		setupMocks func(*MockBookingRepo, *MockUserRepo)
		wantKind   apperr.Kind
		wantErr    bool
	}{
		{
			name:   "cancel well before start",
			userID: 5,
			setupMocks: func(br *MockBookingRepo, ur *MockUserRepo) {
				br.On("GetBookingByID", mock.Anything, 1).Return(&Booking{
					ID:        1,
					UserID:    5,
					Status:    StatusConfirmed,
					StartDate: now.Add(72 * time.Hour),
				}, nil)
				br.On("MarkCancelled", mock.Anything, 1, 5, "travel").Return(&Booking{
					ID:     1,
					UserID: 5,
					Status: StatusCancelled,
				}, nil)
			},
		},
		{
			name:   "cancel exactly at window boundary",
			userID: 5,
			setupMocks: func(br *MockBookingRepo, ur *MockUserRepo) {
				br.On("GetBookingByID", mock.Anything, 1).Return(&Booking{
					ID:        1,
					UserID:    5,
					Status:    StatusConfirmed,
					StartDate: now.Add(CancellationWindow),
				}, nil)
				br.On("MarkCancelled", mock.Anything, 1, 5, "travel").Return(&Booking{
					ID:     1,
					UserID: 5,
					Status: StatusCancelled,
				}, nil)
			},
		},
		{
			name:   "cancel inside window rejected",
			userID: 5,
			setupMocks: func(br *MockBookingRepo, ur *MockUserRepo) {
				br.On("GetBookingByID", mock.Anything, 1).Return(&Booking{
					ID:        1,
					UserID:    5,
					Status:    StatusConfirmed,
					StartDate: now.Add(23 * time.Hour),
				}, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindPolicyViolation,
		},
		{
			name:   "already cancelled",
			userID: 5,
			setupMocks: func(br *MockBookingRepo, ur *MockUserRepo) {
				br.On("GetBookingByID", mock.Anything, 1).Return(&Booking{
					ID:        1,
					UserID:    5,
					Status:    StatusCancelled,
					StartDate: now.Add(72 * time.Hour),
				}, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindInvalidTransition,
		},
		{
			name:   "completed booking",
			userID: 5,
			setupMocks: func(br *MockBookingRepo, ur *MockUserRepo) {
				br.On("GetBookingByID", mock.Anything, 1).Return(&Booking{
					ID:        1,
					UserID:    5,
					Status:    StatusCompleted,
					StartDate: now.Add(72 * time.Hour),
				}, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindInvalidTransition,
		},
		{
			name:   "someone else's booking looks like not found",
			userID: 6,
			setupMocks: func(br *MockBookingRepo, ur *MockUserRepo) {
				br.On("GetBookingByID", mock.Anything, 1).Return(&Booking{
					ID:        1,
					UserID:    5,
					Status:    StatusConfirmed,
					StartDate: now.Add(72 * time.Hour),
				}, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindNotFound,
		},
		{
			name:   "missing booking",
			userID: 5,
			setupMocks: func(br *MockBookingRepo, ur *MockUserRepo) {
				br.On("GetBookingByID", mock.Anything, 1).Return(nil, ErrBookingNotFound)
			},
			wantErr:  true,
			wantKind: apperr.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := new(MockBookingRepo)
			gr := new(MockGymRepo)
			ur := new(MockUserRepo)
			tt.setupMocks(br, ur)

			svc := newTestService(br, gr, ur, now)

			cancelled, err := svc.CancelBooking(context.Background(), 1, tt.userID, "travel")

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, apperr.IsKind(err, tt.wantKind), "kind = %v", apperr.KindOf(err))
				assert.Nil(t, cancelled)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, StatusCancelled, cancelled.Status)
			}
			br.AssertExpectations(t)
		})
	}
}

func TestService_UpdateBookingStatus(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	confirmed := StatusConfirmed
	completed := StatusCompleted

	tests := []struct {
		name       string
		actorID    int
		actorRole  string
		req        UpdateStatusRequest
		setupMocks func(*MockBookingRepo)
		wantKind   apperr.Kind
		wantErr    bool
	}{
		{
			name:      "gym owner confirms pending booking",
			actorID:   10,
			actorRole: auth.RoleGymOwner,
			req:       UpdateStatusRequest{Status: &confirmed},
			setupMocks: func(br *MockBookingRepo) {
				br.On("GetBookingWithGymOwner", mock.Anything, 1).Return(&Booking{
					ID: 1, UserID: 5, Status: StatusPending,
				}, 10, nil)
				br.On("UpdateStatus", mock.Anything, 1, &confirmed, (*string)(nil)).Return(&Booking{
					ID: 1, UserID: 5, Status: StatusConfirmed,
				}, nil)
			},
		},
		{
			name:      "admin can update any booking",
			actorID:   99,
			actorRole: auth.RoleAdmin,
			req:       UpdateStatusRequest{Status: &completed},
			setupMocks: func(br *MockBookingRepo) {
				br.On("GetBookingWithGymOwner", mock.Anything, 1).Return(&Booking{
					ID: 1, UserID: 5, Status: StatusConfirmed,
				}, 10, nil)
				br.On("UpdateStatus", mock.Anything, 1, &completed, (*string)(nil)).Return(&Booking{
					ID: 1, UserID: 5, Status: StatusCompleted,
				}, nil)
			},
		},
		{
			name:      "unrelated owner is forbidden",
			actorID:   11,
			actorRole: auth.RoleGymOwner,
			req:       UpdateStatusRequest{Status: &confirmed},
			setupMocks: func(br *MockBookingRepo) {
				br.On("GetBookingWithGymOwner", mock.Anything, 1).Return(&Booking{
					ID: 1, UserID: 5, Status: StatusPending,
				}, 10, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindAuthorization,
		},
		{
			name:      "cancelled booking cannot be confirmed",
			actorID:   10,
			actorRole: auth.RoleGymOwner,
			req:       UpdateStatusRequest{Status: &confirmed},
			setupMocks: func(br *MockBookingRepo) {
				br.On("GetBookingWithGymOwner", mock.Anything, 1).Return(&Booking{
					ID: 1, UserID: 5, Status: StatusCancelled,
				}, 10, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindInvalidTransition,
		},
		{
			name:      "empty update rejected",
			actorID:   10,
			actorRole: auth.RoleGymOwner,
			req:       UpdateStatusRequest{},
			setupMocks: func(br *MockBookingRepo) {
				br.On("GetBookingWithGymOwner", mock.Anything, 1).Return(&Booking{
					ID: 1, UserID: 5, Status: StatusPending,
				}, 10, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := new(MockBookingRepo)
			gr := new(MockGymRepo)
			ur := new(MockUserRepo)
			tt.setupMocks(br)

			svc := newTestService(br, gr, ur, now)

			updated, err := svc.UpdateBookingStatus(context.Background(), 1, tt.actorID, tt.actorRole, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, apperr.IsKind(err, tt.wantKind), "kind = %v", apperr.KindOf(err))
				assert.Nil(t, updated)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, updated)
			}
			br.AssertExpectations(t)
		})
	}
}

func TestService_GetBooking_Access(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	br := new(MockBookingRepo)
	gr := new(MockGymRepo)
	ur := new(MockUserRepo)

	br.On("GetBookingWithGymOwner", mock.Anything, 1).Return(&Booking{
		ID: 1, UserID: 5, Status: StatusConfirmed,
	}, 10, nil)

	svc := newTestService(br, gr, ur, now)

	// Booking owner, gym owner and admin can read it.
	for _, tc := range []struct {
		actorID int
		role    string
	}{
		{5, auth.RoleMember},
		{10, auth.RoleGymOwner},
		{99, auth.RoleAdmin},
	} {
		b, err := svc.GetBooking(context.Background(), 1, tc.actorID, tc.role)
		assert.NoError(t, err)
		assert.Equal(t, 1, b.ID)
	}

	// Anyone else gets not found, not forbidden.
	_, err := svc.GetBooking(context.Background(), 1, 42, auth.RoleMember)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestService_GetBookingsByGym(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	br := new(MockBookingRepo)
	gr := new(MockGymRepo)
	ur := new(MockUserRepo)

	gr.On("GetGymByID", mock.Anything, 1).Return(activeGym(), nil)
	br.On("GetBookingsByGym", mock.Anything, 1, 1, 10).Return([]BookingWithDetails{
		{Booking: Booking{ID: 1, GymID: 1}},
	}, 1, nil)

	svc := newTestService(br, gr, ur, now)

	bookings, total, err := svc.GetBookingsByGym(context.Background(), 1, 10, auth.RoleGymOwner, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, bookings, 1)

	_, _, err = svc.GetBookingsByGym(context.Background(), 1, 42, auth.RoleMember, 1, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
}

func TestBooking_IsStartingSoon(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	b := &Booking{StartDate: now.Add(3 * 24 * time.Hour)}
	assert.True(t, b.IsStartingSoon(now))

	b = &Booking{StartDate: now.Add(8 * 24 * time.Hour)}
	assert.False(t, b.IsStartingSoon(now))

	b = &Booking{StartDate: now.Add(-time.Hour)}
	assert.False(t, b.IsStartingSoon(now))
}

func TestService_GetUserBookings_FlagsStartingSoon(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	br := new(MockBookingRepo)
	br.On("GetUserBookings", mock.Anything, 5, 1, 10).Return([]Booking{
		{ID: 1, UserID: 5, Status: StatusConfirmed, StartDate: now.Add(3 * 24 * time.Hour)},
		{ID: 2, UserID: 5, Status: StatusPending, StartDate: now.AddDate(0, 2, 0)},
	}, 2, nil)

	svc := newTestService(br, new(MockGymRepo), new(MockUserRepo), now)

	bookings, total, err := svc.GetUserBookings(context.Background(), 5, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.True(t, bookings[0].StartsSoon)
	assert.False(t, bookings[1].StartsSoon)
}
