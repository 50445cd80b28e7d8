package user

import (
	"context"
	"errors"

	"github.com/prataprai7/gymbooking-sub000/internal/apperr"
	"github.com/prataprai7/gymbooking-sub000/internal/auth"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, string, error)
	GetByID(ctx context.Context, userID int) (*User, error)
	UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) (*User, error)
	Deactivate(ctx context.Context, userID int) error
	RefreshToken(ctx context.Context, refreshToken string) (string, *User, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", apperr.Internal(err)
	}
	if exists {
		return nil, "", "", apperr.Conflict("email already registered")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", apperr.Internal(err)
	}

	role := req.Role
	if role == "" {
		role = auth.RoleMember
	}

	user, err := s.repo.Create(ctx, req.Name, req.Email, req.Phone, passwordHash, role)
	if err != nil {
		return nil, "", "", apperr.Internal(err)
	}

	accessToken, refreshToken, err := auth.GenerateTokens(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, "", "", apperr.Internal(err)
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", apperr.Authentication("invalid email or password")
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, "", "", apperr.Authentication("invalid email or password")
	}

	accessToken, refreshToken, err := auth.GenerateTokens(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, "", "", apperr.Internal(err)
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, userID int) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) (*User, error) {
	current, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := current.Name
	if req.Name != nil {
		name = *req.Name
	}
	phone := current.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}

	if name == "" {
		return nil, apperr.Validation("name cannot be empty")
	}

	user, err := s.repo.UpdateProfile(ctx, userID, name, phone)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (s *service) Deactivate(ctx context.Context, userID int) error {
	err := s.repo.SetActive(ctx, userID, false)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	newAccessToken, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, apperr.Authentication("invalid or expired refresh token")
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, apperr.NotFound("user not found")
	}

	return newAccessToken, user, nil
}
