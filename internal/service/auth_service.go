package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"emsapi/internal/auth"
	apperrors "emsapi/internal/errors"
	"emsapi/internal/model"
	"emsapi/internal/repository"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      model.Profile
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (uint, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	sessions   *auth.SessionManager
	bcryptCost int
	// dummyHash is compared against when the user does not exist so a
	// missing username costs as much as a wrong password.
	dummyHash []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessions *auth.SessionManager, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	return &authService{
		userRepo:   userRepo,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Register creates a user with a hashed password and returns its ID.
func (s *authService) Register(ctx context.Context, in RegisterInput) (uint, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Password == "" || blank(in.FirstName) || blank(in.LastName) || in.Email == "" {
		return 0, apperrors.Validation("All fields are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return 0, apperrors.Validation("Password must be at most 72 bytes")
	}
	if err != nil {
		return 0, apperrors.Internal("hash password", err)
	}

	user := &model.User{
		Username:  in.Username,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     in.Email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return 0, apperrors.Wrap(apperrors.ErrUserExists, err)
		}
		return 0, apperrors.Internal("create user", err)
	}
	return user.ID, nil
}

// Login verifies credentials and opens a session.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.Validation("Username and password are required")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Internal("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, sess, err := s.sessions.Issue(ctx, user.ID, user.Username)
	if err != nil {
		return nil, apperrors.Internal("open session", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      user.Profile(),
	}, nil
}

// Logout destroys the session behind token. Logging out without a
// session succeeds.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return apperrors.Wrap(apperrors.ErrLogoutFailed, err)
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
