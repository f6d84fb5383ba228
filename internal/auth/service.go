package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restodeals/backend/internal/users"
	pkgauth "github.com/restodeals/backend/pkg/auth"
	"github.com/restodeals/backend/pkg/config"
	"github.com/restodeals/backend/pkg/db"
	"github.com/restodeals/backend/pkg/db/models"
	"github.com/restodeals/backend/pkg/enums"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
	"github.com/restodeals/backend/pkg/logger"
	"github.com/restodeals/backend/pkg/security"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*SessionResponse, error)
	Login(ctx context.Context, input LoginInput) (*SessionResponse, error)
}

type service struct {
	users  users.Repository
	jwtCfg config.JWTConfig
	pwCfg  config.PasswordConfig
	logg   *logger.Logger
	now    func() time.Time
}

func NewService(userRepo users.Repository, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if userRepo == nil {
		return nil, errors.New("auth: user repository is required")
	}
	if logg == nil {
		return nil, errors.New("auth: logger is required")
	}
	return &service{users: userRepo, jwtCfg: jwtCfg, pwCfg: pwCfg, logg: logg, now: time.Now}, nil
}

// Register creates an account and signs the new user straight in. Admin
// accounts are provisioned out of band, so only customer and owner roles
// register through the API.
func (s *service) Register(ctx context.Context, input RegisterInput) (*SessionResponse, error) {
	role, err := enums.ParseRole(input.Role)
	if err != nil || (role != enums.RoleCustomer && role != enums.RoleOwner) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be customer or owner")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"user_id": user.ID, "role": role.String()})
	s.logg.Info(logCtx, "user registered")
	return s.session(user)
}

// Login verifies credentials and mints a fresh access token. Unknown email
// and wrong password return the same error so the endpoint does not confirm
// which part failed.
func (s *service) Login(ctx context.Context, input LoginInput) (*SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, users.ErrUserNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	loginAt := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		// Stale last_login_at is not worth failing the login over.
		s.logg.Error(ctx, "update last login", err)
	}

	logCtx := s.logg.WithField(ctx, "user_id", user.ID)
	s.logg.Info(logCtx, "user logged in")
	return s.session(user)
}

func (s *service) session(user *models.User) (*SessionResponse, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &SessionResponse{Token: token, User: users.ToUserResponse(*user)}, nil
}
