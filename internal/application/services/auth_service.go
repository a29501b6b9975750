package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/observability"
	"github.com/anushahashmi071/CareGroup-sub001/pkg/config"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}

// Claims is the JWT payload issued at login.
type Claims struct {
	Role      entities.Role `json:"role"`
	ProfileID int64         `json:"pid,omitempty"`
	jwt.RegisteredClaims
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *entities.User `json:"user"`
	ProfileID int64          `json:"profile_id,omitempty"`
}

// AuthService verifies credentials and issues bearer tokens
type AuthService struct {
	users    repositories.UserRepository
	doctors  repositories.DoctorRepository
	patients repositories.PatientRepository
	secret   []byte
	issuer   string
	ttl      time.Duration
	now      Clock
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	doctors repositories.DoctorRepository,
	patients repositories.PatientRepository,
	cfg config.AuthConfig,
) *AuthService {
	return &AuthService{
		users:    users,
		doctors:  doctors,
		patients: patients,
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		ttl:      cfg.TokenTTL,
		now:      systemClock,
	}
}

// WithClock replaces the time source
func (s *AuthService) WithClock(c Clock) *AuthService {
	s.now = c
	return s
}

// Login checks login (username or email) and password and returns a signed token
func (s *AuthService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	invalid := apperrors.NewUnauthorizedError("invalid username or password")

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}
	if user.Status != entities.UserStatusActive {
		return nil, apperrors.NewForbiddenError("account is " + string(user.Status))
	}

	profileID, err := s.profileID(ctx, user)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, expires, err := s.Issue(entities.AuthContext{UserID: user.ID, Role: user.Role, ProfileID: profileID})
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return &LoginResult{Token: token, ExpiresAt: expires, User: user, ProfileID: profileID}, nil
}

func (s *AuthService) profileID(ctx context.Context, user *entities.User) (int64, error) {
	switch user.Role {
	case entities.RoleDoctor:
		d, err := s.doctors.GetByUserID(ctx, user.ID)
		if err != nil {
			return 0, err
		}
		return d.ID, nil
	case entities.RolePatient:
		p, err := s.patients.GetByUserID(ctx, user.ID)
		if err != nil {
			return 0, err
		}
		return p.ID, nil
	}
	return 0, nil
}

// Issue signs an HS256 token for auth
func (s *AuthService) Issue(auth entities.AuthContext) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := Claims{
		Role:      auth.Role,
		ProfileID: auth.ProfileID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(auth.UserID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError("failed to sign token", err)
	}
	return signed, expires, nil
}

// Parse verifies a bearer token and returns the caller it identifies
func (s *AuthService) Parse(token string) (entities.AuthContext, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return entities.AuthContext{}, apperrors.NewUnauthorizedError("token has expired")
		}
		return entities.AuthContext{}, apperrors.NewUnauthorizedError("invalid token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return entities.AuthContext{}, apperrors.NewUnauthorizedError("invalid token subject")
	}
	if _, err := entities.ParseRole(string(claims.Role)); err != nil {
		return entities.AuthContext{}, apperrors.NewUnauthorizedError("invalid token role")
	}
	return entities.AuthContext{UserID: userID, Role: claims.Role, ProfileID: claims.ProfileID}, nil
}
