package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// UserQuery narrows the account list.
type UserQuery struct {
	Search string
	Role   string
	Status string
	Limit  int
	Offset int
}

// UserService manages login accounts. Every operation except ChangePassword
// is admin only.
type UserService struct {
	repo repositories.UserRepository
	bus  providers.EventBus
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository, bus providers.EventBus) *UserService {
	return &UserService{repo: repo, bus: bus}
}

// List returns accounts matching q
func (s *UserService) List(ctx context.Context, auth entities.AuthContext, q UserQuery) ([]*entities.User, int, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, 0, err
	}
	filter, err := query.BuildUserFilter(q.Role, q.Status)
	if err != nil {
		return nil, 0, err
	}
	where := query.And(query.BuildSearchFilter(q.Search, query.UserSearchFields...), filter)

	users, err := s.repo.List(ctx, repositories.ListQuery{
		Where:  where,
		Order:  query.UserOrder(),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, where)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Get returns one account. Users may read their own.
func (s *UserService) Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.User, error) {
	if !auth.IsAdmin() && auth.UserID != id {
		return nil, apperrors.NewForbiddenError("insufficient permissions")
	}
	return s.repo.GetByID(ctx, id)
}

// Create adds an account. Doctor and patient accounts are normally created
// with their profile through the doctor and patient services.
func (s *UserService) Create(ctx context.Context, auth entities.AuthContext, input entities.UserInput) (*entities.User, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, apperrors.NewValidationError("password is required")
	}
	user := &entities.User{Status: entities.UserStatusActive}
	if err := applyUserInput(user, input); err != nil {
		return nil, err
	}
	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventUser, entities.ChangeActionCreated, user.ID))
	return user, nil
}

// Update edits an account. A non-empty password is changed too. Admins may
// not demote or deactivate themselves.
func (s *UserService) Update(ctx context.Context, auth entities.AuthContext, id int64, input entities.UserInput) (*entities.User, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyUserInput(user, input); err != nil {
		return nil, err
	}
	if id == auth.UserID && (user.Role != entities.RoleAdmin || user.Status != entities.UserStatusActive) {
		return nil, apperrors.NewValidationError("you cannot demote or deactivate your own account")
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	if input.Password != "" {
		hash, err := HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventUser, entities.ChangeActionUpdated, id))
	return user, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, auth entities.AuthContext, current, next string) error {
	if len(next) < 8 || len(next) > 72 {
		return apperrors.NewValidationError("new password must be between 8 and 72 characters")
	}
	user, err := s.repo.GetByID(ctx, auth.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return apperrors.NewValidationError("current password is incorrect")
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, auth.UserID, hash)
}

// Delete removes an account no profile links to. Admins cannot delete
// themselves.
func (s *UserService) Delete(ctx context.Context, auth entities.AuthContext, id int64) error {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return err
	}
	if id == auth.UserID {
		return apperrors.NewValidationError("you cannot delete your own account")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventUser, entities.ChangeActionDeleted, id))
	return nil
}

func applyUserInput(u *entities.User, in entities.UserInput) error {
	role, err := entities.ParseRole(in.Role)
	if err != nil {
		return err
	}
	if in.Status != "" {
		status, err := entities.ParseUserStatus(in.Status)
		if err != nil {
			return err
		}
		u.Status = status
	}
	u.Role = role
	u.Username = strings.TrimSpace(in.Username)
	u.Email = strings.TrimSpace(in.Email)
	return nil
}
