package services

import (
	"fmt"
	"strings"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/pkg/auth"
	"github.com/mensah/schoolms/internal/storage"
)

// Account roles a registration can specialize into.
const (
	RoleStaff  = "staff"
	RoleParent = "parent"
)

// UserService defines the interface for user account operations
type UserService interface {
	Register(user *models.User, role string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetUser(id string) (*models.User, error)
	ListUsers() ([]*models.User, error)
	UpdateUser(id string, fields map[string]interface{}) (*models.User, error)
	DeleteUser(id string) error
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	store storage.Store
}

// NewUserService creates a new user service instance
func NewUserService(store storage.Store) UserService {
	return &userServiceImpl{store: store}
}

// Register creates a user account, hashing the plaintext password, and a
// Staff or Parent specialization sharing the user's id when a role is given.
func (s *userServiceImpl) Register(user *models.User, role string) (*models.User, error) {
	if user == nil {
		return nil, apperrors.NewValidationError("user", "required")
	}
	if len(user.Password) < 8 {
		return nil, apperrors.NewValidationError("password", "min=8")
	}

	hashed, err := auth.HashPassword(user.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	user.Password = hashed
	user.Init()

	toSave := []models.Entity{user}
	switch strings.ToLower(role) {
	case RoleStaff:
		toSave = append(toSave, &models.Staff{
			Base:   models.Base{ID: user.ID},
			Role:   "teacher",
			Status: "active",
		})
	case RoleParent:
		toSave = append(toSave, &models.Parent{
			Base: models.Base{ID: user.ID},
		})
	case "":
	default:
		return nil, apperrors.NewValidationError("role", "oneof=staff parent")
	}

	if err := s.store.Save(toSave...); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and stamps the last login date.
func (s *userServiceImpl) Authenticate(email, password string) (*models.User, error) {
	found, ok, err := s.store.Query(models.KindUser).Where("email", email).First()
	if err != nil {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, ok := found.(*models.User)
	if !ok || !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	stamped, err := models.Apply(user, map[string]interface{}{
		"last_login_date": models.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(stamped); err != nil {
		return nil, err
	}
	return stamped.(*models.User), nil
}

// GetUser retrieves a user by id
func (s *userServiceImpl) GetUser(id string) (*models.User, error) {
	found, ok := s.store.GetByID(models.KindUser, id)
	if !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindUser), id)
	}
	return found.(*models.User), nil
}

// ListUsers retrieves all users
func (s *userServiceImpl) ListUsers() ([]*models.User, error) {
	entities, err := s.store.All(models.KindUser)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}

	users := make([]*models.User, 0, len(entities))
	for _, e := range entities {
		users = append(users, e.(*models.User))
	}
	return users, nil
}

// UpdateUser applies the given fields through the single mutation path and
// persists the result.
func (s *userServiceImpl) UpdateUser(id string, fields map[string]interface{}) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if raw, ok := fields["password"].(string); ok {
		if len(raw) < 8 {
			return nil, apperrors.NewValidationError("password", "min=8")
		}
		hashed, err := auth.HashPassword(raw)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		fields["password"] = hashed
	}

	updated, err := models.Apply(user, fields)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(updated); err != nil {
		return nil, err
	}
	return updated.(*models.User), nil
}

// DeleteUser removes the account along with its Staff or Parent
// specialization and any feedback it left.
func (s *userServiceImpl) DeleteUser(id string) error {
	if _, ok := s.store.GetByID(models.KindUser, id); !ok {
		return apperrors.NewNotFoundError(string(models.KindUser), id)
	}

	if _, ok := s.store.GetByID(models.KindStaff, id); ok {
		if err := s.store.DeleteByID(models.KindStaff, id); err != nil {
			return err
		}
	}
	if _, ok := s.store.GetByID(models.KindParent, id); ok {
		if err := s.store.DeleteByID(models.KindParent, id); err != nil {
			return err
		}
	}

	feedbacks, err := s.store.Query(models.KindFeedback).Where("user_id", id).All()
	if err != nil {
		return err
	}
	for _, f := range feedbacks {
		if err := s.store.Delete(f); err != nil {
			return err
		}
	}

	if err := s.store.DeleteByID(models.KindUser, id); err != nil {
		return err
	}
	return s.store.Save()
}
