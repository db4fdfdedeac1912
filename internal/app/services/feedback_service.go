package services

import (
	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage"
)

// FeedbackService defines the interface for feedback operations
type FeedbackService interface {
	Create(content, userID string) (*models.Feedback, error)
	List() ([]*models.Feedback, error)
	ListForUser(userID string) ([]*models.Feedback, error)
	Delete(id string) error
}

// feedbackServiceImpl implements the FeedbackService interface
type feedbackServiceImpl struct {
	store storage.Store
}

// NewFeedbackService creates a new feedback service instance
func NewFeedbackService(store storage.Store) FeedbackService {
	return &feedbackServiceImpl{store: store}
}

// Create records a feedback message for a user
func (s *feedbackServiceImpl) Create(content, userID string) (*models.Feedback, error) {
	if _, ok := s.store.GetByID(models.KindUser, userID); !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindUser), userID)
	}

	feedback := &models.Feedback{Content: content, UserID: userID}
	if err := s.store.Save(feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// List returns every feedback message
func (s *feedbackServiceImpl) List() ([]*models.Feedback, error) {
	entities, err := s.store.All(models.KindFeedback)
	if err != nil {
		return nil, err
	}
	return asFeedback(entities), nil
}

// ListForUser returns the feedback messages left by one user
func (s *feedbackServiceImpl) ListForUser(userID string) ([]*models.Feedback, error) {
	if _, ok := s.store.GetByID(models.KindUser, userID); !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindUser), userID)
	}

	entities, err := s.store.Query(models.KindFeedback).
		Where("user_id", userID).
		All()
	if err != nil {
		return nil, err
	}
	return asFeedback(entities), nil
}

// Delete removes a feedback message
func (s *feedbackServiceImpl) Delete(id string) error {
	if err := s.store.DeleteByID(models.KindFeedback, id); err != nil {
		return err
	}
	return s.store.Save()
}

func asFeedback(entities []models.Entity) []*models.Feedback {
	out := make([]*models.Feedback, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*models.Feedback))
	}
	return out
}
