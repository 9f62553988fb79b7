package service

import (
	"context"
	"log/slog"

	"github.com/nvenk/divvy/internal/docstore"
	"github.com/nvenk/divvy/internal/models"
)

// UserService handles user registration and lookup.
type UserService struct {
	store docstore.Store
}

// NewUserService creates a UserService with the given storage backend.
func NewUserService(store docstore.Store) *UserService {
	return &UserService{store: store}
}

// RegisterUserRequest is the payload for registering a user.
type RegisterUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	AvatarURL       string `json:"avatar_url"`
	DefaultCurrency string `json:"default_currency"`
	Locale          string `json:"locale"`
}

// Register validates and persists a new user. Email is the user's identity
// and must not already be registered.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (string, error) {
	user := models.Appuser{
		Name:            req.Name,
		Email:           req.Email,
		AvatarURL:       req.AvatarURL,
		DefaultCurrency: req.DefaultCurrency,
		Locale:          req.Locale,
	}
	user.ApplyDefaults()
	if err := models.Validate(user); err != nil {
		return "", err
	}

	existing, err := s.store.GetDocuments(ctx, CollectionAppuser, docstore.Filter{
		"email": docstore.Eq(user.Email),
	})
	if err != nil {
		slog.Error("Register: lookup failed", "email", user.Email, "error", err)
		return "", storeErr(err)
	}
	if len(existing) > 0 {
		return "", models.NewValidationError("email", "is already registered")
	}

	id, err := s.store.CreateDocument(ctx, CollectionAppuser, user)
	if err != nil {
		slog.Error("Register failed", "email", user.Email, "error", err)
		return "", storeErr(err)
	}

	slog.Info("User registered", "user_id", id, "email", user.Email)
	return id, nil
}

// List returns all registered users.
func (s *UserService) List(ctx context.Context) ([]docstore.Document, error) {
	docs, err := s.store.GetDocuments(ctx, CollectionAppuser, nil)
	if err != nil {
		slog.Error("ListUsers failed", "error", err)
		return nil, storeErr(err)
	}
	return docs, nil
}
