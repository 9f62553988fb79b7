package service

import (
	"context"
	"log/slog"

	"github.com/nvenk/divvy/internal/docstore"
	"github.com/nvenk/divvy/internal/models"
	"github.com/nvenk/divvy/internal/split"
)

// GroupService handles group creation and lookup.
type GroupService struct {
	store docstore.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store docstore.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroupRequest is the payload for creating a group.
type CreateGroupRequest struct {
	Name            string   `json:"name"`
	CreatedBy       string   `json:"created_by"`
	Members         []string `json:"members"`
	DefaultCurrency string   `json:"default_currency"`
	ImageURL        string   `json:"image_url"`
}

// Create validates and persists a new group. The member list is normalized
// first so the creator is always a member and no email appears twice.
func (s *GroupService) Create(ctx context.Context, req CreateGroupRequest) (string, error) {
	group := models.Group{
		Name:            req.Name,
		CreatedBy:       req.CreatedBy,
		Members:         split.NormalizeMembers(req.CreatedBy, req.Members),
		DefaultCurrency: req.DefaultCurrency,
		ImageURL:        req.ImageURL,
	}
	group.ApplyDefaults()
	if err := models.Validate(group); err != nil {
		return "", err
	}

	id, err := s.store.CreateDocument(ctx, CollectionGroup, group)
	if err != nil {
		slog.Error("CreateGroup failed", "name", group.Name, "error", err)
		return "", storeErr(err)
	}

	slog.Info("Group created", "group_id", id, "members_count", len(group.Members))
	return id, nil
}

// List returns all groups, optionally restricted to those a member belongs to.
func (s *GroupService) List(ctx context.Context, member string) ([]docstore.Document, error) {
	var filter docstore.Filter
	if member != "" {
		filter = docstore.Filter{"members": docstore.Contains(member)}
	}

	docs, err := s.store.GetDocuments(ctx, CollectionGroup, filter)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, storeErr(err)
	}
	return docs, nil
}
