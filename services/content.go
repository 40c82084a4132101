package services

import (
	"context"
	"fmt"
	"time"

	"github.com/knowtasks/knowtasks/core"
	"github.com/knowtasks/knowtasks/crypto"
	"github.com/knowtasks/knowtasks/logging"
)

// ContentService manages notes, formulas, flashcards, and past-year
// question papers. File payloads are transferred directly between the
// client and object storage via presigned URLs.
type ContentService struct {
	store   core.ContentStore
	uploads core.UploadStore // nil when object storage is not configured
	log     logging.Logger
}

func NewContentService(store core.ContentStore, uploads core.UploadStore, log logging.Logger) *ContentService {
	return &ContentService{store: store, uploads: uploads, log: log}
}

// Create stores a new content item owned by the caller. When the input
// requests a file payload and object storage is configured, the result
// carries a presigned PUT URL the client uploads the file to.
func (s *ContentService) Create(ctx context.Context, owner *core.Claims, input core.CreateContentInput) (*core.CreateContentResult, error) {
	if !core.ValidKind(input.Kind) {
		return nil, core.ErrInvalidKind
	}
	if input.Title == "" {
		return nil, core.ErrTitleRequired
	}
	if input.Subject == "" {
		return nil, core.ErrSubjectRequired
	}

	id, err := crypto.NewContentID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate content id: %w", err)
	}

	now := time.Now()
	item := &core.ContentItem{
		ID:        id,
		OwnerID:   owner.PrincipalID,
		Kind:      input.Kind,
		Title:     input.Title,
		Subject:   input.Subject,
		Category:  input.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var uploadURL string
	if input.WithFile && s.uploads != nil {
		key, url, err := s.uploads.PresignPut(ctx, owner.PrincipalID)
		if err != nil {
			return nil, fmt.Errorf("failed to presign upload: %w", err)
		}
		item.FileKey = &key
		uploadURL = url
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "content item created", "id", item.ID, "kind", item.Kind, "owner", item.OwnerID)

	return &core.CreateContentResult{Item: item, UploadURL: uploadURL}, nil
}

// Get returns a single item by id.
func (s *ContentService) Get(ctx context.Context, id string) (*core.ContentItem, error) {
	return s.store.GetItem(ctx, id)
}

// DownloadURL presigns a GET for an item's file payload. Items without a
// file yield an empty URL.
func (s *ContentService) DownloadURL(ctx context.Context, item *core.ContentItem) (string, error) {
	if item.FileKey == nil || s.uploads == nil {
		return "", nil
	}
	return s.uploads.PresignGet(ctx, *item.FileKey)
}

// List returns items matching the filter, newest first.
func (s *ContentService) List(ctx context.Context, filter core.ContentFilter) ([]*core.ContentItem, error) {
	if filter.Kind != "" && !core.ValidKind(filter.Kind) {
		return nil, core.ErrInvalidKind
	}
	return s.store.ListItems(ctx, filter)
}

// Update replaces an item's metadata. Only the owner or a superadmin may
// update; the file reference and owner are immutable.
func (s *ContentService) Update(ctx context.Context, actor *core.Claims, id string, input core.UpdateContentInput) (*core.ContentItem, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, item); err != nil {
		return nil, err
	}

	if input.Kind != nil {
		if !core.ValidKind(*input.Kind) {
			return nil, core.ErrInvalidKind
		}
		item.Kind = *input.Kind
	}
	if input.Title != nil {
		if *input.Title == "" {
			return nil, core.ErrTitleRequired
		}
		item.Title = *input.Title
	}
	if input.Subject != nil {
		if *input.Subject == "" {
			return nil, core.ErrSubjectRequired
		}
		item.Subject = *input.Subject
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	item.UpdatedAt = time.Now()

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item. Only the owner or a superadmin may delete.
func (s *ContentService) Delete(ctx context.Context, actor *core.Claims, id string) error {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, item); err != nil {
		return err
	}

	if err := s.store.DeleteItem(ctx, id); err != nil {
		return err
	}

	s.log.Info(ctx, "content item deleted", "id", id, "by", actor.PrincipalID)
	return nil
}

func (s *ContentService) authorize(actor *core.Claims, item *core.ContentItem) error {
	if actor.Role == core.RoleSuperadmin || actor.PrincipalID == item.OwnerID {
		return nil
	}
	return core.ErrNotOwner
}
