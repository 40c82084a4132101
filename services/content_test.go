package services

import (
	"context"
	"errors"
	"testing"

	"github.com/knowtasks/knowtasks/core"
	"github.com/knowtasks/knowtasks/logging"
)

func newTestContentService(store *FakeContentStore, uploads core.UploadStore) *ContentService {
	return NewContentService(store, uploads, logging.Nop())
}

var (
	owner = &core.Claims{PrincipalID: "p-owner", Role: core.RoleMentor}
	other = &core.Claims{PrincipalID: "p-other", Role: core.RoleUser}
	admin = &core.Claims{PrincipalID: "p-admin", Role: core.RoleSuperadmin}
)

func strPtr(s string) *string { return &s }

// Requirement: Create validates metadata, assigns an id and owner, and
// hands out an upload URL only when a file payload was requested.
func TestContentService_Create(t *testing.T) {
	tests := []struct {
		name       string
		input      core.CreateContentInput
		wantErr    error
		wantUpload bool
	}{
		{
			name:  "note without file",
			input: core.CreateContentInput{Kind: core.KindNote, Title: "Integrals", Subject: "Math"},
		},
		{
			name:       "pyq with file payload",
			input:      core.CreateContentInput{Kind: core.KindPYQ, Title: "2024 Paper", Subject: "Physics", WithFile: true},
			wantUpload: true,
		},
		{
			name:    "unknown kind",
			input:   core.CreateContentInput{Kind: "video", Title: "T", Subject: "S"},
			wantErr: core.ErrInvalidKind,
		},
		{
			name:    "missing title",
			input:   core.CreateContentInput{Kind: core.KindFlashcard, Subject: "Chemistry"},
			wantErr: core.ErrTitleRequired,
		},
		{
			name:    "missing subject",
			input:   core.CreateContentInput{Kind: core.KindFormula, Title: "Quadratic"},
			wantErr: core.ErrSubjectRequired,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := NewFakeContentStore()
			svc := newTestContentService(store, &FakeUploadStore{})

			result, err := svc.Create(context.Background(), owner, test.input)

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if result.Item.ID == "" {
				t.Error("Create() item has no id")
			}
			if result.Item.OwnerID != owner.PrincipalID {
				t.Errorf("owner = %q, want %q", result.Item.OwnerID, owner.PrincipalID)
			}
			if (result.UploadURL != "") != test.wantUpload {
				t.Errorf("uploadURL = %q, wantUpload %v", result.UploadURL, test.wantUpload)
			}
			if test.wantUpload && result.Item.FileKey == nil {
				t.Error("file key not recorded for file-backed item")
			}
		})
	}
}

// Requirement: a file-payload request still succeeds as a metadata-only
// item when object storage is not configured.
func TestContentService_Create_NoUploadStore(t *testing.T) {
	store := NewFakeContentStore()
	svc := newTestContentService(store, nil)

	result, err := svc.Create(context.Background(), owner, core.CreateContentInput{
		Kind: core.KindNote, Title: "T", Subject: "S", WithFile: true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if result.UploadURL != "" || result.Item.FileKey != nil {
		t.Error("item should have no file reference without object storage")
	}
}

// Requirement: List filters by kind, subject, and owner.
func TestContentService_List(t *testing.T) {
	store := NewFakeContentStore()
	svc := newTestContentService(store, nil)
	ctx := context.Background()

	seed := []core.CreateContentInput{
		{Kind: core.KindNote, Title: "N1", Subject: "Math"},
		{Kind: core.KindNote, Title: "N2", Subject: "Physics"},
		{Kind: core.KindPYQ, Title: "P1", Subject: "Math"},
	}
	for _, input := range seed {
		if _, err := svc.Create(ctx, owner, input); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if _, err := svc.Create(ctx, other, core.CreateContentInput{Kind: core.KindNote, Title: "N3", Subject: "Math"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name   string
		filter core.ContentFilter
		want   int
	}{
		{name: "all", filter: core.ContentFilter{}, want: 4},
		{name: "by kind", filter: core.ContentFilter{Kind: core.KindNote}, want: 3},
		{name: "by subject", filter: core.ContentFilter{Subject: "Math"}, want: 3},
		{name: "by owner", filter: core.ContentFilter{OwnerID: "p-owner"}, want: 3},
		{name: "kind and subject", filter: core.ContentFilter{Kind: core.KindNote, Subject: "Math"}, want: 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			items, err := svc.List(ctx, test.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(items) != test.want {
				t.Errorf("List() returned %d items, want %d", len(items), test.want)
			}
		})
	}

	t.Run("invalid kind rejected", func(t *testing.T) {
		if _, err := svc.List(ctx, core.ContentFilter{Kind: "video"}); !errors.Is(err, core.ErrInvalidKind) {
			t.Errorf("List() error = %v, want ErrInvalidKind", err)
		}
	})
}

// Requirement: only the owner or a superadmin may update or delete an item.
func TestContentService_Ownership(t *testing.T) {
	newItem := func(t *testing.T) (*ContentService, string) {
		t.Helper()
		store := NewFakeContentStore()
		svc := newTestContentService(store, nil)
		result, err := svc.Create(context.Background(), owner, core.CreateContentInput{
			Kind: core.KindNote, Title: "Original", Subject: "Math",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		return svc, result.Item.ID
	}

	t.Run("owner updates", func(t *testing.T) {
		svc, id := newItem(t)
		updated, err := svc.Update(context.Background(), owner, id, core.UpdateContentInput{Title: strPtr("Renamed")})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Title != "Renamed" {
			t.Errorf("title = %q, want %q", updated.Title, "Renamed")
		}
	})

	t.Run("superadmin updates", func(t *testing.T) {
		svc, id := newItem(t)
		if _, err := svc.Update(context.Background(), admin, id, core.UpdateContentInput{Subject: strPtr("Physics")}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		svc, id := newItem(t)
		if _, err := svc.Update(context.Background(), other, id, core.UpdateContentInput{Title: strPtr("Hijack")}); !errors.Is(err, core.ErrNotOwner) {
			t.Fatalf("Update() error = %v, want ErrNotOwner", err)
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		svc, id := newItem(t)
		ctx := context.Background()
		if err := svc.Delete(ctx, owner, id); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := svc.Get(ctx, id); !errors.Is(err, core.ErrContentNotFound) {
			t.Errorf("Get() after delete error = %v, want ErrContentNotFound", err)
		}
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		svc, id := newItem(t)
		if err := svc.Delete(context.Background(), other, id); !errors.Is(err, core.ErrNotOwner) {
			t.Fatalf("Delete() error = %v, want ErrNotOwner", err)
		}
	})

	t.Run("update of missing item", func(t *testing.T) {
		svc, _ := newItem(t)
		if _, err := svc.Update(context.Background(), owner, "no-such-id", core.UpdateContentInput{Title: strPtr("X")}); !errors.Is(err, core.ErrContentNotFound) {
			t.Fatalf("Update() error = %v, want ErrContentNotFound", err)
		}
	})
}

// Requirement: nil update fields leave the item unchanged, while an
// explicit empty string clears category. Title and subject stay required.
func TestContentService_UpdateFields(t *testing.T) {
	newItem := func(t *testing.T) (*ContentService, string) {
		t.Helper()
		store := NewFakeContentStore()
		svc := newTestContentService(store, nil)
		result, err := svc.Create(context.Background(), owner, core.CreateContentInput{
			Kind: core.KindNote, Title: "Original", Subject: "Math", Category: "Calculus",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		return svc, result.Item.ID
	}

	t.Run("nil fields unchanged", func(t *testing.T) {
		svc, id := newItem(t)
		updated, err := svc.Update(context.Background(), owner, id, core.UpdateContentInput{})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Title != "Original" || updated.Subject != "Math" || updated.Category != "Calculus" {
			t.Errorf("item changed by empty update: %+v", updated)
		}
	})

	t.Run("empty string clears category", func(t *testing.T) {
		svc, id := newItem(t)
		updated, err := svc.Update(context.Background(), owner, id, core.UpdateContentInput{Category: strPtr("")})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Category != "" {
			t.Errorf("category = %q, want cleared", updated.Category)
		}
		if updated.Title != "Original" {
			t.Errorf("title = %q, want unchanged", updated.Title)
		}
	})

	t.Run("title cannot be cleared", func(t *testing.T) {
		svc, id := newItem(t)
		if _, err := svc.Update(context.Background(), owner, id, core.UpdateContentInput{Title: strPtr("")}); !errors.Is(err, core.ErrTitleRequired) {
			t.Fatalf("Update() error = %v, want ErrTitleRequired", err)
		}
	})

	t.Run("subject cannot be cleared", func(t *testing.T) {
		svc, id := newItem(t)
		if _, err := svc.Update(context.Background(), owner, id, core.UpdateContentInput{Subject: strPtr("")}); !errors.Is(err, core.ErrSubjectRequired) {
			t.Fatalf("Update() error = %v, want ErrSubjectRequired", err)
		}
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		svc, id := newItem(t)
		kind := core.ContentKind("video")
		if _, err := svc.Update(context.Background(), owner, id, core.UpdateContentInput{Kind: &kind}); !errors.Is(err, core.ErrInvalidKind) {
			t.Fatalf("Update() error = %v, want ErrInvalidKind", err)
		}
	})
}

// Requirement: DownloadURL presigns only file-backed items.
func TestContentService_DownloadURL(t *testing.T) {
	store := NewFakeContentStore()
	svc := newTestContentService(store, &FakeUploadStore{})
	ctx := context.Background()

	withFile, err := svc.Create(ctx, owner, core.CreateContentInput{Kind: core.KindPYQ, Title: "P", Subject: "S", WithFile: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	metadataOnly, err := svc.Create(ctx, owner, core.CreateContentInput{Kind: core.KindNote, Title: "N", Subject: "S"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	url, err := svc.DownloadURL(ctx, withFile.Item)
	if err != nil {
		t.Fatalf("DownloadURL() error = %v", err)
	}
	if url == "" {
		t.Error("DownloadURL() empty for file-backed item")
	}

	url, err = svc.DownloadURL(ctx, metadataOnly.Item)
	if err != nil {
		t.Fatalf("DownloadURL() error = %v", err)
	}
	if url != "" {
		t.Errorf("DownloadURL() = %q for metadata-only item, want empty", url)
	}
}
