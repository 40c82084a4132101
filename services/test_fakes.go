package services

import (
	"context"
	"sync"
	"time"

	"github.com/knowtasks/knowtasks/core"
)

// FakePrincipalStore is a test-only fake implementing core.PrincipalStore.
// It stores principals in a map keyed by id and exposes error fields for
// behavior injection.
type FakePrincipalStore struct {
	principals map[string]*core.Principal
	mu         sync.RWMutex

	createErr error
	findErr   error
	touchErr  error
	updateErr error
}

var _ core.PrincipalStore = (*FakePrincipalStore)(nil)

func NewFakePrincipalStore() *FakePrincipalStore {
	return &FakePrincipalStore{
		principals: make(map[string]*core.Principal),
	}
}

func (f *FakePrincipalStore) Create(_ context.Context, p *core.Principal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.principals {
		if existing.Email == p.Email {
			return core.ErrDuplicateEmail
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	f.principals[p.ID] = p
	return nil
}

func (f *FakePrincipalStore) FindByID(_ context.Context, id string) (*core.Principal, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	p, ok := f.principals[id]
	if !ok {
		return nil, core.ErrPrincipalNotFound
	}
	return p, nil
}

func (f *FakePrincipalStore) FindByEmail(_ context.Context, email string) (*core.Principal, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, p := range f.principals {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, core.ErrPrincipalNotFound
}

func (f *FakePrincipalStore) UpdateStatus(_ context.Context, id string, status core.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.principals[id]
	if !ok {
		return core.ErrPrincipalNotFound
	}
	p.Status = status
	return nil
}

func (f *FakePrincipalStore) UpdatePasswordHash(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.principals[id]
	if !ok {
		return core.ErrPrincipalNotFound
	}
	p.PasswordHash = hash
	return nil
}

func (f *FakePrincipalStore) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.touchErr != nil {
		return f.touchErr
	}
	p, ok := f.principals[id]
	if !ok {
		return core.ErrPrincipalNotFound
	}
	p.LastLoginAt = &at
	return nil
}

func (f *FakePrincipalStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.principals[id]; !ok {
		return core.ErrPrincipalNotFound
	}
	delete(f.principals, id)
	return nil
}

// FakeContentStore is a test-only fake implementing core.ContentStore.
type FakeContentStore struct {
	items map[string]*core.ContentItem
	mu    sync.RWMutex

	createErr error
	getErr    error
}

var _ core.ContentStore = (*FakeContentStore)(nil)

func NewFakeContentStore() *FakeContentStore {
	return &FakeContentStore{items: make(map[string]*core.ContentItem)}
}

func (f *FakeContentStore) CreateItem(_ context.Context, item *core.ContentItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.items[item.ID] = item
	return nil
}

func (f *FakeContentStore) GetItem(_ context.Context, id string) (*core.ContentItem, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	item, ok := f.items[id]
	if !ok {
		return nil, core.ErrContentNotFound
	}
	return item, nil
}

func (f *FakeContentStore) ListItems(_ context.Context, filter core.ContentFilter) ([]*core.ContentItem, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*core.ContentItem
	for _, item := range f.items {
		if filter.OwnerID != "" && item.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Kind != "" && item.Kind != filter.Kind {
			continue
		}
		if filter.Subject != "" && item.Subject != filter.Subject {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *FakeContentStore) UpdateItem(_ context.Context, item *core.ContentItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID]; !ok {
		return core.ErrContentNotFound
	}
	f.items[item.ID] = item
	return nil
}

func (f *FakeContentStore) DeleteItem(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return core.ErrContentNotFound
	}
	delete(f.items, id)
	return nil
}

// FakeUploadStore is a test-only fake implementing core.UploadStore.
type FakeUploadStore struct {
	presignPutErr error
	putCalls      int
}

var _ core.UploadStore = (*FakeUploadStore)(nil)

func (f *FakeUploadStore) PresignPut(_ context.Context, ownerID string) (string, string, error) {
	if f.presignPutErr != nil {
		return "", "", f.presignPutErr
	}
	f.putCalls++
	return "uploads/" + ownerID + "/fake-key", "https://storage.example.com/put/fake-key", nil
}

func (f *FakeUploadStore) PresignGet(_ context.Context, key string) (string, error) {
	return "https://storage.example.com/get/" + key, nil
}
