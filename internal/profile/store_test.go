package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/calmate/storefront/pkg/errors"
	pkgredis "github.com/calmate/storefront/pkg/redis"
	"github.com/redis/go-redis/v9"
)

// The production wiring hands the redis wrapper straight to NewStore, so the
// wrapper must satisfy the backend interface the fake below also implements.
var _ keyValueStore = (*pkgredis.Client)(nil)

type fakeKV struct {
	data    map[string]string
	lastTTL time.Duration
	failure error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	if f.failure != nil {
		return "", f.failure
	}
	val, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return val, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.failure != nil {
		return f.failure
	}
	f.data[key] = value.(string)
	f.lastTTL = ttl
	return nil
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) error {
	if f.failure != nil {
		return f.failure
	}
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeKV) ProfileKey(userID string) string {
	return "calmate:profile:" + userID
}

func sampleProfile() Profile {
	return Profile{
		Email:     "maria@example.cl",
		Nombre:    "María",
		Apellidos: "González Pérez",
		Calle:     "Avenida Providencia 1234, depto 5",
		Region:    "Metropolitana de Santiago",
		Comuna:    "Providencia",
		Telefono:  "+56 9 1234 5678",
		Rut:       "12.345.678-9",
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store, err := NewStore(kv, 2*time.Hour)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := store.Save(ctx, "user-1", sampleProfile()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if kv.lastTTL != 2*time.Hour {
		t.Fatalf("expected configured ttl, got %s", kv.lastTTL)
	}

	got, err := store.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got == nil || got.Comuna != "Providencia" || got.Email != "maria@example.cl" {
		t.Fatalf("unexpected profile %+v", got)
	}
}

func TestLoadMissingProfileReturnsNil(t *testing.T) {
	store, _ := NewStore(newFakeKV(), time.Hour)
	got, err := store.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("missing profile should not error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil profile, got %+v", got)
	}
}

func TestDeleteRemovesProfile(t *testing.T) {
	ctx := context.Background()
	store, _ := NewStore(newFakeKV(), time.Hour)
	if err := store.Save(ctx, "user-1", sampleProfile()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got, _ := store.Load(ctx, "user-1"); got != nil {
		t.Fatalf("profile should be gone, got %+v", got)
	}
}

func TestBackendFailureMapsToDependencyError(t *testing.T) {
	kv := newFakeKV()
	kv.failure = errors.New("connection refused")
	store, _ := NewStore(kv, time.Hour)

	_, err := store.Load(context.Background(), "user-1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestEmptyUserIDRejected(t *testing.T) {
	store, _ := NewStore(newFakeKV(), time.Hour)
	if err := store.Save(context.Background(), "", sampleProfile()); err == nil {
		t.Fatal("expected validation error for empty user id")
	}
	if _, err := store.Load(context.Background(), ""); err == nil {
		t.Fatal("expected validation error for empty user id")
	}
}

func TestNewStoreRequiresBackend(t *testing.T) {
	if _, err := NewStore(nil, time.Hour); err == nil {
		t.Fatal("expected error without backend")
	}
}
