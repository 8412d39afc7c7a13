package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "github.com/calmate/storefront/pkg/errors"
	pkgredis "github.com/calmate/storefront/pkg/redis"
)

// Profile is the remembered checkout information for a returning buyer.
// Payment and document choices are deliberately not remembered.
type Profile struct {
	Email        string `json:"email"`
	Nombre       string `json:"nombre"`
	Apellidos    string `json:"apellidos"`
	Calle        string `json:"calle"`
	Referencia   string `json:"referencia,omitempty"`
	Region       string `json:"region"`
	Comuna       string `json:"comuna"`
	CodigoPostal string `json:"codigoPostal,omitempty"`
	Telefono     string `json:"telefono"`
	Rut          string `json:"rut"`
}

type keyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ProfileKey(userID string) string
}

// Store persists remembered checkout profiles keyed by user id.
type Store interface {
	Save(ctx context.Context, userID string, profile Profile) error
	Load(ctx context.Context, userID string) (*Profile, error)
	Delete(ctx context.Context, userID string) error
}

type store struct {
	kv  keyValueStore
	ttl time.Duration
}

// NewStore builds a redis-backed profile store. A non-positive TTL keeps
// profiles until overwritten.
func NewStore(kv keyValueStore, ttl time.Duration) (Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("key value store required")
	}
	return &store{kv: kv, ttl: ttl}, nil
}

func (s *store) Save(ctx context.Context, userID string, profile Profile) error {
	if userID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	payload, err := json.Marshal(profile)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode checkout profile")
	}
	if err := s.kv.Set(ctx, s.kv.ProfileKey(userID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist checkout profile")
	}
	return nil
}

// Load returns the remembered profile, or nil when the user has none.
func (s *store) Load(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	raw, err := s.kv.Get(ctx, s.kv.ProfileKey(userID))
	if err != nil {
		if pkgredis.IsNil(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout profile")
	}
	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode checkout profile")
	}
	return &profile, nil
}

func (s *store) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.kv.Del(ctx, s.kv.ProfileKey(userID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete checkout profile")
	}
	return nil
}
