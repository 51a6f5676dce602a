package kvstore

import (
	"context"
	"fmt"
	"strconv"
)

// Well-known keys. Values are string-encoded and survive restarts.
const (
	KeyLogin            = "login"
	KeyIsAuth           = "isAuth"
	KeyParamsLogin      = "paramsLogin"
	KeyCurrentPage      = "currentPage"
	KeySelectedTab      = "selectedTab"
	KeySessionID        = "session_id"
	KeySessionExpiresAt = "session_expires_at"
)

// Store adds typed accessors on top of a Repository.
// Several stores write the same keys; the last writer wins.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// String returns the value for key, or def when the key is absent.
func (s *Store) String(ctx context.Context, key, def string) (string, error) {
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// Bool decodes "true"/"false". Absent keys read as false; a malformed value
// reads as false and is reported.
func (s *Store) Bool(ctx context.Context, key string) (bool, error) {
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("kv[%s]: %w", key, err)
	}
	return b, nil
}

// Int decodes a base-10 integer, falling back to def when absent or malformed.
func (s *Store) Int(ctx context.Context, key string, def int) (int, error) {
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("kv[%s]: %w", key, err)
	}
	return n, nil
}

func (s *Store) SetString(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

func (s *Store) SetBool(ctx context.Context, key string, value bool) error {
	return s.repo.Set(ctx, key, strconv.FormatBool(value))
}

func (s *Store) SetInt(ctx context.Context, key string, value int) error {
	return s.repo.Set(ctx, key, strconv.Itoa(value))
}

// Update writes several pre-encoded values in one transaction.
func (s *Store) Update(ctx context.Context, values map[string]string) error {
	return s.repo.SetMany(ctx, values)
}

func (s *Store) Remove(ctx context.Context, keys ...string) error {
	return s.repo.Delete(ctx, keys...)
}
