package handler // handler defines http handlers

import (
	"context" // context types for the store interfaces
	"errors"  // errors provides sentinel values used in getUserID
	"strconv" // strconv converts strings to numeric types

	"time" // expiry arguments on the token store

	"github.com/iliyamo/film-catalog/internal/repository" // repository holds data access layer
	"github.com/iliyamo/film-catalog/internal/tmdb"       // tmdb defines the remote catalog DTOs
	"github.com/labstack/echo/v4"                         // echo defines request context types
)

// FilmStore is the persistence contract the film handlers depend on. It is
// satisfied by *repository.FilmRepo; tests substitute an in-memory fake.
type FilmStore interface {
	ListAll(ctx context.Context) ([]repository.Film, error)
	GetByID(ctx context.Context, id uint64) (*repository.Film, error)
	Create(ctx context.Context, f *repository.Film) error
	Update(ctx context.Context, f *repository.Film) error
	Delete(ctx context.Context, id uint64) (bool, error)
	Search(ctx context.Context, q repository.FilmSearchQuery) ([]repository.Film, error)
}

// UserStore is the account persistence contract of the auth handlers,
// satisfied by *repository.UserRepo.
type UserStore interface {
	Create(ctx context.Context, email, password, fullName string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	GetByID(ctx context.Context, id uint64) (repository.User, error)
}

// TokenStore is the refresh session contract of the auth handlers, satisfied
// by *repository.TokenRepo.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// RemoteCatalog is the contract of the remote metadata client, satisfied by
// *tmdb.Client.
type RemoteCatalog interface {
	Popular(ctx context.Context) ([]tmdb.FilmSummary, error)
	Details(ctx context.Context, id int64) (*tmdb.FilmDetails, error)
	Search(ctx context.Context, query string) ([]tmdb.FilmSummary, error)
}

// FilmHandler bundles dependencies for the film CRUD and search endpoints.
type FilmHandler struct {
	Films FilmStore
}

// NewFilmHandler constructs a FilmHandler and panics if the store is nil.
func NewFilmHandler(films FilmStore) *FilmHandler {
	if films == nil {
		panic("nil store passed to NewFilmHandler")
	}
	return &FilmHandler{Films: films}
}

// RemoteHandler bundles dependencies for the remote catalog endpoints.
type RemoteHandler struct {
	Catalog RemoteCatalog
}

// NewRemoteHandler constructs a RemoteHandler and panics if the client is nil.
func NewRemoteHandler(catalog RemoteCatalog) *RemoteHandler {
	if catalog == nil {
		panic("nil catalog passed to NewRemoteHandler")
	}
	return &RemoteHandler{Catalog: catalog}
}

// getUserID extracts the user_id placed in the context by the JWT
// middleware and converts it to uint64. An error here means the token was
// accepted but carries no usable identity; handlers answer 401 rather than
// guessing an owner.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}
