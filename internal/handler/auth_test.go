package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/film-catalog/internal/config"
	"github.com/iliyamo/film-catalog/internal/repository"
	"github.com/iliyamo/film-catalog/internal/utils"
)

// fakeUserStore keeps accounts in memory, hashing passwords the same way the
// SQL-backed store does.
type fakeUserStore struct {
	nextID  uint64
	byEmail map[string]repository.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]repository.User{}}
}

func (s *fakeUserStore) Create(ctx context.Context, email, password, fullName string, cost int) (uint64, error) {
	if _, ok := s.byEmail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	s.byEmail[email] = repository.User{ID: s.nextID, Email: email, PasswordHash: hash, FullName: fullName, IsActive: true}
	return s.nextID, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (repository.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return repository.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uint64) (repository.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, sql.ErrNoRows
}

// fakeTokenStore tracks refresh sessions per token hash.
type fakeTokenStore struct {
	sessions map[string]*fakeSession
}

type fakeSession struct {
	userID  uint64
	exp     time.Time
	revoked bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{sessions: map[string]*fakeSession{}}
}

func (s *fakeTokenStore) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	s.sessions[tokenHash] = &fakeSession{userID: userID, exp: exp}
	return nil
}

func (s *fakeTokenStore) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	sess, ok := s.sessions[tokenHash]
	if !ok || sess.revoked || time.Now().UTC().After(sess.exp) {
		return 0, sql.ErrNoRows
	}
	return sess.userID, nil
}

func (s *fakeTokenStore) RevokeByHash(ctx context.Context, tokenHash string) error {
	if sess, ok := s.sessions[tokenHash]; ok {
		sess.revoked = true
	}
	return nil
}

func (s *fakeTokenStore) RevokeAllForUser(ctx context.Context, userID uint64) error {
	for _, sess := range s.sessions {
		if sess.userID == userID {
			sess.revoked = true
		}
	}
	return nil
}

func (s *fakeTokenStore) active(userID uint64) int {
	n := 0
	for _, sess := range s.sessions {
		if sess.userID == userID && !sess.revoked {
			n++
		}
	}
	return n
}

func testAuthHandler() (*AuthHandler, *fakeUserStore, *fakeTokenStore) {
	cfg := config.Config{JWTSecret: "unit-test-secret", AccessTTLMin: 15, RefreshTTLDays: 30, BcryptCost: 4}
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	return NewAuthHandler(cfg, users, tokens), users, tokens
}

// seedSession stores a refresh token for the user and returns the raw value
// a client would hold.
func seedSession(t *testing.T, tokens *fakeTokenStore, userID uint64) string {
	t.Helper()
	rt, err := utils.NewRefreshToken(30)
	require.NoError(t, err)
	require.NoError(t, tokens.StoreRefresh(context.Background(), userID, utils.HashRefreshRaw(rt.Raw), rt.Exp))
	return rt.Raw
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	e := echo.New()
	h, _, tokens := testAuthHandler()

	c, rec := newCtx(e, http.MethodPost, "/v1/auth/register",
		`{"email":"ada@films.dev","password":"pw","full_name":"Ada"}`, 0)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User struct {
			ID    uint64 `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Access  struct{ Token string } `json:"access"`
		Refresh struct{ Token string } `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ada@films.dev", resp.User.Email)
	assert.NotEmpty(t, resp.Access.Token)
	assert.NotEmpty(t, resp.Refresh.Token)
	assert.Equal(t, 1, tokens.active(resp.User.ID))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := echo.New()
	h, _, _ := testAuthHandler()

	body := `{"email":"ada@films.dev","password":"pw","full_name":"Ada"}`
	c, rec := newCtx(e, http.MethodPost, "/v1/auth/register", body, 0)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newCtx(e, http.MethodPost, "/v1/auth/register", body, 0)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	e := echo.New()
	h, users, _ := testAuthHandler()
	_, err := users.Create(context.Background(), "ada@films.dev", "pw", "Ada", 4)
	require.NoError(t, err)

	c, rec := newCtx(e, http.MethodPost, "/v1/auth/login",
		`{"email":"ada@films.dev","password":"nope"}`, 0)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLogoutRevokesOnlyPresentedSession(t *testing.T) {
	e := echo.New()
	h, _, tokens := testAuthHandler()
	raw := seedSession(t, tokens, 7)
	seedSession(t, tokens, 7)
	require.Equal(t, 2, tokens.active(7))

	c, rec := newCtx(e, http.MethodPost, "/v1/auth/logout",
		`{"refresh_token":"`+raw+`"}`, 0)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, tokens.active(7), "the other session must stay active")

	// The same token cannot terminate a session twice.
	c, rec = newCtx(e, http.MethodPost, "/v1/auth/logout",
		`{"refresh_token":"`+raw+`"}`, 0)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEverywhere(t *testing.T) {
	e := echo.New()
	h, _, tokens := testAuthHandler()
	raw := seedSession(t, tokens, 7)
	seedSession(t, tokens, 7)
	other := seedSession(t, tokens, 8)

	c, rec := newCtx(e, http.MethodPost, "/v1/auth/logout",
		`{"refresh_token":"`+raw+`","all":true}`, 0)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, tokens.active(7), "every session of the caller must be revoked")
	assert.Equal(t, 1, tokens.active(8), "other users' sessions must survive")

	_, err := tokens.ValidateRefresh(context.Background(), utils.HashRefreshRaw(other))
	assert.NoError(t, err)
}

func TestLogoutRequiresToken(t *testing.T) {
	e := echo.New()
	h, _, _ := testAuthHandler()

	c, rec := newCtx(e, http.MethodPost, "/v1/auth/logout", `{}`, 0)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
