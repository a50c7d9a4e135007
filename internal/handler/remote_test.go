package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/film-catalog/internal/tmdb"
)

// fakeCatalog scripts the remote provider's answers per call.
type fakeCatalog struct {
	popular    []tmdb.FilmSummary
	popularErr error
	details    *tmdb.FilmDetails
	detailsErr error
	results    []tmdb.FilmSummary
	searchErr  error
	lastQuery  string
}

func (f *fakeCatalog) Popular(ctx context.Context) ([]tmdb.FilmSummary, error) {
	return f.popular, f.popularErr
}

func (f *fakeCatalog) Details(ctx context.Context, id int64) (*tmdb.FilmDetails, error) {
	return f.details, f.detailsErr
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]tmdb.FilmSummary, error) {
	f.lastQuery = query
	return f.results, f.searchErr
}

func newRemoteCtx(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPopularFilms(t *testing.T) {
	e := echo.New()
	h := NewRemoteHandler(&fakeCatalog{popular: []tmdb.FilmSummary{{ID: 438631, Title: "Dune"}}})

	c, rec := newRemoteCtx(e, "/v1/remote-films/popular")
	require.NoError(t, h.PopularFilms(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Dune"`)
}

func TestPopularFilmsProviderFailure(t *testing.T) {
	e := echo.New()
	h := NewRemoteHandler(&fakeCatalog{popularErr: errors.New("upstream down")})

	c, rec := newRemoteCtx(e, "/v1/remote-films/popular")
	require.NoError(t, h.PopularFilms(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRemoteFilmDetailsAbsence(t *testing.T) {
	e := echo.New()
	h := NewRemoteHandler(&fakeCatalog{detailsErr: tmdb.ErrNotFound})

	c, rec := newRemoteCtx(e, "/v1/remote-films/999999")
	c.SetParamNames("id")
	c.SetParamValues("999999")
	require.NoError(t, h.RemoteFilmDetails(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "film not found")
}

func TestRemoteFilmDetailsBadID(t *testing.T) {
	e := echo.New()
	h := NewRemoteHandler(&fakeCatalog{})

	c, rec := newRemoteCtx(e, "/v1/remote-films/dune")
	c.SetParamNames("id")
	c.SetParamValues("dune")
	require.NoError(t, h.RemoteFilmDetails(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRemoteFilms(t *testing.T) {
	e := echo.New()
	cat := &fakeCatalog{results: []tmdb.FilmSummary{{ID: 438631, Title: "Dune"}}}
	h := NewRemoteHandler(cat)

	c, rec := newRemoteCtx(e, "/v1/remote-films/search?query=dune")
	require.NoError(t, h.SearchRemoteFilms(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dune", cat.lastQuery)
}

func TestSearchRemoteFilmsProviderFailure(t *testing.T) {
	e := echo.New()
	h := NewRemoteHandler(&fakeCatalog{searchErr: errors.New("upstream down")})

	c, rec := newRemoteCtx(e, "/v1/remote-films/search?query=dune")
	require.NoError(t, h.SearchRemoteFilms(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSearchRemoteFilmsRequiresQuery(t *testing.T) {
	e := echo.New()
	h := NewRemoteHandler(&fakeCatalog{})

	c, rec := newRemoteCtx(e, "/v1/remote-films/search")
	require.NoError(t, h.SearchRemoteFilms(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "query is required")
}
