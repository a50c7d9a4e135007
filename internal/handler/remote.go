package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/film-catalog/internal/tmdb"
)

// PopularFilms handles GET /v1/remote-films/popular. Provider failures are
// surfaced as 500; the specific upstream error stays in the server log.
func (h *RemoteHandler) PopularFilms(c echo.Context) error {
	films, err := h.Catalog.Popular(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("remote popular: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch popular films"})
	}
	return c.JSON(http.StatusOK, films)
}

// RemoteFilmDetails handles GET /v1/remote-films/:id. A provider failure on
// this endpoint means absence (404), unlike the list endpoints where it is
// an upstream error.
func (h *RemoteHandler) RemoteFilmDetails(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	film, err := h.Catalog.Details(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		c.Logger().Errorf("remote details %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch film details"})
	}
	return c.JSON(http.StatusOK, film)
}

// SearchRemoteFilms handles GET /v1/remote-films/search?query=...
func (h *RemoteHandler) SearchRemoteFilms(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query is required"})
	}
	films, err := h.Catalog.Search(c.Request().Context(), query)
	if err != nil {
		c.Logger().Errorf("remote search %q: %v", query, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to search films"})
	}
	return c.JSON(http.StatusOK, films)
}
