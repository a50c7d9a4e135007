package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/film-catalog/internal/repository"
)

// queryParam reads the first non-empty value among the given names, so both
// snake_case and the camelCase spellings older clients use keep working.
func queryParam(c echo.Context, names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(c.QueryParam(n)); v != "" {
			return v
		}
	}
	return ""
}

// SearchFilms handles GET /v1/films/search. Every filter is optional and
// all supplied filters must match (AND). A request without any filter is
// equivalent to listing the whole catalog.
func (h *FilmHandler) SearchFilms(c echo.Context) error {
	q := repository.FilmSearchQuery{
		Title: queryParam(c, "title"),
		Genre: queryParam(c, "genre"),
	}

	if raw := queryParam(c, "release_year", "releaseYear"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "release_year must be an integer"})
		}
		q.ReleaseYear = &year
	}
	if raw := queryParam(c, "min_rating", "minRating"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "min_rating must be a number"})
		}
		q.MinRating = &min
	}

	films, err := h.Films.Search(c.Request().Context(), q)
	if err != nil {
		c.Logger().Errorf("search films: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to search films"})
	}
	return c.JSON(http.StatusOK, films)
}
