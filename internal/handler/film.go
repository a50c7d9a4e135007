package handler // handler package contains the film CRUD handlers

import (
	"errors"       // errors lets handlers match repository sentinels
	"fmt"          // fmt formats the Location header
	"net/http"     // http defines status codes
	"strconv"      // strconv converts path params to integers
	"strings"      // strings helps with trimming whitespace
	"time"         // time validates the release date format
	"unicode/utf8" // utf8 counts title characters, not bytes

	"github.com/iliyamo/film-catalog/internal/queue"                 // queue defines the film event payloads
	"github.com/iliyamo/film-catalog/internal/repository"            // repository defines data models
	queue_publisher "github.com/iliyamo/film-catalog/internal/service" // queue_publisher emits film events
	"github.com/labstack/echo/v4"                                    // echo provides the web context and JSON helpers
)

// filmInput is the request body for create and update. Rating is a pointer
// so a missing field is distinguishable from a legitimate 0.0. The owner is
// never read from the body; it always comes from the access token.
type filmInput struct {
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	ReleaseDate string   `json:"release_date"`
	Rating      *float64 `json:"rating"`
	Overview    string   `json:"overview"`
}

// validateFilmInput applies the catalog's field rules and returns one
// message per failing field. Title is capped at 100 characters, the release
// date must be YYYY-MM-DD and the rating must land in [0,10].
func validateFilmInput(in *filmInput) map[string]string {
	errs := map[string]string{}

	in.Title = strings.TrimSpace(in.Title)
	in.Genre = strings.TrimSpace(in.Genre)
	in.ReleaseDate = strings.TrimSpace(in.ReleaseDate)
	in.Overview = strings.TrimSpace(in.Overview)

	if in.Title == "" {
		errs["title"] = "title is required"
	} else if utf8.RuneCountInString(in.Title) > 100 {
		errs["title"] = "title must be at most 100 characters"
	}
	if in.Genre == "" {
		errs["genre"] = "genre is required"
	}
	if in.ReleaseDate == "" {
		errs["release_date"] = "release_date is required"
	} else if _, err := time.Parse("2006-01-02", in.ReleaseDate); err != nil {
		errs["release_date"] = "release_date must be in YYYY-MM-DD format"
	}
	if in.Rating == nil {
		errs["rating"] = "rating is required"
	} else if *in.Rating < 0 || *in.Rating > 10 {
		errs["rating"] = "rating must be between 0 and 10"
	}
	return errs
}

// ListFilms handles GET /v1/films and returns the whole catalog.
func (h *FilmHandler) ListFilms(c echo.Context) error {
	films, err := h.Films.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list films: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load films"})
	}
	return c.JSON(http.StatusOK, films)
}

// GetFilm handles GET /v1/films/:id.
func (h *FilmHandler) GetFilm(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	film, err := h.Films.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		c.Logger().Errorf("get film %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load film"})
	}
	return c.JSON(http.StatusOK, film)
}

// GetFilmDetails handles GET /v1/films/details/:id. The stored entity is
// returned as-is; there is no enrichment beyond what get-by-id yields.
func (h *FilmHandler) GetFilmDetails(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	film, err := h.Films.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film details not found"})
		}
		c.Logger().Errorf("get film details %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load film details"})
	}
	return c.JSON(http.StatusOK, film)
}

// CreateFilm handles POST /v1/films. The route is wrapped by JWTAuth, so a
// request reaching here carries a valid token; what can still fail is a
// token with no usable subject, answered with 401.
func (h *FilmHandler) CreateFilm(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unable to identify user"})
	}
	var body filmInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := validateFilmInput(&body); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	film := &repository.Film{
		Title:       body.Title,
		Genre:       body.Genre,
		ReleaseDate: body.ReleaseDate,
		Rating:      *body.Rating,
		Overview:    body.Overview,
		OwnerUserID: userID, // always the caller, never the payload
	}
	if err := h.Films.Create(c.Request().Context(), film); err != nil {
		c.Logger().Errorf("create film: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create film"})
	}

	// Best effort: a broker outage must not fail the request.
	_ = queue_publisher.PublishFilmEvent(c.Request().Context(), queue.FilmEvent{
		Action:      queue.FilmCreated,
		FilmID:      film.ID,
		Title:       film.Title,
		Genre:       film.Genre,
		OwnerUserID: film.OwnerUserID,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/v1/films/%d", film.ID))
	return c.JSON(http.StatusCreated, film)
}

// UpdateFilm handles PUT /v1/films/:id. Update is a full replace of title,
// genre, release_date, rating and overview; the owner recorded at creation
// is kept regardless of who sends the update or what the payload says.
func (h *FilmHandler) UpdateFilm(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unable to identify user"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body filmInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := validateFilmInput(&body); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	film := &repository.Film{
		ID:          id,
		Title:       body.Title,
		Genre:       body.Genre,
		ReleaseDate: body.ReleaseDate,
		Rating:      *body.Rating,
		Overview:    body.Overview,
	}
	if err := h.Films.Update(c.Request().Context(), film); err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found for update"})
		}
		c.Logger().Errorf("update film %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update film"})
	}
	return c.JSON(http.StatusOK, film)
}

// DeleteFilm handles DELETE /v1/films/:id. Deleting an id that is already
// gone answers 404, so a double delete is first 204 then 404.
func (h *FilmHandler) DeleteFilm(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unable to identify user"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	removed, err := h.Films.Delete(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("delete film %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete film"})
	}
	if !removed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found for deletion"})
	}

	_ = queue_publisher.PublishFilmEvent(c.Request().Context(), queue.FilmEvent{
		Action:     queue.FilmDeleted,
		FilmID:     id,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.NoContent(http.StatusNoContent)
}
