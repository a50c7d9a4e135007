package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/film-catalog/internal/handler"
	"github.com/iliyamo/film-catalog/internal/middleware"
)

// RegisterFilms registers the film catalog endpoints. Reads are public;
// every mutating route is wrapped by JWTAuth so unauthenticated create,
// update and delete requests are rejected with 401 before any handler
// logic runs. cacheMW is applied to the public reads only; pass nil to
// skip caching.
func RegisterFilms(e *echo.Echo, h *handler.FilmHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	pub := e.Group("/v1")
	if cacheMW != nil {
		pub.Use(cacheMW)
	}
	pub.GET("/films", h.ListFilms)
	// Static segments must be registered alongside /films/:id; Echo ranks
	// them above the parameter route.
	pub.GET("/films/search", h.SearchFilms)
	pub.GET("/films/details/:id", h.GetFilmDetails)
	pub.GET("/films/:id", h.GetFilm)

	sec := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	sec.POST("/films", h.CreateFilm)
	sec.PUT("/films/:id", h.UpdateFilm)
	sec.DELETE("/films/:id", h.DeleteFilm)
}

// RegisterRemote registers the passthrough endpoints backed by the remote
// metadata provider. All of them are public; cacheMW (optional) shields
// the provider from repeated identical lookups.
func RegisterRemote(e *echo.Echo, h *handler.RemoteHandler, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/v1/remote-films")
	if cacheMW != nil {
		g.Use(cacheMW)
	}
	g.GET("/popular", h.PopularFilms)
	g.GET("/search", h.SearchRemoteFilms)
	g.GET("/:id", h.RemoteFilmDetails)
}
