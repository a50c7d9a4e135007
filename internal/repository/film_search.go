package repository

import (
	"context"
	"strings"
)

// FilmSearchQuery holds the optional filters for searching films. String
// fields are ignored when empty; numeric filters use pointers so an absent
// filter and a zero value stay distinct. All supplied filters combine with
// AND semantics.
type FilmSearchQuery struct {
	Title       string   // case-insensitive substring match on title
	Genre       string   // LIKE pattern on genre (exact unless the caller uses wildcards)
	ReleaseYear *int     // exact match on YEAR(release_date)
	MinRating   *float64 // rating >= MinRating
}

// buildFilmFilter translates a FilmSearchQuery into a WHERE condition and
// its arguments. An empty query yields the always-true condition so search
// without filters is equivalent to listing everything.
func buildFilmFilter(q FilmSearchQuery) (string, []any) {
	where := []string{}
	args := []any{}

	if q.Title != "" {
		where = append(where, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.Genre != "" {
		where = append(where, "genre LIKE ?")
		args = append(args, q.Genre)
	}
	if q.ReleaseYear != nil {
		where = append(where, "YEAR(release_date) = ?")
		args = append(args, *q.ReleaseYear)
	}
	if q.MinRating != nil {
		where = append(where, "rating >= ?")
		args = append(args, *q.MinRating)
	}

	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

// Search returns all films matching every supplied filter, ordered by id.
// Omitted filters are no-ops; impossible filters simply match nothing.
func (r *FilmRepo) Search(ctx context.Context, q FilmSearchQuery) ([]Film, error) {
	cond, args := buildFilmFilter(q)

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+filmCols+` FROM films WHERE `+cond+` ORDER BY id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Film, 0)
	for rows.Next() {
		var f Film
		if err := scanFilm(rows, &f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
