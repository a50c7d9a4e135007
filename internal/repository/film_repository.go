// Package repository contains data access logic for the film catalog. This
// file defines the Film model and repository methods for films. A Film is a
// catalog entry owned by exactly one user; deleting the owning user removes
// the user's films via the owner_user_id foreign key cascade.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions
)

// Film represents a row of the `films` table. ReleaseDate is carried as a
// plain "YYYY-MM-DD" string, CreatedAt/UpdatedAt in DB format
// "2006-01-02 15:04:05" (UTC). Rating is always within [0,10]; the bound is
// enforced at the API layer before a row is written.
type Film struct {
	ID          uint64  `json:"id"`            // films.id
	Title       string  `json:"title"`         // films.title (max 100 chars)
	Genre       string  `json:"genre"`         // films.genre
	ReleaseDate string  `json:"release_date"`  // films.release_date ("YYYY-MM-DD")
	Rating      float64 `json:"rating"`        // films.rating (0..10)
	Overview    string  `json:"overview"`      // films.overview (optional, empty when NULL)
	OwnerUserID uint64  `json:"owner_user_id"` // films.owner_user_id (references users.id)
	CreatedAt   string  `json:"created_at"`    // films.created_at
	UpdatedAt   string  `json:"updated_at"`    // films.updated_at
}

// ErrFilmNotFound indicates that a film was not located in the DB.
var ErrFilmNotFound = errors.New("film not found")

// FilmRepo manages persistence for films.
type FilmRepo struct {
	db *sql.DB
}

// NewFilmRepo constructs a FilmRepo with the given DB handle.
func NewFilmRepo(db *sql.DB) *FilmRepo {
	return &FilmRepo{db: db}
}

// filmCols is the canonical SELECT column list. Dates are formatted in SQL
// so scanning stays symmetric with the string fields on Film.
const filmCols = `id, title, genre,
	DATE_FORMAT(release_date, '%Y-%m-%d'),
	rating, COALESCE(overview, ''), owner_user_id,
	DATE_FORMAT(created_at, '%Y-%m-%d %T'),
	DATE_FORMAT(updated_at, '%Y-%m-%d %T')`

func scanFilm(row interface{ Scan(...any) error }, f *Film) error {
	return row.Scan(
		&f.ID, &f.Title, &f.Genre, &f.ReleaseDate,
		&f.Rating, &f.Overview, &f.OwnerUserID,
		&f.CreatedAt, &f.UpdatedAt,
	)
}

// ListAll returns every film in the catalog ordered by id. When the table
// is empty it returns an empty slice and nil error.
func (r *FilmRepo) ListAll(ctx context.Context) ([]Film, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+filmCols+` FROM films ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]Film, 0)
	for rows.Next() {
		var f Film
		if err := scanFilm(rows, &f); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a film by its ID.  It returns ErrFilmNotFound if
// there is no matching row.
func (r *FilmRepo) GetByID(ctx context.Context, id uint64) (*Film, error) {
	var f Film
	err := scanFilm(r.db.QueryRowContext(ctx, `SELECT `+filmCols+` FROM films WHERE id = ?`, id), &f)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Create inserts a new film and assigns the generated ID back to the film
// struct. OwnerUserID must already be set by the caller from the
// authenticated identity; it is never taken from client payload here. The
// fresh row is re-selected to populate DB-default fields (timestamps).
func (r *FilmRepo) Create(ctx context.Context, f *Film) error {
	const q = `INSERT INTO films (title, genre, release_date, rating, overview, owner_user_id)
	           VALUES (?, ?, ?, ?, NULLIF(?, ''), ?)`
	res, err := r.db.ExecContext(ctx, q, f.Title, f.Genre, f.ReleaseDate, f.Rating, f.Overview, f.OwnerUserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return scanFilm(r.db.QueryRowContext(ctx, `SELECT `+filmCols+` FROM films WHERE id = ?`, f.ID), f)
}

// Update performs a full replace of title, genre, release_date, rating and
// overview for the film with f.ID. owner_user_id is deliberately not part of
// the SET list: ownership never changes on update. Returns ErrFilmNotFound
// when the row does not exist. MySQL reports zero affected rows when the
// submitted values equal the stored ones, so that case is disambiguated with
// an existence probe and still counts as success.
func (r *FilmRepo) Update(ctx context.Context, f *Film) error {
	const q = `UPDATE films
	           SET title = ?, genre = ?, release_date = ?, rating = ?, overview = NULLIF(?, ''),
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, f.Title, f.Genre, f.ReleaseDate, f.Rating, f.Overview, f.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM films WHERE id = ? LIMIT 1`, f.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrFilmNotFound
			}
			return err
		}
	}
	return scanFilm(r.db.QueryRowContext(ctx, `SELECT `+filmCols+` FROM films WHERE id = ?`, f.ID), f)
}

// Delete removes a film by id. The boolean reports whether a row was
// actually removed; deleting an absent id is not an error.
func (r *FilmRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM films WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
