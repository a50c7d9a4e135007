package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProvider spins up a fake metadata provider covering the three
// endpoints the client consumes.
func newProvider(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/popular", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "k123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id":1,"title":"Dune","overview":"Spice.","poster_path":"/d.jpg","vote_average":8.1,"release_date":"2021-10-22"},
			{"id":2,"title":"Arrival","overview":"Heptapods.","poster_path":"/a.jpg","vote_average":7.9,"release_date":"2016-11-11"}
		]}`))
	})
	mux.HandleFunc("/movie/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"title":"Solaris","overview":"Ocean.","poster_path":"/s.jpg","vote_average":7.5,"release_date":"1972-03-20","runtime":167}`))
	})
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "blade runner", r.URL.Query().Get("query"), "query must arrive decoded")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":3,"title":"Blade Runner","vote_average":8.0,"release_date":"1982-06-25"}]}`))
	})
	return httptest.NewServer(mux)
}

func TestClientPopular(t *testing.T) {
	srv := newProvider(t)
	defer srv.Close()

	c := New(srv.URL, "k123")
	films, err := c.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, films, 2)
	assert.Equal(t, "Dune", films[0].Title)
	assert.Equal(t, 8.1, films[0].VoteAverage)
	assert.Equal(t, "2016-11-11", films[1].ReleaseDate)
}

func TestClientPopularUpstreamErrorPropagates(t *testing.T) {
	srv := newProvider(t)
	defer srv.Close()

	c := New(srv.URL, "wrong-key")
	_, err := c.Popular(context.Background())
	assert.Error(t, err, "a non-success status on a list endpoint is an upstream error")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClientDetails(t *testing.T) {
	srv := newProvider(t)
	defer srv.Close()

	c := New(srv.URL, "k123")
	d, err := c.Details(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Solaris", d.Title)
	assert.Equal(t, 167, d.Runtime)
}

func TestClientDetailsFailureIsAbsence(t *testing.T) {
	srv := newProvider(t)
	c := New(srv.URL, "k123")

	// Unknown id: provider answers 404, the client reports absence.
	_, err := c.Details(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	// Transport failure: same contract.
	srv.Close()
	_, err = c.Details(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientSearch(t *testing.T) {
	srv := newProvider(t)
	defer srv.Close()

	c := New(srv.URL, "k123")
	films, err := c.Search(context.Background(), "blade runner")
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, "Blade Runner", films[0].Title)
}

func TestClientSearchTransportErrorPropagates(t *testing.T) {
	srv := newProvider(t)
	srv.Close()

	c := New(srv.URL, "k123")
	_, err := c.Search(context.Background(), "anything")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
