package fetcher_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TomKxxx/sreality-tracker/internal/config"
	"github.com/TomKxxx/sreality-tracker/internal/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const estatesPath = "/api/cs/v2/estates"

func testCriteria() config.SearchCriteria {
	criteria := config.DefaultCriteria()
	criteria.PerPage = 2
	return criteria
}

func newTestClient(t *testing.T, handler http.Handler) *fetcher.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return fetcher.NewClient(logger, server.URL+estatesPath, testCriteria(), time.Millisecond, time.Second)
}

func estateJSON(id int, price int) string {
	return fmt.Sprintf(`{
		"hash_id": %d,
		"name": "Prodej rodinného domu %d",
		"price": %d,
		"locality": "Ostrava - Poruba",
		"usable_area": 250,
		"seo": {"locality": "ostrava-poruba"},
		"_links": {"images": [{"href": "https://img.example/%d.jpg"}]}
	}`, id, id, price, id)
}

func TestClient_Fetch_Pagination(t *testing.T) {
	t.Parallel()

	var searchQueries []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != estatesPath {
			// Estate detail request.
			fmt.Fprint(w, `{"text": {"value": "<p>Krásný dům <b>se zahradou</b>.</p>"}}`)
			return
		}

		searchQueries = append(searchQueries, r.URL.RawQuery)
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprintf(w, `{"result_size": 3, "_embedded": {"estates": [%s, %s]}}`,
				estateJSON(101, 5000000), estateJSON(102, 6000000))
		default:
			fmt.Fprintf(w, `{"result_size": 3, "_embedded": {"estates": [%s]}}`,
				estateJSON(103, 7000000))
		}
	})

	client := newTestClient(t, handler)

	snapshot, err := client.Fetch(context.Background())
	require.NoError(t, err)

	// Full page 1, short page 2, stop.
	require.Len(t, snapshot, 3)
	assert.Len(t, searchQueries, 2)

	first := snapshot["101"]
	assert.Equal(t, "101", first.ID)
	assert.Equal(t, 5000000, first.Price)
	assert.Equal(t, "Ostrava - Poruba", first.Locality)
	assert.Equal(t, "250", first.Area)
	assert.Equal(t, "https://img.example/101.jpg", first.ImageURL)
	assert.Equal(t, "https://www.sreality.cz/detail/prodej/dum/rodinny/ostrava-poruba/101", first.URL)
	assert.Equal(t, "Krásný dům se zahradou.", first.Description, "description HTML must be stripped")
	assert.False(t, first.ObservedAt.IsZero())

	// The search criteria travel as query parameters.
	assert.Contains(t, searchQueries[0], "category_main_cb=2")
	assert.Contains(t, searchQueries[0], "per_page=2")
	assert.Contains(t, searchQueries[0], "price_from=4948302")
	assert.Contains(t, searchQueries[0], "locality_district_id=65")
	assert.Contains(t, searchQueries[0], "locality_district_id=69")
}

func TestClient_Fetch_EmptyFirstPage(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"result_size": 0, "_embedded": {"estates": []}}`)
	})

	client := newTestClient(t, handler)

	snapshot, err := client.Fetch(context.Background())

	// An empty source result is not a transport error; classifying it is
	// the detector's job.
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}

func TestClient_Fetch_ServerError(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, handler)

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "status code error")
}

func TestClient_Fetch_MalformedResponse(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html>definitely not json</html>`)
	})

	client := newTestClient(t, handler)

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
}

func TestClient_Fetch_DetailFailureDegrades(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != estatesPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"result_size": 1, "_embedded": {"estates": [%s]}}`, estateJSON(101, 5000000))
	})

	client := newTestClient(t, handler)

	snapshot, err := client.Fetch(context.Background())
	require.NoError(t, err, "a broken detail endpoint must not fail the fetch")
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Description not available", snapshot["101"].Description)
}
