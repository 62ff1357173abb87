package book

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"bookStore/internal/apperror"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCatalog struct {
	books []Details
	err   error
}

func (m *memoryCatalog) All(context.Context) ([]Book, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.matching(func(Details) bool { return true }), nil
}

func (m *memoryCatalog) Search(_ context.Context, filter Filter, query string) ([]Book, error) {
	q := strings.ToLower(query)
	contains := func(field string) bool { return strings.Contains(strings.ToLower(field), q) }
	return m.matching(func(d Details) bool {
		switch filter {
		case FilterTitle:
			return contains(d.Title)
		case FilterAuthor:
			return contains(d.Author)
		case FilterGenre:
			return contains(d.Genre)
		default:
			return contains(d.Title) || contains(d.Author)
		}
	}), nil
}

func (m *memoryCatalog) matching(keep func(Details) bool) []Book {
	var out []Book
	for _, d := range m.books {
		if keep(d) {
			out = append(out, d.Book)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (m *memoryCatalog) Find(_ context.Context, id int64) (*Details, error) {
	for _, d := range m.books {
		if d.ID == id {
			found := d
			return &found, nil
		}
	}
	return nil, nil
}

func newCatalog() *memoryCatalog {
	return &memoryCatalog{books: []Details{
		{Book: Book{ID: 1, Title: "The Food Lab", Author: "J. Kenji Lopez-Alt", Genre: "Cooking", Price: decimal.RequireFromString("35.00")}, Quantity: 4},
		{Book: Book{ID: 2, Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Price: decimal.RequireFromString("9.99")}, Quantity: 10},
		{Book: Book{ID: 3, Title: "Foundation", Author: "Isaac Asimov", Genre: "Science Fiction", Price: decimal.RequireFromString("8.50")}, Quantity: 0},
	}}
}

func serve(t *testing.T, catalog Storage, url string) *httptest.ResponseRecorder {
	t.Helper()
	router := httprouter.New()
	NewHandler(NewService(catalog)).Register(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func titles(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	out := make([]string, 0, len(resp.Books))
	for _, b := range resp.Books {
		out = append(out, b.Title)
	}
	return out
}

func TestGetBooks_All(t *testing.T) {
	rec := serve(t, newCatalog(), "/get-books")
	assert.Equal(t, []string{"Dune", "Foundation", "The Food Lab"}, titles(t, rec))
}

func TestGetBooks_TitleIsCaseInsensitiveSubstring(t *testing.T) {
	rec := serve(t, newCatalog(), "/get-books?search=FOO&type=title")
	assert.Equal(t, []string{"The Food Lab"}, titles(t, rec))
}

func TestGetBooks_AllMatchesTitleOrAuthor(t *testing.T) {
	rec := serve(t, newCatalog(), "/get-books?search=as&type=all")
	assert.Equal(t, []string{"Foundation"}, titles(t, rec))

	rec = serve(t, newCatalog(), "/get-books?search=fiction&type=genre")
	assert.Equal(t, []string{"Dune", "Foundation"}, titles(t, rec))
}

func TestGetBooks_EmptyResultIsEmptyList(t *testing.T) {
	rec := serve(t, newCatalog(), "/get-books?search=zzz&type=author")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"books":[]}`, rec.Body.String())
}

func TestGetBooks_InvalidParams(t *testing.T) {
	rec := serve(t, newCatalog(), "/get-books?search=foo&type=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, invalidTypeMessage, rec.Body.String())

	rec = serve(t, newCatalog(), "/get-books?search=foo")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperror.MissingParamsMessage, rec.Body.String())
}

func TestGetBooks_StorageFault(t *testing.T) {
	rec := serve(t, &memoryCatalog{err: errors.New("dial tcp: refused")}, "/get-books")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperror.ServerErrorMessage, rec.Body.String())
}

func TestGetBook(t *testing.T) {
	rec := serve(t, newCatalog(), "/get-book/2")
	require.Equal(t, http.StatusOK, rec.Code)
	var d Details
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, "Dune", d.Title)
	assert.Equal(t, 10, d.Quantity)
	assert.True(t, decimal.RequireFromString("9.99").Equal(d.Price))

	for _, url := range []string{"/get-book/42", "/get-book/abc", "/get-book/-1"} {
		rec = serve(t, newCatalog(), url)
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
		assert.Equal(t, apperror.BookNotFoundMessage, rec.Body.String(), url)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% pure\_ly \\`, EscapeLike(`100% pure_ly \`))

	_, err := searchCondition("bogus")
	assert.Error(t, err)
	cond, err := searchCondition(FilterAll)
	require.NoError(t, err)
	assert.Contains(t, cond, "author ILIKE $1")
}
