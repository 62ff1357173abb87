package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bookStore/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"invalid param", fmt.Errorf("wrap: %w", apperror.InvalidParam("bad type")), http.StatusBadRequest, "bad type"},
		{"unauthorized", apperror.ErrUnauthorized, http.StatusUnauthorized, apperror.ErrUnauthorized.Error()},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, apperror.ServerErrorMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/cart", nil)

			WriteError(rec, req, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.body, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJSON(rec, http.StatusCreated, map[string]int{"count": 2})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":2}`, rec.Body.String())
}

func TestDecodeBody(t *testing.T) {
	var in struct {
		Email string `json:"email"`
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.c"}`))
	require.NoError(t, DecodeBody(req, &in))
	assert.Equal(t, "a@b.c", in.Email)

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{`))
	err := DecodeBody(req, &in)
	assert.True(t, apperror.IsInvalidParam(err))
}

type formRequest struct {
	Token    string      `json:"session_token" form:"session_token"`
	BookID   int64       `json:"bookId" form:"bookId"`
	Quantity *int        `json:"quantity" form:"quantity"`
	Rating   json.Number `json:"rating" form:"rating"`
}

func TestDecodeBody_URLEncoded(t *testing.T) {
	form := url.Values{"session_token": {"abc"}, "bookId": {"7"}, "quantity": {"0"}, "rating": {"4"}}
	req := httptest.NewRequest(http.MethodPost, "/quantity/update", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")

	var in formRequest
	require.NoError(t, DecodeBody(req, &in))
	assert.Equal(t, "abc", in.Token)
	assert.Equal(t, int64(7), in.BookID)
	require.NotNil(t, in.Quantity)
	assert.Equal(t, 0, *in.Quantity)
	assert.Equal(t, json.Number("4"), in.Rating)
}

func TestDecodeBody_Multipart(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("session_token", "abc"))
	require.NoError(t, writer.WriteField("bookId", "7"))
	require.NoError(t, writer.Close())
	req := httptest.NewRequest(http.MethodPost, "/cart/add", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var in formRequest
	require.NoError(t, DecodeBody(req, &in))
	assert.Equal(t, "abc", in.Token)
	assert.Equal(t, int64(7), in.BookID)
	assert.Nil(t, in.Quantity)
}

func TestDecodeBody_MalformedForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cart/add", strings.NewReader("bookId=seven"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in formRequest
	err := DecodeBody(req, &in)
	assert.True(t, apperror.IsInvalidParam(err))
}
