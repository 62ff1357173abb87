package handlers

import (
	"bookStore/internal/apperror"
	"bookStore/package/logger"
	"encoding/json"
	"errors"
	"github.com/gin-gonic/gin/binding"
	"github.com/julienschmidt/httprouter"
	"mime"
	"net/http"
)

type Handler interface {
	Register(router *httprouter.Router)
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.WithError(err).Error("Can not encode response")
		WriteText(w, http.StatusInternalServerError, apperror.ServerErrorMessage)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(body); err != nil {
		logger.Log.WithError(err).Error("Can not send response")
	}
}

func WriteText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// WriteError maps an error onto 400, 401 or 500. The cause of a 500 is logged, never sent.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *apperror.InvalidParamError
	switch {
	case errors.As(err, &invalid):
		logger.Log.Info("Bad request " + r.URL.Path + ": " + invalid.Message)
		WriteText(w, http.StatusBadRequest, invalid.Message)
	case errors.Is(err, apperror.ErrUnauthorized):
		logger.Log.Info("Unauthorized request " + r.URL.Path)
		WriteText(w, http.StatusUnauthorized, apperror.ErrUnauthorized.Error())
	default:
		logger.Log.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
		WriteText(w, http.StatusInternalServerError, apperror.ServerErrorMessage)
	}
}

// DecodeBody reads a urlencoded, multipart or JSON request body into v. Form
// fields are matched by the `form` tag, JSON by the `json` tag. Anything
// without a form content type is read as JSON. Malformed input is an
// invalid-parameter error.
func DecodeBody(r *http.Request, v interface{}) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var err error
	switch mediaType {
	case binding.MIMEPOSTForm:
		err = binding.FormPost.Bind(r, v)
	case binding.MIMEMultipartPOSTForm:
		err = binding.FormMultipart.Bind(r, v)
	default:
		err = json.NewDecoder(r.Body).Decode(v)
	}
	if err != nil {
		logger.Log.Debug("Can not decode request body: ", err)
		return apperror.InvalidParam(apperror.MissingParamsMessage)
	}
	return nil
}
