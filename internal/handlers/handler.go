package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"bookCatalog/internal/apperror"
	"bookCatalog/package/logger"
)

type Handler interface {
	Register(router *httprouter.Router)
}

type ErrorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("Can not marshal response: " + err.Error())
		http.Error(w, `{"success":false,"statusCode":500,"message":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Log.Info("While sending JSON for respond: " + err.Error())
	}
}

// WriteError logs err and writes the JSON error body for its kind.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperror.KindOf(err)
	status := kind.Status()

	entry := logger.Log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})
	if kind == apperror.Internal {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.Info(err.Error())
	}

	WriteJSON(w, status, ErrorResponse{
		Success:    false,
		StatusCode: status,
		Message:    apperror.Message(err),
	})
}

// DecodeJSON decodes the request body into dst. An empty body decodes to the
// zero value so that required-field validation reports what is missing.
// Anything after the first JSON value is rejected.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		var extra json.RawMessage
		if err = dec.Decode(&extra); errors.Is(err, io.EOF) {
			return nil
		}
		if err == nil {
			err = errors.New("trailing data after JSON value")
		}
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Wrap(err, apperror.BadRequest, "invalid request body")
}

// Validate runs the struct's validate tags and reports the failing fields.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return apperror.New(apperror.BadRequest, "missing or invalid fields: %s", strings.Join(fields, ", "))
}
