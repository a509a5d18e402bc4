package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/usecase"
	"doctor-portal/pkg/response"

	"github.com/gorilla/schema"
)

// maxMemory bounds the in-memory part of a multipart body; larger parts spill to disk
const maxMemory = 32 << 20

var errInvalidBody = errors.New("invalid request body")

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	// Checkboxes are ticked by presence; the value only matters when it says no
	decoder.RegisterConverter(false, func(value string) reflect.Value {
		return reflect.ValueOf(dto.Checked(value))
	})
	return decoder
}

// parseForm reads an urlencoded or multipart body and returns the body fields only
func parseForm(r *http.Request) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return r.PostForm, nil
}

// decodeForm fills dst from form values; badly typed values become validation messages.
// Fields left blank are dropped first so they decode as absent.
func decodeForm(dst interface{}, form url.Values) error {
	err := formDecoder.Decode(dst, withoutBlank(form))
	if err == nil {
		return nil
	}

	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return err
	}

	keys := make([]string, 0, len(multi))
	for key := range multi {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, key := range keys {
		messages = append(messages, key+" is invalid")
	}
	return &usecase.ValidationError{Messages: messages}
}

func withoutBlank(form url.Values) url.Values {
	filled := make(url.Values, len(form))
	for key, values := range form {
		kept := make([]string, 0, len(values))
		for _, value := range values {
			if strings.TrimSpace(value) != "" {
				kept = append(kept, value)
			}
		}
		if len(kept) > 0 {
			filled[key] = kept
		}
	}
	return filled
}

// readUpload returns nil when the field carries no file. At most limit+1
// bytes are read so an oversized file is still recognised as such.
func readUpload(r *http.Request, field string, limit int64) (*dto.FileUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	if header.Size == 0 {
		return nil, nil
	}

	content, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}

	size := header.Size
	if int64(len(content)) > size {
		size = int64(len(content))
	}

	return &dto.FileUpload{
		FileName: header.Filename,
		Size:     size,
		Content:  content,
	}, nil
}

// writeServerError logs nothing; callers log in the usecase. The cause is
// only exposed outside production.
func writeServerError(w http.ResponseWriter, production bool, message string, err error) {
	detail := ""
	if !production && err != nil {
		detail = err.Error()
	}
	response.InternalServerError(w, message, detail)
}

// writeValidationError reports a usecase.ValidationError and returns false for any other error
func writeValidationError(w http.ResponseWriter, err error) bool {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		response.ValidationError(w, "Validation failed", validationErr.Messages)
		return true
	}
	return false
}

// conflictMessage maps uniqueness errors to the message shown to the user
func conflictMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		return "Email already registered", true
	case errors.Is(err, usecase.ErrBMDCAlreadyExists):
		return "BMDC number already registered", true
	case errors.Is(err, usecase.ErrPhoneAlreadyExists):
		return "Phone number already registered", true
	case errors.Is(err, usecase.ErrNIDAlreadyExists):
		return "NID number already registered", true
	}
	return "", false
}
