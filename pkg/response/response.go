package response

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Response is the common envelope. Extra fields passed to Success or Error are
// flattened next to success and message rather than nested under a key.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.Warnf("Failed to encode response: %+v", err)
	}
}

func write(w http.ResponseWriter, statusCode int, envelope Response, extra interface{}) {
	body, err := flatten(envelope, extra)
	if err != nil {
		logrus.Warnf("Failed to build response: %+v", err)
		JSON(w, http.StatusInternalServerError, Response{Success: false, Message: "Internal server error"})
		return
	}
	JSON(w, statusCode, body)
}

func flatten(envelope Response, extra interface{}) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if extra != nil {
		raw, err := json.Marshal(extra)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
	}

	body["success"] = envelope.Success
	body["message"] = envelope.Message
	if len(envelope.Errors) > 0 {
		body["errors"] = envelope.Errors
	}
	if envelope.Error != "" {
		body["error"] = envelope.Error
	}
	return body, nil
}

// Success writes {success:true, message, ...extra}; extra must encode to a JSON object or be nil
func Success(w http.ResponseWriter, statusCode int, message string, extra interface{}) {
	write(w, statusCode, Response{Success: true, Message: message}, extra)
}

func Error(w http.ResponseWriter, statusCode int, message string, extra interface{}) {
	write(w, statusCode, Response{Success: false, Message: message}, extra)
}

func ValidationError(w http.ResponseWriter, message string, errors []string) {
	if message == "" {
		message = "Validation failed"
	}
	write(w, http.StatusBadRequest, Response{Success: false, Message: message, Errors: errors}, nil)
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message, nil)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Authentication required"
	}
	Error(w, http.StatusUnauthorized, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message, nil)
}

func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, message, nil)
}

func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
}

func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Too many requests, please try again later", nil)
}

// InternalServerError hides the cause unless detail is non-empty
func InternalServerError(w http.ResponseWriter, message, detail string) {
	if message == "" {
		message = "Internal server error"
	}
	write(w, http.StatusInternalServerError, Response{Success: false, Message: message, Error: detail}, nil)
}
