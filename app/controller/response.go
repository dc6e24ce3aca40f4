package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"

	"avatar-wardrobe/figure"
	"avatar-wardrobe/models"
	"avatar-wardrobe/repository"
	"avatar-wardrobe/service"
	"avatar-wardrobe/wardrobe"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// writeJSON writes data wrapped in the success envelope
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: data}); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// writeError writes message wrapped in the error envelope
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.APIResponse{Success: false, Error: message}); err != nil {
		log.Printf("❌ Error encoding error response: %v", err)
	}
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, repository.ErrAvatarNotFound),
		errors.Is(err, wardrobe.ErrUnknownSetType),
		errors.Is(err, wardrobe.ErrUnknownSet):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAvatarExists):
		return http.StatusConflict
	case errors.Is(err, wardrobe.ErrInvalidGender),
		errors.Is(err, wardrobe.ErrLayerOutOfRange),
		errors.Is(err, wardrobe.ErrUnknownColor),
		errors.Is(err, wardrobe.ErrPaletteNotBound),
		errors.Is(err, figure.ErrUnknownTypeCode),
		errors.Is(err, figure.ErrLayerOutOfRange),
		errors.Is(err, figure.ErrMultiLayerColor),
		errors.Is(err, figure.ErrEmptyFigureString),
		errors.Is(err, service.ErrSlotEmpty):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeServiceError logs err and writes it with the mapped status
func writeServiceError(w http.ResponseWriter, op string, err error) {
	status := statusForError(err)
	log.Printf("❌ %s: %v (status=%d)", op, err, status)
	writeError(w, status, err.Error())
}

// decodeAndValidate decodes a JSON body into req and runs its validate tags
func decodeAndValidate(r *http.Request, req interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(req); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

// validationMessage turns validator errors into one readable line
func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(messages, "; ")
}

// parseGenderParam parses an optional gender query value. Empty means fallback.
func parseGenderParam(value string, fallback models.Gender) (models.Gender, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	gender, err := models.ParseGender(value)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, wardrobe.ErrInvalidGender)
	}
	return gender, nil
}

// pathSegments splits the path after prefix into its non-empty segments
func pathSegments(path, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
