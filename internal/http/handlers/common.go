package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/user"
	"riwijobs/internal/http/middleware"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return common.NewError(common.CodeValidation, "invalid json body", err)
	}
	return nil
}

// idFromPath extracts the path segment at index (0-based, after the leading
// slash) and parses it as a UUID.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index >= len(parts) {
		return "", common.NewError(common.CodeValidation, "missing id in path", nil)
	}
	id, err := common.ParseUUID(parts[index])
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

func vacancyFilterError(field, message string) error {
	return common.NewValidationError("invalid filters", map[string]string{field: message})
}

func actorFromContext(r *http.Request) (common.UUID, user.Role, error) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return "", "", errUnauthorized()
	}
	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		return "", "", errUnauthorized()
	}
	return actorID, role, nil
}
