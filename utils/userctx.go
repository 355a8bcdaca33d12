package utils

import (
	"net/http"

	"swaadha/globals"
	"swaadha/models"
)

func GetUserIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRoleFromRequest(r *http.Request) models.Role {
	role, ok := r.Context().Value(globals.RoleKey).(models.Role)
	if !ok {
		return ""
	}
	return role
}
