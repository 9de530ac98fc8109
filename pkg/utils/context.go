package utils

import (
	"context"

	"reservation-system/pkg/contextkeys"
	apperrors "reservation-system/pkg/errors"
)

// UserIDFromContext pulls the authenticated user id placed there by the
// auth middleware.
func UserIDFromContext(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || id == 0 {
		return 0, apperrors.ErrUserNotFoundInContext
	}
	return id, nil
}

func RoleFromContext(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok || role == "" {
		return "", apperrors.ErrUserNotFoundInContext
	}
	return role, nil
}
