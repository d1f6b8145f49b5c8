package api_context

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type ctxKey string

const (
	IDKey          ctxKey = "id"
	WorkspaceIDKey ctxKey = "workspaceID"
	AuthRolesKey   ctxKey = "authRoles"
)

func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(IDKey).(uuid.UUID)
	return id, ok
}

func WorkspaceIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(WorkspaceIDKey).(uuid.UUID)
	return id, ok
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}
