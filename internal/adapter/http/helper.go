package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	appDomain "sacco-loan-service/internal/domain/application"
)

// ---- actor identity ----

// Identity comes from the auth layer, which is outside this service; the
// gateway forwards the authenticated member and role in headers.
const (
	HeaderMemberID   = "X-Member-Id"
	HeaderMemberRole = "X-Member-Role"
)

type actor struct {
	ID   string
	Role appDomain.Role
}

func actorFrom(c echo.Context) (actor, bool) {
	id := strings.TrimSpace(c.Request().Header.Get(HeaderMemberID))
	if !reHex32.MatchString(id) {
		return actor{}, false
	}
	role := appDomain.Role(strings.TrimSpace(c.Request().Header.Get(HeaderMemberRole)))
	if role == "" {
		role = appDomain.RoleMember
	}
	return actor{ID: id, Role: role}, true
}

// ---- domain error mapping ----

func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, appDomain.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "not authorized for this stage"})
	case errors.Is(err, appDomain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "invalid status transition"})
	case errors.Is(err, appDomain.ErrAlreadyResponded):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "already responded"})
	case errors.Is(err, appDomain.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
