package middleware

import (
	"context"
	"net/http"
	"villa/infras/jwt"
	"villa/infras/otel"
	authDto "villa/internal/domains/auth/model/dto"
	authService "villa/internal/domains/auth/service"
	"villa/permissions"
	"villa/shared/constant"
	"villa/shared/failure"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	authService authService.Auth
	otel        otel.Otel
	permission  *permissions.PermissionData
}

// NewAuthRoleMiddleware creates a new middleware instance
func NewAuthRoleMiddleware(authService authService.Auth, otel otel.Otel, permissions *permissions.PermissionData) AuthRole {
	return &authRoleImpl{
		authService: authService,
		otel:        otel,
		permission:  permissions,
	}
}

// Auth resolves the caller's role. It never rejects a request: a missing or
// wrong credential just leaves the caller a guest, and RBAC decides the rest.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		credentials := authDto.Credentials{
			Secret: request.Header.Get(constant.RequestHeaderAdminSecret),
		}

		if credentials.Secret == constant.Empty {
			// a malformed header is treated as no header
			credentials.Token, _ = jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		}

		role := constant.RoleGuest
		if !credentials.Empty() && m.authService.IsAdmin(ctx, credentials) {
			role = constant.RoleAdmin
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"user_role":       role,
		})
		scope.End()

		ctx = context.WithValue(request.Context(), constant.ContextKeyUserRole, role)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the resolved role against the permissions table.
// Requires prior role resolution via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if m.permission == nil {
			err := failure.Unauthorized(authService.MessageInvalidSecret)

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path := request.URL.Path
		if rctx := chi.RouteContext(ctx); rctx != nil && rctx.Routes != nil {
			if pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); pattern != "" {
				path = pattern
			}
		}

		permission := m.permission.FindPermissions(path, request.Method)
		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !permission.Allows(userRole) {
			err := failure.Unauthorized(authService.MessageInvalidSecret)

			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"http.route":    path,
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}
