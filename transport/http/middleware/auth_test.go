package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"villa/infras/otel/mocks"
	authMocks "villa/internal/domains/auth/mocks"
	authDto "villa/internal/domains/auth/model/dto"
	"villa/permissions"
	"villa/shared/constant"
	"villa/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newAuthRouter(auth *authMocks.MockAuth, data *permissions.PermissionData) http.Handler {
	m := middleware.NewAuthRoleMiddleware(auth, mocks.NewOtel(), data)

	echoRole := func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		_, _ = w.Write([]byte(role))
	}

	r := chi.NewRouter()
	r.Use(m.Auth, m.RBAC)
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", echoRole)
		r.Get("/", echoRole)
		r.Delete("/{id}", echoRole)
	})

	return r
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		headers    map[string]string
		setupMock  func(auth *authMocks.MockAuth)
		wantStatus int
		wantRole   string
	}{
		{
			name:       "guest may create",
			method:     http.MethodPost,
			path:       "/bookings",
			setupMock:  func(_ *authMocks.MockAuth) {},
			wantStatus: http.StatusOK,
			wantRole:   constant.RoleGuest,
		},
		{
			name:    "admin secret creates as admin",
			method:  http.MethodPost,
			path:    "/bookings",
			headers: map[string]string{constant.RequestHeaderAdminSecret: "s3cret"},
			setupMock: func(auth *authMocks.MockAuth) {
				auth.EXPECT().IsAdmin(gomock.Any(), authDto.Credentials{Secret: "s3cret"}).Return(true)
			},
			wantStatus: http.StatusOK,
			wantRole:   constant.RoleAdmin,
		},
		{
			name:    "wrong secret still creates as guest",
			method:  http.MethodPost,
			path:    "/bookings",
			headers: map[string]string{constant.RequestHeaderAdminSecret: "nope"},
			setupMock: func(auth *authMocks.MockAuth) {
				auth.EXPECT().IsAdmin(gomock.Any(), gomock.Any()).Return(false)
			},
			wantStatus: http.StatusOK,
			wantRole:   constant.RoleGuest,
		},
		{
			name:       "guest cannot list",
			method:     http.MethodGet,
			path:       "/bookings",
			setupMock:  func(_ *authMocks.MockAuth) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "bearer session may delete",
			method:  http.MethodDelete,
			path:    "/bookings/b-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(auth *authMocks.MockAuth) {
				auth.EXPECT().IsAdmin(gomock.Any(), authDto.Credentials{Token: "token"}).Return(true)
			},
			wantStatus: http.StatusOK,
			wantRole:   constant.RoleAdmin,
		},
		{
			name:    "wrong secret cannot delete",
			method:  http.MethodDelete,
			path:    "/bookings/b-1",
			headers: map[string]string{constant.RequestHeaderAdminSecret: "nope"},
			setupMock: func(auth *authMocks.MockAuth) {
				auth.EXPECT().IsAdmin(gomock.Any(), gomock.Any()).Return(false)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			auth := authMocks.NewMockAuth(ctrl)
			tt.setupMock(auth)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			newAuthRouter(auth, permissions.Get()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantRole, rec.Body.String())
			} else {
				assert.JSONEq(t, `{"message":"Unauthorized: Invalid Admin Secret"}`, rec.Body.String())
			}
		})
	}
}

func TestRBAC_WithoutPermissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rec := httptest.NewRecorder()
	newAuthRouter(authMocks.NewMockAuth(ctrl), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRBAC_TracesDenial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := mocks.NewRecorder()
	m := middleware.NewAuthRoleMiddleware(authMocks.NewMockAuth(ctrl), recorder, permissions.Get())

	r := chi.NewRouter()
	r.Use(m.Auth, m.RBAC)
	r.Get("/bookings", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	scope := recorder.Scope("rbac.middleware")
	if assert.NotNil(t, scope) {
		assert.Len(t, scope.Errors, 1)
		assert.True(t, scope.Ended)
		assert.Equal(t, constant.RoleGuest, scope.Attributes["user_role"])
	}
}
