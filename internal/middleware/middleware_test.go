package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/hotelbilling/internal/auth"
	"github.com/mmynk/hotelbilling/internal/models"
	"github.com/mmynk/hotelbilling/pkg/api"
	"github.com/mmynk/hotelbilling/pkg/api/apiconnect"
)

// echoAuth reports the session the interceptor put into the context.
type echoAuth struct{}

func (echoAuth) Login(ctx context.Context, _ *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	session, _ := SessionFromContext(ctx)
	return connect.NewResponse(&api.LoginResponse{User: api.Session{ID: session.ID}}), nil
}

func (echoAuth) Logout(ctx context.Context, _ *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

func (echoAuth) GetCurrentUser(ctx context.Context, _ *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	session, _ := SessionFromContext(ctx)
	return connect.NewResponse(&api.GetCurrentUserResponse{User: api.Session{ID: session.ID, Name: session.Name, Role: string(session.Role)}}), nil
}

func setup(t *testing.T, logger *slog.Logger) (apiconnect.AuthServiceClient, *auth.JWTManager) {
	t.Helper()

	jwtManager := auth.NewJWTManager("middleware-secret", time.Hour)
	policy := Policy{
		apiconnect.AuthServiceLoginProcedure:  AccessPublic,
		apiconnect.AuthServiceLogoutProcedure: AccessAdmin,
	}
	path, handler := apiconnect.NewAuthServiceHandler(echoAuth{},
		connect.WithInterceptors(Authorize(jwtManager, policy), LoggingInterceptor(logger)))

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL), jwtManager
}

func bearer[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func token(t *testing.T, m *auth.JWTManager, role models.Role) string {
	t.Helper()
	tok, err := m.Generate(models.Session{ID: "u1", Name: "User One", Role: role})
	require.NoError(t, err)
	return tok
}

func TestAuthorize_Authenticated(t *testing.T) {
	client, jwtManager := setup(t, nil)
	ctx := context.Background()

	resp, err := client.GetCurrentUser(ctx, bearer(token(t, jwtManager, models.RoleStaff), &api.GetCurrentUserRequest{}))
	require.NoError(t, err)
	assert.Equal(t, api.Session{ID: "u1", Name: "User One", Role: "staff"}, resp.Msg.User)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer abc.def.ghi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&api.GetCurrentUserRequest{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}
			_, err := client.GetCurrentUser(ctx, req)
			require.Error(t, err)
			assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

			var connectErr *connect.Error
			require.ErrorAs(t, err, &connectErr)
			assert.Equal(t, auth.RouteLogin, connectErr.Meta().Get(RedirectHeader))
		})
	}

	t.Run("foreign signature", func(t *testing.T) {
		other := auth.NewJWTManager("someone-else", time.Hour)
		_, err := client.GetCurrentUser(ctx, bearer(token(t, other, models.RoleAdmin), &api.GetCurrentUserRequest{}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})
}

func TestAuthorize_Public(t *testing.T) {
	client, jwtManager := setup(t, nil)
	ctx := context.Background()

	resp, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{}))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.User.ID)

	resp, err = client.Login(ctx, bearer("junk", &api.LoginRequest{}))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.User.ID)

	resp, err = client.Login(ctx, bearer(token(t, jwtManager, models.RoleStaff), &api.LoginRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.Msg.User.ID)
}

func TestAuthorize_Admin(t *testing.T) {
	client, jwtManager := setup(t, nil)
	ctx := context.Background()

	_, err := client.Logout(ctx, bearer(token(t, jwtManager, models.RoleStaff), &api.LogoutRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	var connectErr *connect.Error
	require.ErrorAs(t, err, &connectErr)
	assert.Equal(t, auth.RouteLanding, connectErr.Meta().Get(RedirectHeader))

	_, err = client.Logout(ctx, bearer(token(t, jwtManager, models.RoleAdmin), &api.LogoutRequest{}))
	require.NoError(t, err)
}

// syncBuffer is written by the server goroutine and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLoggingInterceptor(t *testing.T) {
	var buf syncBuffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	client, jwtManager := setup(t, logger)
	ctx := context.Background()

	_, err := client.GetCurrentUser(ctx, bearer(token(t, jwtManager, models.RoleStaff), &api.GetCurrentUserRequest{}))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "RPC ok")
	assert.Contains(t, out, apiconnect.AuthServiceGetCurrentUserProcedure)
	assert.Contains(t, out, "user_id=u1")
}

func TestSessionFromContext(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, GetUserID(context.Background()))

	ctx := WithSession(context.Background(), models.Session{ID: "admin", Role: models.RoleAdmin})
	session, ok := SessionFromContext(ctx)
	require.True(t, ok)
	assert.True(t, session.IsAdmin())
	assert.Equal(t, "admin", GetUserID(ctx))
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, called)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := RequestLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Contains(t, buf.String(), "status=404")
	assert.Contains(t, buf.String(), "path=/missing")
}
