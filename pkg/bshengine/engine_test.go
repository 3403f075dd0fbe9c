package bshengine_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
	"github.com/fivetwenty-io/bshengine-client/pkg/bshengine"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, env map[string]any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		engine, err := bshengine.NewFromConfig(nil)
		require.ErrorIs(t, err, bsh.ErrConfigRequired)
		assert.Nil(t, engine)
	})

	t.Run("normalizes host", func(t *testing.T) {
		t.Parallel()

		engine, err := bshengine.NewFromConfig(&bsh.Config{Host: "engine.example.com/"})
		require.NoError(t, err)
		assert.Equal(t, "https://engine.example.com", engine.Host())
	})
}

func TestNormalizeHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"engine.example.com", "https://engine.example.com"},
		{"https://engine.example.com/", "https://engine.example.com"},
		{"http://localhost:8080", "http://localhost:8080"},
		{" http://localhost:8080/ ", "http://localhost:8080"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, bshengine.NormalizeHost(tt.in), tt.in)
	}
}

func TestNewWithAPIKey_FindByID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/entities/User/42", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "k1", r.Header.Get("X-BSH-APIKEY"))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"data":      []any{map[string]any{"id": 42, "name": "Ada"}},
			"code":      200,
			"status":    "OK",
			"timestamp": 1700000000000,
		})
	}))
	defer server.Close()

	engine, err := bshengine.NewWithAPIKey(server.URL, "k1")
	require.NoError(t, err)

	users, err := engine.Entity("User")
	require.NoError(t, err)

	env, err := users.FindByID(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, env)

	assert.True(t, env.IsOK())
	assert.Equal(t, int64(1700000000000), env.Timestamp)
	assert.Equal(t, "entities.User.findById", env.OperationName)

	type user struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	decoded, err := bsh.DecodeData[user](env)
	require.NoError(t, err)
	assert.Equal(t, []user{{ID: 42, Name: "Ada"}}, decoded)
}

func TestLoginFailure_OnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("X-BSH-APIKEY"))

		writeEnvelope(t, w, http.StatusUnauthorized, map[string]any{
			"data":   []any{},
			"code":   401,
			"status": "UNAUTHORIZED",
			"error":  "Invalid credentials",
		})
	}))
	defer server.Close()

	engine := bshengine.New(server.URL, bshengine.WithAPIKey("k1"))

	var got *bsh.Error

	env, err := engine.Auth().Login(context.Background(), &bsh.LoginParams{Email: "a@b.c", Password: "bad"},
		bsh.OnError(func(e *bsh.Error) { got = e }))
	require.NoError(t, err)
	assert.Nil(t, env)

	require.NotNil(t, got)
	assert.Equal(t, server.URL+"/api/auth/login", got.Endpoint)
	assert.True(t, bsh.IsUnauthorized(got))
	assert.Equal(t, "UNAUTHORIZED: Invalid credentials (code: 401, endpoint: "+server.URL+"/api/auth/login)", got.Error())
}

func TestCredentialPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       []bshengine.Option
		wantAuth   string
		wantAPIKey string
	}{
		{
			name:       "api key only",
			opts:       []bshengine.Option{bshengine.WithAPIKey("k1")},
			wantAPIKey: "k1",
		},
		{
			name:     "bearer wins over api key",
			opts:     []bshengine.Option{bshengine.WithAPIKey("k1"), bshengine.WithBearerToken("t1")},
			wantAuth: "Bearer t1",
		},
		{
			name: "authenticator wins over both",
			opts: []bshengine.Option{
				bshengine.WithAPIKey("k1"),
				bshengine.WithBearerToken("t1"),
				bshengine.WithAuthenticator(bsh.StaticCredential(bsh.APIKey("k2"))),
			},
			wantAPIKey: "k2",
		},
		{
			name: "no credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantAuth, r.Header.Get("Authorization"))
				assert.Equal(t, tt.wantAPIKey, r.Header.Get("X-BSH-APIKEY"))

				writeEnvelope(t, w, http.StatusOK, map[string]any{"data": []any{}, "code": 200, "status": "OK"})
			}))
			defer server.Close()

			_, err := bshengine.New(server.URL, tt.opts...).Users().Me(context.Background())
			require.NoError(t, err)
		})
	}
}

//nolint:funlen
func TestExpiredTokenRefresh(t *testing.T) {
	t.Parallel()

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	var refreshCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			refreshCalls.Add(1)
			assert.Empty(t, r.Header.Get("Authorization"))

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "refresh-1", body["refresh"])

			writeEnvelope(t, w, http.StatusOK, map[string]any{
				"data":   []any{map[string]any{"access": "access-2", "refresh": "refresh-1"}},
				"code":   200,
				"status": "OK",
			})
		case "/api/users/me":
			assert.Equal(t, "Bearer access-2", r.Header.Get("Authorization"))

			writeEnvelope(t, w, http.StatusOK, map[string]any{
				"data":   []any{map[string]any{"email": "me@example.com"}},
				"code":   200,
				"status": "OK",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	var persisted atomic.Value

	engine := bshengine.New(server.URL,
		bshengine.WithBearerToken(expired),
		bshengine.WithRefresher(bsh.StaticRefresher("ignored")),
		bshengine.WithRefreshToken("refresh-1"),
		bshengine.WithTokenPersister(func(_ context.Context, token string) error {
			persisted.Store(token)
			return nil
		}),
	)

	env, err := engine.Users().Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user.me", env.OperationName)
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, "access-2", persisted.Load())
}

func TestRefreshFailureKeepsToken(t *testing.T) {
	t.Parallel()

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			writeEnvelope(t, w, http.StatusUnauthorized, map[string]any{
				"data": []any{}, "code": 401, "status": "UNAUTHORIZED", "error": "refresh expired",
			})

			return
		}

		assert.Equal(t, "Bearer "+expired, r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusUnauthorized, map[string]any{
			"data": []any{}, "code": 401, "status": "UNAUTHORIZED", "error": "token expired",
		})
	}))
	defer server.Close()

	_, err = bshengine.New(server.URL,
		bshengine.WithBearerToken(expired),
		bshengine.WithRefreshToken("refresh-1"),
	).Users().Me(context.Background())
	require.Error(t, err)
	assert.True(t, bsh.IsUnauthorized(err))
}

func TestEntityExport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/entities/Orders/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		assert.Equal(t, "orders.csv", r.URL.Query().Get("filename"))

		var search map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&search))
		assert.Equal(t, map[string]any{"page": float64(1), "size": float64(50)}, search["pagination"])

		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("id,total\n1,10\n"))
	}))
	defer server.Close()

	orders, err := bshengine.New(server.URL).Entity("Orders")
	require.NoError(t, err)

	data, err := orders.Export(context.Background(), bsh.NewSearch().Page(1, 50),
		&bsh.ExportOptions{Filename: "orders.csv"})
	require.NoError(t, err)
	assert.Equal(t, "id,total\n1,10\n", string(data))
}

func TestImageUpload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/images/upload", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "brand", r.FormValue("namespace"))
		assert.JSONEq(t, `{"width":64}`, r.FormValue("options"))

		file, header, err := r.FormFile("file")
		if assert.NoError(t, err) {
			defer func() { _ = file.Close() }()

			content, _ := io.ReadAll(file)
			assert.Equal(t, "logo.png", header.Filename)
			assert.Equal(t, "png-bytes", string(content))
		}

		writeEnvelope(t, w, http.StatusOK, map[string]any{"data": []any{map[string]any{"url": "/i/1"}}, "code": 200, "status": "OK"})
	}))
	defer server.Close()

	env, err := bshengine.New(server.URL).Images().Upload(context.Background(), &bsh.Upload{
		Filename:  "logo.png",
		Content:   strings.NewReader("png-bytes"),
		Namespace: "brand",
		Options:   map[string]any{"width": 64},
	})
	require.NoError(t, err)
	assert.Equal(t, "image.upload", env.OperationName)
}

func TestInterceptorsAreSharedAndCopied(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acme", r.Header.Get("X-Tenant"))
		writeEnvelope(t, w, http.StatusOK, map[string]any{"data": []any{}, "code": 200, "status": "OK"})
	}))
	defer server.Close()

	engine := bshengine.New(server.URL)
	users := engine.Users()

	// Registered after the client was created.
	engine.AddPreInterceptor(bsh.HeaderInterceptor(map[string]string{"X-Tenant": "acme"}))

	var seen []string

	engine.AddPostInterceptor(func(_ context.Context, env *bsh.Envelope, _ *bsh.Request) *bsh.Envelope {
		seen = append(seen, env.OperationName)
		return nil
	})

	_, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"user.count"}, seen)

	pre := engine.PreInterceptors()
	require.Len(t, pre, 1)

	pre[0] = nil
	assert.NotNil(t, engine.PreInterceptors()[0])
	assert.Len(t, engine.PostInterceptors(), 1)
	assert.Empty(t, engine.ErrorInterceptors())
}

func TestFluentSetters(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	transport := bsh.TransportFunc(func(_ context.Context, req *bsh.Request) (*bsh.RawResponse, error) {
		calls.Add(1)
		assert.Equal(t, "https://engine.test/api/settings", req.Path)
		assert.Equal(t, "Bearer t", req.Headers["Authorization"])

		return bsh.NewRawResponse(200, []byte(`{"data":[{"name":"BshEngine"}],"code":200,"status":"OK"}`)), nil
	})

	engine := bshengine.New("https://engine.test")
	same := engine.
		WithTransport(transport).
		WithAuthenticator(bsh.StaticCredential(bsh.BearerToken("t"))).
		WithRefresher(nil).
		WithLogger(nil)
	assert.Same(t, engine, same)

	env, err := engine.Settings().Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "settings.load", env.OperationName)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCoreEntities(t *testing.T) {
	t.Parallel()

	core := bshengine.New("https://engine.test").Core()
	assert.Equal(t, bsh.EntityBshSchemas, core.Schemas.Name())
	assert.Equal(t, bsh.EntityBshEventLogs, core.EventLogs.Name())

	_, err := bshengine.New("https://engine.test").Entity("")
	require.ErrorIs(t, err, bsh.ErrEntityNameRequired)
}

func TestWithMetrics(t *testing.T) {
	t.Parallel()

	transport := bsh.TransportFunc(func(_ context.Context, req *bsh.Request) (*bsh.RawResponse, error) {
		if strings.HasSuffix(req.Path, "/names") {
			return bsh.NewRawResponse(200, []byte(`{"data":["users"],"code":200,"status":"OK"}`)), nil
		}

		return bsh.NewRawResponse(500, []byte(`{"data":[],"code":500,"status":"ERROR","error":"down"}`)), nil
	})

	metrics := bsh.NewMetrics(prometheus.NewRegistry())
	engine := bshengine.New("https://engine.test", bshengine.WithTransport(transport), bshengine.WithMetrics(metrics))

	_, err := engine.Caching().Names(context.Background())
	require.NoError(t, err)

	_, err = engine.Caching().ClearAll(context.Background())
	require.Error(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Calls().WithLabelValues("caching.names", bsh.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Calls().WithLabelValues("caching.clearAll", bsh.OutcomeError)), 0)
}

func TestUtilsAndMailing(t *testing.T) {
	t.Parallel()

	var paths []string

	transport := bsh.TransportFunc(func(_ context.Context, req *bsh.Request) (*bsh.RawResponse, error) {
		paths = append(paths, req.Method+" "+req.Path)

		return bsh.NewRawResponse(200, []byte(`{"data":[],"code":200,"status":"OK"}`)), nil
	})

	engine := bshengine.New("https://engine.test", bshengine.WithTransport(transport))

	_, err := engine.Utils().TriggerActions(context.Background())
	require.NoError(t, err)

	_, err = engine.Mailing().Send(context.Background(), map[string]any{"to": "a@b.c"})
	require.NoError(t, err)

	_, err = engine.APIKeys().Revoke(context.Background(), 3)
	require.NoError(t, err)

	_, err = engine.Client().Patch(context.Background(), &bsh.Request{Path: "/api/custom"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET https://engine.test/api/utils/triggers/actions",
		"POST https://engine.test/api/mailing/send",
		"DELETE https://engine.test/api/api-keys/3/revoke",
		"PATCH https://engine.test/api/custom",
	}, paths)
}
