package services

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinivault/clinivault/internal/cryptox"
	"github.com/clinivault/clinivault/internal/logging"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ---- fake API client ----

// fakeAPI implements api.Client for unit tests. Request helpers delegate to
// function fields; credential operations record their forwarded arguments.
type fakeAPI struct {
	GetFn    func(path string, out any) error
	PostFn   func(path string, body, out any) error
	PutFn    func(path string, body, out any) error
	DeleteFn func(path string) error

	TokenRet   string
	UserKeyRet string
	AuthRet    bool

	LastSetToken       string
	LastSetAuthToken   string
	LastSetAuthKey     string
	LastSetAuthPersist bool
	SetAuthErr         error
	ClearCalled        bool
}

func (f *fakeAPI) SetToken(_ context.Context, token string) error {
	f.LastSetToken = token
	return nil
}

func (f *fakeAPI) SetUserKey(_ context.Context, key string, persist bool) error {
	return nil
}

func (f *fakeAPI) SetAuth(_ context.Context, token, key string, persist bool) error {
	f.LastSetAuthToken = token
	f.LastSetAuthKey = key
	f.LastSetAuthPersist = persist
	return f.SetAuthErr
}

func (f *fakeAPI) ClearAuth(_ context.Context) error {
	f.ClearCalled = true
	return nil
}

func (f *fakeAPI) IsAuthenticated(_ context.Context) (bool, error) { return f.AuthRet, nil }
func (f *fakeAPI) Token(_ context.Context) (string, error)         { return f.TokenRet, nil }
func (f *fakeAPI) UserKey(_ context.Context) (string, error)       { return f.UserKeyRet, nil }

func (f *fakeAPI) Get(_ context.Context, path string, out any) error {
	return f.GetFn(path, out)
}

func (f *fakeAPI) Post(_ context.Context, path string, body, out any) error {
	return f.PostFn(path, body, out)
}

func (f *fakeAPI) Put(_ context.Context, path string, body, out any) error {
	return f.PutFn(path, body, out)
}

func (f *fakeAPI) Delete(_ context.Context, path string) error {
	return f.DeleteFn(path)
}

// ---- tests ----

func TestRegister(t *testing.T) {
	var gotPath string
	var gotBody registerRequest

	f := &fakeAPI{
		PostFn: func(path string, body, out any) error {
			gotPath = path
			gotBody = body.(registerRequest)
			return nil
		},
	}
	svc := NewAuthService(f, testLogger())

	require.NoError(t, svc.Register(context.Background(), "alice@example.org", []byte("secret")))

	assert.Equal(t, "/api/v1/auth/register", gotPath)
	assert.Equal(t, "alice@example.org", gotBody.Email)
	assert.Equal(t, "secret", gotBody.Password)
}

func TestLogin_StoresTokenAndDerivedKey(t *testing.T) {
	salt := []byte("0123456789abcdef0123456789abcdef")
	passphrase := []byte("correct horse")

	f := &fakeAPI{
		PostFn: func(path string, body, out any) error {
			require.Equal(t, "/api/v1/auth/login", path)
			resp := out.(*loginResponse)
			resp.AccessToken = "T1"
			resp.KeySalt = base64.StdEncoding.EncodeToString(salt)
			return nil
		},
	}
	svc := NewAuthService(f, testLogger())

	require.NoError(t, svc.Login(context.Background(), "alice@example.org", passphrase, true))

	assert.Equal(t, "T1", f.LastSetAuthToken)
	assert.True(t, f.LastSetAuthPersist)

	wantKey := cryptox.EncodeKey(cryptox.DeriveUserKey([]byte("correct horse"), salt))
	assert.Equal(t, wantKey, f.LastSetAuthKey, "key must be derived from (passphrase, salt)")
}

func TestLogin_RespectsDurabilityChoice(t *testing.T) {
	f := &fakeAPI{
		PostFn: func(path string, body, out any) error {
			resp := out.(*loginResponse)
			resp.AccessToken = "T1"
			resp.KeySalt = base64.StdEncoding.EncodeToString(make([]byte, 16))
			return nil
		},
	}
	svc := NewAuthService(f, testLogger())

	require.NoError(t, svc.Login(context.Background(), "a@b.c", []byte("p"), false))
	assert.False(t, f.LastSetAuthPersist)
}

func TestLogin_BadSalt(t *testing.T) {
	f := &fakeAPI{
		PostFn: func(path string, body, out any) error {
			resp := out.(*loginResponse)
			resp.AccessToken = "T1"
			resp.KeySalt = "%%% not base64 %%%"
			return nil
		},
	}
	svc := NewAuthService(f, testLogger())

	err := svc.Login(context.Background(), "a@b.c", []byte("p"), true)
	require.Error(t, err)
	assert.Empty(t, f.LastSetAuthToken, "no credentials may be stored on failure")
}

func TestRefresh_ReplacesOnlyToken(t *testing.T) {
	f := &fakeAPI{
		PostFn: func(path string, body, out any) error {
			require.Equal(t, "/api/v1/auth/refresh", path)
			out.(*refreshResponse).AccessToken = "T2"
			return nil
		},
	}
	svc := NewAuthService(f, testLogger())

	require.NoError(t, svc.Refresh(context.Background()))

	assert.Equal(t, "T2", f.LastSetToken)
	assert.Empty(t, f.LastSetAuthKey, "refresh must never touch the key")
}

func TestLogout(t *testing.T) {
	f := &fakeAPI{}
	svc := NewAuthService(f, testLogger())

	require.NoError(t, svc.Logout(context.Background()))
	assert.True(t, f.ClearCalled)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)

	got, err := tokenExpiry(signedToken(t, exp))
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))
}

func TestTokenExpiry_OpaqueToken(t *testing.T) {
	_, err := tokenExpiry("not-a-jwt")
	assert.Error(t, err)
}

func TestStartRefreshWatcher_RefreshesNearExpiry(t *testing.T) {
	refreshed := make(chan struct{}, 1)

	f := &fakeAPI{
		TokenRet: signedToken(t, time.Now().Add(time.Second)),
		PostFn: func(path string, body, out any) error {
			out.(*refreshResponse).AccessToken = "T2"
			select {
			case refreshed <- struct{}{}:
			default:
			}
			return nil
		},
	}
	svc := NewAuthService(f, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.StartRefreshWatcher(ctx, 10*time.Millisecond, time.Hour)

	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not refresh a token close to expiry")
	}
}

func TestStartRefreshWatcher_LeavesFreshTokenAlone(t *testing.T) {
	var posted bool

	f := &fakeAPI{
		TokenRet: signedToken(t, time.Now().Add(24*time.Hour)),
		PostFn: func(path string, body, out any) error {
			posted = true
			return nil
		},
	}
	svc := NewAuthService(f, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	svc.StartRefreshWatcher(ctx, 10*time.Millisecond, time.Minute)

	assert.False(t, posted)
}
