package session

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsystem/trackdesk/pkg/logger"
)

type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Login(ctx context.Context, login, password string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func newTestStore(t *testing.T, auth Authenticator) (*Store, TokenStore) {
	t.Helper()
	creds := NewMemoryStore()
	return NewStore(auth, creds, logger.NewWriter(io.Discard, "error")), creds
}

func TestStore_LoginPersistsAndPublishes(t *testing.T) {
	token := signToken(t, "ada@example.com", time.Now().Add(time.Hour))
	store, creds := newTestStore(t, &fakeAuth{token: token})

	stream, cancel := store.Subscribe()
	defer cancel()

	id, err := store.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.Equal(t, token, store.Token())
	assert.Equal(t, id, store.Current())

	persisted, err := creds.Read()
	require.NoError(t, err)
	assert.Equal(t, token, persisted)

	select {
	case got := <-stream:
		assert.Equal(t, "ada@example.com", got.Email)
	default:
		t.Fatal("no identity published on login")
	}
}

func TestStore_LoginNormalizesQuotedToken(t *testing.T) {
	token := signToken(t, "ada@example.com", time.Now().Add(time.Hour))
	store, _ := newTestStore(t, &fakeAuth{token: `"Bearer ` + token + `"`})

	_, err := store.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, token, store.Token())
}

func TestStore_LoginFailureLeavesNoSession(t *testing.T) {
	boom := errors.New("Invalid credentials")
	store, creds := newTestStore(t, &fakeAuth{err: boom})

	id, err := store.Login(context.Background(), "ada@example.com", "wrong")
	assert.Nil(t, id)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.Token())
	assert.Nil(t, store.Current())

	persisted, err := creds.Read()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestStore_LoginFailureKeepsPriorSession(t *testing.T) {
	token := signToken(t, "ada@example.com", time.Now().Add(time.Hour))
	auth := &fakeAuth{token: token}
	store, creds := newTestStore(t, auth)

	_, err := store.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	auth.err = errors.New("Invalid credentials")
	id, err := store.Login(context.Background(), "bob@example.com", "wrong")
	assert.Nil(t, id)
	require.Error(t, err)

	assert.Equal(t, token, store.Token(), "failed login must not drop the active session")
	require.NotNil(t, store.Current())
	assert.Equal(t, "ada@example.com", store.Current().Email)

	persisted, err := creds.Read()
	require.NoError(t, err)
	assert.Equal(t, token, persisted)
}

func TestStore_LoginSupersedesPriorSession(t *testing.T) {
	first := signToken(t, "ada@example.com", time.Now().Add(time.Hour))
	auth := &fakeAuth{token: first}
	store, _ := newTestStore(t, auth)

	_, err := store.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	second := signToken(t, "bob@example.com", time.Now().Add(time.Hour))
	auth.token = second
	id, err := store.Login(context.Background(), "bob@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", id.Email)
	assert.Equal(t, second, store.Token())
}

func TestStore_LoginRejectsUndecodableToken(t *testing.T) {
	store, _ := newTestStore(t, &fakeAuth{token: "not-a-token"})

	id, err := store.Login(context.Background(), "ada@example.com", "secret")
	assert.Nil(t, id)
	assert.Error(t, err)
	assert.Empty(t, store.Token())
}

func TestStore_LogoutIsLocalOnly(t *testing.T) {
	token := signToken(t, "ada@example.com", time.Now().Add(time.Hour))
	auth := &fakeAuth{token: token}
	store, creds := newTestStore(t, auth)

	_, err := store.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	stream, cancel := store.Subscribe()
	defer cancel()

	calls := auth.calls
	store.Logout()

	assert.Equal(t, calls, auth.calls, "logout must not call the server")
	assert.Empty(t, store.Token())
	assert.Nil(t, store.Current())

	persisted, err := creds.Read()
	require.NoError(t, err)
	assert.Empty(t, persisted)

	select {
	case got := <-stream:
		assert.Nil(t, got)
	default:
		t.Fatal("no identity published on logout")
	}
}

func TestStore_RestoreValidToken(t *testing.T) {
	token := signToken(t, "ada@example.com", time.Now().Add(time.Hour))
	store, creds := newTestStore(t, &fakeAuth{})
	require.NoError(t, creds.Write(token))

	id := store.Restore()
	require.NotNil(t, id)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.Equal(t, token, store.Token())
}

func TestStore_RestoreExpiredToken(t *testing.T) {
	token := signToken(t, "ada@example.com", time.Now().Add(-time.Hour))
	store, creds := newTestStore(t, &fakeAuth{})
	require.NoError(t, creds.Write(token))

	assert.Nil(t, store.Restore())
	assert.Empty(t, store.Token())
}

func TestStore_RestoreEmptyStore(t *testing.T) {
	store, _ := newTestStore(t, &fakeAuth{})
	assert.Nil(t, store.Restore())
}

func TestStore_SubscribeCancelClosesStream(t *testing.T) {
	store, _ := newTestStore(t, &fakeAuth{})
	stream, cancel := store.Subscribe()
	cancel()
	_, open := <-stream
	assert.False(t, open)
	// Second cancel is a no-op.
	cancel()
}
