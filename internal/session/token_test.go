package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsystem/trackdesk/internal/errs"
	"github.com/tsystem/trackdesk/internal/model"
)

// signToken issues a real HS256 token the way the backend does.
func signToken(t *testing.T, email string, expiresAt time.Time) string {
	t.Helper()
	c := claims{
		UserID:  "u-1",
		Name:    "Ada",
		Surname: "Lovelace",
		Role:    string(model.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: email,
		},
	}
	if !expiresAt.IsZero() {
		c.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestCleanToken_StripsQuotesAndBearer(t *testing.T) {
	token := signToken(t, "ada@example.com", time.Now().Add(time.Hour))

	assert.Equal(t, token, CleanToken(token))
	assert.Equal(t, token, CleanToken(`"`+token+`"`))
	assert.Equal(t, token, CleanToken("Bearer "+token))
	assert.Equal(t, token, CleanToken(`"Bearer `+token+`"`))
	assert.Equal(t, token, CleanToken("  "+token+"  "))
}

func TestCleanToken_RejectsNonTokens(t *testing.T) {
	assert.Empty(t, CleanToken(""))
	assert.Empty(t, CleanToken("null"))
	assert.Empty(t, CleanToken("one.two"))
	assert.Empty(t, CleanToken("has spaces.in.segments"))
	assert.Empty(t, CleanToken("Bearer"))
}

func TestDecodeIdentity_ValidToken(t *testing.T) {
	token := signToken(t, "ada@example.com", time.Now().Add(time.Hour))

	id, err := DecodeIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.Equal(t, "Ada Lovelace", id.FullName())
	assert.Equal(t, model.RoleAdmin, id.Role)
	assert.True(t, id.IsAdmin())
}

func TestDecodeIdentity_NoExpiryIsAccepted(t *testing.T) {
	token := signToken(t, "ada@example.com", time.Time{})

	id, err := DecodeIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", id.Email)
}

func TestDecodeIdentity_ExpiredToken(t *testing.T) {
	token := signToken(t, "ada@example.com", time.Now().Add(-time.Minute))

	id, err := DecodeIdentity(token)
	assert.Nil(t, id)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestDecodeIdentity_Malformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		id, err := DecodeIdentity(raw)
		assert.Nil(t, id, "token %q", raw)
		assert.ErrorIs(t, err, errs.ErrInvalidToken, "token %q", raw)
	}
}

func TestIdentity_IsAdminNilReceiver(t *testing.T) {
	var id *Identity
	assert.False(t, id.IsAdmin())

	user := &Identity{Role: model.RoleUser}
	assert.False(t, user.IsAdmin())
}
