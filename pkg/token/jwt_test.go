package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "access-secret-with-at-least-32-bytes!!"
	testRefreshSecret = "refresh-secret-with-at-least-32-bytes!"
	testAccessExpiry  = 15 * time.Minute
	testRefreshExpiry = 240 * time.Hour
	testUserID        = "6f1c2a8e-9d3b-4c1e-8a7f-2b5d9e0c1a34"
)

func newTestService() *jwtService {
	return NewJWTService(testAccessSecret, testRefreshSecret, testAccessExpiry, testRefreshExpiry).(*jwtService)
}

func TestNewJWTService(t *testing.T) {
	s := NewJWTService(testAccessSecret, testRefreshSecret, testAccessExpiry, testRefreshExpiry)
	require.NotNil(t, s)

	assert.Equal(t, testAccessExpiry, s.AccessExpiry())
	assert.Equal(t, testRefreshExpiry, s.RefreshExpiry())
}

func TestAccessToken_Roundtrip(t *testing.T) {
	s := newTestService()

	token, err := s.IssueAccessToken(testUserID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := s.Verify(token, KindAccess)
	require.NoError(t, err)
	assert.Equal(t, testUserID, got)
}

func TestRefreshToken_Roundtrip(t *testing.T) {
	s := newTestService()

	token, err := s.IssueRefreshToken(testUserID)
	require.NoError(t, err)

	got, err := s.Verify(token, KindRefresh)
	require.NoError(t, err)
	assert.Equal(t, testUserID, got)
}

func TestIssue_UniquePerCall(t *testing.T) {
	s := newTestService()

	first, err := s.IssueRefreshToken(testUserID)
	require.NoError(t, err)
	second, err := s.IssueRefreshToken(testUserID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify_KindMismatch(t *testing.T) {
	s := newTestService()

	access, err := s.IssueAccessToken(testUserID)
	require.NoError(t, err)
	refresh, err := s.IssueRefreshToken(testUserID)
	require.NoError(t, err)

	_, err = s.Verify(access, KindRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify(refresh, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	s := newTestService()
	issuedAt := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issuedAt }

	token, err := s.IssueAccessToken(testUserID)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(token, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	s := newTestService()
	other := NewJWTService("another-access-secret-of-32-bytes!!!!", testRefreshSecret, testAccessExpiry, testRefreshExpiry)

	token, err := other.IssueAccessToken(testUserID)
	require.NoError(t, err)

	_, err = s.Verify(token, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	s := newTestService()

	tests := []string{"", "invalid-token", "a.b.c"}
	for _, tok := range tests {
		_, err := s.Verify(tok, KindAccess)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	s := newTestService()

	claims := Claims{
		UserID:    testUserID,
		TokenType: KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(unsigned, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingUserID(t *testing.T) {
	s := newTestService()

	token, err := s.IssueAccessToken("")
	require.NoError(t, err)

	_, err = s.Verify(token, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
