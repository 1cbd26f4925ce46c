package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/docforge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/platform/apierr"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.auth.Register(ctx, "  Ada@Example.com ", "correct-horse", "Ada Lovelace")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", u.Email)
	require.NotEqual(t, "correct-horse", u.PasswordHash)

	_, err = f.auth.Register(ctx, "ada@example.com", "another-pass", "")
	requireCode(t, err, apierr.CodeConflict)

	token, got, err := f.auth.Login(ctx, "ADA@example.com", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	userID, err := f.auth.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, userID)

	_, _, err = f.auth.Login(ctx, "ada@example.com", "wrong-pass")
	requireCode(t, err, apierr.CodeUnauthorized)
	_, _, err = f.auth.Login(ctx, "nobody@example.com", "correct-horse")
	requireCode(t, err, apierr.CodeUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "not-an-email", "long-enough", "")
	requireCode(t, err, apierr.CodeValidation)
	_, err = f.auth.Register(ctx, "a@example.com", "short", "")
	requireCode(t, err, apierr.CodeValidation)
	require.Zero(t, countRows(t, f.db, &types.User{}))
}

func TestLongPasswordsCompareOnFirst72Bytes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	long := strings.Repeat("p", 80)

	_, err := f.auth.Register(ctx, "a@example.com", long, "")
	require.NoError(t, err)
	_, _, err = f.auth.Login(ctx, "a@example.com", strings.Repeat("p", 72)+"different")
	require.NoError(t, err)
}

func TestParseTokenRejectsForeignSignatures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Register(ctx, "a@example.com", "long-enough", "")
	require.NoError(t, err)
	token, _, err := f.auth.Login(ctx, "a@example.com", "long-enough")
	require.NoError(t, err)

	other := NewAuthService(f.db, testutil.Logger(t), nil, "other-secret", f.auth.AccessTTL())
	id, err := other.ParseToken(token)
	requireCode(t, err, apierr.CodeUnauthorized)
	require.Equal(t, uuid.Nil, id)

	_, err = f.auth.ParseToken("garbage")
	requireCode(t, err, apierr.CodeUnauthorized)
}
