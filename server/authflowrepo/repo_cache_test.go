package authflowrepo_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/jrsteele09/gcn-portal/server/authflowrepo"
	"github.com/stretchr/testify/require"
)

func TestCacheRepo(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		repo := authflowrepo.NewCacheRepo(time.Minute)
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		require.NoError(t, repo.Upsert("state-1", &authflowrepo.AuthFlowState{
			CodeVerifier: "verifier",
			Nonce:        "nonce",
			ReturnURL:    "/user",
			CreatedAt:    created,
		}))

		got, err := repo.Get("state-1")
		require.NoError(t, err)
		require.Equal(t, "verifier", got.CodeVerifier)
		require.Equal(t, "nonce", got.Nonce)
		require.Equal(t, "/user", got.ReturnURL)
		require.Equal(t, created, got.CreatedAt)
	})

	t.Run("returned state is a copy", func(t *testing.T) {
		repo := authflowrepo.NewCacheRepo(time.Minute)
		original := &authflowrepo.AuthFlowState{ReturnURL: "/"}
		require.NoError(t, repo.Upsert("state", original))
		original.ReturnURL = "/changed"

		got, err := repo.Get("state")
		require.NoError(t, err)
		require.Equal(t, "/", got.ReturnURL)

		got.ReturnURL = "/mutated"
		again, err := repo.Get("state")
		require.NoError(t, err)
		require.Equal(t, "/", again.ReturnURL)
	})

	t.Run("delete", func(t *testing.T) {
		repo := authflowrepo.NewCacheRepo(time.Minute)
		require.NoError(t, repo.Upsert("state", &authflowrepo.AuthFlowState{}))
		require.NoError(t, repo.Delete("state"))

		_, err := repo.Get("state")
		require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("expired", func(t *testing.T) {
		repo := authflowrepo.NewCacheRepo(10 * time.Millisecond)
		require.NoError(t, repo.Upsert("state", &authflowrepo.AuthFlowState{}))
		time.Sleep(30 * time.Millisecond)

		_, err := repo.Get("state")
		require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("empty state", func(t *testing.T) {
		repo := authflowrepo.NewCacheRepo(time.Minute)
		require.Error(t, repo.Upsert("", &authflowrepo.AuthFlowState{}))
		require.Error(t, repo.Upsert("state", nil))
		_, err := repo.Get("")
		require.Error(t, err)
		require.Error(t, repo.Delete(""))
	})
}
