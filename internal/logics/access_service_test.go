package logics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"listloop-server/internal/models"
	"listloop-server/pkg/errors"
)

func TestAccessService(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.seedUser(t, "owner")
	accepted := e.seedUser(t, "accepted")
	pending := e.seedUser(t, "pending")
	stranger := e.seedUser(t, "stranger")
	list := e.seedList(t, owner.ID, "Shared List")
	e.seedCollaborator(t, list.ID, accepted.ID, models.CollaboratorAccepted)
	e.seedCollaborator(t, list.ID, pending.ID, models.CollaboratorPending)

	t.Run("owner has access", func(t *testing.T) {
		assert.NoError(t, e.access.RequireListAccess(ctx, list.ID, owner.ID))
	})

	t.Run("accepted collaborator has access", func(t *testing.T) {
		assert.NoError(t, e.access.RequireListAccess(ctx, list.ID, accepted.ID))
	})

	t.Run("pending collaborator is forbidden", func(t *testing.T) {
		err := e.access.RequireListAccess(ctx, list.ID, pending.ID)
		assert.Equal(t, errors.ErrUnauthorized, errors.Code(err))
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		err := e.access.RequireListAccess(ctx, list.ID, stranger.ID)
		assert.Equal(t, errors.ErrUnauthorized, errors.Code(err))
	})

	t.Run("missing list is not found", func(t *testing.T) {
		err := e.access.RequireListAccess(ctx, "TLMISSING0000", owner.ID)
		assert.Equal(t, errors.ErrNotFound, errors.Code(err))
	})

	t.Run("owner check rejects accepted collaborator", func(t *testing.T) {
		err := e.access.RequireListOwner(ctx, list.ID, accepted.ID)
		assert.Equal(t, errors.ErrUnauthorized, errors.Code(err))
	})

	t.Run("boolean check mirrors the policy", func(t *testing.T) {
		ok, err := e.access.HasListAccess(ctx, list.ID, accepted.ID)
		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = e.access.HasListAccess(ctx, list.ID, pending.ID)
		assert.NoError(t, err)
		assert.False(t, ok)

		ok, err = e.access.HasListAccess(ctx, "TLMISSING0000", owner.ID)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
