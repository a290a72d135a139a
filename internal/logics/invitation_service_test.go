package logics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listloop-server/internal/models"
	"listloop-server/internal/realtime"
	"listloop-server/pkg/errors"
)

func TestInvitationService(t *testing.T) {
	ctx := context.Background()

	t.Run("invite creates a pending row and notifies the invitee", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		invitee := e.seedUser(t, "invitee")
		list := e.seedList(t, owner.ID, "Shared")

		invitation, err := e.invitations.Invite(ctx, list.ID, owner.ID, invitee.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CollaboratorPending, invitation.Status)

		events := e.broker.events()
		require.Len(t, events, 1)
		assert.Equal(t, realtime.UserChannel(invitee.ID), events[0].Channel)
		assert.Equal(t, realtime.EventInvitationNew, events[0].Name)
	})

	t.Run("only the owner may invite", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		collab := e.seedUser(t, "collab")
		invitee := e.seedUser(t, "invitee")
		list := e.seedList(t, owner.ID, "Shared")
		e.seedCollaborator(t, list.ID, collab.ID, models.CollaboratorAccepted)

		_, err := e.invitations.Invite(ctx, list.ID, collab.ID, invitee.ID)
		assert.Equal(t, errors.ErrUnauthorized, errors.Code(err))
	})

	t.Run("self-invite is invalid", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		list := e.seedList(t, owner.ID, "Shared")

		_, err := e.invitations.Invite(ctx, list.ID, owner.ID, owner.ID)
		assert.Equal(t, errors.ErrInvalidArgument, errors.Code(err))
	})

	t.Run("second invite for the same pair conflicts", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		invitee := e.seedUser(t, "invitee")
		list := e.seedList(t, owner.ID, "Shared")

		_, err := e.invitations.Invite(ctx, list.ID, owner.ID, invitee.ID)
		require.NoError(t, err)
		_, err = e.invitations.Invite(ctx, list.ID, owner.ID, invitee.ID)
		assert.Equal(t, errors.ErrConflict, errors.Code(err))
	})

	t.Run("unknown invitee is not found", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		list := e.seedList(t, owner.ID, "Shared")

		_, err := e.invitations.Invite(ctx, list.ID, owner.ID, "USMISSING0000")
		assert.Equal(t, errors.ErrNotFound, errors.Code(err))
	})

	t.Run("accept is invitee-only and grants access", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		invitee := e.seedUser(t, "invitee")
		interloper := e.seedUser(t, "interloper")
		list := e.seedList(t, owner.ID, "Shared")

		invitation, err := e.invitations.Invite(ctx, list.ID, owner.ID, invitee.ID)
		require.NoError(t, err)

		_, err = e.invitations.Accept(ctx, invitation.ID, interloper.ID)
		assert.Equal(t, errors.ErrNotFound, errors.Code(err))

		accepted, err := e.invitations.Accept(ctx, invitation.ID, invitee.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CollaboratorAccepted, accepted.Status)

		assert.NoError(t, e.access.RequireListAccess(ctx, list.ID, invitee.ID))
	})

	t.Run("second decline is not found", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		invitee := e.seedUser(t, "invitee")
		list := e.seedList(t, owner.ID, "Shared")

		invitation, err := e.invitations.Invite(ctx, list.ID, owner.ID, invitee.ID)
		require.NoError(t, err)

		require.NoError(t, e.invitations.Decline(ctx, invitation.ID, invitee.ID))
		err = e.invitations.Decline(ctx, invitation.ID, invitee.ID)
		assert.Equal(t, errors.ErrNotFound, errors.Code(err))
	})

	t.Run("counts cover pending rows only", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		invitee := e.seedUser(t, "invitee")
		listA := e.seedList(t, owner.ID, "A")
		listB := e.seedList(t, owner.ID, "B")

		invA, err := e.invitations.Invite(ctx, listA.ID, owner.ID, invitee.ID)
		require.NoError(t, err)
		_, err = e.invitations.Invite(ctx, listB.ID, owner.ID, invitee.ID)
		require.NoError(t, err)

		count, err := e.invitations.CountInvitations(ctx, invitee.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)

		_, err = e.invitations.Accept(ctx, invA.ID, invitee.ID)
		require.NoError(t, err)

		count, err = e.invitations.CountInvitations(ctx, invitee.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("collaborators excludes the caller", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		collab := e.seedUser(t, "collab")
		list := e.seedList(t, owner.ID, "Shared")
		e.seedCollaborator(t, list.ID, collab.ID, models.CollaboratorAccepted)

		fromOwner, err := e.invitations.GetCollaborators(ctx, list.ID, owner.ID)
		require.NoError(t, err)
		require.Len(t, fromOwner, 1)
		assert.Equal(t, collab.ID, fromOwner[0].ID)

		fromCollab, err := e.invitations.GetCollaborators(ctx, list.ID, collab.ID)
		require.NoError(t, err)
		require.Len(t, fromCollab, 1)
		assert.Equal(t, owner.ID, fromCollab[0].ID)
	})
}
