package realtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"listloop-server/internal/realtime"
)

func TestChannelGrant(t *testing.T) {
	const secret = "channel-secret"

	t.Run("grant verifies for its own socket and channel", func(t *testing.T) {
		grant := realtime.SignChannelGrant(secret, "sock-1", "list:TL0A1B2C3D4E5")
		assert.True(t, realtime.VerifyChannelGrant(secret, "sock-1", "list:TL0A1B2C3D4E5", grant))
	})

	t.Run("grant is bound to the socket", func(t *testing.T) {
		grant := realtime.SignChannelGrant(secret, "sock-1", "list:TL0A1B2C3D4E5")
		assert.False(t, realtime.VerifyChannelGrant(secret, "sock-2", "list:TL0A1B2C3D4E5", grant))
	})

	t.Run("grant is bound to the channel", func(t *testing.T) {
		grant := realtime.SignChannelGrant(secret, "sock-1", "list:TL0A1B2C3D4E5")
		assert.False(t, realtime.VerifyChannelGrant(secret, "sock-1", "user:US0A1B2C3D4E5", grant))
	})

	t.Run("grant is bound to the secret", func(t *testing.T) {
		grant := realtime.SignChannelGrant("other", "sock-1", "list:TL0A1B2C3D4E5")
		assert.False(t, realtime.VerifyChannelGrant(secret, "sock-1", "list:TL0A1B2C3D4E5", grant))
	})
}

func TestChannelNames(t *testing.T) {
	assert.Equal(t, "list:TL0A1B2C3D4E5", realtime.ListChannel("TL0A1B2C3D4E5"))
	assert.Equal(t, "user:US0A1B2C3D4E5", realtime.UserChannel("US0A1B2C3D4E5"))
}
