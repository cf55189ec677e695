package tenant

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeToken(claims string) string {
	return base64.StdEncoding.EncodeToString([]byte(claims))
}

func TestDecode(t *testing.T) {
	decoder := NewTokenDecoder()

	t.Run("valid token", func(t *testing.T) {
		token := encodeToken("8/9/2025 7:43:53 PM&1&CEDEMONEW0314&8/8/2025 7:43:53 PM&cedemo")
		tc, ok := decoder.Decode(token)
		require.True(t, ok)
		assert.Equal(t, "CEDEMONEW0314", tc.DatabaseName)
		assert.Equal(t, "1", tc.LoginMasterID)
		assert.Equal(t, "cedemo", tc.OrgID)
	})

	t.Run("empty token", func(t *testing.T) {
		_, ok := decoder.Decode("")
		assert.False(t, ok)

		_, ok = decoder.Decode("   ")
		assert.False(t, ok)
	})

	t.Run("not base64", func(t *testing.T) {
		_, ok := decoder.Decode("!!! not base64 !!!")
		assert.False(t, ok)
	})

	t.Run("wrong claim count", func(t *testing.T) {
		_, ok := decoder.Decode(encodeToken("only&three&claims"))
		assert.False(t, ok)
	})

	t.Run("empty database claim", func(t *testing.T) {
		_, ok := decoder.Decode(encodeToken("issued&1& &expires&org"))
		assert.False(t, ok)
	})
}
