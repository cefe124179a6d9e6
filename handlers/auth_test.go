package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthResponseOmitsAccountOnFailure(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(AuthResponse{
		Success: false,
		Error:   "Invalid username and password combination",
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.NotContains(t, decoded, "account")
	assert.NotContains(t, decoded, "token")
	assert.NotContains(t, decoded, "message")
}

func TestAuthResponseCarriesAccountOnSuccess(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(AuthResponse{
		Success: true,
		Token:   "abc",
		Account: &AccountInfo{ID: 3, Username: "teamA"},
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Contains(t, decoded, "account")

	account := decoded["account"].(map[string]interface{})
	assert.Equal(t, "teamA", account["username"])
}
