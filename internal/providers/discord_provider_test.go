package providers

import (
	"context"
	"emojicounter/internal/structures"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticFetcher(token string, err error) (SecretFetcher, *[]string) {
	var asked []string
	return func(_ context.Context, name string) (string, error) {
		asked = append(asked, name)
		return token, err
	}, &asked
}

func TestResolveToken_PlainToken(t *testing.T) {
	conf := &structures.Config{Discord: structures.DiscordConfig{Token: "abc"}}
	fetch, asked := staticFetcher("unused", nil)

	token, err := ResolveToken(conf, fetch)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	assert.Empty(t, *asked)
}

func TestResolveToken_SecretWins(t *testing.T) {
	conf := &structures.Config{Discord: structures.DiscordConfig{Token: "abc", TokenSecret: "discord-token"}}
	fetch, asked := staticFetcher("from-secret", nil)

	token, err := ResolveToken(conf, fetch)
	require.NoError(t, err)
	assert.Equal(t, "from-secret", token)
	assert.Equal(t, []string{"discord-token"}, *asked)
}

func TestResolveToken_EmptySecretFallsBack(t *testing.T) {
	conf := &structures.Config{Discord: structures.DiscordConfig{Token: "abc", TokenSecret: "discord-token"}}
	fetch, _ := staticFetcher("", nil)

	token, err := ResolveToken(conf, fetch)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestResolveToken_FetchError(t *testing.T) {
	conf := &structures.Config{Discord: structures.DiscordConfig{TokenSecret: "discord-token"}}
	fetch, _ := staticFetcher("", ErrNoProject)

	_, err := ResolveToken(conf, fetch)
	assert.ErrorIs(t, err, ErrNoProject)
}

func TestResolveToken_Missing(t *testing.T) {
	fetch, _ := staticFetcher("", nil)

	_, err := ResolveToken(&structures.Config{}, fetch)
	assert.True(t, errors.Is(err, ErrNoToken))
}

func TestSecretManagerFetcher_NoProject(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")

	_, err := NewSecretManagerFetcher()(context.Background(), "discord-token")
	assert.ErrorIs(t, err, ErrNoProject)
}
