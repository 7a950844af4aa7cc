package providers

import (
	"context"
	"emojicounter/internal/structures"
	"errors"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"time"
)

var ErrNoToken = errors.New("discord token not set")

const secretTimeout = 10 * time.Second

// ResolveToken returns the configured bot token, fetching it through fetch
// when a secret name is configured.
func ResolveToken(conf *structures.Config, fetch SecretFetcher) (string, error) {
	if conf.Discord.TokenSecret != "" {
		ctx, cancel := context.WithTimeout(context.Background(), secretTimeout)
		defer cancel()
		token, err := fetch(ctx, conf.Discord.TokenSecret)
		if err != nil {
			return "", fmt.Errorf("unable to fetch discord token: %w", err)
		}
		if token != "" {
			return token, nil
		}
	}
	if conf.Discord.Token == "" {
		return "", ErrNoToken
	}
	return conf.Discord.Token, nil
}

// NewDiscordProvider builds a gateway session with the intents needed to see
// message content and reactions. The session is not opened.
func NewDiscordProvider(conf *structures.Config, logger Logger) (*discordgo.Session, error) {
	token, err := ResolveToken(conf, NewSecretManagerFetcher())
	if err != nil {
		return nil, err
	}

	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentMessageContent

	logger.Infof(TypeBot, "Discord session created")
	return s, nil
}
