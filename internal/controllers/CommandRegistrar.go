package controllers

import (
	"emojicounter/internal/providers"
	"emojicounter/internal/structures"
	"errors"
	"github.com/bwmarrin/discordgo"
)

// commandSession is the part of *discordgo.Session used to manage slash
// commands.
type commandSession interface {
	ApplicationCommandCreate(appID string, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

var ErrNoAppID = errors.New("discord.appId is required to manage commands")

type CommandRegistrar struct {
	session commandSession
	logger  providers.Logger
	appID   string
	guildID string
}

func NewCommandRegistrar(session *discordgo.Session, conf *structures.Config, logger providers.Logger) *CommandRegistrar {
	return &CommandRegistrar{
		session: session,
		logger:  logger,
		appID:   conf.Discord.AppID,
		guildID: conf.Discord.GuildID,
	}
}

// Register creates the bot's slash commands, globally when no guild is
// configured.
func (cr *CommandRegistrar) Register() error {
	if cr.appID == "" {
		return ErrNoAppID
	}
	cr.logger.Infof(providers.TypeBot, "Registering commands...")

	for _, c := range []*discordgo.ApplicationCommand{EmojiStatsCommand} {
		cmd, err := cr.session.ApplicationCommandCreate(cr.appID, cr.guildID, c)
		if err != nil {
			return err
		}
		scope := "globally"
		if cmd.GuildID != "" {
			scope = "to " + cmd.GuildID
		}
		cr.logger.Infof(providers.TypeBot, "Added %s (%s) %s", cmd.Name, cmd.ID, scope)
	}

	cr.logger.Infof(providers.TypeBot, "Done registering commands!")
	return nil
}

// Cleanup deletes every command previously registered in the configured scope.
func (cr *CommandRegistrar) Cleanup() error {
	if cr.appID == "" {
		return ErrNoAppID
	}
	cr.logger.Infof(providers.TypeBot, "Cleaning up commands...")

	cmds, err := cr.session.ApplicationCommands(cr.appID, cr.guildID)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		if err := cr.session.ApplicationCommandDelete(cmd.ApplicationID, cmd.GuildID, cmd.ID); err != nil {
			return err
		}
		cr.logger.Infof(providers.TypeBot, "Deleted %s (%s)", cmd.Name, cmd.ID)
	}

	cr.logger.Infof(providers.TypeBot, "Done cleaning up commands!")
	return nil
}
