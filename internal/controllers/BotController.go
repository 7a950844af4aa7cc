package controllers

import (
	"emojicounter/internal/models"
	"emojicounter/internal/providers"
	"emojicounter/internal/services"
	"errors"
	"github.com/bwmarrin/discordgo"
	"github.com/bwmarrin/snowflake"
)

const (
	commandEmojiStats = "emojistats"
	optionRange       = "range"
)

var (
	ErrUnknownGuild = errors.New("event has no guild")

	EmojiStatsCommand = &discordgo.ApplicationCommand{
		Name:        commandEmojiStats,
		Description: "サーバ絵文字の使用回数を表示します",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionRange,
				Description: "順位の範囲．例：1-10．指定しなければ全て表示",
				Required:    false,
			},
		},
	}
)

// interactionResponder is the part of *discordgo.Session used to answer
// slash commands.
type interactionResponder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type BotController struct {
	logger  providers.Logger
	service services.EmojiServiceInterface
}

func NewBotController(logger providers.Logger, service services.EmojiServiceInterface) *BotController {
	return &BotController{
		logger:  logger,
		service: service,
	}
}

func parseGuildID(id string) (models.GuildID, error) {
	if id == "" {
		return 0, ErrUnknownGuild
	}
	sf, err := snowflake.ParseString(id)
	if err != nil {
		return 0, err
	}
	return models.GuildID(sf.Int64()), nil
}

func selfID(s *discordgo.Session) string {
	if s == nil || s.State == nil || s.State.User == nil {
		return ""
	}
	return s.State.User.ID
}

// Register attaches the gateway handlers to s.
func (bc *BotController) Register(s *discordgo.Session) {
	s.AddHandler(bc.onMessageCreate)
	s.AddHandler(bc.onReactionAdd)
	s.AddHandler(bc.onReactionRemove)
	s.AddHandler(bc.onInteractionCreate)
}

func (bc *BotController) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	bc.HandleMessage(selfID(s), m.Message)
}

func (bc *BotController) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	bc.HandleReaction(selfID(s), r.MessageReaction, 1)
}

func (bc *BotController) onReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	bc.HandleReaction(selfID(s), r.MessageReaction, -1)
}

func (bc *BotController) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name != commandEmojiStats {
		return
	}
	if err := bc.HandleEmojiStats(s, i.Interaction); err != nil {
		bc.logger.Errorf(providers.TypeBot, "failed to respond to interaction: %s", err)
	}
}

// HandleMessage counts the custom emoji in a posted message. Messages by
// the bot itself and messages outside a guild are ignored.
func (bc *BotController) HandleMessage(self string, m *discordgo.Message) {
	if m == nil {
		return
	}
	if m.Author != nil && self != "" && m.Author.ID == self {
		return
	}
	guildID, err := parseGuildID(m.GuildID)
	if err != nil {
		bc.logger.Infof(providers.TypeBot, "Message %s dropped, guild unknown: %s", m.ID, err)
		return
	}
	bc.logger.Debugf(providers.TypeBot, "Processing message %s @guild_id=%d", m.ID, guildID)
	bc.service.RecordMessage(guildID, m.Content)
}

// HandleReaction applies delta to the reacted emoji.
func (bc *BotController) HandleReaction(self string, r *discordgo.MessageReaction, delta int64) {
	if r == nil {
		return
	}
	if self != "" && r.UserID == self {
		return
	}
	guildID, err := parseGuildID(r.GuildID)
	if err != nil {
		bc.logger.Infof(providers.TypeBot, "Reaction on %s dropped, guild unknown: %s", r.MessageID, err)
		return
	}
	token := r.Emoji.MessageFormat()
	if token == "" {
		return
	}
	bc.service.RecordReaction(guildID, token, delta)
}

// StatsReply builds the text answering the ranking command.
func (bc *BotController) StatsReply(guild string, rangeOpt string) string {
	guildID, err := parseGuildID(guild)
	if err != nil {
		bc.logger.Errorf(providers.TypeBot, msgUnknownGuild)
		return msgUnknownGuild
	}

	r := models.ParseRankRange(rangeOpt)
	entries, ok := bc.service.RankRange(guildID, r)
	if !ok {
		return msgNoData
	}
	return FormatRanking(entries)
}

func commandRange(data discordgo.ApplicationCommandInteractionData) string {
	for _, o := range data.Options {
		if o.Name == optionRange {
			return o.StringValue()
		}
	}
	return ""
}

// HandleEmojiStats answers the ranking command, spreading long rankings over
// follow-up messages.
func (bc *BotController) HandleEmojiStats(s interactionResponder, i *discordgo.Interaction) error {
	reply := bc.StatsReply(i.GuildID, commandRange(i.ApplicationCommandData()))
	chunks := SplitMessage(reply, maxDiscordMessage)

	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: chunks[0]},
	})
	if err != nil {
		return err
	}
	for _, c := range chunks[1:] {
		if _, err := s.FollowupMessageCreate(i, false, &discordgo.WebhookParams{Content: c}); err != nil {
			return err
		}
	}
	return nil
}
