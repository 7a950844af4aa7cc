package services

import (
	"emojicounter/internal/models"
	"emojicounter/internal/providers"
	"github.com/puzpuzpuz/xsync"
	"sort"
	"sync"
	"time"
)

const (
	EventMessage        = "message"
	EventReactionAdd    = "reaction_add"
	EventReactionRemove = "reaction_remove"
)

// SnapshotWriter persists the full state of one guild.
type SnapshotWriter interface {
	Save(guildID models.GuildID, entries []models.Entry) error
}

type EmojiServiceInterface interface {
	Ensure(guildID models.GuildID) bool
	RecordMessage(guildID models.GuildID, text string) int
	RecordReaction(guildID models.GuildID, emoji string, delta int64) int64
	RankRange(guildID models.GuildID, r models.RankRange) ([]models.Entry, bool)
	Has(guildID models.GuildID) bool
	Guilds() []models.GuildID
	GuildCount() int
	PutGuild(guildID models.GuildID, counter *models.Counter)
	Snapshot(guildID models.GuildID) ([]models.Entry, bool)
	Flush(guildID models.GuildID) error
}

type guildState struct {
	mu      sync.Mutex
	counter *models.Counter
}

// EmojiService owns every guild's counter. Mutations of one guild and the
// snapshot write that follows them happen under that guild's lock.
type EmojiService struct {
	guilds  *xsync.MapOf[models.GuildID, *guildState]
	writer  SnapshotWriter
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewEmojiService(writer SnapshotWriter, logger providers.Logger, metrics providers.MetricsProviderInterface) *EmojiService {
	return &EmojiService{
		guilds:  xsync.NewIntegerMapOf[models.GuildID, *guildState](),
		writer:  writer,
		logger:  logger,
		metrics: metrics,
	}
}

func (es *EmojiService) ensure(guildID models.GuildID) (*guildState, bool) {
	if state, ok := es.guilds.Load(guildID); ok {
		return state, false
	}
	state, loaded := es.guilds.LoadOrStore(guildID, &guildState{counter: models.NewCounter()})
	return state, !loaded
}

// Ensure creates an empty counter for guildID if none exists and reports
// whether it did.
func (es *EmojiService) Ensure(guildID models.GuildID) bool {
	_, created := es.ensure(guildID)
	return created
}

// RecordMessage counts every custom emoji in text and returns how many were
// found. The guild snapshot is written even when none were.
func (es *EmojiService) RecordMessage(guildID models.GuildID, text string) int {
	emojis := models.ExtractEmojis(text)
	state, _ := es.ensure(guildID)

	state.mu.Lock()
	defer state.mu.Unlock()

	for _, e := range emojis {
		state.counter.Add(e, 1)
	}
	es.metrics.IncEmojiEvents(EventMessage, len(emojis))
	_ = es.persist(guildID, state)
	return len(emojis)
}

// RecordReaction applies delta to emoji and returns the new count.
func (es *EmojiService) RecordReaction(guildID models.GuildID, emoji string, delta int64) int64 {
	state, _ := es.ensure(guildID)

	state.mu.Lock()
	defer state.mu.Unlock()

	count := state.counter.Add(emoji, delta)
	if delta < 0 {
		es.metrics.IncEmojiEvents(EventReactionRemove, 1)
	} else {
		es.metrics.IncEmojiEvents(EventReactionAdd, 1)
	}
	es.logger.Debugf(providers.TypeBot, "%s: %+d @guild_id=%d", emoji, delta, guildID)
	_ = es.persist(guildID, state)
	return count
}

// persist must be called with state.mu held.
func (es *EmojiService) persist(guildID models.GuildID, state *guildState) error {
	start := time.Now()
	err := es.writer.Save(guildID, state.counter.Entries())
	es.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		es.metrics.IncPersistenceFailures()
		es.logger.Errorf(providers.TypeStorage, "Failed to write snapshot for guild %d: %s", guildID, err)
	}
	return err
}

// Flush writes the snapshot of guildID under its lock, so it never races a
// write triggered by an event. Unknown guilds are a no-op.
func (es *EmojiService) Flush(guildID models.GuildID) error {
	state, ok := es.guilds.Load(guildID)
	if !ok {
		return nil
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return es.persist(guildID, state)
}

// RankRange returns the ranked window for guildID. The second result is
// false when nothing was ever recorded for the guild; no state is created.
func (es *EmojiService) RankRange(guildID models.GuildID, r models.RankRange) ([]models.Entry, bool) {
	state, ok := es.guilds.Load(guildID)
	if !ok {
		return nil, false
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.counter.Ranked(r), true
}

func (es *EmojiService) Has(guildID models.GuildID) bool {
	_, ok := es.guilds.Load(guildID)
	return ok
}

func (es *EmojiService) Guilds() []models.GuildID {
	ids := make([]models.GuildID, 0, es.guilds.Size())
	es.guilds.Range(func(id models.GuildID, _ *guildState) bool {
		ids = append(ids, id)
		return true
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (es *EmojiService) GuildCount() int {
	return es.guilds.Size()
}

// PutGuild replaces the counter of guildID, used when restoring snapshots.
func (es *EmojiService) PutGuild(guildID models.GuildID, counter *models.Counter) {
	if counter == nil {
		counter = models.NewCounter()
	}
	es.guilds.Store(guildID, &guildState{counter: counter})
}

func (es *EmojiService) Snapshot(guildID models.GuildID) ([]models.Entry, bool) {
	state, ok := es.guilds.Load(guildID)
	if !ok {
		return nil, false
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.counter.Entries(), true
}
