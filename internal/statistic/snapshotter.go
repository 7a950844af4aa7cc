package statistic

import (
	"emojicounter/internal/models"
	"emojicounter/internal/providers"
	"emojicounter/internal/services"
	"emojicounter/internal/statistic/interfaces"
	"emojicounter/internal/structures"
	"errors"
	"fmt"
	"sync"
)

// Snapshotter moves the registry to and from disk at process start and stop.
// Writes between those points are done by the service after every mutation.
type Snapshotter struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.EmojiServiceInterface
	fileManager *FileManager
	opsMu       sync.Mutex
}

func (s *Snapshotter) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	found, err := s.fileManager.Discover()
	if err != nil {
		return fmt.Errorf("discover snapshots in %s: %w", s.config.Persistence.Dir, err)
	}
	for guildID, counter := range found {
		s.service.PutGuild(guildID, counter)
	}
	s.logger.Infof(providers.TypeStorage, "Restored %d guild snapshots from %s", len(found), s.config.Persistence.Dir)

	return s.importLegacy()
}

// importLegacy loads the old single-file snapshot into the configured guild
// unless that guild already has a per-guild snapshot.
func (s *Snapshotter) importLegacy() error {
	legacy := s.config.Persistence.LegacyFile
	if legacy == "" {
		return nil
	}
	guildID := models.GuildID(s.config.Persistence.LegacyGuild)
	if s.service.Has(guildID) {
		s.logger.Infof(providers.TypeStorage, "Guild %d already has a snapshot, legacy file %s ignored", guildID, legacy)
		return nil
	}

	counter, err := s.fileManager.LoadFromFile(legacy)
	if err != nil {
		return fmt.Errorf("import legacy snapshot %s: %w", legacy, err)
	}
	if counter.Len() == 0 {
		return nil
	}
	s.service.PutGuild(guildID, counter)
	if err = s.fileManager.Save(guildID, counter.Entries()); err != nil {
		return fmt.Errorf("write imported snapshot for guild %d: %w", guildID, err)
	}
	s.logger.Warnf(providers.TypeStorage, "Imported %d emoji from legacy file %s into guild %d", counter.Len(), legacy, guildID)
	return nil
}

// Persist writes every guild once more through the service, which holds the
// guild lock for the write. Failures are collected so one bad file does not
// stop the others.
func (s *Snapshotter) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeStorage, "Persisting all guild snapshots...")
	var errs []error
	for _, guildID := range s.service.Guilds() {
		if err := s.service.Flush(guildID); err != nil {
			errs = append(errs, fmt.Errorf("guild %d: %w", guildID, err))
		}
	}
	return errors.Join(errs...)
}

func NewSnapshotter(config *structures.Config, logger providers.Logger, service services.EmojiServiceInterface, fileManager *FileManager) interfaces.SnapshotterInterface {
	return &Snapshotter{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
	}
}
