package statistic

import (
	"emojicounter/internal/models"
	"emojicounter/internal/providers"
	"emojicounter/internal/structures"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const snapshotExt = ".csv"

var snapshotHeader = []string{"emoji", "count"}

// FileManager keeps one CSV snapshot per guild, named <prefix>.<guildID>.csv.
type FileManager struct {
	dir    string
	prefix string
	logger providers.Logger
}

func NewFileManager(conf *structures.Config, logger providers.Logger) *FileManager {
	return &FileManager{
		dir:    conf.Persistence.Dir,
		prefix: conf.Persistence.FilePrefix,
		logger: logger,
	}
}

func (f *FileManager) PathFor(guildID models.GuildID) string {
	return filepath.Join(f.dir, fmt.Sprintf("%s.%d%s", f.prefix, guildID, snapshotExt))
}

func (f *FileManager) Save(guildID models.GuildID, entries []models.Entry) error {
	return f.SaveToFile(f.PathFor(guildID), entries)
}

func (f *FileManager) SaveToFile(fileName string, entries []models.Entry) error {
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if err = writeRows(file, entries); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func writeRows(w io.Writer, entries []models.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(snapshotHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Emoji, strconv.FormatInt(e.Count, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadFromFile reads a snapshot. A missing file is an empty counter, not an
// error. Any malformed row fails the whole file.
func (f *FileManager) LoadFromFile(fileName string) (*models.Counter, error) {
	file, err := os.Open(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewCounter(), nil
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	if _, err = r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return models.NewCounter(), nil
		}
		return nil, err
	}

	counter := models.NewCounter()
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("%s:%d: expected 2 columns, got %d", fileName, line, len(row))
		}
		count, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
		if err != nil {
			line, _ := r.FieldPos(1)
			return nil, fmt.Errorf("%s:%d: bad count %q: %w", fileName, line, row[1], err)
		}
		counter.Set(row[0], count)
	}
	return counter, nil
}

// ParseGuildID extracts the guild id from a snapshot file name. It reports
// false for names that are not <prefix>.<id>.csv or whose id is not an integer.
func (f *FileManager) ParseGuildID(name string) (models.GuildID, bool) {
	parts := strings.Split(filepath.Base(name), ".")
	if len(parts) != 3 || parts[0] != f.prefix || "."+parts[2] != snapshotExt {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return models.GuildID(id), true
}

// Discover loads every guild snapshot found in the snapshot directory.
// Unreadable snapshots come back as empty counters.
func (f *FileManager) Discover() (map[models.GuildID]*models.Counter, error) {
	matches, err := filepath.Glob(filepath.Join(f.dir, "*"+snapshotExt))
	if err != nil {
		return nil, err
	}

	found := make(map[models.GuildID]*models.Counter, len(matches))
	for _, path := range matches {
		guildID, ok := f.ParseGuildID(path)
		if !ok {
			if strings.HasPrefix(filepath.Base(path), f.prefix+".") {
				f.logger.Warnf(providers.TypeStorage, "Skipping snapshot %s: no guild id in file name", path)
			} else {
				f.logger.Debugf(providers.TypeStorage, "Skipping unrelated file %s", path)
			}
			continue
		}

		counter, err := f.LoadFromFile(path)
		if err != nil {
			f.logger.Errorf(providers.TypeStorage, "Failed to read snapshot %s, starting guild %d empty: %s", path, guildID, err)
			counter = models.NewCounter()
		} else {
			f.logger.Infof(providers.TypeStorage, "Loaded %d emoji for guild %d from %s", counter.Len(), guildID, path)
		}
		found[guildID] = counter
	}
	return found, nil
}
