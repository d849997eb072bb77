package ledger

import (
	"bytes"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"wsd/internal/ledger/interfaces"
	"wsd/internal/models"
	"wsd/internal/providers"
	"wsd/internal/structures"
)

// FileManager persists the activity ledger as a zstd-compressed JSON
// envelope. Writes go through a tmp file with fsync and rename, so a load
// never observes a partial write.
type FileManager struct {
	conf       *structures.Config
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) interfaces.LedgerStoreInterface {
	return &FileManager{
		conf:       conf,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) Save(data map[string]int, totalXP int) error {
	envelope := models.LedgerFile{
		ActivityMap: data,
		TotalXP:     totalXP,
	}

	jsonData, err := json.Marshal(&envelope)
	if err != nil {
		return err
	}
	compressed, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := f.writeAtomic(f.conf.Persistence.FilePath, compressed); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Load reads the persisted ledger. A missing file resolves to empty data.
// If only the legacy date list is present it is folded into a count map and
// persisted back in the new format before returning, so a second load takes
// the new-format path and never double-counts.
func (f *FileManager) Load() (map[string]int, int, error) {
	data, err := os.ReadFile(f.conf.Persistence.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]int{}, 0, nil
		}
		return map[string]int{}, 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return map[string]int{}, 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	var envelope models.LooseLedgerFile
	if err := json.Unmarshal(decompressed, &envelope); err != nil {
		return map[string]int{}, 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if envelope.ActivityMap != nil {
		counts := models.SanitizeCounts(envelope.ActivityMap)
		totalXP := models.TotalXPOf(counts)
		if stored := cast.ToInt(envelope.TotalXP); stored != totalXP {
			f.logger.Warnf(providers.TypeApp, "Stored totalXP %d drifted from recomputed %d, using recomputed", stored, totalXP)
		}
		return counts, totalXP, nil
	}

	if envelope.ActivityDates != nil {
		f.logger.Warnf(providers.TypeApp, "Legacy date list found, migrating to count map")
		counts := models.FoldLegacyDates(envelope.ActivityDates)
		totalXP := models.TotalXPOf(counts)
		if err := f.Save(counts, totalXP); err != nil {
			return counts, totalXP, err
		}
		f.logger.Warnf(providers.TypeApp, "Migration successful: %d days, totalXP %d", len(counts), totalXP)
		return counts, totalXP, nil
	}

	return map[string]int{}, cast.ToInt(envelope.TotalXP), nil
}

// SaveSnapshot writes the compact binary backup next to the ledger file.
func (f *FileManager) SaveSnapshot(data map[string]int) error {
	snap := models.NewLedger()
	snap.PutData(data)

	var buf bytes.Buffer
	if err := snap.WriteBinaryTo(&buf); err != nil {
		return err
	}
	if err := f.writeAtomic(f.snapshotPath(), buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func (f *FileManager) snapshotPath() string {
	return f.conf.Persistence.FilePath + ".snap"
}

func (f *FileManager) writeAtomic(fileName string, data []byte) error {
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
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
