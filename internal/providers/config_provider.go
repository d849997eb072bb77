package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"wsd/internal/heatmap"
	"wsd/internal/structures"
)

const (
	defaultMinSeconds  = 60
	defaultMinFraction = 0.5
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "WSD_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "WSD_SAVE_INTERVAL")
	viper.BindEnv("persistence.snapshotInterval", "WSD_SNAPSHOT_INTERVAL")
	viper.BindEnv("watch.minSeconds", "WSD_WATCH_MIN_SECONDS")
	viper.BindEnv("watch.minFraction", "WSD_WATCH_MIN_FRACTION")
	viper.BindEnv("cache.enabled", "WSD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "WSD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyWatchDefaults(&conf.Watch)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "WatchStreakDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyWatchDefaults(watch *structures.WatchConfig) {
	if watch.MinSeconds <= 0 {
		watch.MinSeconds = defaultMinSeconds
	}
	if watch.MinFraction <= 0 {
		watch.MinFraction = defaultMinFraction
	}
	if watch.HistoryDays <= 0 {
		watch.HistoryDays = heatmap.DefaultWindowDays
	}
}
