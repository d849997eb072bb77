package ledger

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"wsd/internal/ledger/interfaces"
	"wsd/internal/providers"
	"wsd/internal/services"
	"wsd/internal/structures"
)

// Scheduler drives the periodic persistence jobs: the JSON ledger file on
// every save interval and, when configured, the binary snapshot backup.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.RecordServiceInterface
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		if err := s.Persist(); err != nil {
			return
		}
		s.logger.Infof(providers.TypeApp, "Persisted ledger to file %s", s.config.Persistence.FilePath)
	})

	if s.config.Persistence.SnapshotInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Persistence.SnapshotInterval), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			if err := s.service.Snapshot(); err != nil {
				s.logger.Errorf(providers.TypeApp, "Error while writing snapshot: %s", err)
				return
			}
			s.logger.Infof(providers.TypeApp, "Snapshot written to %s.snap", s.config.Persistence.FilePath)
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.service.Restore()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	if err := s.service.Persist(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting ledger: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.RecordServiceInterface, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		metrics: metrics,
	}
}
