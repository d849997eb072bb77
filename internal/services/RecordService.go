package services

import (
	"io"
	"sync"
	"time"

	"wsd/internal/heatmap"
	"wsd/internal/ledger/interfaces"
	"wsd/internal/models"
)

type RecordServiceInterface interface {
	RecordToday() (*models.RecordResult, error)
	GetAll() (map[string]int, int)
	ClearAll() error
	Restore() error
	Persist() error
	Snapshot() error
	PutLedger(data map[string]int)
	WriteSnapshotTo(w io.Writer) error
	ActiveDays() int
	CurrentStreak() int
	TotalXP() int
}

// RecordService owns the activity ledger. Every mutating call is a complete
// read-modify-write under opsMu: the new map is persisted first and only
// committed to the in-memory ledger once the save succeeded, so interleaved
// callers can never lose an update or observe a half-applied one.
type RecordService struct {
	opsMu  sync.Mutex
	ledger *models.Ledger
	store  interfaces.LedgerStoreInterface
}

func (rs *RecordService) RecordToday() (*models.RecordResult, error) {
	rs.opsMu.Lock()
	defer rs.opsMu.Unlock()

	key := models.TodayKey(0)
	data := rs.ledger.GetData()
	data[key]++
	totalXP := models.TotalXPOf(data)

	if err := rs.store.Save(data, totalXP); err != nil {
		return nil, err
	}
	rs.ledger.PutData(data)

	return &models.RecordResult{
		Key:     key,
		Count:   data[key],
		Gained:  models.XPPerView,
		TotalXP: totalXP,
	}, nil
}

func (rs *RecordService) GetAll() (map[string]int, int) {
	rs.opsMu.Lock()
	defer rs.opsMu.Unlock()
	data := rs.ledger.GetData()
	return data, models.TotalXPOf(data)
}

func (rs *RecordService) ClearAll() error {
	rs.opsMu.Lock()
	defer rs.opsMu.Unlock()

	if err := rs.store.Save(map[string]int{}, 0); err != nil {
		return err
	}
	rs.ledger.Clear()
	return nil
}

// Restore loads the persisted ledger, migrating legacy data if present.
// A failed load leaves the ledger empty; the error is reported but the
// service stays usable.
func (rs *RecordService) Restore() error {
	rs.opsMu.Lock()
	defer rs.opsMu.Unlock()

	data, _, err := rs.store.Load()
	rs.ledger.PutData(data)
	return err
}

func (rs *RecordService) Persist() error {
	rs.opsMu.Lock()
	defer rs.opsMu.Unlock()
	data := rs.ledger.GetData()
	return rs.store.Save(data, models.TotalXPOf(data))
}

func (rs *RecordService) Snapshot() error {
	return rs.store.SaveSnapshot(rs.ledger.GetData())
}

func (rs *RecordService) PutLedger(data map[string]int) {
	rs.ledger.PutData(data)
}

func (rs *RecordService) WriteSnapshotTo(w io.Writer) error {
	return rs.ledger.WriteBinaryTo(w)
}

func (rs *RecordService) ActiveDays() int {
	return heatmap.TotalActiveDays(rs.ledger.GetData())
}

func (rs *RecordService) CurrentStreak() int {
	return heatmap.CurrentStreak(rs.ledger.GetData(), time.Now())
}

func (rs *RecordService) TotalXP() int {
	return rs.ledger.TotalXP()
}

func NewRecordService(store interfaces.LedgerStoreInterface) RecordServiceInterface {
	return &RecordService{
		ledger: models.NewLedger(),
		store:  store,
	}
}
