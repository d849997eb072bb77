package interfaces

// LedgerStoreInterface is the persistence boundary for the activity ledger.
// Load performs the legacy-format migration transparently; Save persists the
// map and its derived total as one atomic write.
type LedgerStoreInterface interface {
	Load() (map[string]int, int, error)
	Save(data map[string]int, totalXP int) error
	SaveSnapshot(data map[string]int) error
	Close()
}
