package models

import "sync"

// XPPerView is the experience awarded for one qualifying view.
const XPPerView = 100

// Ledger is the activity ledger: local-calendar day key -> view count.
// The stored totalXP is only a cache; TotalXP always recomputes from the map.
type Ledger struct {
	Mutex sync.RWMutex
	Data  map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{Data: make(map[string]int)}
}

func (l *Ledger) Get(key string) (int, bool) {
	l.Mutex.RLock()
	defer l.Mutex.RUnlock()
	val, ok := l.Data[key]
	return val, ok
}

func (l *Ledger) Len() int {
	l.Mutex.RLock()
	defer l.Mutex.RUnlock()
	return len(l.Data)
}

// Increment adds one view to key and returns the new count.
func (l *Ledger) Increment(key string) int {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()
	l.Data[key]++
	return l.Data[key]
}

func (l *Ledger) PutData(data map[string]int) {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()
	l.Data = make(map[string]int, len(data))
	for k, v := range data {
		l.Data[k] = v
	}
}

func (l *Ledger) GetData() map[string]int {
	l.Mutex.RLock()
	defer l.Mutex.RUnlock()

	copyMap := make(map[string]int, len(l.Data))
	for k, v := range l.Data {
		copyMap[k] = v
	}
	return copyMap
}

func (l *Ledger) Clear() {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()
	l.Data = make(map[string]int)
}

// TotalXP recomputes the derived total from the map.
func (l *Ledger) TotalXP() int {
	l.Mutex.RLock()
	defer l.Mutex.RUnlock()
	return TotalXPOf(l.Data)
}

// TotalXPOf sums count*XPPerView over all entries of a plain map.
func TotalXPOf(data map[string]int) int {
	total := 0
	for _, count := range data {
		if count > 0 {
			total += count * XPPerView
		}
	}
	return total
}
