package models

// RecordResult is the outcome of one successful record-today operation.
type RecordResult struct {
	Key     string `json:"key"`
	Count   int    `json:"count"`
	Gained  int    `json:"gained"`
	TotalXP int    `json:"totalXP"`
}
