package models

// ImportResult summarizes a CSV bulk import run.
type ImportResult struct {
	BatchID          string   `json:"batch_id"`
	MatchesCreated   int      `json:"matches_created"`
	WrestlersCreated int      `json:"wrestlers_created"`
	RowsSkipped      int      `json:"rows_skipped"`
	Errors           []string `json:"errors,omitempty"`
}

// RevertResult summarizes the rollback of a previously imported batch.
type RevertResult struct {
	BatchID          string `json:"batch_id"`
	MatchesDeleted   int    `json:"matches_deleted"`
	WrestlersDeleted int    `json:"wrestlers_deleted"`
}
