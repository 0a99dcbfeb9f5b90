package models

type Stats struct {
	TotalWrestlers       int64 `json:"total_wrestlers"`
	TotalMatches         int64 `json:"total_matches"`
	MatchesLast7Days     int64 `json:"matches_last_7_days"`
	MatchesPrevious7Days int64 `json:"matches_previous_7_days"`
}

// StatLeader pairs a wrestler with their count for a categorical stat
// (falls, technical falls, major decisions).
type StatLeader struct {
	Wrestler Wrestler `json:"wrestler"`
	Count    int      `json:"count"`
}

// RPIBreakdown exposes the three components behind a wrestler's RPI.
type RPIBreakdown struct {
	RPI               float64 `json:"rpi"`
	OwnWinPct         float64 `json:"own_win_pct"`
	OpponentWinPct    float64 `json:"opponent_win_pct"`
	OppOpponentWinPct float64 `json:"opp_opponent_win_pct"`
}
