package services

import (
	"errors"
	"sort"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/lookup"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LeaderboardService answers sorted-cohort, rank-position and stat-leader
// queries over already-computed scores. It is strictly read-only: nothing
// here ever triggers a recalculation.
type LeaderboardService struct {
	db      *gorm.DB
	log     *logrus.Logger
	schools *lookup.Directory
}

func NewLeaderboardService(db *gorm.DB, log *logrus.Logger, schools *lookup.Directory) *LeaderboardService {
	return &LeaderboardService{
		db:      db,
		log:     log,
		schools: schools,
	}
}

// CohortFilter selects the athletes a leaderboard query runs over: one weight
// class in one season, optionally narrowed by region or conference.
type CohortFilter struct {
	SeasonID    uint
	WeightClass int
	Region      string
	Conference  string
}

// Sortable stats.
const (
	StatElo        = "elo"
	StatRPI        = "rpi"
	StatHybrid     = "hybrid"
	StatDominance  = "dominance"
	StatWinPct     = "win_pct"
	StatRegion     = "region"
	StatConference = "conference"
)

// Categorical stats served by GetStatLeaders.
const (
	LeaderStatFalls          = "falls"
	LeaderStatTechFalls      = "tech_falls"
	LeaderStatMajorDecisions = "major_decisions"
)

// SortByStat returns the cohort sorted by the given stat, numeric scores
// descending. Wrestlers with no value for the stat (no matches yet, or a
// school with no region/conference on record) sort last regardless of
// direction. Ties keep query order, which is insertion order.
func (s *LeaderboardService) SortByStat(filter CohortFilter, stat string) ([]models.Wrestler, error) {
	wrestlers, err := s.getCohort(filter)
	if err != nil {
		return nil, err
	}

	switch stat {
	case StatElo, StatRPI, StatHybrid, StatDominance, StatWinPct:
		sort.SliceStable(wrestlers, func(i, j int) bool {
			vi, oki := s.numericStat(&wrestlers[i], stat)
			vj, okj := s.numericStat(&wrestlers[j], stat)
			if oki != okj {
				return oki
			}
			return vi > vj
		})
	case StatRegion, StatConference:
		sort.SliceStable(wrestlers, func(i, j int) bool {
			vi, oki := s.stringStat(&wrestlers[i], stat)
			vj, okj := s.stringStat(&wrestlers[j], stat)
			if oki != okj {
				return oki
			}
			return vi < vj
		})
	default:
		return nil, errors.New("invalid stat")
	}

	return wrestlers, nil
}

// Rank resolves a wrestler's position within the cohort for a stat: one plus
// the number of athletes strictly ahead after sorting. Tied athletes do NOT
// share a rank; the positional index after the stable sort decides.
func (s *LeaderboardService) Rank(wrestlerID uint, filter CohortFilter, stat string) (int, error) {
	sorted, err := s.SortByStat(filter, stat)
	if err != nil {
		return 0, err
	}

	for i := range sorted {
		if sorted[i].ID == wrestlerID {
			return i + 1, nil
		}
	}

	return 0, errors.New("wrestler not in cohort")
}

// GetStatLeaders returns the top wrestlers by a categorical win counter.
// weightClass 0 means all weight classes. Ties keep insertion order.
func (s *LeaderboardService) GetStatLeaders(stat string, seasonID uint, limit int, weightClass int) ([]models.StatLeader, error) {
	columns := map[string]string{
		LeaderStatFalls:          "falls",
		LeaderStatTechFalls:      "tech_falls",
		LeaderStatMajorDecisions: "major_decisions",
	}

	column, ok := columns[stat]
	if !ok {
		return nil, errors.New("invalid stat")
	}

	query := s.db.Where("season_id = ?", seasonID)
	if weightClass > 0 {
		query = query.Where("weight_class = ?", weightClass)
	}

	var wrestlers []models.Wrestler
	if err := query.Order(column + " DESC, id ASC").Limit(limit).Find(&wrestlers).Error; err != nil {
		return nil, err
	}

	leaders := make([]models.StatLeader, 0, len(wrestlers))
	for _, wrestler := range wrestlers {
		var count int
		switch stat {
		case LeaderStatFalls:
			count = wrestler.Falls
		case LeaderStatTechFalls:
			count = wrestler.TechFalls
		case LeaderStatMajorDecisions:
			count = wrestler.MajorDecisions
		}
		leaders = append(leaders, models.StatLeader{Wrestler: wrestler, Count: count})
	}

	return leaders, nil
}

func (s *LeaderboardService) getCohort(filter CohortFilter) ([]models.Wrestler, error) {
	query := s.db.Where("season_id = ?", filter.SeasonID)
	if filter.WeightClass > 0 {
		query = query.Where("weight_class = ?", filter.WeightClass)
	}

	var wrestlers []models.Wrestler
	if err := query.Order("id ASC").Find(&wrestlers).Error; err != nil {
		return nil, err
	}

	if filter.Region == "" && filter.Conference == "" {
		return wrestlers, nil
	}

	filtered := make([]models.Wrestler, 0, len(wrestlers))
	for _, wrestler := range wrestlers {
		if filter.Region != "" {
			region, ok := s.schools.Region(wrestler.School)
			if !ok || region != filter.Region {
				continue
			}
		}
		if filter.Conference != "" {
			conference, ok := s.schools.Conference(wrestler.School)
			if !ok || conference != filter.Conference {
				continue
			}
		}
		filtered = append(filtered, wrestler)
	}

	return filtered, nil
}

// numericStat returns the stat value and whether the wrestler has one. A
// wrestler with no matches has no meaningful score on any numeric stat, even
// though the columns hold baseline defaults.
func (s *LeaderboardService) numericStat(w *models.Wrestler, stat string) (float64, bool) {
	if w.TotalMatches() == 0 {
		return 0, false
	}
	switch stat {
	case StatElo:
		return w.EloRating, true
	case StatRPI:
		return w.RPI, true
	case StatHybrid:
		return w.HybridScore, true
	case StatDominance:
		return w.DominanceScore, true
	case StatWinPct:
		return w.WinPercentage()
	}
	return 0, false
}

func (s *LeaderboardService) stringStat(w *models.Wrestler, stat string) (string, bool) {
	switch stat {
	case StatRegion:
		return s.schools.Region(w.School)
	case StatConference:
		return s.schools.Conference(w.School)
	}
	return "", false
}
