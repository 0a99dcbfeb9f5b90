package handlers

import (
	"net/http"
	"strconv"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/services"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard retrieves a sorted cohort
// @Summary Get the leaderboard for a weight class
// @Description Get wrestlers in a season and weight class sorted by the requested stat. Wrestlers without matches sort last.
// @Tags leaderboard
// @Produce json
// @Param season_id query int true "Season ID"
// @Param weight_class query int false "Weight class (omit for all)"
// @Param stat query string false "Stat to sort by (default: hybrid)" Enums(elo,rpi,hybrid,dominance,win_pct,region,conference)
// @Param region query string false "Restrict to one region"
// @Param conference query string false "Restrict to one conference"
// @Success 200 {array} models.Wrestler
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	filter, stat, ok := parseCohortQuery(c)
	if !ok {
		return
	}

	wrestlers, err := h.leaderboardService.SortByStat(filter, stat)
	if err != nil {
		if err.Error() == "invalid stat" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stat parameter"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leaderboard"})
		return
	}

	c.JSON(http.StatusOK, wrestlers)
}

// GetRank resolves one wrestler's leaderboard position
// @Summary Get a wrestler's rank
// @Description Get a wrestler's position within the cohort for the requested stat (1 = best)
// @Tags leaderboard
// @Produce json
// @Param id path int true "Wrestler ID"
// @Param season_id query int true "Season ID"
// @Param weight_class query int false "Weight class (omit for all)"
// @Param stat query string false "Stat to rank by (default: hybrid)" Enums(elo,rpi,hybrid,dominance,win_pct,region,conference)
// @Param region query string false "Restrict to one region"
// @Param conference query string false "Restrict to one conference"
// @Success 200 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /leaderboard/rank/{id} [get]
func (h *LeaderboardHandler) GetRank(c *gin.Context) {
	wrestlerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wrestler ID"})
		return
	}

	filter, stat, ok := parseCohortQuery(c)
	if !ok {
		return
	}

	rank, err := h.leaderboardService.Rank(uint(wrestlerID), filter, stat)
	if err != nil {
		switch err.Error() {
		case "invalid stat":
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stat parameter"})
		case "wrestler not in cohort":
			c.JSON(http.StatusNotFound, gin.H{"error": "Wrestler not in cohort"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve rank"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"rank": rank})
}

// GetStatLeaders retrieves the top wrestlers by a win counter
// @Summary Get stat leaders
// @Description Get the wrestlers with the most falls, technical falls or major decisions in a season
// @Tags leaderboard
// @Produce json
// @Param stat query string true "Counter" Enums(falls,tech_falls,major_decisions)
// @Param season_id query int true "Season ID"
// @Param weight_class query int false "Weight class (omit for all)"
// @Param limit query int false "Number of leaders to return (default: 10, max: 50)"
// @Success 200 {array} models.StatLeader
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /leaderboard/leaders [get]
func (h *LeaderboardHandler) GetStatLeaders(c *gin.Context) {
	stat := c.Query("stat")
	if stat == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stat parameter is required"})
		return
	}

	seasonID, err := strconv.ParseUint(c.Query("season_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter"})
		return
	}

	weightClass := 0
	if weightClassStr := c.Query("weight_class"); weightClassStr != "" {
		weightClass, err = strconv.Atoi(weightClassStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weight_class parameter"})
			return
		}
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > 50 {
		limit = 50
	}

	leaders, err := h.leaderboardService.GetStatLeaders(stat, uint(seasonID), limit, weightClass)
	if err != nil {
		if err.Error() == "invalid stat" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stat parameter"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stat leaders"})
		return
	}

	c.JSON(http.StatusOK, leaders)
}

// parseCohortQuery reads the shared cohort query parameters, writing the
// error response itself when they are malformed.
func parseCohortQuery(c *gin.Context) (services.CohortFilter, string, bool) {
	var filter services.CohortFilter

	seasonID, err := strconv.ParseUint(c.Query("season_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter"})
		return filter, "", false
	}
	filter.SeasonID = uint(seasonID)

	if weightClassStr := c.Query("weight_class"); weightClassStr != "" {
		weightClass, err := strconv.Atoi(weightClassStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weight_class parameter"})
			return filter, "", false
		}
		filter.WeightClass = weightClass
	}

	filter.Region = c.Query("region")
	filter.Conference = c.Query("conference")

	stat := c.DefaultQuery("stat", services.StatHybrid)
	return filter, stat, true
}
