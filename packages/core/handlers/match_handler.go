package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// GetRecentMatches retrieves the N most recent matches
// @Summary Get recent matches
// @Description Get the N most recent matches ordered by date (newest first)
// @Tags matches
// @Produce json
// @Param limit query int false "Number of matches to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/recent [get]
func (h *MatchHandler) GetRecentMatches(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid limit parameter",
		})
		return
	}

	// Cap the limit to prevent excessive queries
	if limit > 100 {
		limit = 100
	}

	matches, err := h.matchService.GetRecentMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve recent matches",
		})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatches retrieves matches with pagination and filters
// @Summary Get matches with pagination and filters
// @Description Get matches with optional filters for wrestler, season, and date range
// @Tags matches
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Param wrestler_id query int false "Filter by wrestler ID (matches where wrestler is either participant)"
// @Param season_id query int false "Filter by season ID"
// @Param date_from query string false "Filter from date (YYYY-MM-DD format)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD format)"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	perPageStr := c.DefaultQuery("per_page", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return
	}

	// Limit per_page to maximum 100
	if perPage > 100 {
		perPage = 100
	}

	filters := services.MatchFilters{
		Page:    page,
		PerPage: perPage,
	}

	if wrestlerIDStr := c.Query("wrestler_id"); wrestlerIDStr != "" {
		wrestlerID, err := strconv.ParseUint(wrestlerIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wrestler_id parameter"})
			return
		}
		wrestlerIDUint := uint(wrestlerID)
		filters.WrestlerID = &wrestlerIDUint
	}

	if seasonIDStr := c.Query("season_id"); seasonIDStr != "" {
		seasonID, err := strconv.ParseUint(seasonIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter"})
			return
		}
		seasonIDUint := uint(seasonID)
		filters.SeasonID = &seasonIDUint
	}

	if dateFromStr := c.Query("date_from"); dateFromStr != "" {
		dateFrom, err := time.Parse("2006-01-02", dateFromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from format. Use YYYY-MM-DD"})
			return
		}
		filters.DateFrom = &dateFrom
	}

	if dateToStr := c.Query("date_to"); dateToStr != "" {
		dateTo, err := time.Parse("2006-01-02", dateToStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to format. Use YYYY-MM-DD"})
			return
		}
		filters.DateTo = &dateTo
	}

	result, err := h.matchService.GetMatches(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatch retrieves a single match
// @Summary Get a match by ID
// @Description Get a single match with both wrestlers and the winner preloaded
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid match ID",
		})
		return
	}

	match, err := h.matchService.GetMatch(uint(matchID))
	if err != nil {
		if err.Error() == "match not found" {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Match not found",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve match",
		})
		return
	}

	c.JSON(http.StatusOK, match)
}

// CreateMatch creates a new match
// @Summary Create a new match
// @Description Create a match between two wrestlers. Elo, RPI, hybrid and dominance scores of both wrestlers are recalculated before the response returns.
// @Tags matches
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Match data"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req models.CreateMatchRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	match, err := h.matchService.CreateMatch(req)
	if err != nil {
		status := matchErrorStatus(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to create match"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, match)
}

// UpdateMatch edits a match
// @Summary Update a match (PATCH)
// @Description Update any subset of a match's fields. All wrestlers involved before or after the edit are recalculated.
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param update body models.UpdateMatchRequest true "Fields to update"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id} [patch]
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid match ID",
		})
		return
	}

	var req models.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	match, err := h.matchService.UpdateMatch(uint(matchID), req)
	if err != nil {
		status := matchErrorStatus(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to update match"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, match)
}

// DeleteMatch deletes a match
// @Summary Delete a match
// @Description Delete a match. Both participants are recalculated as if the match never happened.
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id} [delete]
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid match ID",
		})
		return
	}

	if err := h.matchService.DeleteMatch(uint(matchID)); err != nil {
		if err.Error() == "match not found" {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Match not found",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete match",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// matchErrorStatus maps match service errors onto HTTP statuses.
func matchErrorStatus(err error) int {
	switch err.Error() {
	case "match not found", "season not found", "wrestler1 not found", "wrestler2 not found":
		return http.StatusNotFound
	case "invalid date format",
		"a wrestler cannot compete against themselves",
		"wrestlers must be in the same weight class",
		"winner must be either wrestler1 or wrestler2",
		"invalid win method":
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
