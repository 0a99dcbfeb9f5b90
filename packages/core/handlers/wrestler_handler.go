package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/services"

	"github.com/gin-gonic/gin"
)

type WrestlerHandler struct {
	wrestlerService *services.WrestlerService
	eloService      *services.EloService
	rpiService      *services.RPIService
}

func NewWrestlerHandler(wrestlerService *services.WrestlerService, eloService *services.EloService, rpiService *services.RPIService) *WrestlerHandler {
	return &WrestlerHandler{
		wrestlerService: wrestlerService,
		eloService:      eloService,
		rpiService:      rpiService,
	}
}

// GetWrestlers retrieves wrestlers with pagination and sorting
// @Summary Get wrestlers
// @Description Get wrestlers with pagination, optionally filtered by season and sorted by any score column
// @Tags wrestlers
// @Produce json
// @Param season_id query int false "Filter by season ID"
// @Param order_by query string false "Sort column" Enums(name,school,weight_class,elo_rating,rpi,hybrid_score,dominance_score,wins,created_at)
// @Param direction query string false "Sort direction" Enums(ASC,DESC)
// @Param page query int false "Page number (default: 1)" default(1)
// @Param page_size query int false "Items per page (default: 25, max: 100)" default(25)
// @Success 200 {object} models.PaginatedWrestlersResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wrestlers [get]
func (h *WrestlerHandler) GetWrestlers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "25"))
	if err != nil || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page_size parameter"})
		return
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var seasonID uint
	if seasonIDStr := c.Query("season_id"); seasonIDStr != "" {
		parsed, err := strconv.ParseUint(seasonIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter"})
			return
		}
		seasonID = uint(parsed)
	}

	orderBy := c.DefaultQuery("order_by", "weight_class")
	direction := strings.ToUpper(c.DefaultQuery("direction", "ASC"))

	result, err := h.wrestlerService.GetAllWrestlers(seasonID, orderBy, direction, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wrestlers"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetWrestler retrieves a wrestler by ID
// @Summary Get a wrestler by ID
// @Tags wrestlers
// @Produce json
// @Param id path int true "Wrestler ID"
// @Success 200 {object} models.Wrestler
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wrestlers/{id} [get]
func (h *WrestlerHandler) GetWrestler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wrestler ID"})
		return
	}

	wrestler, err := h.wrestlerService.GetWrestlerByID(uint(id))
	if err != nil {
		if err.Error() == "wrestler not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wrestler not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wrestler"})
		return
	}

	c.JSON(http.StatusOK, wrestler)
}

// CreateWrestler creates a new wrestler
// @Summary Create a new wrestler
// @Description Create a wrestler. Name is title-cased and school resolved through the D3 school directory.
// @Tags wrestlers
// @Accept json
// @Produce json
// @Param wrestler body models.CreateWrestlerRequest true "Wrestler data"
// @Success 201 {object} models.Wrestler
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wrestlers [post]
func (h *WrestlerHandler) CreateWrestler(c *gin.Context) {
	var req models.CreateWrestlerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	wrestler, err := h.wrestlerService.CreateWrestler(req)
	if err != nil {
		switch err.Error() {
		case "season not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "wrestler already exists":
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case "name is required", "unknown school", "invalid weight class":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wrestler"})
		}
		return
	}

	c.JSON(http.StatusCreated, wrestler)
}

// UpdateWrestler edits a wrestler
// @Summary Update a wrestler (PATCH)
// @Description Update a wrestler's name, school or weight class. Changing weight class resets all computed scores.
// @Tags wrestlers
// @Accept json
// @Produce json
// @Param id path int true "Wrestler ID"
// @Param update body models.UpdateWrestlerRequest true "Fields to update"
// @Success 200 {object} models.Wrestler
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wrestlers/{id} [patch]
func (h *WrestlerHandler) UpdateWrestler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wrestler ID"})
		return
	}

	var req models.UpdateWrestlerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	wrestler, err := h.wrestlerService.UpdateWrestler(uint(id), req)
	if err != nil {
		switch err.Error() {
		case "wrestler not found":
			c.JSON(http.StatusNotFound, gin.H{"error": "Wrestler not found"})
		case "name is required", "unknown school", "invalid weight class":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wrestler"})
		}
		return
	}

	c.JSON(http.StatusOK, wrestler)
}

// DeleteWrestler deletes a wrestler
// @Summary Delete a wrestler
// @Description Delete a wrestler along with all their matches. Every opponent in those matches is recalculated.
// @Tags wrestlers
// @Produce json
// @Param id path int true "Wrestler ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wrestlers/{id} [delete]
func (h *WrestlerHandler) DeleteWrestler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wrestler ID"})
		return
	}

	if err := h.wrestlerService.DeleteWrestler(uint(id)); err != nil {
		if err.Error() == "wrestler not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wrestler not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wrestler"})
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkDeleteWrestlers deletes several wrestlers at once
// @Summary Bulk delete wrestlers
// @Description Delete several wrestlers and all their matches. Ids that do not exist are skipped; opponents of deleted matches are recalculated.
// @Tags wrestlers
// @Accept json
// @Produce json
// @Param request body models.BulkDeleteWrestlersRequest true "Wrestler IDs to delete"
// @Success 200 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wrestlers [delete]
func (h *WrestlerHandler) BulkDeleteWrestlers(c *gin.Context) {
	var req models.BulkDeleteWrestlersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	deleted, err := h.wrestlerService.BulkDeleteWrestlers(req.IDs)
	if err != nil {
		if err.Error() == "no wrestler ids provided" {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wrestlers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// GetWrestlerMatches retrieves a wrestler's match history
// @Summary Get a wrestler's matches
// @Tags wrestlers
// @Produce json
// @Param id path int true "Wrestler ID"
// @Param filter query string false "Filter matches" Enums(all,wins,losses)
// @Param page query int false "Page number (default: 1)" default(1)
// @Param page_size query int false "Items per page (default: 10, max: 100)" default(10)
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wrestlers/{id}/matches [get]
func (h *WrestlerHandler) GetWrestlerMatches(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wrestler ID"})
		return
	}

	if _, err := h.wrestlerService.GetWrestlerByID(uint(id)); err != nil {
		if err.Error() == "wrestler not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wrestler not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wrestler"})
		return
	}

	filter := c.DefaultQuery("filter", "all")
	if filter != "all" && filter != "wins" && filter != "losses" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter. Must be one of: all, wins, losses"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page_size parameter"})
		return
	}
	if pageSize > 100 {
		pageSize = 100
	}

	result, err := h.wrestlerService.GetWrestlerMatches(uint(id), filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRatingHistory retrieves a wrestler's Elo rating history
// @Summary Get a wrestler's Elo rating history
// @Description Get the per-match Elo trajectory for a wrestler in a season, oldest first
// @Tags wrestlers
// @Produce json
// @Param id path int true "Wrestler ID"
// @Param season_id query int true "Season ID"
// @Success 200 {array} models.RatingHistory
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wrestlers/{id}/rating-history [get]
func (h *WrestlerHandler) GetRatingHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wrestler ID"})
		return
	}

	seasonID, err := strconv.ParseUint(c.Query("season_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter"})
		return
	}

	history, err := h.eloService.GetRatingHistory(uint(id), uint(seasonID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rating history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetRecentRatingChanges retrieves the latest Elo movements across all wrestlers
// @Summary Get recent rating changes
// @Description Get the most recent Elo rating changes across all wrestlers, newest first
// @Tags wrestlers
// @Produce json
// @Param limit query int false "Max results (default: 10, max: 50)" default(10)
// @Success 200 {array} models.RatingHistory
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wrestlers/rating-changes [get]
func (h *WrestlerHandler) GetRecentRatingChanges(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > 50 {
		limit = 50
	}

	changes, err := h.eloService.GetRecentRatingChanges(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rating changes"})
		return
	}

	c.JSON(http.StatusOK, changes)
}

// GetRPIBreakdown retrieves the components behind a wrestler's RPI
// @Summary Get a wrestler's RPI breakdown
// @Description Get the three weighted components (own, opponent and opponents' opponent win percentages) behind a wrestler's RPI
// @Tags wrestlers
// @Produce json
// @Param id path int true "Wrestler ID"
// @Param season_id query int true "Season ID"
// @Success 200 {object} models.RPIBreakdown
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wrestlers/{id}/rpi [get]
func (h *WrestlerHandler) GetRPIBreakdown(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wrestler ID"})
		return
	}

	seasonID, err := strconv.ParseUint(c.Query("season_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter"})
		return
	}

	breakdown, err := h.rpiService.CalculateRPI(uint(id), uint(seasonID))
	if err != nil {
		if err.Error() == "wrestler not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wrestler not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate RPI"})
		return
	}

	c.JSON(http.StatusOK, breakdown)
}
