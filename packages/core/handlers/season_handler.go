package handlers

import (
	"net/http"
	"strconv"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/services"

	"github.com/gin-gonic/gin"
)

type SeasonHandler struct {
	seasonService *services.SeasonService
}

func NewSeasonHandler(seasonService *services.SeasonService) *SeasonHandler {
	return &SeasonHandler{
		seasonService: seasonService,
	}
}

// GetSeasons lists all seasons
// @Summary Get all seasons
// @Tags seasons
// @Produce json
// @Success 200 {array} models.Season
// @Failure 500 {object} map[string]string
// @Router /seasons [get]
func (h *SeasonHandler) GetSeasons(c *gin.Context) {
	seasons, err := h.seasonService.GetSeasons()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve seasons"})
		return
	}

	c.JSON(http.StatusOK, seasons)
}

// GetActiveSeason retrieves the currently active season
// @Summary Get the active season
// @Tags seasons
// @Produce json
// @Success 200 {object} models.Season
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /seasons/active [get]
func (h *SeasonHandler) GetActiveSeason(c *gin.Context) {
	season, err := h.seasonService.GetActiveSeason()
	if err != nil {
		if err.Error() == "no active season" {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active season"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve active season"})
		return
	}

	c.JSON(http.StatusOK, season)
}

// CreateSeason creates a new season
// @Summary Create a new season
// @Description Create a season. Marking it active deactivates any previously active season.
// @Tags seasons
// @Accept json
// @Produce json
// @Param season body models.CreateSeasonRequest true "Season data"
// @Success 201 {object} models.Season
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /seasons [post]
func (h *SeasonHandler) CreateSeason(c *gin.Context) {
	var req models.CreateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	season, err := h.seasonService.CreateSeason(req)
	if err != nil {
		switch err.Error() {
		case "invalid start date format", "invalid end date format", "end date must be after start date":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create season"})
		}
		return
	}

	c.JSON(http.StatusCreated, season)
}

// CarryForward seeds season-start Elo values from a previous season
// @Summary Carry ratings forward into a season
// @Description Seed each wrestler's season-start Elo from their final Elo in a previous season, matched by name and school
// @Tags seasons
// @Produce json
// @Param id path int true "New season ID"
// @Param from query int true "Previous season ID"
// @Success 200 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /seasons/{id}/carry-forward [post]
func (h *SeasonHandler) CarryForward(c *gin.Context) {
	newSeasonID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season ID"})
		return
	}

	previousSeasonID, err := strconv.ParseUint(c.Query("from"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from parameter"})
		return
	}

	seeded, err := h.seasonService.CarryForward(uint(previousSeasonID), uint(newSeasonID))
	if err != nil {
		if err.Error() == "season not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Season not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to carry ratings forward"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"seeded": seeded})
}
