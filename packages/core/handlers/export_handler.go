package handlers

import (
	"net/http"
	"strconv"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/services"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportRankings streams a ranked cohort as CSV
// @Summary Export rankings as CSV
// @Tags export
// @Produce text/csv
// @Param season_id query int true "Season ID"
// @Param weight_class query int false "Weight class (omit for all)"
// @Param stat query string false "Stat to rank by (default: hybrid)" Enums(elo,rpi,hybrid,dominance,win_pct)
// @Success 200 {string} string "CSV data"
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /export/rankings [get]
func (h *ExportHandler) ExportRankings(c *gin.Context) {
	filter, stat, ok := parseCohortQuery(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="rankings.csv"`)

	if err := h.exportService.ExportRankingsCSV(c.Writer, filter, stat); err != nil {
		if err.Error() == "invalid stat" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stat parameter"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export rankings"})
		return
	}
}

// ExportWrestlers streams every wrestler in a season as CSV
// @Summary Export wrestlers as CSV
// @Tags export
// @Produce text/csv
// @Param season_id query int true "Season ID"
// @Success 200 {string} string "CSV data"
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /export/wrestlers [get]
func (h *ExportHandler) ExportWrestlers(c *gin.Context) {
	seasonID, err := strconv.ParseUint(c.Query("season_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="wrestlers.csv"`)

	if err := h.exportService.ExportWrestlersCSV(c.Writer, uint(seasonID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export wrestlers"})
		return
	}
}

// ExportMatches streams every match in a season as CSV
// @Summary Export matches as CSV
// @Description Export matches in the same column layout the importer accepts, so the file can be re-imported
// @Tags export
// @Produce text/csv
// @Param season_id query int true "Season ID"
// @Success 200 {string} string "CSV data"
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /export/matches [get]
func (h *ExportHandler) ExportMatches(c *gin.Context) {
	seasonID, err := strconv.ParseUint(c.Query("season_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="matches.csv"`)

	if err := h.exportService.ExportMatchesCSV(c.Writer, uint(seasonID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export matches"})
		return
	}
}
