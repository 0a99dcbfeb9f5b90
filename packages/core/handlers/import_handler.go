package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/services"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	importService *services.ImportService
}

func NewImportHandler(importService *services.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// ImportMatches ingests a CSV result sheet
// @Summary Import matches from CSV
// @Description Upload a CSV result sheet (columns: Date, Wrestler1, School1, Wrestler2, School2, WeightClass, Winner, WinType). Unknown wrestlers are created, bad rows reported and skipped, and all affected scores recalculated.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param season_id query int true "Season ID"
// @Param file formData file true "CSV file"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /import/matches [post]
func (h *ImportHandler) ImportMatches(c *gin.Context) {
	seasonID, err := strconv.ParseUint(c.Query("season_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.importService.ImportMatchesCSV(uint(seasonID), file)
	if err != nil {
		if err.Error() == "season not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Season not found"})
			return
		}
		if err.Error() == "empty or unreadable CSV" || strings.HasPrefix(err.Error(), "column ") ||
			strings.HasPrefix(err.Error(), "expected ") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// RevertImportBatch rolls back an import
// @Summary Revert an import batch
// @Description Delete every match created by the batch, recalculate all affected wrestlers, and remove wrestlers left without any matches
// @Tags import
// @Produce json
// @Param id path string true "Import batch ID"
// @Success 200 {object} models.RevertResult
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /import/batches/{id} [delete]
func (h *ImportHandler) RevertImportBatch(c *gin.Context) {
	batchID := c.Param("id")

	result, err := h.importService.RevertImportBatch(batchID)
	if err != nil {
		if err.Error() == "import batch not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Import batch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revert import batch"})
		return
	}

	c.JSON(http.StatusOK, result)
}
