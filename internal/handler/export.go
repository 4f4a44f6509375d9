package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/Predaotor/AI-content-Generator/internal/middleware"
	"github.com/Predaotor/AI-content-Generator/internal/models"
	"github.com/Predaotor/AI-content-Generator/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler downloads the user's saved outputs as CSV or XLSX.
type ExportHandler struct {
	db *gorm.DB
}

// NewExportHandler wires the database handle.
func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{db: db}
}

func (h *ExportHandler) loadOutputs(c *gin.Context) ([]models.SavedOutput, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}

	var outputs []models.SavedOutput
	if err := h.db.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&outputs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load saved outputs")
		return nil, false
	}
	return outputs, true
}

// ExportCSV streams the saved outputs as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	outputs, ok := h.loadOutputs(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"outputs_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Template", "Content", "Created"})
	for _, o := range outputs {
		writer.Write([]string{
			o.TemplateType,
			o.Content,
			o.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
}

// ExportXLSX downloads the saved outputs as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	outputs, ok := h.loadOutputs(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Saved Outputs"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Template", "Content", "Created"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, o := range outputs {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), o.TemplateType)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), o.Content)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), o.CreatedAt.Format("2006-01-02 15:04"))
	}

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 80)
	f.SetColWidth(sheetName, "C", "C", 18)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"outputs_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
