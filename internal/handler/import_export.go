package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ImportExportHandler struct {
	DB *gorm.DB
}

func NewImportExportHandler(db *gorm.DB) *ImportExportHandler {
	return &ImportExportHandler{DB: db}
}

type exportRow struct {
	Kind        string
	Category    string
	Amount      string
	Description string
	Method      string
	Date        string
}

// collectRows loads the user's entries with category names resolved, newest
// first, optionally limited to one year.
func (h *ImportExportHandler) collectRows(c *gin.Context, user *models.User) ([]exportRow, bool) {
	q := h.DB.Preload("Category").Where("user_id = ?", user.ID)
	if v := c.Query("year"); v != "" {
		start, ok := parseDate(v + "-01-01")
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid year")
			return nil, false
		}
		q = q.Where("occurred_at >= ? AND occurred_at < ?", start, start.AddDate(1, 0, 0))
	}

	var entries []models.Entry
	if err := q.Order("occurred_at DESC, id DESC").Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return nil, false
	}

	rows := make([]exportRow, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		category := ""
		if e.Category != nil {
			category = e.Category.Name
		}
		rows = append(rows, exportRow{
			Kind:        e.Kind,
			Category:    category,
			Amount:      util.FormatCents(e.AmountCents),
			Description: e.Description,
			Method:      e.PaymentMethod,
			Date:        e.OccurredAt.Format("2006-01-02"),
		})
	}
	return rows, true
}

var exportHeaders = []string{"Type", "Category", "Amount", "Description", "Payment method", "Date"}

// ExportCSV streams the user's entries as CSV.
func (h *ImportExportHandler) ExportCSV(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	rows, ok := h.collectRows(c, user)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"entries_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so Excel detects the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, r := range rows {
		writer.Write([]string{r.Kind, r.Category, r.Amount, r.Description, r.Method, r.Date})
	}
}

// ExportXLSX builds a spreadsheet with the same columns as the CSV export.
func (h *ImportExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	rows, ok := h.collectRows(c, user)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Entries"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, head := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx, r := range rows {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Kind)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Method)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Date)
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 16)
	f.SetColWidth(sheetName, "F", "F", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"entries_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
