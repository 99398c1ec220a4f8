package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"szekhely-portal/config"
	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportContractsHandler XLSX-be menti a szerződéslistát; ugyanazokat a
// szűrőket fogadja, mint a lista végpont, de lapozás nélkül.
func ExportContractsHandler(c *gin.Context) {
	query := config.DB.Model(&models.Contract{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var contracts []models.Contract
	if err := query.Order("created_at desc").Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a szerződések betöltése"})
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("Excel fájl lezárása sikertelen", "error", err)
		}
	}()

	sheet := "Szerződések"
	index, err := f.NewSheet(sheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a munkalap létrehozása"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Szerződésszám", "Státusz", "Cégnév", "Csomag",
		"Kapcsolattartó", "E-mail", "Telefon", "Nyelv", "Létrehozva",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(sheet, "A1", fmt.Sprintf("%c1", 'A'+len(headers)-1), boldStyle)
	}

	for row, contract := range contracts {
		values := []interface{}{
			contract.ContractNumber,
			contract.Status,
			contract.Company.Name,
			contract.PackageID,
			contract.Contact.Name,
			contract.Contact.Email,
			contract.Contact.Phone,
			contract.Language,
			contract.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "C", "C", 32)
	f.SetColWidth(sheet, "E", "F", 26)
	f.SetColWidth(sheet, "I", "I", 18)

	filename := fmt.Sprintf("szerzodesek-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		slog.Error("Excel exportálás sikertelen", "error", err)
	}
}
