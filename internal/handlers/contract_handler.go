package handlers

import (
	"errors"
	"net/http"
	"strings"

	"szekhely-portal/config"
	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Érvényes státuszátmenet-célok az admin felületről. A pending_review-t a
// beadás állítja, a draft csak a varázslóban létezik.
var staffSettableStatuses = map[string]bool{
	models.StatusPendingReview:   true,
	models.StatusDocumentsNeeded: true,
	models.StatusApproved:        true,
	models.StatusRejected:        true,
	models.StatusActive:          true,
	models.StatusTerminated:      true,
}

// ListContractsHandler lapozott, kereshető szerződéslista az adminnak.
func ListContractsHandler(c *gin.Context) {
	var contracts []models.Contract
	var totalRows int64

	query := config.DB.Model(&models.Contract{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(contract_number) LIKE ? OR LOWER(company ->> 'name') LIKE ? OR LOWER(contact ->> 'email') LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a szerződések számlálása"})
		return
	}

	if err := query.Scopes(Paginate(c)).Order("created_at desc").Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a szerződések betöltése: " + err.Error()})
		return
	}
	if contracts == nil {
		contracts = make([]models.Contract, 0)
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, contracts, totalRows))
}

func GetContractHandler(c *gin.Context) {
	var contract models.Contract
	if err := config.DB.First(&contract, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "A szerződés nem található"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hiba a szerződés lekérésekor"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

// UpdateContractHandler teljes rekordcserés mentés (merge-write): az admin
// űrlap a teljes adatképet küldi vissza.
func UpdateContractHandler(c *gin.Context) {
	var contract models.Contract
	if err := config.DB.First(&contract, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A módosítandó szerződés nem található"})
		return
	}

	var input models.Contract
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hibás adatok: " + err.Error()})
		return
	}

	// Azonosítók és a kiosztott szám nem írhatók felül.
	input.ID = contract.ID
	input.ContractNumber = contract.ContractNumber
	input.CreatedAt = contract.CreatedAt
	if input.Status == "" {
		input.Status = contract.Status
	}

	if err := config.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a szerződés mentése: " + err.Error()})
		return
	}

	GlobalHub.Notify("contracts", "update", c.Param("id"))
	c.JSON(http.StatusOK, input)
}

// UpdateContractStatusHandler csak a státuszt állítja.
func UpdateContractStatusHandler(c *gin.Context) {
	var contract models.Contract
	if err := config.DB.First(&contract, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A szerződés nem található"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !staffSettableStatuses[input.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Érvénytelen státusz"})
		return
	}

	contract.Status = input.Status
	if err := config.DB.Save(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a státusz mentése"})
		return
	}

	GlobalHub.Notify("contracts", "update", c.Param("id"))
	c.JSON(http.StatusOK, contract)
}

// DeleteContractHandler a szerződést és a hozzá generált dokumentumokat
// törli; csak kifejezett admin művelettel hívható.
func DeleteContractHandler(c *gin.Context) {
	id := c.Param("id")
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", id).Delete(&models.GeneratedDocument{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Contract{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "A szerződés nem található"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a szerződés törlése: " + err.Error()})
		return
	}

	GlobalHub.Notify("contracts", "delete", id)
	c.JSON(http.StatusOK, gin.H{"message": "A szerződés törölve"})
}
