package handlers

import (
	"net/http"

	"szekhely-portal/config"
	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var knownTemplateTypes = map[string]bool{
	models.DocumentKindContract:   true,
	models.DocumentKindKYC:        true,
	models.DocumentKindPEP:        true,
	models.DocumentKindPostalAuth: true,
}

// ListDocumentTemplatesHandler sablonlista, fajta szerint szűrhető.
func ListDocumentTemplatesHandler(c *gin.Context) {
	query := config.DB.Model(&models.DocumentTemplate{})
	if kind := c.Query("type"); kind != "" {
		query = query.Where("type = ?", kind)
	}

	var templates []models.DocumentTemplate
	if err := query.Order("type, updated_at desc").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a sablonok betöltése"})
		return
	}
	if templates == nil {
		templates = make([]models.DocumentTemplate, 0)
	}
	c.JSON(http.StatusOK, templates)
}

func GetDocumentTemplateHandler(c *gin.Context) {
	var template models.DocumentTemplate
	if err := config.DB.First(&template, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A sablon nem található"})
		return
	}
	c.JSON(http.StatusOK, template)
}

func CreateDocumentTemplateHandler(c *gin.Context) {
	var template models.DocumentTemplate
	if err := c.ShouldBindJSON(&template); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hibás adatok: " + err.Error()})
		return
	}
	if !knownTemplateTypes[template.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ismeretlen sablonfajta"})
		return
	}
	template.ID = 0
	// Új sablon mindig inaktívan jön létre, külön lépés az élesítés.
	template.Active = false

	if err := config.DB.Create(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a sablon mentése: " + err.Error()})
		return
	}

	GlobalHub.Notify("document-templates", "create", itoa(template.ID))
	c.JSON(http.StatusCreated, template)
}

func UpdateDocumentTemplateHandler(c *gin.Context) {
	var template models.DocumentTemplate
	if err := config.DB.First(&template, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A módosítandó sablon nem található"})
		return
	}

	var input models.DocumentTemplate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hibás adatok: " + err.Error()})
		return
	}
	if input.Type != "" && !knownTemplateTypes[input.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ismeretlen sablonfajta"})
		return
	}

	input.ID = template.ID
	input.CreatedAt = template.CreatedAt
	input.Active = template.Active
	if input.Type == "" {
		input.Type = template.Type
	}

	if err := config.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a sablon mentése: " + err.Error()})
		return
	}

	GlobalHub.Notify("document-templates", "update", c.Param("id"))
	c.JSON(http.StatusOK, input)
}

// ActivateDocumentTemplateHandler élesíti a sablont; fajtánként egyszerre
// csak egy aktív lehet, a többit ugyanabban a tranzakcióban leállítjuk.
func ActivateDocumentTemplateHandler(c *gin.Context) {
	var template models.DocumentTemplate
	if err := config.DB.First(&template, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A sablon nem található"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DocumentTemplate{}).
			Where("type = ? AND id <> ?", template.Type, template.ID).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&template).Update("active", true).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a sablon élesítése"})
		return
	}

	template.Active = true
	GlobalHub.Notify("document-templates", "update", c.Param("id"))
	c.JSON(http.StatusOK, template)
}

func DeleteDocumentTemplateHandler(c *gin.Context) {
	result := config.DB.Delete(&models.DocumentTemplate{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a sablon törlése"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "A sablon nem található"})
		return
	}

	GlobalHub.Notify("document-templates", "delete", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "A sablon törölve"})
}
