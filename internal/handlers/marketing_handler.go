package handlers

import (
	"net/http"

	"szekhely-portal/config"
	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
)

// GetMarketingSettingsHandler az admin szerkesztőnek adja vissza a globális
// beállításrekordot; ha még nincs, üreset ad.
func GetMarketingSettingsHandler(c *gin.Context) {
	var setting models.MarketingSetting
	err := config.DB.Where("setting_key = ?", models.GlobalMarketingKey).First(&setting).Error
	if err != nil {
		setting = models.MarketingSetting{Key: models.GlobalMarketingKey, Settings: models.JSONB{}}
	}
	c.JSON(http.StatusOK, setting)
}

// UpdateMarketingSettingsHandler upsert: a beküldött beállításkép teljes
// egészében lecseréli a tároltat.
func UpdateMarketingSettingsHandler(c *gin.Context) {
	var input struct {
		Settings models.JSONB `json:"settings" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hibás adatok: " + err.Error()})
		return
	}

	var setting models.MarketingSetting
	err := config.DB.
		Where(models.MarketingSetting{Key: models.GlobalMarketingKey}).
		Assign(models.MarketingSetting{Settings: input.Settings}).
		FirstOrCreate(&setting).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a beállítások mentése: " + err.Error()})
		return
	}

	GlobalHub.Notify("marketing-settings", "update", models.GlobalMarketingKey)
	c.JSON(http.StatusOK, setting)
}

// PublicMarketingSettingsHandler a marketingoldal nyers beállításképe.
func PublicMarketingSettingsHandler(c *gin.Context) {
	var setting models.MarketingSetting
	err := config.DB.Where("setting_key = ?", models.GlobalMarketingKey).First(&setting).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, setting.Settings)
}
