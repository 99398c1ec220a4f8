package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"szekhely-portal/config"
	"szekhely-portal/models"

	"github.com/Knetic/govaluate"
	"github.com/gin-gonic/gin"
)

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

const pricingCacheKey = "public:pricing-cards"

// invalidatePricingCache minden árkártya-írás után eldobja a publikus
// gyorsítótárat.
func invalidatePricingCache(c *gin.Context) {
	if config.RDB == nil {
		return
	}
	if err := config.RDB.Del(c.Request.Context(), pricingCacheKey).Err(); err != nil {
		slog.Warn("Árkártya-gyorsítótár ürítése sikertelen", "error", err)
	}
}

// ListPricingCardsHandler az admin teljes listája, csoport és pozíció
// szerint rendezve.
func ListPricingCardsHandler(c *gin.Context) {
	query := config.DB.Model(&models.PricingCard{})
	if group := c.Query("group"); group != "" {
		query = query.Where("card_group = ?", group)
	}

	var cards []models.PricingCard
	if err := query.Order("card_group, position").Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült az árkártyák betöltése"})
		return
	}
	if cards == nil {
		cards = make([]models.PricingCard, 0)
	}
	c.JSON(http.StatusOK, cards)
}

func GetPricingCardHandler(c *gin.Context) {
	var card models.PricingCard
	if err := config.DB.First(&card, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Az árkártya nem található"})
		return
	}
	c.JSON(http.StatusOK, card)
}

func CreatePricingCardHandler(c *gin.Context) {
	var card models.PricingCard
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hibás adatok: " + err.Error()})
		return
	}
	card.ID = 0

	if err := config.DB.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült az árkártya mentése: " + err.Error()})
		return
	}

	invalidatePricingCache(c)
	GlobalHub.Notify("pricing-cards", "create", itoa(card.ID))
	c.JSON(http.StatusCreated, card)
}

func UpdatePricingCardHandler(c *gin.Context) {
	var card models.PricingCard
	if err := config.DB.First(&card, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A módosítandó árkártya nem található"})
		return
	}

	var input models.PricingCard
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hibás adatok: " + err.Error()})
		return
	}
	input.ID = card.ID
	input.CreatedAt = card.CreatedAt

	if err := config.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült az árkártya mentése: " + err.Error()})
		return
	}

	invalidatePricingCache(c)
	GlobalHub.Notify("pricing-cards", "update", c.Param("id"))
	c.JSON(http.StatusOK, input)
}

func DeletePricingCardHandler(c *gin.Context) {
	result := config.DB.Delete(&models.PricingCard{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült az árkártya törlése"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Az árkártya nem található"})
		return
	}

	invalidatePricingCache(c)
	GlobalHub.Notify("pricing-cards", "delete", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Az árkártya törölve"})
}

// ReorderPricingCardsHandler kártyánként külön írja az új pozíciókat, nem
// tranzakcióban: részleges hibánál a sikeres átsorolások megmaradnak, a
// válasz kártyánként jelzi az eredményt.
func ReorderPricingCardsHandler(c *gin.Context) {
	var input []struct {
		ID       uint `json:"id" binding:"required"`
		Position int  `json:"position"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hibás adatok: " + err.Error()})
		return
	}

	type reorderResult struct {
		ID    uint   `json:"id"`
		OK    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	results := make([]reorderResult, 0, len(input))
	failed := 0
	for _, item := range input {
		res := config.DB.Model(&models.PricingCard{}).
			Where("id = ?", item.ID).
			Update("position", item.Position)

		r := reorderResult{ID: item.ID, OK: true}
		switch {
		case res.Error != nil:
			r.OK, r.Error = false, res.Error.Error()
		case res.RowsAffected == 0:
			r.OK, r.Error = false, "a kártya nem található"
		}
		if !r.OK {
			failed++
		}
		results = append(results, r)
	}

	invalidatePricingCache(c)
	GlobalHub.Notify("pricing-cards", "update", "")

	status := http.StatusOK
	if failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"results": results, "failed": failed})
}

// PreviewPriceHandler kiértékeli az árképletet a megadott havi díjjal; az
// admin űrlap élő előnézete hívja mentés előtt.
func PreviewPriceHandler(c *gin.Context) {
	var input struct {
		Formula      string  `json:"formula" binding:"required"`
		MonthlyPrice float64 `json:"monthlyPrice"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hibás adatok: " + err.Error()})
		return
	}

	expr, err := govaluate.NewEvaluableExpression(input.Formula)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hibás képlet: " + err.Error()})
		return
	}

	result, err := expr.Evaluate(map[string]interface{}{
		"havi":    input.MonthlyPrice,
		"monthly": input.MonthlyPrice,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A képlet nem értékelhető ki: " + err.Error()})
		return
	}

	value, ok := result.(float64)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A képlet nem számot ad vissza"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": value})
}

// PublicPricingCardsHandler csoportosított publikus lista; redisben
// gyorsítótárazzuk, mert a marketingoldal minden betöltéskor lekéri.
func PublicPricingCardsHandler(c *gin.Context) {
	if config.RDB != nil {
		cached, err := config.RDB.Get(c.Request.Context(), pricingCacheKey).Result()
		if err == nil && cached != "" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	var cards []models.PricingCard
	if err := config.DB.Order("card_group, position").Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült az árkártyák betöltése"})
		return
	}

	grouped := make(map[string][]models.PricingCard)
	for _, card := range cards {
		grouped[card.Group] = append(grouped[card.Group], card)
	}

	payload, err := json.Marshal(grouped)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a válasz összeállítása"})
		return
	}

	if config.RDB != nil {
		if err := config.RDB.Set(c.Request.Context(), pricingCacheKey, payload, 5*time.Minute).Err(); err != nil {
			slog.Warn("Árkártya-gyorsítótár írása sikertelen", "error", err)
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
