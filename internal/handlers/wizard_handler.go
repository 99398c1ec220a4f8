package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"szekhely-portal/config"
	"szekhely-portal/internal/wizard"
	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// WizardDraft a varázsló munkamenete: a kitöltés alatt álló szerződéskép és
// az aktuális lépés. Redisben él TTL-lel; az adatbázisba csak beadáskor kerül
// egyetlen create.
type WizardDraft struct {
	ID          string          `json:"id"`
	CurrentStep wizard.Step     `json:"currentStep"`
	Data        models.Contract `json:"data"`
	CreatedAt   time.Time       `json:"createdAt"`
}

var errDraftNotFound = errors.New("draft not found")

func draftKey(id string) string { return "wizard:draft:" + id }

func draftTTL() time.Duration {
	return time.Duration(config.GlobalConfig.Wizard.DraftTTLHours) * time.Hour
}

func loadDraft(c *gin.Context, id string) (*WizardDraft, error) {
	if config.RDB == nil {
		return nil, errors.New("redis unavailable")
	}
	raw, err := config.RDB.Get(c.Request.Context(), draftKey(id)).Result()
	if err == redis.Nil {
		return nil, errDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	var draft WizardDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func saveDraft(c *gin.Context, draft *WizardDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return config.RDB.Set(c.Request.Context(), draftKey(draft.ID), raw, draftTTL()).Err()
}

// draftError egyetlen lokalizált üzenetté redukálja a tárhibákat, ahogy a
// specifikáció előírja: nincs automatikus újrapróbálkozás.
func draftError(c *gin.Context, language string, err error) {
	if errors.Is(err, errDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": wizardMsg(language,
			"A munkamenet nem található vagy lejárt.",
			"The session was not found or has expired.")})
		return
	}
	slog.Error("Varázsló munkamenet-hiba", "error", err)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": wizardMsg(language,
		"Átmeneti hiba történt, kérjük próbálja újra.",
		"A temporary error occurred, please try again.")})
}

func wizardMsg(language, hu, en string) string {
	if language == models.LanguageEN {
		return en
	}
	return hu
}

// StartWizardHandler új piszkozatot nyit alapértelmezett adatokkal. A nyelv
// a létrehozáskor rögzül.
func StartWizardHandler(c *gin.Context) {
	var input struct {
		Language    string `json:"language"`
		ServiceType string `json:"serviceType"`
	}
	_ = c.ShouldBindJSON(&input)
	if input.Language != models.LanguageEN {
		input.Language = models.LanguageHU
	}

	draft := &WizardDraft{
		ID:          uuid.New().String(),
		CurrentStep: wizard.StepCompanyType,
		CreatedAt:   time.Now(),
		Data: models.Contract{
			Status:      models.StatusDraft,
			Language:    input.Language,
			ServiceType: input.ServiceType,
			Company:     models.CompanyData{IsNew: true},
			Owners: models.OwnerList{
				{Type: models.OwnerTypeNatural, OwnershipPercent: 100, Natural: &models.NaturalOwner{}},
			},
			UploadedDocuments:  models.DocumentMap{},
			GeneratedDocuments: models.DocumentMap{},
		},
	}

	if config.RDB == nil {
		draftError(c, input.Language, errors.New("redis unavailable"))
		return
	}
	if err := saveDraft(c, draft); err != nil {
		draftError(c, input.Language, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// GetWizardDraftHandler visszaadja a piszkozatot a lépésenkénti érvényességi
// térképpel együtt (a "kész" jelölőkhöz).
func GetWizardDraftHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}

	validity := make(map[wizard.Step]wizard.StepValidation, len(wizard.Steps))
	for _, step := range wizard.Steps {
		validity[step] = wizard.ValidateStep(step, &draft.Data, draft.Data.Language)
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft, "validity": validity})
}

// UpdateWizardDataHandler a teljes adatképet cseréli (a űrlapállapot a
// kliensé); a rögzített mezőkhöz nem nyúl.
func UpdateWizardDataHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}

	var data models.Contract
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": wizardMsg(draft.Data.Language,
			"Hibás adatok: "+err.Error(),
			"Invalid data: "+err.Error())})
		return
	}

	// A nyelv és a státusz a munkamenetben rögzített.
	data.Language = draft.Data.Language
	data.Status = models.StatusDraft
	data.UploadedDocuments = draft.Data.UploadedDocuments
	draft.Data = data

	if err := saveDraft(c, draft); err != nil {
		draftError(c, draft.Data.Language, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetOwnerPercentHandler a kiegyenlítő szabállyal állítja a tulajdoni
// hányadot.
func SetOwnerPercentHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= len(draft.Data.Owners) {
		c.JSON(http.StatusBadRequest, gin.H{"error": wizardMsg(draft.Data.Language,
			"Érvénytelen tulajdonos-sorszám.", "Invalid owner index.")})
		return
	}

	var input struct {
		Value int `json:"value"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": wizardMsg(draft.Data.Language,
			"Hiányzó érték.", "Missing value.")})
		return
	}

	draft.Data.Owners = wizard.SetOwnerPercent(draft.Data.Owners, index, input.Value)
	if err := saveDraft(c, draft); err != nil {
		draftError(c, draft.Data.Language, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"owners": draft.Data.Owners})
}

// SetRepresentativeNationalityHandler az állampolgárság átírása a
// származtatott isForeign szabállyal.
func SetRepresentativeNationalityHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}

	var input struct {
		Nationality string `json:"nationality" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": wizardMsg(draft.Data.Language,
			"Hiányzó állampolgárság.", "Missing nationality.")})
		return
	}

	wizard.ApplyRepresentativeNationality(&draft.Data.Representative, input.Nationality)
	if err := saveDraft(c, draft); err != nil {
		draftError(c, draft.Data.Language, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"representative": draft.Data.Representative})
}

// SetRepresentativeForeignHandler kézi felülbírálás; ezután az automatikus
// származtatás már nem ír.
func SetRepresentativeForeignHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}

	var input struct {
		IsForeign *bool `json:"isForeign" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": wizardMsg(draft.Data.Language,
			"Hiányzó érték.", "Missing value.")})
		return
	}

	wizard.SetRepresentativeForeign(&draft.Data.Representative, *input.IsForeign)
	if err := saveDraft(c, draft); err != nil {
		draftError(c, draft.Data.Language, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"representative": draft.Data.Representative})
}

// CopyOwnerToRepresentativeHandler a "megegyezik a tulajdonossal" művelet.
func CopyOwnerToRepresentativeHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}
	if len(draft.Data.Owners) > 0 {
		wizard.CopyOwnerToRepresentative(&draft.Data.Representative, draft.Data.Owners[0])
	}
	if err := saveDraft(c, draft); err != nil {
		draftError(c, draft.Data.Language, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"representative": draft.Data.Representative})
}

// SetContactSameAsOwnerHandler be- vagy kikapcsolja a kapcsolattartó
// másolását; bekapcsoláskor másol, nem hivatkozik.
func SetContactSameAsOwnerHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}

	var input struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": wizardMsg(draft.Data.Language,
			"Hiányzó érték.", "Missing value.")})
		return
	}

	if *input.Enabled {
		wizard.SyncContactFromOwner(&draft.Data.Contact, draft.Data.Owners)
	} else {
		draft.Data.Contact.IsSameAsOwner = false
	}
	if err := saveDraft(c, draft); err != nil {
		draftError(c, draft.Data.Language, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": draft.Data.Contact})
}

// WizardNextHandler / WizardPrevHandler egy pozíciót lép; a határokon nem
// mozdul. A görgetés a felület dolga, itt csak az index változik.
func WizardNextHandler(c *gin.Context) { stepMove(c, wizard.NextStep) }
func WizardPrevHandler(c *gin.Context) { stepMove(c, wizard.PrevStep) }

func stepMove(c *gin.Context, move func(wizard.Step) wizard.Step) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}
	draft.CurrentStep = move(draft.CurrentStep)
	if err := saveDraft(c, draft); err != nil {
		draftError(c, draft.Data.Language, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"currentStep": draft.CurrentStep})
}

// WizardGoToHandler feltétel nélküli ugrás; az előreugrás korlátozása
// felületi szabály, az állapotgép nem kényszeríti ki.
func WizardGoToHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}

	var input struct {
		Step wizard.Step `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !wizard.IsKnownStep(input.Step) {
		c.JSON(http.StatusBadRequest, gin.H{"error": wizardMsg(draft.Data.Language,
			"Ismeretlen lépés.", "Unknown step.")})
		return
	}

	draft.CurrentStep = wizard.GoToStep(draft.CurrentStep, input.Step)
	if err := saveDraft(c, draft); err != nil {
		draftError(c, draft.Data.Language, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"currentStep": draft.CurrentStep})
}

// ValidateWizardStepHandler tetszőleges lépés újravalidálása.
func ValidateWizardStepHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}

	step := wizard.Step(c.Query("step"))
	if step == "" {
		step = draft.CurrentStep
	}
	if !wizard.IsKnownStep(step) {
		c.JSON(http.StatusBadRequest, gin.H{"error": wizardMsg(draft.Data.Language,
			"Ismeretlen lépés.", "Unknown step.")})
		return
	}
	c.JSON(http.StatusOK, wizard.ValidateStep(step, &draft.Data, draft.Data.Language))
}

// SubmitWizardHandler a beadás: sorban újravalidál minden lépést, az első
// hibánál megáll, sikernél egyetlen create-tel rögzíti a szerződést
// pending_review státusszal, majd törli a piszkozatot.
func SubmitWizardHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}
	language := draft.Data.Language

	// Dupla beadás elleni zár; a művelet nem szakítható meg, de ismételni
	// sem engedjük, amíg fut.
	lockKey := "wizard:submit:" + draft.ID
	locked, err := config.RDB.SetNX(c.Request.Context(), lockKey, "1", 30*time.Second).Result()
	if err == nil && !locked {
		c.JSON(http.StatusConflict, gin.H{"error": wizardMsg(language,
			"A beadás már folyamatban van.", "Submission is already in progress.")})
		return
	}
	defer config.RDB.Del(c.Request.Context(), lockKey)

	if step, v := wizard.ValidateAll(&draft.Data, language); !v.IsValid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"step":  step,
			"error": v.Errors[0],
		})
		return
	}

	contract := draft.Data
	contract.Status = models.StatusPendingReview

	created, err := createContractWithUniqueNumber(&contract)
	if err != nil {
		slog.Error("Szerződés mentése sikertelen", "error", err, "draft", draft.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": wizardMsg(language,
			"Nem sikerült a kérelem beadása, kérjük próbálja meg később.",
			"Could not submit the request, please try again later.")})
		return
	}

	config.RDB.Del(c.Request.Context(), draftKey(draft.ID))
	GlobalHub.Notify("contracts", "create", fmt.Sprint(created.ID))

	c.JSON(http.StatusCreated, gin.H{
		"id":             created.ID,
		"contractNumber": created.ContractNumber,
	})
}

// createContractWithUniqueNumber "SZH-<év>-<sorszám>" számot ad, és ütközés
// esetén lépteti a sorszámot (legfeljebb 10 próbálkozás).
func createContractWithUniqueNumber(contract *models.Contract) (*models.Contract, error) {
	const maxTries = 10

	var existing int64
	if err := config.DB.Model(&models.Contract{}).Count(&existing).Error; err != nil {
		return nil, err
	}
	seq := int(existing) + 1
	year := time.Now().Year()

	for i := 0; i < maxTries; i++ {
		attempt := *contract
		attempt.ContractNumber = fmt.Sprintf("SZH-%d-%04d", year, seq)

		err := config.DB.Create(&attempt).Error
		if err == nil {
			return &attempt, nil
		}
		if isUniqueViolation(err) {
			seq++
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("nem sikerült egyedi szerződésszámot kiosztani %d próbálkozás után", maxTries)
}

func isUniqueViolation(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key value") || strings.Contains(s, "unique constraint")
}
