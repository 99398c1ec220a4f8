package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode"

	"szekhely-portal/config"
	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
)

// Fogadható dokumentum-slotok a varázsló dokumentumok lépésén.
var knownUploadSlots = map[string]bool{
	"idFront":           true,
	"idBack":            true,
	"addressCard":       true,
	"companyExtract":    true,
	"signatureSpecimen": true,
}

// uploadPrefix a cégnévből képzett objektumtár-előtag; névtelen piszkozatnál
// a munkamenet-azonosító az előtag.
func uploadPrefix(draft *WizardDraft) string {
	slug := slugify(draft.Data.Company.Name)
	if slug == "" {
		slug = draft.ID
	}
	return "kyc/" + slug
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsLetter(r):
			// Ékezetes betűk egyszerűsítve, a tárolt név csak ASCII.
			b.WriteRune(stripAccent(r))
		case r == ' ' || r == '-' || r == '_' || r == '.':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func stripAccent(r rune) rune {
	switch r {
	case 'á':
		return 'a'
	case 'é':
		return 'e'
	case 'í':
		return 'i'
	case 'ó', 'ö', 'ő':
		return 'o'
	case 'ú', 'ü', 'ű':
		return 'u'
	}
	return '-'
}

// UploadWizardDocumentHandler a varázsló egy dokumentum-slotjába tölt fel; a
// slot ismételt feltöltése felülírja a korábbit.
func UploadWizardDocumentHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}

	if config.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": wizardMsg(draft.Data.Language,
			"A fájlfeltöltés jelenleg nem elérhető.",
			"File upload is currently unavailable.")})
		return
	}

	slot := c.PostForm("slot")
	if !knownUploadSlots[slot] {
		c.JSON(http.StatusBadRequest, gin.H{"error": wizardMsg(draft.Data.Language,
			"Ismeretlen dokumentumtípus.",
			"Unknown document slot.")})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": wizardMsg(draft.Data.Language,
			"Hiányzik a feltöltendő fájl.",
			"The file to upload is missing.")})
		return
	}
	if file.Size > int64(config.GlobalConfig.Uploads.MaxSizeMB)*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": wizardMsg(draft.Data.Language,
			fmt.Sprintf("A fájl mérete legfeljebb %d MB lehet.", config.GlobalConfig.Uploads.MaxSizeMB),
			fmt.Sprintf("The file may not exceed %d MB.", config.GlobalConfig.Uploads.MaxSizeMB))})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": wizardMsg(draft.Data.Language,
			"Nem sikerült a fájl megnyitása.",
			"Failed to open the uploaded file.")})
		return
	}
	defer src.Close()

	objectName := fmt.Sprintf("%s/%s%s", uploadPrefix(draft), slot, path.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if err := config.Storage.Upload(c.Request.Context(), objectName, src, file.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": wizardMsg(draft.Data.Language,
			"Nem sikerült a feltöltés.",
			"Upload failed.")})
		return
	}

	if draft.Data.UploadedDocuments == nil {
		draft.Data.UploadedDocuments = models.DocumentMap{}
	}
	draft.Data.UploadedDocuments[slot] = objectName
	if err := saveDraft(c, draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": wizardMsg(draft.Data.Language,
			"Nem sikerült a munkamenet mentése.",
			"Failed to save the session.")})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slot": slot, "objectName": objectName})
}

// DeleteWizardDocumentHandler törli a slot feltöltését a tárból és a
// piszkozatból.
func DeleteWizardDocumentHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}

	slot := c.Param("slot")
	objectName, ok := draft.Data.UploadedDocuments[slot]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": wizardMsg(draft.Data.Language,
			"Ehhez a dokumentumtípushoz nincs feltöltés.",
			"No upload exists for this document slot.")})
		return
	}

	if config.Storage != nil {
		if err := config.Storage.Delete(c.Request.Context(), objectName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": wizardMsg(draft.Data.Language,
				"Nem sikerült a fájl törlése.",
				"Failed to delete the file.")})
			return
		}
	}

	delete(draft.Data.UploadedDocuments, slot)
	if err := saveDraft(c, draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": wizardMsg(draft.Data.Language,
			"Nem sikerült a munkamenet mentése.",
			"Failed to save the session.")})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

// ContractDocumentURLHandler aláírt letöltési linket ad az adminnak a
// szerződéshez feltöltött KYC-dokumentumra.
func ContractDocumentURLHandler(c *gin.Context) {
	var contract models.Contract
	if err := config.DB.First(&contract, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A szerződés nem található"})
		return
	}

	slot := c.Param("slot")
	objectName, ok := contract.UploadedDocuments[slot]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ehhez a dokumentumtípushoz nincs feltöltés"})
		return
	}
	if config.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "A fájltár nincs bekapcsolva"})
		return
	}

	url, err := config.Storage.PresignedURL(c.Request.Context(), objectName, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a letöltési link előállítása"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
