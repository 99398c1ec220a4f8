package handlers

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"szekhely-portal/config"
	"szekhely-portal/internal/docgen"
	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var documentKinds = []string{
	models.DocumentKindContract,
	models.DocumentKindKYC,
	models.DocumentKindPEP,
	models.DocumentKindPostalAuth,
}

func isDocumentKind(kind string) bool {
	for _, k := range documentKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func providerInfo() docgen.Provider {
	p := config.GlobalConfig.Provider
	return docgen.Provider{
		Name:           p.Name,
		Address:        p.Address,
		RegNumber:      p.RegNumber,
		TaxNumber:      p.TaxNumber,
		Representative: p.Representative,
	}
}

// activeTemplateContent a fajtához legutóbb aktivált sablon tartalma; üres
// string, ha nincs (ilyenkor a beépített layout fut).
func activeTemplateContent(kind string) (string, error) {
	var tpl models.DocumentTemplate
	err := config.DB.Where("type = ? AND active = ?", kind, true).
		Order("updated_at desc").First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Warn("Nincs aktív sablon, a beépített layout fut", "kind", kind)
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if tpl.Content == "" {
		return "", fmt.Errorf("a(z) %q sablon tartalma üres", kind)
	}
	return tpl.Content, nil
}

func findCard(packageID string) *models.PricingCard {
	if packageID == "" {
		return nil
	}
	var card models.PricingCard
	if err := config.DB.Where("package_id = ?", packageID).First(&card).Error; err != nil {
		// Lógó packageId megengedett: ilyenkor ár nélkül generálunk.
		return nil
	}
	return &card
}

// generateKind legenerálja és elmenti egy fajta összes példányát (a postai
// meghatalmazásból tulajdonosonként egyet).
func generateKind(contract *models.Contract, kind string) ([]models.GeneratedDocument, error) {
	tplContent, err := activeTemplateContent(kind)
	if err != nil {
		return nil, err
	}
	card := findCard(contract.PackageID)
	provider := providerInfo()
	now := time.Now()

	var docs []models.GeneratedDocument
	switch kind {
	case models.DocumentKindContract:
		docs = append(docs, models.GeneratedDocument{
			ContractID: contract.ID, Kind: kind, OwnerIndex: -1,
			HTML: docgen.GenerateContract(contract, card, provider, tplContent, now),
		})
	case models.DocumentKindKYC:
		docs = append(docs, models.GeneratedDocument{
			ContractID: contract.ID, Kind: kind, OwnerIndex: -1,
			HTML: docgen.GenerateKYCForm(contract, card, provider, tplContent, now),
		})
	case models.DocumentKindPEP:
		docs = append(docs, models.GeneratedDocument{
			ContractID: contract.ID, Kind: kind, OwnerIndex: -1,
			HTML: docgen.GeneratePEPDeclaration(contract, card, provider, tplContent, now),
		})
	case models.DocumentKindPostalAuth:
		for _, auth := range docgen.GeneratePostalAuthorizations(contract, provider, tplContent, now) {
			docs = append(docs, models.GeneratedDocument{
				ContractID: contract.ID, Kind: kind, OwnerIndex: auth.OwnerIndex,
				HTML: auth.HTML,
			})
		}
	default:
		return nil, fmt.Errorf("ismeretlen dokumentumfajta: %q", kind)
	}

	// A korábbi példányokat lecseréljük, majd a szerződésen is frissítjük a
	// fajta -> HTML térképet (az első példánnyal).
	if err := config.DB.Where("contract_id = ? AND kind = ?", contract.ID, kind).
		Delete(&models.GeneratedDocument{}).Error; err != nil {
		return nil, err
	}
	for i := range docs {
		if err := config.DB.Create(&docs[i]).Error; err != nil {
			return nil, err
		}
	}

	if contract.GeneratedDocuments == nil {
		contract.GeneratedDocuments = models.DocumentMap{}
	}
	if len(docs) > 0 {
		contract.GeneratedDocuments[kind] = docs[0].HTML
	}
	return docs, nil
}

// GenerateDocumentsHandler egy fajtát, vagy kind nélkül mind a négyet
// legenerálja. A tömeges ág szándékosan szekvenciális, rögzített szünettel:
// a konverter ütemezése miatt, nem helyességi okból. Részleges hiba esetén a
// már elkészült fajták megmaradnak.
func GenerateDocumentsHandler(c *gin.Context) {
	var contract models.Contract
	if err := config.DB.First(&contract, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A szerződés nem található"})
		return
	}

	kinds := documentKinds
	if kind := c.Query("kind"); kind != "" {
		if !isDocumentKind(kind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Ismeretlen dokumentumfajta: %q", kind)})
			return
		}
		kinds = []string{kind}
	}

	delay := time.Duration(config.GlobalConfig.Documents.GenerateDelayMs) * time.Millisecond
	generated := make(map[string]int, len(kinds))

	for i, kind := range kinds {
		if i > 0 && len(kinds) > 1 {
			time.Sleep(delay)
		}
		docs, err := generateKind(&contract, kind)
		if err != nil {
			slog.Error("Dokumentumgenerálás sikertelen", "kind", kind, "contract", contract.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     fmt.Sprintf("Nem sikerült a(z) %q dokumentum generálása", kind),
				"generated": generated,
			})
			return
		}
		generated[kind] = len(docs)
	}

	if err := config.DB.Model(&contract).Update("generated_documents", contract.GeneratedDocuments).Error; err != nil {
		slog.Error("Generált dokumentumok mentése a szerződésre sikertelen", "error", err)
	}

	GlobalHub.Notify("contracts", "update", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"generated": generated})
}

// ListGeneratedDocumentsHandler a szerződéshez tárolt példányok metaadatai.
func ListGeneratedDocumentsHandler(c *gin.Context) {
	var docs []models.GeneratedDocument
	if err := config.DB.Where("contract_id = ?", c.Param("id")).
		Order("kind, owner_index").Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a dokumentumok betöltése"})
		return
	}
	if docs == nil {
		docs = make([]models.GeneratedDocument, 0)
	}
	c.JSON(http.StatusOK, docs)
}

func loadGeneratedDocument(c *gin.Context) (*models.GeneratedDocument, bool) {
	query := config.DB.Where("contract_id = ? AND kind = ?", c.Param("id"), c.Param("kind"))
	if ownerIdx := c.Query("owner"); ownerIdx != "" {
		i, err := strconv.Atoi(ownerIdx)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Érvénytelen tulajdonos-sorszám"})
			return nil, false
		}
		query = query.Where("owner_index = ?", i)
	}

	var doc models.GeneratedDocument
	if err := query.Order("owner_index").First(&doc).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A kért dokumentum még nincs legenerálva"})
		return nil, false
	}
	return &doc, true
}

// DownloadDocumentHandler a tárolt HTML letöltése.
func DownloadDocumentHandler(c *gin.Context) {
	doc, ok := loadGeneratedDocument(c)
	if !ok {
		return
	}
	filename := fmt.Sprintf("%s-%s.html", c.Param("id"), doc.Kind)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc.HTML))
}

// DownloadDocumentPDFHandler Gotenberggel konvertálja a tárolt HTML-t.
func DownloadDocumentPDFHandler(c *gin.Context) {
	doc, ok := loadGeneratedDocument(c)
	if !ok {
		return
	}

	pdfBytes, err := convertHTMLToPDF([]byte(doc.HTML))
	if err != nil {
		slog.Error("PDF-konverzió sikertelen", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Nem sikerült a PDF előállítása"})
		return
	}

	filename := fmt.Sprintf("%s-%s.pdf", c.Param("id"), doc.Kind)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// DownloadDocumentBundleHandler zipben adja vissza a szerződés összes
// legenerált dokumentumát.
func DownloadDocumentBundleHandler(c *gin.Context) {
	var docs []models.GeneratedDocument
	if err := config.DB.Where("contract_id = ?", c.Param("id")).
		Order("kind, owner_index").Find(&docs).Error; err != nil || len(docs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Nincs letölthető dokumentum"})
		return
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, doc := range docs {
		name := doc.Kind + ".html"
		if doc.OwnerIndex >= 0 {
			name = fmt.Sprintf("%s-%d.html", doc.Kind, doc.OwnerIndex+1)
		}
		w, err := zw.Create(name)
		if err == nil {
			_, err = w.Write([]byte(doc.HTML))
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a csomag összeállítása"})
			return
		}
	}
	if err := zw.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a csomag lezárása"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=contract-%s-documents.zip", c.Param("id")))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// convertHTMLToPDF a Gotenberg chromium végpontját hívja.
func convertHTMLToPDF(html []byte) ([]byte, error) {
	gotenbergURL := config.GlobalConfig.Documents.GotenbergURL
	if gotenbergURL == "" {
		return nil, errors.New("a Gotenberg URL nincs beállítva")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, fmt.Errorf("űrlaprész létrehozása sikertelen: %w", err)
	}
	if _, err := part.Write(html); err != nil {
		return nil, fmt.Errorf("HTML írása sikertelen: %w", err)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, gotenbergURL+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, fmt.Errorf("kérés létrehozása sikertelen: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("a konverter nem érhető el: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("konverziós hiba: státusz %d, válasz: %s", resp.StatusCode, string(respBody))
	}
	return io.ReadAll(resp.Body)
}

// PreviewWizardDocumentHandler varázsló közbeni előnézet a piszkozatból;
// hiányos adatnál is működik, a hiányzó mezők üresen jelennek meg.
func PreviewWizardDocumentHandler(c *gin.Context) {
	draft, err := loadDraft(c, c.Param("id"))
	if err != nil {
		draftError(c, models.LanguageHU, err)
		return
	}

	kind := c.Param("kind")
	tplContent, err := activeTemplateContent(kind)
	if err != nil {
		tplContent = ""
	}
	card := findCard(draft.Data.PackageID)
	provider := providerInfo()
	now := time.Now()

	var html string
	switch kind {
	case models.DocumentKindContract:
		html = docgen.GenerateContract(&draft.Data, card, provider, tplContent, now)
	case models.DocumentKindKYC:
		html = docgen.GenerateKYCForm(&draft.Data, card, provider, tplContent, now)
	case models.DocumentKindPEP:
		html = docgen.GeneratePEPDeclaration(&draft.Data, card, provider, tplContent, now)
	case models.DocumentKindPostalAuth:
		auths := docgen.GeneratePostalAuthorizations(&draft.Data, provider, tplContent, now)
		if len(auths) > 0 {
			html = auths[0].HTML
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ismeretlen dokumentumfajta"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
