package handlers

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func documentRouter() *gin.Engine {
	r := setupRouter()
	r.POST("/contracts/:id/documents/generate", GenerateDocumentsHandler)
	r.GET("/contracts/:id/documents", ListGeneratedDocumentsHandler)
	r.GET("/contracts/:id/documents/bundle", DownloadDocumentBundleHandler)
	r.GET("/contracts/:id/documents/:kind", DownloadDocumentHandler)
	return r
}

func TestGenerateAllDocumentKinds(t *testing.T) {
	db := SetupTestDB(t)
	contract := seedContract(t, db, "SZH-2026-0001", models.StatusPendingReview)

	w := doJSON(t, documentRouter(), http.MethodPost,
		fmt.Sprintf("/contracts/%d/documents/generate", contract.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Generated map[string]int `json:"generated"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, 1, resp.Generated[models.DocumentKindContract])
	assert.Equal(t, 1, resp.Generated[models.DocumentKindKYC])
	assert.Equal(t, 1, resp.Generated[models.DocumentKindPEP])
	// Egy tulajdonos, egy postai meghatalmazás.
	assert.Equal(t, 1, resp.Generated[models.DocumentKindPostalAuth])

	var saved models.Contract
	require.NoError(t, db.First(&saved, contract.ID).Error)
	assert.Contains(t, saved.GeneratedDocuments, models.DocumentKindContract)
	assert.Contains(t, saved.GeneratedDocuments[models.DocumentKindContract], "SZH-2026-0001")
}

func TestGenerateSingleKindReplacesPrevious(t *testing.T) {
	db := SetupTestDB(t)
	contract := seedContract(t, db, "SZH-2026-0001", models.StatusPendingReview)
	url := fmt.Sprintf("/contracts/%d/documents/generate?kind=%s", contract.ID, models.DocumentKindKYC)

	router := documentRouter()
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, url, nil).Code)
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, url, nil).Code)

	var count int64
	db.Model(&models.GeneratedDocument{}).
		Where("contract_id = ? AND kind = ?", contract.ID, models.DocumentKindKYC).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGeneratePostalAuthPerOwner(t *testing.T) {
	db := SetupTestDB(t)
	contract := seedContract(t, db, "SZH-2026-0001", models.StatusPendingReview)
	contract.Owners = append(contract.Owners, models.OwnerData{
		Type:             models.OwnerTypeNatural,
		OwnershipPercent: 0,
		Natural:          &models.NaturalOwner{FullName: "Nagy Éva"},
	})
	require.NoError(t, db.Save(&contract).Error)

	url := fmt.Sprintf("/contracts/%d/documents/generate?kind=%s", contract.ID, models.DocumentKindPostalAuth)
	w := doJSON(t, documentRouter(), http.MethodPost, url, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var docs []models.GeneratedDocument
	require.NoError(t, db.Where("contract_id = ? AND kind = ?",
		contract.ID, models.DocumentKindPostalAuth).Order("owner_index").Find(&docs).Error)
	require.Len(t, docs, 2)
	assert.Equal(t, 0, docs[0].OwnerIndex)
	assert.Equal(t, 1, docs[1].OwnerIndex)
	assert.Contains(t, docs[1].HTML, "Nagy Éva")
}

func TestGenerateUnknownKindRejected(t *testing.T) {
	db := SetupTestDB(t)
	contract := seedContract(t, db, "SZH-2026-0001", models.StatusPendingReview)

	url := fmt.Sprintf("/contracts/%d/documents/generate?kind=nincs-ilyen", contract.ID)
	w := doJSON(t, documentRouter(), http.MethodPost, url, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.GeneratedDocument{}).Where("contract_id = ?", contract.ID).Count(&count)
	assert.Zero(t, count)
}

func TestGenerateUsesActiveTemplate(t *testing.T) {
	db := SetupTestDB(t)
	contract := seedContract(t, db, "SZH-2026-0001", models.StatusPendingReview)
	require.NoError(t, db.Create(&models.DocumentTemplate{
		Type:    models.DocumentKindContract,
		Name:    "Egyedi szerződéssablon",
		Content: "EGYEDI: {{CONTRACT_NUMBER}}",
		Active:  true,
	}).Error)

	url := fmt.Sprintf("/contracts/%d/documents/generate?kind=%s", contract.ID, models.DocumentKindContract)
	require.Equal(t, http.StatusOK, doJSON(t, documentRouter(), http.MethodPost, url, nil).Code)

	var doc models.GeneratedDocument
	require.NoError(t, db.Where("contract_id = ? AND kind = ?",
		contract.ID, models.DocumentKindContract).First(&doc).Error)
	assert.Equal(t, "EGYEDI: SZH-2026-0001", doc.HTML)
}

func TestDownloadDocumentAndBundle(t *testing.T) {
	db := SetupTestDB(t)
	contract := seedContract(t, db, "SZH-2026-0001", models.StatusPendingReview)
	router := documentRouter()

	// Generálás előtt nincs mit letölteni.
	w := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/contracts/%d/documents/%s", contract.ID, models.DocumentKindKYC), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/contracts/%d/documents/generate", contract.ID), nil).Code)

	w = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/contracts/%d/documents/%s", contract.ID, models.DocumentKindKYC), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".html")

	w = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/contracts/%d/documents/bundle", contract.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 4)
}

func TestListGeneratedDocuments(t *testing.T) {
	db := SetupTestDB(t)
	contract := seedContract(t, db, "SZH-2026-0001", models.StatusPendingReview)
	router := documentRouter()

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/contracts/%d/documents", contract.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/contracts/%d/documents/generate", contract.ID), nil).Code)

	var docs []models.GeneratedDocument
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/contracts/%d/documents", contract.ID), nil)
	decodeBody(t, w, &docs)
	assert.Len(t, docs, 4)
}
