package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateRouter() *gin.Engine {
	r := setupRouter()
	r.GET("/document-templates", ListDocumentTemplatesHandler)
	r.POST("/document-templates", CreateDocumentTemplateHandler)
	r.PUT("/document-templates/:id", UpdateDocumentTemplateHandler)
	r.POST("/document-templates/:id/activate", ActivateDocumentTemplateHandler)
	r.DELETE("/document-templates/:id", DeleteDocumentTemplateHandler)
	return r
}

func TestCreateTemplateStartsInactive(t *testing.T) {
	SetupTestDB(t)
	w := doJSON(t, templateRouter(), http.MethodPost, "/document-templates", models.DocumentTemplate{
		Type:    models.DocumentKindKYC,
		Name:    "KYC 2026",
		Content: "{{COMPANY_NAME}}",
		Active:  true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var tpl models.DocumentTemplate
	decodeBody(t, w, &tpl)
	assert.False(t, tpl.Active)
}

func TestCreateTemplateRejectsUnknownKind(t *testing.T) {
	SetupTestDB(t)
	w := doJSON(t, templateRouter(), http.MethodPost, "/document-templates", models.DocumentTemplate{
		Type: "szamla",
		Name: "Számla",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivateTemplateDeactivatesSameKind(t *testing.T) {
	db := SetupTestDB(t)
	old := models.DocumentTemplate{Type: models.DocumentKindKYC, Name: "Régi", Content: "régi", Active: true}
	require.NoError(t, db.Create(&old).Error)
	other := models.DocumentTemplate{Type: models.DocumentKindPEP, Name: "PEP", Content: "pep", Active: true}
	require.NoError(t, db.Create(&other).Error)
	fresh := models.DocumentTemplate{Type: models.DocumentKindKYC, Name: "Új", Content: "új"}
	require.NoError(t, db.Create(&fresh).Error)

	w := doJSON(t, templateRouter(), http.MethodPost,
		fmt.Sprintf("/document-templates/%d/activate", fresh.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var kyc []models.DocumentTemplate
	require.NoError(t, db.Where("type = ? AND active = ?", models.DocumentKindKYC, true).Find(&kyc).Error)
	require.Len(t, kyc, 1)
	assert.Equal(t, "Új", kyc[0].Name)

	// Másik fajta aktív sablonja érintetlen.
	var pep models.DocumentTemplate
	require.NoError(t, db.First(&pep, other.ID).Error)
	assert.True(t, pep.Active)
}

func TestUpdateTemplateDoesNotTouchActiveFlag(t *testing.T) {
	db := SetupTestDB(t)
	tpl := models.DocumentTemplate{Type: models.DocumentKindKYC, Name: "KYC", Content: "v1", Active: true}
	require.NoError(t, db.Create(&tpl).Error)

	w := doJSON(t, templateRouter(), http.MethodPut,
		fmt.Sprintf("/document-templates/%d", tpl.ID),
		models.DocumentTemplate{Name: "KYC", Content: "v2", Active: false})
	require.Equal(t, http.StatusOK, w.Code)

	var saved models.DocumentTemplate
	require.NoError(t, db.First(&saved, tpl.ID).Error)
	assert.Equal(t, "v2", saved.Content)
	assert.True(t, saved.Active)
}

func TestListTemplatesFilterByKind(t *testing.T) {
	db := SetupTestDB(t)
	require.NoError(t, db.Create(&models.DocumentTemplate{Type: models.DocumentKindKYC, Name: "KYC"}).Error)
	require.NoError(t, db.Create(&models.DocumentTemplate{Type: models.DocumentKindPEP, Name: "PEP"}).Error)

	w := doJSON(t, templateRouter(), http.MethodGet, "/document-templates?type=kyc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var templates []models.DocumentTemplate
	decodeBody(t, w, &templates)
	require.Len(t, templates, 1)
	assert.Equal(t, models.DocumentKindKYC, templates[0].Type)
}
