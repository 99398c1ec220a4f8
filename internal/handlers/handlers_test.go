package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"szekhely-portal/config"
	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB memóriabeli sqlite adatbázist állít a globális config.DB
// helyére, lemigrált sémával.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Contract{},
		&models.PricingCard{},
		&models.BlogPost{},
		&models.DocumentTemplate{},
		&models.MarketingSetting{},
		&models.GeneratedDocument{},
	)
	require.NoError(t, err)

	config.DB = db
	config.RDB = nil
	config.GlobalConfig = &config.AppConfig{}
	config.GlobalConfig.Uploads.MaxSizeMB = 10
	config.GlobalConfig.Documents.GenerateDelayMs = 1
	config.GlobalConfig.Provider.Name = "Budapest Office Center Kft."
	return db
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func seedContract(t *testing.T, db *gorm.DB, number, status string) models.Contract {
	t.Helper()
	contract := models.Contract{
		ContractNumber: number,
		Status:         status,
		Language:       models.LanguageHU,
		PackageID:      "premium",
		Company:        models.CompanyData{IsNew: true, Name: "Minta Kft."},
		Contact:        models.ContactData{Name: "Kiss János", Email: "janos@minta.hu"},
		Owners: models.OwnerList{{
			Type:             models.OwnerTypeNatural,
			OwnershipPercent: 100,
			Natural:          &models.NaturalOwner{FullName: "Kiss János"},
		}},
	}
	require.NoError(t, db.Create(&contract).Error)
	return contract
}
