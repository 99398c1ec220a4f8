package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/vlkzh/gormup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"szekhely-portal/models"
)

var DB *gorm.DB

// ConnectDB felépíti a Postgres kapcsolatot. Induláskor rövid ideig
// újrapróbálkozunk, mert konténeres környezetben a DB később áll fel.
func ConnectDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		slog.Error("Kritikus hiba: a DB_URL környezeti változó nincs beállítva.")
		os.Exit(1)
	}

	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(connect, policy); err != nil {
		slog.Error("Nem sikerült csatlakozni az adatbázishoz", "error", err)
		os.Exit(1)
	}

	// Fölösleges UPDATE-ek és ismételt lekérdezések szűrése.
	gormup.Register(db, gormup.Config{})

	if err := db.AutoMigrate(
		&models.Contract{},
		&models.PricingCard{},
		&models.BlogPost{},
		&models.DocumentTemplate{},
		&models.MarketingSetting{},
		&models.GeneratedDocument{},
	); err != nil {
		slog.Error("Sikertelen sémamigráció", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Sikeres adatbázis-kapcsolat.")
}
