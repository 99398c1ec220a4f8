package models

import (
	"database/sql/driver"

	"gorm.io/gorm"
)

// StringList kétnyelvű feature-listák jsonb oszlopa.
type StringList []string

func (s StringList) Value() (driver.Value, error) { return jsonbValue(s) }
func (s *StringList) Scan(value interface{}) error {
	return jsonbScan(value, s)
}

// PricingCard árkártya a publikus oldalon. A Position kézi sorrend, a
// PackageID konvenció szerinti hivatkozás (nincs idegen kulcs, lóghat a
// levegőben).
type PricingCard struct {
	gorm.Model
	Group    string `gorm:"column:card_group;index" json:"group"`
	Position int    `gorm:"column:position"         json:"position"`
	Style    string `gorm:"column:style"            json:"style"`

	TitleHU       string `json:"titleHu"`
	TitleEN       string `json:"titleEn"`
	DescriptionHU string `json:"descriptionHu"`
	DescriptionEN string `json:"descriptionEn"`
	PriceTextHU   string `json:"priceTextHu"`
	PriceTextEN   string `json:"priceTextEn"`

	FeaturesHU StringList `gorm:"type:jsonb" json:"featuresHu"`
	FeaturesEN StringList `gorm:"type:jsonb" json:"featuresEn"`

	PackageID    string  `gorm:"column:package_id" json:"packageId"`
	MonthlyPrice float64 `json:"monthlyPrice"`

	// Opcionális árképlet az admin előnézethez, pl. "havi * 12 * 0.9".
	PriceFormula string `json:"priceFormula"`
}

func (PricingCard) TableName() string { return "pricing_cards" }
