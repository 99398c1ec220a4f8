package models

import "gorm.io/gorm"

// GlobalMarketingKey az egyetlen logikai beállítás-sor kulcsa.
const GlobalMarketingKey = "global"

// MarketingSetting a marketing/mérőkód beállítások (GTM, GA4, FB pixel,
// consent) egyetlen upsertelt sora.
type MarketingSetting struct {
	gorm.Model
	Key      string `gorm:"column:setting_key;unique;not null" json:"key"`
	Settings JSONB  `gorm:"type:jsonb" json:"settings"`
}

func (MarketingSetting) TableName() string { return "marketing_settings" }
