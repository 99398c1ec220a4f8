package models

import "gorm.io/gorm"

// Dokumentumfajták, amelyekhez sablon tartozhat.
const (
	DocumentKindContract   = "contract"
	DocumentKindKYC        = "kyc"
	DocumentKindPEP        = "pep-declaration"
	DocumentKindPostalAuth = "postal-authorization"
)

// DocumentTemplate shortcode-os HTML sablon. Generáláskor fajtánként a
// legutóbb aktivált sablont használjuk; ha nincs aktív, a beépített layout fut.
type DocumentTemplate struct {
	gorm.Model
	Type    string `gorm:"column:type;index" json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Active  bool   `gorm:"column:active;index" json:"active"`
}

func (DocumentTemplate) TableName() string { return "document_templates" }
