package models

import "gorm.io/gorm"

// GeneratedDocument egy szerződéshez generált nyomtatható dokumentum.
// A postai meghatalmazásból tulajdonosonként külön példány készül, ezt az
// OwnerIndex különbözteti meg (más fajtánál -1).
type GeneratedDocument struct {
	gorm.Model
	ContractID uint      `gorm:"column:contract_id;index" json:"contractId"`
	Contract   *Contract `gorm:"foreignKey:ContractID"    json:"contract,omitempty"`

	Kind       string `gorm:"column:kind;index" json:"kind"`
	OwnerIndex int    `gorm:"column:owner_index" json:"ownerIndex"`

	HTML string `json:"html"`

	// PDF objektum neve a blob tárban, ha készült konverzió.
	PDFObjectName string `gorm:"column:pdf_object_name" json:"pdfObjectName"`
}

func (GeneratedDocument) TableName() string { return "generated_documents" }
