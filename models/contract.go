package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Szerződés státuszok. A varázsló pending_review-val ad be, utána már csak az
// admin felület módosítja.
const (
	StatusDraft           = "draft"
	StatusPendingReview   = "pending_review"
	StatusDocumentsNeeded = "documents_needed"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
	StatusActive          = "active"
	StatusTerminated      = "terminated"
)

const (
	LanguageHU = "hu"
	LanguageEN = "en"
)

// OwnerType a tulajdonos típusa: természetes személy vagy jogi személy.
type OwnerType string

const (
	OwnerTypeNatural OwnerType = "natural"
	OwnerTypeLegal   OwnerType = "legal"
)

// NaturalOwner természetes személy tulajdonos adatai (Pmt. szerinti
// átvilágításhoz szükséges mezőkkel).
type NaturalOwner struct {
	FullName       string `json:"fullName"`
	BirthPlace     string `json:"birthPlace"`
	BirthDate      string `json:"birthDate"`
	MothersName    string `json:"mothersName"`
	Nationality    string `json:"nationality"`
	Address        string `json:"address"`
	IDDocumentType string `json:"idDocumentType"`
	IDNumber       string `json:"idNumber"`
	TaxID          string `json:"taxId"`
}

// LegalOwner jogi személy tulajdonos adatai.
type LegalOwner struct {
	CompanyName        string `json:"companyName"`
	RegistrationNumber string `json:"registrationNumber"`
	TaxNumber          string `json:"taxNumber"`
	Address            string `json:"address"`
	RepresentativeName string `json:"representativeName"`
}

// OwnerData címkézett unió: a Type dönti el, melyik ág van kitöltve.
// Minden fogyasztó (validáció, dokumentumgenerálás) a Type szerint ágazik el.
type OwnerData struct {
	Type             OwnerType     `json:"type"`
	OwnershipPercent int           `json:"ownershipPercent"`
	Natural          *NaturalOwner `json:"natural,omitempty"`
	Legal            *LegalOwner   `json:"legal,omitempty"`
}

type OwnerList []OwnerData

func (o OwnerList) Value() (driver.Value, error) { return jsonbValue(o) }
func (o *OwnerList) Scan(value interface{}) error {
	return jsonbScan(value, o)
}

// CompanyData a leendő vagy meglévő cég adatai.
type CompanyData struct {
	IsNew              bool   `json:"isNew"`
	Name               string `json:"name"`
	ShortName          string `json:"shortName"`
	LegalForm          string `json:"legalForm"`
	RegistrationNumber string `json:"registrationNumber"`
	TaxNumber          string `json:"taxNumber"`
	CurrentAddress     string `json:"currentAddress"`
	MainActivity       string `json:"mainActivity"`
	MainActivityCode   string `json:"mainActivityCode"`
}

func (c CompanyData) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *CompanyData) Scan(value interface{}) error {
	return jsonbScan(value, c)
}

// RepresentativeData a cég törvényes képviselője. Az IsForeign mezőt az
// állampolgárságból származtatjuk, de kézi beállítás után (IsForeignManual)
// már nem írjuk felül automatikusan.
type RepresentativeData struct {
	FullName        string `json:"fullName"`
	BirthPlace      string `json:"birthPlace"`
	BirthDate       string `json:"birthDate"`
	MothersName     string `json:"mothersName"`
	Nationality     string `json:"nationality"`
	Address         string `json:"address"`
	IDDocumentType  string `json:"idDocumentType"`
	IDNumber        string `json:"idNumber"`
	IsForeign       bool   `json:"isForeign"`
	IsForeignManual bool   `json:"isForeignManual"`
}

func (r RepresentativeData) Value() (driver.Value, error) { return jsonbValue(r) }
func (r *RepresentativeData) Scan(value interface{}) error {
	return jsonbScan(value, r)
}

// ContactData a kapcsolattartó. IsSameAsOwner bekapcsolásakor az első
// tulajdonos adatait másoljuk át (nem élő hivatkozás).
type ContactData struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailConfirm  string `json:"emailConfirm"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	IsSameAsOwner bool   `json:"isSameAsOwner"`
}

func (c ContactData) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *ContactData) Scan(value interface{}) error {
	return jsonbScan(value, c)
}

// PEPDeclaration kiemelt közszereplői nyilatkozat (Pmt. 4. §).
type PEPDeclaration struct {
	IsPep          bool   `json:"isPep"`
	IsPepRelative  bool   `json:"isPepRelative"`
	IsPepAssociate bool   `json:"isPepAssociate"`
	PepDetails     string `json:"pepDetails"`
}

func (p PEPDeclaration) Value() (driver.Value, error) { return jsonbValue(p) }
func (p *PEPDeclaration) Scan(value interface{}) error {
	return jsonbScan(value, p)
}

// DocumentMap dokumentum-slot (idFront, idBack, addressCard, companyExtract...)
// vagy dokumentumfajta -> URL/HTML leképezés.
type DocumentMap map[string]string

func (d DocumentMap) Value() (driver.Value, error) { return jsonbValue(d) }
func (d *DocumentMap) Scan(value interface{}) error {
	return jsonbScan(value, d)
}

// Contract egy székhelyszolgáltatási szerződéskérelem.
type Contract struct {
	ID        uint           `gorm:"primaryKey"            json:"ID"`
	CreatedAt time.Time      `                             json:"CreatedAt"`
	UpdatedAt time.Time      `                             json:"UpdatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"                 json:"DeletedAt"`

	ContractNumber string `gorm:"column:contract_number;uniqueIndex" json:"contractNumber"`
	Status         string `gorm:"column:status;index"                json:"status"`
	Language       string `gorm:"column:language"                    json:"language"`
	ServiceType    string `gorm:"column:service_type"                json:"serviceType"`
	PackageID      string `gorm:"column:package_id"                  json:"packageId"`

	Company        CompanyData        `gorm:"column:company;type:jsonb"         json:"company"`
	Owners         OwnerList          `gorm:"column:owners;type:jsonb"          json:"owners"`
	Representative RepresentativeData `gorm:"column:representative;type:jsonb"  json:"representative"`
	Contact        ContactData        `gorm:"column:contact;type:jsonb"         json:"contact"`
	PEPDeclaration PEPDeclaration     `gorm:"column:pep_declaration;type:jsonb" json:"pepDeclaration"`

	UploadedDocuments  DocumentMap `gorm:"column:uploaded_documents;type:jsonb"  json:"uploadedDocuments"`
	GeneratedDocuments DocumentMap `gorm:"column:generated_documents;type:jsonb" json:"generatedDocuments"`
}

func (Contract) TableName() string { return "contracts" }
