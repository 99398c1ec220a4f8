package docgen

import (
	"fmt"
	"time"

	"szekhely-portal/models"
)

// Jelölőnégyzet-glifek: megjelenítési konvenció, nem üzleti logika.
const (
	CheckboxChecked = "☒"
	CheckboxEmpty   = "☐"
)

// Provider a szolgáltató állandó azonosító adatai; a konfigurációból jön,
// hogy a csomag tiszta maradjon.
type Provider struct {
	Name           string
	Address        string
	RegNumber      string
	TaxNumber      string
	Representative string
}

// allTokens a sablonszerzők által használható teljes token-szókincs.
// A FillMissingTokens ezeket üríti ki, ha a kontextus nem adott rájuk értéket,
// így félkész adatból is hibamentesen készül előnézet.
var allTokens = []string{
	"{{CONTRACT_NUMBER}}", "{{SIGN_DATE}}", "{{SERVICE_TYPE}}", "{{PACKAGE_NAME}}",
	"{{MONTHLY_PRICE}}", "{{MONTHLY_PRICE_TEXT}}",
	"{{COMPANY_NAME}}", "{{COMPANY_SHORT_NAME}}", "{{COMPANY_LEGAL_FORM}}",
	"{{COMPANY_REG_NUMBER}}", "{{COMPANY_TAX_NUMBER}}", "{{COMPANY_CURRENT_ADDRESS}}",
	"{{MAIN_ACTIVITY}}", "{{MAIN_ACTIVITY_CODE}}",
	"{{CHECK_NEW_COMPANY}}", "{{CHECK_EXISTING_COMPANY}}",
	"{{OWNER_NAME}}", "{{OWNER_BIRTH_PLACE}}", "{{OWNER_BIRTH_DATE}}",
	"{{OWNER_MOTHERS_NAME}}", "{{OWNER_NATIONALITY}}", "{{OWNER_ADDRESS}}",
	"{{OWNER_ID_TYPE}}", "{{OWNER_ID_NUMBER}}", "{{OWNERSHIP_PERCENT}}",
	"{{REPRESENTATIVE_NAME}}", "{{REPRESENTATIVE_BIRTH_PLACE}}", "{{REPRESENTATIVE_BIRTH_DATE}}",
	"{{REPRESENTATIVE_MOTHERS_NAME}}", "{{REPRESENTATIVE_NATIONALITY}}",
	"{{REPRESENTATIVE_ADDRESS}}", "{{REPRESENTATIVE_ID_TYPE}}", "{{REPRESENTATIVE_ID_NUMBER}}",
	"{{CONTACT_NAME}}", "{{CONTACT_EMAIL}}", "{{CONTACT_PHONE}}", "{{CONTACT_ADDRESS}}",
	"{{CHECK_PEP}}", "{{CHECK_NOT_PEP}}", "{{CHECK_PEP_RELATIVE}}", "{{CHECK_PEP_ASSOCIATE}}",
	"{{PEP_DETAILS}}",
	"{{AUTHORIZED_PERSON_NAME}}", "{{AUTHORIZED_PERSON_ADDRESS}}", "{{AUTHORIZED_PERSON_ID_NUMBER}}",
	"{{PROVIDER_NAME}}", "{{PROVIDER_ADDRESS}}", "{{PROVIDER_REG_NUMBER}}",
	"{{PROVIDER_TAX_NUMBER}}", "{{PROVIDER_REPRESENTATIVE}}",
}

func checkbox(v bool) string {
	if v {
		return CheckboxChecked
	}
	return CheckboxEmpty
}

func formatDate(t time.Time, language string) string {
	if language == models.LanguageEN {
		return t.Format("02 January 2006")
	}
	return t.Format("2006. 01. 02.")
}

// BuildConditionalContext a szerződés pillanatképéből származtatott logikai
// feltételek, a sablonok {{#IF ...}} blokkjaihoz.
func BuildConditionalContext(c *models.Contract) map[string]bool {
	hasLegal := false
	hasNatural := false
	for _, owner := range c.Owners {
		switch owner.Type {
		case models.OwnerTypeLegal:
			hasLegal = true
		case models.OwnerTypeNatural:
			hasNatural = true
		}
	}
	pep := c.PEPDeclaration
	return map[string]bool{
		"HAS_LEGAL_OWNER":        hasLegal,
		"HAS_NATURAL_OWNER":      hasNatural,
		"MULTIPLE_OWNERS":        len(c.Owners) > 1,
		"IS_PEP":                 pep.IsPep || pep.IsPepRelative || pep.IsPepAssociate,
		"IS_NEW_COMPANY":         c.Company.IsNew,
		"REPRESENTATIVE_FOREIGN": c.Representative.IsForeign,
		"LANG_HU":                c.Language != models.LanguageEN,
		"LANG_EN":                c.Language == models.LanguageEN,
	}
}

// BuildReplacements összeállítja a token->érték leképezést. A card lehet nil
// (pl. varázsló közbeni előnézetnél); minden hiányzó opcionális mező üres
// stringgé válik.
func BuildReplacements(c *models.Contract, card *models.PricingCard, p Provider, now time.Time) map[string]string {
	pep := c.PEPDeclaration
	anyPep := pep.IsPep || pep.IsPepRelative || pep.IsPepAssociate

	repl := map[string]string{
		"{{CONTRACT_NUMBER}}": c.ContractNumber,
		"{{SIGN_DATE}}":       formatDate(now, c.Language),
		"{{SERVICE_TYPE}}":    c.ServiceType,

		"{{COMPANY_NAME}}":            c.Company.Name,
		"{{COMPANY_SHORT_NAME}}":      c.Company.ShortName,
		"{{COMPANY_LEGAL_FORM}}":      c.Company.LegalForm,
		"{{COMPANY_REG_NUMBER}}":      c.Company.RegistrationNumber,
		"{{COMPANY_TAX_NUMBER}}":      c.Company.TaxNumber,
		"{{COMPANY_CURRENT_ADDRESS}}": c.Company.CurrentAddress,
		"{{MAIN_ACTIVITY}}":           c.Company.MainActivity,
		"{{MAIN_ACTIVITY_CODE}}":      c.Company.MainActivityCode,

		"{{CHECK_NEW_COMPANY}}":      checkbox(c.Company.IsNew),
		"{{CHECK_EXISTING_COMPANY}}": checkbox(!c.Company.IsNew),

		"{{REPRESENTATIVE_NAME}}":         c.Representative.FullName,
		"{{REPRESENTATIVE_BIRTH_PLACE}}":  c.Representative.BirthPlace,
		"{{REPRESENTATIVE_BIRTH_DATE}}":   c.Representative.BirthDate,
		"{{REPRESENTATIVE_MOTHERS_NAME}}": c.Representative.MothersName,
		"{{REPRESENTATIVE_NATIONALITY}}":  c.Representative.Nationality,
		"{{REPRESENTATIVE_ADDRESS}}":      c.Representative.Address,
		"{{REPRESENTATIVE_ID_TYPE}}":      c.Representative.IDDocumentType,
		"{{REPRESENTATIVE_ID_NUMBER}}":    c.Representative.IDNumber,

		"{{CONTACT_NAME}}":    c.Contact.Name,
		"{{CONTACT_EMAIL}}":   c.Contact.Email,
		"{{CONTACT_PHONE}}":   c.Contact.Phone,
		"{{CONTACT_ADDRESS}}": c.Contact.Address,

		"{{CHECK_PEP}}":           checkbox(anyPep),
		"{{CHECK_NOT_PEP}}":       checkbox(!anyPep),
		"{{CHECK_PEP_RELATIVE}}":  checkbox(pep.IsPepRelative),
		"{{CHECK_PEP_ASSOCIATE}}": checkbox(pep.IsPepAssociate),
		"{{PEP_DETAILS}}":         pep.PepDetails,

		"{{PROVIDER_NAME}}":           p.Name,
		"{{PROVIDER_ADDRESS}}":        p.Address,
		"{{PROVIDER_REG_NUMBER}}":     p.RegNumber,
		"{{PROVIDER_TAX_NUMBER}}":     p.TaxNumber,
		"{{PROVIDER_REPRESENTATIVE}}": p.Representative,
	}

	if len(c.Owners) > 0 {
		addOwnerTokens(repl, c.Owners[0])
	}

	if card != nil {
		if c.Language == models.LanguageEN {
			repl["{{PACKAGE_NAME}}"] = card.TitleEN
		} else {
			repl["{{PACKAGE_NAME}}"] = card.TitleHU
		}
		repl["{{MONTHLY_PRICE}}"] = fmt.Sprintf("%.0f Ft", card.MonthlyPrice)
		repl["{{MONTHLY_PRICE_TEXT}}"] = AmountInWords(card.MonthlyPrice, c.Language)
	}

	return FillMissingTokens(repl)
}

// addOwnerTokens az első (vagy a meghatalmazásnál soron következő) tulajdonos
// mezőit tölti ki, típusa szerint.
func addOwnerTokens(repl map[string]string, owner models.OwnerData) {
	repl["{{OWNERSHIP_PERCENT}}"] = fmt.Sprintf("%d%%", owner.OwnershipPercent)
	switch owner.Type {
	case models.OwnerTypeNatural:
		if o := owner.Natural; o != nil {
			repl["{{OWNER_NAME}}"] = o.FullName
			repl["{{OWNER_BIRTH_PLACE}}"] = o.BirthPlace
			repl["{{OWNER_BIRTH_DATE}}"] = o.BirthDate
			repl["{{OWNER_MOTHERS_NAME}}"] = o.MothersName
			repl["{{OWNER_NATIONALITY}}"] = o.Nationality
			repl["{{OWNER_ADDRESS}}"] = o.Address
			repl["{{OWNER_ID_TYPE}}"] = o.IDDocumentType
			repl["{{OWNER_ID_NUMBER}}"] = o.IDNumber
		}
	case models.OwnerTypeLegal:
		if o := owner.Legal; o != nil {
			repl["{{OWNER_NAME}}"] = o.CompanyName
			repl["{{OWNER_ADDRESS}}"] = o.Address
			repl["{{OWNER_ID_TYPE}}"] = "cégjegyzékszám"
			repl["{{OWNER_ID_NUMBER}}"] = o.RegistrationNumber
		}
	}
}

// FillMissingTokens a szókincs ki nem töltött tokenjeit üres stringre állítja,
// hogy a kimenetben ne maradjon nyers "{{...}}".
func FillMissingTokens(repl map[string]string) map[string]string {
	for _, key := range allTokens {
		if _, ok := repl[key]; !ok {
			repl[key] = ""
		}
	}
	return repl
}
