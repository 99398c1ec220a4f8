package docgen

import (
	"embed"
	"time"

	"szekhely-portal/models"
)

//go:embed layouts/*.html
var layoutFS embed.FS

// defaultLayout a beépített layout a fajtához. Akkor fut, ha nincs aktív
// sablon az adatbázisban.
func defaultLayout(kind string) string {
	name := map[string]string{
		models.DocumentKindContract:   "layouts/contract.html",
		models.DocumentKindKYC:        "layouts/kyc.html",
		models.DocumentKindPEP:        "layouts/pep.html",
		models.DocumentKindPostalAuth: "layouts/postal_auth.html",
	}[kind]
	if name == "" {
		return ""
	}
	data, err := layoutFS.ReadFile(name)
	if err != nil {
		return ""
	}
	return string(data)
}

// GenerateContract a székhelyszolgáltatási szerződés nyomtatható HTML-je.
// A hívó dolga a mentés/letöltés; itt csak a kész szöveget állítjuk elő, és
// hiányos adatnál sem hibázunk (előnézet félkész varázslóból is kérhető).
func GenerateContract(c *models.Contract, card *models.PricingCard, p Provider, template string, now time.Time) string {
	return renderKind(models.DocumentKindContract, c, card, p, template, now)
}

// GenerateKYCForm az ügyfél-átvilágítási (Pmt.) adatlap.
func GenerateKYCForm(c *models.Contract, card *models.PricingCard, p Provider, template string, now time.Time) string {
	return renderKind(models.DocumentKindKYC, c, card, p, template, now)
}

// GeneratePEPDeclaration a kiemelt közszereplői nyilatkozat.
func GeneratePEPDeclaration(c *models.Contract, card *models.PricingCard, p Provider, template string, now time.Time) string {
	return renderKind(models.DocumentKindPEP, c, card, p, template, now)
}

func renderKind(kind string, c *models.Contract, card *models.PricingCard, p Provider, template string, now time.Time) string {
	if template == "" {
		template = defaultLayout(kind)
	}
	repl := BuildReplacements(c, card, p, now)
	return ReplaceShortcodes(template, repl, BuildConditionalContext(c))
}

// PostalAuthorization egy tulajdonosra kiállított postai meghatalmazás.
type PostalAuthorization struct {
	OwnerIndex int
	OwnerName  string
	HTML       string
}

// GeneratePostalAuthorizations tulajdonosonként külön meghatalmazást készít:
// a meghatalmazó mindig az adott tényleges tulajdonos, nem a szerződés maga.
func GeneratePostalAuthorizations(c *models.Contract, p Provider, template string, now time.Time) []PostalAuthorization {
	if template == "" {
		template = defaultLayout(models.DocumentKindPostalAuth)
	}
	cond := BuildConditionalContext(c)

	auths := make([]PostalAuthorization, 0, len(c.Owners))
	for i, owner := range c.Owners {
		repl := BuildReplacements(c, nil, p, now)

		var name, address, idNumber string
		switch owner.Type {
		case models.OwnerTypeNatural:
			if o := owner.Natural; o != nil {
				name, address, idNumber = o.FullName, o.Address, o.IDNumber
			}
		case models.OwnerTypeLegal:
			if o := owner.Legal; o != nil {
				name, address, idNumber = o.CompanyName, o.Address, o.RegistrationNumber
			}
		}
		repl["{{AUTHORIZED_PERSON_NAME}}"] = name
		repl["{{AUTHORIZED_PERSON_ADDRESS}}"] = address
		repl["{{AUTHORIZED_PERSON_ID_NUMBER}}"] = idNumber

		auths = append(auths, PostalAuthorization{
			OwnerIndex: i,
			OwnerName:  name,
			HTML:       ReplaceShortcodes(template, repl, cond),
		})
	}
	return auths
}
