package docgen

import (
	"strings"
	"testing"
	"time"

	"szekhely-portal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProvider = Provider{
	Name:           "Budapest Office Center Kft.",
	Address:        "1061 Budapest, Andrássy út 10.",
	RegNumber:      "01-09-123456",
	TaxNumber:      "12345678-2-42",
	Representative: "Nagy Péter",
}

func testContract() *models.Contract {
	return &models.Contract{
		ContractNumber: "SZH-2026-0042",
		Language:       models.LanguageHU,
		PackageID:      "premium",
		Company: models.CompanyData{
			IsNew:        true,
			Name:         "Minta Kereskedelmi Kft.",
			ShortName:    "Minta Kft.",
			MainActivity: "Üzletviteli tanácsadás",
		},
		Owners: models.OwnerList{
			{
				Type:             models.OwnerTypeNatural,
				OwnershipPercent: 100,
				Natural: &models.NaturalOwner{
					FullName:    "Kiss János",
					BirthPlace:  "Budapest",
					BirthDate:   "1985-03-12",
					Nationality: "magyar",
					Address:     "1111 Budapest, Fő utca 1.",
					IDNumber:    "123456AB",
				},
			},
		},
		Representative: models.RepresentativeData{
			FullName: "Kiss János",
			Address:  "1111 Budapest, Fő utca 1.",
			IDNumber: "123456AB",
		},
		Contact: models.ContactData{
			Name:  "Kiss János",
			Email: "janos@minta.hu",
			Phone: "+36 30 123 4567",
		},
	}
}

var testNow = time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

// A kész dokumentumban nem maradhat nyers token vagy feltételes jelölő.
func assertNoRawMarkers(t *testing.T, html string) {
	t.Helper()
	assert.NotContains(t, html, "{{#IF")
	assert.NotContains(t, html, "{{/IF}}")
	for _, token := range allTokens {
		assert.NotContains(t, html, token)
	}
}

func TestGenerateContractFillsTokens(t *testing.T) {
	card := &models.PricingCard{TitleHU: "Prémium csomag", TitleEN: "Premium plan", MonthlyPrice: 15000}

	html := GenerateContract(testContract(), card, testProvider, "", testNow)
	require.NotEmpty(t, html)

	assert.Contains(t, html, "SZH-2026-0042")
	assert.Contains(t, html, "Minta Kereskedelmi Kft.")
	assert.Contains(t, html, "Budapest Office Center Kft.")
	assert.Contains(t, html, "Prémium csomag")
	assert.Contains(t, html, "tizenötezer forint")
	assert.Contains(t, html, "2026. 08. 29.")
	assertNoRawMarkers(t, html)
}

func TestGenerateContractEnglishUsesEnglishTitle(t *testing.T) {
	c := testContract()
	c.Language = models.LanguageEN
	card := &models.PricingCard{TitleHU: "Prémium csomag", TitleEN: "Premium plan", MonthlyPrice: 15000}

	html := GenerateContract(c, card, testProvider, "", testNow)
	assert.Contains(t, html, "Premium plan")
	assert.Contains(t, html, "29 August 2026")
}

func TestGenerateContractCustomTemplateOverridesLayout(t *testing.T) {
	html := GenerateContract(testContract(), nil, testProvider,
		"Egyedi sablon: {{COMPANY_NAME}}", testNow)
	assert.Equal(t, "Egyedi sablon: Minta Kereskedelmi Kft.", html)
}

func TestGenerateContractToleratesMissingData(t *testing.T) {
	html := GenerateContract(&models.Contract{Language: models.LanguageHU}, nil, testProvider, "", testNow)
	require.NotEmpty(t, html)
	assertNoRawMarkers(t, html)
}

func TestGenerateKYCFormChecksNewCompanyBox(t *testing.T) {
	html := GenerateKYCForm(testContract(), nil, testProvider,
		"új: {{CHECK_NEW_COMPANY}} működő: {{CHECK_EXISTING_COMPANY}}", testNow)
	assert.Equal(t, "új: "+CheckboxChecked+" működő: "+CheckboxEmpty, html)
}

func TestGeneratePEPDeclarationCheckboxes(t *testing.T) {
	c := testContract()
	c.PEPDeclaration = models.PEPDeclaration{IsPepRelative: true, PepDetails: "Házastárs képviselő."}

	html := GeneratePEPDeclaration(c, nil, testProvider, "", testNow)
	assert.Contains(t, html, "Házastárs képviselő.")
	assertNoRawMarkers(t, html)
}

func TestGeneratePostalAuthorizationsOnePerOwner(t *testing.T) {
	c := testContract()
	c.Owners = models.OwnerList{
		{Type: models.OwnerTypeNatural, OwnershipPercent: 40, Natural: &models.NaturalOwner{
			FullName: "Kiss János", Address: "1111 Budapest, Fő utca 1.", IDNumber: "111111AA"}},
		{Type: models.OwnerTypeNatural, OwnershipPercent: 30, Natural: &models.NaturalOwner{
			FullName: "Nagy Éva", Address: "2222 Gödöllő, Kossuth utca 2.", IDNumber: "222222BB"}},
		{Type: models.OwnerTypeLegal, OwnershipPercent: 30, Legal: &models.LegalOwner{
			CompanyName: "Holding Zrt.", Address: "1054 Budapest, Szabadság tér 7.",
			RegistrationNumber: "01-10-045678"}},
	}

	auths := GeneratePostalAuthorizations(c, testProvider, "", testNow)
	require.Len(t, auths, 3)

	names := []string{"Kiss János", "Nagy Éva", "Holding Zrt."}
	for i, auth := range auths {
		assert.Equal(t, i, auth.OwnerIndex)
		assert.Equal(t, names[i], auth.OwnerName)
		assert.Contains(t, auth.HTML, names[i])
		assertNoRawMarkers(t, auth.HTML)
	}

	// A három meghatalmazás három különböző meghatalmazót nevez meg.
	assert.False(t, strings.Contains(auths[0].HTML, "Nagy Éva"))
	assert.False(t, strings.Contains(auths[1].HTML, "Holding Zrt."))
}

func TestGeneratePostalAuthorizationsNoOwners(t *testing.T) {
	c := testContract()
	c.Owners = nil
	assert.Empty(t, GeneratePostalAuthorizations(c, testProvider, "", testNow))
}

func TestBuildConditionalContext(t *testing.T) {
	c := testContract()
	cond := BuildConditionalContext(c)
	assert.True(t, cond["HAS_NATURAL_OWNER"])
	assert.False(t, cond["HAS_LEGAL_OWNER"])
	assert.False(t, cond["MULTIPLE_OWNERS"])
	assert.True(t, cond["IS_NEW_COMPANY"])
	assert.True(t, cond["LANG_HU"])
	assert.False(t, cond["LANG_EN"])

	c.Owners = append(c.Owners, models.OwnerData{Type: models.OwnerTypeLegal, Legal: &models.LegalOwner{}})
	c.Language = models.LanguageEN
	cond = BuildConditionalContext(c)
	assert.True(t, cond["HAS_LEGAL_OWNER"])
	assert.True(t, cond["MULTIPLE_OWNERS"])
	assert.True(t, cond["LANG_EN"])
}
