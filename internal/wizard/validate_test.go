package wizard

import (
	"testing"

	"szekhely-portal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContract() *models.Contract {
	return &models.Contract{
		Language:  models.LanguageHU,
		PackageID: "premium",
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
			FullName:  "Kiss János",
			BirthDate: "1985-03-12",
			Address:   "1111 Budapest, Fő utca 1.",
			IDNumber:  "123456AB",
		},
		Contact: models.ContactData{
			Name:         "Kiss János",
			Email:        "janos@minta.hu",
			EmailConfirm: "janos@minta.hu",
			Phone:        "+36 30 123 4567",
			Address:      "1111 Budapest, Fő utca 1.",
		},
	}
}

func TestValidateStepCompanyTypeAlwaysValid(t *testing.T) {
	v := ValidateStep(StepCompanyType, &models.Contract{}, models.LanguageHU)
	assert.True(t, v.IsValid)
	assert.Empty(t, v.Errors)
}

func TestValidateStepServiceSelect(t *testing.T) {
	data := &models.Contract{}
	v := ValidateStep(StepServiceSelect, data, models.LanguageHU)
	require.False(t, v.IsValid)
	assert.Contains(t, v.Errors[0], "Válasszon csomagot")

	data.PackageID = "basic"
	assert.True(t, ValidateStep(StepServiceSelect, data, models.LanguageHU).IsValid)
}

func TestValidateStepCompanyDataExistingNeedsRegNumber(t *testing.T) {
	data := validContract()
	data.Company.IsNew = false
	data.Company.RegistrationNumber = ""

	v := ValidateStep(StepCompanyData, data, models.LanguageHU)
	require.False(t, v.IsValid)
	assert.Contains(t, v.Errors[0], "cégjegyzékszám")

	data.Company.RegistrationNumber = "01-09-987654"
	assert.True(t, ValidateStep(StepCompanyData, data, models.LanguageHU).IsValid)
}

func TestValidateOwnersSumMustBeExactlyHundred(t *testing.T) {
	data := validContract()
	data.Owners = models.OwnerList{
		ownerNatural("Kiss János", 40),
		ownerNatural("Nagy Éva", 30),
		ownerNatural("Tóth Pál", 20),
	}

	v := ValidateStep(StepOwnerContact, data, models.LanguageHU)
	require.False(t, v.IsValid)
	assert.Contains(t, v.Errors[len(v.Errors)-1], "pontosan 100%")
	assert.Contains(t, v.Errors[len(v.Errors)-1], "90%")

	// A hiányzó 10% pótlása után a lépés érvényes.
	data.Owners[2].OwnershipPercent = 30
	v = ValidateStep(StepOwnerContact, data, models.LanguageHU)
	assert.True(t, v.IsValid)
}

func TestValidateOwnersNoToleranceAroundHundred(t *testing.T) {
	for _, sum := range []int{99, 101} {
		data := validContract()
		data.Owners[0].OwnershipPercent = sum
		v := ValidateStep(StepOwnerContact, data, models.LanguageHU)
		assert.False(t, v.IsValid, "összeg: %d", sum)
	}
}

func TestValidateOwnersPositionalMessages(t *testing.T) {
	data := validContract()
	data.Owners = models.OwnerList{
		ownerNatural("Kiss János", 50),
		{Type: models.OwnerTypeNatural, OwnershipPercent: 50, Natural: &models.NaturalOwner{}},
	}

	v := ValidateStep(StepOwnerContact, data, models.LanguageHU)
	require.False(t, v.IsValid)
	assert.Contains(t, v.Errors[0], "2. tulajdonos")
}

func TestValidateLegalOwnerFields(t *testing.T) {
	data := validContract()
	data.Owners = models.OwnerList{
		{
			Type:             models.OwnerTypeLegal,
			OwnershipPercent: 100,
			Legal: &models.LegalOwner{
				CompanyName:        "Holding Zrt.",
				RegistrationNumber: "01-10-045678",
				Address:            "1054 Budapest, Szabadság tér 7.",
				RepresentativeName: "Dr. Szabó Anna",
			},
		},
	}
	assert.True(t, ValidateStep(StepOwnerContact, data, models.LanguageHU).IsValid)

	data.Owners[0].Legal.RepresentativeName = ""
	v := ValidateStep(StepOwnerContact, data, models.LanguageHU)
	require.False(t, v.IsValid)
	assert.Contains(t, v.Errors[0], "képviselő neve")
}

func TestValidateContactEmailMismatch(t *testing.T) {
	data := validContract()
	data.Contact.Email = "a@b.com"
	data.Contact.EmailConfirm = "a@b.co"

	v := ValidateStep(StepOwnerContact, data, models.LanguageEN)
	require.False(t, v.IsValid)
	assert.Contains(t, v.Errors[0], "do not match")
}

func TestValidateContactEmailFormat(t *testing.T) {
	data := validContract()
	for _, bad := range []string{"nememail", "a b@c.hu", "a@b", "@b.hu"} {
		data.Contact.Email = bad
		data.Contact.EmailConfirm = bad
		v := ValidateStep(StepOwnerContact, data, models.LanguageHU)
		assert.False(t, v.IsValid, "cím: %q", bad)
	}
}

func TestValidateContactSameAsOwnerSkipsAddress(t *testing.T) {
	data := validContract()
	data.Contact.Address = ""
	data.Contact.IsSameAsOwner = true
	assert.True(t, ValidateStep(StepOwnerContact, data, models.LanguageHU).IsValid)

	data.Contact.IsSameAsOwner = false
	assert.False(t, ValidateStep(StepOwnerContact, data, models.LanguageHU).IsValid)
}

func TestValidatePEPDetailsRequiredWhenFlagged(t *testing.T) {
	data := validContract()
	assert.True(t, ValidateStep(StepPEPDeclaration, data, models.LanguageHU).IsValid)

	data.PEPDeclaration.IsPepRelative = true
	v := ValidateStep(StepPEPDeclaration, data, models.LanguageHU)
	require.False(t, v.IsValid)

	data.PEPDeclaration.PepDetails = "Házastárs országgyűlési képviselő."
	assert.True(t, ValidateStep(StepPEPDeclaration, data, models.LanguageHU).IsValid)
}

func TestValidateStepIsIdempotent(t *testing.T) {
	data := validContract()
	data.Contact.Phone = ""

	first := ValidateStep(StepOwnerContact, data, models.LanguageHU)
	second := ValidateStep(StepOwnerContact, data, models.LanguageHU)
	assert.Equal(t, first, second)
}

func TestValidateMessagesFollowLanguage(t *testing.T) {
	data := &models.Contract{}
	hu := ValidateStep(StepServiceSelect, data, models.LanguageHU)
	en := ValidateStep(StepServiceSelect, data, models.LanguageEN)
	assert.NotEqual(t, hu.Errors[0], en.Errors[0])
	assert.Contains(t, en.Errors[0], "select a package")
}

func TestValidateAllStopsAtFirstInvalidStep(t *testing.T) {
	data := validContract()
	data.PackageID = ""
	data.Company.Name = ""

	step, v := ValidateAll(data, models.LanguageHU)
	assert.Equal(t, StepServiceSelect, step)
	require.False(t, v.IsValid)
	assert.Len(t, v.Errors, 1)
}

func TestValidateAllHappyPath(t *testing.T) {
	step, v := ValidateAll(validContract(), models.LanguageHU)
	assert.Empty(t, step)
	assert.True(t, v.IsValid)
}

func ownerNatural(name string, percent int) models.OwnerData {
	return models.OwnerData{
		Type:             models.OwnerTypeNatural,
		OwnershipPercent: percent,
		Natural: &models.NaturalOwner{
			FullName:  name,
			BirthDate: "1980-01-01",
			Address:   "1111 Budapest, Fő utca 1.",
			IDNumber:  "123456AB",
		},
	}
}
