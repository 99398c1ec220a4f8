package wizard

import (
	"fmt"
	"regexp"

	"szekhely-portal/models"
)

// StepValidation egy lépés validálásának eredménye. Tiszta függvény állítja
// elő, ezért bármely lépésre bármikor újraszámolható (pl. "kész" pipa már
// meghaladott lépéseken).
type StepValidation struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// msg a szerződés nyelvén adja vissza az üzenetet.
func msg(language, hu, en string) string {
	if language == models.LanguageEN {
		return en
	}
	return hu
}

// ValidateStep a megadott lépés szabályait futtatja a teljes adatképen.
func ValidateStep(step Step, data *models.Contract, language string) StepValidation {
	var errs []string

	switch step {
	case StepCompanyType:
		// Bináris választás, nincs hiányzó állapot.

	case StepServiceSelect:
		if data.PackageID == "" {
			errs = append(errs, msg(language,
				"Válasszon csomagot a folytatáshoz.",
				"Please select a package to continue."))
		}

	case StepCompanyData:
		if data.Company.Name == "" {
			errs = append(errs, msg(language, "A cégnév megadása kötelező.", "Company name is required."))
		}
		if data.Company.ShortName == "" {
			errs = append(errs, msg(language, "A rövidített cégnév megadása kötelező.", "Company short name is required."))
		}
		if data.Company.MainActivity == "" {
			errs = append(errs, msg(language, "A főtevékenység megadása kötelező.", "Main activity is required."))
		}
		if !data.Company.IsNew && data.Company.RegistrationNumber == "" {
			errs = append(errs, msg(language,
				"Működő cégnél a cégjegyzékszám megadása kötelező.",
				"Registration number is required for an existing company."))
		}

	case StepOwnerContact:
		errs = append(errs, validateOwners(data.Owners, language)...)
		errs = append(errs, validateContact(data.Contact, language)...)

	case StepRepresentative:
		rep := data.Representative
		if rep.FullName == "" {
			errs = append(errs, msg(language, "A képviselő neve kötelező.", "Representative name is required."))
		}
		if rep.BirthDate == "" {
			errs = append(errs, msg(language, "A képviselő születési ideje kötelező.", "Representative birth date is required."))
		}
		if rep.Address == "" {
			errs = append(errs, msg(language, "A képviselő lakcíme kötelező.", "Representative address is required."))
		}
		if rep.IDNumber == "" {
			errs = append(errs, msg(language, "A képviselő okmányszáma kötelező.", "Representative ID number is required."))
		}

	case StepPEPDeclaration:
		pep := data.PEPDeclaration
		if (pep.IsPep || pep.IsPepRelative || pep.IsPepAssociate) && pep.PepDetails == "" {
			errs = append(errs, msg(language,
				"Közszereplői érintettség esetén a részletek kitöltése kötelező.",
				"Details are required when any PEP statement applies."))
		}

	case StepDocuments:
		// A feltöltések teljességét a feltöltő felület kezeli, itt nincs
		// programozott szabály.

	case StepSummary:
		// Az összegző lépés önmagában mindig érvényes; beadás előtt a
		// ValidateAll fut le minden korábbi lépésre.
	}

	return StepValidation{IsValid: len(errs) == 0, Errors: errs}
}

func validateOwners(owners models.OwnerList, language string) []string {
	var errs []string

	if len(owners) == 0 {
		errs = append(errs, msg(language,
			"Legalább egy tulajdonos megadása kötelező.",
			"At least one owner is required."))
		return errs
	}

	sum := 0
	for i, owner := range owners {
		sum += owner.OwnershipPercent
		pos := i + 1
		switch owner.Type {
		case models.OwnerTypeNatural:
			o := owner.Natural
			if o == nil || o.FullName == "" {
				errs = append(errs, msg(language,
					fmt.Sprintf("%d. tulajdonos: a név kötelező.", pos),
					fmt.Sprintf("Owner %d: full name is required.", pos)))
			}
			if o == nil || o.BirthDate == "" {
				errs = append(errs, msg(language,
					fmt.Sprintf("%d. tulajdonos: a születési idő kötelező.", pos),
					fmt.Sprintf("Owner %d: birth date is required.", pos)))
			}
			if o == nil || o.Address == "" {
				errs = append(errs, msg(language,
					fmt.Sprintf("%d. tulajdonos: a lakcím kötelező.", pos),
					fmt.Sprintf("Owner %d: address is required.", pos)))
			}
			if o == nil || o.IDNumber == "" {
				errs = append(errs, msg(language,
					fmt.Sprintf("%d. tulajdonos: az okmányszám kötelező.", pos),
					fmt.Sprintf("Owner %d: ID number is required.", pos)))
			}
		case models.OwnerTypeLegal:
			o := owner.Legal
			if o == nil || o.CompanyName == "" {
				errs = append(errs, msg(language,
					fmt.Sprintf("%d. tulajdonos: a szervezet neve kötelező.", pos),
					fmt.Sprintf("Owner %d: organization name is required.", pos)))
			}
			if o == nil || o.RegistrationNumber == "" {
				errs = append(errs, msg(language,
					fmt.Sprintf("%d. tulajdonos: a cégjegyzékszám kötelező.", pos),
					fmt.Sprintf("Owner %d: registration number is required.", pos)))
			}
			if o == nil || o.Address == "" {
				errs = append(errs, msg(language,
					fmt.Sprintf("%d. tulajdonos: a székhely kötelező.", pos),
					fmt.Sprintf("Owner %d: address is required.", pos)))
			}
			if o == nil || o.RepresentativeName == "" {
				errs = append(errs, msg(language,
					fmt.Sprintf("%d. tulajdonos: a képviselő neve kötelező.", pos),
					fmt.Sprintf("Owner %d: representative name is required.", pos)))
			}
		default:
			errs = append(errs, msg(language,
				fmt.Sprintf("%d. tulajdonos: ismeretlen tulajdonosi típus.", pos),
				fmt.Sprintf("Owner %d: unknown owner type.", pos)))
		}
	}

	// Pontosan 100%, tűréshatár nélkül: 99 vagy 101 is érvénytelen.
	if sum != 100 {
		errs = append(errs, msg(language,
			fmt.Sprintf("A tulajdoni hányadok összege pontosan 100%% kell legyen (jelenleg %d%%).", sum),
			fmt.Sprintf("Ownership percentages must add up to exactly 100%% (currently %d%%).", sum)))
	}

	return errs
}

func validateContact(contact models.ContactData, language string) []string {
	var errs []string

	if contact.Email == "" {
		errs = append(errs, msg(language,
			"A kapcsolattartó e-mail címe kötelező.",
			"Contact email is required."))
	} else if !emailRe.MatchString(contact.Email) {
		errs = append(errs, msg(language,
			"Az e-mail cím formátuma érvénytelen.",
			"The email address format is invalid."))
	}
	if contact.Email != contact.EmailConfirm {
		errs = append(errs, msg(language,
			"A két e-mail cím nem egyezik.",
			"The two email addresses do not match."))
	}
	if contact.Phone == "" {
		errs = append(errs, msg(language,
			"A telefonszám megadása kötelező.",
			"Phone number is required."))
	}
	if !contact.IsSameAsOwner && contact.Address == "" {
		errs = append(errs, msg(language,
			"A kapcsolattartó címe kötelező.",
			"Contact address is required."))
	}

	return errs
}

// ValidateAll beadás előtt sorban újravalidál minden lépést, és az első
// hibázó lépésnél megáll (fail-fast, nem gyűjtöget).
func ValidateAll(data *models.Contract, language string) (Step, StepValidation) {
	for _, step := range Steps {
		if v := ValidateStep(step, data, language); !v.IsValid {
			return step, v
		}
	}
	return "", StepValidation{IsValid: true}
}
