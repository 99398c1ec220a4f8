package wizard

import "szekhely-portal/models"

// HungarianNationality a származtatott isForeign viszonyítási értéke.
const HungarianNationality = "magyar"

// SetOwnerPercent beállítja az adott tulajdonos hányadát, és alkalmazza a
// kiegyenlítő kényelmi szabályt:
//
//   - pontosan két tulajdonosnál a másik hányada 100-érték lesz, ha az új
//     érték [1,99] közé esik;
//   - kettőnél több tulajdonosnál egy nem utolsó tulajdonos módosítása csak
//     az utolsó tulajdonos hányadát számolja újra maradékként.
//
// A szabály szándékosan aszimmetrikus, nem arányos újraosztás; a kemény
// 100%-os invariánst a validáció érvényesíti, nem ez a függvény.
func SetOwnerPercent(owners models.OwnerList, index, value int) models.OwnerList {
	if index < 0 || index >= len(owners) {
		return owners
	}
	owners[index].OwnershipPercent = value

	switch {
	case len(owners) == 2:
		if value >= 1 && value <= 99 {
			owners[1-index].OwnershipPercent = 100 - value
		}
	case len(owners) > 2 && index != len(owners)-1:
		sum := 0
		for i := 0; i < len(owners)-1; i++ {
			sum += owners[i].OwnershipPercent
		}
		owners[len(owners)-1].OwnershipPercent = 100 - sum
	}
	return owners
}

// ApplyRepresentativeNationality átírja az állampolgárságot, és ha a
// felhasználó még nem állította kézzel az isForeign jelzőt, újraszármaztatja
// azt. Kézi beállítás után a kézi érték nyer.
func ApplyRepresentativeNationality(rep *models.RepresentativeData, nationality string) {
	rep.Nationality = nationality
	if !rep.IsForeignManual {
		rep.IsForeign = nationality != HungarianNationality
	}
}

// SetRepresentativeForeign kézi felülbírálás: innentől az automatikus
// származtatás nem nyúl a jelzőhöz.
func SetRepresentativeForeign(rep *models.RepresentativeData, isForeign bool) {
	rep.IsForeign = isForeign
	rep.IsForeignManual = true
}

// CopyOwnerToRepresentative az első természetes személy tulajdonos adatait
// másolja a képviselőbe ("megegyezik a tulajdonossal" művelet).
func CopyOwnerToRepresentative(rep *models.RepresentativeData, owner models.OwnerData) {
	o := owner.Natural
	if owner.Type != models.OwnerTypeNatural || o == nil {
		return
	}
	rep.FullName = o.FullName
	rep.BirthPlace = o.BirthPlace
	rep.BirthDate = o.BirthDate
	rep.MothersName = o.MothersName
	rep.Address = o.Address
	rep.IDDocumentType = o.IDDocumentType
	rep.IDNumber = o.IDNumber
	ApplyRepresentativeNationality(rep, o.Nationality)
}

// SyncContactFromOwner bekapcsoláskor átmásolja az első tulajdonos nevét és
// címét a kapcsolattartóba. Másolat, nem élő hivatkozás: a tulajdonos későbbi
// módosítása nem hat vissza.
func SyncContactFromOwner(contact *models.ContactData, owners models.OwnerList) {
	contact.IsSameAsOwner = true
	if len(owners) == 0 {
		return
	}
	switch owner := owners[0]; owner.Type {
	case models.OwnerTypeNatural:
		if o := owner.Natural; o != nil {
			contact.Name = o.FullName
			contact.Address = o.Address
		}
	case models.OwnerTypeLegal:
		if o := owner.Legal; o != nil {
			contact.Name = o.CompanyName
			contact.Address = o.Address
		}
	}
}
