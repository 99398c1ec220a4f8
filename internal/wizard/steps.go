package wizard

// Step a szerződéskötési varázsló egy lépése. A sorrend kötött és lineáris,
// elágazás nincs: minden kérelem minden lépésen átmegy.
type Step string

const (
	StepCompanyType    Step = "company-type"
	StepServiceSelect  Step = "service-select"
	StepCompanyData    Step = "company-data"
	StepOwnerContact   Step = "owner-contact"
	StepRepresentative Step = "representative"
	StepPEPDeclaration Step = "pep-declaration"
	StepDocuments      Step = "documents"
	StepSummary        Step = "summary"
)

// Steps a nyolc lépés kötött sorrendben.
var Steps = []Step{
	StepCompanyType,
	StepServiceSelect,
	StepCompanyData,
	StepOwnerContact,
	StepRepresentative,
	StepPEPDeclaration,
	StepDocuments,
	StepSummary,
}

// StepIndex a lépés pozíciója, ismeretlen lépésre -1.
func StepIndex(s Step) int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// IsKnownStep igaz, ha a lépés a folyamat része.
func IsKnownStep(s Step) bool { return StepIndex(s) >= 0 }

// NextStep egy pozíciót lép előre; az utolsó lépésen nem mozdul.
func NextStep(s Step) Step {
	i := StepIndex(s)
	if i < 0 || i >= len(Steps)-1 {
		return s
	}
	return Steps[i+1]
}

// PrevStep egy pozíciót lép vissza; az első lépésen nem mozdul.
func PrevStep(s Step) Step {
	i := StepIndex(s)
	if i <= 0 {
		return s
	}
	return Steps[i-1]
}

// GoToStep feltétel nélküli ugrás: az állapotgép tiszta indexállító, az
// előreugrás korlátozása a felület dolga. Ismeretlen célra a jelenlegi
// lépésen marad.
func GoToStep(current, target Step) Step {
	if !IsKnownStep(target) {
		return current
	}
	return target
}
