package docgen

import (
	"fmt"
	"strings"

	"github.com/divan/num2words"
)

var (
	huOnes = []string{"", "egy", "kettő", "három", "négy", "öt", "hat", "hét", "nyolc", "kilenc"}
	huTens = []string{"", "tíz", "húsz", "harminc", "negyven", "ötven", "hatvan", "hetven", "nyolcvan", "kilencven"}
	// Tízen-/huszonvalahány alakok eltérnek a kerek tíztől.
	huTeenPrefix = []string{"", "tizen", "huszon"}
)

// AmountInWords az összeg betűvel, a szerződés nyelvén. Az angol alakot a
// num2words adja, a magyart magunk képezzük (a könyvtár csak angolul tud).
func AmountInWords(amount float64, language string) string {
	n := int(amount)
	if language == "en" {
		return fmt.Sprintf("%s forints", num2words.Convert(n))
	}
	return fmt.Sprintf("%s forint", ForintWordsHU(n))
}

// ForintWordsHU egész szám magyar betűs alakja, az akadémiai helyesírás
// egyszerűsítésével: kétezer fölött nem tagolunk kötőjellel.
func ForintWordsHU(n int) string {
	if n == 0 {
		return "nulla"
	}
	if n < 0 {
		return "mínusz " + ForintWordsHU(-n)
	}

	var parts []string
	groups := []struct {
		value int
		name  string
	}{
		{1_000_000_000, "milliárd"},
		{1_000_000, "millió"},
		{1_000, "ezer"},
	}
	for _, g := range groups {
		if n >= g.value {
			count := n / g.value
			n %= g.value
			if g.value == 1_000 && count == 1 {
				parts = append(parts, "ezer")
			} else {
				parts = append(parts, hundredsHU(count)+g.name)
			}
		}
	}
	if n > 0 {
		parts = append(parts, hundredsHU(n))
	}
	return strings.Join(parts, "")
}

func hundredsHU(n int) string {
	var b strings.Builder
	if h := n / 100; h > 0 {
		if h > 1 {
			b.WriteString(huOnes[h])
		}
		b.WriteString("száz")
		n %= 100
	}
	t := n / 10
	o := n % 10
	switch {
	case t == 0:
		b.WriteString(huOnes[o])
	case t <= 2 && o > 0:
		b.WriteString(huTeenPrefix[t])
		b.WriteString(huOnes[o])
	default:
		b.WriteString(huTens[t])
		b.WriteString(huOnes[o])
	}
	return b.String()
}
