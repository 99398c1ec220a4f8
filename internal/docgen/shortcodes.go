package docgen

import "strings"

// Feltételes blokk határolói a sablonokban:
//
//	{{#IF HAS_LEGAL_OWNER}} ... {{/IF}}
//
// Hamis (vagy ismeretlen) feltételnél a blokk teljes egészében kimarad a
// kimenetből. A blokkok egymásba ágyazhatók.
const (
	condOpen  = "{{#IF "
	condClose = "{{/IF}}"
)

// ReplaceShortcodes kitölti a sablont: először a feltételes blokkokat oldja
// fel, majd a data kulcsait (teljes "{{TOKEN}}" alakban) cseréli az értékükre.
// A data-ban nem szereplő tokenek érintetlenül maradnak. Tiszta függvény,
// hibát nem ad vissza: a csonka sablon zártan hibázik (a lezáratlan blokkból
// semmi nem kerül a kimenetbe).
func ReplaceShortcodes(template string, data map[string]string, conditionalContext map[string]bool) string {
	out := resolveConditionals(template, conditionalContext)
	for key, val := range data {
		out = strings.ReplaceAll(out, key, val)
	}
	return out
}

func resolveConditionals(tpl string, cond map[string]bool) string {
	var b strings.Builder
	for {
		i := strings.Index(tpl, condOpen)
		if i < 0 {
			b.WriteString(tpl)
			return b.String()
		}
		b.WriteString(tpl[:i])
		rest := tpl[i+len(condOpen):]

		nameEnd := strings.Index(rest, "}}")
		if nameEnd < 0 {
			// Csonka nyitó jelölő: a maradékot eldobjuk.
			return b.String()
		}
		name := strings.TrimSpace(rest[:nameEnd])
		body := rest[nameEnd+2:]

		inner, after, ok := splitConditionalBlock(body)
		if !ok {
			// Lezáratlan blokk: zártan hibázunk, a blokkból semmit nem
			// renderelünk.
			return b.String()
		}
		if cond[name] {
			b.WriteString(resolveConditionals(inner, cond))
		}
		tpl = after
	}
}

// splitConditionalBlock megkeresi a nyitóhoz tartozó lezárót az egymásba
// ágyazott blokkok figyelembevételével.
func splitConditionalBlock(s string) (inner, after string, ok bool) {
	depth := 1
	pos := 0
	for {
		open := strings.Index(s[pos:], condOpen)
		close := strings.Index(s[pos:], condClose)
		if close < 0 {
			return "", "", false
		}
		if open >= 0 && open < close {
			depth++
			pos += open + len(condOpen)
			continue
		}
		depth--
		if depth == 0 {
			return s[:pos+close], s[pos+close+len(condClose):], true
		}
		pos += close + len(condClose)
	}
}
