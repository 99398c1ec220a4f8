package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceShortcodesBasic(t *testing.T) {
	out := ReplaceShortcodes("Szerződő: {{COMPANY_NAME}} ({{COMPANY_REG_NUMBER}})",
		map[string]string{
			"{{COMPANY_NAME}}":       "Minta Kft.",
			"{{COMPANY_REG_NUMBER}}": "01-09-123456",
		}, nil)
	assert.Equal(t, "Szerződő: Minta Kft. (01-09-123456)", out)
}

func TestReplaceShortcodesUnknownTokenLeftAlone(t *testing.T) {
	out := ReplaceShortcodes("{{ISMERETLEN}}", map[string]string{}, nil)
	assert.Equal(t, "{{ISMERETLEN}}", out)
}

func TestConditionalBlockKeptWhenTrue(t *testing.T) {
	tpl := "eleje {{#IF IS_PEP}}közszereplő{{/IF}} vége"
	out := ReplaceShortcodes(tpl, nil, map[string]bool{"IS_PEP": true})
	assert.Equal(t, "eleje közszereplő vége", out)
}

func TestConditionalBlockDroppedWhenFalseOrUnknown(t *testing.T) {
	tpl := "eleje {{#IF IS_PEP}}közszereplő{{/IF}} vége"

	out := ReplaceShortcodes(tpl, nil, map[string]bool{"IS_PEP": false})
	assert.Equal(t, "eleje  vége", out)

	out = ReplaceShortcodes(tpl, nil, map[string]bool{})
	assert.Equal(t, "eleje  vége", out)
}

func TestNestedConditionalBlocks(t *testing.T) {
	tpl := "{{#IF A}}a{{#IF B}}b{{/IF}}{{/IF}}"

	assert.Equal(t, "ab", ReplaceShortcodes(tpl, nil, map[string]bool{"A": true, "B": true}))
	assert.Equal(t, "a", ReplaceShortcodes(tpl, nil, map[string]bool{"A": true}))
	assert.Equal(t, "", ReplaceShortcodes(tpl, nil, map[string]bool{"B": true}))
}

func TestUnterminatedBlockFailsClosed(t *testing.T) {
	tpl := "eleje {{#IF A}}soha nem záródik"
	out := ReplaceShortcodes(tpl, nil, map[string]bool{"A": true})
	// A lezáratlan blokkból semmi nem kerül a kimenetbe.
	assert.Equal(t, "eleje ", out)
}

func TestTruncatedOpenerFailsClosed(t *testing.T) {
	out := ReplaceShortcodes("eleje {{#IF CSONKA", nil, nil)
	assert.Equal(t, "eleje ", out)
}

func TestTokensInsideConditionalBlock(t *testing.T) {
	tpl := "{{#IF LANG_HU}}Név: {{OWNER_NAME}}{{/IF}}"
	out := ReplaceShortcodes(tpl,
		map[string]string{"{{OWNER_NAME}}": "Kiss János"},
		map[string]bool{"LANG_HU": true})
	assert.Equal(t, "Név: Kiss János", out)
}

func TestFillMissingTokensEmptiesVocabulary(t *testing.T) {
	repl := FillMissingTokens(map[string]string{"{{OWNER_NAME}}": "Kiss János"})
	assert.Equal(t, "Kiss János", repl["{{OWNER_NAME}}"])
	assert.Equal(t, "", repl["{{CONTRACT_NUMBER}}"])
	assert.Equal(t, "", repl["{{PEP_DETAILS}}"])
}
