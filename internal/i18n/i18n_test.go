package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLocale(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadFromDirFlattensNestedKeys(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "en.yaml", `
wizard:
  exit: "You left the templates wizard"
templates:
  saved: "Template saved"
`)

	m, err := LoadFromDir(dir, "en")
	require.NoError(t, err)

	tr := m.Translator("en")
	assert.Equal(t, "You left the templates wizard", tr.T("wizard.exit"))
	assert.Equal(t, "Template saved", tr.T("templates.saved"))
}

func TestLoadFromDirMissingDefaultLanguage(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "es.yaml", `wizard: {exit: "Saliste"}`)

	_, err := LoadFromDir(dir, "en")
	assert.Error(t, err)
}

func TestTranslatorFallsBackToDefaultLanguage(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "en.yaml", `
wizard:
  exit: "You left the templates wizard"
  help: "Use /exit"
`)
	writeLocale(t, dir, "es.yaml", `
wizard:
  exit: "Saliste del asistente"
`)

	m, err := LoadFromDir(dir, "en")
	require.NoError(t, err)

	es := m.Translator("es")
	assert.Equal(t, "Saliste del asistente", es.T("wizard.exit"))
	assert.Equal(t, "Use /exit", es.T("wizard.help"), "missing keys fall back to the default language")
}

func TestTranslatorUnknownLanguageUsesDefault(t *testing.T) {
	m := NewStatic("en", map[string]string{"wizard.exit": "bye"})

	tr := m.Translator("fr")
	assert.Equal(t, "en", tr.Lang())
	assert.Equal(t, "bye", tr.T("wizard.exit"))
}

func TestTranslatorMissingKeyReturnsKey(t *testing.T) {
	m := NewStatic("en", map[string]string{})

	tr := m.Translator("en")
	assert.Equal(t, "wizard.unknown", tr.T("wizard.unknown"))
	assert.Equal(t, "", tr.T("  "))
}
