package ui

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	MsgReady         = "Ready"
	MsgAnalyzing     = "Analyzing…"
	MsgUploading     = "Uploading…"
	MsgNoErrors      = "No errors"
	MsgAnalyzeHint   = "Press ctrl+r to analyze."
	MsgUploaded      = "Loaded %s"
	MsgUploadFailed  = "Upload failed: %s"
	MsgCopied        = "TAC copied to clipboard"
	MsgCopyFailed    = "Copy failed: %s"
	MsgNothingToCopy = "No TAC to copy"
	MsgTheme         = "Theme: %s"
	msgErrorCount    = "%d errors"
)

var supported = []language.Tag{language.English, language.Spanish}

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	b.Set(language.English, msgErrorCount,
		plural.Selectf(1, "%d", "=1", "%d error", "other", "%d errors"))
	b.Set(language.Spanish, msgErrorCount,
		plural.Selectf(1, "%d", "=1", "%d error", "other", "%d errores"))

	es := map[string]string{
		MsgReady:         "Listo",
		MsgAnalyzing:     "Analizando…",
		MsgUploading:     "Subiendo…",
		MsgNoErrors:      "Sin errores",
		MsgAnalyzeHint:   "Presiona ctrl+r para analizar.",
		MsgUploaded:      "Cargado %s",
		MsgUploadFailed:  "Error al subir: %s",
		MsgCopied:        "TAC copiado al portapapeles",
		MsgCopyFailed:    "No se pudo copiar: %s",
		MsgNothingToCopy: "No hay TAC para copiar",
		MsgTheme:         "Tema: %s",
	}
	for key, text := range es {
		b.SetString(language.Spanish, key, text)
	}
	return b
}

// Localizer formats user-facing strings for one locale.
type Localizer struct {
	p *message.Printer
}

// NewLocalizer picks the closest supported language to locale; unknown or
// empty locales get English.
func NewLocalizer(locale string) Localizer {
	tag := language.English
	if t, err := language.Parse(locale); err == nil {
		_, idx, conf := language.NewMatcher(supported).Match(t)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return Localizer{p: message.NewPrinter(tag, message.Catalog(newCatalog()))}
}

// CountLabel is "1 error" for exactly one diagnostic and the plural form
// otherwise, zero included.
func (l Localizer) CountLabel(n int) string {
	return l.p.Sprintf(msgErrorCount, n)
}

func (l Localizer) Text(key string, args ...any) string {
	return l.p.Sprintf(key, args...)
}
