package services

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prefeitura-rio/bot-massagistas/internal/models"
	"github.com/prefeitura-rio/bot-massagistas/internal/utils"
)

// Listing texts
const (
	DirectoryHeader    = "💆‍♂️ Massagistas cadastrados:\n\n"
	DirectoryEmptyText = "Nenhum massagista cadastrado ainda."
)

// MaxFieldDisplayLength caps each field in a listing block. Seven fields at
// twice this length after escaping, plus labels and the header, stay under
// the Telegram message limit.
const MaxFieldDisplayLength = 200

// markdownMarkers are the characters legacy Telegram Markdown treats as entity delimiters
const markdownMarkers = "_*`["

// FormatEntry renders one directory entry as a Markdown block
func FormatEntry(entry models.DirectoryEntry) string {
	esc := func(s string) string {
		return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, truncateField(s))
	}

	return fmt.Sprintf("📌 %s\n"+
		"📱 Telegram: %s\n"+
		"📞 Telefone: %s\n"+
		"💆 Modalidades: %s\n"+
		"🏠 Atende domicílio: %s\n"+
		"🏢 Local próprio: %s\n"+
		"📍 Bairros: %s\n\n",
		formatName(entry.Name),
		esc(entry.ContactHandle),
		esc(utils.FormatPhoneForDisplay(entry.Phone)),
		esc(entry.ServiceTypes),
		esc(entry.ServesAtClientLocation),
		esc(entry.ServesAtOwnLocation),
		esc(entry.Neighborhoods),
	)
}

// formatName bolds the name. Escapes are not honoured inside a legacy Markdown
// entity, so names carrying markers are escaped and left plain.
func formatName(name string) string {
	name = truncateField(name)
	if strings.ContainsAny(name, markdownMarkers) {
		return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, name)
	}
	return "*" + name + "*"
}

// truncateField trims s and shortens it to MaxFieldDisplayLength characters
func truncateField(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= MaxFieldDisplayLength {
		return s
	}
	return strings.TrimSpace(string(runes[:MaxFieldDisplayLength-1])) + "…"
}

// FormatDirectory renders the directory as Telegram Markdown messages, in
// input order, split so that no message exceeds the Telegram length limit.
// An empty directory yields the single "no entries" message.
func FormatDirectory(entries []models.DirectoryEntry) []string {
	if len(entries) == 0 {
		return []string{DirectoryEmptyText}
	}

	blocks := make([]string, len(entries))
	for i, entry := range entries {
		blocks[i] = FormatEntry(entry)
	}
	return utils.SplitMessage(DirectoryHeader, blocks, utils.TelegramMessageLimit)
}
