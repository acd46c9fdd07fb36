package services

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/prefeitura-rio/bot-massagistas/internal/models"
	"github.com/prefeitura-rio/bot-massagistas/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() models.DirectoryEntry {
	return models.DirectoryEntry{
		Name:                   "Ana Souza",
		ContactHandle:          "@ana",
		Phone:                  "31999998888",
		ServiceTypes:           "Relaxante, Drenagem",
		ServesAtClientLocation: "Sim",
		ServesAtOwnLocation:    "Não",
		Neighborhoods:          "Centro, Savassi",
	}
}

func TestFormatEntry(t *testing.T) {
	got := FormatEntry(sampleEntry())

	want := "📌 *Ana Souza*\n" +
		"📱 Telegram: @ana\n" +
		"📞 Telefone: (31) 99999-8888\n" +
		"💆 Modalidades: Relaxante, Drenagem\n" +
		"🏠 Atende domicílio: Sim\n" +
		"🏢 Local próprio: Não\n" +
		"📍 Bairros: Centro, Savassi\n\n"
	assert.Equal(t, want, got)
}

func TestFormatEntry_EscapesMarkdown(t *testing.T) {
	entry := sampleEntry()
	entry.Name = "*Ana*"
	entry.ContactHandle = "@ana_souza"

	got := FormatEntry(entry)

	assert.Contains(t, got, "📌 \\*Ana\\*\n")
	assert.Contains(t, got, "📱 Telegram: @ana\\_souza\n")
}

func TestFormatEntry_NameWithMarkersIsNotBolded(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Ana Maria", want: "📌 *Ana Maria*\n"},
		{name: "Ana_Maria", want: "📌 Ana\\_Maria\n"},
		{name: "[Ana]", want: "📌 \\[Ana]\n"},
		{name: "  Ana  ", want: "📌 *Ana*\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := sampleEntry()
			entry.Name = tt.name

			assert.True(t, strings.HasPrefix(FormatEntry(entry), tt.want))
		})
	}
}

func TestFormatEntry_TruncatesLongFields(t *testing.T) {
	entry := sampleEntry()
	entry.Neighborhoods = strings.Repeat("b", 5000)

	got := FormatEntry(entry)

	assert.Contains(t, got, "📍 Bairros: "+strings.Repeat("b", MaxFieldDisplayLength-1)+"…\n")
	assert.NotContains(t, got, strings.Repeat("b", MaxFieldDisplayLength))
}

func TestFormatEntry_UnrecognizedPhoneKeptAsTyped(t *testing.T) {
	entry := sampleEntry()
	entry.Phone = "ligar depois"

	assert.Contains(t, FormatEntry(entry), "📞 Telefone: ligar depois\n")
}

func TestFormatDirectory_Empty(t *testing.T) {
	assert.Equal(t, []string{DirectoryEmptyText}, FormatDirectory(nil))
	assert.Equal(t, []string{DirectoryEmptyText}, FormatDirectory([]models.DirectoryEntry{}))
}

func TestFormatDirectory_KeepsOrder(t *testing.T) {
	first := sampleEntry()
	second := sampleEntry()
	second.Name = "Bia"

	messages := FormatDirectory([]models.DirectoryEntry{first, second})

	require.Len(t, messages, 1)
	assert.Equal(t, DirectoryHeader+FormatEntry(first)+FormatEntry(second), messages[0])
}

func TestFormatDirectory_IsPure(t *testing.T) {
	entries := []models.DirectoryEntry{sampleEntry()}

	assert.Equal(t, FormatDirectory(entries), FormatDirectory(entries))
	assert.Equal(t, sampleEntry(), entries[0])
}

func TestFormatDirectory_SplitsLongListings(t *testing.T) {
	entries := make([]models.DirectoryEntry, 60)
	for i := range entries {
		entries[i] = sampleEntry()
		entries[i].Name = fmt.Sprintf("Massagista %02d", i)
	}

	messages := FormatDirectory(entries)

	require.Greater(t, len(messages), 1)
	assert.True(t, strings.HasPrefix(messages[0], DirectoryHeader))
	for _, msg := range messages {
		assert.LessOrEqual(t, utf8.RuneCountInString(msg), utils.TelegramMessageLimit)
	}

	joined := strings.Join(messages, "")
	for i := range entries {
		assert.Contains(t, joined, FormatEntry(entries[i]))
	}
	assert.Less(t, strings.Index(joined, "Massagista 00"), strings.Index(joined, "Massagista 59"))
}

// unescapedAsterisks counts '*' characters that open or close a bold entity
func unescapedAsterisks(s string) int {
	count := 0
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '*':
			count++
		}
	}
	return count
}

func TestFormatDirectory_OversizeEntryFitsOneMessage(t *testing.T) {
	tests := []struct {
		name  string
		entry func() models.DirectoryEntry
	}{
		{name: "huge name", entry: func() models.DirectoryEntry {
			e := sampleEntry()
			e.Name = strings.Repeat("a", 5000)
			return e
		}},
		{name: "every field full of markers", entry: func() models.DirectoryEntry {
			marked := strings.Repeat("_*", 3000)
			return models.DirectoryEntry{
				Name:                   marked,
				ContactHandle:          marked,
				Phone:                  marked,
				ServiceTypes:           marked,
				ServesAtClientLocation: marked,
				ServesAtOwnLocation:    marked,
				Neighborhoods:          marked,
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := []models.DirectoryEntry{tt.entry(), sampleEntry()}

			messages := FormatDirectory(entries)

			require.NotEmpty(t, messages)
			assert.NotEqual(t, DirectoryHeader, messages[0])
			assert.True(t, strings.HasPrefix(messages[0], DirectoryHeader+"📌 "))
			for _, msg := range messages {
				assert.LessOrEqual(t, utf8.RuneCountInString(msg), utils.TelegramMessageLimit)
				assert.Zero(t, unescapedAsterisks(msg)%2, "unbalanced bold entity in %q", msg)
			}
			assert.Contains(t, strings.Join(messages, ""), FormatEntry(sampleEntry()))
		})
	}
}
