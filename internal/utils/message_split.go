package utils

import (
	"strings"
	"unicode/utf8"
)

// TelegramMessageLimit is the maximum length of a Telegram text message in characters
const TelegramMessageLimit = 4096

// SplitMessage joins blocks into as few messages as possible without exceeding
// limit characters, never splitting a block unless the block alone is too long.
// The header is prepended to the first block and never sent on its own.
func SplitMessage(header string, blocks []string, limit int) []string {
	var (
		messages []string
		current  strings.Builder
		hasBlock bool
	)
	current.WriteString(header)

	flush := func() {
		if current.Len() > 0 {
			messages = append(messages, current.String())
			current.Reset()
		}
		hasBlock = false
	}

	for _, block := range blocks {
		if hasBlock && utf8.RuneCountInString(current.String())+utf8.RuneCountInString(block) > limit {
			flush()
		}
		current.WriteString(block)
		hasBlock = true

		for utf8.RuneCountInString(current.String()) > limit {
			runes := []rune(current.String())
			messages = append(messages, string(runes[:limit]))
			current.Reset()
			current.WriteString(string(runes[limit:]))
		}
	}
	flush()

	return messages
}
