package services

import (
	"strings"

	"github.com/prefeitura-rio/bot-massagistas/internal/models"
)

// Grammar names, used in logs and metrics
const (
	GrammarPositional = "positional"
	GrammarLabeled    = "labeled"
)

// PositionalDelimiter separates the fields of a one-line submission
const PositionalDelimiter = " - "

// Grammar recovers a candidate directory entry from a chat message.
// Parse reports false when the text is not written in this grammar.
type Grammar interface {
	Name() string
	Parse(text string) (models.DirectoryEntry, bool)
}

// PositionalGrammar reads "Nome - ContatoTelegram - ... - Bairros": exactly one
// segment per directory field, in storage order.
type PositionalGrammar struct{}

func (PositionalGrammar) Name() string { return GrammarPositional }

func (PositionalGrammar) Parse(text string) (models.DirectoryEntry, bool) {
	parts := strings.Split(text, PositionalDelimiter)
	if len(parts) != len(models.DirectorySchema) {
		return models.DirectoryEntry{}, false
	}

	var entry models.DirectoryEntry
	for i, field := range models.DirectorySchema {
		field.Set(&entry, strings.TrimSpace(parts[i]))
	}
	return entry, true
}

// LabeledGrammar reads one "Label: value" pair per line. Every label must be
// present somewhere in the text; line order does not matter, unknown lines are
// skipped and a repeated label keeps its last value.
type LabeledGrammar struct{}

func (LabeledGrammar) Name() string { return GrammarLabeled }

func (LabeledGrammar) Parse(text string) (models.DirectoryEntry, bool) {
	for _, field := range models.DirectorySchema {
		if !strings.Contains(text, field.Label) {
			return models.DirectoryEntry{}, false
		}
	}

	var entry models.DirectoryEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, field := range models.DirectorySchema {
			if strings.HasPrefix(line, field.Label) {
				field.Set(&entry, strings.TrimSpace(strings.TrimPrefix(line, field.Label)))
				break
			}
		}
	}
	return entry, true
}

// Submission is a candidate entry together with the grammar that produced it
type Submission struct {
	Grammar string
	Entry   models.DirectoryEntry
}

// SubmissionParser tries its grammars in order and stops at the first match
type SubmissionParser struct {
	grammars []Grammar
}

// NewSubmissionParser creates a parser. Without grammars it uses the
// positional grammar followed by the labeled one.
func NewSubmissionParser(grammars ...Grammar) *SubmissionParser {
	if len(grammars) == 0 {
		grammars = []Grammar{PositionalGrammar{}, LabeledGrammar{}}
	}
	return &SubmissionParser{grammars: grammars}
}

// Parse returns the candidate entry, or false when the text is ordinary
// conversation rather than a registration attempt.
func (p *SubmissionParser) Parse(text string) (Submission, bool) {
	for _, g := range p.grammars {
		if entry, ok := g.Parse(text); ok {
			return Submission{Grammar: g.Name(), Entry: entry}, true
		}
	}
	return Submission{}, false
}
