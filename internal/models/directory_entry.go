package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field keys used when reporting validation problems back to the submitter.
const (
	FieldNome            = "nome"
	FieldContatoTelegram = "contatoTelegram"
	FieldTelefone        = "telefone"
	FieldModalidades     = "modalidades"
	FieldAtendeDomicilio = "atendeDomicilio"
	FieldLocalProprio    = "localProprio"
	FieldBairros         = "bairros"
)

// DirectoryColumnCount is the number of columns a directory row has in storage
const DirectoryColumnCount = 7

// DirectoryEntry represents a massage therapist registered in the directory.
// Every field is free text; "Sim"/"Não" answers are kept exactly as typed.
type DirectoryEntry struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Name                   string             `bson:"nome" json:"nome"`
	ContactHandle          string             `bson:"contato_telegram" json:"contato_telegram"`
	Phone                  string             `bson:"telefone" json:"telefone"`
	ServiceTypes           string             `bson:"modalidades" json:"modalidades"`
	ServesAtClientLocation string             `bson:"atende_domicilio" json:"atende_domicilio"`
	ServesAtOwnLocation    string             `bson:"local_proprio" json:"local_proprio"`
	Neighborhoods          string             `bson:"bairros" json:"bairros"`
	CreatedAt              time.Time          `bson:"created_at" json:"created_at,omitempty"`
}

// DirectoryField describes one column of the directory
type DirectoryField struct {
	Key       string
	Label     string // label token used by the labeled submission format
	Header    string // column header in the spreadsheet
	Mandatory bool
	get       func(*DirectoryEntry) *string
}

// Value returns the field value of the given entry
func (f DirectoryField) Value(e *DirectoryEntry) string {
	return *f.get(e)
}

// Set assigns the field value on the given entry
func (f DirectoryField) Set(e *DirectoryEntry, value string) {
	*f.get(e) = value
}

// DirectorySchema lists the directory fields in storage order (columns A to G).
var DirectorySchema = []DirectoryField{
	{Key: FieldNome, Label: "Nome:", Header: "Nome", Mandatory: true,
		get: func(e *DirectoryEntry) *string { return &e.Name }},
	{Key: FieldContatoTelegram, Label: "ContatoTelegram:", Header: "ContatoTelegram", Mandatory: true,
		get: func(e *DirectoryEntry) *string { return &e.ContactHandle }},
	{Key: FieldTelefone, Label: "Telefone:", Header: "Telefone",
		get: func(e *DirectoryEntry) *string { return &e.Phone }},
	{Key: FieldModalidades, Label: "Modalidades:", Header: "Modalidades",
		get: func(e *DirectoryEntry) *string { return &e.ServiceTypes }},
	{Key: FieldAtendeDomicilio, Label: "AtendeDomicilio:", Header: "AtendeDomicilio", Mandatory: true,
		get: func(e *DirectoryEntry) *string { return &e.ServesAtClientLocation }},
	{Key: FieldLocalProprio, Label: "LocalProprio:", Header: "LocalProprio", Mandatory: true,
		get: func(e *DirectoryEntry) *string { return &e.ServesAtOwnLocation }},
	{Key: FieldBairros, Label: "Bairros:", Header: "Bairros",
		get: func(e *DirectoryEntry) *string { return &e.Neighborhoods }},
}

// DirectoryHeaders returns the column headers in storage order
func DirectoryHeaders() []string {
	headers := make([]string, len(DirectorySchema))
	for i, f := range DirectorySchema {
		headers[i] = f.Header
	}
	return headers
}

// ToRow converts the entry to a storage row in column order
func (e DirectoryEntry) ToRow() []string {
	row := make([]string, len(DirectorySchema))
	for i, f := range DirectorySchema {
		row[i] = f.Value(&e)
	}
	return row
}

// DirectoryEntryFromRow builds an entry from a storage row.
// Short rows are accepted because the spreadsheet API omits trailing empty cells.
func DirectoryEntryFromRow(row []string) (DirectoryEntry, error) {
	if len(row) > DirectoryColumnCount {
		return DirectoryEntry{}, fmt.Errorf("%w: %d columns", ErrInvalidRow, len(row))
	}
	var entry DirectoryEntry
	for i, value := range row {
		DirectorySchema[i].Set(&entry, value)
	}
	return entry, nil
}

// Trimmed returns a copy of the entry with surrounding whitespace removed from every field
func (e DirectoryEntry) Trimmed() DirectoryEntry {
	out := e
	for _, f := range DirectorySchema {
		f.Set(&out, strings.TrimSpace(f.Value(&e)))
	}
	return out
}
