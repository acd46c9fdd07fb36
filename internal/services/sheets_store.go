package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/models"
	"github.com/prefeitura-rio/bot-massagistas/internal/utils/httpclient"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	sheetsBackend     = "sheets"
	sheetsHTTPTimeout = 30 * time.Second
)

// NewSheetsService builds a Sheets API client authenticated as a service account.
// The spreadsheet must be shared with the service account email as editor.
func NewSheetsService(ctx context.Context, email, privateKey string) (*sheets.Service, error) {
	if email == "" || privateKey == "" {
		return nil, fmt.Errorf("%w: service account email and private key", models.ErrMissingConfig)
	}

	conf := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	// token requests and API calls share one tuned transport
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpclient.New(sheetsHTTPTimeout))
	client := oauth2.NewClient(ctx, conf.TokenSource(ctx))
	client.Timeout = sheetsHTTPTimeout

	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return service, nil
}

// SheetsStore keeps the directory in a spreadsheet tab. Row 1 holds the
// column headers and is managed by hand; data starts at row 2, columns A to G.
type SheetsStore struct {
	service       *sheets.Service
	spreadsheetID string
	tabName       string
	limiter       *RateLimiter
	logger        *logging.SafeLogger
}

// NewSheetsStore creates a spreadsheet-backed directory store.
// A nil limiter disables rate limiting.
func NewSheetsStore(service *sheets.Service, spreadsheetID, tabName string, limiter *RateLimiter, logger *logging.SafeLogger) *SheetsStore {
	return &SheetsStore{
		service:       service,
		spreadsheetID: spreadsheetID,
		tabName:       tabName,
		limiter:       limiter,
		logger:        logger.With(zap.String("store", sheetsBackend)),
	}
}

// ListEntries reads every data row of the tab
func (s *SheetsStore) ListEntries(ctx context.Context) ([]models.DirectoryEntry, error) {
	var entries []models.DirectoryEntry

	err := instrumentStoreCall(ctx, sheetsBackend, "list", func(ctx context.Context) error {
		if err := s.allow(ctx, "list"); err != nil {
			return err
		}

		resp, err := s.service.Spreadsheets.Values.
			Get(s.spreadsheetID, s.cellRange("A2:G")).
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("%w: read rows: %w", models.ErrStoreUnavailable, err)
		}

		entries = make([]models.DirectoryEntry, 0, len(resp.Values))
		for i, cells := range resp.Values {
			row := cellsToRow(cells)
			if isBlankRow(row) {
				continue
			}
			entry, err := models.DirectoryEntryFromRow(row)
			if err != nil {
				s.logger.Warn("skipping malformed directory row", zap.Int("row", i+2), zap.Error(err))
				continue
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to list directory entries", zap.Error(err))
		return nil, err
	}

	return entries, nil
}

// AppendEntry inserts one row after the last data row
func (s *SheetsStore) AppendEntry(ctx context.Context, entry models.DirectoryEntry) error {
	entry = entry.Trimmed()
	err := instrumentStoreCall(ctx, sheetsBackend, "append", func(ctx context.Context) error {
		if err := s.allow(ctx, "append"); err != nil {
			return err
		}

		row := entry.ToRow()
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}

		_, err := s.service.Spreadsheets.Values.
			Append(s.spreadsheetID, s.cellRange("A2"), &sheets.ValueRange{Values: [][]interface{}{values}}).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("%w: append row: %w", models.ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to append directory entry",
			zap.String("contact_handle", entry.ContactHandle),
			zap.Error(err))
		return err
	}

	s.logger.Info("directory entry appended", zap.String("contact_handle", entry.ContactHandle))
	return nil
}

func (s *SheetsStore) allow(ctx context.Context, operation string) error {
	if s.limiter != nil && !s.limiter.Allow(ctx, "sheets_"+operation) {
		return fmt.Errorf("%w: %s", models.ErrStoreRateLimited, operation)
	}
	return nil
}

// cellRange builds an A1 range on the configured tab, quoting tab names that
// are not plain words.
func (s *SheetsStore) cellRange(cells string) string {
	return quoteTabName(s.tabName) + "!" + cells
}

func quoteTabName(name string) string {
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}

func cellsToRow(cells []interface{}) []string {
	row := make([]string, len(cells))
	for i, cell := range cells {
		if s, ok := cell.(string); ok {
			row[i] = s
		} else if cell != nil {
			row[i] = fmt.Sprint(cell)
		}
	}
	return row
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
