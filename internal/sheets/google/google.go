// Package google mirrors the finance dataset to a Google Spreadsheet.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"financas/internal/config"
	"financas/internal/core"
	"financas/internal/log"
	"financas/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	expensesSheet string
	incomesSheet  string
	batchSize     int
}

var _ sheets.Mirror = (*Client)(nil)

// NewClient builds a Sheets client from the backup section of the config,
// authenticating with the stored OAuth client and refresh token.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	clientJSON, err := readCredential(cfg.GoogleOAuthClientJSON, cfg.GoogleOAuthClientFile)
	if err != nil {
		return nil, fmt.Errorf("oauth client credentials: %w", err)
	}
	tokenJSON, err := readCredential(cfg.GoogleOAuthTokenJSON, cfg.GoogleOAuthTokenFile)
	if err != nil {
		return nil, fmt.Errorf("oauth token: %w", err)
	}

	oauthCfg, err := googleauth.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithTokenSource(oauthCfg.TokenSource(ctx, &token)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		expensesSheet: cfg.GoogleExpensesSheet,
		incomesSheet:  cfg.GoogleIncomesSheet,
		batchSize:     cfg.BackupBatchSize,
	}, nil
}

func readCredential(inline, file string) ([]byte, error) {
	if s := strings.TrimSpace(inline); s != "" {
		return []byte(s), nil
	}
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		return b, nil
	}
	return nil, errors.New("no inline JSON and no file configured")
}

// MirrorSnapshot clears both backup sheets and rewrites them from the
// snapshot, header first, rows in batches.
func (c *Client) MirrorSnapshot(ctx context.Context, snap core.FinanceSnapshot) (sheets.BackupStats, error) {
	var stats sheets.BackupStats
	if c.svc == nil {
		return stats, errors.New("sheets service not initialized")
	}

	expenseRows := make([][]any, 0, len(snap.Expenses)+1)
	expenseRows = append(expenseRows, sheets.ExpenseHeader)
	for _, e := range snap.Expenses {
		expenseRows = append(expenseRows, sheets.ExpenseRow(e))
	}
	if err := c.rewriteSheet(ctx, c.expensesSheet, expenseRows); err != nil {
		return stats, fmt.Errorf("mirror expenses: %w", err)
	}
	stats.ExpenseRows = len(snap.Expenses)

	incomeRows := make([][]any, 0, len(snap.Incomes)+1)
	incomeRows = append(incomeRows, sheets.IncomeHeader)
	for _, i := range snap.Incomes {
		incomeRows = append(incomeRows, sheets.IncomeRow(i))
	}
	if err := c.rewriteSheet(ctx, c.incomesSheet, incomeRows); err != nil {
		return stats, fmt.Errorf("mirror incomes: %w", err)
	}
	stats.IncomeRows = len(snap.Incomes)

	slog.InfoContext(ctx, "Snapshot mirrored to spreadsheet",
		log.FieldComponent, log.ComponentSheets,
		"expense_rows", stats.ExpenseRows,
		"income_rows", stats.IncomeRows)

	return stats, nil
}

func (c *Client) rewriteSheet(ctx context.Context, sheetName string, rows [][]any) error {
	clearRange := fmt.Sprintf("%s!A:Z", sheetName)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", clearRange, err)
	}

	for start := 0; start < len(rows); start += c.batchSize {
		end := start + c.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		rng := fmt.Sprintf("%s!A%d", sheetName, start+1)
		vr := &gsheet.ValueRange{Values: rows[start:end]}
		_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write %s: %w", rng, err)
		}
	}
	return nil
}
