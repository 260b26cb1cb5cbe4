package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/cardwise/cardwise/internal/models"
	"github.com/shopspring/decimal"
)

// statementsPartition is the single partition holding all statement rows.
// Volume is one record per billing cycle per user, so partition fan-out
// buys nothing here.
const statementsPartition = "STATEMENTS"

// DatabaseService handles interactions with Azure Table Storage.
type DatabaseService struct {
	serviceClient   *aztables.ServiceClient
	statementsTable string
}

// NewDatabaseService creates a new DatabaseService instance.
func NewDatabaseService() (*DatabaseService, error) {
	tableURL := os.Getenv("TABLE_SERVICE_URL")
	if tableURL == "" {
		return nil, fmt.Errorf("TABLE_SERVICE_URL environment variable is required")
	}

	statementsTable := os.Getenv("STATEMENTS_TABLE")
	if statementsTable == "" {
		statementsTable = "statements"
	}

	var client *aztables.ServiceClient

	// Check if running locally with Azurite (http endpoint)
	if isLocal(tableURL) {
		slog.Info("using Azurite credentials for database service")
		name, key := getAzuriteCredentials()
		cred, err := aztables.NewSharedKeyCredential(name, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		var err2 error
		client, err2 = aztables.NewServiceClientWithSharedKey(tableURL, cred, nil)
		if err2 != nil {
			return nil, fmt.Errorf("failed to create table service client with shared key: %w", err2)
		}
	} else {
		// Production: Managed Identity
		slog.Info("using default Azure credentials for database service")
		cred, err := newDefaultAzureCredential()
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		var err2 error
		client, err2 = aztables.NewServiceClient(tableURL, cred, nil)
		if err2 != nil {
			return nil, fmt.Errorf("failed to create table service client: %w", err2)
		}
	}

	svc := &DatabaseService{
		serviceClient:   client,
		statementsTable: statementsTable,
	}

	// Ensure tables exist
	if err := svc.CreateTables(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	slog.Info("database service initialized successfully",
		"table_url", tableURL,
		"statements_table", statementsTable,
	)
	return svc, nil
}

// CreateTables ensures all required tables exist in Azure Table Storage.
func (s *DatabaseService) CreateTables(ctx context.Context) error {
	_, err := s.serviceClient.CreateTable(ctx, s.statementsTable, nil)
	if err != nil {
		// Ignore error if table already exists
		var azErr *azcore.ResponseError
		if errors.As(err, &azErr) && azErr.ErrorCode == "TableAlreadyExists" {
			return nil
		}
		return fmt.Errorf("failed to create table %s: %w", s.statementsTable, err)
	}
	return nil
}

// getClient returns a client for the specified table.
func (s *DatabaseService) getClient(tableName string) *aztables.Client {
	return s.serviceClient.NewClient(tableName)
}

// SaveStatement upserts a statement record. Spending category totals are
// stored as a JSON column; Table Storage has no map type.
func (s *DatabaseService) SaveStatement(ctx context.Context, record models.StatementRecord) error {
	client := s.getClient(s.statementsTable)

	stmt := record.Statement
	entity := map[string]any{
		"PartitionKey":    statementsPartition,
		"RowKey":          record.ID,
		"Filename":        record.Filename,
		"Source":          record.Source,
		"PreviousBalance": stmt.PreviousBalance.InexactFloat64(),
		"CurrentBalance":  stmt.CurrentBalance.InexactFloat64(),
		"Payments":        stmt.Payments.InexactFloat64(),
		"NewCharges":      stmt.NewCharges.InexactFloat64(),
		"InterestCharged": stmt.InterestCharged.InexactFloat64(),
		"MinimumPayment":  stmt.MinimumPayment.InexactFloat64(),
		"InterestRate":    stmt.InterestRate,
		"CreditLimit":     stmt.CreditLimit.InexactFloat64(),
		"AvailableCredit": stmt.AvailableCredit.InexactFloat64(),
		"DueDate":         stmt.DueDate,
		"RewardsEarned":   stmt.RewardsEarned,
		"ImportedAt":      record.ImportedAt,
	}

	if len(stmt.SpendingCategories) > 0 {
		categoriesJson, err := json.Marshal(stmt.SpendingCategories)
		if err != nil {
			return fmt.Errorf("failed to marshal spending categories: %w", err)
		}
		entity["CategoriesJSON"] = string(categoriesJson)
	}

	entityJson, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal statement entity: %w", err)
	}

	if _, err := client.UpsertEntity(ctx, entityJson, nil); err != nil {
		return fmt.Errorf("failed to upsert statement %s: %w", record.ID, err)
	}
	return nil
}

// ListStatements retrieves all stored statement records.
func (s *DatabaseService) ListStatements(ctx context.Context) ([]models.StatementRecord, error) {
	client := s.getClient(s.statementsTable)

	filter := fmt.Sprintf("PartitionKey eq '%s'", statementsPartition)
	pager := client.NewListEntitiesPager(&aztables.ListEntitiesOptions{
		Filter: &filter,
	})

	var records []models.StatementRecord

	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list statements: %w", err)
		}

		for _, entity := range resp.Entities {
			var parsed map[string]any
			if err := json.Unmarshal(entity, &parsed); err != nil {
				continue
			}
			records = append(records, entityToRecord(parsed))
		}
	}

	return records, nil
}

func entityToRecord(parsed map[string]any) models.StatementRecord {
	getString := func(key string) string {
		if v, ok := parsed[key].(string); ok {
			return v
		}
		return ""
	}

	getDecimal := func(key string) decimal.Decimal {
		if v, ok := parsed[key].(float64); ok {
			return decimal.NewFromFloat(v)
		}
		if v, ok := parsed[key].(string); ok {
			d, _ := decimal.NewFromString(v)
			return d
		}
		return decimal.Zero
	}

	getFloat := func(key string) float64 {
		if v, ok := parsed[key].(float64); ok {
			return v
		}
		return 0
	}

	stmt := models.Statement{
		PreviousBalance: getDecimal("PreviousBalance"),
		CurrentBalance:  getDecimal("CurrentBalance"),
		Payments:        getDecimal("Payments"),
		NewCharges:      getDecimal("NewCharges"),
		InterestCharged: getDecimal("InterestCharged"),
		MinimumPayment:  getDecimal("MinimumPayment"),
		InterestRate:    getFloat("InterestRate"),
		CreditLimit:     getDecimal("CreditLimit"),
		AvailableCredit: getDecimal("AvailableCredit"),
		DueDate:         getString("DueDate"),
		RewardsEarned:   int64(getFloat("RewardsEarned")),
	}

	if raw := getString("CategoriesJSON"); raw != "" {
		var categories map[string]decimal.Decimal
		if err := json.Unmarshal([]byte(raw), &categories); err == nil {
			stmt.SpendingCategories = categories
		}
	}

	return models.StatementRecord{
		ID:         getString("RowKey"),
		Filename:   getString("Filename"),
		Source:     getString("Source"),
		Statement:  stmt,
		ImportedAt: getString("ImportedAt"),
	}
}
