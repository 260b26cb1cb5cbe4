package handler

import (
	"context"

	"github.com/cardwise/cardwise/internal/models"
	"github.com/shopspring/decimal"
)

func init() {
	// Match production JSON encoding (set in cmd/handler).
	decimal.MarshalJSONWithoutQuotes = true
}

// MockDatabaseClient is a mock implementation of DatabaseClient
type MockDatabaseClient struct {
	SaveStatementFunc  func(ctx context.Context, record models.StatementRecord) error
	ListStatementsFunc func(ctx context.Context) ([]models.StatementRecord, error)
}

func (m *MockDatabaseClient) SaveStatement(ctx context.Context, record models.StatementRecord) error {
	if m.SaveStatementFunc != nil {
		return m.SaveStatementFunc(ctx, record)
	}
	return nil
}

func (m *MockDatabaseClient) ListStatements(ctx context.Context) ([]models.StatementRecord, error) {
	if m.ListStatementsFunc != nil {
		return m.ListStatementsFunc(ctx)
	}
	return nil, nil
}

// MockBlobClient is a mock implementation of BlobClient
type MockBlobClient struct {
	UploadTextFunc   func(ctx context.Context, containerName, blobName, content string) error
	DownloadTextFunc func(ctx context.Context, containerName, blobName string) (string, error)
}

func (m *MockBlobClient) UploadText(ctx context.Context, containerName, blobName, content string) error {
	if m.UploadTextFunc != nil {
		return m.UploadTextFunc(ctx, containerName, blobName, content)
	}
	return nil
}

func (m *MockBlobClient) DownloadText(ctx context.Context, containerName, blobName string) (string, error) {
	if m.DownloadTextFunc != nil {
		return m.DownloadTextFunc(ctx, containerName, blobName)
	}
	return "", nil
}

// MockQueueClient is a mock implementation of QueueClient
type MockQueueClient struct {
	EnqueueMessageFunc func(ctx context.Context, queueName string, message any) error
}

func (m *MockQueueClient) EnqueueMessage(ctx context.Context, queueName string, message any) error {
	if m.EnqueueMessageFunc != nil {
		return m.EnqueueMessageFunc(ctx, queueName, message)
	}
	return nil
}

// MockEmailClient is a mock implementation of EmailClient
type MockEmailClient struct {
	SendEmailFunc func(ctx context.Context, to []string, subject, body string) error
}

func (m *MockEmailClient) SendEmail(ctx context.Context, to []string, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, to, subject, body)
	}
	return nil
}
