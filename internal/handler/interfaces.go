package handler

import (
	"context"

	"github.com/cardwise/cardwise/internal/models"
)

// DatabaseClient defines the interface for statement persistence used by
// the handlers.
type DatabaseClient interface {
	SaveStatement(ctx context.Context, record models.StatementRecord) error
	ListStatements(ctx context.Context) ([]models.StatementRecord, error)
}

// BlobClient defines the interface for blob storage operations used by
// the handlers.
type BlobClient interface {
	UploadText(ctx context.Context, containerName, blobName, content string) error
	DownloadText(ctx context.Context, containerName, blobName string) (string, error)
}

// QueueClient defines the interface for queue operations used by the
// handlers.
type QueueClient interface {
	EnqueueMessage(ctx context.Context, queueName string, message any) error
}

// EmailClient defines the interface for email operations used by the
// handlers.
type EmailClient interface {
	SendEmail(ctx context.Context, to []string, subject, body string) error
}
