package service_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/repository"
	"github.com/meridiancg/backoffice-api/internal/service"
	"github.com/meridiancg/backoffice-api/internal/storage"
)

func newDocumentService(t *testing.T, f *fixtures) *service.DocumentService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return service.NewDocumentService(
		repository.NewDocumentRepository(f.db),
		repository.NewQuoteRepository(f.db),
		store,
		1, // 1 MB cap keeps the oversize test cheap
		zap.NewNop(),
	)
}

func (f *fixtures) createQuote(t *testing.T, ctx context.Context, opp *domain.Opportunity) *domain.Quote {
	t.Helper()
	quote := &domain.Quote{
		OpportunityID:  opp.ID,
		DisplayName:    "QT-Acme-Renewal-00000000-v1",
		Version:        1,
		Status:         domain.QuoteStatusDraft,
		ApprovalStatus: domain.QuoteApprovalPending,
		Currency:       "USD",
	}
	require.NoError(t, f.db.WithContext(ctx).Create(quote).Error)
	return quote
}

func TestDocumentUploadAndDownload(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newDocumentService(t, f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	quote := f.createQuote(t, ctx, opp)

	content := "signed statement of work"
	doc, err := svc.Upload(ctx, quote.ID, "sow.pdf", "application/pdf", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "sow.pdf", doc.FileName)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, int64(len(content)), doc.SizeBytes)

	meta, body, err := svc.Download(ctx, doc.ID)
	require.NoError(t, err)
	defer body.Close()
	assert.Equal(t, doc.ID, meta.ID)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	docs, err := svc.ListByQuote(ctx, quote.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)
}

func TestDocumentUploadDefaultsContentType(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newDocumentService(t, f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	quote := f.createQuote(t, ctx, opp)

	doc, err := svc.Upload(ctx, quote.ID, "notes.txt", "", strings.NewReader("hi"))
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", doc.ContentType)
}

func TestDocumentUploadValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newDocumentService(t, f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	quote := f.createQuote(t, ctx, opp)

	_, err := svc.Upload(ctx, uuid.New(), "sow.pdf", "application/pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Upload(ctx, quote.ID, "", "application/pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestDocumentUploadRejectsOversizeStream(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newDocumentService(t, f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	quote := f.createQuote(t, ctx, opp)

	// One byte over the 1 MB cap
	oversize := bytes.NewReader(make([]byte, 1024*1024+1))
	_, err := svc.Upload(ctx, quote.ID, "big.bin", "application/octet-stream", oversize)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	docs, err := svc.ListByQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentDeleteRemovesMetadataAndBlob(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newDocumentService(t, f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	quote := f.createQuote(t, ctx, opp)

	doc, err := svc.Upload(ctx, quote.ID, "sow.pdf", "application/pdf", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, doc.ID))

	_, _, err = svc.Download(ctx, doc.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = svc.Delete(ctx, doc.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
