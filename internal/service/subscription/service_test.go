package subscription

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uchiyama0208/nightbase-sub009/internal/domain/subscription"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/xendit"
)

type stubInvoiceRepo struct {
	subscription.InvoiceRepository
	xenditIDs []string
	err       error
}

func (s *stubInvoiceRepo) ExpireStale(ctx context.Context, olderThan time.Time) ([]string, error) {
	return s.xenditIDs, s.err
}

type recordingGateway struct {
	expired   []string
	expireErr error
}

func (g *recordingGateway) CreateInvoice(req xendit.CreateInvoiceRequest) (*xendit.InvoiceResponse, error) {
	return nil, errors.New("unexpected CreateInvoice call")
}

func (g *recordingGateway) ExpireInvoice(invoiceID string) (*xendit.InvoiceResponse, error) {
	g.expired = append(g.expired, invoiceID)
	if g.expireErr != nil {
		return nil, g.expireErr
	}
	return &xendit.InvoiceResponse{ID: invoiceID, Status: xendit.InvoiceStatusExpired}, nil
}

func newSweepService(repo subscription.InvoiceRepository, gateway invoiceGateway) *subscriptionService {
	return &subscriptionService{
		invoiceRepo:  repo,
		xenditClient: gateway,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestCleanupStaleInvoicesExpiresHostedInvoices(t *testing.T) {
	gateway := &recordingGateway{}
	svc := newSweepService(&stubInvoiceRepo{xenditIDs: []string{"xnd_1", "xnd_2"}}, gateway)

	err := svc.CleanupStaleInvoices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"xnd_1", "xnd_2"}, gateway.expired)
}

func TestCleanupStaleInvoicesContinuesPastGatewayErrors(t *testing.T) {
	gateway := &recordingGateway{expireErr: errors.New("xendit down")}
	svc := newSweepService(&stubInvoiceRepo{xenditIDs: []string{"xnd_1", "xnd_2"}}, gateway)

	err := svc.CleanupStaleInvoices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"xnd_1", "xnd_2"}, gateway.expired)
}

func TestCleanupStaleInvoicesSkipsGatewayWhenNothingExpired(t *testing.T) {
	gateway := &recordingGateway{}
	svc := newSweepService(&stubInvoiceRepo{}, gateway)

	err := svc.CleanupStaleInvoices(context.Background())

	require.NoError(t, err)
	assert.Empty(t, gateway.expired)
}

func TestCleanupStaleInvoicesReturnsRepositoryError(t *testing.T) {
	gateway := &recordingGateway{}
	svc := newSweepService(&stubInvoiceRepo{err: errors.New("db down")}, gateway)

	err := svc.CleanupStaleInvoices(context.Background())

	require.Error(t, err)
	assert.Empty(t, gateway.expired)
}
