package integration_tests

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/opsdeskhq/opsdesk/db/models"
	"github.com/opsdeskhq/opsdesk/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InvoiceLockTestSuite struct {
	TestSuite
	service  *service.OpsdeskService
	clientA  *models.Client
	projectA *models.Project
	clientB  *models.Client
	projectB *models.Project
}

func (suite *InvoiceLockTestSuite) SetupSuite() {
	svc, err := OpsdeskTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc

	rateA := 100.0
	suite.clientA, err = createTestClient(svc, "alice", nil)
	if err != nil {
		log.Fatalf("Error creating test client: %v", err)
	}
	suite.projectA, err = createTestProject(svc, suite.clientA, "engine", &rateA)
	if err != nil {
		log.Fatalf("Error creating test project: %v", err)
	}
	suite.clientB, err = createTestClient(svc, "bob", nil)
	if err != nil {
		log.Fatalf("Error creating test client: %v", err)
	}
	suite.projectB, err = createTestProject(svc, suite.clientB, "website", nil)
	if err != nil {
		log.Fatalf("Error creating test project: %v", err)
	}
}

func (suite *InvoiceLockTestSuite) TearDownTest() {
	clearTable(suite.service, "time_entries")
	clearTable(suite.service, "invoices")
}

func (suite *InvoiceLockTestSuite) TearDownSuite() {
	clearTable(suite.service, "projects")
	clearTable(suite.service, "clients")
}

func (suite *InvoiceLockTestSuite) TestPublishLocksEveryEntry() {
	ctx := context.Background()
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	first, err := createFinishedEntry(suite.service, suite.projectA, suite.clientA, start, 3600)
	assert.NoError(suite.T(), err)
	second, err := createFinishedEntry(suite.service, suite.projectA, suite.clientA, start.AddDate(0, 0, 1), 1800)
	assert.NoError(suite.T(), err)

	invoice, err := suite.service.CreateInvoiceForEntries(ctx, []int64{first.ID, second.ID}, start.AddDate(0, 0, 7))
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), invoice.Draft)

	published, err := suite.service.PublishInvoice(ctx, invoice.ID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), published.Draft)

	entries, err := suite.service.TimeEntriesByIds(ctx, []int64{first.ID, second.ID})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), entries, 2)
	for _, entry := range entries {
		assert.Equal(suite.T(), invoice.ID, entry.InvoiceID)
		assert.False(suite.T(), entry.Billable)
	}

	// locked entries can never be selected for another invoice
	_, err = suite.service.CreateInvoiceForEntries(ctx, []int64{first.ID}, start.AddDate(0, 0, 8))
	assert.ErrorIs(suite.T(), err, service.ErrEntryNotBillable)
}

func (suite *InvoiceLockTestSuite) TestPublishAgainIsNoOp() {
	ctx := context.Background()
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	entry, err := createFinishedEntry(suite.service, suite.projectA, suite.clientA, start, 3600)
	assert.NoError(suite.T(), err)
	invoice, err := suite.service.CreateInvoiceForEntries(ctx, []int64{entry.ID}, start)
	assert.NoError(suite.T(), err)

	_, err = suite.service.PublishInvoice(ctx, invoice.ID)
	assert.NoError(suite.T(), err)
	again, err := suite.service.PublishInvoice(ctx, invoice.ID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), again.Draft)
}

func (suite *InvoiceLockTestSuite) TestMergeRejectsOtherClientsEntries() {
	ctx := context.Background()
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	aliceEntry, err := createFinishedEntry(suite.service, suite.projectA, suite.clientA, start, 3600)
	assert.NoError(suite.T(), err)
	invoice, err := suite.service.CreateInvoiceForEntries(ctx, []int64{aliceEntry.ID}, start)
	assert.NoError(suite.T(), err)

	bobEntry, err := createFinishedEntry(suite.service, suite.projectB, suite.clientB, start, 1800)
	assert.NoError(suite.T(), err)

	_, err = suite.service.AddEntriesToInvoice(ctx, invoice.ID, []int64{bobEntry.ID}, start)
	assert.ErrorIs(suite.T(), err, service.ErrMixedClientSelection)

	// the rejected entry stays unstamped
	reloaded, err := suite.service.FindTimeEntry(ctx, bobEntry.ID)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), reloaded.InvoiceID)

	// the invoice keeps its original composition
	unchanged, err := suite.service.FindInvoice(ctx, invoice.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []int64{aliceEntry.ID}, unchanged.TimeEntries)
	assert.Equal(suite.T(), int64(3600), unchanged.TimeEntriesSum)
}

func (suite *InvoiceLockTestSuite) TestMarkPaidRequiresPublishedInvoice() {
	ctx := context.Background()
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	entry, err := createFinishedEntry(suite.service, suite.projectA, suite.clientA, start, 3600)
	assert.NoError(suite.T(), err)
	invoice, err := suite.service.CreateInvoiceForEntries(ctx, []int64{entry.ID}, start)
	assert.NoError(suite.T(), err)

	_, err = suite.service.MarkInvoicePaid(ctx, invoice.ID, "bank_transfer", time.Now(), nil)
	assert.ErrorIs(suite.T(), err, service.ErrInvoiceDraft)

	_, err = suite.service.PublishInvoice(ctx, invoice.ID)
	assert.NoError(suite.T(), err)
	paid, err := suite.service.MarkInvoicePaid(ctx, invoice.ID, "bank_transfer", time.Now(), nil)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), paid.Paid)
}

func (suite *InvoiceLockTestSuite) TestSameDayInvoiceIdsGetSuffixed() {
	ctx := context.Background()
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	first, err := createFinishedEntry(suite.service, suite.projectA, suite.clientA, start, 3600)
	assert.NoError(suite.T(), err)
	second, err := createFinishedEntry(suite.service, suite.projectA, suite.clientA, start.Add(time.Hour), 1800)
	assert.NoError(suite.T(), err)

	invoiceOne, err := suite.service.CreateInvoiceForEntries(ctx, []int64{first.ID}, start)
	assert.NoError(suite.T(), err)
	invoiceTwo, err := suite.service.CreateInvoiceForEntries(ctx, []int64{second.ID}, start)
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), invoiceOne.ID+"-2", invoiceTwo.ID)
}

func TestInvoiceLockSuite(t *testing.T) {
	suite.Run(t, new(InvoiceLockTestSuite))
}
