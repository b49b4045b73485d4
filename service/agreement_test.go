package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"license-hub/storage/sqlstore"
	"license-hub/types"
)

type agreementFixture struct {
	svc      *AgreementService
	repo     *sqlstore.AgreementRepo
	analyzer *fakeAnalyzer
}

func newAgreementFixture(t *testing.T) *agreementFixture {
	t.Helper()
	repo := sqlstore.NewAgreementRepo(newTestDB(t))
	analyzer := &fakeAnalyzer{summary: "AI summary", diff: "AI diff"}
	return &agreementFixture{
		svc:      NewAgreementService(repo, &fakeExtractor{}, analyzer, nullLogger()),
		repo:     repo,
		analyzer: analyzer,
	}
}

func TestScanAgreement(t *testing.T) {
	f := newAgreementFixture(t)

	summary, err := f.svc.ScanAgreement(context.Background(), "lease.pdf", strings.NewReader("full agreement text"))
	require.NoError(t, err)
	assert.Equal(t, "AI summary", summary)
	assert.Equal(t, "full agreement text", f.analyzer.gotText)

	all, err := f.repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, all, "scanning never writes to storage")
}

func TestScanAgreement_Errors(t *testing.T) {
	f := newAgreementFixture(t)

	_, err := f.svc.ScanAgreement(context.Background(), "", nil)
	assert.True(t, errors.Is(err, ErrMissingFile))

	boom := errors.New("rate limited")
	f.analyzer.err = boom
	_, err = f.svc.ScanAgreement(context.Background(), "lease.pdf", strings.NewReader("text"))
	assert.True(t, errors.Is(err, boom))

	broken := errors.New("pdf: encrypted")
	svc := NewAgreementService(f.repo, &fakeExtractor{err: broken}, f.analyzer, nullLogger())
	_, err = svc.ScanAgreement(context.Background(), "lease.pdf", strings.NewReader("text"))
	assert.True(t, errors.Is(err, broken))
}

func TestSaveAgreement_IndefiniteHasNoEndDate(t *testing.T) {
	// GIVEN: an agreement titled "Store Lease" marked indefinite
	f := newAgreementFixture(t)
	ctx := context.Background()

	// WHEN: the user confirms the draft
	saved, err := f.svc.SaveAgreement(ctx, "alice", types.AgreementDraft{
		Title:      "Store Lease",
		Country:    "FR",
		Brand:      "Acme",
		Licenser:   "Acme Holdings",
		Summary:    "edited summary",
		StartDate:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC),
		Indefinite: true,
	})
	require.NoError(t, err)

	// THEN: the stored row is Active with no end date
	got, err := f.repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Store Lease", got.Title)
	assert.Equal(t, types.StatusActive, got.Status)
	assert.True(t, got.Indefinite)
	assert.Nil(t, got.EndDate)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2026-01-15", got.StartDate.Format(types.DateLayout))
	assert.Equal(t, "edited summary", got.Summary)
	assert.Equal(t, "alice", got.Owner)
	assert.Nil(t, got.ParentID)
}

func TestSaveAgreement_FixedTermKeepsEndDate(t *testing.T) {
	f := newAgreementFixture(t)
	ctx := context.Background()

	saved, err := f.svc.SaveAgreement(ctx, "alice", types.AgreementDraft{
		Title:     "Music rights",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2028, 12, 31, 18, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	got, err := f.repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, got.Indefinite)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2028-12-31", got.EndDate.Format(types.DateLayout))
}

func TestAmendmentFlow(t *testing.T) {
	// GIVEN: agreement id=1 exists
	f := newAgreementFixture(t)
	ctx := context.Background()
	base, err := f.svc.SaveAgreement(ctx, "alice", types.AgreementDraft{
		Title:     "Store Lease",
		Summary:   "stored base summary",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, uint(1), base.ID)

	// WHEN: an amendment is scanned and saved against it
	diff, err := f.svc.ScanAmendment(ctx, base.ID, "amendment.docx", strings.NewReader("amendment text"))
	require.NoError(t, err)
	assert.Equal(t, "AI diff", diff)
	assert.Equal(t, "stored base summary", f.analyzer.gotOriginal, "compares against the stored summary")
	assert.Equal(t, "amendment text", f.analyzer.gotAmendment)

	saved, err := f.svc.SaveAmendment(ctx, "bob", types.AmendmentDraft{BaseID: 1, Diff: "edited diff"})
	require.NoError(t, err)

	// THEN: the new row points at id=1 and is titled "Amendment"
	got, err := f.repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, uint(1), *got.ParentID)
	assert.Equal(t, "Amendment", got.Title)
	assert.Equal(t, types.StatusActive, got.Status)
	assert.Equal(t, "edited diff", got.Summary)
	assert.Equal(t, "bob", got.Owner)
	assert.Nil(t, got.EndDate)
	assert.True(t, got.IsAmendment())
}

func TestAmendment_RequiresExistingNonObsoleteBase(t *testing.T) {
	f := newAgreementFixture(t)
	ctx := context.Background()

	_, err := f.svc.SaveAmendment(ctx, "alice", types.AmendmentDraft{BaseID: 42, Diff: "x"})
	assert.True(t, errors.Is(err, ErrBaseNotFound))

	_, err = f.svc.ScanAmendment(ctx, 42, "a.pdf", strings.NewReader("x"))
	assert.True(t, errors.Is(err, ErrBaseNotFound))

	old := &sqlstore.Agreement{Title: "old", Status: types.StatusReplaced, Obsolete: true}
	require.NoError(t, f.repo.Create(ctx, old))

	_, err = f.svc.SaveAmendment(ctx, "alice", types.AmendmentDraft{BaseID: old.ID, Diff: "x"})
	assert.True(t, errors.Is(err, ErrBaseNotFound))

	all, err := f.repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1, "no amendment row was written")
}

func TestUpdateStatus(t *testing.T) {
	f := newAgreementFixture(t)
	ctx := context.Background()
	saved, err := f.svc.SaveAgreement(ctx, "alice", types.AgreementDraft{Title: "Store Lease", Indefinite: true})
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(ctx, saved.ID, "Replaced"))
	got, err := f.svc.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusReplaced, got.Status)
	assert.False(t, got.Obsolete, "status changes never touch obsolete")

	err = f.svc.UpdateStatus(ctx, saved.ID, "Archived")
	assert.True(t, errors.Is(err, types.ErrInvalidStatus))

	err = f.svc.UpdateStatus(ctx, 404, "Expired")
	assert.True(t, errors.Is(err, sqlstore.ErrNotFound))
}
