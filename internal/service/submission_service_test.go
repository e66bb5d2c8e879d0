package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/store"
)

const (
	contactUsFormID    = "FRM-01J4QD8E2M0000000000F0R1M2"
	projectBriefFormID = "FRM-01J4QD8E2M0000000000F3R4M5"
)

func newTestPipeline(t *testing.T, st *store.TableStore) (*SubmissionService, *MockWebhookNotifier, *MockMailer, *store.Client) {
	t.Helper()
	client := store.NewClient(st, store.WithLatency(store.NoLatency()))
	webhooks := new(MockWebhookNotifier)
	mailer := new(MockMailer)
	svc := NewSubmissionService(SubmissionServiceConfig{
		Client:   client,
		Webhooks: webhooks,
		Mailer:   mailer,
	})
	return svc, webhooks, mailer, client
}

func tableLen(t *testing.T, client *store.Client, table string) int {
	t.Helper()
	rows, err := client.Table(table).Select().All(context.Background())
	require.NoError(t, err)
	return len(rows)
}

func TestProcessSubmissionCreatesLead(t *testing.T) {
	svc, _, mailer, client := newTestPipeline(t, store.NewSeededTableStore())
	mailer.On("SendFormNotification", "hello@lumen.agency", "Contact Us", mock.Anything).Return(nil)

	contactsBefore := tableLen(t, client, "contacts")

	result, err := svc.ProcessSubmission(context.Background(), contactUsFormID, map[string]any{
		"email":      "jordan@newclient.io",
		"first_name": "Jordan",
		"last_name":  "Lee",
		"message":    "We need a rebrand.",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Success)
	assert.True(t, result.Created)
	assert.NotEmpty(t, result.ContactID)
	assert.NotEmpty(t, result.SubmissionID)
	assert.Equal(t, "/thanks", result.RedirectURL)

	// exactly one new contact, carrying the lead defaults
	assert.Equal(t, contactsBefore+1, tableLen(t, client, "contacts"))
	row, err := client.Table("contacts").Select().Eq("email", "jordan@newclient.io").Single(context.Background())
	require.NoError(t, err)
	require.NotNil(t, row)
	contact := domain.ContactFromRow(row)
	assert.Equal(t, result.ContactID, contact.ContactID)
	assert.Equal(t, domain.ContactStatusLead, contact.Status)
	assert.Equal(t, domain.DefaultLeadScore, contact.LeadScore)
	assert.Equal(t, []string{"form-lead"}, contact.Tags)
	assert.Equal(t, "Jordan", contact.FirstName)
	assert.Equal(t, "Lee", contact.LastName)
	assert.True(t, contact.EmailOptIn)

	// one submission, one CMS row, one activity
	subRow, err := client.Table("form_submissions").Select().Eq("submission_id", result.SubmissionID).Single(context.Background())
	require.NoError(t, err)
	require.NotNil(t, subRow)
	assert.Equal(t, result.ContactID, subRow["contact_id"])

	assert.Equal(t, 1, tableLen(t, client, "cms_contact_us"))
	cmsRow, err := client.Table("cms_contact_us").Select().Eq("submission_id", result.SubmissionID).Single(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cmsRow)
	assert.Equal(t, "We need a rebrand.", cmsRow["message"])

	actRow, err := client.Table("activities").Select().
		Eq("contact_id", result.ContactID).
		Eq("type", "form").
		Single(context.Background())
	require.NoError(t, err)
	require.NotNil(t, actRow)
	activity := domain.ActivityFromRow(actRow)
	assert.Equal(t, "Submitted form: Contact Us", activity.Title)
	assert.Equal(t, result.SubmissionID, activity.Metadata["submission_id"])

	// response counter bumped
	formRow, err := client.Table("forms").Select().Eq("form_id", contactUsFormID).Single(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, domain.FormFromRow(formRow).ResponseCount)

	mailer.AssertExpectations(t)
}

func TestProcessSubmissionDedupsOnSecondSubmit(t *testing.T) {
	svc, _, mailer, client := newTestPipeline(t, store.NewSeededTableStore())
	mailer.On("SendFormNotification", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	ctx := context.Background()
	first, err := svc.ProcessSubmission(ctx, contactUsFormID, map[string]any{
		"email": "sam@dedup.io", "first_name": "Sam", "message": "hi",
	})
	require.NoError(t, err)
	assert.True(t, first.Created)

	contactsAfterFirst := tableLen(t, client, "contacts")

	second, err := svc.ProcessSubmission(ctx, contactUsFormID, map[string]any{
		"email": "sam@dedup.io", "first_name": "Samuel", "message": "hi again",
	})
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.ContactID, second.ContactID)
	assert.NotEqual(t, first.SubmissionID, second.SubmissionID)
	assert.Equal(t, contactsAfterFirst, tableLen(t, client, "contacts"))

	// update_contact is on for this form: mapped values were merged
	row, err := client.Table("contacts").Select().Eq("contact_id", first.ContactID).Single(ctx)
	require.NoError(t, err)
	contact := domain.ContactFromRow(row)
	assert.Equal(t, "Samuel", contact.FirstName)
	assert.NotNil(t, contact.LastContactedAt)
}

func TestProcessSubmissionMatchesSeededContact(t *testing.T) {
	svc, webhooks, _, client := newTestPipeline(t, store.NewSeededTableStore())
	webhooks.On("NotifyFormSubmission", mock.Anything, "https://hooks.lumen.agency/project-brief", mock.Anything).Return(nil)

	contactsBefore := tableLen(t, client, "contacts")

	// maya@harborpine.com exists in the seed; Project Brief has update_contact off
	result, err := svc.ProcessSubmission(context.Background(), projectBriefFormID, map[string]any{
		"email": "maya@harborpine.com", "phone": "+1 555 0100", "budget": "50k+",
	})
	require.NoError(t, err)

	assert.False(t, result.Created)
	assert.Equal(t, "CNT-01J4QD8E2M00000000001A2B3C", result.ContactID)
	assert.Equal(t, contactsBefore, tableLen(t, client, "contacts"))

	// update_contact=false: existing row untouched
	row, err := client.Table("contacts").Select().Eq("contact_id", result.ContactID).Single(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "+1 555 0100", domain.ContactFromRow(row).Phone)

	webhooks.AssertExpectations(t)
}

func TestProcessSubmissionFormNotFound(t *testing.T) {
	svc, _, _, client := newTestPipeline(t, store.NewSeededTableStore())

	_, err := svc.ProcessSubmission(context.Background(), "FRM-00000000000000000000000000", map[string]any{"email": "x@y.io"})

	var notFound *domain.ErrFormNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Zero(t, tableLen(t, client, "form_submissions"))
}

func TestProcessSubmissionNoIdentifierFieldWritesNothing(t *testing.T) {
	st := store.NewTableStore()
	svc, _, _, client := newTestPipeline(t, st)

	_, err := client.Table("forms").Insert(context.Background(), store.Row{
		"form_id":         "FRM-01J4QD8E2M0000000000BADBAD",
		"organization_id": "org_lumen",
		"name":            "Broken",
		"slug":            "broken",
		"fields": []any{
			map[string]any{"name": "message", "type": "textarea"},
		},
		"settings":       map[string]any{"create_contact": true},
		"response_count": 0,
	})
	require.NoError(t, err)

	_, err = svc.ProcessSubmission(context.Background(), "FRM-01J4QD8E2M0000000000BADBAD", map[string]any{"message": "hi"})

	var noID *domain.ErrNoIdentifierField
	require.ErrorAs(t, err, &noID)
	assert.Zero(t, tableLen(t, client, "contacts"))
	assert.Zero(t, tableLen(t, client, "form_submissions"))
	assert.Zero(t, tableLen(t, client, "cms_broken"))
}

func TestProcessSubmissionAmbiguousIdentifier(t *testing.T) {
	st := store.NewTableStore()
	svc, _, _, client := newTestPipeline(t, st)

	_, err := client.Table("forms").Insert(context.Background(), store.Row{
		"form_id": "FRM-01J4QD8E2M0000000000AMB1G0",
		"name":    "Two ids",
		"slug":    "two_ids",
		"fields": []any{
			map[string]any{"name": "email", "type": "email", "map_to_contact": "email", "is_identifier": true},
			map[string]any{"name": "phone", "type": "phone", "map_to_contact": "phone", "is_identifier": true},
		},
		"settings": map[string]any{"create_contact": true},
	})
	require.NoError(t, err)

	_, err = svc.ProcessSubmission(context.Background(), "FRM-01J4QD8E2M0000000000AMB1G0", map[string]any{"email": "x@y.io"})

	var ambiguous *domain.ErrAmbiguousIdentifier
	require.ErrorAs(t, err, &ambiguous)
	assert.Len(t, ambiguous.Fields, 2)
}

func TestProcessSubmissionMissingIdentifierValue(t *testing.T) {
	svc, _, _, client := newTestPipeline(t, store.NewSeededTableStore())

	for _, values := range []map[string]any{
		{"message": "no email at all"},
		{"email": "", "message": "empty"},
		{"email": "   ", "message": "whitespace"},
		{"email": nil, "message": "nil"},
	} {
		_, err := svc.ProcessSubmission(context.Background(), contactUsFormID, values)
		var missing *domain.ErrMissingIdentifierValue
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "email", missing.Field)
	}
	assert.Zero(t, tableLen(t, client, "form_submissions"))
}

func TestProcessSubmissionDuplicateContacts(t *testing.T) {
	st := store.NewSeededTableStore()
	svc, _, _, client := newTestPipeline(t, st)

	// corrupt the data: two contacts sharing one email
	for i := 0; i < 2; i++ {
		_, err := client.Table("contacts").Insert(context.Background(), store.Row{
			"contact_id": "CNT-01J4QD8E2M000000000DUP000" + string(rune('A'+i)),
			"email":      "twice@dup.io",
		})
		require.NoError(t, err)
	}

	_, err := svc.ProcessSubmission(context.Background(), contactUsFormID, map[string]any{
		"email": "twice@dup.io", "message": "hi",
	})

	var dup *domain.ErrDuplicateContacts
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Attribute)
	assert.Equal(t, "twice@dup.io", dup.Value)
}

func TestProcessSubmissionCreateContactDisabled(t *testing.T) {
	st := store.NewTableStore()
	svc, _, _, client := newTestPipeline(t, st)

	_, err := client.Table("forms").Insert(context.Background(), store.Row{
		"form_id": "FRM-01J4QD8E2M0000000000N0CRT0",
		"name":    "Newsletter",
		"slug":    "newsletter",
		"fields": []any{
			map[string]any{"name": "email", "type": "email", "map_to_contact": "email", "is_identifier": true},
		},
		"settings": map[string]any{"create_contact": false},
	})
	require.NoError(t, err)

	result, err := svc.ProcessSubmission(context.Background(), "FRM-01J4QD8E2M0000000000N0CRT0", map[string]any{
		"email": "anon@nowhere.io",
	})
	require.NoError(t, err)

	// submission and CMS row land, but no contact and no activity
	assert.Empty(t, result.ContactID)
	assert.False(t, result.Created)
	assert.Zero(t, tableLen(t, client, "contacts"))
	assert.Zero(t, tableLen(t, client, "activities"))
	assert.Equal(t, 1, tableLen(t, client, "form_submissions"))
	assert.Equal(t, 1, tableLen(t, client, "cms_newsletter"))
}

func TestProcessSubmissionPartialFailureKeepsEarlierWrites(t *testing.T) {
	svc, _, mailer, client := newTestPipeline(t, store.NewSeededTableStore())
	mailer.On("SendFormNotification", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	_, err := svc.ProcessSubmission(context.Background(), contactUsFormID, map[string]any{
		"email": "kept@partial.io", "message": "hi",
	})
	require.Error(t, err)

	// no rollback: the contact, submission, CMS row and activity stay...
	row, lookupErr := client.Table("contacts").Select().Eq("email", "kept@partial.io").Single(context.Background())
	require.NoError(t, lookupErr)
	assert.NotNil(t, row)
	assert.Equal(t, 1, tableLen(t, client, "form_submissions"))
	assert.Equal(t, 1, tableLen(t, client, "cms_contact_us"))

	// ...but the counter bump never ran
	formRow, lookupErr := client.Table("forms").Select().Eq("form_id", contactUsFormID).Single(context.Background())
	require.NoError(t, lookupErr)
	assert.Equal(t, 0, domain.FormFromRow(formRow).ResponseCount)
}

func TestProcessSubmissionConcurrentDuplicatesYieldOneContact(t *testing.T) {
	svc, _, mailer, client := newTestPipeline(t, store.NewSeededTableStore())
	mailer.On("SendFormNotification", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.ProcessSubmission(context.Background(), contactUsFormID, map[string]any{
				"email": "race@once.io", "message": "hi",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rows, err := client.Table("contacts").Select().Eq("email", "race@once.io").All(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, workers, tableLen(t, client, "cms_contact_us"))
}
