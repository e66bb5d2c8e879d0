package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/store"
)

func newTestContactService(t *testing.T) (*ContactService, *store.Client) {
	t.Helper()
	client := store.NewClient(store.NewSeededTableStore(), store.WithLatency(store.NoLatency()))
	return NewContactService(client, nil, nil), client
}

func TestListContactsExcludesDeleted(t *testing.T) {
	svc, _ := newTestContactService(t)
	ctx := context.Background()

	contacts, err := svc.ListContacts(ctx, "org_lumen")
	require.NoError(t, err)
	require.Len(t, contacts, 3)

	require.NoError(t, svc.DeleteContact(ctx, contacts[0].ContactID))

	after, err := svc.ListContacts(ctx, "org_lumen")
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestGetContactByEmail(t *testing.T) {
	svc, _ := newTestContactService(t)
	ctx := context.Background()

	contact, err := svc.GetContactByEmail(ctx, "org_lumen", "maya@harborpine.com")
	require.NoError(t, err)
	assert.Equal(t, "Maya", contact.FirstName)
	assert.Equal(t, domain.ContactStatusCustomer, contact.Status)

	_, err = svc.GetContactByEmail(ctx, "org_lumen", "ghost@nowhere.io")
	var notFound *domain.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestUpsertContactCreates(t *testing.T) {
	svc, client := newTestContactService(t)
	ctx := context.Background()

	created, err := svc.UpsertContact(ctx, &domain.Contact{
		OrganizationID: "org_lumen",
		Email:          "noor@fresh.io",
		FirstName:      "Noor",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ContactID)
	assert.Equal(t, domain.ContactStatusLead, created.Status)

	row, err := client.Table("contacts").Select().Eq("email", "noor@fresh.io").Single(ctx)
	require.NoError(t, err)
	require.NotNil(t, row)
}

func TestUpsertContactUpdatesExisting(t *testing.T) {
	svc, _ := newTestContactService(t)
	ctx := context.Background()

	updated, err := svc.UpsertContact(ctx, &domain.Contact{
		OrganizationID: "org_lumen",
		Email:          "maya@harborpine.com",
		Phone:          "+1 555 0199",
	})
	require.NoError(t, err)

	assert.Equal(t, "CNT-01J4QD8E2M00000000001A2B3C", updated.ContactID)
	assert.Equal(t, "+1 555 0199", updated.Phone)
	assert.Equal(t, "Maya", updated.FirstName)

	// no second row was created
	contacts, err := svc.ListContacts(ctx, "org_lumen")
	require.NoError(t, err)
	assert.Len(t, contacts, 3)
}

func TestUpsertContactRejectsInvalidEmail(t *testing.T) {
	svc, _ := newTestContactService(t)

	_, err := svc.UpsertContact(context.Background(), &domain.Contact{
		OrganizationID: "org_lumen",
		Email:          "not-an-email",
	})
	require.Error(t, err)

	_, err = svc.UpsertContact(context.Background(), &domain.Contact{OrganizationID: "org_lumen"})
	require.Error(t, err)
}

func TestDeleteContactNotFound(t *testing.T) {
	svc, _ := newTestContactService(t)

	err := svc.DeleteContact(context.Background(), "CNT-00000000000000000000000000")
	var notFound *domain.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestAddNoteAndListActivities(t *testing.T) {
	svc, _ := newTestContactService(t)
	ctx := context.Background()
	const contactID = "CNT-01J4QD8E2M00000000001A2B3C"

	before, err := svc.ListActivities(ctx, contactID)
	require.NoError(t, err)

	note, err := svc.AddNote(ctx, contactID, "Kickoff recap", "Agreed on scope and budget.")
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityTypeNote, note.Type)

	after, err := svc.ListActivities(ctx, contactID)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	// newest first: activity ids sort chronologically
	assert.Equal(t, note.ActivityID, after[0].ActivityID)
}

func TestAddNoteUnknownContact(t *testing.T) {
	svc, _ := newTestContactService(t)

	_, err := svc.AddNote(context.Background(), "CNT-00000000000000000000000000", "x", "y")
	var notFound *domain.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}
