package notify

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Dan9191/budget-hub/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type fakeStore struct {
	hubs  map[string]*models.Hub
	notes []models.Notification
}

func (f *fakeStore) FindHub(_ context.Context, id string) (*models.Hub, error) {
	h, ok := f.hubs[id]
	if !ok {
		return nil, errors.New("hub not found")
	}
	return h, nil
}

func (f *fakeStore) CreateNotification(_ context.Context, n *models.Notification) error {
	f.notes = append(f.notes, *n)
	return nil
}

type sentMail struct{ to, subject, body string }

type fakeMailer struct{ sent []sentMail }

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		pref string
		want language.Base
	}{
		{"", base(language.English)},
		{"en-US", base(language.English)},
		{"es", base(language.Spanish)},
		{"fr-CA", base(language.French)},
		{"de-AT,en;q=0.5", base(language.German)},
		{"ja", base(language.English)},
		{"not a tag", base(language.English)},
	}
	for _, tt := range tests {
		t.Run(tt.pref, func(t *testing.T) {
			assert.Equal(t, tt.want, base(Language(tt.pref)))
		})
	}
}

func TestTemplateFailed_NotifiesInAppAndByEmail(t *testing.T) {
	store := &fakeStore{hubs: map[string]*models.Hub{"h1": {ID: "h1", OwnerEmail: "owner@example.com"}}}
	mailer := &fakeMailer{}
	n := NewNotifier(store, mailer, quietLogger())

	tpl := models.RecurringTemplate{ID: "t1", HubID: "h1", Description: "Rent", UserLanguage: "es-ES"}
	require.NoError(t, n.TemplateFailed(context.Background(), tpl, 3, errors.New("disk full")))

	require.Len(t, store.notes, 1)
	assert.Equal(t, KindTemplateFailed, store.notes[0].Kind)
	assert.Equal(t, "Transacción recurrente fallida", store.notes[0].Title)
	assert.Contains(t, store.notes[0].Body, `"Rent"`)
	assert.Contains(t, store.notes[0].Body, "disk full")

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "owner@example.com", mailer.sent[0].to)
	assert.Equal(t, store.notes[0].Title, mailer.sent[0].subject)
}

func TestTemplateFailed_WithoutMailer(t *testing.T) {
	store := &fakeStore{}
	n := NewNotifier(store, nil, quietLogger())

	tpl := models.RecurringTemplate{ID: "t1", HubID: "missing", Description: "Gym"}
	require.NoError(t, n.TemplateFailed(context.Background(), tpl, 3, errors.New("boom")))
	require.Len(t, store.notes, 1)
	assert.Equal(t, "Recurring transaction failed", store.notes[0].Title)
	assert.Contains(t, store.notes[0].Body, "marked as failed")
	assert.NotContains(t, store.notes[0].Body, "paused")
}

func TestTemplateFailed_HubWithoutEmail(t *testing.T) {
	store := &fakeStore{hubs: map[string]*models.Hub{"h1": {ID: "h1"}}}
	mailer := &fakeMailer{}
	n := NewNotifier(store, mailer, quietLogger())

	tpl := models.RecurringTemplate{ID: "t1", HubID: "h1", Description: "Gym"}
	require.NoError(t, n.TemplateFailed(context.Background(), tpl, 3, errors.New("boom")))
	assert.Empty(t, mailer.sent)
}
