package notify_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/notify"
	"github.com/nikolayk812/storefront/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func TestEmailNotifier_Notify(t *testing.T) {
	engine, err := template.NewEngine()
	require.NoError(t, err)

	order := placedOrder()
	products := fakeProducts{names: map[uuid.UUID]string{order.Items[0].ProductID: "Coffee Mug"}}

	tests := []struct {
		name      string
		shopper   domain.Shopper
		sendErr   error
		wantSent  int
		wantError string
	}{
		{
			name:     "shopper with email: ok",
			shopper:  domain.Shopper{ID: order.OwnerID, Email: "jane@example.com"},
			wantSent: 1,
		},
		{
			name:     "shopper without email, skipped: ok",
			shopper:  domain.Shopper{ID: order.OwnerID},
			wantSent: 0,
		},
		{
			name:      "smtp failure: fail",
			shopper:   domain.Shopper{ID: order.OwnerID, Email: "jane@example.com"},
			sendErr:   errors.New("dial tcp: connection refused"),
			wantSent:  1,
			wantError: "sender.DialAndSendWithContext: dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeMailSender{err: tt.sendErr}

			notifier, err := notify.NewEmailNotifier(sender, engine, products, "shop@example.com", "Storefront")
			require.NoError(t, err)

			err = notifier.Notify(t.Context(), tt.shopper, order)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
			}

			require.Len(t, sender.msgs, tt.wantSent)
			if tt.wantSent == 0 {
				return
			}

			msg := sender.msgs[0]

			recipients, err := msg.GetRecipients()
			require.NoError(t, err)
			assert.Equal(t, []string{tt.shopper.Email}, recipients)
			assert.Equal(t, []string{"Order Confirmation - Order #" + order.ID.String()}, msg.GetGenHeader(mail.HeaderSubject))

			parts := msg.GetParts()
			require.Len(t, parts, 2)

			text, err := parts[0].GetContent()
			require.NoError(t, err)
			assert.Contains(t, string(text), "Coffee Mug  x2  @ 10.00  = 20.00")
			assert.Contains(t, string(text), order.Items[1].ProductID.String())

			html, err := parts[1].GetContent()
			require.NoError(t, err)
			assert.Contains(t, string(html), "<strong>Total: 25.00 USD</strong>")
		})
	}
}

func TestEmailNotifier_NotifyStatusChange(t *testing.T) {
	engine, err := template.NewEngine()
	require.NoError(t, err)

	t.Run("customer with email: ok", func(t *testing.T) {
		sender := &fakeMailSender{}

		notifier, err := notify.NewEmailNotifier(sender, engine, nil, "shop@example.com", "Storefront")
		require.NoError(t, err)

		change := statusChange()
		require.NoError(t, notifier.NotifyStatusChange(t.Context(), change))
		require.Len(t, sender.msgs, 1)

		msg := sender.msgs[0]

		recipients, err := msg.GetRecipients()
		require.NoError(t, err)
		assert.Equal(t, []string{"jane@example.com"}, recipients)
		assert.Equal(t,
			[]string{"Order Status Update - Order #" + change.Order.ID.String() + " is now Dispatched"},
			msg.GetGenHeader(mail.HeaderSubject))

		parts := msg.GetParts()
		require.Len(t, parts, 2)

		text, err := parts[0].GetContent()
		require.NoError(t, err)
		assert.Contains(t, string(text), "Your order has been dispatched and is on its way to you!")
		assert.Contains(t, string(text), "Note: Handed to courier")
	})

	t.Run("order without customer email, skipped: ok", func(t *testing.T) {
		sender := &fakeMailSender{}

		notifier, err := notify.NewEmailNotifier(sender, engine, nil, "shop@example.com", "Storefront")
		require.NoError(t, err)

		change := statusChange()
		change.Order.CustomerEmail = ""

		require.NoError(t, notifier.NotifyStatusChange(t.Context(), change))
		assert.Empty(t, sender.msgs)
	})
}

func TestNewEmailNotifier(t *testing.T) {
	engine, err := template.NewEngine()
	require.NoError(t, err)

	_, err = notify.NewEmailNotifier(nil, engine, nil, "shop@example.com", "")
	assert.EqualError(t, err, "mail sender is nil")

	_, err = notify.NewEmailNotifier(&fakeMailSender{}, nil, nil, "shop@example.com", "")
	assert.EqualError(t, err, "template engine is nil")

	_, err = notify.NewEmailNotifier(&fakeMailSender{}, engine, nil, "", "")
	assert.EqualError(t, err, "from address is empty")
}
