package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/template"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// MailSender is satisfied by *mail.Client.
type MailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

func NewSMTPClient(cfg SMTPConfig) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail.NewClient: %w", err)
	}

	return client, nil
}

type EmailNotifier struct {
	sender      MailSender
	engine      *template.Engine
	products    port.ProductRepository
	from        string
	companyName string
}

// NewEmailNotifier sends order confirmations and status updates, products is optional and only used for product names.
func NewEmailNotifier(sender MailSender, engine *template.Engine, products port.ProductRepository, from, companyName string) (*EmailNotifier, error) {
	if sender == nil {
		return nil, errors.New("mail sender is nil")
	}
	if engine == nil {
		return nil, errors.New("template engine is nil")
	}
	if from == "" {
		return nil, errors.New("from address is empty")
	}

	return &EmailNotifier{
		sender:      sender,
		engine:      engine,
		products:    products,
		from:        from,
		companyName: companyName,
	}, nil
}

func (n *EmailNotifier) Notify(ctx context.Context, shopper domain.Shopper, order domain.Order) error {
	if shopper.Email == "" {
		slog.Warn("Shopper has no email, skipping order confirmation",
			"method", "EmailNotifier.Notify",
			"order_id", order.ID)
		return nil
	}

	data := template.BuildOrderConfirmationData(order, shopper, n.productNames(ctx, order), n.companyName)

	text, html, err := n.engine.Render(template.OrderConfirmation, data)
	if err != nil {
		return fmt.Errorf("engine.Render: %w", err)
	}

	subject := fmt.Sprintf("Order Confirmation - Order #%s", order.ID)
	if err := n.send(ctx, shopper.Email, subject, text, html); err != nil {
		return err
	}

	slog.Info("Order confirmation sent",
		"method", "EmailNotifier.Notify",
		"order_id", order.ID,
		"to", shopper.Email)

	return nil
}

// NotifyStatusChange mails the order's customer, orders placed without an e-mail are skipped.
func (n *EmailNotifier) NotifyStatusChange(ctx context.Context, change domain.StatusChange) error {
	to := change.Order.CustomerEmail
	if to == "" {
		slog.Warn("Order has no customer email, skipping status update",
			"method", "EmailNotifier.NotifyStatusChange",
			"order_id", change.Order.ID)
		return nil
	}

	data := template.BuildOrderStatusUpdateData(change, n.companyName)

	text, html, err := n.engine.Render(template.OrderStatusUpdate, data)
	if err != nil {
		return fmt.Errorf("engine.Render: %w", err)
	}

	subject := fmt.Sprintf("Order Status Update - Order #%s is now %s", change.Order.ID, data.NewStatus)
	if err := n.send(ctx, to, subject, text, html); err != nil {
		return err
	}

	slog.Info("Order status update sent",
		"method", "EmailNotifier.NotifyStatusChange",
		"order_id", change.Order.ID,
		"status", change.To,
		"to", to)

	return nil
}

func (n *EmailNotifier) send(ctx context.Context, to, subject, text, html string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("msg.From: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("msg.To: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	if err := n.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sender.DialAndSendWithContext: %w", err)
	}

	return nil
}

func (n *EmailNotifier) productNames(ctx context.Context, order domain.Order) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(order.Items))
	if n.products == nil {
		return names
	}

	for _, item := range order.Items {
		product, err := n.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			slog.Warn("Product name lookup failed",
				"method", "EmailNotifier.productNames",
				"product_id", item.ProductID,
				"error", err)
			continue
		}
		names[item.ProductID] = product.Name
	}

	return names
}
