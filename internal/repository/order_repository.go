package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	order, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return o, fmt.Errorf("q.GetOrder: %w", ErrNotFound)
			}
			return o, fmt.Errorf("q.GetOrder: %w", err)
		}

		dbOrderItems, err := q.GetOrderItems(ctx, orderID)
		if err != nil {
			return o, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		domainOrder, err := mapDBOrderToDomain(dbOrder, dbOrderItems)
		if err != nil {
			return o, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}

		return domainOrder, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error) {
	if order.OwnerID == "" {
		return uuid.Nil, errors.New("ownerID is empty")
	}

	orderID, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (uuid.UUID, error) {
		orderID, err := q.InsertOrder(ctx, db.InsertOrderParams{
			OwnerID:         order.OwnerID,
			Status:          string(lo.CoalesceOrEmpty(order.Status, domain.OrderStatusPlaced)),
			PaymentStatus:   string(lo.CoalesceOrEmpty(order.PaymentStatus, domain.PaymentStatusPaid)),
			ShippingAddress: order.ShippingAddress,
			TotalAmount:     order.Total.Amount,
			TotalCurrency:   order.Total.Currency.String(),
			CustomerEmail:   order.CustomerEmail,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertOrder: %w", err)
		}

		for _, item := range order.Items {
			if err := insertOrderItem(ctx, q, orderID, item); err != nil {
				return uuid.Nil, fmt.Errorf("insertOrderItem: %w", err)
			}
		}

		return orderID, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("withTx: %w", err)
	}

	return orderID, nil
}

func (r *orderRepository) InsertOrderItem(ctx context.Context, orderID uuid.UUID, item domain.OrderItem) error {
	if err := insertOrderItem(ctx, r.q, orderID, item); err != nil {
		return fmt.Errorf("insertOrderItem: %w", err)
	}

	return nil
}

func insertOrderItem(ctx context.Context, q *db.Queries, orderID uuid.UUID, item domain.OrderItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity[%d] must be positive", item.Quantity)
	}

	quantity, err := toInt32("quantity", item.Quantity)
	if err != nil {
		return err
	}

	arg := db.InsertOrderItemParams{
		OrderID:         orderID,
		ProductID:       item.ProductID,
		Quantity:        quantity,
		UnitPriceAmount: item.UnitPrice.Amount,
		PriceCurrency:   item.UnitPrice.Currency.String(),
	}

	if err := q.InsertOrderItem(ctx, arg); err != nil {
		return fmt.Errorf("q.InsertOrderItem: %w", err)
	}

	return nil
}

func (r *orderRepository) UpdateOrderTotal(ctx context.Context, orderID uuid.UUID, total domain.Money) error {
	cmdTag, err := r.q.UpdateOrderTotal(ctx, db.UpdateOrderTotalParams{
		ID:            orderID,
		TotalAmount:   total.Amount,
		TotalCurrency: total.Currency.String(),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrderTotal: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateOrderTotal: %w", ErrNotFound)
	}

	return nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	if _, err := domain.ToOrderStatus(string(status)); err != nil {
		return fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
	}

	cmdTag, err := r.q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
		ID:     orderID,
		Status: string(status),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrderStatus: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateOrderStatus: %w", ErrNotFound)
	}

	return nil
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.SearchOrdersParams {
	statuses := lo.Map(filter.Statuses, func(status domain.OrderStatus, _ int) string {
		return string(status)
	})

	var createdAfter, createdBefore *time.Time

	if filter.CreatedAt != nil {
		createdAfter = filter.CreatedAt.After
		createdBefore = filter.CreatedAt.Before
	}

	return db.SearchOrdersParams{
		Ids:           nilSliceIfEmpty(filter.IDs),
		OwnerIds:      nilSliceIfEmpty(filter.OwnerIDs),
		Statuses:      nilSliceIfEmpty(statuses),
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
	}
}

// SearchOrders returns matching orders newest first.
func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	dbOrders, err := r.q.SearchOrders(ctx, mapDomainOrderFilterToDBFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("q.SearchOrders: %w", err)
	}

	// rows arrive grouped by order, positions keeps the query order
	var orders []domain.Order
	positions := make(map[uuid.UUID]int)

	for _, row := range dbOrders {
		pos, exists := positions[row.ID]
		if !exists {
			order, err := mapSearchOrdersRowToDomainOrder(row)
			if err != nil {
				return nil, fmt.Errorf("mapSearchOrdersRowToDomainOrder: %w", err)
			}

			pos = len(orders)
			positions[row.ID] = pos
			orders = append(orders, order)
		}

		item, err := mapSearchOrdersRowToDomainOrderItem(row)
		if err != nil {
			return nil, fmt.Errorf("mapSearchOrdersRowToDomainOrderItem: %w", err)
		}

		orders[pos].Items = append(orders[pos].Items, item)
	}

	return orders, nil
}

// CountOrders counts the orders of an owner, including orders without items.
func (r *orderRepository) CountOrders(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, errors.New("ownerID is empty")
	}

	count, err := r.q.CountOrders(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("q.CountOrders: %w", err)
	}

	return count, nil
}

func mapGetOrderItemsRowToDomain(row db.GetOrderItemsRow) (domain.OrderItem, error) {
	unitPrice, err := mapMoneyToDomain(row.UnitPriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("mapMoneyToDomain: %w", err)
	}

	return domain.OrderItem{
		ProductID: row.ProductID,
		Quantity:  int(row.Quantity),
		UnitPrice: unitPrice,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapDBOrderToDomain(dbOrder db.Order, dbOrderItems []db.GetOrderItemsRow) (domain.Order, error) {
	var o domain.Order

	items := make([]domain.OrderItem, 0, len(dbOrderItems))
	for _, row := range dbOrderItems {
		item, err := mapGetOrderItemsRowToDomain(row)
		if err != nil {
			return o, fmt.Errorf("mapGetOrderItemsRowToDomain: %w", err)
		}
		items = append(items, item)
	}

	o, err := mapOrderHeaderToDomain(dbOrder)
	if err != nil {
		return o, fmt.Errorf("mapOrderHeaderToDomain: %w", err)
	}
	o.Items = items

	return o, nil
}

func mapOrderHeaderToDomain(dbOrder db.Order) (domain.Order, error) {
	var o domain.Order

	status, err := domain.ToOrderStatus(dbOrder.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", dbOrder.Status, err)
	}

	paymentStatus, err := domain.ToPaymentStatus(dbOrder.PaymentStatus)
	if err != nil {
		return o, fmt.Errorf("domain.ToPaymentStatus[%s]: %w", dbOrder.PaymentStatus, err)
	}

	total, err := mapMoneyToDomain(dbOrder.TotalAmount, dbOrder.TotalCurrency)
	if err != nil {
		return o, fmt.Errorf("mapMoneyToDomain: %w", err)
	}

	return domain.Order{
		ID:              dbOrder.ID,
		OwnerID:         dbOrder.OwnerID,
		Status:          status,
		PaymentStatus:   paymentStatus,
		ShippingAddress: dbOrder.ShippingAddress,
		CustomerEmail:   dbOrder.CustomerEmail,
		Total:           total,
		CreatedAt:       dbOrder.CreatedAt,
		UpdatedAt:       dbOrder.UpdatedAt,
	}, nil
}

func mapSearchOrdersRowToDomainOrder(row db.SearchOrdersRow) (domain.Order, error) {
	return mapOrderHeaderToDomain(db.Order{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		Status:          row.Status,
		PaymentStatus:   row.PaymentStatus,
		ShippingAddress: row.ShippingAddress,
		TotalAmount:     row.TotalAmount,
		TotalCurrency:   row.TotalCurrency,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		CustomerEmail:   row.CustomerEmail,
	})
}

func mapSearchOrdersRowToDomainOrderItem(row db.SearchOrdersRow) (domain.OrderItem, error) {
	unitPrice, err := mapMoneyToDomain(row.UnitPriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("mapMoneyToDomain: %w", err)
	}

	return domain.OrderItem{
		ProductID: row.ProductID,
		Quantity:  int(row.Quantity),
		UnitPrice: unitPrice,
		CreatedAt: row.ItemCreatedAt,
	}, nil
}
