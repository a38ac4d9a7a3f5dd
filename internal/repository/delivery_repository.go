package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type deliveryRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewDelivery(pool *pgxpool.Pool) port.DeliveryRepository {
	return &deliveryRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewDeliveryWithTx(tx pgx.Tx) port.DeliveryRepository {
	return &deliveryRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *deliveryRepository) CreateDelivery(ctx context.Context, orderID uuid.UUID, entry domain.DeliveryStatusLog) error {
	if _, err := domain.ToDeliveryStatus(string(entry.Status)); err != nil {
		return fmt.Errorf("domain.ToDeliveryStatus[%s]: %w", entry.Status, err)
	}

	if err := withTxNoResult(ctx, r.pool, r.q, func(q *db.Queries) error {
		if err := q.CreateDelivery(ctx, db.CreateDeliveryParams{
			OrderID: orderID,
			Status:  string(entry.Status),
		}); err != nil {
			return fmt.Errorf("q.CreateDelivery: %w", err)
		}

		if err := insertDeliveryStatusLog(ctx, q, orderID, entry); err != nil {
			return fmt.Errorf("insertDeliveryStatusLog: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

// GetDelivery returns the delivery with its status logs, newest first.
func (r *deliveryRepository) GetDelivery(ctx context.Context, orderID uuid.UUID) (domain.Delivery, error) {
	var d domain.Delivery

	delivery, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Delivery, error) {
		dbDelivery, err := q.GetDelivery(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return d, fmt.Errorf("q.GetDelivery: %w", ErrNotFound)
			}
			return d, fmt.Errorf("q.GetDelivery: %w", err)
		}

		dbLogs, err := q.GetDeliveryStatusLogs(ctx, orderID)
		if err != nil {
			return d, fmt.Errorf("q.GetDeliveryStatusLogs: %w", err)
		}

		domainDelivery, err := mapDBDeliveryToDomain(dbDelivery, dbLogs)
		if err != nil {
			return d, fmt.Errorf("mapDBDeliveryToDomain: %w", err)
		}

		return domainDelivery, nil
	})
	if err != nil {
		return d, fmt.Errorf("withTx: %w", err)
	}

	return delivery, nil
}

// ListDeliveries reads the logs of all matching deliveries in one query.
func (r *deliveryRepository) ListDeliveries(ctx context.Context, filter domain.DeliveryFilter) ([]domain.Delivery, error) {
	deliveries, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) ([]domain.Delivery, error) {
		dbDeliveries, err := q.ListDeliveries(ctx, nilSliceIfEmpty(filter.OwnerIDs))
		if err != nil {
			return nil, fmt.Errorf("q.ListDeliveries: %w", err)
		}

		if len(dbDeliveries) == 0 {
			return nil, nil
		}

		orderIDs := lo.Map(dbDeliveries, func(d db.Delivery, _ int) uuid.UUID {
			return d.OrderID
		})

		dbLogs, err := q.GetDeliveryStatusLogsByOrders(ctx, orderIDs)
		if err != nil {
			return nil, fmt.Errorf("q.GetDeliveryStatusLogsByOrders: %w", err)
		}

		logsByOrder := lo.GroupBy(dbLogs, func(l db.DeliveryStatusLog) uuid.UUID {
			return l.OrderID
		})

		result := make([]domain.Delivery, 0, len(dbDeliveries))
		for _, dbDelivery := range dbDeliveries {
			d, err := mapDBDeliveryToDomain(dbDelivery, logsByOrder[dbDelivery.OrderID])
			if err != nil {
				return nil, fmt.Errorf("mapDBDeliveryToDomain: %w", err)
			}
			result = append(result, d)
		}

		return result, nil
	})
	if err != nil {
		return nil, fmt.Errorf("withTx: %w", err)
	}

	return deliveries, nil
}

func (r *deliveryRepository) UpdateDeliveryStatus(ctx context.Context, orderID uuid.UUID, entry domain.DeliveryStatusLog) (domain.DeliveryStatus, error) {
	if _, err := domain.ToDeliveryStatus(string(entry.Status)); err != nil {
		return "", fmt.Errorf("domain.ToDeliveryStatus[%s]: %w", entry.Status, err)
	}

	previous, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.DeliveryStatus, error) {
		// the row lock keeps the previous status stable until commit
		dbDelivery, err := q.LockDelivery(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", fmt.Errorf("q.LockDelivery: %w", ErrNotFound)
			}
			return "", fmt.Errorf("q.LockDelivery: %w", err)
		}

		previous, err := domain.ToDeliveryStatus(dbDelivery.Status)
		if err != nil {
			return "", fmt.Errorf("domain.ToDeliveryStatus[%s]: %w", dbDelivery.Status, err)
		}

		if entry.Notes == "" {
			entry.Notes = domain.StatusNotes(previous, entry.Status)
		}

		cmdTag, err := q.UpdateDeliveryStatus(ctx, db.UpdateDeliveryStatusParams{
			OrderID: orderID,
			Status:  string(entry.Status),
		})
		if err != nil {
			return "", fmt.Errorf("q.UpdateDeliveryStatus: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return "", fmt.Errorf("q.UpdateDeliveryStatus: %w", ErrNotFound)
		}

		if err := insertDeliveryStatusLog(ctx, q, orderID, entry); err != nil {
			return "", fmt.Errorf("insertDeliveryStatusLog: %w", err)
		}

		cmdTag, err = q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
			ID:     orderID,
			Status: string(entry.Status.OrderStatus()),
		})
		if err != nil {
			return "", fmt.Errorf("q.UpdateOrderStatus: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return "", fmt.Errorf("q.UpdateOrderStatus: %w", ErrNotFound)
		}

		return previous, nil
	})
	if err != nil {
		return "", fmt.Errorf("withTx: %w", err)
	}

	return previous, nil
}

func insertDeliveryStatusLog(ctx context.Context, q *db.Queries, orderID uuid.UUID, entry domain.DeliveryStatusLog) error {
	arg := db.InsertDeliveryStatusLogParams{
		OrderID:   orderID,
		Status:    string(entry.Status),
		Notes:     entry.Notes,
		CreatedBy: entry.CreatedBy,
	}

	if err := q.InsertDeliveryStatusLog(ctx, arg); err != nil {
		return fmt.Errorf("q.InsertDeliveryStatusLog: %w", err)
	}

	return nil
}

func mapDBDeliveryToDomain(dbDelivery db.Delivery, dbLogs []db.DeliveryStatusLog) (domain.Delivery, error) {
	var d domain.Delivery

	status, err := domain.ToDeliveryStatus(dbDelivery.Status)
	if err != nil {
		return d, fmt.Errorf("domain.ToDeliveryStatus[%s]: %w", dbDelivery.Status, err)
	}

	logs := make([]domain.DeliveryStatusLog, 0, len(dbLogs))
	for _, dbLog := range dbLogs {
		logStatus, err := domain.ToDeliveryStatus(dbLog.Status)
		if err != nil {
			return d, fmt.Errorf("domain.ToDeliveryStatus[%s]: %w", dbLog.Status, err)
		}

		logs = append(logs, domain.DeliveryStatusLog{
			ID:        dbLog.ID,
			Status:    logStatus,
			Notes:     dbLog.Notes,
			CreatedBy: dbLog.CreatedBy,
			CreatedAt: dbLog.CreatedAt,
		})
	}

	return domain.Delivery{
		OrderID:           dbDelivery.OrderID,
		Status:            status,
		EstimatedDelivery: dbDelivery.EstimatedDelivery,
		Logs:              logs,
		UpdatedAt:         dbDelivery.UpdatedAt,
	}, nil
}
