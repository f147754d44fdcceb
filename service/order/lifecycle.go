package order

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	salesEntity "shopcore.GO/model/entity/sales"
	salesRepo "shopcore.GO/model/repository/sales"
	inventoryService "shopcore.GO/service/inventory"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "order_service").Logger()

// Service applies order patches and their inventory side effects.
// Writes are sequential and individually atomic; a failed inventory
// adjustment after the order/item rows committed is logged and left
// standing. See Adjust on the ledger.
type Service struct {
	orders     *salesRepo.OrderRepository
	ledger     *inventoryService.Ledger
	reconciler *Reconciler
	events     *EventEmitter
}

func NewService(orders *salesRepo.OrderRepository, ledger *inventoryService.Ledger, events *EventEmitter) *Service {
	return &Service{
		orders:     orders,
		ledger:     ledger,
		reconciler: NewReconciler(orders, ledger),
		events:     events,
	}
}

// UpdateOrder applies a sparse patch to one order: order fields first,
// then item reconciliation when the patch carries a desired item set,
// then the inventory effect of a status transition. Returns the order
// as stored after all writes.
func (s *Service) UpdateOrder(storeID, orderID uint, p *Patch) (*salesEntity.Order, error) {
	if p == nil {
		return nil, &ValidationError{Reason: "empty patch"}
	}

	ord, err := s.orders.FindByIDForStore(orderID, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d in store %d: %w", orderID, storeID, ErrNotFound)
		}
		return nil, err
	}
	prevStatus := ord.Status

	if fields := p.orderFields(); len(fields) > 0 {
		if err := s.orders.UpdateFields(ord.ID, fields); err != nil {
			return nil, err
		}
	}

	var finalItems []salesEntity.OrderItem
	if p.Items != nil {
		existing, err := s.orders.ListItems(ord.ID)
		if err != nil {
			return nil, err
		}
		finalItems, err = s.reconciler.Reconcile(ord.ID, existing, *p.Items)
		if err != nil {
			return nil, err
		}
	} else {
		finalItems, err = s.orders.ListItems(ord.ID)
		if err != nil {
			return nil, err
		}
	}

	if p.Status != nil && *p.Status != prevStatus {
		s.applyTransitionEffect(prevStatus, *p.Status, finalItems)
		s.events.StatusChanged(ord, prevStatus, *p.Status)
	}

	updated, err := s.orders.FindByIDForStore(orderID, storeID)
	if err != nil {
		return nil, err
	}
	updated.Items = finalItems
	return updated, nil
}

// transitionEffect returns the per-unit inventory deltas of a status
// change, or ok=false when the pair has no inventory effect.
//
//	pending/confirmed -> cancelled   release reservation back to stock
//	any               -> delivered   drain reservation, stock stays sold
//	cancelled -> pending/confirmed   re-reserve out of stock
//	delivered -> pending/confirmed   re-add to reserved only
func transitionEffect(from, to string) (availPerUnit, reservedPerUnit int, ok bool) {
	open := func(s string) bool {
		return s == salesEntity.StatusPending || s == salesEntity.StatusConfirmed
	}
	switch {
	case to == salesEntity.StatusCancelled && open(from):
		return +1, -1, true
	case to == salesEntity.StatusDelivered:
		return 0, -1, true
	case from == salesEntity.StatusCancelled && open(to):
		return -1, +1, true
	case from == salesEntity.StatusDelivered && open(to):
		return 0, +1, true
	}
	return 0, 0, false
}

func (s *Service) applyTransitionEffect(from, to string, items []salesEntity.OrderItem) {
	availPerUnit, reservedPerUnit, ok := transitionEffect(from, to)
	if !ok {
		return
	}
	logger.Info().Str("from", from).Str("to", to).Int("items", len(items)).
		Msg("applying status transition inventory effect")
	for _, it := range items {
		key := itemKey(it.ProductID, it.VariantID)
		_ = s.ledger.Adjust(key, availPerUnit*it.Quantity, reservedPerUnit*it.Quantity)
	}
}
