package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MarcGrol/onlineshop/lib/myerrors"
	"github.com/MarcGrol/onlineshop/lib/mylog"
	"github.com/MarcGrol/onlineshop/services/cart"
	"github.com/MarcGrol/onlineshop/services/order"
)

// Preview quotes the cart of the session without changing anything.
func (s *Service) Preview(c context.Context, sessionUID string, req PreviewRequest) (Quote, error) {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Preview checkout (method:%s, preferred:%s)", req.DeliveryMethod, req.PreferredTime)

	crt, err := s.loadNonEmptyCart(c, sessionUID)
	if err != nil {
		return Quote{}, err
	}

	method, preferred, err := parseDeliveryOptions(req.DeliveryMethod, req.PreferredTime)
	if err != nil {
		return Quote{}, err
	}

	return buildQuote(crt, method, preferred, s.nower.Now(), s.policy), nil
}

// Submit turns the cart of the session into a persisted order. The cart is
// only cleared after the order has been stored.
func (s *Service) Submit(c context.Context, sessionUID string, req SubmitRequest) (order.Order, error) {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Submit checkout (method:%s, preferred:%s)", req.DeliveryMethod, req.PreferredTime)

	crt, err := s.loadNonEmptyCart(c, sessionUID)
	if err != nil {
		return order.Order{}, err
	}

	err = req.Validate()
	if err != nil {
		return order.Order{}, myerrors.NewInvalidInputError(err)
	}

	method, preferred, err := parseDeliveryOptions(req.DeliveryMethod, req.PreferredTime)
	if err != nil {
		return order.Order{}, err
	}

	exists, err := s.catalog.ExistsAll(c, crt.ProductIDs())
	if err != nil {
		return order.Order{}, myerrors.NewInternalError(err)
	}
	if !exists {
		return order.Order{}, myerrors.NewConflictError(ErrStaleCartItem)
	}

	now := s.nower.Now()
	quote := buildQuote(crt, method, preferred, now, s.policy)
	newOrder := createOrder(s.uuider.Create(), sessionUID, now, req, quote)

	created, err := s.orders.CreateAtomic(c, newOrder)
	if errors.Is(err, order.ErrUnknownProduct) {
		return order.Order{}, myerrors.NewConflictError(fmt.Errorf("%w: %s", ErrStaleCartItem, err))
	}
	if err != nil {
		s.logger.Log(c, sessionUID, mylog.SeverityError, "Error storing order %s: %s", newOrder.UID, err)
		return order.Order{}, myerrors.NewInternalError(fmt.Errorf("%w: %s", ErrPersistence, err))
	}

	s.logger.Log(c, created.UID, mylog.SeverityInfo, "Order %s created for session %s (total:%s)", created.UID, sessionUID, created.Total.StringFixed(2))

	err = s.notifier.Send(c, FormatOrderMessage(created))
	if err != nil {
		s.logger.Log(c, created.UID, mylog.SeverityWarn, "Error notifying about order %s: %s", created.UID, err)
	}

	// the order exists: a failing clear must not turn into a retry that duplicates it
	err = s.carts.Clear(c, sessionUID)
	if err != nil {
		s.logger.Log(c, created.UID, mylog.SeverityError, "Error clearing cart of session %s after order %s: %s", sessionUID, created.UID, err)
	}

	return created, nil
}

func (s *Service) loadNonEmptyCart(c context.Context, sessionUID string) (*cart.Cart, error) {
	crt, err := s.carts.Load(c, sessionUID)
	if err != nil {
		return nil, err
	}
	if crt.IsEmpty() {
		return nil, myerrors.NewInvalidInputError(ErrEmptyCart)
	}
	return crt, nil
}

func parseDeliveryOptions(rawMethod string, rawPreferred string) (DeliveryMethod, *TimeOfDay, error) {
	method, err := ParseDeliveryMethod(rawMethod)
	if err != nil {
		return "", nil, myerrors.NewInvalidInputError(err)
	}

	preferred, err := ParseTimeOfDay(rawPreferred)
	if err != nil {
		return "", nil, myerrors.NewInvalidInputError(err)
	}

	return method, preferred, nil
}

// buildQuote prices the cart with the prices it captured when products were added.
func buildQuote(crt *cart.Cart, method DeliveryMethod, preferred *TimeOfDay, now time.Time, policy Policy) Quote {
	summary := cart.Summarize(crt)

	lines := []QuoteLine{}
	for _, item := range summary.Items {
		lines = append(lines, QuoteLine{
			ProductID:   item.ProductID,
			DisplayName: item.DisplayName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}

	shipping := method.ShippingCost(policy)

	return Quote{
		DeliveryMethod: method,
		Lines:          lines,
		Subtotal:       summary.TotalPrice,
		ShippingCost:   shipping,
		Total:          summary.TotalPrice.Add(shipping),
		Delivery:       ComputeDelivery(now, policy, preferred),
	}
}

func createOrder(orderUID string, sessionUID string, now time.Time, req SubmitRequest, quote Quote) order.Order {
	lines := []order.OrderLine{}
	for _, l := range quote.Lines {
		lines = append(lines, order.OrderLine{
			ProductID:   l.ProductID,
			ProductName: l.DisplayName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}

	return order.Order{
		UID:        orderUID,
		SessionUID: sessionUID,
		Customer: order.Customer{
			Name:  strings.TrimSpace(req.Customer.Name),
			Phone: strings.TrimSpace(req.Customer.Phone),
			Email: strings.TrimSpace(req.Customer.Email),
		},
		DeliveryMethod: string(quote.DeliveryMethod),
		Address: order.Address{
			City:      strings.TrimSpace(req.Address.City),
			Street:    strings.TrimSpace(req.Address.Street),
			House:     strings.TrimSpace(req.Address.House),
			Apartment: strings.TrimSpace(req.Address.Apartment),
			Comment:   strings.TrimSpace(req.Address.Comment),
		},
		ShippingCost:  quote.ShippingCost,
		Subtotal:      quote.Subtotal,
		Total:         quote.Total,
		ETAHours:      quote.ETAHours,
		PreferredTime: quote.PreferredTime,
		ScheduledAt:   quote.ScheduledAt,
		DeliveryNote:  quote.Note,
		CreatedAt:     now,
		Lines:         lines,
	}
}
