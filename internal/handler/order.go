package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
	"github.com/iliyamo/telegram-shop-backend/internal/queue"
	"github.com/iliyamo/telegram-shop-backend/internal/repository"
)

// OrderStore persists order records.
type OrderStore interface {
	Create(ctx context.Context, userID string, items []model.OrderItem, total int) (model.Order, error)
}

// Notifier delivers the order notification to the shop channel.
// Failures are logged and swallowed; they never block order completion.
type Notifier interface {
	NotifyOrder(ctx context.Context, user model.User, items []model.OrderItem, total int) error
}

// OrderHandler serves POST /api/orders: persist the order, notify the
// channel, publish the event, clear the cart.
type OrderHandler struct {
	Orders OrderStore
	Users  UserStore
	Cart   CartStore
	Notify Notifier
	// Publish emits the order-placed event to the broker; nil disables
	// publishing. Publish failures are logged and swallowed.
	Publish func(ctx context.Context, ev queue.OrderPlacedEvent) error
}

type placeOrderReq struct {
	UserID string            `json:"user_id"`
	Items  []model.OrderItem `json:"items"`
	Total  int               `json:"total"`
}

// Place handles order submission. The user lookup missing is a
// tolerated soft failure: the notification is skipped but the order
// still completes and the cart is cleared.
func (h *OrderHandler) Place(c echo.Context) error {
	var req placeOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	order, err := h.Orders.Create(ctx, req.UserID, req.Items, req.Total)
	if err != nil {
		return storeErr(c, err)
	}

	user, err := h.Users.GetByID(ctx, req.UserID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Printf("orders: user %s not found, skipping notification", req.UserID)
	case err != nil:
		log.Printf("orders: user lookup failed: %v", err)
	default:
		if h.Notify != nil {
			if err := h.Notify.NotifyOrder(ctx, user, req.Items, req.Total); err != nil {
				log.Printf("orders: notification failed: %v", err)
			}
		}
	}

	if h.Publish != nil {
		ev := queue.OrderPlacedEvent{
			OrderID:    order.ID,
			UserID:     order.UserID,
			TelegramID: user.TelegramID,
			Items:      order.Items,
			Total:      order.Total,
			PlacedAt:   order.CreatedAt.Format(time.RFC3339),
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("orders: event publish failed: %v", err)
		}
	}

	if err := h.Cart.Clear(ctx, req.UserID); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "order created successfully", "order": order})
}
