package live

import (
	"net/http"

	"laundry-booking/internal/models"
	"laundry-booking/internal/modules/orders"
	"laundry-booking/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// upgrader is used to upgrade HTTP connections to WebSocket connections.
var upgrader = websocket.Upgrader{
	// Origins are already constrained by the CORS middleware in front.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler streams live order snapshots over WebSockets.
type Handler struct {
	feed *Feed
}

// NewHandler creates a new live-view handler.
func NewHandler(feed *Feed) *Handler {
	return &Handler{feed: feed}
}

// stream upgrades the connection and forwards snapshots until either
// side goes away. The subscription is closed when the handler returns,
// one open and one matching close.
func (h *Handler) stream(c echo.Context, sub *Subscription, encode func([]*models.Order) interface{}) error {
	defer sub.Close()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Reader goroutine: we never expect client messages, but reading
	// is how websocket learns the peer hung up.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case snapshot, ok := <-sub.C:
			if !ok {
				return nil
			}
			if err := conn.WriteJSON(encode(snapshot)); err != nil {
				return nil
			}
		}
	}
}

func passthrough(snapshot []*models.Order) interface{} { return snapshot }

// MyOrders streams "all orders owned by the authenticated customer".
func (h *Handler) MyOrders(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}
	sub := h.feed.SubscribeUserOrders(c.Request().Context(), userID)
	return h.stream(c, sub, passthrough)
}

// TrackOrder streams the single order matching the tracking code.
func (h *Handler) TrackOrder(c echo.Context) error {
	code := c.Param("code")
	if len(code) != utils.TrackingCodeLength {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid tracking code")
	}
	sub := h.feed.SubscribeTracking(c.Request().Context(), code)
	return h.stream(c, sub, passthrough)
}

// AdminOrders streams the whole order collection, optionally filtered
// by status.
func (h *Handler) AdminOrders(c echo.Context) error {
	var sub *Subscription
	if status := c.QueryParam("status"); status != "" {
		st := models.OrderStatus(status)
		if !st.Valid() {
			return utils.RespondWithError(c, http.StatusBadRequest, "Unknown status filter")
		}
		sub = h.feed.SubscribeStatus(c.Request().Context(), st)
	} else {
		sub = h.feed.SubscribeAll(c.Request().Context())
	}
	return h.stream(c, sub, passthrough)
}

// AdminStats streams the dashboard aggregate, recomputed from the full
// order set on every change.
func (h *Handler) AdminStats(c echo.Context) error {
	sub := h.feed.SubscribeAll(c.Request().Context())
	return h.stream(c, sub, func(snapshot []*models.Order) interface{} {
		return orders.ComputeStats(snapshot)
	})
}
