package orders

import (
	"net/http"
	"time"

	"laundry-booking/internal/models"
	"laundry-booking/internal/pricing"
	"laundry-booking/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new order handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// GetCatalog returns the bookable services and the pickup schedule the
// booking form renders.
func (h *Handler) GetCatalog(c echo.Context) error {
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{
		"services":    pricing.Catalog(),
		"pickupDates": pricing.PickupDates(time.Now()),
		"pickupSlots": pricing.PickupSlots,
	})
}

func (h *Handler) CreateOrder(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), userID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusCreated, order)
}

func (h *Handler) ListMyOrders(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	orders, err := h.svc.ListUserOrders(c.Request().Context(), userID)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"orders": orders, "total": len(orders)})
}

func (h *Handler) GetOrderDetails(c echo.Context) error {
	userID, role, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	order, err := h.svc.GetOrderDetails(c.Request().Context(), c.Param("orderId"), userID, role)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, order)
}

// TrackOrder is the public lookup by tracking code.
func (h *Handler) TrackOrder(c echo.Context) error {
	code := c.Param("code")
	if len(code) != utils.TrackingCodeLength {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid tracking code")
	}

	order, err := h.svc.TrackByCode(c.Request().Context(), code)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, order)
}

func (h *Handler) UpdateOrder(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	order, err := h.svc.UpdateOrder(c.Request().Context(), c.Param("orderId"), userID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, order)
}

func (h *Handler) CancelOrder(c echo.Context) error {
	userID, role, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	if err := h.svc.CancelOrder(c.Request().Context(), c.Param("orderId"), userID, role); err != nil {
		return utils.HandleServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadPhotos accepts up to five multipart files under the "photos"
// field and attaches them to the order.
func (h *Handler) UploadPhotos(c echo.Context) error {
	userID, role, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid multipart form")
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return utils.RespondWithError(c, http.StatusBadRequest, "No photos provided")
	}
	if len(files) > MaxPhotosPerOrder {
		return utils.RespondWithError(c, http.StatusBadRequest, "You can upload a maximum of 5 photos")
	}

	uploads := make([]PhotoUpload, 0, len(files))
	for _, f := range files {
		src, err := f.Open()
		if err != nil {
			return utils.RespondWithError(c, http.StatusBadRequest, "Unreadable photo upload")
		}
		defer src.Close()
		uploads = append(uploads, PhotoUpload{
			Filename:    f.Filename,
			ContentType: f.Header.Get("Content-Type"),
			Body:        src,
		})
	}

	order, err := h.svc.AttachPhotos(c.Request().Context(), c.Param("orderId"), userID, role, uploads)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, order)
}

// --- Admin Handlers ---

func (h *Handler) ListAllOrders(c echo.Context) error {
	orders, err := h.svc.ListAllOrders(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"orders": orders, "total": len(orders)})
}

func (h *Handler) CreateWalkInOrder(c echo.Context) error {
	var req models.WalkInOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	order, err := h.svc.CreateWalkInOrder(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusCreated, order)
}

func (h *Handler) ApproveOrder(c echo.Context) error {
	if err := h.svc.ApproveOrder(c.Request().Context(), c.Param("orderId")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RejectOrder(c echo.Context) error {
	if err := h.svc.RejectOrder(c.Request().Context(), c.Param("orderId")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CompleteOrder(c echo.Context) error {
	if err := h.svc.CompleteOrder(c.Request().Context(), c.Param("orderId")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AdminUpdateOrder(c echo.Context) error {
	var req models.AdminUpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	order, err := h.svc.AdminUpdateOrder(c.Request().Context(), c.Param("orderId"), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c echo.Context) error {
	if err := h.svc.DeleteOrder(c.Request().Context(), c.Param("orderId")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute stats")
	}
	return utils.RespondWithJSON(c, http.StatusOK, stats)
}
