package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/tutoring-cart/internal/api/middleware"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/errors"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/models"
	service "github.com/aaravmahajanofficial/tutoring-cart/internal/services"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/utils"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the current cart
//	@Description	Returns the authenticated customer's line items with their reserved slots, the cart total and the number of unfilled slots.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart				"Successfully retrieved cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add a tutoring product to the cart
//	@Description	Adds the product with quantity 1 and reserves one session slot per session in the unit. Slots already held by other line items are never reused.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product to add, with an optional reference date (YYYY-MM-DD)"
//	@Success		201		{object}	models.Cart				"Item added with its reserved slots"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or invalid line item"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		409		{object}	response.ErrorResponse	"Product already in cart, or not enough slots available"
//	@Failure		502		{object}	response.ErrorResponse	"Availability service failure"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized add to cart attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		req.Name = utils.SanitizeText(req.Name)
		req.Description = utils.SanitizeText(req.Description)
		req.DurationLabel = utils.SanitizeText(req.DurationLabel)

		logger = logger.With(slog.Int64("productId", req.ProductID))

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart")
		response.Success(w, http.StatusCreated, cart)
	}
}

// IncreaseQuantity godoc
//	@Summary		Increase a line item's quantity by one
//	@Description	Adds one unit and reserves only the slots the new quantity is missing.
//	@Tags			Cart
//	@Produce		json
//	@Param			productId	path		int						true	"Product ID"
//	@Param			date		query		string					false	"Reference date (YYYY-MM-DD), defaults to today"
//	@Success		200			{object}	models.Cart				"Quantity increased"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid product id or date"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404			{object}	response.ErrorResponse	"Item not found in the cart"
//	@Failure		409			{object}	response.ErrorResponse	"Not enough slots available"
//	@Failure		502			{object}	response.ErrorResponse	"Availability service failure"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items/{productId}/increase [post]
func (h *CartHandler) IncreaseQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized quantity update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		productID, err := utils.ParseProductID(r, "productId")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		date, err := utils.ParseDateQuery(r, "date")
		if err != nil {
			logger.Warn("Invalid reference date", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.IncreaseQuantity(r.Context(), claims.UserID, productID, date)
		if err != nil {
			logger.Warn("Failed to increase quantity", slog.Int64("productId", productID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// DecreaseQuantity godoc
//	@Summary		Decrease a line item's quantity by one
//	@Description	Removes one unit and releases its most recently reserved slots. At quantity zero the item is removed.
//	@Tags			Cart
//	@Produce		json
//	@Param			productId	path		int						true	"Product ID"
//	@Success		200			{object}	models.Cart				"Quantity decreased"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid product id"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items/{productId}/decrease [post]
func (h *CartHandler) DecreaseQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized quantity update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		productID, err := utils.ParseProductID(r, "productId")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.DecreaseQuantity(r.Context(), claims.UserID, productID)
		if err != nil {
			logger.Error("Failed to decrease quantity", slog.Int64("productId", productID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a line item
//	@Description	Removes the product and releases all of its slots. Removing a product that is not in the cart does nothing.
//	@Tags			Cart
//	@Produce		json
//	@Param			productId	path		int						true	"Product ID"
//	@Success		200			{object}	models.Cart				"Item removed"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid product id"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized item removal attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		productID, err := utils.ParseProductID(r, "productId")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, productID)
		if err != nil {
			logger.Error("Failed to remove item", slog.Int64("productId", productID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item removed from cart", slog.Int64("productId", productID))
		response.Success(w, http.StatusOK, cart)
	}
}
