package main

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Matooloose/verdant-village-store-sub002/external/payfast"
	"github.com/Matooloose/verdant-village-store-sub002/internal/services"

	"github.com/labstack/echo/v4"
)

func registerPaymentRoutes(
	g *echo.Group,
	sigSvc *services.SignatureService,
	notifSvc *services.NotificationService,
	reconciler *services.ReconcileService,
	paySvc *services.PaymentService,
	payments services.PaymentLookup,
) {
	p := g.Group("/payments")

	// ============================
	// SIGNATURE ENDPOINT
	// The passphrase lives server-side only; the browser client posts the
	// parameters it wants signed and gets the digest back, nothing more.
	// ============================
	p.POST("/signature", func(c echo.Context) error {
		params, err := payfast.ParseJSONBody(c.Request().Body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "malformed request",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"signature": sigSvc.Sign(params),
		})
	})

	// ============================
	// ITN WEBHOOK
	// (public by necessity — the gateway calls it; authenticity comes from
	// the signature gate, which runs before anything else)
	// ============================
	p.POST("/notify", func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.String(http.StatusBadRequest, "unreadable body")
		}

		var params *payfast.ParameterSet
		if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
			params, err = payfast.ParseJSONBody(strings.NewReader(string(body)))
		} else {
			params, err = payfast.ParseFormBody(body)
		}
		if err != nil {
			return c.String(http.StatusBadRequest, "malformed notification")
		}

		notification, err := notifSvc.Verify(params)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidSignature):
				return c.String(http.StatusBadRequest, "invalid signature")
			case errors.Is(err, services.ErrMissingCorrelationData):
				return c.String(http.StatusBadRequest, "missing required fields")
			default:
				return c.String(http.StatusBadRequest, "rejected")
			}
		}

		if err := reconciler.Apply(c.Request().Context(), notification); err != nil {
			// 5xx invites the gateway's own redelivery; nothing is retried
			// internally.
			if errors.Is(err, services.ErrOrderNotFound) {
				return c.String(http.StatusInternalServerError, "order not found")
			}
			return c.String(http.StatusInternalServerError, "reconciliation failed")
		}

		return c.String(http.StatusOK, "OK")
	})

	// ============================
	// CHECKOUT + PAYMENT LOOKUP
	// ============================
	p.POST("/:orderId", func(c echo.Context) error {
		var req struct {
			UserID string `json:"user_id"`
		}
		if err := c.Bind(&req); err != nil || req.UserID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "user_id is required",
			})
		}

		result, err := paySvc.CreateCheckout(
			c.Request().Context(),
			c.Param("orderId"),
			req.UserID,
		)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrOrderNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
			case errors.Is(err, services.ErrForbidden):
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			case errors.Is(err, services.ErrOrderNotPayable),
				errors.Is(err, payfast.ErrInvalidAmount),
				errors.Is(err, payfast.ErrMissingField):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "checkout failed"})
			}
		}

		return c.JSON(http.StatusOK, result)
	})

	p.GET("/:orderId", func(c echo.Context) error {
		payment, err := payments.GetByOrderID(c.Request().Context(), c.Param("orderId"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
		}
		if payment == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no payment for order"})
		}
		return c.JSON(http.StatusOK, payment)
	})
}
