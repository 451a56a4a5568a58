package routes

import (
	"vendora/middleware"
	"vendora/orders"
	"vendora/pay"
	"vendora/ratelim"
	"vendora/sales"
	"vendora/stock"

	"github.com/julienschmidt/httprouter"
)

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	authed := middleware.Chain(rl.Limit, middleware.Authenticate)
	admin := middleware.Chain(rl.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.POST("/api/v1/orders", middleware.Chain(rl.Limit, middleware.Authenticate, middleware.VerifyCSRF)(orders.CreateOrder))
	router.GET("/api/v1/orders", authed(orders.GetOrders))
	router.GET("/api/v1/orders/:orderid", authed(orders.GetOrder))
	router.POST("/api/v1/orders/:orderid/cancel", authed(orders.CancelOrder))
	router.GET("/api/v1/orders/:orderid/history", authed(orders.GetOrderHistory))
	router.GET("/api/v1/orders/:orderid/invoice", authed(orders.PrintInvoice))

	router.GET("/api/v1/admin/orders", admin(orders.GetAllOrders))
	router.PUT("/api/v1/admin/orders/:orderid/status", admin(orders.UpdateStatus))
}

func AddStockRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	admin := middleware.Chain(rl.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.POST("/api/v1/stocks", admin(stock.CreateStock))
	router.GET("/api/v1/stocks", admin(stock.GetStocks))
	router.PUT("/api/v1/stocks/:stockid", admin(stock.UpdateStock))
	router.POST("/api/v1/stocks/reorder", admin(stock.ReorderSweep))
	router.GET("/api/v1/stocks/:stockid/history", admin(stock.GetStockHistory))
	router.GET("/api/v1/stock-status", admin(stock.StatusCheck))
}

func AddSalesRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	admin := middleware.Chain(rl.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.GET("/api/v1/reports/sales/total", admin(sales.TotalSalesReport))
	router.GET("/api/v1/reports/sales/by-product", admin(sales.SalesByProductReport))
	router.GET("/api/v1/reports/sales/filtered", admin(sales.FilteredSalesReport))
	router.GET("/api/v1/reports/sales/average", admin(sales.AverageSalesReport))
	router.GET("/api/v1/reports/sales/top-products", admin(sales.TopProductsReport))
}

func AddPayRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	authed := middleware.Chain(rl.Limit, middleware.Authenticate)

	router.POST("/api/v1/payments/stripe/session", authed(pay.CreateStripeSession))
	router.POST("/api/v1/payments/stripe/confirm", authed(pay.ConfirmStripePayment))
	router.POST("/api/v1/payments/paypal/order", authed(pay.CreatePayPalOrder))
	router.POST("/api/v1/payments/paypal/capture", authed(pay.CapturePayPalOrder))
	router.GET("/api/v1/payments", authed(pay.GetPayments))
}
