package routes

import (
	"vendora/cart"
	"vendora/middleware"
	"vendora/products"
	"vendora/promos"
	"vendora/ratelim"
	"vendora/wishlist"

	"github.com/julienschmidt/httprouter"
)

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/v1/products", rl.Limit(products.GetProducts))
	router.GET("/api/v1/products/:productid", rl.Limit(products.GetProduct))

	admin := middleware.Chain(rl.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))
	router.POST("/api/v1/products", admin(products.CreateProduct))
	router.PUT("/api/v1/products/:productid", admin(products.EditProduct))
	router.DELETE("/api/v1/products/:productid", admin(products.DeleteProduct))
	router.POST("/api/v1/products/:productid/images", admin(products.AddProductImages))

	authed := middleware.Chain(rl.Limit, middleware.Authenticate)
	router.POST("/api/v1/products/:productid/reviews", authed(products.AddReview))
	router.PUT("/api/v1/products/:productid/reviews/:reviewid", authed(products.EditReview))
	router.DELETE("/api/v1/products/:productid/reviews/:reviewid", authed(products.DeleteReview))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	authed := middleware.Chain(rl.Limit, middleware.Authenticate)
	mutating := middleware.Chain(rl.Limit, middleware.Authenticate, middleware.VerifyCSRF)

	router.GET("/api/v1/cart", authed(cart.GetCart))
	router.POST("/api/v1/cart", mutating(cart.AddToCart))
	router.PUT("/api/v1/cart/:productid", mutating(cart.UpdateQuantity))
	router.DELETE("/api/v1/cart/:productid", mutating(cart.RemoveFromCart))
	router.DELETE("/api/v1/cart", mutating(cart.ClearCart))
}

func AddWishlistRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	authed := middleware.Chain(rl.Limit, middleware.Authenticate)
	mutating := middleware.Chain(rl.Limit, middleware.Authenticate, middleware.VerifyCSRF)

	router.POST("/api/v1/wishlists", mutating(wishlist.CreateWishlist))
	router.GET("/api/v1/wishlists", authed(wishlist.GetWishlists))
	router.GET("/api/v1/wishlists/:wishlistid", authed(wishlist.GetWishlist))
	router.POST("/api/v1/wishlists/:wishlistid/products", mutating(wishlist.AddProduct))
	router.DELETE("/api/v1/wishlists/:wishlistid/products/:productid", mutating(wishlist.RemoveProduct))
	router.POST("/api/v1/wishlists/:wishlistid/share", mutating(wishlist.ShareWishlist))
	router.DELETE("/api/v1/wishlists/:wishlistid", mutating(wishlist.DeleteWishlist))
}

func AddPromoRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	admin := middleware.Chain(rl.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.POST("/api/v1/promos", admin(promos.CreatePromo))
	router.GET("/api/v1/promos", admin(promos.GetPromos))
	router.PUT("/api/v1/promos/:code", admin(promos.UpdatePromo))
	router.DELETE("/api/v1/promos/:code", admin(promos.DeletePromo))

	router.POST("/api/v1/promos/apply",
		middleware.Chain(rl.Limit, middleware.Authenticate)(promos.ApplyPromo))
}
