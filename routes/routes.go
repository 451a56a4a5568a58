package routes

import (
	"net/http"

	"vendora/chat"
	"vendora/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
	router.ServeFiles("/static/postpic/*filepath", http.Dir("static/postpic"))
}

// RoutesWrapper mounts every feature's routes on the router.
func RoutesWrapper(router *httprouter.Router, rl *ratelim.RateLimiter, hub *chat.Hub) {
	AddStaticRoutes(router)
	AddAuthRoutes(router, rl)
	AddProductRoutes(router, rl)
	AddCartRoutes(router, rl)
	AddWishlistRoutes(router, rl)
	AddPromoRoutes(router, rl)
	AddOrderRoutes(router, rl)
	AddStockRoutes(router, rl)
	AddSalesRoutes(router, rl)
	AddPayRoutes(router, rl)
	AddNotificationRoutes(router, rl)
	AddBlogRoutes(router, rl)
	AddQnaRoutes(router, rl)
	AddFeedbackRoutes(router, rl)
	AddChatRoutes(router, rl, hub)
}
