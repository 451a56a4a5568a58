package routes

import (
	"vendora/blog"
	"vendora/chat"
	"vendora/feedback"
	"vendora/middleware"
	"vendora/notifications"
	"vendora/qna"
	"vendora/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddBlogRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	authed := middleware.Chain(rl.Limit, middleware.Authenticate)

	router.GET("/api/v1/posts", rl.Limit(blog.GetPosts))
	router.GET("/api/v1/posts/:postid", rl.Limit(blog.GetPost))
	router.POST("/api/v1/posts", authed(blog.CreatePost))
	router.PUT("/api/v1/posts/:postid", authed(blog.UpdatePost))
	router.DELETE("/api/v1/posts/:postid", authed(blog.DeletePost))

	router.GET("/api/v1/posts/:postid/comments", rl.Limit(blog.GetComments))
	router.POST("/api/v1/posts/:postid/comments", authed(blog.AddComment))
	router.DELETE("/api/v1/comments/:commentid", authed(blog.DeleteComment))
}

func AddQnaRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	admin := middleware.Chain(rl.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.GET("/api/v1/faqs", rl.Limit(qna.GetFAQs))
	router.POST("/api/v1/faqs", admin(qna.CreateFAQ))
	router.PUT("/api/v1/faqs/:faqid", admin(qna.UpdateFAQ))
	router.DELETE("/api/v1/faqs/:faqid", admin(qna.DeleteFAQ))
}

func AddFeedbackRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	authed := middleware.Chain(rl.Limit, middleware.Authenticate)
	admin := middleware.Chain(rl.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.GET("/api/v1/testimonials", rl.Limit(feedback.GetTestimonials))
	router.POST("/api/v1/testimonials", authed(feedback.CreateTestimonial))
	router.DELETE("/api/v1/testimonials/:testimonialid", authed(feedback.DeleteTestimonial))

	router.POST("/api/v1/feedback", middleware.Chain(rl.Limit, middleware.OptionalAuth)(feedback.SubmitFeedback))
	router.GET("/api/v1/feedback", admin(feedback.GetFeedback))

	router.POST("/api/v1/suggestions", middleware.Chain(rl.Limit, middleware.OptionalAuth)(feedback.SubmitSuggestion))
	router.GET("/api/v1/suggestions", admin(feedback.GetSuggestions))

	router.POST("/api/v1/contact", rl.Limit(feedback.SubmitContact))
	router.GET("/api/v1/contact", admin(feedback.GetContacts))
	router.DELETE("/api/v1/contact/:contactid", admin(feedback.DeleteContact))
}

func AddNotificationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	authed := middleware.Chain(rl.Limit, middleware.Authenticate)
	admin := middleware.Chain(rl.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.GET("/api/v1/notifications", authed(notifications.GetNotifications))
	router.PUT("/api/v1/notifications/:id/read", authed(notifications.MarkRead))
	router.POST("/api/v1/notifications/read-all", authed(notifications.MarkAllRead))
	router.POST("/api/v1/devices", authed(notifications.RegisterDevice))
	router.POST("/api/v1/admin/broadcast", admin(notifications.Broadcast))
}

func AddChatRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, hub *chat.Hub) {
	router.GET("/ws/:room", chat.WebSocketHandler(hub))
	router.GET("/api/v1/chat/:room/messages",
		middleware.Chain(rl.Limit, middleware.Authenticate)(chat.GetRoomMessages))
}
