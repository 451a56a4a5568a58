package routes

import (
	"vendora/auth"
	"vendora/middleware"
	"vendora/profile"
	"vendora/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/v1/auth/register", rl.Limit(auth.Register))
	router.POST("/api/v1/auth/login", rl.Limit(auth.Login))
	router.POST("/api/v1/auth/logout", middleware.Chain(rl.Limit, middleware.Authenticate)(auth.Logout))
	router.POST("/api/v1/auth/refresh", rl.Limit(auth.RefreshToken))

	router.POST("/api/v1/auth/otp/request", rl.Limit(auth.RequestOTP))
	router.POST("/api/v1/auth/otp/verify", rl.Limit(auth.VerifyOTP))
	router.POST("/api/v1/auth/2fa", middleware.Chain(rl.Limit, middleware.Authenticate)(auth.ToggleTwoFactor))

	router.POST("/api/v1/auth/forgot-password", rl.Limit(auth.ForgotPassword))
	router.POST("/api/v1/auth/reset-password", rl.Limit(auth.ResetPassword))

	router.GET("/api/v1/auth/oauth/:provider", rl.Limit(auth.OAuthRedirect))
	router.GET("/api/v1/auth/oauth/:provider/callback", rl.Limit(auth.OAuthCallback))

	router.GET("/api/v1/csrf", middleware.IssueCSRF)

	router.GET("/api/v1/profile",
		middleware.Chain(rl.Limit, middleware.Authenticate)(profile.GetProfile))
	router.PUT("/api/v1/profile",
		middleware.Chain(rl.Limit, middleware.Authenticate, middleware.VerifyCSRF)(profile.UpdateProfile))
	router.POST("/api/v1/profile/avatar",
		middleware.Chain(rl.Limit, middleware.Authenticate)(profile.UploadAvatar))
	router.DELETE("/api/v1/profile",
		middleware.Chain(rl.Limit, middleware.Authenticate, middleware.VerifyCSRF)(profile.DeleteAccount))

	router.GET("/api/v1/admin/users",
		middleware.Chain(rl.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))(profile.GetUsers))
}
