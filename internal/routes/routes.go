package routes

import (
	"novamart_back_end/internal/handlers/payement"
	"novamart_back_end/internal/handlers/user"
	"novamart_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Auth (public)
	r.POST("/signup", middleware.SignupRateLimit(), user.Signup)
	r.POST("/login", middleware.LoginRateLimit(), user.Login)
	r.POST("/forgot-password", middleware.ForgotPasswordRateLimit(), user.ForgotPassword)
	r.POST("/reset-password", user.ResetPassword)

	// Tout le reste exige un bearer token valide
	auth := r.Group("", middleware.AuthRequired())

	auth.GET("/me", user.Me)
	auth.DELETE("/delete-account", user.DeleteAccount)

	// Panier
	auth.GET("/cart", user.GetCart)
	auth.POST("/cart", user.AddToCart)
	auth.PUT("/cart/:productId", user.SetCartQuantity)
	auth.DELETE("/cart/:productId", user.RemoveFromCart)
	auth.DELETE("/cart", user.ClearCart)

	// Paiement
	auth.POST("/checkout", payement.Checkout)
	auth.POST("/verify-payment", payement.VerifyPayment)
}
