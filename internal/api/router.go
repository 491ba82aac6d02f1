package api

import (
	"net/http" // HTTP status codes

	"payment_tracker/internal/middleware" // Auth and logging middleware
	"payment_tracker/internal/service"    // Services

	"github.com/gin-gonic/gin" // Gin web framework
)

// NewRouter wires every route onto a gin engine
func NewRouter(auth *service.AuthService, payments *service.PaymentService, jwtSecret string) *gin.Engine {
	r := gin.New()                                    // Gin router instance
	r.Use(middleware.RequestLogger(), gin.Recovery()) // Log every request, survive panics

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"}) // Liveness probe
	})

	// Auth routes
	authGroup := r.Group("/auth")
	authGroup.POST("/register", RegisterHandler(auth))                                       // Registration endpoint
	authGroup.POST("/login", LoginHandler(auth))                                             // Login endpoint
	authGroup.GET("/profile", middleware.JWTAuthMiddleware(jwtSecret), ProfileHandler(auth)) // Profile endpoint

	// Payment routes (protected by JWT)
	paymentGroup := r.Group("/payments")
	paymentGroup.Use(middleware.JWTAuthMiddleware(jwtSecret)) // Every payment route needs a token
	paymentGroup.POST("", CreatePaymentHandler(payments))     // Create payment endpoint
	paymentGroup.GET("", ListPaymentsHandler(payments))       // List payments endpoint
	paymentGroup.GET("/stats", StatsHandler(payments))        // Stats endpoint, registered before :id
	paymentGroup.GET("/:id", GetPaymentHandler(payments))     // Single payment endpoint

	return r
}
