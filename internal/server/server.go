package server

import (
	"context"
	"net/http"

	"github.com/prataprai7/gymbooking-sub000/internal/auth"
	"github.com/prataprai7/gymbooking-sub000/internal/booking"
	"github.com/prataprai7/gymbooking-sub000/internal/config"
	"github.com/prataprai7/gymbooking-sub000/internal/email"
	"github.com/prataprai7/gymbooking-sub000/internal/gym"
	"github.com/prataprai7/gymbooking-sub000/internal/membership"
	"github.com/prataprai7/gymbooking-sub000/internal/review"
	"github.com/prataprai7/gymbooking-sub000/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	gymRepo := gym.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	membershipRepo := membership.NewRepository(db)
	reviewRepo := review.NewRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))
	gymHandler := gym.NewHandler(gym.NewService(gymRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, gymRepo, userRepo, emailService))
	membershipHandler := membership.NewHandler(membership.NewService(membershipRepo, gymRepo, userRepo, emailService))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, gymRepo))

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	router.GET("/gyms", gymHandler.ListGyms)
	router.GET("/gyms/:gymID", gymHandler.GetGym)
	router.GET("/gyms/:gymID/reviews", reviewHandler.ListByGym)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me", userHandler.UpdateMe)

		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.GET("/bookings/:bookingID", bookingHandler.GetBooking)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)
		protected.PUT("/bookings/:bookingID/status", bookingHandler.UpdateStatus)

		protected.POST("/memberships", membershipHandler.Create)
		protected.GET("/memberships", membershipHandler.ListMy)
		protected.GET("/memberships/expiring", membershipHandler.ListExpiring)
		protected.PUT("/memberships/:membershipID/status", membershipHandler.UpdateStatus)
		protected.POST("/memberships/:membershipID/cancel", membershipHandler.Cancel)

		protected.POST("/reviews", reviewHandler.Create)
		protected.PUT("/reviews/:reviewID", reviewHandler.Update)
		protected.DELETE("/reviews/:reviewID", reviewHandler.Delete)
	}

	owner := router.Group("/owner")
	owner.Use(authMiddleware, auth.RequireRole(auth.RoleGymOwner, auth.RoleAdmin))
	{
		owner.POST("/gyms", gymHandler.CreateGym)
		owner.PUT("/gyms/:gymID", gymHandler.UpdateGym)
		owner.GET("/gyms/:gymID/bookings", bookingHandler.ListBookingsByGym)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.PUT("/gyms/:gymID/verify", gymHandler.SetVerified)
		admin.PUT("/gyms/:gymID/active", gymHandler.SetActive)
		admin.PUT("/users/:userID/deactivate", userHandler.Deactivate)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
