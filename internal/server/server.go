package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/nadiraputri/seruput/config"
	"github.com/nadiraputri/seruput/internal/data"
	"github.com/nadiraputri/seruput/internal/handlers"
	"github.com/nadiraputri/seruput/internal/logging"
	"github.com/nadiraputri/seruput/internal/middleware"
	"github.com/nadiraputri/seruput/internal/storage"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	log := logging.NewLogger("seruput", cfg.Environment)

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}
	log.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongo")

	repos := data.NewRepositories(storage.NewMongoStore(db), cfg.AssetRoot, log)

	r := gin.Default()

	setupRoutes(r, repos)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, repos *data.Repositories) {
	r.Use(middleware.RepositoryMiddleware(repos))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		drinkPublic := public.Group("/drinks")
		{
			drinkPublic.GET("", handlers.ListDrinks)
			drinkPublic.GET("/:id", handlers.GetDrink)
		}

		public.GET("/reviews/:id", handlers.GetReview)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/profile", handlers.GetProfile)
		protected.PUT("/profile", handlers.UpdateProfile)
		protected.GET("/reservations", handlers.GetReservations)
		protected.POST("/drinks/:id/reserve", handlers.ReserveDrink)

		reviewProtected := protected.Group("/reviews")
		{
			reviewProtected.POST("", handlers.CreateReview)
			reviewProtected.PUT("/:id", handlers.UpdateReview)
			reviewProtected.DELETE("/:id", handlers.DeleteReview)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.AdminOnlyMiddleware())
		{
			admin.GET("/users", handlers.ListUsers)
			admin.POST("/drinks", handlers.CreateDrink)
			admin.PUT("/drinks/:id/availability", handlers.SetDrinkAvailability)
			admin.POST("/reconcile", handlers.Reconcile)
		}
	}
}
