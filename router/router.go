package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/yeremiapane/little-lemon-api/config"
	"github.com/yeremiapane/little-lemon-api/controllers"
	"github.com/yeremiapane/little-lemon-api/kds"
	"github.com/yeremiapane/little-lemon-api/middlewares"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/services"
	"github.com/yeremiapane/little-lemon-api/utils"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	utils.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigins))
	r.Use(middlewares.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst).RateLimit(middlewares.ByClientIP))

	hub := kds.NewHub(services.NewUserService(db))

	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db, cfg.TaxRate)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db, hub)
	ratingCtrl := controllers.NewRatingController(db)
	groupCtrl := controllers.NewGroupController(db)
	adminCtrl := controllers.NewAdminController(db, cfg.TaxRate)

	auth := middlewares.AuthMiddleware(db)
	managerOnly := middlewares.RoleCheck(models.RoleManager)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// token issuance, throttled per ip
	authLimiter := middlewares.PerMinute(cfg.AuthRateLimitPerMinute).RateLimit(middlewares.ByClientIP)
	accounts := r.Group("/auth")
	{
		accounts.POST("/users/", authLimiter, userCtrl.Register)
		accounts.POST("/token/login/", authLimiter, userCtrl.Login)
		accounts.POST("/token/logout/", auth, userCtrl.Logout)
		accounts.GET("/users/me/", auth, userCtrl.GetProfile)
	}

	r.GET("/menu-items/:id/", menuCtrl.GetMenuItemByID)
	r.GET("/ratings/", ratingCtrl.GetRatings)

	r.GET("/throttle-check/",
		middlewares.PerMinute(cfg.AnonThrottlePerMinute).RateLimit(middlewares.ByClientIP),
		controllers.ThrottleCheck)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	r.GET("/throttle-check-auth/", auth,
		middlewares.PerMinute(cfg.UserThrottlePerMinute).RateLimit(middlewares.ByUser),
		controllers.ThrottleCheckAuth)

	r.GET("/ws/orders", middlewares.WebSocketAuthMiddleware(db),
		middlewares.RoleCheck(models.RoleManager, models.RoleDeliveryCrew),
		controllers.OrderFeedHandler(hub))

	api := r.Group("/")
	api.Use(auth)

	// MENU (writes are manager only)
	api.GET("/menu-items/", menuCtrl.GetAllMenuItems)
	api.POST("/menu-items/", managerOnly, menuCtrl.CreateMenuItem)
	api.PUT("/menu-items/:id/", managerOnly, menuCtrl.UpdateMenuItem)
	api.PATCH("/menu-items/:id/", managerOnly, menuCtrl.UpdateMenuItem)
	api.DELETE("/menu-items/:id/", managerOnly, menuCtrl.DeleteMenuItem)

	api.GET("/categories/", categoryCtrl.GetAllCategories)
	api.POST("/categories/", managerOnly, categoryCtrl.CreateCategory)

	// CART
	api.GET("/cart/", cartCtrl.GetCart)
	api.POST("/cart/", cartCtrl.AddToCart)
	api.DELETE("/cart/", cartCtrl.ClearCart)

	// ORDERS
	api.GET("/orders/", orderCtrl.GetAllOrders)
	api.POST("/orders/", orderCtrl.CreateOrder)
	api.GET("/orders/:id/", orderCtrl.GetOrderByID)
	api.PUT("/orders/:id/", orderCtrl.UpdateOrder)
	api.PATCH("/orders/:id/", orderCtrl.UpdateOrder)

	api.POST("/ratings/", ratingCtrl.CreateRating)

	// ROLE MEMBERSHIP (manager or admin to change)
	api.GET("/groups/:role/users/", groupCtrl.GetMembers)
	api.POST("/groups/:role/users/", managerOnly, groupCtrl.AddMember)
	api.DELETE("/groups/:role/users/:id/", managerOnly, groupCtrl.RemoveMember)

	api.GET("/stats/", managerOnly, adminCtrl.GetDashboardStats)

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, utils.NotFound("Not found."))
	})

	return r
}
