package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"retail_orders_v1_202608/internal/controller"
	"retail_orders_v1_202608/internal/middleware"

	_ "retail_orders_v1_202608/docs"
)

// Controllers 路由需要的全部控制器
type Controllers struct {
	User    *controller.UserController
	Contact *controller.ContactController
	Catalog *controller.CatalogController
	Order   *controller.OrderController
	Partner *controller.PartnerController
}

// SetupRouter 注册所有路由
func SetupRouter(ctl *Controllers, auth *middleware.AuthManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Swagger 文档
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	// 每个请求先解析角色（匿名/用户/供应商），门槛在各分组上挂
	api.Use(auth.Identify())
	{
		// user 账号组。注册和登录对匿名开放
		user := api.Group("/user")
		{
			user.POST("/register", ctl.User.Register)
			user.POST("/register/confirm", ctl.User.ConfirmEmail)
			user.POST("/login", ctl.User.Login)

			authed := user.Group("", auth.RequireUser())
			{
				authed.GET("/details", ctl.User.GetDetails)
				authed.POST("/details", ctl.User.UpdateDetails)

				// POST/GET/DELETE /api/v1/user/contact
				authed.POST("/contact", ctl.Contact.Create)
				authed.GET("/contact", ctl.Contact.List)
				authed.DELETE("/contact", ctl.Contact.Delete)
			}
		}

		// 目录浏览。本系统的设计是登录后才可见
		catalog := api.Group("", auth.RequireUser())
		{
			catalog.GET("/categories", ctl.Catalog.ListCategories)
			catalog.GET("/shops", ctl.Catalog.ListShops)
			catalog.GET("/products", ctl.Catalog.ListProducts)
		}

		// 购物篮与订单
		orders := api.Group("", auth.RequireUser())
		{
			orders.GET("/basket", ctl.Order.GetBasket)
			orders.POST("/basket", ctl.Order.AddToBasket)
			orders.PUT("/basket", ctl.Order.UpdateBasket)
			orders.DELETE("/basket", ctl.Order.DeleteFromBasket)

			orders.GET("/order", ctl.Order.ListOrders)
			orders.POST("/order", ctl.Order.ConfirmOrder)
		}

		// partner 供应商组，只对 type=shop 开放
		partner := api.Group("/partner", auth.RequireUser(), auth.RequirePartner())
		{
			partner.POST("/update", ctl.Partner.UpdatePriceList)
			partner.GET("/state", ctl.Partner.GetState)
			partner.POST("/state", ctl.Partner.SetState)
			partner.GET("/orders", ctl.Partner.ListOrders)
		}
	}

	return r
}
