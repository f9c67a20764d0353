package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/controller"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
	"retail_orders_v1_202608/internal/router"
	"retail_orders_v1_202608/internal/service"
	"retail_orders_v1_202608/internal/task"
	"retail_orders_v1_202608/pkg/database"
)

func main() {
	// .env 没有也不算错，线上直接用环境变量
	_ = godotenv.Load()

	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers, deps.Auth)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Auth        *middleware.AuthManager
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User        repository.UserRepository
	Token       repository.ConfirmTokenRepository
	Contact     repository.ContactRepository
	Shop        repository.ShopRepository
	Category    repository.CategoryRepository
	ProductInfo repository.ProductInfoRepository
	Order       repository.OrderRepository
	Import      repository.PriceListImportRepository
}

// Services 服务集合
type Services struct {
	Mail    *service.MailService
	User    *service.UserService
	Contact *service.ContactService
	Catalog *service.CatalogService
	Order   *service.OrderService
	Partner *service.PartnerService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DB_DSN", "")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "orders_admin"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "retail_orders"),
			getEnv("DB_PORT", "5432"),
		)
	}

	return database.InitDB(dsn, getEnv("DB_DEBUG", "") == "1",
		// Account
		&model.User{}, &model.ConfirmEmailToken{}, &model.Contact{},
		// Catalog
		&model.Shop{}, &model.Category{}, &model.Product{},
		&model.ProductInfo{}, &model.ProductParameter{},
		// Order
		&model.Order{}, &model.OrderItem{},
		// Audit
		&model.PriceListImport{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:        repository.NewUserRepository(db),
		Token:       repository.NewConfirmTokenRepository(db),
		Contact:     repository.NewContactRepository(db),
		Shop:        repository.NewShopRepository(db),
		Category:    repository.NewCategoryRepository(db),
		ProductInfo: repository.NewProductInfoRepository(db),
		Order:       repository.NewOrderRepository(db),
		Import:      repository.NewPriceListImportRepository(db),
	}

	// -------- 认证 --------
	auth := middleware.NewAuthManager(&middleware.TokenConfig{
		SecretKey: getEnv("TOKEN_SECRET", middleware.DefaultTokenConfig().SecretKey),
		TokenTTL:  7 * 24 * time.Hour,
		Issuer:    "retail-orders",
	}, repos.User)

	// -------- 邮件 --------
	mail := service.NewMailService(&service.MailConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     getEnv("SMTP_PORT", "587"),
		From:     getEnv("SMTP_FROM", "no-reply@retail-orders.local"),
		Username: getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
	})

	// -------- 价目表下载客户端 --------
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2)

	// -------- 业务服务 --------
	services := &Services{
		Mail:    mail,
		User:    service.NewUserService(repos.User, repos.Token, mail, auth),
		Contact: service.NewContactService(repos.Contact),
		Catalog: service.NewCatalogService(repos.Category, repos.Shop, repos.ProductInfo),
		Order:   service.NewOrderService(repos.Order, repos.ProductInfo, repos.Contact, repos.User, mail),
		Partner: service.NewPartnerService(repos.Shop, repos.Category, repos.ProductInfo, repos.Import, client),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		User:    controller.NewUserController(services.User),
		Contact: controller.NewContactController(services.Contact),
		Catalog: controller.NewCatalogController(services.Catalog),
		Order:   controller.NewOrderController(services.Order),
		Partner: controller.NewPartnerController(services.Partner, services.Order),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Auth:        auth,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 启动定时任务
func initTasks(deps *Dependencies) {
	cleanup := task.NewCleanupTask(deps.Repos.Token, deps.Repos.Import)
	cleanup.Start()
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 10 秒
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
