package server

import (
	"bookclub-service/internal/book"
	"bookclub-service/internal/category"
	"bookclub-service/internal/club"
	"bookclub-service/internal/config"
	"bookclub-service/internal/member"
	"bookclub-service/internal/middleware"
	"bookclub-service/internal/results"
	"bookclub-service/internal/voting"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers and returns the
// configured gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	clubRepo := club.NewClubRepository(db)
	bookRepo := book.NewBookRepository(db)
	categoryRepo := category.NewCategoryRepository(db)
	votingRepo := voting.NewVotingRepository(db)
	resultsRepo := results.NewResultsRepository(db)
	memberRepo := member.NewMemberRepository(db)

	clubService := club.NewClubService(clubRepo)
	bookService := book.NewBookService(bookRepo)
	categoryService := category.NewCategoryService(categoryRepo)
	votingService := voting.NewVotingService(votingRepo, categoryRepo, bookRepo)
	memberService := member.NewMemberService(memberRepo, votingService)
	resultsService := results.NewResultsService(resultsRepo, categoryRepo, memberService)

	clubHandler := club.NewClubHandler(clubService)
	bookHandler := book.NewBookHandler(bookService, clubService)
	categoryHandler := category.NewCategoryHandler(categoryService, clubService)
	votingHandler := voting.NewVotingHandler(votingService, clubService)
	resultsHandler := results.NewResultsHandler(resultsService, clubService)
	memberHandler := member.NewMemberHandler(memberService, clubService)
	configHandler := NewConfigHandler(clubService, bookService, categoryService)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(cors.New(corsConfig(cfg.CORS)))

	// Swagger documentation
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check route
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.Admin.Secret))

	clubHandler.RegisterRoutes(admin)
	bookHandler.RegisterRoutes(admin)
	categoryHandler.RegisterRoutes(admin)
	votingHandler.RegisterRoutes(api)
	resultsHandler.RegisterRoutes(admin, api)
	memberHandler.RegisterRoutes(admin, api)
	configHandler.RegisterRoutes(admin, api)

	return engine
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "X-Admin-Secret")

	allowAll := len(cfg.AllowOrigins) == 0
	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		c.AllowAllOrigins = true
		return c
	}

	c.AllowOrigins = cfg.AllowOrigins
	c.AllowCredentials = true
	return c
}
