package router

import (
	"log"
	"net/http"
	"time"

	"journify/config"
	"journify/controllers"
	"journify/global"
	"journify/metrics"
	"journify/middleware"
	"journify/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the services the routes are served from.
type Deps struct {
	Entries        *services.EntryService
	Likes          *services.LikeService
	Students       *services.StudentService
	Extractor      services.GoalExtractor
	Voters         *services.VoterIdentifier
	TrustedProxies []string
	CorsOrigins    []string
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), metrics.Middleware())

	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		log.Printf("invalid trusted proxies %v: %v", deps.TrustedProxies, err)
	}

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(deps.CorsOrigins) == 0 || containsWildcard(deps.CorsOrigins) {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.CorsOrigins
	}
	r.Use(cors.New(corsCfg))

	entryCtl := controllers.NewEntryController(deps.Entries)
	likeCtl := controllers.NewLikeController(deps.Likes, deps.Voters)
	studentCtl := controllers.NewStudentController(deps.Students, deps.Extractor)

	r.GET("/metrics", metrics.Handler())
	r.GET("/healthz", func(ctx *gin.Context) { ctx.String(http.StatusOK, "ok") })

	api := r.Group("/api")
	{
		entries := api.Group("/entries")
		entries.GET("", entryCtl.ListEntries)
		entries.POST("", entryCtl.CreateEntry)
		entries.GET("/top", likeCtl.GetTopEntries)
		entries.GET("/:id", entryCtl.GetEntry)
		entries.DELETE("/:id", entryCtl.DeleteEntry)
		entries.POST("/:id/like", likeCtl.LikeEntry)
		entries.POST("/:id/unlike", likeCtl.UnlikeEntry)
		entries.GET("/:id/liked", likeCtl.GetLiked)
		entries.GET("/:id/likes", likeCtl.GetEntryLikes)

		students := api.Group("/students")
		students.POST("", studentCtl.CreateStudent)
		students.GET("/:id", studentCtl.GetStudent)
		students.POST("/:id/goals", studentCtl.AddStudentGoals)

		api.POST("/extract-goals", studentCtl.ExtractGoals)
	}

	return r
}

// SetupRouter wires the routes from the handles opened by config.InitConfig.
func SetupRouter() *gin.Engine {
	cfg := config.AppConfig
	switch cfg.App.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.App.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	store := services.NewJournalStore(global.Db)

	var ranker services.Ranker
	if global.RedisDB != nil {
		ranker = services.NewRedisRanker(global.RedisDB, cfg.Redis.RankKey)
	}
	var events services.Publisher
	if global.RabbitChannel != nil {
		events = services.NewAMQPPublisher(global.RabbitChannel, cfg.RabbitMQ.Queue)
	}

	return New(Deps{
		Entries:  services.NewEntryService(store, ranker),
		Likes:    services.NewLikeService(store, ranker, events),
		Students: services.NewStudentService(global.Db),
		Extractor: services.NewCompletionExtractor(services.CompletionConfig{
			APIKey:  cfg.Extraction.APIKey,
			Model:   cfg.Extraction.Model,
			BaseURL: cfg.Extraction.BaseURL,
			Timeout: cfg.Extraction.Timeout,
		}),
		Voters:         services.NewVoterIdentifier(cfg.Voter.Salt),
		TrustedProxies: cfg.App.TrustedProxies,
		CorsOrigins:    cfg.App.CorsOrigins,
	})
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
