// file: routes/router.go
package routes

import (
	"vibebuild/config"
	"vibebuild/controllers"
	"vibebuild/middlewares"
	"vibebuild/models"
	"vibebuild/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 组装服务层
	identity := services.NewIdentityService(db)
	hackathonSvc := services.NewHackathonService(db)
	enrollmentSvc := services.NewEnrollmentService(db)
	teamSvc := services.NewTeamService(db, enrollmentSvc)
	projectSvc := services.NewProjectService(db, teamSvc)
	scoringSvc := services.NewScoringService(db, rdb)
	resultSvc := services.NewResultService(db)
	aiSvc := services.NewAIService(cfg.GeminiAPIKey, cfg.GeminiModel)

	userCtrl := controllers.NewUserController(db)
	hackathonCtrl := controllers.NewHackathonController(identity, hackathonSvc)
	enrollmentCtrl := controllers.NewEnrollmentController(identity, enrollmentSvc)
	teamCtrl := controllers.NewTeamController(identity, teamSvc)
	projectCtrl := controllers.NewProjectController(identity, projectSvc)
	scoringCtrl := controllers.NewScoringController(identity, scoringSvc)
	resultCtrl := controllers.NewResultController(identity, resultSvc)
	aiCtrl := controllers.NewAIController(aiSvc)

	apiV1 := r.Group("/api/v1")
	{
		// --- 用户模块 ---
		usersPublic := apiV1.Group("/users")
		{
			usersPublic.POST("/register", userCtrl.Register)
			usersPublic.POST("/login", userCtrl.Login)
		}
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.PUT("/users/:id/verified", userCtrl.SetVerified)
		}

		// --- 黑客松模块 ---
		hackathonPublic := apiV1.Group("/hackathons")
		{
			hackathonPublic.GET("", hackathonCtrl.List)
			hackathonPublic.GET("/:id", hackathonCtrl.Get)
			hackathonPublic.GET("/:id/status", hackathonCtrl.Status)
			hackathonPublic.GET("/:id/results", resultCtrl.List)
		}
		hackathonAuth := apiV1.Group("/hackathons")
		hackathonAuth.Use(middlewares.JWTAuthMiddleware())
		{
			hackathonAuth.POST("", hackathonCtrl.Create)
			hackathonAuth.PUT("/:id", hackathonCtrl.Update)
			hackathonAuth.POST("/:id/publish", hackathonCtrl.Publish)
			hackathonAuth.POST("/:id/judges", hackathonCtrl.AppointJudge)
			hackathonAuth.DELETE("/:id/judges/:user_id", hackathonCtrl.RemoveJudge)

			// 报名
			hackathonAuth.POST("/:id/enroll", enrollmentCtrl.Register)
			hackathonAuth.GET("/:id/enrollments", enrollmentCtrl.ListByHackathon)

			// 队伍
			hackathonAuth.POST("/:id/teams", teamCtrl.Create)
			hackathonAuth.GET("/:id/teams", teamCtrl.ListByHackathon)

			// 作品
			hackathonAuth.PUT("/:id/project", projectCtrl.Upsert)
			hackathonAuth.POST("/:id/project/submit", projectCtrl.Submit)
			hackathonAuth.GET("/:id/project", projectCtrl.Mine)
			hackathonAuth.GET("/:id/projects", projectCtrl.ListSubmitted)

			// 排行与结果
			hackathonAuth.GET("/:id/leaderboard", scoringCtrl.Leaderboard)
			hackathonAuth.POST("/:id/results", resultCtrl.Publish)
		}

		// --- 报名审批 ---
		enrollmentRoutes := apiV1.Group("/enrollments")
		enrollmentRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			enrollmentRoutes.PUT("/:id/status", enrollmentCtrl.SetStatus)
			enrollmentRoutes.GET("/mine", enrollmentCtrl.ListMine)
		}

		// --- 队伍模块 ---
		teamRoutes := apiV1.Group("/teams")
		teamRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			teamRoutes.POST("/join", teamCtrl.Join)
			teamRoutes.POST("/:id/leave", teamCtrl.Leave)
			teamRoutes.PUT("/:id/leader", teamCtrl.TransferLeadership)
			teamRoutes.DELETE("/:id/members/:user_id", teamCtrl.KickMember)
		}

		// --- 评分模块 ---
		projectRoutes := apiV1.Group("/projects")
		projectRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			projectRoutes.POST("/:id/scores", scoringCtrl.RecordScore)
			projectRoutes.GET("/:id/scores", scoringCtrl.ProjectScores)
			projectRoutes.GET("/:id/total", scoringCtrl.ProjectTotal)
		}

		// --- AI 策划草稿 ---
		aiRoutes := apiV1.Group("/ai")
		aiRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			aiRoutes.POST("/hackathon-draft", aiCtrl.GenerateDraft)
		}
	}

	return r
}
