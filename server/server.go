package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"roomhub/cache"
	"roomhub/confs"
	"roomhub/db"
	"roomhub/handlers"
	httpHandler "roomhub/handlers/http"
	"roomhub/repositories"
	"roomhub/services"
	"roomhub/usecases"
)

type Server struct {
	app *gin.Engine
	db  db.Database
}

func NewServer(database db.Database) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
	}
}

func (s *Server) Start() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // Allow all origins for development
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	topicRepo := repositories.NewTopicPgRepository(s.db)
	roomRepo := repositories.NewRoomPgRepository(s.db)
	sessionRepo := repositories.NewSessionPgRepository(s.db)

	// Session cache plus background sweeper for expired sessions
	sessionCache := cache.NewSessionCache()
	sweeper := services.NewSessionSweeper(sessionRepo, sessionCache)
	sweeper.Start()

	// Initialize use cases
	authUseCase := usecases.NewAuthUseCase(userRepo, sessionRepo, sessionCache, confs.SessionTTL())
	roomUseCase := usecases.NewRoomUseCase(roomRepo, topicRepo)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUseCase)
	roomHandler := httpHandler.NewRoomHandler(roomUseCase)
	sessionAdminHandler := handlers.NewSessionAdminHandler(sweeper)

	// Every request resolves its session cookie to a user (or anonymous)
	s.app.Use(httpHandler.CurrentUser(authUseCase))

	// Public routes
	s.app.GET("/", roomHandler.Home)
	s.app.GET("/room/:id", roomHandler.GetRoom)
	s.app.GET("/login", authHandler.LoginForm)
	s.app.POST("/login", authHandler.Login)
	s.app.GET("/register", authHandler.RegisterForm)
	s.app.POST("/register", authHandler.Register)
	s.app.GET("/logout", authHandler.Logout)
	s.app.POST("/logout", authHandler.Logout)

	// Routes that redirect anonymous callers to /login
	authed := s.app.Group("/", httpHandler.RequireLogin())
	{
		authed.GET("/room/new", roomHandler.NewRoomForm)
		authed.POST("/room/new", roomHandler.CreateRoom)
		authed.GET("/room/:id/update", roomHandler.EditRoomForm)
		authed.POST("/room/:id/update", roomHandler.UpdateRoom)
		authed.GET("/room/:id/delete", roomHandler.ConfirmDeleteRoom)
		authed.POST("/room/:id/delete", roomHandler.DeleteRoom)

		authed.GET("/sessions/stats", sessionAdminHandler.Stats)
		authed.POST("/sessions/sweep", sessionAdminHandler.Sweep)
	}

	if err := s.app.Run(confs.ServerAddress()); err != nil {
		panic(err)
	}
}
