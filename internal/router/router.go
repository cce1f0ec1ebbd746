package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskarena/backend/api/handler"
)

type Handlers struct {
	Auth        *apiHandler.AuthHandler
	Profile     *apiHandler.ProfileHandler
	Task        *apiHandler.TaskHandler
	Friend      *apiHandler.FriendHandler
	Leaderboard *apiHandler.LeaderboardHandler
	Health      *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/signin", handlers.Auth.SignIn)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))
	r.GET("/api/v1/profile/stats", authMiddleware(handlers.Profile.GetStats))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.POST("/api/v1/tasks/{id}/complete", authMiddleware(handlers.Task.CompleteTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	r.GET("/api/v1/friends", authMiddleware(handlers.Friend.GetFriends))
	r.POST("/api/v1/friends", authMiddleware(handlers.Friend.AddFriend))

	r.GET("/api/v1/leaderboard", authMiddleware(handlers.Leaderboard.GetLeaderboard))

	return r
}
