package handlers

import (
	"github.com/traintrack/traintrack/middleware/auth"
	"github.com/traintrack/traintrack/server"
	"github.com/traintrack/traintrack/services/jwt"
	"github.com/traintrack/traintrack/services/logging"
	"github.com/traintrack/traintrack/services/tokens"
	"github.com/traintrack/traintrack/services/user"
	"go.uber.org/fx"
)

func RegisterRoutes(
	srv *server.Server,
	logger *logging.Service,
	codec *jwt.Service,
	lifecycle *tokens.Service,
	users *user.Service,
	authHandler *AuthHandler,
	workoutHandler *WorkoutHandler,
	statsHandler *StatsHandler,
) {
	e := srv.Echo()
	e.Use(logging.RequestLogger(logger))

	requireUser := auth.RequireUser(codec, lifecycle, users)

	authGroup := e.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.GET("/me", authHandler.Me, requireUser)

	workoutGroup := e.Group("/workouts", requireUser)
	workoutGroup.POST("", workoutHandler.Create)
	workoutGroup.GET("", workoutHandler.List)
	workoutGroup.GET("/:id", workoutHandler.Get)
	workoutGroup.PUT("/:id", workoutHandler.Update)
	workoutGroup.DELETE("/:id", workoutHandler.Delete)

	statsGroup := e.Group("/stats", requireUser, auth.RequireAdmin())
	statsGroup.GET("", statsHandler.Get)
}

var Module = fx.Options(
	fx.Provide(NewAuthHandler),
	fx.Provide(NewWorkoutHandler),
	fx.Provide(NewStatsHandler),
	fx.Invoke(RegisterRoutes),
)
