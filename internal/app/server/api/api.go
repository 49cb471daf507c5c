//GET    /api/health             # Liveness probe (public)
//GET    /workouts               # List workouts (auth)
//POST   /workouts               # Create workout (auth)
//PUT    /workouts/{id}          # Update workout (auth)
//DELETE /workouts/{id}          # Delete workout (auth)
//GET    /exercises?workoutId=   # List exercises (auth)
//POST   /exercises              # Create exercise (auth)
//PUT    /exercises              # Bulk update exercises (auth)
//DELETE /exercises/{id}         # Delete exercise (auth)
//GET    /weight /bodyfat        # Measurements by date (auth)
//POST   /ai/generate-workout    # Generate a plan (auth)

package api

import (
	exerciseAPI "fitlog/internal/app/server/api/http/exercise"
	healthAPI "fitlog/internal/app/server/api/http/health"
	measurementAPI "fitlog/internal/app/server/api/http/measurement"
	"fitlog/internal/app/server/api/http/middleware"
	"fitlog/internal/app/server/api/http/middleware/auth"
	"fitlog/internal/app/server/api/http/middleware/logger"
	planAPI "fitlog/internal/app/server/api/http/plan"
	workoutAPI "fitlog/internal/app/server/api/http/workout"
	"fitlog/internal/app/server/config"
	"fitlog/internal/domain/aiplan"
	"fitlog/internal/domain/exercise"
	"fitlog/internal/domain/measurement"
	"fitlog/internal/domain/token"
	"fitlog/internal/domain/workout"
	"fitlog/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health   *healthAPI.Handler
	Workout  *workoutAPI.Handler
	Exercise *exerciseAPI.Handler
	Weight   *measurementAPI.Handler
	BodyFat  *measurementAPI.Handler
	Plan     *planAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.Register.
func New(cfg *config.Config, storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("FitLog API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(cfg, storage, log)
	h.Health.SetupRoutes(API)
	h.Workout.SetupRoutes(API)
	h.Exercise.SetupRoutes(API)
	h.Weight.SetupRoutes(API)
	h.BodyFat.SetupRoutes(API)
	h.Plan.SetupRoutes(API)

	return mux
}

func handlers(cfg *config.Config, storage *postgres.Storage, log *slog.Logger) *Handlers {
	tokenRepo := postgres.NewTokenRepository(storage.Pool(), log)
	tokenService := token.NewService(tokenRepo, log)
	authMW := auth.New(tokenService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	workoutRepo := postgres.NewWorkoutRepository(storage.Pool(), log)
	workoutService := workout.NewService(workoutRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	workoutHandler := workoutAPI.NewHandler(workoutService, log, middlewares.GetAllAndClear())

	exerciseRepo := postgres.NewExerciseRepository(storage.Pool(), log)
	exerciseService := exercise.NewService(exerciseRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	exerciseHandler := exerciseAPI.NewHandler(exerciseService, log, middlewares.GetAllAndClear())

	measurementRepo := postgres.NewMeasurementRepository(storage.Pool(), log)
	measurementService := measurement.NewService(measurementRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	weightHandler := measurementAPI.NewHandler(measurement.KindWeight, measurementService, log, middlewares.GetAllAndClear())
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	bodyFatHandler := measurementAPI.NewHandler(measurement.KindBodyFat, measurementService, log, middlewares.GetAllAndClear())

	upstream := aiplan.NewHTTPUpstream(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
	planService := aiplan.NewService(upstream, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	planHandler := planAPI.NewHandler(planService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:   healthHandler,
		Workout:  workoutHandler,
		Exercise: exerciseHandler,
		Weight:   weightHandler,
		BodyFat:  bodyFatHandler,
		Plan:     planHandler,
	}
}
