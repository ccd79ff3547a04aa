package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"healthkeeper/cmd/fx/auth_fx"
	"healthkeeper/cmd/fx/backup_fx"
	"healthkeeper/cmd/fx/cache_fx"
	"healthkeeper/cmd/fx/config_fx"
	"healthkeeper/cmd/fx/controllers_fx"
	"healthkeeper/cmd/fx/db_fx"
	"healthkeeper/cmd/fx/doctor_fx"
	"healthkeeper/cmd/fx/insight_fx"
	"healthkeeper/cmd/fx/mail_fx"
	"healthkeeper/cmd/fx/patient_fx"
	"healthkeeper/internal/api/controllers"
	"healthkeeper/internal/infra"
	"healthkeeper/internal/services"
	"healthkeeper/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		cache_fx.Module,
		auth_fx.Module,
		doctor_fx.Module,
		patient_fx.Module,
		backup_fx.Module,
		insight_fx.Module,
		mail_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
		fx.Invoke(StartScheduler),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *infra.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("port", cfg.Port).Msg("starting HTTP server")
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatal().Err(err).Msg("failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping HTTP server")
			return nil
		},
	})
}

// StartScheduler drives the backup schedule poll and the reminder mail
// sweep. Disabled when BACKUP_POLL_INTERVAL is zero; the /backups/check
// endpoint remains available for explicit polling either way.
func StartScheduler(lc fx.Lifecycle, cfg *infra.Config,
	backupService services.BackupServiceInterface,
	notifier services.ReminderNotifierInterface) {

	if cfg.BackupPollInterval <= 0 {
		return
	}

	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(cfg.BackupPollInterval)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case now := <-ticker.C:
						sweep := context.Background()
						if fired := backupService.CheckDue(sweep, now); fired > 0 {
							log.Info().Int("fired", fired).Msg("scheduled backups taken")
						}
						if sent := notifier.NotifyDueReminders(sweep, now); sent > 0 {
							log.Info().Int("notified", sent).Msg("reminder digests sent")
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})
}

func ProvideRouter(
	authMw *middleware.AuthMiddleware,
	authController *controllers.AuthController,
	patientController *controllers.PatientController,
	doctorController *controllers.DoctorController,
	backupController *controllers.BackupController,
	insightController *controllers.InsightController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	RegisterRoutes(r, authMw, authController, patientController, doctorController,
		backupController, insightController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	authMw *middleware.AuthMiddleware,
	authController *controllers.AuthController,
	patientController *controllers.PatientController,
	doctorController *controllers.DoctorController,
	backupController *controllers.BackupController,
	insightController *controllers.InsightController) {

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/refresh", authController.Refresh)
	auth.POST("/logout", authMw.RequireAuth(), authController.Logout)
	auth.GET("/profile", authMw.RequireAuth(), authController.Profile)
	auth.PUT("/profile", authMw.RequireAuth(), authController.UpdateProfile)
	auth.PUT("/change-password", authMw.RequireAuth(), authController.ChangePassword)

	patients := api.Group("/patients", authMw.RequireAuth())
	patients.GET("", patientController.List)
	patients.POST("", patientController.Create)
	patients.GET("/:id", patientController.Get)
	patients.PUT("/:id", patientController.Update)
	patients.DELETE("/:id", patientController.Delete)
	patients.POST("/:id/records", patientController.AddRecord)
	patients.PUT("/:id/records/:recordId", patientController.UpdateRecord)
	patients.DELETE("/:id/records/:recordId", patientController.DeleteRecord)
	patients.POST("/:id/records/:recordId/documents", patientController.AddDocument)
	patients.DELETE("/:id/records/:recordId/documents/:documentId", patientController.DeleteDocument)
	patients.POST("/:id/medications", patientController.AddMedication)
	patients.DELETE("/:id/medications/:medicationId", patientController.DeleteMedication)
	patients.POST("/:id/reminders", patientController.AddReminder)
	patients.PUT("/:id/reminders/:reminderId/complete", patientController.CompleteReminder)
	patients.DELETE("/:id/reminders/:reminderId", patientController.DeleteReminder)

	// The doctor directory is shared reference data; reads only need a
	// best-effort identity, mutations need an admin or doctor role.
	doctors := api.Group("/doctors")
	doctors.GET("", authMw.OptionalAuth(), doctorController.List)
	doctors.GET("/:id", authMw.OptionalAuth(), doctorController.Get)
	doctorAdmin := doctors.Group("", authMw.RequireAuth(), middleware.RoleMiddleware("admin", "doctor"))
	doctorAdmin.POST("", doctorController.Create)
	doctorAdmin.PUT("/:id", doctorController.Update)
	doctorAdmin.DELETE("/:id", doctorController.Delete)

	backups := api.Group("/backups", authMw.RequireAuth())
	backups.POST("/export", backupController.Export)
	backups.POST("/restore", backupController.Restore)
	backups.GET("/snapshots", backupController.Snapshots)
	backups.GET("/schedule", backupController.GetSchedule)
	backups.PUT("/schedule", backupController.SetSchedule)
	backups.POST("/check", backupController.Check)

	ai := api.Group("/ai", authMw.RequireAuth())
	ai.POST("/insights/:patientId", insightController.GenerateInsights)

	api.GET("/records/search", authMw.RequireAuth(), insightController.SearchRecords)
}
