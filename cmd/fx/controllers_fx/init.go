package controllers_fx

import (
	"go.uber.org/fx"

	"healthkeeper/internal/api/controllers"
)

var Module = fx.Provide(
	controllers.NewAuthController,
	controllers.NewPatientController,
	controllers.NewDoctorController,
	controllers.NewBackupController,
	controllers.NewInsightController,
)
