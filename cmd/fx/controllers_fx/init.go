package controllers_fx

import (
	"go.uber.org/fx"

	"adwiz/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewRelayController),
	fx.Provide(controllers.NewWizardController))
