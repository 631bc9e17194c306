package router

import (
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/application"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/container"
	pginfra "github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/infrastructure/postgres"
	handlers "github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/interface/http"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/router/modules"
)

func buildAuthModule() *modules.AuthModule {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := application.NewService(
		repo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetRabbitPub(),
		container.GetES(),
		cfg.ESAuthEventsIndex,
		cfg.MailSendEnabled,
	)

	handler := handlers.NewAuthHandler(service, container.GetLogger())
	return modules.NewAuthModule(handler, container.GetJWT())
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildAuthModule())
}
