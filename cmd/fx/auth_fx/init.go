package auth_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"healthkeeper/internal/repositories"
	"healthkeeper/internal/services"
	"healthkeeper/pkg/middleware"
	"healthkeeper/pkg/utils"
)

var Module = fx.Provide(
	provideUserRepo, provideSessionRepo, provideAuditRepo,
	provideAuthService, provideAuthMiddleware)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideSessionRepo(db *gorm.DB) repositories.SessionRepository {
	return repositories.NewSessionRepository(db)
}

func provideAuditRepo(db *gorm.DB) repositories.AuditRepository {
	return repositories.NewAuditRepository(db)
}

func provideAuthService(users repositories.UserRepository, sessions repositories.SessionRepository,
	audit repositories.AuditRepository, tokens *utils.TokenManager) services.AuthServiceInterface {
	return services.NewAuthService(users, sessions, audit, tokens)
}

func provideAuthMiddleware(tokens *utils.TokenManager, users repositories.UserRepository,
	sessions repositories.SessionRepository) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(tokens, users, sessions)
}
