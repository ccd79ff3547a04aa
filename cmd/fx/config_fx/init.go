package config_fx

import (
	"go.uber.org/fx"

	"healthkeeper/internal/infra"
	"healthkeeper/pkg/logger"
	"healthkeeper/pkg/utils"
)

var Module = fx.Provide(
	provideConfig, provideTokenManager)

func provideConfig() (*infra.Config, error) {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

func provideTokenManager(cfg *infra.Config) (*utils.TokenManager, error) {
	return utils.NewTokenManager(cfg.JWTSecret,
		cfg.AccessTokenTTL, cfg.RememberMeTokenTTL, cfg.RefreshTokenTTL)
}
