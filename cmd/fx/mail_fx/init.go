package mail_fx

import (
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"healthkeeper/internal/infra"
	"healthkeeper/internal/repositories"
	"healthkeeper/internal/services"
)

var Module = fx.Provide(
	provideMailService, provideReminderNotifier)

func provideMailService(cfg *infra.Config) services.IMailService {
	mail, err := services.NewSMTPMailService(services.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		AppName:  "Family Health Keeper",
	})
	if err != nil {
		log.Warn().Err(err).Msg("smtp not configured, reminder mail disabled")
		return services.NoopMailService{}
	}
	return mail
}

func provideReminderNotifier(users repositories.UserRepository, patients repositories.PatientRepository,
	mail services.IMailService) services.ReminderNotifierInterface {
	return services.NewReminderNotifier(users, patients, mail)
}
