package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"healthkeeper/internal/repositories"
)

type ReminderNotifierInterface interface {
	// NotifyDueReminders mails each user a digest of their uncompleted
	// reminders due by now. Best-effort: failures are logged per user and
	// the sweep continues.
	NotifyDueReminders(ctx context.Context, now time.Time) int
}

type ReminderNotifier struct {
	users    repositories.UserRepository
	patients repositories.PatientRepository
	mail     IMailService
}

func NewReminderNotifier(users repositories.UserRepository, patients repositories.PatientRepository, mail IMailService) ReminderNotifierInterface {
	return &ReminderNotifier{users: users, patients: patients, mail: mail}
}

func (n *ReminderNotifier) NotifyDueReminders(ctx context.Context, now time.Time) int {
	users, err := n.users.ListActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reminder sweep: could not list users")
		return 0
	}

	today := now.Format("2006-01-02")
	notified := 0
	for _, user := range users {
		due, err := n.patients.DueReminders(ctx, user.ID.String(), today)
		if err != nil {
			log.Error().Err(err).Str("user_id", user.ID.String()).
				Msg("reminder sweep: lookup failed")
			continue
		}
		if len(due) == 0 {
			continue
		}
		if err := n.mail.SendReminderDigest(user.Email, user.FirstName, due); err != nil {
			log.Error().Err(err).Str("user_id", user.ID.String()).
				Msg("reminder sweep: mail failed")
			continue
		}
		notified++
	}
	return notified
}
