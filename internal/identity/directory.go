package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
	"github.com/sirupsen/logrus"
)

// querier - подмножество pgxpool.Pool, нужное справочнику
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresDirectory читает профили из таблицы users сервиса идентификации.
// Таблица принадлежит внешнему сервису, здесь она только читается.
type PostgresDirectory struct {
	db          querier
	countryCode string
	logger      *logrus.Logger
}

func NewPostgresDirectory(db querier, countryCode string, logger *logrus.Logger) service.ContactDirectory {
	return &PostgresDirectory{
		db:          db,
		countryCode: countryCode,
		logger:      logger,
	}
}

// GetProfile возвращает профиль пользователя или nil, если его нет
func (d *PostgresDirectory) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	log := d.logger.WithFields(logrus.Fields{
		"service": "identity",
		"method":  "GetProfile",
		"user_id": userID,
	})

	query := `
		SELECT
			user_id,
			COALESCE(name, ''),
			COALESCE(phone, ''),
			COALESCE(emergency_contacts::text, '')
		FROM users
		WHERE user_id = $1
		LIMIT 1;
	`
	profile := &models.UserProfile{}
	var rawContacts string
	err := d.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Phone,
		&rawContacts,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	parsed := ParseContacts(rawContacts)
	profile.EmergencyContacts = FilterContacts(parsed, d.countryCode)
	if dropped := len(parsed) - len(profile.EmergencyContacts); dropped > 0 {
		log.WithField("dropped", dropped).Warn("Skipped emergency contacts with invalid phone numbers")
	}

	log.WithField("contacts", len(profile.EmergencyContacts)).Debug("Resolved user profile")
	return profile, nil
}

// NullDirectory используется, когда хранилище пользователей не настроено
type NullDirectory struct{}

func (NullDirectory) GetProfile(context.Context, string) (*models.UserProfile, error) {
	return nil, nil
}
