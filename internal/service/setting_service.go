package service

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/educonnect-backend/internal/model"
	"github.com/stemsi/educonnect-backend/internal/repository"
)

var (
	ErrPasswordFieldsRequired = errors.New("current, new and confirmation passwords are required")
	ErrPasswordMismatch       = errors.New("new password and confirmation differ")
	ErrPasswordTooShort       = errors.New("new password is too short")
)

// MinPasswordLength is the shortest accepted new password.
const MinPasswordLength = 6

// Settings is the settings page content.
type Settings struct {
	Notifications model.NotificationSettings `json:"notifications"`
	About         []model.AboutSection       `json:"about"`
}

var about = []model.AboutSection{
	{
		Title: "Nossa Missão",
		Body: "Proporcionar uma educação de excelência que forme cidadãos críticos, criativos e responsáveis, " +
			"preparando-os para os desafios do futuro através de uma abordagem pedagógica inovadora e humanizada.",
	},
	{
		Title: "Nossa Visão",
		Body: "Ser reconhecida como referência em educação fundamental, promovendo o desenvolvimento integral dos " +
			"alunos e fortalecendo os vínculos entre escola, família e comunidade.",
	},
	{
		Title: "Nossos Valores",
		Items: []string{
			"Excelência acadêmica e pedagógica",
			"Respeito à diversidade e inclusão",
			"Transparência e comunicação eficaz",
			"Desenvolvimento socioemocional",
			"Inovação educacional",
			"Parceria família-escola",
		},
	},
	{
		Title: "Abordagem Pedagógica",
		Body: "Nossa metodologia combina práticas pedagógicas tradicionais com inovações tecnológicas, priorizando " +
			"o aprendizado significativo e o desenvolvimento de competências essenciais para o século XXI.",
	},
}

type SettingService struct {
	settingRepo *repository.SettingRepository
	log         zerolog.Logger
}

func NewSettingService(settingRepo *repository.SettingRepository, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		log:         log.With().Str("component", "setting_service").Logger(),
	}
}

func (s *SettingService) Get() Settings {
	sections := make([]model.AboutSection, len(about))
	copy(sections, about)
	return Settings{Notifications: s.settingRepo.GetNotifications(), About: sections}
}

func (s *SettingService) UpdateNotifications(req model.UpdateNotificationsRequest) model.NotificationSettings {
	settings := model.NotificationSettings{
		Email: strings.TrimSpace(req.Email),
		Phone: strings.TrimSpace(req.Phone),
	}
	s.settingRepo.UpdateNotifications(settings)
	s.log.Info().Str("email", settings.Email).Msg("Notification contacts updated")
	return settings
}

// ChangePassword validates a password change. Nothing is persisted.
func (s *SettingService) ChangePassword(req model.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return ErrPasswordFieldsRequired
	}
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len([]rune(req.NewPassword)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
