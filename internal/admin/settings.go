package admin

import (
	"go.uber.org/zap"

	"github.com/MikeMC777/khattak-mart/internal/auth"
	"github.com/MikeMC777/khattak-mart/internal/result"
	"github.com/MikeMC777/khattak-mart/internal/validation"
)

// SettingsInput changes the admin login. An empty password keeps the current one.
// swagger:model SettingsInput
type SettingsInput struct {
	Username string `json:"username" validate:"min=3" msg:"Username must be at least 3 characters long."`
	Password string `json:"password,omitempty" validate:"omitempty,min=6" msg:"Password must be at least 6 characters long if provided."`
}

// Account is what the settings page shows.
type Account struct {
	Username string `json:"username"`
}

type Settings struct {
	creds  *auth.CredentialStore
	logger *zap.Logger
}

func NewSettings(creds *auth.CredentialStore, logger *zap.Logger) *Settings {
	return &Settings{creds: creds, logger: logger}
}

func (s *Settings) Current() result.Result[Account] {
	name, err := s.creds.Username()
	if err != nil {
		s.logger.Error("Failed to read credentials", zap.Error(err))
		return result.Fail[Account]("Failed to load settings.")
	}
	return result.OK("", Account{Username: name})
}

func (s *Settings) Update(in SettingsInput) result.Result[Account] {
	if err := validation.Struct(in); err != nil {
		return result.Invalid[Account](err)
	}
	if err := s.creds.Update(in.Username, in.Password); err != nil {
		s.logger.Error("Failed to update credentials", zap.Error(err))
		return result.Fail[Account]("Failed to update settings.")
	}
	s.logger.Info("Admin credentials updated", zap.Bool("password_changed", in.Password != ""))
	return result.OK("Settings updated successfully.", Account{Username: in.Username})
}
