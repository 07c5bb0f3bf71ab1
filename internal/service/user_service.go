package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/model"
)

type UserService struct {
	users  UserStore
	logger *zap.Logger
}

func NewUserService(users UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// RegisterOrUpdate создаёт пользователя при первом /start или обновляет
// имя/username существующего
func (s *UserService) RegisterOrUpdate(ctx context.Context, telegramID int64, username, fullName string) (*model.User, error) {
	user := &model.User{
		TelegramID: telegramID,
		Username:   username,
		FullName:   fullName,
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Debug("User registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
	)

	return user, nil
}

// GetByTelegramID возвращает пользователя по Telegram ID (nil, если нет)
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.users.GetByTelegramID(ctx, telegramID)
}
