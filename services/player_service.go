package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atlpoker/poker-backend/models"
	"github.com/atlpoker/poker-backend/repositories"
	"github.com/atlpoker/poker-backend/storage"
)

type PlayerService interface {
	ListPlayers(ctx context.Context, input ListPlayersInput) ([]models.Player, error)
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	UploadPlayerAvatar(ctx context.Context, playerID int, file io.Reader, contentType string) (*models.Player, error)
}

type ListPlayersInput struct {
	Query *string
	Limit int
}

type CreatePlayerInput struct {
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader // nil, если хранилище не сконфигурировано
}

func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
	}
}

func (s *playerService) ListPlayers(ctx context.Context, input ListPlayersInput) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx, repositories.ListPlayersFilter{
		Query: input.Query,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	player := &models.Player{
		DisplayName: name,
		AvatarURL:   input.AvatarURL,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, fmt.Errorf("%w: %q", ErrPlayerNameConflict, name)
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (s *playerService) UploadPlayerAvatar(ctx context.Context, playerID int, file io.Reader, contentType string) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrAvatarStorageUnavailable
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", playerID, err)
	}

	key := fmt.Sprintf("players/%d/avatar%s", playerID, extensionForContentType(contentType))

	// Смена типа файла меняет ключ; старый объект иначе остался бы в бакете.
	if player.AvatarURL != nil {
		if oldKey := s.avatarKeyForURL(playerID, *player.AvatarURL); oldKey != "" && oldKey != key {
			// Неудачное удаление не блокирует загрузку нового аватара.
			_ = s.uploader.Delete(ctx, oldKey)
		}
	}

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar for player %d: %w", playerID, err)
	}

	avatarURL := s.uploader.GetPublicURL(result.Key)
	if err := s.playerRepo.UpdateAvatarURL(ctx, playerID, avatarURL); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to store avatar url for player %d: %w", playerID, err)
	}

	player.AvatarURL = &avatarURL
	return player, nil
}

var avatarExtensions = []string{".png", ".jpg", ".gif", ".webp", ""}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

// avatarKeyForURL восстанавливает ключ объекта по сохранённому публичному URL.
// Возможные ключи перечислимы: players/{id}/avatar плюс известное расширение.
func (s *playerService) avatarKeyForURL(playerID int, avatarURL string) string {
	for _, ext := range avatarExtensions {
		key := fmt.Sprintf("players/%d/avatar%s", playerID, ext)
		if s.uploader.GetPublicURL(key) == avatarURL {
			return key
		}
	}
	return ""
}
