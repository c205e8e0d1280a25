package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-system/brackets"
	"github.com/Dosada05/swiss-system/repositories"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed   = errors.New("validation failed")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrSamePlayer         = errors.New("winner and loser must be different players")
	ErrOddPlayerCount     = brackets.ErrOddPlayerCount

	// Ресурс не найден
	ErrPlayerNotFound = errors.New("player not found")

	// Ошибки хранилища
	ErrStorageUnavailable = errors.New("storage is unavailable")
	ErrIntegrity          = errors.New("data integrity violation")
	ErrConcurrentUpdate   = errors.New("concurrent update, retry the operation")

	ErrArchiveNotConfigured = errors.New("standings archive is not configured")
)

// handleRepositoryError - общий хелпер для ошибок репозитория
func handleRepositoryError(err error) error {
	// Ошибки BeginTx/Commit приходят от database/sql напрямую, минуя репозиторий.
	err = repositories.ClassifyError(err)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return fmt.Errorf("%w: %w", ErrPlayerNotFound, err)
	case errors.Is(err, repositories.ErrStorageUnavailable):
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	case errors.Is(err, repositories.ErrInvalidData):
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	case errors.Is(err, repositories.ErrIntegrity):
		return fmt.Errorf("%w: %w", ErrIntegrity, err)
	case errors.Is(err, repositories.ErrConcurrentUpdate):
		return fmt.Errorf("%w: %w", ErrConcurrentUpdate, err)
	default:
		return err
	}
}
