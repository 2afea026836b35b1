package storage

import (
	"context"
	"io"
)

// UploadResult описывает объект, записанный в хранилище.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader прячет S3-совместимое хранилище за минимальным интерфейсом:
// сервисам нужны только запись, удаление и публичная ссылка на объект.
type FileUploader interface {
	// Upload записывает объект по ключу и возвращает его атрибуты.
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Delete убирает объект; используется при замене аватара игрока.
	Delete(ctx context.Context, key string) error

	// GetPublicURL строит публичный URL объекта по его ключу.
	GetPublicURL(key string) string
}
