package repository

import "context"

// NarrativeClient определяет методы для работы с языковой моделью
type NarrativeClient interface {
	// Complete отправляет промпт и возвращает текст ответа
	Complete(ctx context.Context, prompt string) (string, error)
}
