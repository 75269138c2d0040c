// Package worker содержит фоновые обработчики Redis Streams и их общий жизненный цикл.
package worker

import (
	"context"
)

// Worker - фоновый обработчик, управляемый WorkerManager
type Worker interface {
	// Start блокируется до остановки воркера или отмены контекста
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру завершиться; повторный вызов безопасен
	Stop() error

	Name() string
}
