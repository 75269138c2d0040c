package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamNarrativeRequested = "stream:narrative:requested"
)

// JobStatus - статус фоновой интерпретации
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// NarrativeJobEvent - запрос на интерпретацию, публикуемый в стрим.
// Заполняется либо Indicators, либо Scenario+Challenge.
type NarrativeJobEvent struct {
	JobID      uuid.UUID `json:"job_id"`
	Indicators []string  `json:"indicators,omitempty"`
	Scenario   string    `json:"scenario,omitempty"`
	Challenge  string    `json:"challenge,omitempty"`
	Selection  string    `json:"selection,omitempty"`
}

// IsChallenge проверяет, относится ли задача к вызову сценария
func (e *NarrativeJobEvent) IsChallenge() bool {
	return e.Scenario != "" && e.Challenge != ""
}

// NarrativeJob - состояние фоновой интерпретации
type NarrativeJob struct {
	JobID          uuid.UUID `json:"job_id"`
	Status         JobStatus `json:"status"`
	Interpretation string    `json:"interpretation,omitempty"`
	Error          string    `json:"error,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Interpretation - ответ языковой модели
type Interpretation struct {
	Prompt string `json:"-"`
	Text   string `json:"text"`
	Cached bool   `json:"cached"`
}

// IndicatorSelection - результат подбора индикаторов по инструкции
type IndicatorSelection struct {
	Indicators []string `json:"indicators"`
	Rationale  string   `json:"rationale"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
