package model

import (
	"net/http"
	"time"
)

// CachedResponse - ответ сети, сохраненный в бакете кэша
type CachedResponse struct {
	Status   int         `json:"status"`
	Header   http.Header `json:"header"`
	Body     []byte      `json:"body"`
	StoredAt time.Time   `json:"stored_at"`
}

// WorkerState - стадия жизненного цикла offline-воркера
type WorkerState int

const (
	WorkerInstalling WorkerState = iota
	WorkerInstalled
	WorkerActive
	WorkerSuperseded
	WorkerTerminated
)

func (s WorkerState) String() string {
	switch s {
	case WorkerInstalling:
		return "installing"
	case WorkerInstalled:
		return "installed"
	case WorkerActive:
		return "active"
	case WorkerSuperseded:
		return "superseded"
	case WorkerTerminated:
		return "terminated"
	}
	return "unknown"
}
