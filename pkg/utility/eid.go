package utility

import (
	"sync"

	"github.com/google/uuid"
)

// ExecutionID identifies one run of the process. Every sample flowing through
// a pipeline carries it, so replays can be told apart in logs.
type ExecutionID = uuid.UUID

var (
	executionID     ExecutionID
	executionIDOnce sync.Once
	executionIDMu   sync.RWMutex
)

func GetExecutionID() ExecutionID {
	executionIDOnce.Do(func() {
		executionID = uuid.Must(uuid.NewV7())
	})

	executionIDMu.RLock()
	defer executionIDMu.RUnlock()
	return executionID
}

func ResetExecutionID() ExecutionID {
	executionIDMu.Lock()
	defer executionIDMu.Unlock()

	executionID = uuid.Must(uuid.NewV7())
	return executionID
}
