package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLoggerIsSafeForConcurrentSessions(t *testing.T) {
	const callers = 16

	loggers := make([]*Logger, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			loggers[i] = GetLogger()
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, loggers[0], loggers[i])
	}
}
