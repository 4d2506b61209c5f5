package shutdown

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rohanthewiz/logger"
)

const gracePeriod = 20 * time.Second

// HookFunc is given the grace period it should finish within
type HookFunc func(grace time.Duration) error

type shutdownHooks struct {
	hooks []HookFunc
	lock  sync.Mutex
}

var hooks shutdownHooks

func RegisterHook(fn HookFunc) {
	hooks.lock.Lock()
	defer hooks.lock.Unlock()
	hooks.hooks = append(hooks.hooks, fn)
	logger.F("Registered shutdown hook: %d", len(hooks.hooks))
}

// InitShutdownService waits in the background for SIGINT or SIGTERM,
// runs the registered hooks, then closes done so the app can exit.
func InitShutdownService(done chan struct{}) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer close(done)

		sig := <-sigChan
		logger.Info("Received shutdown signal", "signal", sig.String())
		runHooks(gracePeriod)
	}()
}

// runHooks runs every hook concurrently and waits for all of them
func runHooks(grace time.Duration) {
	hooks.lock.Lock()
	fns := make([]HookFunc, len(hooks.hooks))
	copy(fns, hooks.hooks)
	hooks.lock.Unlock()

	logger.Info("Running shutdown hooks", "count", fmt.Sprint(len(fns)), "gracePeriod", grace.String())

	wg := sync.WaitGroup{}
	for i, hook := range fns {
		wg.Add(1)
		go func(it int, fn HookFunc) {
			defer wg.Done()
			if err := fn(grace); err != nil {
				logger.LogErr(err, "Shutdown hook failed", "hook", fmt.Sprint(it))
				return
			}
			logger.F("Shutdown hook %d completed", it)
		}(i, hook)
	}
	wg.Wait()
}
