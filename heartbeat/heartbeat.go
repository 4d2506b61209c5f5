// Package heartbeat periodically logs that the API is alive along with its uptime.
package heartbeat

import (
	"fmt"
	"platform_api/util"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// Heartbeat runs a single cron entry that logs the process uptime
type Heartbeat struct {
	cron     *cron.Cron
	entryID  cron.EntryID
	schedule string
	beats    atomic.Int64
}

// Start schedules the heartbeat. Seconds-resolution cron expressions
// ("*/30 * * * * *") and descriptors ("@every 1m", "@hourly") are accepted.
func Start(schedule string) (*Heartbeat, error) {
	if schedule == "" {
		return nil, serr.New("heartbeat schedule is empty")
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return nil, serr.Wrap(err, "invalid heartbeat schedule: "+schedule)
	}

	hb := &Heartbeat{
		cron:     cron.New(cron.WithParser(parser)),
		schedule: schedule,
	}
	hb.entryID = hb.cron.Schedule(sched, cron.FuncJob(hb.beat))
	hb.cron.Start()

	logger.Info("Heartbeat started", "schedule", schedule)
	return hb, nil
}

func (hb *Heartbeat) beat() {
	n := hb.beats.Add(1)
	logger.Info("heartbeat",
		"uptime", fmt.Sprintf("%.3f", util.Uptime()),
		"beat", fmt.Sprint(n),
	)
}

// Beats is the number of heartbeats logged so far
func (hb *Heartbeat) Beats() int64 {
	return hb.beats.Load()
}

// Next is when the next heartbeat fires
func (hb *Heartbeat) Next() time.Time {
	return hb.cron.Entry(hb.entryID).Next
}

// Stop halts the scheduler, waiting up to grace for an in-flight beat.
// Its signature matches shutdown.HookFunc.
func (hb *Heartbeat) Stop(grace time.Duration) error {
	stopCtx := hb.cron.Stop()

	select {
	case <-stopCtx.Done():
		logger.Info("Heartbeat stopped", "beats", fmt.Sprint(hb.Beats()))
		return nil
	case <-time.After(grace):
		return serr.New("heartbeat did not stop within grace period")
	}
}
