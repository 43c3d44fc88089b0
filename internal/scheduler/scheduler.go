package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"CoinSentinel/internal/trader"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron    *cron.Cron
	Session *trader.Session
}

// NewScheduler creates a new Scheduler.
func NewScheduler(session *trader.Session) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Session: session,
	}
}

// RegisterAll registers the decision cycle and the daily summary task.
// A cycle that is still running when the next tick fires is skipped, not
// queued.
func (s *Scheduler) RegisterAll(pollInterval time.Duration, summaryCron string) error {
	spec := fmt.Sprintf("@every %s", pollInterval)
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).
		Then(cron.FuncJob(s.Session.Cycle))
	if _, err := s.Cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("register decision cycle: %w", err)
	}
	if summaryCron != "" {
		if _, err := s.Cron.AddFunc(summaryCron, s.Session.DailySummary); err != nil {
			return fmt.Errorf("register daily summary: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "查看行情", "/status":
		return s.Session.StatusMessage()
	case "查看账户", "/account":
		return s.Session.AccountMessage()
	case "查看冷却", "/cooldown":
		return s.Session.CooldownMessage()
	default:
		return "可用命令:\n• /status 查看行情\n• /account 查看账户\n• /cooldown 查看冷却"
	}
}
