package monitoring

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/lmercadier/devfeed-be/internal/services"
	"github.com/lmercadier/devfeed-be/internal/store"
)

// Digest periodically records an activity snapshot: content counts plus host
// CPU and memory usage. The cadence is a standard cron expression.
type Digest struct {
	schedule cron.Schedule
	users    *store.UserStore
	articles *store.ArticleStore
	comments *store.CommentStore
	follows  *store.FollowStore
	events   services.EventServiceProvider
	done     chan bool
}

// NewDigest creates a digest worker. The expression must be a standard
// five-field cron spec.
func NewDigest(cronExpr string, users *store.UserStore, articles *store.ArticleStore, comments *store.CommentStore, follows *store.FollowStore, events services.EventServiceProvider) (*Digest, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid digest cron expression %q: %w", cronExpr, err)
	}
	return &Digest{
		schedule: schedule,
		users:    users,
		articles: articles,
		comments: comments,
		follows:  follows,
		events:   events,
		done:     make(chan bool),
	}, nil
}

// Run starts the digest loop. It blocks until Stop is called.
func (d *Digest) Run() {
	log.Info().Msg("Starting background activity digest...")
	for {
		next := d.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-d.done:
			timer.Stop()
			log.Info().Msg("Stopping background activity digest.")
			return
		case <-timer.C:
			d.snapshot()
		}
	}
}

// Stop halts the digest loop.
func (d *Digest) Stop() {
	d.done <- true
}

func (d *Digest) snapshot() {
	users, err := d.users.Count()
	if err != nil {
		log.Error().Err(err).Msg("Digest: failed to count users")
		return
	}
	articles, err := d.articles.Count()
	if err != nil {
		log.Error().Err(err).Msg("Digest: failed to count articles")
		return
	}
	comments, err := d.comments.Count()
	if err != nil {
		log.Error().Err(err).Msg("Digest: failed to count comments")
		return
	}
	follows, err := d.follows.Count()
	if err != nil {
		log.Error().Err(err).Msg("Digest: failed to count follows")
		return
	}

	var cpuPct, memPct float64
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		cpuPct = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		memPct = vm.UsedPercent
	}

	msg := fmt.Sprintf("%d users, %d articles, %d comments, %d follows; host cpu %.1f%%, mem %.1f%%",
		users, articles, comments, follows, cpuPct, memPct)
	log.Info().
		Int64("users", users).
		Int64("articles", articles).
		Int64("comments", comments).
		Int64("follows", follows).
		Float64("cpu_pct", cpuPct).
		Float64("mem_pct", memPct).
		Msg("Activity digest")

	if err := d.events.Record("digest.snapshot", "info", msg, nil); err != nil {
		log.Error().Err(err).Msg("Digest: failed to record snapshot event")
	}
}
