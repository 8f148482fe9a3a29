// Package orchestrator runs the autonomous loop: periodic research and
// planning per registered talent, a priority-ordered job queue, and bounded
// concurrent execution of due jobs.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-manager/internal/logging"
	"github.com/jonathan/talent-manager/internal/research"
	"github.com/jonathan/talent-manager/internal/specialization"
	"github.com/jonathan/talent-manager/internal/strategy"
	"github.com/jonathan/talent-manager/internal/types"
)

// TopicResearcher discovers and scores trending topics for one talent.
type TopicResearcher interface {
	ResearchTrendingTopics(ctx context.Context, limit int) ([]types.ResearchTopic, error)
}

// ContentCreator turns a content request into finished content. The
// orchestrator treats it as a black box so the full pipeline and test fakes
// plug in interchangeably.
type ContentCreator interface {
	CreateContent(ctx context.Context, req types.ContentRequest) (*types.ContentResult, error)
}

// Options tunes the orchestrator's loops and limits. Zero values fall back
// to the defaults applied by New.
type Options struct {
	// ResearchPollInterval is the gap between research passes per talent.
	ResearchPollInterval time.Duration

	// ExecutePollInterval is the gap between checks for due jobs.
	ExecutePollInterval time.Duration

	// ErrorBackoff is the wait after a loop pass fails before retrying.
	ErrorBackoff time.Duration

	// MaxConcurrentJobs bounds how many jobs execute at once.
	MaxConcurrentJobs int

	// ResearchLimit caps topics requested per research pass.
	ResearchLimit int

	// PlanDaysAhead is the planning horizon handed to the strategy planner.
	PlanDaysAhead int

	// CompletedHistoryLimit caps the retained completed/failed job history.
	CompletedHistoryLimit int
}

func (o *Options) applyDefaults() {
	if o.ResearchPollInterval <= 0 {
		o.ResearchPollInterval = time.Hour
	}
	if o.ExecutePollInterval <= 0 {
		o.ExecutePollInterval = 5 * time.Minute
	}
	if o.ErrorBackoff <= 0 {
		o.ErrorBackoff = 5 * time.Minute
	}
	if o.MaxConcurrentJobs <= 0 {
		o.MaxConcurrentJobs = 3
	}
	if o.ResearchLimit <= 0 {
		o.ResearchLimit = 20
	}
	if o.PlanDaysAhead <= 0 {
		o.PlanDaysAhead = 7
	}
	if o.CompletedHistoryLimit <= 0 {
		o.CompletedHistoryLimit = 100
	}
}

// talentState is the orchestrator's bookkeeping for one registered talent.
type talentState struct {
	name         string
	tag          string
	profile      specialization.Profile
	cfg          TalentConfig
	lastResearch time.Time
}

// TalentStatus is a point-in-time view of one talent for status reporting.
type TalentStatus struct {
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Enabled        bool      `json:"enabled"`
	LastResearch   time.Time `json:"last_research,omitempty"`
	QueuedJobs     int       `json:"queued_jobs"`
	RunningJobs    int       `json:"running_jobs"`

	// NextScheduled is the earliest scheduled time among the talent's
	// queued jobs, zero when none are queued.
	NextScheduled time.Time `json:"next_scheduled,omitempty"`
}

// Status is a point-in-time view of the orchestrator's state.
type Status struct {
	Talents   []TalentStatus `json:"talents"`
	Queued    []*Job         `json:"queued"`
	Running   []*Job         `json:"running"`
	Completed []*Job         `json:"completed"`
}

// Orchestrator owns the autonomous content loop. All state behind mu; the
// research loop, execute loop, and job goroutines mutate concurrently.
type Orchestrator struct {
	registry *specialization.Registry
	creator  ContentCreator
	opts     Options

	mu        sync.Mutex
	talents   map[string]*talentState
	queue     []*Job
	running   map[string]*Job
	completed []*Job
	seq       int64

	// Injection points for tests.
	now           func() time.Time
	researcherFor func(profile specialization.Profile) TopicResearcher
}

// New builds an orchestrator around the given creator and specialization
// registry.
func New(registry *specialization.Registry, creator ContentCreator, opts Options) *Orchestrator {
	opts.applyDefaults()
	return &Orchestrator{
		registry: registry,
		creator:  creator,
		opts:     opts,
		talents:  make(map[string]*talentState),
		running:  make(map[string]*Job),
		now:      time.Now,
		researcherFor: func(profile specialization.Profile) TopicResearcher {
			return research.NewAggregator(profile)
		},
	}
}

// TalentConfig tunes one talent's autonomous behavior.
type TalentConfig struct {
	// ResearchInterval overrides the orchestrator-wide research cadence for
	// this talent. Zero means use the orchestrator default.
	ResearchInterval time.Duration

	// Disabled keeps the talent registered but excluded from the research
	// loop. Manual one-shot research still works.
	Disabled bool
}

// RegisterTalent adds a talent to the autonomous loop with default config.
// Registering the same name again updates the specialization in place and
// keeps existing jobs.
func (o *Orchestrator) RegisterTalent(name, specializationTag string) error {
	return o.RegisterTalentWithConfig(name, specializationTag, TalentConfig{})
}

// RegisterTalentWithConfig adds a talent with per-talent tuning.
func (o *Orchestrator) RegisterTalentWithConfig(name, specializationTag string, cfg TalentConfig) error {
	if name == "" {
		return fmt.Errorf("talent name must not be empty")
	}
	profile, known := o.registry.Lookup(specializationTag)
	if !known {
		logging.Warn("unknown specialization, using general profile", "talent", name, "specialization", specializationTag)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if existing, ok := o.talents[name]; ok {
		existing.tag = specializationTag
		existing.profile = profile
		existing.cfg = cfg
		return nil
	}
	o.talents[name] = &talentState{name: name, tag: specializationTag, profile: profile, cfg: cfg}
	return nil
}

// Run drives the research and execute loops until ctx is canceled. It
// returns ctx.Err once both loops have stopped.
func (o *Orchestrator) Run(ctx context.Context) error {
	logging.Info("starting autonomous orchestrator",
		"research_interval", o.opts.ResearchPollInterval,
		"execute_interval", o.opts.ExecutePollInterval,
		"max_concurrent", o.opts.MaxConcurrentJobs)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return o.researchLoop(gCtx) })
	g.Go(func() error { return o.executeLoop(gCtx) })
	return g.Wait()
}

// researchLoop runs a research pass per interval, backing off after a pass
// fails.
func (o *Orchestrator) researchLoop(ctx context.Context) error {
	for {
		wait := o.opts.ResearchPollInterval
		if err := o.researchPass(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logging.Error("research pass failed", "error", err)
			wait = o.opts.ErrorBackoff
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// executeLoop launches due jobs per interval.
func (o *Orchestrator) executeLoop(ctx context.Context) error {
	ticker := time.NewTicker(o.opts.ExecutePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			o.launchDueJobs(ctx)
		}
	}
}

// researchPass researches and plans for every talent whose last pass is
// older than the poll interval. One talent failing does not stop the rest.
func (o *Orchestrator) researchPass(ctx context.Context) error {
	now := o.now().UTC()

	o.mu.Lock()
	due := make([]*talentState, 0, len(o.talents))
	for _, t := range o.talents {
		if t.cfg.Disabled {
			continue
		}
		interval := t.cfg.ResearchInterval
		if interval <= 0 {
			interval = o.opts.ResearchPollInterval
		}
		if t.lastResearch.IsZero() || now.Sub(t.lastResearch) >= interval {
			due = append(due, t)
		}
	}
	o.mu.Unlock()

	var firstErr error
	for _, t := range due {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := o.researchAndPlan(ctx, t.name, true); err != nil {
			logging.Error("research failed for talent", "talent", t.name, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// RunResearchOnce runs a single research-and-plan pass for one talent and
// enqueues the resulting jobs. It does not advance the talent's periodic
// research clock, so the autonomous loop still runs on schedule.
func (o *Orchestrator) RunResearchOnce(ctx context.Context, talentName string) (*types.StrategyPlan, error) {
	return o.researchAndPlan(ctx, talentName, false)
}

func (o *Orchestrator) researchAndPlan(ctx context.Context, talentName string, markResearched bool) (*types.StrategyPlan, error) {
	o.mu.Lock()
	t, ok := o.talents[talentName]
	o.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("talent %s is not registered", talentName)
	}

	researcher := o.researcherFor(t.profile)
	topics, err := researcher.ResearchTrendingTopics(ctx, o.opts.ResearchLimit)
	if err != nil {
		return nil, fmt.Errorf("research failed for %s: %w", talentName, err)
	}
	logging.Info("research pass finished", "talent", talentName, "topics", len(topics))

	planner := strategy.NewPlanner(talentName, t.profile)
	plan := planner.PlanContentStrategy(topics, o.opts.PlanDaysAhead)
	o.enqueuePlan(t, plan)

	if markResearched {
		o.mu.Lock()
		t.lastResearch = o.now().UTC()
		o.mu.Unlock()
	}
	return plan, nil
}

// enqueuePlan converts a strategy plan's schedule into scheduled jobs and
// inserts them into the queue in priority order.
func (o *Orchestrator) enqueuePlan(t *talentState, plan *types.StrategyPlan) {
	if len(plan.PostingSchedule) == 0 {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for _, entry := range plan.PostingSchedule {
		o.seq++
		job := &Job{
			ID:            fmt.Sprintf("auto_%s_%d_%d", t.name, o.now().UTC().UnixNano(), o.seq),
			TalentName:    t.name,
			Topic:         entry.Content.Topic,
			ContentType:   entry.Content.ContentType,
			ScheduledTime: entry.ScheduledDate,
			Priority:      entry.Content.CreationPriority,
			Status:        StatusScheduled,
			ResearchData:  entry.Content,
			CreatedAt:     o.now().UTC(),
		}
		o.queue = append(o.queue, job)
	}

	// Higher priority first; earlier schedule breaks ties. Stable so jobs
	// that tie on both keep enqueue order.
	sort.SliceStable(o.queue, func(i, j int) bool {
		if o.queue[i].Priority != o.queue[j].Priority {
			return o.queue[i].Priority > o.queue[j].Priority
		}
		return o.queue[i].ScheduledTime.Before(o.queue[j].ScheduledTime)
	})

	logging.Info("enqueued content jobs", "talent", t.name, "jobs", len(plan.PostingSchedule), "queue_depth", len(o.queue))
}

// launchDueJobs moves due jobs from the queue to the running set and starts
// a goroutine per job, respecting the concurrency cap.
func (o *Orchestrator) launchDueJobs(ctx context.Context) {
	now := o.now().UTC()

	o.mu.Lock()
	var launched []*Job
	remaining := o.queue[:0]
	for _, job := range o.queue {
		if len(o.running)+len(launched) >= o.opts.MaxConcurrentJobs {
			remaining = append(remaining, job)
			continue
		}
		if job.ScheduledTime.After(now) {
			remaining = append(remaining, job)
			continue
		}
		job.Status = StatusRunning
		launched = append(launched, job)
	}
	o.queue = remaining
	for _, job := range launched {
		o.running[job.ID] = job
	}
	o.mu.Unlock()

	for _, job := range launched {
		go o.executeJob(ctx, job)
	}
}

// executeJob runs one job through the content creator and files the result.
func (o *Orchestrator) executeJob(ctx context.Context, job *Job) {
	logging.Info("executing content job", "job", job.ID, "talent", job.TalentName, "topic", job.Topic)

	item := job.ResearchData
	result, err := o.creator.CreateContent(ctx, types.ContentRequest{
		TalentName:      job.TalentName,
		Topic:           job.Topic,
		ContentType:     job.ContentType,
		AutoUpload:      true,
		ResearchContext: &item,
	})

	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.running, job.ID)
	job.CompletedAt = o.now().UTC()
	switch {
	case err != nil:
		job.Status = StatusFailed
		job.Error = err.Error()
		logging.Error("content job failed", "job", job.ID, "error", err)
	case result != nil && !result.Success:
		job.Status = StatusFailed
		job.Result = result
		job.Error = result.Error
		logging.Error("content job failed", "job", job.ID, "error", result.Error)
	default:
		job.Status = StatusCompleted
		job.Result = result
		logging.Info("content job completed", "job", job.ID, "talent", job.TalentName)
	}

	o.completed = append(o.completed, job)
	if excess := len(o.completed) - o.opts.CompletedHistoryLimit; excess > 0 {
		o.completed = append([]*Job(nil), o.completed[excess:]...)
	}
}

// Status returns a snapshot of talents, queued, running, and completed jobs.
// Jobs are copied so callers can read them without holding the lock.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := Status{
		Talents:   make([]TalentStatus, 0, len(o.talents)),
		Queued:    make([]*Job, 0, len(o.queue)),
		Running:   make([]*Job, 0, len(o.running)),
		Completed: make([]*Job, 0, len(o.completed)),
	}
	for _, t := range o.talents {
		ts := TalentStatus{Name: t.name, Specialization: t.tag, Enabled: !t.cfg.Disabled, LastResearch: t.lastResearch}
		for _, job := range o.queue {
			if job.TalentName != t.name {
				continue
			}
			ts.QueuedJobs++
			if ts.NextScheduled.IsZero() || job.ScheduledTime.Before(ts.NextScheduled) {
				ts.NextScheduled = job.ScheduledTime
			}
		}
		for _, job := range o.running {
			if job.TalentName == t.name {
				ts.RunningJobs++
			}
		}
		s.Talents = append(s.Talents, ts)
	}
	sort.Slice(s.Talents, func(i, j int) bool { return s.Talents[i].Name < s.Talents[j].Name })

	for _, job := range o.queue {
		s.Queued = append(s.Queued, job.clone())
	}
	for _, job := range o.running {
		s.Running = append(s.Running, job.clone())
	}
	sort.Slice(s.Running, func(i, j int) bool { return s.Running[i].ID < s.Running[j].ID })
	for _, job := range o.completed {
		s.Completed = append(s.Completed, job.clone())
	}
	return s
}

// TalentStatusFor returns the status of one talent by name. The second
// return is false when the talent is not registered.
func (o *Orchestrator) TalentStatusFor(name string) (TalentStatus, bool) {
	for _, ts := range o.Status().Talents {
		if ts.Name == name {
			return ts, true
		}
	}
	return TalentStatus{}, false
}
