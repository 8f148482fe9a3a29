package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-manager/internal/specialization"
	"github.com/jonathan/talent-manager/internal/types"
)

type fakeResearcher struct {
	topics []types.ResearchTopic
	err    error
}

func (f *fakeResearcher) ResearchTrendingTopics(ctx context.Context, limit int) ([]types.ResearchTopic, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.topics) {
		return f.topics[:limit], nil
	}
	return f.topics, nil
}

// fakeCreator records requests and optionally blocks until released so tests
// can observe in-flight jobs.
type fakeCreator struct {
	mu       sync.Mutex
	requests []types.ContentRequest
	err      error
	result   *types.ContentResult

	started chan string
	release chan struct{}
}

func (f *fakeCreator) CreateContent(ctx context.Context, req types.ContentRequest) (*types.ContentResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- req.Topic
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &types.ContentResult{Success: true, TalentName: req.TalentName, Topic: req.Topic}, nil
}

func (f *fakeCreator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestOrchestrator(creator ContentCreator, topics []types.ResearchTopic, opts Options) *Orchestrator {
	o := New(specialization.NewRegistry(), creator, opts)
	o.now = fixedNow
	o.researcherFor = func(specialization.Profile) TopicResearcher {
		return &fakeResearcher{topics: topics}
	}
	return o
}

func highValueTopic(title string) types.ResearchTopic {
	return types.ResearchTopic{
		Title:            title,
		URL:              "https://example.com/" + title,
		Source:           "hackernews",
		Category:         "tech_news",
		ContentPotential: 0.9,
	}
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal(msg)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestRegisterTalent_Idempotent(t *testing.T) {
	o := newTestOrchestrator(&fakeCreator{}, nil, Options{})

	require.NoError(t, o.RegisterTalent("ai_senpai", "tech_education"))
	require.NoError(t, o.RegisterTalent("ai_senpai", "cooking"))

	status := o.Status()
	require.Len(t, status.Talents, 1)
	assert.Equal(t, "cooking", status.Talents[0].Specialization)
}

func TestRegisterTalent_EmptyName(t *testing.T) {
	o := newTestOrchestrator(&fakeCreator{}, nil, Options{})

	err := o.RegisterTalent("", "tech_education")
	assert.Error(t, err)
}

func TestRegisterTalent_UnknownSpecializationFallsBack(t *testing.T) {
	o := newTestOrchestrator(&fakeCreator{}, nil, Options{})

	require.NoError(t, o.RegisterTalent("mystery", "underwater_basket_weaving"))

	status := o.Status()
	require.Len(t, status.Talents, 1)
	assert.Equal(t, "underwater_basket_weaving", status.Talents[0].Specialization)
}

func TestRunResearchOnce_EnqueuesJobs(t *testing.T) {
	topics := []types.ResearchTopic{
		highValueTopic("Understanding channels"),
		{Title: "Weak topic", Source: "devto", Category: "tutorial", ContentPotential: 0.2},
	}
	o := newTestOrchestrator(&fakeCreator{}, topics, Options{PlanDaysAhead: 7})
	require.NoError(t, o.RegisterTalent("ai_senpai", "tech_education"))

	plan, err := o.RunResearchOnce(context.Background(), "ai_senpai")

	require.NoError(t, err)
	require.NotNil(t, plan)
	require.NotEmpty(t, plan.ContentPlan)

	status := o.Status()
	require.Len(t, status.Queued, len(plan.PostingSchedule))
	for _, job := range status.Queued {
		assert.Equal(t, StatusScheduled, job.Status)
		assert.Equal(t, "ai_senpai", job.TalentName)
		assert.NotEmpty(t, job.ID)
	}
	// A manual pass does not advance the periodic research clock.
	assert.True(t, status.Talents[0].LastResearch.IsZero())
}

func TestRunResearchOnce_UnregisteredTalent(t *testing.T) {
	o := newTestOrchestrator(&fakeCreator{}, nil, Options{})

	_, err := o.RunResearchOnce(context.Background(), "nobody")
	assert.Error(t, err)
}

func TestLaunchDueJobs_FutureJobStaysQueued(t *testing.T) {
	creator := &fakeCreator{}
	o := newTestOrchestrator(creator, nil, Options{})
	require.NoError(t, o.RegisterTalent("ai_senpai", "tech_education"))

	o.mu.Lock()
	talent := o.talents["ai_senpai"]
	o.mu.Unlock()

	o.enqueuePlan(talent, &types.StrategyPlan{PostingSchedule: []types.ScheduleEntry{
		{ScheduledDate: fixedNow().Add(24 * time.Hour), Content: types.ContentPlanItem{Topic: "Later"}},
	}})

	o.launchDueJobs(context.Background())

	status := o.Status()
	require.Len(t, status.Queued, 1)
	assert.Empty(t, status.Running)
	assert.Empty(t, status.Completed)
	assert.Equal(t, 0, creator.callCount())
}

func TestLaunchDueJobs_DueJobCompletes(t *testing.T) {
	creator := &fakeCreator{}
	o := newTestOrchestrator(creator, nil, Options{})
	require.NoError(t, o.RegisterTalent("ai_senpai", "tech_education"))

	o.mu.Lock()
	talent := o.talents["ai_senpai"]
	o.mu.Unlock()

	o.enqueuePlan(talent, &types.StrategyPlan{PostingSchedule: []types.ScheduleEntry{
		{ScheduledDate: fixedNow().Add(-time.Minute), Content: types.ContentPlanItem{Topic: "Due now"}},
	}})

	o.launchDueJobs(context.Background())

	waitFor(t, func() bool { return len(o.Status().Completed) == 1 }, "job never completed")

	status := o.Status()
	assert.Empty(t, status.Queued)
	assert.Empty(t, status.Running)
	job := status.Completed[0]
	assert.Equal(t, StatusCompleted, job.Status)
	require.NotNil(t, job.Result)
	assert.True(t, job.Result.Success)
	assert.False(t, job.CompletedAt.IsZero())
}

func TestLaunchDueJobs_FailureRecorded(t *testing.T) {
	creator := &fakeCreator{err: errors.New("LLM API rate limited")}
	o := newTestOrchestrator(creator, nil, Options{})
	require.NoError(t, o.RegisterTalent("ai_senpai", "tech_education"))

	o.mu.Lock()
	talent := o.talents["ai_senpai"]
	o.mu.Unlock()

	o.enqueuePlan(talent, &types.StrategyPlan{PostingSchedule: []types.ScheduleEntry{
		{ScheduledDate: fixedNow().Add(-time.Minute), Content: types.ContentPlanItem{Topic: "Doomed"}},
	}})

	o.launchDueJobs(context.Background())

	waitFor(t, func() bool { return len(o.Status().Completed) == 1 }, "job never finished")

	job := o.Status().Completed[0]
	assert.Equal(t, StatusFailed, job.Status)
	assert.Contains(t, job.Error, "rate limited")
	// The failed job leaves the queue and running set; the loop keeps going.
	assert.Empty(t, o.Status().Queued)
	assert.Empty(t, o.Status().Running)
}

func TestLaunchDueJobs_ConcurrencyCap(t *testing.T) {
	creator := &fakeCreator{
		started: make(chan string, 5),
		release: make(chan struct{}),
	}
	o := newTestOrchestrator(creator, nil, Options{MaxConcurrentJobs: 2})
	require.NoError(t, o.RegisterTalent("ai_senpai", "tech_education"))

	o.mu.Lock()
	talent := o.talents["ai_senpai"]
	o.mu.Unlock()

	schedule := make([]types.ScheduleEntry, 0, 5)
	for i := 0; i < 5; i++ {
		schedule = append(schedule, types.ScheduleEntry{
			ScheduledDate: fixedNow().Add(-time.Minute),
			Content:       types.ContentPlanItem{Topic: fmt.Sprintf("Topic %d", i)},
		})
	}
	o.enqueuePlan(talent, &types.StrategyPlan{PostingSchedule: schedule})

	o.launchDueJobs(context.Background())

	<-creator.started
	<-creator.started
	status := o.Status()
	assert.Len(t, status.Running, 2)
	assert.Len(t, status.Queued, 3)

	// While both slots are busy another pass launches nothing.
	o.launchDueJobs(context.Background())
	assert.Equal(t, 2, creator.callCount())

	close(creator.release)
	waitFor(t, func() bool { return len(o.Status().Running) == 0 }, "running jobs never drained")

	// Freed slots pick up the remaining queue on the next pass.
	o.launchDueJobs(context.Background())
	waitFor(t, func() bool { return len(o.Status().Completed) == 4 }, "second batch never completed")
}

func TestEnqueuePlan_PriorityOrder(t *testing.T) {
	o := newTestOrchestrator(&fakeCreator{}, nil, Options{})
	require.NoError(t, o.RegisterTalent("ai_senpai", "tech_education"))

	o.mu.Lock()
	talent := o.talents["ai_senpai"]
	o.mu.Unlock()

	o.enqueuePlan(talent, &types.StrategyPlan{PostingSchedule: []types.ScheduleEntry{
		{ScheduledDate: fixedNow(), Content: types.ContentPlanItem{Topic: "Low", CreationPriority: 0.6}},
		{ScheduledDate: fixedNow().Add(time.Hour), Content: types.ContentPlanItem{Topic: "Tie later", CreationPriority: 0.8}},
		{ScheduledDate: fixedNow(), Content: types.ContentPlanItem{Topic: "Tie earlier", CreationPriority: 0.8}},
		{ScheduledDate: fixedNow(), Content: types.ContentPlanItem{Topic: "High", CreationPriority: 0.9}},
	}})

	status := o.Status()
	require.Len(t, status.Queued, 4)
	assert.Equal(t, "High", status.Queued[0].Topic)
	assert.Equal(t, "Tie earlier", status.Queued[1].Topic)
	assert.Equal(t, "Tie later", status.Queued[2].Topic)
	assert.Equal(t, "Low", status.Queued[3].Topic)
}

func TestCompletedHistory_Capped(t *testing.T) {
	o := newTestOrchestrator(&fakeCreator{}, nil, Options{CompletedHistoryLimit: 3})

	o.mu.Lock()
	for i := 0; i < 3; i++ {
		o.completed = append(o.completed, &Job{ID: fmt.Sprintf("old_%d", i), Status: StatusCompleted})
	}
	o.running["new"] = &Job{ID: "new", Status: StatusRunning}
	o.mu.Unlock()

	o.executeJob(context.Background(), &Job{ID: "new", TalentName: "ai_senpai", Topic: "Fresh"})

	status := o.Status()
	require.Len(t, status.Completed, 3)
	assert.Equal(t, "old_1", status.Completed[0].ID)
	assert.Equal(t, "new", status.Completed[2].ID)
}

func TestStatus_JobInExactlyOneCollection(t *testing.T) {
	creator := &fakeCreator{}
	o := newTestOrchestrator(creator, nil, Options{})
	require.NoError(t, o.RegisterTalent("ai_senpai", "tech_education"))

	o.mu.Lock()
	talent := o.talents["ai_senpai"]
	o.mu.Unlock()

	o.enqueuePlan(talent, &types.StrategyPlan{PostingSchedule: []types.ScheduleEntry{
		{ScheduledDate: fixedNow().Add(-time.Minute), Content: types.ContentPlanItem{Topic: "Only one"}},
		{ScheduledDate: fixedNow().Add(time.Hour), Content: types.ContentPlanItem{Topic: "Future"}},
	}})

	o.launchDueJobs(context.Background())
	waitFor(t, func() bool { return len(o.Status().Completed) == 1 }, "job never completed")

	status := o.Status()
	seen := make(map[string]int)
	for _, job := range status.Queued {
		seen[job.ID]++
	}
	for _, job := range status.Running {
		seen[job.ID]++
	}
	for _, job := range status.Completed {
		seen[job.ID]++
	}
	for id, n := range seen {
		assert.Equalf(t, 1, n, "job %s appears in %d collections", id, n)
	}
	assert.Len(t, seen, 2)
}

func TestResearchPass_DisabledTalentSkipped(t *testing.T) {
	topics := []types.ResearchTopic{highValueTopic("Understanding channels")}
	o := newTestOrchestrator(&fakeCreator{}, topics, Options{})
	require.NoError(t, o.RegisterTalentWithConfig("ai_senpai", "tech_education", TalentConfig{Disabled: true}))

	require.NoError(t, o.researchPass(context.Background()))

	status := o.Status()
	assert.Empty(t, status.Queued)
	assert.False(t, status.Talents[0].Enabled)
	assert.True(t, status.Talents[0].LastResearch.IsZero())
}

func TestResearchPass_PerTalentInterval(t *testing.T) {
	topics := []types.ResearchTopic{highValueTopic("Understanding channels")}
	o := newTestOrchestrator(&fakeCreator{}, topics, Options{ResearchPollInterval: time.Hour})
	require.NoError(t, o.RegisterTalentWithConfig("ai_senpai", "tech_education", TalentConfig{
		ResearchInterval: 10 * time.Minute,
	}))

	// Pretend the last pass ran 30 minutes ago: overdue for the talent's
	// own 10 minute interval even though the global hour has not elapsed.
	o.mu.Lock()
	o.talents["ai_senpai"].lastResearch = fixedNow().Add(-30 * time.Minute)
	o.mu.Unlock()

	require.NoError(t, o.researchPass(context.Background()))

	status := o.Status()
	assert.NotEmpty(t, status.Queued)
	assert.Equal(t, fixedNow(), status.Talents[0].LastResearch)
}

func TestStatus_PerTalentCounts(t *testing.T) {
	o := newTestOrchestrator(&fakeCreator{}, nil, Options{})
	require.NoError(t, o.RegisterTalent("ai_senpai", "tech_education"))
	require.NoError(t, o.RegisterTalent("chef_mika", "cooking"))

	o.mu.Lock()
	senpai := o.talents["ai_senpai"]
	o.mu.Unlock()

	o.enqueuePlan(senpai, &types.StrategyPlan{PostingSchedule: []types.ScheduleEntry{
		{ScheduledDate: fixedNow().Add(2 * time.Hour), Content: types.ContentPlanItem{Topic: "Second"}},
		{ScheduledDate: fixedNow().Add(time.Hour), Content: types.ContentPlanItem{Topic: "First"}},
	}})

	senpaiStatus, ok := o.TalentStatusFor("ai_senpai")
	require.True(t, ok)
	assert.Equal(t, 2, senpaiStatus.QueuedJobs)
	assert.Equal(t, 0, senpaiStatus.RunningJobs)
	assert.Equal(t, fixedNow().Add(time.Hour), senpaiStatus.NextScheduled)

	mikaStatus, ok := o.TalentStatusFor("chef_mika")
	require.True(t, ok)
	assert.Equal(t, 0, mikaStatus.QueuedJobs)
	assert.True(t, mikaStatus.NextScheduled.IsZero())

	_, ok = o.TalentStatusFor("nobody")
	assert.False(t, ok)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	o := newTestOrchestrator(&fakeCreator{}, nil, Options{
		ResearchPollInterval: 10 * time.Millisecond,
		ExecutePollInterval:  10 * time.Millisecond,
	})
	require.NoError(t, o.RegisterTalent("ai_senpai", "tech_education"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- o.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("orchestrator did not stop after cancel")
	}
}
