package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campaignforge/backend/internal/extract"
	"github.com/campaignforge/backend/internal/models"
)

// fakeGenerator dispatches on the root properties of the requested schema
// and returns canned stage responses.
type fakeGenerator struct {
	mu        sync.Mutex
	calls     []string
	failStage string
	failImage bool
	budget    int64
}

func (f *fakeGenerator) record(stage string) {
	f.mu.Lock()
	f.calls = append(f.calls, stage)
	f.mu.Unlock()
}

func (f *fakeGenerator) GenerateStructured(_ context.Context, _, _ string, schema map[string]any) (json.RawMessage, error) {
	props, _ := schema["properties"].(map[string]any)
	stage := ""
	switch {
	case props["brand_name"] != nil:
		stage = "brand_profile"
	case props["strengths"] != nil:
		stage = "swot"
	case props["statement"] != nil:
		stage = "positioning"
	case props["headline"] != nil:
		stage = "content"
	case props["image_prompt"] != nil:
		stage = "visual"
	case props["recommendations"] != nil && props["allocations"] == nil && props["insights"] == nil:
		stage = "influencers"
	case props["allocations"] != nil:
		stage = "plan"
	case props["insights"] != nil:
		stage = "feedback"
	default:
		return nil, fmt.Errorf("unrecognized schema: %v", props)
	}
	f.record(stage)

	if stage == f.failStage {
		return nil, fmt.Errorf("simulated %s outage", stage)
	}

	switch stage {
	case "brand_profile":
		return json.RawMessage(`{"brand_name":"Acme","industry":"SaaS","target_audience":"ops teams","brand_voice":"confident","tone_of_voice":["confident","clear"],"value_proposition":"ship faster","core_values":["clarity"],"key_messages":["automate the boring parts"],"brand_keywords":["automation","ops"]}`), nil
	case "swot":
		return json.RawMessage(`{"strengths":["s"],"weaknesses":["w"],"opportunities":["o"],"threats":["t"]}`), nil
	case "positioning":
		return json.RawMessage(`{"statement":"we lead","differentiation_points":["speed"],"competitive_advantage":"data"}`), nil
	case "content":
		return json.RawMessage(`{"headline":"H","body":"B","call_to_action":"Go","subject_line":"Meet Acme","hashtags":["#acme"],"tone":"confident"}`), nil
	case "visual":
		return json.RawMessage(`{"image_prompt":"a clean product shot"}`), nil
	case "influencers":
		return json.RawMessage(`{"recommendations":[{"name":"Jane","platform":"linkedin","niche":"b2b","reason":"fit","outreach_message":"hi","follower_count":99}]}`), nil
	case "plan":
		half := f.budget / 2
		return json.RawMessage(fmt.Sprintf(
			`{"summary":"split","allocations":[{"platform":"linkedin","amount_cents":%d},{"platform":"email","amount_cents":%d}]}`,
			half, f.budget-half)), nil
	case "feedback":
		return json.RawMessage(`{"insights":["email is cheap"],"recommendations":["shift spend"]}`), nil
	}
	return nil, fmt.Errorf("unhandled stage %s", stage)
}

func (f *fakeGenerator) GenerateImage(_ context.Context, _ string) (string, error) {
	f.record("image")
	if f.failImage {
		return "", fmt.Errorf("simulated render outage")
	}
	return "data:image/png;base64,QUJD", nil
}

type fakeStore struct {
	mu         sync.Mutex
	statuses   []string
	results    []*models.CampaignResult
	reason     string
	failStatus string
}

func (s *fakeStore) SetStatus(_ context.Context, _ uuid.UUID, from, to string) error {
	if !models.IsValidTransition(from, to) {
		return fmt.Errorf("store rejected %s -> %s", from, to)
	}
	if to == s.failStatus {
		return fmt.Errorf("simulated write failure for %s", to)
	}
	s.mu.Lock()
	s.statuses = append(s.statuses, to)
	s.mu.Unlock()
	return nil
}

func (s *fakeStore) SetFailed(_ context.Context, _ uuid.UUID, from, reason string) error {
	if !models.IsValidTransition(from, models.CampaignStatusFailed) {
		return fmt.Errorf("store rejected %s -> failed", from)
	}
	s.mu.Lock()
	s.statuses = append(s.statuses, models.CampaignStatusFailed)
	s.reason = reason
	s.mu.Unlock()
	return nil
}

func (s *fakeStore) SaveResult(_ context.Context, r *models.CampaignResult) error {
	s.mu.Lock()
	s.results = append(s.results, r)
	s.mu.Unlock()
	return nil
}

type fakeLocker struct {
	held bool
}

func (l *fakeLocker) Acquire(context.Context, uuid.UUID) (bool, error) { return !l.held, nil }
func (l *fakeLocker) Release(context.Context, uuid.UUID) error        { return nil }

type fakeFetcher struct {
	fail bool
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*extract.ContentSummary, error) {
	if f.fail {
		return nil, &extract.ExtractionError{URL: url, Err: errors.New("timeout")}
	}
	return &extract.ContentSummary{Title: "Acme", Description: "widgets"}, nil
}

func testCampaign() *models.Campaign {
	return &models.Campaign{
		ID:          uuid.New(),
		OwnerUserID: uuid.New(),
		Name:        "Launch",
		Brief:       "Launch the new product",
		BudgetCents: 1000000,
		Platforms:   []string{models.PlatformLinkedIn, models.PlatformEmail},
		Status:      models.CampaignStatusPending,
	}
}

func newTestOrchestrator(g *fakeGenerator, st *fakeStore, lk *fakeLocker, ft *fakeFetcher) *Orchestrator {
	return NewOrchestrator(g, ft, st, lk, 30*time.Second, 10000, zap.NewNop())
}

func TestRunHappyPath(t *testing.T) {
	g := &fakeGenerator{budget: 1000000}
	st := &fakeStore{}
	c := testCampaign()

	err := newTestOrchestrator(g, st, &fakeLocker{}, &fakeFetcher{}).Run(context.Background(), c)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := []string{
		models.CampaignStatusAnalyzing,
		models.CampaignStatusGenerating,
		models.CampaignStatusExecuting,
		models.CampaignStatusCompleted,
	}
	if len(st.statuses) != len(want) {
		t.Fatalf("statuses = %v, want %v", st.statuses, want)
	}
	for i := range want {
		if st.statuses[i] != want[i] {
			t.Fatalf("statuses = %v, want %v", st.statuses, want)
		}
	}

	if len(st.results) != 1 {
		t.Fatalf("expected one saved result, got %d", len(st.results))
	}
	r := st.results[0]
	if len(r.Content) != 2 {
		t.Errorf("content assets = %d, want 2", len(r.Content))
	}
	if len(r.Influencers) != 1 {
		t.Fatalf("influencers = %d, want 1", len(r.Influencers))
	}
	if r.Influencers[0].ID == uuid.Nil {
		t.Errorf("influencer id not assigned")
	}
	if len(r.Visuals) != 1 || r.Visuals[0].Platform != models.PlatformLinkedIn {
		t.Errorf("visuals = %+v, want one linkedin asset", r.Visuals)
	}
	if r.Metrics.Totals.SpendCents != c.BudgetCents {
		t.Errorf("metrics spend = %d, want full budget", r.Metrics.Totals.SpendCents)
	}
	if r.Feedback == nil {
		t.Errorf("feedback missing")
	}
	if c.Status != models.CampaignStatusCompleted {
		t.Errorf("campaign status = %s", c.Status)
	}
}

func TestRunBrandStageFailure(t *testing.T) {
	g := &fakeGenerator{budget: 1000000, failStage: "swot"}
	st := &fakeStore{}
	c := testCampaign()

	err := newTestOrchestrator(g, st, &fakeLocker{}, &fakeFetcher{}).Run(context.Background(), c)
	if err == nil {
		t.Fatal("expected error")
	}
	if c.Status != models.CampaignStatusFailed {
		t.Errorf("status = %s, want failed", c.Status)
	}
	if st.reason == "" {
		t.Errorf("failure reason not recorded")
	}
	if len(st.results) != 0 {
		t.Errorf("no result should be saved on failure")
	}
}

func TestRunContentFailureFailsRun(t *testing.T) {
	g := &fakeGenerator{budget: 1000000, failStage: "content"}
	st := &fakeStore{}
	c := testCampaign()

	err := newTestOrchestrator(g, st, &fakeLocker{}, &fakeFetcher{}).Run(context.Background(), c)
	if err == nil {
		t.Fatal("expected error")
	}
	if c.Status != models.CampaignStatusFailed {
		t.Errorf("status = %s, want failed", c.Status)
	}
}

func TestRunImageFailureIsTolerated(t *testing.T) {
	g := &fakeGenerator{budget: 1000000, failImage: true}
	st := &fakeStore{}
	c := testCampaign()

	err := newTestOrchestrator(g, st, &fakeLocker{}, &fakeFetcher{}).Run(context.Background(), c)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(st.results) != 1 {
		t.Fatalf("expected saved result")
	}
	if len(st.results[0].Visuals) != 0 {
		t.Errorf("failed renders must be omitted, got %+v", st.results[0].Visuals)
	}
}

func TestRunExtractionFailureIsNonFatal(t *testing.T) {
	g := &fakeGenerator{budget: 1000000}
	st := &fakeStore{}
	c := testCampaign()
	url := "https://acme.example"
	c.SourceURL = &url

	err := newTestOrchestrator(g, st, &fakeLocker{}, &fakeFetcher{fail: true}).Run(context.Background(), c)
	if err != nil {
		t.Fatalf("extraction failure must not fail the run: %v", err)
	}
	if c.Status != models.CampaignStatusCompleted {
		t.Errorf("status = %s, want completed", c.Status)
	}
}

func TestRunSkipsWhenLockHeld(t *testing.T) {
	g := &fakeGenerator{budget: 1000000}
	st := &fakeStore{}
	c := testCampaign()

	err := newTestOrchestrator(g, st, &fakeLocker{held: true}, &fakeFetcher{}).Run(context.Background(), c)
	if err != nil {
		t.Fatalf("held lock should be a no-op, got %v", err)
	}
	if len(st.statuses) != 0 {
		t.Errorf("no status writes expected, got %v", st.statuses)
	}
}

func TestRunForgedInfluencerFieldsFiltered(t *testing.T) {
	g := &fakeGenerator{budget: 1000000}
	st := &fakeStore{}
	c := testCampaign()

	if err := newTestOrchestrator(g, st, &fakeLocker{}, &fakeFetcher{}).Run(context.Background(), c); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// The fake response carries a forged follower_count; the stored
	// recommendation must only hold the allowed fields.
	rec := st.results[0].Influencers[0]
	if rec.Name != "Jane" || rec.Platform != "linkedin" || rec.OutreachMessage != "hi" {
		t.Errorf("recommendation fields lost: %+v", rec)
	}
}

func TestRunContentCarriesBrandEnrichment(t *testing.T) {
	g := &fakeGenerator{budget: 1000000}
	st := &fakeStore{}
	c := testCampaign()

	if err := newTestOrchestrator(g, st, &fakeLocker{}, &fakeFetcher{}).Run(context.Background(), c); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	p := st.results[0].Analysis.Profile
	if p.ValueProposition != "ship faster" {
		t.Errorf("value proposition = %q", p.ValueProposition)
	}
	if len(p.ToneOfVoice) != 2 || len(p.KeyMessages) != 1 || len(p.BrandKeywords) != 2 {
		t.Errorf("profile lists lost: %+v", p)
	}

	for _, a := range st.results[0].Content {
		if a.Tone != "confident" {
			t.Errorf("%s tone = %q, want confident", a.Platform, a.Tone)
		}
		// The canned copy carries no keywords, so the brand keyword
		// list must back them up.
		if len(a.Keywords) != 2 || a.Keywords[0] != "automation" {
			t.Errorf("%s keywords = %v, want brand keywords", a.Platform, a.Keywords)
		}
		if a.ContentType == models.ContentTypeEmailCampaign && a.SubjectLine == "" {
			t.Errorf("email asset has no subject line")
		}
	}
}

func TestRunStatusWriteFailureRecordsFailed(t *testing.T) {
	g := &fakeGenerator{budget: 1000000}
	st := &fakeStore{failStatus: models.CampaignStatusAnalyzing}
	c := testCampaign()

	err := newTestOrchestrator(g, st, &fakeLocker{}, &fakeFetcher{}).Run(context.Background(), c)
	if err == nil {
		t.Fatal("expected error")
	}
	if c.Status != models.CampaignStatusFailed {
		t.Errorf("status = %s, want failed", c.Status)
	}
	if st.reason == "" {
		t.Errorf("failure reason not recorded")
	}
	if len(st.results) != 0 {
		t.Errorf("no result should be saved")
	}
}
