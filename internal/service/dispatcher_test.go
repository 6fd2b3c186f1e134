package service_test

import (
    "context"
    "errors"
    "strings"
    "testing"
    "time"

    appErrors "github.com/elecmate/campaign-backend/internal/errors"
    "github.com/elecmate/campaign-backend/internal/events"
    "github.com/elecmate/campaign-backend/internal/mailer"
    "github.com/elecmate/campaign-backend/internal/model"
    "github.com/elecmate/campaign-backend/internal/service"
)

// --- Fakes ---

// callRecorder keeps one ordered log of side effects across all fakes so
// tests can assert sequencing.
type callRecorder struct {
    calls []string
}

func (r *callRecorder) add(call string) { r.calls = append(r.calls, call) }

type fakeProfiles struct {
    rec      *callRecorder
    profiles map[string]*model.Profile
    tracked  map[string]model.CampaignType
    trackErr error
}

func (f *fakeProfiles) ListApprentices() ([]model.Profile, error) {
    out := []model.Profile{}
    for _, p := range f.profiles {
        out = append(out, *p)
    }
    return out, nil
}

func (f *fakeProfiles) GetByID(id string) (*model.Profile, error) {
    return f.profiles[id], nil
}

func (f *fakeProfiles) GetAdminRole(id string) (*string, error) {
    p := f.profiles[id]
    if p == nil {
        return nil, nil
    }
    return p.AdminRole, nil
}

func (f *fakeProfiles) UpdateCampaignTracking(id string, campaign model.CampaignType, sentAt time.Time) error {
    if f.trackErr != nil {
        return f.trackErr
    }
    f.rec.add("track:" + id)
    f.tracked[id] = campaign
    return nil
}

type fakeIdentities struct {
    identities map[string]*model.Identity
}

func (f *fakeIdentities) GetByID(id string) (*model.Identity, error) {
    return f.identities[id], nil
}

func (f *fakeIdentities) ListAll() ([]model.Identity, error) {
    out := []model.Identity{}
    for _, ident := range f.identities {
        out = append(out, *ident)
    }
    return out, nil
}

type fakeSendLog struct {
    rec     *callRecorder
    entries []model.SendLogEntry
    err     error
}

func (f *fakeSendLog) Insert(entry *model.SendLogEntry) error {
    if f.err != nil {
        return f.err
    }
    f.rec.add("log:" + entry.Recipient)
    f.entries = append(f.entries, *entry)
    return nil
}

func (f *fakeSendLog) ListRecent(campaign model.CampaignType, limit int) ([]model.SendLogEntry, error) {
    return f.entries, nil
}

type fakeSender struct {
    rec     *callRecorder
    failFor map[string]bool
    sent    []mailer.Email
}

func (f *fakeSender) Send(_ context.Context, email mailer.Email) (string, error) {
    if f.failFor[email.To] {
        return "", errors.New("provider rejected message")
    }
    f.rec.add("send:" + email.To)
    f.sent = append(f.sent, email)
    return "msg-1", nil
}

type fakePacer struct {
    rec   *callRecorder
    waits int
}

func (f *fakePacer) Wait(context.Context) error {
    f.rec.add("wait")
    f.waits++
    return nil
}

type fakeEvents struct {
    published []events.SendEvent
}

func (f *fakeEvents) PublishSendEvent(e events.SendEvent) error {
    f.published = append(f.published, e)
    return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordSend(string, string) {}
func (nopMetrics) RecordBulkSize(int)        {}

type testHarness struct {
    svc      *service.CampaignService
    rec      *callRecorder
    profiles *fakeProfiles
    sendLog  *fakeSendLog
    sender   *fakeSender
    pacer    *fakePacer
    events   *fakeEvents
}

func newHarness() *testHarness {
    rec := &callRecorder{}
    profiles := &fakeProfiles{
        rec:      rec,
        profiles: map[string]*model.Profile{},
        tracked:  map[string]model.CampaignType{},
    }
    identities := &fakeIdentities{identities: map[string]*model.Identity{}}
    sendLog := &fakeSendLog{rec: rec}
    sender := &fakeSender{rec: rec, failFor: map[string]bool{}}
    pacer := &fakePacer{rec: rec}
    evs := &fakeEvents{}

    svc := &service.CampaignService{
        Types:      model.DefaultCampaignTypes(),
        Profiles:   profiles,
        Identities: identities,
        SendLog:    sendLog,
        Sender:     sender,
        Events:     evs,
        Metrics:    nopMetrics{},
        Pacer:      pacer,
        From:       "Elec-Mate <team@elec-mate.com>",
        Now:        func() time.Time { return testNow },
    }

    return &testHarness{svc: svc, rec: rec, profiles: profiles, sendLog: sendLog, sender: sender, pacer: pacer, events: evs}
}

func (h *testHarness) addUser(id, name, email string) {
    h.profiles.profiles[id] = &model.Profile{
        ID: id, DisplayName: name, Role: "apprentice",
        IsSubscribed: true, CreatedAt: daysAgo(90),
    }
    if email != "" {
        h.svc.Identities.(*fakeIdentities).identities[id] = &model.Identity{ID: id, Email: email}
    }
}

// --- Tests ---

func TestSendBulkOrderingAndPacing(t *testing.T) {
    h := newHarness()
    h.addUser("u1", "Liam Walker", "liam@example.com")
    h.addUser("u2", "Chloe Bennett", "chloe@example.com")
    h.addUser("u3", "Ryan Hughes", "ryan@example.com")

    result, err := h.svc.SendBulk(context.Background(), model.CampaignNewContent, []string{"u1", "u2", "u3"}, service.RenderParams{})
    if err != nil {
        t.Fatalf("SendBulk failed: %v", err)
    }
    if result.Sent != 3 || result.Failed != 0 || result.Skipped != 0 {
        t.Fatalf("unexpected result: %+v", result)
    }

    // Sends go out in input order.
    wantOrder := []string{"liam@example.com", "chloe@example.com", "ryan@example.com"}
    for i, email := range h.sender.sent {
        if email.To != wantOrder[i] {
            t.Errorf("send %d went to %s, want %s", i, email.To, wantOrder[i])
        }
    }

    // Each external send is preceded by a pacer wait, and nothing trails the
    // last send but its own bookkeeping.
    if h.pacer.waits != 3 {
        t.Errorf("expected 3 pacer waits, got %d", h.pacer.waits)
    }
    for i, call := range h.rec.calls {
        if strings.HasPrefix(call, "send:") {
            if i == 0 || h.rec.calls[i-1] != "wait" {
                t.Errorf("send at position %d not preceded by a pacer wait: %v", i, h.rec.calls)
            }
        }
    }
    if last := h.rec.calls[len(h.rec.calls)-1]; last == "wait" {
        t.Errorf("no wait may trail the final send: %v", h.rec.calls)
    }
}

func TestSendPacerSpacing(t *testing.T) {
    pacer := service.NewSendPacer(50 * time.Millisecond)
    ctx := context.Background()

    start := time.Now()
    for i := 0; i < 3; i++ {
        if err := pacer.Wait(ctx); err != nil {
            t.Fatalf("Wait failed: %v", err)
        }
    }
    // First token is free; the next two each cost the minimum delay.
    if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
        t.Errorf("three sends completed in %v, want at least 100ms", elapsed)
    }
}

func TestSendBulkPartialFailureIsolation(t *testing.T) {
    h := newHarness()
    h.addUser("u1", "Liam Walker", "liam@example.com")
    h.addUser("u2", "Chloe Bennett", "") // no identity row: email unresolvable
    h.addUser("u3", "Ryan Hughes", "ryan@example.com")

    result, err := h.svc.SendBulk(context.Background(), model.CampaignFeatureSpotlight, []string{"u1", "u2", "u3"}, service.RenderParams{})
    if err != nil {
        t.Fatalf("SendBulk failed: %v", err)
    }

    if result.Sent != 2 {
        t.Errorf("expected sent = 2, got %d", result.Sent)
    }
    if result.Failed != 1 {
        t.Errorf("expected failed = 1, got %d", result.Failed)
    }
    if len(result.Errors) != 1 || result.Errors[0].User != "u2" {
        t.Errorf("expected one error keyed by u2, got %+v", result.Errors)
    }

    if _, ok := h.profiles.tracked["u1"]; !ok {
        t.Error("u1 tracking fields should be updated")
    }
    if _, ok := h.profiles.tracked["u3"]; !ok {
        t.Error("u3 tracking fields should be updated")
    }
    if _, ok := h.profiles.tracked["u2"]; ok {
        t.Error("u2 tracking fields must be untouched")
    }
}

func TestSendBulkUnknownUserSkipped(t *testing.T) {
    h := newHarness()
    h.addUser("u1", "Liam Walker", "liam@example.com")

    result, err := h.svc.SendBulk(context.Background(), model.CampaignNewContent, []string{"ghost", "u1"}, service.RenderParams{})
    if err != nil {
        t.Fatalf("SendBulk failed: %v", err)
    }
    if result.Skipped != 1 || result.Sent != 1 {
        t.Errorf("expected skipped = 1, sent = 1, got %+v", result)
    }
}

func TestSendBulkSendFailureContinues(t *testing.T) {
    h := newHarness()
    h.addUser("u1", "Liam Walker", "liam@example.com")
    h.addUser("u2", "Chloe Bennett", "chloe@example.com")
    h.addUser("u3", "Ryan Hughes", "ryan@example.com")
    h.sender.failFor["chloe@example.com"] = true

    result, err := h.svc.SendBulk(context.Background(), model.CampaignNewContent, []string{"u1", "u2", "u3"}, service.RenderParams{})
    if err != nil {
        t.Fatalf("SendBulk failed: %v", err)
    }
    if result.Sent != 2 || result.Failed != 1 {
        t.Errorf("expected sent = 2, failed = 1, got %+v", result)
    }
    if _, ok := h.profiles.tracked["u2"]; ok {
        t.Error("failed send must not update tracking")
    }
    if len(result.Errors) != 1 || result.Errors[0].User != "chloe@example.com" {
        t.Errorf("expected error keyed by resolved email, got %+v", result.Errors)
    }
}

func TestSendBulkBookkeepingFailureCountsBoth(t *testing.T) {
    h := newHarness()
    h.addUser("u1", "Liam Walker", "liam@example.com")
    h.profiles.trackErr = errors.New("db write refused")

    result, err := h.svc.SendBulk(context.Background(), model.CampaignNewContent, []string{"u1"}, service.RenderParams{})
    if err != nil {
        t.Fatalf("SendBulk failed: %v", err)
    }
    // The email went out and cannot be recalled, so it stays counted as sent
    // even though the tracking write failed afterwards.
    if result.Sent != 1 || result.Failed != 1 {
        t.Errorf("expected sent = 1 and failed = 1, got %+v", result)
    }
}

func TestSendSingleSideEffectOrder(t *testing.T) {
    h := newHarness()
    h.addUser("u1", "Liam Walker", "liam@example.com")

    email, err := h.svc.SendSingle(context.Background(), model.CampaignEngagementNudge, "u1", service.RenderParams{})
    if err != nil {
        t.Fatalf("SendSingle failed: %v", err)
    }
    if email != "liam@example.com" {
        t.Errorf("unexpected email: %s", email)
    }

    want := []string{"send:liam@example.com", "track:u1", "log:liam@example.com"}
    if len(h.rec.calls) != len(want) {
        t.Fatalf("unexpected call sequence: %v", h.rec.calls)
    }
    for i := range want {
        if h.rec.calls[i] != want[i] {
            t.Fatalf("call %d = %s, want %s (full: %v)", i, h.rec.calls[i], want[i], h.rec.calls)
        }
    }

    if len(h.events.published) != 1 || h.events.published[0].UserID != "u1" {
        t.Errorf("expected one send event for u1, got %+v", h.events.published)
    }
}

func TestSendSingleUserNotFound(t *testing.T) {
    h := newHarness()

    _, err := h.svc.SendSingle(context.Background(), model.CampaignNewContent, "ghost", service.RenderParams{})
    if _, ok := err.(*appErrors.ErrUserNotFound); !ok {
        t.Fatalf("expected ErrUserNotFound, got %v", err)
    }
}

func TestSendSingleEmailUnresolvable(t *testing.T) {
    h := newHarness()
    h.addUser("u1", "Liam Walker", "")

    _, err := h.svc.SendSingle(context.Background(), model.CampaignNewContent, "u1", service.RenderParams{})
    if _, ok := err.(*appErrors.ErrEmailUnresolvable); !ok {
        t.Fatalf("expected ErrEmailUnresolvable, got %v", err)
    }
}

func TestSendSingleSendFailure(t *testing.T) {
    h := newHarness()
    h.addUser("u1", "Liam Walker", "liam@example.com")
    h.sender.failFor["liam@example.com"] = true

    _, err := h.svc.SendSingle(context.Background(), model.CampaignNewContent, "u1", service.RenderParams{})
    if _, ok := err.(*appErrors.ErrSendFailed); !ok {
        t.Fatalf("expected ErrSendFailed, got %v", err)
    }
    if len(h.profiles.tracked) != 0 || len(h.sendLog.entries) != 0 {
        t.Error("a failed send must leave tracking and log untouched")
    }
}

func TestSendTestNoWrites(t *testing.T) {
    h := newHarness()

    email, err := h.svc.SendTest(context.Background(), model.CampaignNewContent, "qa@example.com", service.RenderParams{ContentTitle: "X"})
    if err != nil {
        t.Fatalf("SendTest failed: %v", err)
    }
    if email != "qa@example.com" {
        t.Errorf("unexpected email: %s", email)
    }

    if len(h.sender.sent) != 1 {
        t.Fatalf("expected exactly one send, got %d", len(h.sender.sent))
    }
    if got := h.sender.sent[0].Subject; got != "[TEST] New in Elec-Mate: X" {
        t.Errorf("unexpected subject: %q", got)
    }
    if len(h.profiles.tracked) != 0 {
        t.Error("test sends must not touch tracking")
    }
    if len(h.sendLog.entries) != 0 {
        t.Error("test sends must not write log entries")
    }
    if len(h.events.published) != 0 {
        t.Error("test sends must not publish events")
    }
}

func TestSendManualLogsWithoutTracking(t *testing.T) {
    h := newHarness()

    email, err := h.svc.SendManual(context.Background(), model.CampaignFeatureSpotlight, "dave@example.com", "Dave Smith", "admin-1", service.RenderParams{})
    if err != nil {
        t.Fatalf("SendManual failed: %v", err)
    }
    if email != "dave@example.com" {
        t.Errorf("unexpected email: %s", email)
    }

    if !strings.Contains(h.sender.sent[0].HTML, "Hi Dave,") {
        t.Error("manual send should greet the override recipient name")
    }

    if len(h.sendLog.entries) != 1 {
        t.Fatalf("expected one log entry, got %d", len(h.sendLog.entries))
    }
    entry := h.sendLog.entries[0]
    if entry.UserID != nil {
        t.Error("manual sends carry no user id")
    }
    if entry.TriggeredBy == nil || *entry.TriggeredBy != "admin-1" {
        t.Errorf("expected triggering admin recorded, got %+v", entry.TriggeredBy)
    }
    if entry.RecipientName == nil || *entry.RecipientName != "Dave Smith" {
        t.Errorf("expected recipient name recorded, got %+v", entry.RecipientName)
    }
    if entry.Status != "sent_manual" {
        t.Errorf("unexpected status: %s", entry.Status)
    }

    if len(h.profiles.tracked) != 0 {
        t.Error("manual sends must not touch tracking")
    }
}

func TestSendUnknownCampaignType(t *testing.T) {
    h := newHarness()

    if _, err := h.svc.SendSingle(context.Background(), "spring_sale", "u1", service.RenderParams{}); err == nil {
        t.Error("SendSingle should reject unknown campaign types")
    }
    if _, err := h.svc.SendBulk(context.Background(), "spring_sale", []string{"u1"}, service.RenderParams{}); err == nil {
        t.Error("SendBulk should reject unknown campaign types")
    }
    if _, err := h.svc.SendTest(context.Background(), "spring_sale", "qa@example.com", service.RenderParams{}); err == nil {
        t.Error("SendTest should reject unknown campaign types")
    }
    if len(h.sender.sent) != 0 {
        t.Error("no sends may happen for unknown campaign types")
    }
}
