package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/platform/auth"
)

var testNow = time.Date(2025, 1, 27, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	repo.now = func() time.Time { return testNow }
	svc := NewService(repo, zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func userCtx(id string) context.Context {
	return auth.WithSession(context.Background(), &auth.Session{UserID: id, Role: auth.RolePatient})
}

func TestService_Conversations_Seeded(t *testing.T) {
	svc, _ := newTestService()
	convs, err := svc.Conversations(userCtx("u-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(convs) != 3 {
		t.Fatalf("expected 3 conversations, got %d", len(convs))
	}
	first := convs[0]
	if first.Doctor != "Dr. Nimal Silva" || first.Specialty != "Cardiologist" || first.Initials != "NS" || !first.Online {
		t.Errorf("unexpected first conversation: %+v", first)
	}
	if len(first.Messages) != 5 || first.Unread != 1 {
		t.Errorf("expected 5 messages with 1 unread, got %d/%d", len(first.Messages), first.Unread)
	}
	if got := first.Last().Body; got != "Your test results look good. Let's schedule a follow-up appointment." {
		t.Errorf("unexpected last message %q", got)
	}
	if convs[1].Doctor != "Dr. Kamani Perera" || convs[1].Online {
		t.Errorf("expected Dr. Kamani Perera offline second, got %+v", convs[1])
	}
	if convs[2].Doctor != "Dr. Priya Jayawardena" {
		t.Errorf("expected Dr. Priya Jayawardena third, got %s", convs[2].Doctor)
	}
}

func TestService_Open_MarksRead(t *testing.T) {
	svc, _ := newTestService()
	ctx := userCtx("u-1")
	if n, _ := svc.Unread(ctx); n != 1 {
		t.Fatalf("expected 1 unread, got %d", n)
	}
	c, err := svc.Open(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if c.Unread != 0 {
		t.Error("opened conversation should report no unread")
	}
	if n, _ := svc.Unread(ctx); n != 0 {
		t.Errorf("expected 0 unread after opening, got %d", n)
	}
}

func TestService_Open_NotFound(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Open(userCtx("u-1"), "9"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestService_Send(t *testing.T) {
	svc, _ := newTestService()
	ctx := userCtx("u-1")
	sent, err := svc.Send(ctx, "2", "  Will do, thank you.  ")
	if err != nil || !sent {
		t.Fatalf("expected message sent, got %v %v", sent, err)
	}
	c, err := svc.Open(ctx, "2")
	if err != nil {
		t.Fatal(err)
	}
	last := c.Last()
	if last.Body != "Will do, thank you." || !last.FromPatient() || !last.SentAt.Equal(testNow) {
		t.Errorf("unexpected last message: %+v", last)
	}
}

func TestService_Send_IgnoresBlank(t *testing.T) {
	svc, _ := newTestService()
	ctx := userCtx("u-1")
	for _, body := range []string{"", "   ", "\n\t"} {
		sent, err := svc.Send(ctx, "1", body)
		if err != nil || sent {
			t.Errorf("blank %q should be ignored, got %v %v", body, sent, err)
		}
	}
	c, _ := svc.Open(ctx, "1")
	if len(c.Messages) != 5 {
		t.Errorf("expected thread unchanged, got %d messages", len(c.Messages))
	}
}

func TestService_Send_UnknownConversation(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Send(userCtx("u-1"), "x", "hello"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestService_InboxesArePerUser(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Send(userCtx("u-1"), "1", "hello"); err != nil {
		t.Fatal(err)
	}
	c, err := svc.Open(userCtx("u-2"), "1")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Messages) != 5 {
		t.Errorf("another user's message leaked into this inbox: %d messages", len(c.Messages))
	}
}

func TestMemoryRepo_ReturnsCopies(t *testing.T) {
	_, repo := newTestService()
	ctx := context.Background()
	c, err := repo.Get(ctx, "u-1", "1")
	if err != nil {
		t.Fatal(err)
	}
	c.Messages[0].Body = "changed"
	again, _ := repo.Get(ctx, "u-1", "1")
	if again.Messages[0].Body == "changed" {
		t.Error("mutating a returned conversation changed the store")
	}
}

func TestMemoryRepo_Append_DropsOldest(t *testing.T) {
	_, repo := newTestService()
	repo.limit = 3
	ctx := context.Background()
	for _, body := range []string{"a", "b", "c", "d", "e"} {
		if err := repo.Append(ctx, "u-1", "1", Message{ID: body, Body: body, Sender: FromPatient, SentAt: testNow}); err != nil {
			t.Fatal(err)
		}
	}
	c, err := repo.Get(ctx, "u-1", "1")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(c.Messages))
	}
	for i, want := range []string{"c", "d", "e"} {
		if c.Messages[i].Body != want {
			t.Errorf("message %d: expected %q, got %q", i, want, c.Messages[i].Body)
		}
	}
}

func TestAgo(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{45 * time.Minute, "45 minutes ago"},
		{2 * time.Hour, "2 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		if got := Ago(testNow, testNow.Add(-tt.d)); got != tt.want {
			t.Errorf("Ago(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
