package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printshophq/printshop-backend/internal/modules/customer"
)

type fakeLogRepo struct {
	Repository
	logs []*Log
}

func (f *fakeLogRepo) InsertLog(ctx context.Context, l *Log) error {
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeLogRepo) ListLogs(ctx context.Context, limit int) ([]*Log, error) {
	return f.logs, nil
}

type fakeCustomerRepo struct {
	customer.Repository
	c *customer.Customer
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	if f.c == nil {
		return nil, errors.New("no rows")
	}
	return f.c, nil
}

type fakeSMS struct {
	sent []string
	err  error
}

func (f *fakeSMS) Send(ctx context.Context, to, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestService(c *customer.Customer, sms *fakeSMS) (Service, *fakeLogRepo) {
	repo := &fakeLogRepo{}
	svc := NewService(repo, &fakeCustomerRepo{c: c}, &EmailSender{}, sms, 1, zap.NewNop())
	return svc, repo
}

func TestDispatchSMSOnly(t *testing.T) {
	c := &customer.Customer{ID: uuid.New(), DisplayID: "CUST-000001", Phone: "+260971112222"}
	sms := &fakeSMS{}
	svc, repo := newTestService(c, sms)

	result, err := svc.Dispatch(context.Background(), DispatchRequest{
		CustomerID: c.ID.String(),
		Event:      "status_updated",
		Message:    "Your order is ready.",
		Channel:    ChannelSMS,
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !result.Success || !result.SMSSent || result.EmailSent {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(sms.sent) != 1 || sms.sent[0] != c.Phone {
		t.Fatalf("expected one SMS to %s, got %v", c.Phone, sms.sent)
	}
	if len(repo.logs) != 1 || repo.logs[0].Type != "sms" || repo.logs[0].Status != LogSent {
		t.Fatalf("expected one sent sms log row, got %+v", repo.logs)
	}
}

func TestDispatchBothWritesOneLogRowPerChannel(t *testing.T) {
	// No email address on file: the email attempt fails but the SMS side
	// still runs on its own.
	c := &customer.Customer{ID: uuid.New(), DisplayID: "CUST-000002", Phone: "+260973334444"}
	sms := &fakeSMS{}
	svc, repo := newTestService(c, sms)

	result, err := svc.Dispatch(context.Background(), DispatchRequest{
		CustomerID: c.ID.String(),
		Event:      "job_submitted",
		Subject:    "Order received",
		Message:    "We received your order.",
		Channel:    ChannelBoth,
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result.Success {
		t.Fatalf("expected partial failure, got success")
	}
	if result.EmailSent || !result.SMSSent {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(repo.logs) != 2 {
		t.Fatalf("expected exactly one log row per channel, got %d", len(repo.logs))
	}
	byType := map[string]LogStatus{}
	for _, l := range repo.logs {
		byType[l.Type] = l.Status
	}
	if byType["email"] != LogFailed || byType["sms"] != LogSent {
		t.Fatalf("unexpected log statuses %v", byType)
	}
}

func TestDispatchMissingContactInfoFailsBothChannels(t *testing.T) {
	c := &customer.Customer{ID: uuid.New(), DisplayID: "CUST-000003"}
	svc, repo := newTestService(c, &fakeSMS{})

	result, err := svc.Dispatch(context.Background(), DispatchRequest{
		CustomerID: c.ID.String(),
		Event:      "status_updated",
		Message:    "update",
		Channel:    ChannelBoth,
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result.Success || len(result.Errors) != 2 {
		t.Fatalf("expected two channel failures, got %+v", result)
	}
	for _, l := range repo.logs {
		if l.Status != LogFailed {
			t.Fatalf("expected failed log rows, got %+v", l)
		}
	}
}

func TestDispatchValidation(t *testing.T) {
	svc, _ := newTestService(nil, &fakeSMS{})

	if _, err := svc.Dispatch(context.Background(), DispatchRequest{Message: "hi"}); err == nil {
		t.Fatalf("expected error for missing customer_id")
	}
	if _, err := svc.Dispatch(context.Background(), DispatchRequest{
		CustomerID: uuid.New().String(),
	}); err == nil {
		t.Fatalf("expected error for missing message")
	}
	if _, err := svc.Dispatch(context.Background(), DispatchRequest{
		CustomerID: uuid.New().String(),
		Message:    "hi",
		Channel:    Channel("pigeon"),
	}); err == nil {
		t.Fatalf("expected error for unknown channel")
	}
}

func TestDispatchFailedSMSLogsError(t *testing.T) {
	c := &customer.Customer{ID: uuid.New(), DisplayID: "CUST-000004", Phone: "+260970000000"}
	svc, repo := newTestService(c, &fakeSMS{err: errors.New("gateway timeout")})

	result, err := svc.Dispatch(context.Background(), DispatchRequest{
		CustomerID: c.ID.String(),
		Event:      "status_updated",
		Message:    "update",
		Channel:    ChannelSMS,
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result.Success || result.SMSSent {
		t.Fatalf("expected failure, got %+v", result)
	}
	if len(repo.logs) != 1 || repo.logs[0].ErrorDetail == "" {
		t.Fatalf("expected one failed log row with detail, got %+v", repo.logs)
	}
}
