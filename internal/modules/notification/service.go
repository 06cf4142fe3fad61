package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printshophq/printshop-backend/internal/metrics"
	"github.com/printshophq/printshop-backend/internal/modules/customer"
)

// Service dispatches notifications and records one log row per channel
// attempt. Dispatch is synchronous and attempts each channel exactly once;
// the outbox worker path (DispatchEntry) adds backoff retries.
type Service interface {
	Dispatch(ctx context.Context, req DispatchRequest) (*DispatchResult, error)
	DispatchEntry(ctx context.Context, e *OutboxEntry) (*DispatchResult, error)
	ListLogs(ctx context.Context, limit int) ([]*Log, error)
}

type service struct {
	repo      Repository
	customers customer.Repository
	email     *EmailSender
	sms       SMSGateway
	retries   int
	logger    *zap.Logger
}

// NewService creates a new notification service.
func NewService(repo Repository, customers customer.Repository, email *EmailSender, sms SMSGateway, retries int, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		customers: customers,
		email:     email,
		sms:       sms,
		retries:   retries,
		logger:    logger,
	}
}

func (s *service) Dispatch(ctx context.Context, req DispatchRequest) (*DispatchResult, error) {
	if req.CustomerID == "" {
		return nil, fmt.Errorf("customer_id is required")
	}
	if req.Message == "" {
		return nil, fmt.Errorf("message is required")
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id: %w", err)
	}
	channel := req.Channel
	if channel == "" {
		channel = ChannelBoth
	}
	if channel != ChannelEmail && channel != ChannelSMS && channel != ChannelBoth {
		return nil, fmt.Errorf("unknown channel %q", channel)
	}

	return s.send(ctx, customerID, req.Event, req.Subject, req.Message, channel, false), nil
}

func (s *service) DispatchEntry(ctx context.Context, e *OutboxEntry) (*DispatchResult, error) {
	return s.send(ctx, e.CustomerID, e.Event, e.Subject, e.Message, e.Channel, true), nil
}

func (s *service) ListLogs(ctx context.Context, limit int) ([]*Log, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.ListLogs(ctx, limit)
}

// send attempts the selected channels independently. Resubmitting the same
// event sends again; there is no deduplication.
func (s *service) send(ctx context.Context, customerID uuid.UUID, event, subject, message string, channel Channel, withRetry bool) *DispatchResult {
	result := &DispatchResult{Errors: []string{}}

	c, err := s.customers.GetByID(ctx, customerID.String())
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("customer lookup failed: %v", err))
		return result
	}

	if channel == ChannelEmail || channel == ChannelBoth {
		sendErr := s.attemptEmail(ctx, c, event, subject, message, withRetry)
		if sendErr != nil {
			result.Errors = append(result.Errors, sendErr.Error())
			metrics.NotificationFailures.WithLabelValues("email").Inc()
		} else {
			result.EmailSent = true
			metrics.NotificationsSent.WithLabelValues("email").Inc()
		}
	}

	if channel == ChannelSMS || channel == ChannelBoth {
		sendErr := s.attemptSMS(ctx, c, event, message, withRetry)
		if sendErr != nil {
			result.Errors = append(result.Errors, sendErr.Error())
			metrics.NotificationFailures.WithLabelValues("sms").Inc()
		} else {
			result.SMSSent = true
			metrics.NotificationsSent.WithLabelValues("sms").Inc()
		}
	}

	result.Success = len(result.Errors) == 0
	return result
}

func (s *service) attemptEmail(ctx context.Context, c *customer.Customer, event, subject, message string, withRetry bool) error {
	var sendErr error
	if c.Email == "" {
		sendErr = fmt.Errorf("customer %s has no email address", c.DisplayID)
	} else if withRetry {
		sendErr = s.email.SendWithRetry(ctx, c.Email, subject, message, s.retries)
	} else {
		sendErr = s.email.Send(c.Email, subject, message)
	}
	s.appendLog(ctx, c, "email", event, c.Email, subject, message, sendErr)
	return sendErr
}

func (s *service) attemptSMS(ctx context.Context, c *customer.Customer, event, message string, withRetry bool) error {
	var sendErr error
	if c.Phone == "" {
		sendErr = fmt.Errorf("customer %s has no phone number", c.DisplayID)
	} else if withRetry {
		sendErr = SendSMSWithRetry(ctx, s.sms, c.Phone, message, s.retries)
	} else {
		sendErr = s.sms.Send(ctx, c.Phone, message)
	}
	s.appendLog(ctx, c, "sms", event, c.Phone, "", message, sendErr)
	return sendErr
}

// appendLog writes exactly one row per attempt, with the final outcome.
func (s *service) appendLog(ctx context.Context, c *customer.Customer, channel, event, recipient, subject, message string, sendErr error) {
	l := &Log{
		ID:         uuid.New(),
		CustomerID: c.ID,
		Type:       channel,
		Event:      event,
		Recipient:  recipient,
		Subject:    subject,
		Message:    message,
		Status:     LogSent,
	}
	if sendErr != nil {
		l.Status = LogFailed
		l.ErrorDetail = sendErr.Error()
	}
	if err := s.repo.InsertLog(ctx, l); err != nil {
		s.logger.Error("failed to write notification log",
			zap.String("customer_id", c.ID.String()),
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
}
