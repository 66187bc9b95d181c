package vip

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
	"github.com/buckeye-it/ticket-autopilot/internal/domain"
	"github.com/buckeye-it/ticket-autopilot/internal/identity"
	"github.com/buckeye-it/ticket-autopilot/internal/ticketing"
)

const noteTimeFormat = "2006-01-02 15:04:05"

// Executor performs the automation action for a decision and documents it
// in a ticket note. Each action validates its required extracted fields
// before touching the directory; a missing field is a hard failure.
type Executor struct {
	directory identity.Directory
	client    ticketing.Client
	policy    config.PasswordPolicy
	logger    *zap.Logger
	now       func() time.Time
}

// NewExecutor builds an executor.
func NewExecutor(directory identity.Directory, client ticketing.Client, policy config.PasswordPolicy, logger *zap.Logger) *Executor {
	return &Executor{
		directory: directory,
		client:    client,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute runs the decision's automation action. The returned error is
// the success/failure signal the pipeline uses to decide auto-resolution.
func (e *Executor) Execute(ctx context.Context, ticket *domain.Ticket, decision *domain.AutomationDecision) error {
	switch decision.Type {
	case domain.AutomationPasswordReset:
		return e.passwordReset(ctx, ticket, decision.Fields)
	case domain.AutomationAccountCreation:
		return e.accountCreation(ctx, ticket, decision.Fields)
	case domain.AutomationAccountDisable:
		return e.accountDisable(ctx, ticket, decision.Fields)
	default:
		return fmt.Errorf("unknown automation type %q", decision.Type)
	}
}

func (e *Executor) passwordReset(ctx context.Context, ticket *domain.Ticket, fields map[string]string) error {
	username := fields[domain.FieldUsername]
	if username == "" {
		e.logger.Warn("cannot reset password, no username extracted",
			zap.Int("ticket_id", ticket.ID))
		return fmt.Errorf("password reset for ticket %d: no username found", ticket.ID)
	}

	newPassword, err := GeneratePassword(e.policy)
	if err != nil {
		return fmt.Errorf("generate password: %w", err)
	}

	if err := e.directory.ResetPassword(ctx, identity.PasswordReset{
		Username:    username,
		Domain:      fields[domain.FieldDomain],
		NewPassword: newPassword,
	}); err != nil {
		e.logger.Error("password reset failed",
			zap.Int("ticket_id", ticket.ID),
			zap.String("username", username),
			zap.Error(err))
		return err
	}
	e.logger.Info("password reset completed",
		zap.Int("ticket_id", ticket.ID),
		zap.String("username", username))

	note := fmt.Sprintf(`AUTOMATED PASSWORD RESET COMPLETED

Username: %s
New Password: %s
Reset Time: %s

This password reset was performed automatically by the VIP automation system.
Please contact the user with the new password.

Note: This password will expire in %d days and must be changed on first login.`,
		username, newPassword, e.now().Format(noteTimeFormat), e.policy.ExpirationDays)

	e.appendNote(ctx, ticket.ID, note)
	return nil
}

func (e *Executor) accountCreation(ctx context.Context, ticket *domain.Ticket, fields map[string]string) error {
	employeeName := fields[domain.FieldEmployeeName]
	if employeeName == "" {
		e.logger.Warn("cannot create account, no employee name extracted",
			zap.Int("ticket_id", ticket.ID))
		return fmt.Errorf("account creation for ticket %d: no employee name found", ticket.ID)
	}
	department := fields[domain.FieldDepartment]
	if department == "" {
		department = "General"
	}

	username := UsernameFromName(employeeName)
	initialPassword, err := GeneratePassword(e.policy)
	if err != nil {
		return fmt.Errorf("generate password: %w", err)
	}

	if err := e.directory.CreateAccount(ctx, identity.AccountCreation{
		Username:        username,
		EmployeeName:    employeeName,
		Department:      department,
		Email:           fields[domain.FieldEmail],
		InitialPassword: initialPassword,
	}); err != nil {
		e.logger.Error("account creation failed",
			zap.Int("ticket_id", ticket.ID),
			zap.String("employee", employeeName),
			zap.Error(err))
		return err
	}
	e.logger.Info("account creation completed",
		zap.Int("ticket_id", ticket.ID),
		zap.String("employee", employeeName),
		zap.String("username", username))

	email := fields[domain.FieldEmail]
	if email == "" {
		email = "Not specified"
	}
	note := fmt.Sprintf(`AUTOMATED ACCOUNT CREATION COMPLETED

Employee Name: %s
Username: %s
Department: %s
Email: %s
Initial Password: %s
Created: %s

This account was created automatically by the VIP automation system.
Please provide the username and password to the employee.

Note: The password must be changed on first login.`,
		employeeName, username, department, email, initialPassword, e.now().Format(noteTimeFormat))

	e.appendNote(ctx, ticket.ID, note)
	return nil
}

func (e *Executor) accountDisable(ctx context.Context, ticket *domain.Ticket, fields map[string]string) error {
	username := fields[domain.FieldUsername]
	if username == "" {
		e.logger.Warn("cannot disable account, no username extracted",
			zap.Int("ticket_id", ticket.ID))
		return fmt.Errorf("account disable for ticket %d: no username found", ticket.ID)
	}
	reason := fields[domain.FieldReason]
	if reason == "" {
		reason = "No reason specified"
	}

	if err := e.directory.DisableAccount(ctx, identity.AccountDisable{
		Username: username,
		Reason:   reason,
	}); err != nil {
		e.logger.Error("account disable failed",
			zap.Int("ticket_id", ticket.ID),
			zap.String("username", username),
			zap.Error(err))
		return err
	}
	e.logger.Info("account disable completed",
		zap.Int("ticket_id", ticket.ID),
		zap.String("username", username),
		zap.String("reason", reason))

	note := fmt.Sprintf(`AUTOMATED ACCOUNT DISABLE COMPLETED

Username: %s
Reason: %s
Disabled: %s

This account was disabled automatically by the VIP automation system.
The account has been locked and all access has been revoked.

Note: This action can be reversed by re-enabling the account if needed.`,
		username, reason, e.now().Format(noteTimeFormat))

	e.appendNote(ctx, ticket.ID, note)
	return nil
}

// appendNote documents the action on the ticket. The action has already
// happened at this point, so a note failure is logged but does not undo
// the reported success.
func (e *Executor) appendNote(ctx context.Context, ticketID int, text string) {
	err := e.client.AppendNote(ctx, ticketID, ticketing.Note{
		Text:       text,
		DetailFlag: true,
	})
	if err != nil {
		e.logger.Warn("failed to append automation note",
			zap.Int("ticket_id", ticketID),
			zap.Error(err))
	}
}
