// Package identity abstracts the directory backend that automation
// actions would execute against. The real integration is out of scope;
// the logging stub stands in for it.
package identity

import (
	"context"

	"go.uber.org/zap"
)

// PasswordReset carries the parameters of a directory password reset.
type PasswordReset struct {
	Username    string
	Domain      string
	NewPassword string
}

// AccountCreation carries the parameters of a new directory account.
type AccountCreation struct {
	Username        string
	EmployeeName    string
	Department      string
	Email           string
	InitialPassword string
}

// AccountDisable carries the parameters of a directory account disable.
type AccountDisable struct {
	Username string
	Reason   string
}

// Directory performs identity-system changes.
type Directory interface {
	ResetPassword(ctx context.Context, req PasswordReset) error
	CreateAccount(ctx context.Context, req AccountCreation) error
	DisableAccount(ctx context.Context, req AccountDisable) error
}

// LoggingDirectory is the stub backend: it records the action and
// succeeds. Secrets are never written to the log.
type LoggingDirectory struct {
	logger *zap.Logger
}

var _ Directory = (*LoggingDirectory)(nil)

// NewLoggingDirectory builds the stub.
func NewLoggingDirectory(logger *zap.Logger) *LoggingDirectory {
	return &LoggingDirectory{logger: logger}
}

// ResetPassword logs the reset.
func (d *LoggingDirectory) ResetPassword(_ context.Context, req PasswordReset) error {
	d.logger.Info("directory password reset",
		zap.String("username", req.Username),
		zap.String("domain", req.Domain))
	return nil
}

// CreateAccount logs the creation.
func (d *LoggingDirectory) CreateAccount(_ context.Context, req AccountCreation) error {
	d.logger.Info("directory account created",
		zap.String("username", req.Username),
		zap.String("employee", req.EmployeeName),
		zap.String("department", req.Department))
	return nil
}

// DisableAccount logs the disable.
func (d *LoggingDirectory) DisableAccount(_ context.Context, req AccountDisable) error {
	d.logger.Info("directory account disabled",
		zap.String("username", req.Username),
		zap.String("reason", req.Reason))
	return nil
}
