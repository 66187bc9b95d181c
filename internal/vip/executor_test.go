package vip

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
	"github.com/buckeye-it/ticket-autopilot/internal/domain"
	"github.com/buckeye-it/ticket-autopilot/internal/identity"
	"github.com/buckeye-it/ticket-autopilot/internal/ticketing"
)

type fakeDirectory struct {
	resets   []identity.PasswordReset
	creates  []identity.AccountCreation
	disables []identity.AccountDisable
	err      error
}

func (d *fakeDirectory) ResetPassword(_ context.Context, req identity.PasswordReset) error {
	if d.err != nil {
		return d.err
	}
	d.resets = append(d.resets, req)
	return nil
}

func (d *fakeDirectory) CreateAccount(_ context.Context, req identity.AccountCreation) error {
	if d.err != nil {
		return d.err
	}
	d.creates = append(d.creates, req)
	return nil
}

func (d *fakeDirectory) DisableAccount(_ context.Context, req identity.AccountDisable) error {
	if d.err != nil {
		return d.err
	}
	d.disables = append(d.disables, req)
	return nil
}

type fakeNoteClient struct {
	ticketing.Client

	notes   []ticketing.Note
	noteErr error
}

func (c *fakeNoteClient) AppendNote(_ context.Context, _ int, note ticketing.Note) error {
	if c.noteErr != nil {
		return c.noteErr
	}
	c.notes = append(c.notes, note)
	return nil
}

func newTestExecutor(directory identity.Directory, client ticketing.Client) *Executor {
	e := NewExecutor(directory, client, config.DefaultRules().PasswordPolicy, zap.NewNop())
	e.now = func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	return e
}

func vipTicket(id int) *domain.Ticket {
	return &domain.Ticket{
		ID:          id,
		Summary:     "automation target",
		Priority:    domain.TicketPriorityMedium,
		CompanyName: "Acme Corp VIP",
	}
}

func TestExecutePasswordReset(t *testing.T) {
	directory := &fakeDirectory{}
	client := &fakeNoteClient{}
	executor := newTestExecutor(directory, client)

	decision := &domain.AutomationDecision{
		Type: domain.AutomationPasswordReset,
		Fields: map[string]string{
			domain.FieldUsername: "jdoe",
			domain.FieldDomain:   "corp.local",
		},
	}

	err := executor.Execute(context.Background(), vipTicket(100), decision)
	require.NoError(t, err)

	require.Len(t, directory.resets, 1)
	reset := directory.resets[0]
	assert.Equal(t, "jdoe", reset.Username)
	assert.Equal(t, "corp.local", reset.Domain)
	assert.Len(t, reset.NewPassword, 12)

	require.Len(t, client.notes, 1)
	note := client.notes[0].Text
	assert.Contains(t, note, "AUTOMATED PASSWORD RESET COMPLETED")
	assert.Contains(t, note, "Username: jdoe")
	assert.Contains(t, note, reset.NewPassword)
	assert.Contains(t, note, "2024-03-15 10:30:00")
	assert.Contains(t, note, "expire in 90 days")
	assert.True(t, client.notes[0].DetailFlag)
}

func TestExecutePasswordResetMissingUsername(t *testing.T) {
	directory := &fakeDirectory{}
	client := &fakeNoteClient{}
	executor := newTestExecutor(directory, client)

	decision := &domain.AutomationDecision{
		Type:   domain.AutomationPasswordReset,
		Fields: map[string]string{},
	}

	err := executor.Execute(context.Background(), vipTicket(101), decision)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "101")
	assert.Empty(t, directory.resets)
	assert.Empty(t, client.notes)
}

func TestExecuteAccountCreation(t *testing.T) {
	directory := &fakeDirectory{}
	client := &fakeNoteClient{}
	executor := newTestExecutor(directory, client)

	decision := &domain.AutomationDecision{
		Type: domain.AutomationAccountCreation,
		Fields: map[string]string{
			domain.FieldEmployeeName: "Mary Jane Watson",
		},
	}

	err := executor.Execute(context.Background(), vipTicket(102), decision)
	require.NoError(t, err)

	require.Len(t, directory.creates, 1)
	created := directory.creates[0]
	assert.Equal(t, "mwatson", created.Username)
	assert.Equal(t, "Mary Jane Watson", created.EmployeeName)
	assert.Equal(t, "General", created.Department)
	assert.Len(t, created.InitialPassword, 12)

	require.Len(t, client.notes, 1)
	note := client.notes[0].Text
	assert.Contains(t, note, "AUTOMATED ACCOUNT CREATION COMPLETED")
	assert.Contains(t, note, "Username: mwatson")
	assert.Contains(t, note, "Department: General")
	assert.Contains(t, note, "Email: Not specified")
}

func TestExecuteAccountDisable(t *testing.T) {
	directory := &fakeDirectory{}
	client := &fakeNoteClient{}
	executor := newTestExecutor(directory, client)

	decision := &domain.AutomationDecision{
		Type: domain.AutomationAccountDisable,
		Fields: map[string]string{
			domain.FieldUsername: "jdoe",
		},
	}

	err := executor.Execute(context.Background(), vipTicket(103), decision)
	require.NoError(t, err)

	require.Len(t, directory.disables, 1)
	assert.Equal(t, "No reason specified", directory.disables[0].Reason)

	require.Len(t, client.notes, 1)
	assert.Contains(t, client.notes[0].Text, "Reason: No reason specified")
}

func TestExecuteDirectoryFailure(t *testing.T) {
	directory := &fakeDirectory{err: errors.New("directory unreachable")}
	client := &fakeNoteClient{}
	executor := newTestExecutor(directory, client)

	decision := &domain.AutomationDecision{
		Type:   domain.AutomationAccountDisable,
		Fields: map[string]string{domain.FieldUsername: "jdoe"},
	}

	err := executor.Execute(context.Background(), vipTicket(104), decision)
	require.Error(t, err)
	assert.Empty(t, client.notes, "no note documents an action that did not happen")
}

func TestExecuteNoteFailureDoesNotUndoSuccess(t *testing.T) {
	directory := &fakeDirectory{}
	client := &fakeNoteClient{noteErr: errors.New("platform rejected note")}
	executor := newTestExecutor(directory, client)

	decision := &domain.AutomationDecision{
		Type: domain.AutomationPasswordReset,
		Fields: map[string]string{
			domain.FieldUsername: "jdoe",
		},
	}

	err := executor.Execute(context.Background(), vipTicket(105), decision)
	require.NoError(t, err)
	require.Len(t, directory.resets, 1)
}

func TestExecuteUnknownType(t *testing.T) {
	executor := newTestExecutor(&fakeDirectory{}, &fakeNoteClient{})

	decision := &domain.AutomationDecision{Type: domain.AutomationType("mystery")}
	err := executor.Execute(context.Background(), vipTicket(106), decision)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "mystery"))
}
