// Package connectwise implements the ticketing collaborator against the
// ConnectWise Manage REST API.
package connectwise

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
	"github.com/buckeye-it/ticket-autopilot/internal/domain"
	"github.com/buckeye-it/ticket-autopilot/internal/ticketing"
)

const apiPrefix = "/v4_6_release/apis/3.0"

// workloadPageSize bounds the workload count query. A technician owning
// more active tickets than this is over any configured limit anyway.
const workloadPageSize = 200

// Client talks to ConnectWise. It implements ticketing.Client.
type Client struct {
	cfg        config.ConnectWiseConfig
	httpClient *http.Client
	authHeader string
	logger     *zap.Logger
}

var _ ticketing.Client = (*Client)(nil)

// NewClient builds a ConnectWise client from configuration.
func NewClient(cfg config.ConnectWiseConfig, logger *zap.Logger) *Client {
	credentials := fmt.Sprintf("%s+%s:%s", cfg.CompanyID, cfg.PublicKey, cfg.PrivateKey)
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.APITimeout()},
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials)),
		logger:     logger,
	}
}

// FetchTickets returns tickets matching the query, most urgent and oldest first.
func (c *Client) FetchTickets(ctx context.Context, query ticketing.TicketQuery) ([]*domain.Ticket, error) {
	conditions := statusConditions(query.Statuses)
	if query.UnassignedOnly {
		unowned := `(owner/id is null OR owner/id="")`
		if conditions == "" {
			conditions = unowned
		} else {
			conditions = fmt.Sprintf("%s AND (%s)", unowned, conditions)
		}
	}

	params := url.Values{}
	if conditions != "" {
		params.Set("conditions", conditions)
	}
	params.Set("orderBy", "priority/name asc, dateEntered asc")
	params.Set("pageSize", fmt.Sprintf("%d", c.pageSize()))

	var wire []wireTicket
	if err := c.get(ctx, "/service/tickets", params, &wire); err != nil {
		return nil, fmt.Errorf("fetch tickets: %w", err)
	}

	tickets := make([]*domain.Ticket, 0, len(wire))
	for _, t := range wire {
		tickets = append(tickets, t.toDomain())
	}
	return tickets, nil
}

// FetchTechnicians returns the member roster.
func (c *Client) FetchTechnicians(ctx context.Context, activeOnly bool) ([]*domain.Technician, error) {
	params := url.Values{}
	if activeOnly {
		params.Set("conditions", "inactiveFlag=false AND adminFlag=true")
	}
	params.Set("pageSize", "100")

	var wire []wireMember
	if err := c.get(ctx, "/system/members", params, &wire); err != nil {
		return nil, fmt.Errorf("fetch technicians: %w", err)
	}

	techs := make([]*domain.Technician, 0, len(wire))
	for _, m := range wire {
		techs = append(techs, &domain.Technician{
			ID:    m.ID,
			Email: m.EmailAddress,
			Name:  m.FullName,
		})
	}
	return techs, nil
}

// FetchWorkload counts the technician's tickets in the counted statuses.
func (c *Client) FetchWorkload(ctx context.Context, technicianID int, countedStatuses []string) (int, error) {
	conditions := fmt.Sprintf("owner/id=%d", technicianID)
	if sc := statusConditions(countedStatuses); sc != "" {
		conditions = fmt.Sprintf("%s AND (%s)", conditions, sc)
	}

	params := url.Values{}
	params.Set("conditions", conditions)
	params.Set("pageSize", fmt.Sprintf("%d", workloadPageSize))

	var wire []wireTicket
	if err := c.get(ctx, "/service/tickets", params, &wire); err != nil {
		return 0, fmt.Errorf("fetch workload for tech %d: %w", technicianID, err)
	}
	return len(wire), nil
}

// SetOwner assigns the ticket to the technician.
func (c *Client) SetOwner(ctx context.Context, ticketID, technicianID int) error {
	body := ownerPatch{Owner: idRef{ID: technicianID}}
	if err := c.patch(ctx, fmt.Sprintf("/service/tickets/%d", ticketID), body); err != nil {
		return fmt.Errorf("set owner of ticket %d: %w", ticketID, err)
	}
	return nil
}

// SetStatus moves the ticket to the named status.
func (c *Client) SetStatus(ctx context.Context, ticketID int, status string) error {
	body := statusPatch{Status: nameRef{Name: status}}
	if err := c.patch(ctx, fmt.Sprintf("/service/tickets/%d", ticketID), body); err != nil {
		return fmt.Errorf("set status of ticket %d: %w", ticketID, err)
	}
	return nil
}

// AppendNote adds a note to the ticket.
func (c *Client) AppendNote(ctx context.Context, ticketID int, note ticketing.Note) error {
	body := wireNote{
		Text:                  note.Text,
		DetailDescriptionFlag: note.DetailFlag,
		InternalAnalysisFlag:  note.InternalAnalysis,
	}
	if err := c.post(ctx, fmt.Sprintf("/service/tickets/%d/notes", ticketID), body); err != nil {
		return fmt.Errorf("append note to ticket %d: %w", ticketID, err)
	}
	return nil
}

func (c *Client) pageSize() int {
	if c.cfg.PageSize <= 0 {
		return 50
	}
	return c.cfg.PageSize
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Site+apiPrefix+path, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = params.Encode()
	return c.do(req, out)
}

func (c *Client) patch(ctx context.Context, path string, body any) error {
	return c.write(ctx, http.MethodPatch, path, body)
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	return c.write(ctx, http.MethodPost, path, body)
}

func (c *Client) write(ctx context.Context, method, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Site+apiPrefix+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("clientId", c.cfg.ClientID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("connectwise request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet))
		return fmt.Errorf("connectwise %s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusConditions(statuses []string) string {
	if len(statuses) == 0 {
		return ""
	}
	clauses := make([]string, 0, len(statuses))
	for _, status := range statuses {
		clauses = append(clauses, fmt.Sprintf("status/name=%q", status))
	}
	return strings.Join(clauses, " OR ")
}

func (t wireTicket) toDomain() *domain.Ticket {
	ticket := &domain.Ticket{
		ID:          t.ID,
		Summary:     t.Summary,
		Description: t.InitialDescription,
		Priority:    domain.TicketPriority(t.Priority.Name),
		Board:       t.Board.Name,
		CompanyName: t.Company.Name,
		Status:      t.Status.Name,
	}
	if t.Owner != nil && t.Owner.ID != 0 {
		id := t.Owner.ID
		ticket.OwnerID = &id
	}
	return ticket
}
