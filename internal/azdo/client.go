// Package azdo is a minimal Azure DevOps work item tracking client: just
// the read, query, create and patch operations the assistant needs.
package azdo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sprintsense/internal/domain"
)

const apiVersion = "7.0"

// batchSize is the Azure DevOps limit on ids per work item batch read.
const batchSize = 200

// Config identifies the organization and project to operate on.
type Config struct {
	BaseURL      string // defaults to https://dev.azure.com
	Organization string
	Project      string
	PAT          string
}

// Client talks to the Azure DevOps work item tracking REST API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a work item tracking client authenticated with a
// personal access token.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://dev.azure.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// workItemPayload is the REST representation of a single work item.
type workItemPayload struct {
	ID        int            `json:"id"`
	Fields    map[string]any `json:"fields"`
	URL       string         `json:"url"`
	Relations []struct {
		Rel string `json:"rel"`
		URL string `json:"url"`
	} `json:"relations"`
}

func (p workItemPayload) toDomain() *domain.WorkItem {
	item := &domain.WorkItem{
		ID:     p.ID,
		URL:    p.URL,
		Fields: p.Fields,
	}
	if s, ok := p.Fields[domain.FieldWorkItemType].(string); ok {
		item.Type, _ = domain.ParseWorkItemType(s)
	}
	if s, ok := p.Fields[domain.FieldTitle].(string); ok {
		item.Title = s
	}
	if s, ok := p.Fields[domain.FieldState].(string); ok {
		item.State = s
	}
	return item
}

// GetWorkItem fetches one work item with its full field map.
func (c *Client) GetWorkItem(ctx context.Context, id int) (*domain.WorkItem, error) {
	var payload workItemPayload
	path := fmt.Sprintf("/wit/workitems/%d", id)
	if err := c.do(ctx, http.MethodGet, c.projectURL(path, nil), nil, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// GetWorkItems fetches work items by id, batching requests at the API's
// 200-id limit. Unknown ids are skipped, not errors.
func (c *Client) GetWorkItems(ctx context.Context, ids []int) ([]*domain.WorkItem, error) {
	items := make([]*domain.WorkItem, 0, len(ids))
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		parts := make([]string, len(batch))
		for i, id := range batch {
			parts[i] = strconv.Itoa(id)
		}
		q := url.Values{"ids": {strings.Join(parts, ",")}, "errorPolicy": {"omit"}}

		var payload struct {
			Value []workItemPayload `json:"value"`
		}
		if err := c.do(ctx, http.MethodGet, c.projectURL("/wit/workitems", q), nil, &payload); err != nil {
			return nil, err
		}
		for _, p := range payload.Value {
			items = append(items, p.toDomain())
		}
	}
	return items, nil
}

// QueryAssignedIDs runs a WIQL query for open work items assigned to the
// given user, ordered by work item type.
func (c *Client) QueryAssignedIDs(ctx context.Context, user string) ([]int, error) {
	wiql := fmt.Sprintf(
		"SELECT [System.Id] FROM WorkItems "+
			"WHERE [System.AssignedTo] CONTAINS '%s' "+
			"AND [System.State] NOT IN ('Closed', 'Removed') "+
			"ORDER BY [System.WorkItemType]",
		strings.ReplaceAll(user, "'", "''"))

	body := map[string]string{"query": wiql}
	var payload struct {
		WorkItems []struct {
			ID int `json:"id"`
		} `json:"workItems"`
	}
	if err := c.do(ctx, http.MethodPost, c.projectURL("/wit/wiql", nil), body, &payload); err != nil {
		return nil, err
	}

	ids := make([]int, len(payload.WorkItems))
	for i, wi := range payload.WorkItems {
		ids[i] = wi.ID
	}
	return ids, nil
}

// GetChildTasks fetches the Task children of a work item by expanding its
// forward hierarchy relations.
func (c *Client) GetChildTasks(ctx context.Context, id int) ([]*domain.WorkItem, error) {
	var payload workItemPayload
	path := fmt.Sprintf("/wit/workitems/%d", id)
	q := url.Values{"$expand": {"relations"}}
	if err := c.do(ctx, http.MethodGet, c.projectURL(path, q), nil, &payload); err != nil {
		return nil, err
	}

	var childIDs []int
	for _, rel := range payload.Relations {
		if rel.Rel != "System.LinkTypes.Hierarchy-Forward" {
			continue
		}
		if childID, ok := idFromURL(rel.URL); ok {
			childIDs = append(childIDs, childID)
		}
	}
	if len(childIDs) == 0 {
		return nil, nil
	}

	children, err := c.GetWorkItems(ctx, childIDs)
	if err != nil {
		return nil, err
	}

	tasks := children[:0]
	for _, child := range children {
		if child.Type == domain.TypeTask {
			tasks = append(tasks, child)
		}
	}
	return tasks, nil
}

// CreateTask creates a new Task work item from a JSON-Patch body.
func (c *Client) CreateTask(ctx context.Context, spec NewTaskSpec) (*domain.WorkItem, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var payload workItemPayload
	u := c.projectURL("/wit/workitems/$Task", nil)
	if err := c.doPatchBody(ctx, http.MethodPost, u, NewTaskOps(spec), &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// UpdateWorkItemFields applies a JSON-Patch field update to a work item.
func (c *Client) UpdateWorkItemFields(ctx context.Context, id int, ops []PatchOp) (*domain.WorkItem, error) {
	if len(ops) == 0 {
		return c.GetWorkItem(ctx, id)
	}

	var payload workItemPayload
	u := c.projectURL(fmt.Sprintf("/wit/workitems/%d", id), nil)
	if err := c.doPatchBody(ctx, http.MethodPatch, u, ops, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// TestConnection verifies the organization, project and token by listing
// projects.
func (c *Client) TestConnection(ctx context.Context) error {
	u := fmt.Sprintf("%s/%s/_apis/projects?api-version=%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.Organization), apiVersion)
	return c.do(ctx, http.MethodGet, u, nil, nil)
}

// projectURL builds a project-scoped _apis URL with the api-version set.
func (c *Client) projectURL(path string, q url.Values) string {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api-version", apiVersion)
	return fmt.Sprintf("%s/%s/%s/_apis%s?%s",
		c.cfg.BaseURL,
		url.PathEscape(c.cfg.Organization),
		url.PathEscape(c.cfg.Project),
		path, q.Encode())
}

func (c *Client) do(ctx context.Context, method, u string, body any, out any) error {
	return c.send(ctx, method, u, body, "application/json", out)
}

func (c *Client) doPatchBody(ctx context.Context, method, u string, ops []PatchOp, out any) error {
	return c.send(ctx, method, u, ops, "application/json-patch+json", out)
}

func (c *Client) send(ctx context.Context, method, u string, body any, contentType string, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(":"+c.cfg.PAT)))

	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return ErrUnavailable
		}
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNonAuthoritativeInfo:
		// Azure DevOps answers 203 with a sign-in page when the PAT is bad.
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("azure devops returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// idFromURL extracts the trailing numeric id from a work item URL.
func idFromURL(u string) (int, bool) {
	idx := strings.LastIndexByte(u, '/')
	if idx == -1 {
		return 0, false
	}
	id, err := strconv.Atoi(u[idx+1:])
	if err != nil {
		return 0, false
	}
	return id, true
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.As(urlErr.Err, &netErr) || urlErr.Timeout()
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
