package listview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"listloop-server/internal/models"
	"listloop-server/pkg/errors"
)

// Client drives the server's list API over HTTP and satisfies Fetcher
// and Commands. Every mutation carries the connection's socket ID so
// the server excludes this client from the resulting broadcast.
type Client struct {
	baseURL    string
	token      string
	socketID   string
	httpClient *http.Client
}

// NewClient creates an API client. baseURL has no trailing slash;
// token is the caller's bearer token; socketID identifies this
// realtime connection for echo suppression. An empty socketID gets a
// fresh one so the server can always tell this client's own writes
// apart from everyone else's.
func NewClient(baseURL, token, socketID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if socketID == "" {
		socketID = uuid.NewString()
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		socketID:   socketID,
		httpClient: httpClient,
	}
}

// FetchList loads the full tree for a list.
func (c *Client) FetchList(ctx context.Context, listID string) (*ListTree, error) {
	var list models.TodoList
	err := c.do(ctx, http.MethodGet, "/api/v1/lists/"+listID, nil, &list)
	if err != nil {
		return nil, err
	}

	tree := &ListTree{
		ID:          list.ID,
		Title:       list.Title,
		Description: list.Description,
		OwnerID:     list.OwnerID,
		Tasks:       make([]TaskNode, 0, len(list.Tasks)),
	}
	for _, task := range list.Tasks {
		node := TaskNode{
			ID:        task.ID,
			Content:   task.Content,
			Completed: task.Completed,
			Order:     task.Order,
			SubTasks:  make([]SubTaskNode, 0, len(task.SubTasks)),
		}
		for _, sub := range task.SubTasks {
			node.SubTasks = append(node.SubTasks, SubTaskNode{
				ID:        sub.ID,
				Content:   sub.Content,
				Completed: sub.Completed,
				Order:     sub.Order,
			})
		}
		tree.Tasks = append(tree.Tasks, node)
	}
	return tree, nil
}

// AppendItem creates a task or subtask at the end of its scope.
func (c *Client) AppendItem(ctx context.Context, listID string, cmd AppendCommand) (*CreatedItem, error) {
	body := map[string]string{
		"itemType": cmd.ItemType,
		"content":  cmd.Content,
	}
	if cmd.ParentID != "" {
		body["parentId"] = cmd.ParentID
	}

	var created struct {
		ID        string `json:"id"`
		Content   string `json:"content"`
		Completed bool   `json:"completed"`
		Order     int    `json:"order"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/lists/"+listID+"/append", body, &created)
	if err != nil {
		return nil, err
	}
	return &CreatedItem{
		ID:        created.ID,
		Content:   created.Content,
		Completed: created.Completed,
		Order:     created.Order,
	}, nil
}

// PatchItem sends a field-scoped update.
func (c *Client) PatchItem(ctx context.Context, listID, itemType, itemID string, patch models.ItemPatch) error {
	return c.do(ctx, http.MethodPatch,
		fmt.Sprintf("/api/v1/lists/%s/%s/%s", listID, itemType, itemID), patch, nil)
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, listID, itemType, itemID string) error {
	return c.do(ctx, http.MethodDelete,
		fmt.Sprintf("/api/v1/lists/%s/%s/%s", listID, itemType, itemID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Internal("failed to encode request body", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Internal("failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	if c.socketID != "" {
		req.Header.Set("x-socket-id", c.socketID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Upstream("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Upstream("undecodable response body", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	message := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		message = body.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.Unauthenticated(message)
	case http.StatusForbidden:
		return errors.Forbidden(message)
	case http.StatusNotFound:
		return errors.NotFound(message)
	case http.StatusBadRequest:
		return errors.Invalid(message)
	case http.StatusConflict:
		return errors.Conflict(message)
	default:
		return errors.Internal(message, nil)
	}
}
