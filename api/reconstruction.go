package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// CreateTask starts a reconstruction job for an uploaded picture.
func (c *Client) CreateTask(ctx context.Context, imageID, name string) (lab.ReconstructionTask, error) {
	form := url.Values{}
	form.Set("imageId", imageID)
	if name != "" {
		form.Set("name", name)
	}
	var dto taskDTO
	if err := c.doForm(ctx, "/reconstruction/create", form, &dto); err != nil {
		return lab.ReconstructionTask{}, err
	}
	return dto.toTask(), nil
}

// TaskStatus fetches the current state of one task.
func (c *Client) TaskStatus(ctx context.Context, taskID string) (lab.ReconstructionTask, error) {
	var dto taskDTO
	if err := c.do(ctx, http.MethodGet, "/reconstruction/status/"+url.PathEscape(taskID), nil, &dto); err != nil {
		return lab.ReconstructionTask{}, err
	}
	return dto.toTask(), nil
}

// ListTasks returns one page of tasks, optionally filtered by status.
func (c *Client) ListTasks(ctx context.Context, status string, page lab.PageRequest) (lab.Page[lab.ReconstructionTask], error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if page.Current > 0 {
		q.Set("current", strconv.Itoa(page.Current))
	}
	if page.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(page.PageSize))
	}
	path := "/reconstruction/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var dto pageDTO[taskDTO]
	if err := c.do(ctx, http.MethodGet, path, nil, &dto); err != nil {
		return lab.Page[lab.ReconstructionTask]{}, err
	}
	return toPage(dto, taskDTO.toTask), nil
}

// WatchTask opens the task's server-sent event stream. Each EventContent
// payload is a JSON status update for the task.
func (c *Client) WatchTask(ctx context.Context, taskID string) (lab.Stream, error) {
	return c.openStream(ctx, http.MethodGet, "/reconstruction/events/"+url.PathEscape(taskID), nil)
}

// ResultFileURL returns the URL of one result file of a completed task.
func (c *Client) ResultFileURL(taskID, fileName string) string {
	return fmt.Sprintf("%s/reconstruction/files/%s/%s", c.baseURL, url.PathEscape(taskID), url.PathEscape(fileName))
}
