package api_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/Rvioleck/3D-Lab-Data-Factory/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTask_FormEncoded(t *testing.T) {
	t.Parallel()
	client, rec := envelopeServer(t, `{"code":0,"data":{"id":"t1","imageId":"img9","status":"PENDING"}}`)

	task, err := client.CreateTask(context.Background(), "img9", "vase")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/reconstruction/create", rec.path)
	assert.Contains(t, rec.body, "imageId=img9")
	assert.Contains(t, rec.body, "name=vase")
	assert.Equal(t, "t1", task.ID)
	assert.Equal(t, lab.TaskPending, task.Status)
}

func TestListTasks_Query(t *testing.T) {
	t.Parallel()
	client, rec := envelopeServer(t, `{"code":0,"data":{"records":[{"id":"t1","status":"COMPLETED"}],"total":1,"current":1,"size":10}}`)

	page, err := client.ListTasks(context.Background(), "COMPLETED", lab.PageRequest{Current: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, "/reconstruction/tasks", rec.path)
	assert.Contains(t, rec.query, "status=COMPLETED")
	assert.Contains(t, rec.query, "current=1")
	require.Len(t, page.Items, 1)
	assert.Equal(t, lab.TaskCompleted, page.Items[0].Status)
}

func TestWatchTask_StreamsStatusPayloads(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reconstruction/events/t5", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, `data: {"taskId":"t5","status":"PROCESSING","progress":40}`+"\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(srv.Close)

	client := api.New(srv.URL)
	s, err := client.WatchTask(context.Background(), "t5")
	require.NoError(t, err)
	defer s.Close()

	evt, err := s.Next()
	require.NoError(t, err)
	// Status payloads have no "content" field, so they pass through intact.
	assert.Equal(t, lab.EventContent{Text: `{"taskId":"t5","status":"PROCESSING","progress":40}`}, evt)

	evt, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, lab.EventDone{}, evt)
}

func TestResultFileURL(t *testing.T) {
	t.Parallel()
	client := api.New("http://backend:8080/api")
	url := client.ResultFileURL("t5", "model.obj")
	assert.Equal(t, "http://backend:8080/api/reconstruction/files/t5/model.obj", url)
}
