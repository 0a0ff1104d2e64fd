package recon_test

import (
	"context"
	"errors"
	"testing"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/Rvioleck/3D-Lab-Data-Factory/mock"
	"github.com/Rvioleck/3D-Lab-Data-Factory/recon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTask_BecomesCurrent(t *testing.T) {
	t.Parallel()
	svc := &mock.ReconstructionService{
		CreateTaskFn: func(ctx context.Context, imageID, name string) (lab.ReconstructionTask, error) {
			return lab.ReconstructionTask{ID: "t1", ImageID: imageID, Name: name, Status: lab.TaskPending}, nil
		},
	}
	store := recon.New(svc)

	task, err := store.CreateTask(context.Background(), "img9", "vase")
	require.NoError(t, err)

	assert.Equal(t, "t1", task.ID)
	current, ok := store.CurrentTask()
	require.True(t, ok)
	assert.Equal(t, lab.TaskPending, current.Status)
}

func TestRefreshTasks_ReplacesList(t *testing.T) {
	t.Parallel()
	svc := &mock.ReconstructionService{
		ListTasksFn: func(ctx context.Context, status string, page lab.PageRequest) (lab.Page[lab.ReconstructionTask], error) {
			assert.Equal(t, "COMPLETED", status)
			return lab.Page[lab.ReconstructionTask]{
				Items: []lab.ReconstructionTask{{ID: "t1", Status: lab.TaskCompleted}},
				Total: 1,
			}, nil
		},
	}
	store := recon.New(svc)

	require.NoError(t, store.RefreshTasks(context.Background(), "COMPLETED", lab.PageRequest{Current: 1, PageSize: 10}))

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)
}

func TestWatch(t *testing.T) {
	t.Parallel()
	t.Run("applies updates until terminal status", func(t *testing.T) {
		t.Parallel()
		svc := &mock.ReconstructionService{
			CreateTaskFn: func(ctx context.Context, imageID, name string) (lab.ReconstructionTask, error) {
				return lab.ReconstructionTask{ID: "t5", ImageID: imageID, Status: lab.TaskPending}, nil
			},
			WatchTaskFn: func(ctx context.Context, taskID string) (lab.Stream, error) {
				assert.Equal(t, "t5", taskID)
				return mock.Script(
					lab.EventContent{Text: `{"taskId":"t5","status":"PROCESSING","progress":40}`},
					lab.EventContent{Text: `{"taskId":"t5","status":"COMPLETED","progress":100,"modelId":"m1"}`},
					lab.EventContent{Text: `{"taskId":"t5","status":"PROCESSING","progress":10}`},
				), nil
			},
		}
		store := recon.New(svc)
		_, err := store.CreateTask(context.Background(), "img9", "")
		require.NoError(t, err)

		task, err := store.Watch(context.Background(), "t5")
		require.NoError(t, err)

		// Watching stops at the terminal update; the stale trailing event
		// is never applied.
		assert.Equal(t, lab.TaskCompleted, task.Status)
		assert.Equal(t, 100, task.Progress)
		assert.Equal(t, "m1", task.ModelID)
		stored, ok := store.Task("t5")
		require.True(t, ok)
		assert.Equal(t, lab.TaskCompleted, stored.Status)
	})

	t.Run("skips unparseable payloads", func(t *testing.T) {
		t.Parallel()
		svc := &mock.ReconstructionService{
			WatchTaskFn: func(ctx context.Context, taskID string) (lab.Stream, error) {
				return mock.Script(
					lab.EventContent{Text: "keepalive"},
					lab.EventContent{Text: `{"taskId":"t5","status":"FAILED","errorMessage":"out of memory"}`},
				), nil
			},
		}
		store := recon.New(svc)

		task, err := store.Watch(context.Background(), "t5")
		require.NoError(t, err)

		assert.Equal(t, lab.TaskFailed, task.Status)
		assert.Equal(t, "out of memory", task.ErrorMessage)
	})

	t.Run("feed failure surfaces with last known state", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("connection reset")
		svc := &mock.ReconstructionService{
			WatchTaskFn: func(ctx context.Context, taskID string) (lab.Stream, error) {
				return mock.ScriptErr(wantErr,
					lab.EventContent{Text: `{"taskId":"t5","status":"PROCESSING","progress":60}`},
				), nil
			},
		}
		store := recon.New(svc)

		task, err := store.Watch(context.Background(), "t5")
		require.ErrorIs(t, err, wantErr)

		assert.Equal(t, lab.TaskProcessing, task.Status)
		assert.Equal(t, 60, task.Progress)
		assert.ErrorIs(t, store.Err(), wantErr)
	})

	t.Run("clean end without terminal status returns current state", func(t *testing.T) {
		t.Parallel()
		svc := &mock.ReconstructionService{
			WatchTaskFn: func(ctx context.Context, taskID string) (lab.Stream, error) {
				return mock.Script(
					lab.EventContent{Text: `{"taskId":"t5","status":"PROCESSING","progress":80}`},
					lab.EventDone{},
				), nil
			},
		}
		store := recon.New(svc)

		task, err := store.Watch(context.Background(), "t5")
		require.NoError(t, err)
		assert.Equal(t, 80, task.Progress)
	})
}
