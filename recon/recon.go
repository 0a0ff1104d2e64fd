// Package recon tracks 3D reconstruction tasks and follows their
// progress over the backend's server-sent event feed.
package recon

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/rs/zerolog"
)

// Store holds the known reconstruction tasks. All methods are safe for
// concurrent use.
type Store struct {
	svc    lab.ReconstructionService
	logger zerolog.Logger

	mu        sync.Mutex
	tasks     []lab.ReconstructionTask
	currentID string
	lastErr   error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New returns a Store backed by the given reconstruction service.
func New(svc lab.ReconstructionService, opts ...Option) *Store {
	s := &Store{svc: svc, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTask starts a reconstruction job and makes it the current task.
func (s *Store) CreateTask(ctx context.Context, imageID, name string) (lab.ReconstructionTask, error) {
	task, err := s.svc.CreateTask(ctx, imageID, name)
	if err != nil {
		s.setErr(err)
		return lab.ReconstructionTask{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(task)
	s.currentID = task.ID
	s.logger.Debug().Str("task", task.ID).Str("image", imageID).Msg("reconstruction started")
	return task, nil
}

// RefreshTasks reloads one page of tasks, optionally filtered by status.
func (s *Store) RefreshTasks(ctx context.Context, status string, page lab.PageRequest) error {
	result, err := s.svc.ListTasks(ctx, status, page)
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = result.Items
	return nil
}

// Tasks returns the known tasks.
func (s *Store) Tasks() []lab.ReconstructionTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]lab.ReconstructionTask, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Task returns one task by ID.
func (s *Store) Task(taskID string) (lab.ReconstructionTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, task := range s.tasks {
		if task.ID == taskID {
			return task, true
		}
	}
	return lab.ReconstructionTask{}, false
}

// CurrentTask returns the task selected by the last CreateTask or
// SetCurrentTask call.
func (s *Store) CurrentTask() (lab.ReconstructionTask, bool) {
	s.mu.Lock()
	id := s.currentID
	s.mu.Unlock()
	if id == "" {
		return lab.ReconstructionTask{}, false
	}
	return s.Task(id)
}

// SetCurrentTask selects a task.
func (s *Store) SetCurrentTask(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = taskID
}

// Err returns the most recent failure, or nil.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// statusUpdate is one JSON payload on a task's event feed.
type statusUpdate struct {
	TaskID       string `json:"taskId"`
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	ErrorMessage string `json:"errorMessage"`
	ModelID      string `json:"modelId"`
}

// Watch follows a task's event feed until the task reaches a terminal
// status or the feed ends. Each update is applied to the stored task;
// payloads that do not parse are skipped. Cancellation flows through ctx.
func (s *Store) Watch(ctx context.Context, taskID string) (lab.ReconstructionTask, error) {
	stream, err := s.svc.WatchTask(ctx, taskID)
	if err != nil {
		s.setErr(err)
		return lab.ReconstructionTask{}, err
	}
	defer stream.Close()

	for {
		evt, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.setErr(err)
			task, _ := s.Task(taskID)
			return task, err
		}

		content, ok := evt.(lab.EventContent)
		if !ok {
			continue
		}
		var update statusUpdate
		if err := json.Unmarshal([]byte(content.Text), &update); err != nil {
			s.logger.Debug().Str("payload", content.Text).Msg("skipping unparseable status update")
			continue
		}
		if update.TaskID == "" {
			update.TaskID = taskID
		}

		task := s.apply(update)
		if task.Status.Terminal() {
			s.logger.Debug().Str("task", taskID).Str("status", string(task.Status)).Msg("task finished")
			return task, nil
		}
	}

	task, _ := s.Task(taskID)
	return task, nil
}

// apply merges one status update into the stored task, inserting it when
// the feed reports a task we have not listed yet.
func (s *Store) apply(update statusUpdate) lab.ReconstructionTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != update.TaskID {
			continue
		}
		s.tasks[i].Status = lab.TaskStatus(update.Status)
		s.tasks[i].Progress = update.Progress
		s.tasks[i].ErrorMessage = update.ErrorMessage
		if update.ModelID != "" {
			s.tasks[i].ModelID = update.ModelID
		}
		return s.tasks[i]
	}

	task := lab.ReconstructionTask{
		ID:           update.TaskID,
		Status:       lab.TaskStatus(update.Status),
		Progress:     update.Progress,
		ErrorMessage: update.ErrorMessage,
		ModelID:      update.ModelID,
	}
	s.tasks = append(s.tasks, task)
	return task
}

func (s *Store) upsertLocked(task lab.ReconstructionTask) {
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
	s.tasks = append(s.tasks, task)
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	s.logger.Error().Err(err).Msg("reconstruction operation failed")
}
