package mock

import (
	"context"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// Interface compliance check.
var _ lab.ReconstructionService = (*ReconstructionService)(nil)

// ReconstructionService is a test double for lab.ReconstructionService.
type ReconstructionService struct {
	CreateTaskFn    func(ctx context.Context, imageID, name string) (lab.ReconstructionTask, error)
	TaskStatusFn    func(ctx context.Context, taskID string) (lab.ReconstructionTask, error)
	ListTasksFn     func(ctx context.Context, status string, page lab.PageRequest) (lab.Page[lab.ReconstructionTask], error)
	WatchTaskFn     func(ctx context.Context, taskID string) (lab.Stream, error)
	ResultFileURLFn func(taskID, fileName string) string
}

// CreateTask delegates to CreateTaskFn.
func (s *ReconstructionService) CreateTask(ctx context.Context, imageID, name string) (lab.ReconstructionTask, error) {
	return s.CreateTaskFn(ctx, imageID, name)
}

// TaskStatus delegates to TaskStatusFn.
func (s *ReconstructionService) TaskStatus(ctx context.Context, taskID string) (lab.ReconstructionTask, error) {
	return s.TaskStatusFn(ctx, taskID)
}

// ListTasks delegates to ListTasksFn.
func (s *ReconstructionService) ListTasks(ctx context.Context, status string, page lab.PageRequest) (lab.Page[lab.ReconstructionTask], error) {
	return s.ListTasksFn(ctx, status, page)
}

// WatchTask delegates to WatchTaskFn.
func (s *ReconstructionService) WatchTask(ctx context.Context, taskID string) (lab.Stream, error) {
	return s.WatchTaskFn(ctx, taskID)
}

// ResultFileURL delegates to ResultFileURLFn. Returns "" when unset.
func (s *ReconstructionService) ResultFileURL(taskID, fileName string) string {
	if s.ResultFileURLFn == nil {
		return ""
	}
	return s.ResultFileURLFn(taskID, fileName)
}
