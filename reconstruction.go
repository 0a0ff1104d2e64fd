package lab

import "time"

// TaskStatus is the lifecycle state of a reconstruction task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskProcessing TaskStatus = "PROCESSING"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskFailed     TaskStatus = "FAILED"
)

// Terminal reports whether the status is final.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// ReconstructionTask is a 3D reconstruction job derived from one source
// picture. ModelID is set once the task completes.
type ReconstructionTask struct {
	ID           string
	ImageID      string
	Name         string
	Status       TaskStatus
	Progress     int
	ErrorMessage string
	ModelID      string
	CreatedAt    time.Time
}
