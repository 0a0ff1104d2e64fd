package lab

import "context"

// StreamRequest is the wire-level send request shared by the streaming and
// non-streaming chat paths. SessionID is empty when First is set: the
// backend then creates the session implicitly.
type StreamRequest struct {
	Message   string
	SessionID string
	First     bool
}

// SendResult is the payload of a successful non-streaming send. The
// session ID is authoritative; UserMessage and AIMessage are present when
// the backend echoes the persisted records.
type SendResult struct {
	SessionID   string
	UserMessage *Message
	AIMessage   *Message
}

// ChatService is the backend chat API consumed by the session store. All
// operations surface the backend's reported failure as *APIError when a
// well-formed error response is available.
type ChatService interface {
	ListSessions(ctx context.Context) ([]Session, error)
	ListMessages(ctx context.Context, sessionID string) ([]Message, error)
	CreateSession(ctx context.Context, name string) (Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteMessage(ctx context.Context, messageID string) error
	EditMessage(ctx context.Context, messageID, content string) error
	SendMessage(ctx context.Context, req StreamRequest) (SendResult, error)
	StreamChat(ctx context.Context, req StreamRequest) (Stream, error)
}

// UserService is the account and admin API.
type UserService interface {
	Login(ctx context.Context, creds Credentials) (User, error)
	Register(ctx context.Context, creds Credentials) (string, error)
	Logout(ctx context.Context) error
	LoginUser(ctx context.Context) (User, error)

	CreateUser(ctx context.Context, user User) (string, error)
	UpdateUser(ctx context.Context, user User) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context, page PageRequest) (Page[User], error)
}

// ReconstructionService is the 3D reconstruction task API. WatchTask opens
// a server-sent event stream of JSON status updates for one task.
type ReconstructionService interface {
	CreateTask(ctx context.Context, imageID, name string) (ReconstructionTask, error)
	TaskStatus(ctx context.Context, taskID string) (ReconstructionTask, error)
	ListTasks(ctx context.Context, status string, page PageRequest) (Page[ReconstructionTask], error)
	WatchTask(ctx context.Context, taskID string) (Stream, error)
	ResultFileURL(taskID, fileName string) string
}

// LibraryService is the picture and model browsing API.
type LibraryService interface {
	Picture(ctx context.Context, id string) (Picture, error)
	ListPictures(ctx context.Context, query LibraryQuery) (Page[Picture], error)
	PictureCategories(ctx context.Context) ([]string, error)
	DeletePicture(ctx context.Context, id string) error

	Model(ctx context.Context, id string) (Model3D, error)
	ModelForImage(ctx context.Context, imageID string) (Model3D, error)
	ListModels(ctx context.Context, query LibraryQuery) (Page[Model3D], error)
	ModelCategories(ctx context.Context) ([]string, error)
}

// PageRequest selects one page of a listing.
type PageRequest struct {
	Current  int
	PageSize int
}

// Page is one page of a listing with the total record count.
type Page[T any] struct {
	Items   []T
	Total   int64
	Current int
	Size    int
}

// LibraryQuery filters and pages a picture or model listing.
type LibraryQuery struct {
	PageRequest
	Category string
	Name     string
}
