package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// wireTime accepts the timestamp formats the backend emits: RFC 3339 or
// the Jackson "yyyy-MM-dd HH:mm:ss" pattern. Zero when absent or null.
type wireTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			t.Time = ts
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t wireTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time)
}

// flexID tolerates IDs serialized as JSON strings or numbers. The backend
// stores snowflake longs and serializes them as strings, but numbers show
// up in older payloads.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*f = flexID(s)
	return nil
}

type sessionDTO struct {
	ID          flexID   `json:"id"`
	SessionName string   `json:"sessionName"`
	CreateTime  wireTime `json:"createTime"`
	UpdateTime  wireTime `json:"updateTime"`
}

func (d sessionDTO) toSession() lab.Session {
	return lab.Session{
		ID:        string(d.ID),
		Name:      d.SessionName,
		CreatedAt: d.CreateTime.Time,
		UpdatedAt: d.UpdateTime.Time,
	}
}

type messageDTO struct {
	ID         flexID   `json:"id"`
	SessionID  flexID   `json:"sessionId"`
	Role       string   `json:"role"`
	Content    string   `json:"content"`
	CreateTime wireTime `json:"createTime"`
}

func (d messageDTO) toMessage() lab.Message {
	return lab.Message{
		ID:        lab.ConfirmedID(string(d.ID)),
		SessionID: string(d.SessionID),
		Role:      lab.Role(d.Role),
		Content:   d.Content,
		CreatedAt: d.CreateTime.Time,
	}
}

type sendRequestDTO struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	First     bool   `json:"first"`
}

type sendResultDTO struct {
	SessionID   flexID      `json:"sessionId"`
	UserMessage *messageDTO `json:"userMessage"`
	AIMessage   *messageDTO `json:"aiMessage"`
}

func (d sendResultDTO) toResult() lab.SendResult {
	res := lab.SendResult{SessionID: string(d.SessionID)}
	if d.UserMessage != nil {
		m := d.UserMessage.toMessage()
		res.UserMessage = &m
	}
	if d.AIMessage != nil {
		m := d.AIMessage.toMessage()
		res.AIMessage = &m
	}
	return res
}

type userDTO struct {
	ID          flexID   `json:"id"`
	UserAccount string   `json:"userAccount"`
	UserName    string   `json:"userName"`
	UserRole    string   `json:"userRole"`
	CreateTime  wireTime `json:"createTime"`
}

func (d userDTO) toUser() lab.User {
	return lab.User{
		ID:        string(d.ID),
		Account:   d.UserAccount,
		Name:      d.UserName,
		Role:      d.UserRole,
		CreatedAt: d.CreateTime.Time,
	}
}

type taskDTO struct {
	ID           flexID   `json:"id"`
	TaskID       flexID   `json:"taskId"`
	ImageID      flexID   `json:"imageId"`
	Name         string   `json:"name"`
	Status       string   `json:"status"`
	Progress     int      `json:"progress"`
	ErrorMessage string   `json:"errorMessage"`
	ModelID      flexID   `json:"modelId"`
	CreateTime   wireTime `json:"createTime"`
}

func (d taskDTO) toTask() lab.ReconstructionTask {
	id := string(d.ID)
	if id == "" {
		id = string(d.TaskID)
	}
	return lab.ReconstructionTask{
		ID:           id,
		ImageID:      string(d.ImageID),
		Name:         d.Name,
		Status:       lab.TaskStatus(d.Status),
		Progress:     d.Progress,
		ErrorMessage: d.ErrorMessage,
		ModelID:      string(d.ModelID),
		CreatedAt:    d.CreateTime.Time,
	}
}

type pictureDTO struct {
	ID           flexID   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Introduction string   `json:"introduction"`
	URL          string   `json:"url"`
	Tags         []string `json:"tags"`
	CreateTime   wireTime `json:"createTime"`
}

func (d pictureDTO) toPicture() lab.Picture {
	return lab.Picture{
		ID:           string(d.ID),
		Name:         d.Name,
		Category:     d.Category,
		Introduction: d.Introduction,
		URL:          d.URL,
		Tags:         d.Tags,
		CreatedAt:    d.CreateTime.Time,
	}
}

type modelDTO struct {
	ID         flexID   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	PictureID  flexID   `json:"pictureId"`
	ObjURL     string   `json:"objFileUrl"`
	MtlURL     string   `json:"mtlFileUrl"`
	TextureURL string   `json:"textureImageUrl"`
	CreateTime wireTime `json:"createTime"`
}

func (d modelDTO) toModel() lab.Model3D {
	return lab.Model3D{
		ID:         string(d.ID),
		Name:       d.Name,
		Category:   d.Category,
		PictureID:  string(d.PictureID),
		ObjURL:     d.ObjURL,
		MtlURL:     d.MtlURL,
		TextureURL: d.TextureURL,
		CreatedAt:  d.CreateTime.Time,
	}
}

// pageDTO matches the backend's paged listing shape.
type pageDTO[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	Current int   `json:"current"`
	Size    int   `json:"size"`
}

func toPage[D, T any](p pageDTO[D], convert func(D) T) lab.Page[T] {
	items := make([]T, len(p.Records))
	for i, rec := range p.Records {
		items[i] = convert(rec)
	}
	return lab.Page[T]{Items: items, Total: p.Total, Current: p.Current, Size: p.Size}
}

type pageRequestDTO struct {
	Current  int    `json:"current"`
	PageSize int    `json:"pageSize"`
	Category string `json:"category,omitempty"`
	Name     string `json:"name,omitempty"`
}
