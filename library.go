package lab

import "time"

// Picture is a source image in the library.
type Picture struct {
	ID           string
	Name         string
	Category     string
	Introduction string
	URL          string
	Tags         []string
	CreatedAt    time.Time
}

// Model3D is a reconstructed 3D model in the library. The file URLs point
// at the backend's result-file endpoints.
type Model3D struct {
	ID         string
	Name       string
	Category   string
	PictureID  string
	ObjURL     string
	MtlURL     string
	TextureURL string
	CreatedAt  time.Time
}
