package api_test

import (
	"context"
	"strings"
	"testing"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPictures_Decode(t *testing.T) {
	t.Parallel()
	client, rec := envelopeServer(t, `{"code":0,"data":{
		"records":[{"id":"p1","name":"cat","category":"animal","url":"/img/p1.png"}],
		"total":1,"current":1,"size":20
	}}`)

	page, err := client.ListPictures(context.Background(), lab.LibraryQuery{
		PageRequest: lab.PageRequest{Current: 1, PageSize: 20},
		Category:    "animal",
	})
	require.NoError(t, err)

	assert.Equal(t, "/picture/list/page", rec.path)
	assert.JSONEq(t, `{"current":1,"pageSize":20,"category":"animal"}`, rec.body)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "cat", page.Items[0].Name)
}

func TestUploadPicture_Multipart(t *testing.T) {
	t.Parallel()
	client, rec := envelopeServer(t, `{"code":0,"data":{"id":"p2","name":"vase"}}`)

	pic, err := client.UploadPicture(context.Background(), "vase", "vase.png", strings.NewReader("pngbytes"))
	require.NoError(t, err)

	assert.Equal(t, "/picture/upload", rec.path)
	assert.Contains(t, rec.body, "pngbytes")
	assert.Contains(t, rec.body, `filename="vase.png"`)
	assert.Equal(t, "p2", pic.ID)
}

func TestModelForImage_Decode(t *testing.T) {
	t.Parallel()
	client, rec := envelopeServer(t, `{"code":0,"data":
		{"id":"m1","pictureId":"p1","objFileUrl":"/files/m1.obj","mtlFileUrl":"/files/m1.mtl"}
	}`)

	model, err := client.ModelForImage(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "/model/image/p1", rec.path)
	assert.Equal(t, "p1", model.PictureID)
	assert.Equal(t, "/files/m1.obj", model.ObjURL)
}

func TestPictureCategories_Decode(t *testing.T) {
	t.Parallel()
	client, rec := envelopeServer(t, `{"code":0,"data":["animal","plant"]}`)

	categories, err := client.PictureCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/picture/categories", rec.path)
	assert.Equal(t, []string{"animal", "plant"}, categories)
}
