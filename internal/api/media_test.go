package api_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/toposhop/internal/api"
	"github.com/matthieukhl/toposhop/internal/models"
)

func TestUploadProductImages(t *testing.T) {
	backend, client, tokens := newTestClient(t)
	tokens.token = backend.BearerToken
	ctx := context.Background()

	backend.SeedProduct(models.Product{ID: "1", Name: "GPS"})

	urls, err := client.UploadProductImages(ctx, "1", []api.Upload{
		{Name: "front.jpg", Reader: strings.NewReader("jpeg-bytes")},
		{Name: "back.jpg", Reader: strings.NewReader("jpeg-bytes")},
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)

	product, err := client.GetProduct(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, product.Medias, 2)
}

func TestUploadProductImagesUnknownProduct(t *testing.T) {
	backend, client, tokens := newTestClient(t)
	tokens.token = backend.BearerToken

	_, err := client.UploadProductImages(context.Background(), "missing", []api.Upload{
		{Name: "front.jpg", Reader: strings.NewReader("jpeg-bytes")},
	})
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}

func TestUploadFailureIsServerKind(t *testing.T) {
	backend, client, tokens := newTestClient(t)
	tokens.token = backend.BearerToken
	backend.FailUploads = true
	backend.SeedProduct(models.Product{ID: "1", Name: "GPS"})

	_, err := client.UploadProductImages(context.Background(), "1", []api.Upload{
		{Name: "front.jpg", Reader: strings.NewReader("jpeg-bytes")},
	})
	require.Error(t, err)
	assert.True(t, api.IsServer(err))
}

func TestUploadSingleImage(t *testing.T) {
	backend, client, tokens := newTestClient(t)
	tokens.token = backend.BearerToken

	url, err := client.UploadImage(context.Background(), api.Upload{
		Name: "banner.png", Reader: strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Contains(t, url, "banner.png")
}

func TestDeleteMediaSendsBearerToken(t *testing.T) {
	backend, client, tokens := newTestClient(t)
	tokens.token = backend.BearerToken
	ctx := context.Background()

	backend.SeedProduct(models.Product{ID: "1", Name: "GPS"})
	_, err := client.UploadProductImages(ctx, "1", []api.Upload{
		{Name: "front.jpg", Reader: strings.NewReader("jpeg-bytes")},
	})
	require.NoError(t, err)

	product, err := client.GetProduct(ctx, "1")
	require.NoError(t, err)
	require.Len(t, product.Medias, 1)
	mediaID := product.Medias[0].ID

	// Without a token the delete is refused, with one it goes through.
	tokens.token = ""
	err = client.DeleteMedia(ctx, mediaID)
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))

	tokens.token = backend.BearerToken
	require.NoError(t, client.DeleteMedia(ctx, mediaID))
}

func TestDeleteMedia(t *testing.T) {
	backend, client, tokens := newTestClient(t)
	tokens.token = backend.BearerToken
	ctx := context.Background()

	backend.SeedProduct(models.Product{ID: "1", Name: "GPS"})
	_, err := client.UploadProductImages(ctx, "1", []api.Upload{
		{Name: "front.jpg", Reader: strings.NewReader("jpeg-bytes")},
	})
	require.NoError(t, err)

	product, err := client.GetProduct(ctx, "1")
	require.NoError(t, err)
	require.Len(t, product.Medias, 1)

	require.NoError(t, client.DeleteMedia(ctx, product.Medias[0].ID))

	err = client.DeleteMedia(ctx, product.Medias[0].ID)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}
