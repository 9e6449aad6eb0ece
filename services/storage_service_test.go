package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoKey(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name     string
		filename string
		wantExt  string
	}{
		{name: "jpeg", filename: "front.jpeg", wantExt: ".jpeg"},
		{name: "jpg", filename: "front.jpg", wantExt: ".jpg"},
		{name: "png uppercase", filename: "LABEL.PNG", wantExt: ".png"},
		{name: "webp", filename: "pack.webp", wantExt: ".webp"},
		{name: "unknown extension", filename: "document.exe", wantExt: ".bin"},
		{name: "no extension", filename: "photo", wantExt: ".bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := PhotoKey(productID, tt.filename)

			assert.True(t, strings.HasPrefix(key, "products/"+productID.String()+"/"))
			assert.True(t, strings.HasSuffix(key, tt.wantExt))

			// the middle segment must be a fresh uuid
			parts := strings.Split(key, "/")
			require.Len(t, parts, 3)
			base := strings.TrimSuffix(parts[2], tt.wantExt)
			_, err := uuid.Parse(base)
			assert.NoError(t, err)
		})
	}
}

func TestPhotoKey_Unique(t *testing.T) {
	productID := uuid.New()
	a := PhotoKey(productID, "same.jpg")
	b := PhotoKey(productID, "same.jpg")
	assert.NotEqual(t, a, b)
}
