package cloudinary

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewServiceRequiresCredentials(t *testing.T) {
	_, err := NewService("", "key", "secret", "civicfix")
	require.Error(t, err)
}

func TestValidateImageFile(t *testing.T) {
	ok := &multipart.FileHeader{Filename: "pothole.jpg", Size: 1024}
	require.NoError(t, ValidateImageFile(ok))

	tooBig := &multipart.FileHeader{Filename: "pothole.jpg", Size: MaxImageSize + 1}
	require.Error(t, ValidateImageFile(tooBig))

	badType := &multipart.FileHeader{Filename: "pothole.exe", Size: 1024}
	require.Error(t, ValidateImageFile(badType))
}

func TestValidateDocumentFile(t *testing.T) {
	ok := &multipart.FileHeader{Filename: "id-card.pdf", Size: 1024}
	require.NoError(t, ValidateDocumentFile(ok))

	badType := &multipart.FileHeader{Filename: "id-card.mp3", Size: 1024}
	require.Error(t, ValidateDocumentFile(badType))
}
