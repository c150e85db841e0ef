package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/ikkim/camping-backend/internal/errors"
	"github.com/ikkim/camping-backend/internal/storage"
	"github.com/ikkim/camping-backend/pkg/logger"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Presigner *storage.S3Storage
type Presigner interface {
	PresignUpload(ctx context.Context, folder storage.Folder, filename, contentType string) (*storage.PresignedUpload, error)
}

// ImageService 게시글/리뷰 이미지 업로드 URL 발급
type ImageService interface {
	PresignUpload(ctx context.Context, folder storage.Folder, filename, contentType string) (*storage.PresignedUpload, error)
}

type imageService struct {
	presigner Presigner
}

func NewImageService(presigner Presigner) ImageService {
	return &imageService{presigner: presigner}
}

func (s *imageService) PresignUpload(ctx context.Context, folder storage.Folder, filename, contentType string) (*storage.PresignedUpload, error) {
	switch folder {
	case storage.FolderBoards, storage.FolderReviews, storage.FolderProfiles:
	default:
		return nil, apperrors.InvalidArgument("unknown upload folder %q", folder)
	}
	if strings.TrimSpace(filename) == "" {
		return nil, apperrors.InvalidArgument("filename must not be blank")
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return nil, &apperrors.Error{
			Kind:    apperrors.KindInvalidArgument,
			Code:    apperrors.UploadInvalidFileType,
			Message: fmt.Sprintf("content type %s is not allowed", contentType),
		}
	}

	upload, err := s.presigner.PresignUpload(ctx, folder, filename, contentType)
	if err != nil {
		logger.Error("Failed to presign upload", err, map[string]interface{}{
			"folder": string(folder),
		})
		return nil, apperrors.Internal(err, "failed to create upload url")
	}
	return upload, nil
}
