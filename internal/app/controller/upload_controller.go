package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/service"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
	"github.com/ikkim/camping-backend/internal/middleware"
	"github.com/ikkim/camping-backend/internal/storage"
)

type UploadController struct {
	imageService service.ImageService
}

func NewUploadController(imageService service.ImageService) *UploadController {
	return &UploadController{
		imageService: imageService,
	}
}

// GeneratePresignedURL godoc
// @Summary 이미지 업로드 URL 발급
// @Description 클라이언트가 S3에 직접 PUT 할 수 있는 presigned URL을 발급한다
// @Tags Upload
// @Accept json
// @Produce json
// @Param request body model.PresignUploadRequest true "업로드 정보"
// @Success 200 {object} storage.PresignedUpload
// @Router /uploads/presigned-url [post]
func (ctrl *UploadController) GeneratePresignedURL(ctx *gin.Context) {
	var req model.PresignUploadRequest
	if !bindJSON(ctx, &req) {
		return
	}

	upload, err := ctrl.imageService.PresignUpload(ctx.Request.Context(),
		storage.Folder(req.Folder), req.Filename, req.ContentType)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	middleware.GetLoggerFromContext(ctx).Info("Presigned URL generated", map[string]interface{}{
		"folder": req.Folder,
		"key":    upload.Key,
	})
	ctx.JSON(http.StatusOK, upload)
}
