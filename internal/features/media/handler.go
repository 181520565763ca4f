package media

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crimewatch/crimewatch-api/internal/pkg/cloudinary"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
)

type Handler struct {
	cloudinary *cloudinary.Service
}

func NewHandler(cld *cloudinary.Service) *Handler {
	return &Handler{
		cloudinary: cld,
	}
}

// UploadMedia godoc
// @Summary Upload evidence media
// @Description Upload an evidence image or video to Cloudinary. The returned URL goes into a report or proof comment.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 200 {object} response.SuccessResponse{data=cloudinary.UploadResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /media/upload [post]
func (h *Handler) UploadMedia(c *gin.Context) {
	if h.cloudinary == nil {
		response.ServiceUnavailable(c, "Media storage is not configured", "MEDIA_UNAVAILABLE")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required", "MISSING_FILE")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	var result *cloudinary.UploadResult
	if strings.HasPrefix(contentType, "video") {
		if err := cloudinary.ValidateVideoFile(header); err != nil {
			response.BadRequest(c, err.Error(), "INVALID_FILE")
			return
		}
		result, err = h.cloudinary.UploadVideo(c.Request.Context(), file, header.Filename)
	} else {
		if err := cloudinary.ValidateImageFile(header); err != nil {
			response.BadRequest(c, err.Error(), "INVALID_FILE")
			return
		}
		result, err = h.cloudinary.UploadImage(c.Request.Context(), file, header.Filename)
	}

	if err != nil {
		response.InternalServerError(c, "Failed to upload file", "UPLOAD_FAILED")
		return
	}

	response.Success(c, result)
}
