package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "bandbook/internal/errors"
	"bandbook/internal/pagination"
	"bandbook/internal/upload"
)

// parseID parses a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// pageParams reads page/pageSize query values with a per-endpoint default size.
func pageParams(c echo.Context, defaultSize int) pagination.Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
	return pagination.NewParams(page, pageSize, defaultSize)
}

// respondError converts a service error into the standard {error, code}
// JSON response.
func respondError(err error) error {
	if apperrors.IsDuplicate(err) {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "CONFLICT",
		})
	}
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

func validationError(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: message,
		Code:  "VALIDATION",
	})
}

// isMultipart reports whether the request carries a multipart form.
func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// multipartMemoryLimit is the in-memory threshold for parsing multipart
// forms; larger parts spill to temp files. It is not a size cap: avatar
// size is enforced where the file is read, in resolveAvatar.
const multipartMemoryLimit = 32 << 20

// formValue returns a form field and whether it was present at all,
// so PATCH handlers can distinguish "clear" from "leave unchanged".
func formValue(c echo.Context, name string) (string, bool) {
	if err := c.Request().ParseMultipartForm(multipartMemoryLimit); err != nil {
		return "", false
	}
	values, ok := c.Request().MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// resolveAvatar resolves an avatar from an uploaded "avatar" file or a
// remote avatarUrl and stores it, returning the secure URL. Upload
// failures are deliberately non-fatal: the caller proceeds without an
// avatar (or with the raw remote URL) instead of failing the request.
func resolveAvatar(c echo.Context, uploader *upload.Client, rawURL string) *string {
	ctx := c.Request().Context()

	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		if file.Size > upload.MaxAvatarSize {
			c.Logger().Warnf("avatar upload skipped: %v", upload.ErrTooLarge)
		} else if src, err := file.Open(); err == nil {
			defer src.Close()
			data, err := io.ReadAll(io.LimitReader(src, upload.MaxAvatarSize+1))
			if err == nil && uploader.Enabled() {
				if secureURL, err := uploader.UploadBuffer(ctx, data); err == nil {
					return &secureURL
				} else {
					c.Logger().Warnf("avatar upload failed: %v", err)
				}
			}
		}
	}

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil
	}
	lower := strings.ToLower(rawURL)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		if uploader.Enabled() {
			if secureURL, err := uploader.UploadRemote(ctx, rawURL); err == nil {
				return &secureURL
			} else {
				c.Logger().Warnf("remote avatar upload failed: %v", err)
			}
		}
		// fall back to storing the remote URL as given
		return &rawURL
	}
	return nil
}

type okResponse struct {
	OK bool `json:"ok"`
}
