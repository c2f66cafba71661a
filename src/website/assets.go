package website

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"git.tidepool.community/tidepool/tidepool/src/assets"
)

type AssetUploadResult struct {
	Url   string `json:"url,omitempty"`
	Mime  string `json:"mime,omitempty"`
	Error string `json:"error,omitempty"`
}

const assetMaxSize = 10 * 1024 * 1024
const assetMaxSizeAdmin = 1024 * 1024 * 1024

func AssetMaxSize(isAdmin bool) int {
	if isAdmin {
		return assetMaxSizeAdmin
	} else {
		return assetMaxSize
	}
}

func AssetUpload(c *RequestContext) ResponseData {
	maxFilesize := AssetMaxSize(c.CurrentUser.IsAdmin)

	contentLength, hasLength := c.Req.Header["Content-Length"]
	if hasLength {
		filesize, err := strconv.Atoi(contentLength[0])
		if err == nil && filesize > maxFilesize {
			var res ResponseData
			res.WriteJson(AssetUploadResult{
				Error: fmt.Sprintf("Filesize too big. Maximum size is %d.", maxFilesize),
			})
			return res
		}
	}

	filenameHeader, hasFilename := c.Req.Header["Tidepool-Upload-Filename"]
	originalFilename := "upload"
	if hasFilename {
		decodedFilename, err := base64.StdEncoding.DecodeString(filenameHeader[0])
		if err == nil {
			originalFilename = string(decodedFilename)
		}
	}

	bodyReader := http.MaxBytesReader(c.Res, c.Req.Body, int64(maxFilesize))
	data, err := io.ReadAll(bodyReader)
	if err != nil {
		return ResponseData{
			StatusCode: http.StatusBadRequest,
			Errors:     []error{err},
		}
	}

	asset, err := assets.Create(c, c.Conn, assets.CreateInput{
		Content:     data,
		Filename:    originalFilename,
		ContentType: http.DetectContentType(data),
		UploaderID:  &c.CurrentUser.ID,
	})
	if err != nil {
		return ResponseData{
			StatusCode: http.StatusBadRequest,
			Errors:     []error{err},
		}
	}

	var res ResponseData
	res.WriteJson(AssetUploadResult{
		Url:  assets.PublicUrl(asset),
		Mime: asset.MimeType,
	})
	return res
}
