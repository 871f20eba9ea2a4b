package strava

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
)

type uploadResponse struct {
	ID         int64   `json:"id"`
	IDStr      string  `json:"id_str"`
	ExternalID *string `json:"external_id"`
	Error      *string `json:"error"`
	Status     string  `json:"status"`
	ActivityID *int64  `json:"activity_id"`
}

func (r *uploadResponse) toModel() *model.UploadStatus {
	status := &model.UploadStatus{
		ID:     r.ID,
		Status: r.Status,
	}
	if r.Error != nil {
		status.Error = *r.Error
	}
	if r.ActivityID != nil {
		status.ActivityID = *r.ActivityID
	}
	return status
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (c *client) CreateUpload(ctx context.Context, accessToken string, upload *UploadRequest) (*model.UploadStatus, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+upload.FileName+`"`)
	header.Set("Content-Type", upload.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create file part")
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, goerr.Wrap(err, "failed to write file part")
	}

	fields := [][2]string{
		{"name", upload.Name},
		{"commute", boolField(upload.Commute)},
		{"trainer", boolField(upload.Trainer)},
		{"data_type", upload.DataType},
	}
	if upload.Description != "" {
		fields = append(fields, [2]string{"description", upload.Description})
	}
	for _, f := range fields {
		if err := writer.WriteField(f[0], f[1]); err != nil {
			return nil, goerr.Wrap(err, "failed to write form field", goerr.V("field", f[0]))
		}
	}
	if err := writer.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close multipart writer")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+"/uploads", body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp uploadResponse
	if err := c.do(c.bearer(ctx, accessToken), req, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to upload activity", goerr.V("file_name", upload.FileName))
	}
	return resp.toModel(), nil
}

func (c *client) GetUpload(ctx context.Context, accessToken string, uploadID int64) (*model.UploadStatus, error) {
	url := c.apiBaseURL + "/uploads/" + strconv.FormatInt(uploadID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create upload status request", goerr.V("upload_id", uploadID))
	}

	var resp uploadResponse
	if err := c.do(c.bearer(ctx, accessToken), req, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to get upload status", goerr.V("upload_id", uploadID))
	}
	return resp.toModel(), nil
}
