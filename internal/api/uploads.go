package api

import (
	"context"
	"io"
)

// Uploader is the slice of Client the upload sequence needs.
type Uploader interface {
	UploadImage(ctx context.Context, token string, roomID int64, filename string, file io.Reader) (*RoomImage, error)
}

// Upload is one pending image file.
type Upload struct {
	Filename string
	File     io.Reader
}

// UploadReport records how far a sequential upload run got. Earlier uploads
// are committed server-side even when a later one fails; nothing is rolled
// back, so callers surface FailedStep alongside what did succeed.
type UploadReport struct {
	Uploaded   []RoomImage
	FailedStep int // index into the input slice, -1 when all succeeded
	Err        error
}

func (r UploadReport) OK() bool { return r.Err == nil }

// UploadAll pushes images one at a time, each awaiting the previous. The
// first failure stops the sequence.
func UploadAll(ctx context.Context, up Uploader, token string, roomID int64, uploads []Upload) UploadReport {
	report := UploadReport{FailedStep: -1}
	for i, u := range uploads {
		img, err := up.UploadImage(ctx, token, roomID, u.Filename, u.File)
		if err != nil {
			report.FailedStep = i
			report.Err = err
			return report
		}
		report.Uploaded = append(report.Uploaded, *img)
	}
	return report
}
