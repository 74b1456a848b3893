package api

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeUploader struct {
	calls   []string
	failAt  int // 0-based call index to fail on, -1 for never
	nextID  int64
	lastErr error
}

func (f *fakeUploader) UploadImage(ctx context.Context, token string, roomID int64, filename string, file io.Reader) (*RoomImage, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, filename)
	if idx == f.failAt {
		f.lastErr = errors.New("boom")
		return nil, f.lastErr
	}
	f.nextID++
	return &RoomImage{ID: f.nextID, RoomID: roomID, Filename: filename}, nil
}

func uploadsFor(names ...string) []Upload {
	out := make([]Upload, 0, len(names))
	for _, n := range names {
		out = append(out, Upload{Filename: n, File: strings.NewReader("img")})
	}
	return out
}

func TestUploadAll_Sequential(t *testing.T) {
	up := &fakeUploader{failAt: -1}
	report := UploadAll(context.Background(), up, "tok", 5, uploadsFor("a.jpg", "b.jpg", "c.jpg"))

	if !report.OK() || report.FailedStep != -1 {
		t.Fatalf("expected clean report, got %+v", report)
	}
	if len(report.Uploaded) != 3 {
		t.Fatalf("expected 3 uploads, got %d", len(report.Uploaded))
	}
	for i, want := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		if up.calls[i] != want {
			t.Errorf("call %d: expected %s, got %s", i, want, up.calls[i])
		}
	}
}

func TestUploadAll_StopsAtFirstFailure(t *testing.T) {
	up := &fakeUploader{failAt: 1}
	report := UploadAll(context.Background(), up, "tok", 5, uploadsFor("a.jpg", "b.jpg", "c.jpg"))

	if report.OK() {
		t.Fatal("expected failed report")
	}
	if report.FailedStep != 1 {
		t.Errorf("expected FailedStep 1, got %d", report.FailedStep)
	}
	// The first upload stays committed; the third is never attempted.
	if len(report.Uploaded) != 1 || report.Uploaded[0].Filename != "a.jpg" {
		t.Errorf("expected first upload kept, got %+v", report.Uploaded)
	}
	if len(up.calls) != 2 {
		t.Errorf("expected sequence to stop after failure, got %d calls", len(up.calls))
	}
}

func TestUploadAll_Empty(t *testing.T) {
	up := &fakeUploader{failAt: -1}
	report := UploadAll(context.Background(), up, "tok", 5, nil)
	if !report.OK() || len(report.Uploaded) != 0 {
		t.Errorf("expected empty clean report, got %+v", report)
	}
	if len(up.calls) != 0 {
		t.Errorf("expected no calls, got %d", len(up.calls))
	}
}
