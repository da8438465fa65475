package talentwire

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

const (
	uploadResumesPath = "/upload-resumes"
	myResumesPath     = "/my-resumes"
	resumeTextPath    = "/resume-text"
)

type Resume struct {
	ID        string `json:"id,omitempty"`
	Filename  string `json:"filename,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ResumeText is the extracted text of one stored resume.
type ResumeText struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// UploadFile is one local file handed to UploadResumes.
type UploadFile struct {
	Name   string
	Reader io.Reader
}

// UploadOutcome reports how the server handled a batch. A 200 response may
// still carry per-file failures; those are data, not an error.
type UploadOutcome struct {
	UploadedCount int             `json:"uploaded_count"`
	Failures      []UploadFailure `json:"failures,omitempty"`
}

type UploadFailure struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// UploadResumes sends all files in one multipart request. The batch either
// reaches the server or it does not; per-file outcomes come back in the
// response payload.
func (c *Client) UploadResumes(ctx context.Context, files []UploadFile) (*UploadOutcome, error) {
	const op = "upload-resumes"

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("%s: reading %s: %w", op, f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := c.newRequest(ctx, op, http.MethodPost, uploadResumesPath, &b, true)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var outcome UploadOutcome
	if err := c.do(op, req, &outcome); err != nil {
		return nil, err
	}

	return &outcome, nil
}

// ListResumes returns the user's stored resumes in server order.
func (c *Client) ListResumes(ctx context.Context) ([]*Resume, error) {
	items, err := c.getItems(ctx, "my-resumes", myResumesPath)
	if err != nil {
		return nil, err
	}

	var resumes []*Resume
	if err := decodeItems(items, &resumes); err != nil {
		return nil, fmt.Errorf("my-resumes: %w", err)
	}

	return resumes, nil
}

// GetResumeText fetches the extracted text for one resume.
func (c *Client) GetResumeText(ctx context.Context, id string) (*ResumeText, error) {
	if id == "" {
		return nil, fmt.Errorf("resume-text: resume id is required")
	}

	var text ResumeText
	if err := c.getJSON(ctx, "resume-text", fmt.Sprintf("%s/%s", resumeTextPath, id), &text); err != nil {
		return nil, err
	}

	return &text, nil
}
