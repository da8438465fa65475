package talentwire

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

const (
	generateJDPath = "/generate-jd"
	saveJDPath     = "/save-jd"
	myJDsPath      = "/my-jds"
)

type JobDescription struct {
	ID        string `json:"id,omitempty"`
	Profile   string `json:"profile,omitempty"`
	JDText    string `json:"jd_text,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// GenerateJD asks the remote generation service for a job description draft
// for the given role profile. The draft is not persisted until SaveJD.
func (c *Client) GenerateJD(ctx context.Context, profile string) (string, error) {
	if profile == "" {
		return "", fmt.Errorf("generate-jd: profile is required")
	}

	body := map[string]string{"profile": profile}

	var response struct {
		JobDescription string `json:"job_description"`
	}
	if err := c.postJSON(ctx, "generate-jd", generateJDPath, body, &response, true); err != nil {
		return "", err
	}

	return response.JobDescription, nil
}

// SaveJD persists a generated job description and returns its server id.
func (c *Client) SaveJD(ctx context.Context, profile, jdText string) (*JobDescription, error) {
	body := map[string]string{
		"profile": profile,
		"jd_text": jdText,
	}

	var saved JobDescription
	if err := c.postJSON(ctx, "save-jd", saveJDPath, body, &saved, true); err != nil {
		return nil, err
	}

	if saved.Profile == "" {
		saved.Profile = profile
	}
	if saved.JDText == "" {
		saved.JDText = jdText
	}

	return &saved, nil
}

// ListJDs returns the user's saved job descriptions in server order.
func (c *Client) ListJDs(ctx context.Context) ([]*JobDescription, error) {
	items, err := c.getItems(ctx, "my-jds", myJDsPath)
	if err != nil {
		return nil, err
	}

	var jds []*JobDescription
	if err := decodeItems(items, &jds); err != nil {
		return nil, fmt.Errorf("my-jds: %w", err)
	}

	return jds, nil
}

// decodeItems converts raw collection items into typed structs using the
// json tags, matching how the wire payload names its fields.
func decodeItems(items []any, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(items)
}
