package upload

import (
	"context"
	"fmt"
	"os"

	"onboard/internal/portal"
)

// PortalTransport adapts the portal client to the Transport interface,
// reading staged content from disk at submission time.
type PortalTransport struct {
	Client *portal.Client
}

func (t *PortalTransport) UploadResume(ctx context.Context, file *CandidateFile) (*portal.UploadResult, error) {
	if t == nil || t.Client == nil {
		return nil, fmt.Errorf("portal transport not configured")
	}
	if file == nil || file.Path == "" {
		return nil, fmt.Errorf("staged file has no source path")
	}
	content, err := os.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("open staged file: %w", err)
	}
	defer content.Close()
	return t.Client.UploadResume(ctx, file.Name, content)
}
