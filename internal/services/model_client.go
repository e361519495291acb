package services

import (
	"context"

	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/models"
)

// ModelClient is the single seam to the external generative model: one
// synchronous call per submission, no retry and no response caching,
// so identical submissions re-invoke the service. Failures come back
// as *models.ServiceError.
type ModelClient interface {
	Analyze(ctx context.Context, req *models.ModelRequest) (string, error)
	Model() string
}
