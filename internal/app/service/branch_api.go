package service

import (
	"context"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/pkg/gymapi"
)

// BranchAPI is the subset of the remote API the services use. *gymapi.Client
// implements it.
type BranchAPI interface {
	CreateBranch(ctx context.Context, reg model.Registration) error
	ListBranches(ctx context.Context) ([]model.Branch, error)
	GetBranch(ctx context.Context, id string) (*model.Branch, error)
	UpdateFacilities(ctx context.Context, id string, facilities model.Facilities) error
	UploadMedia(ctx context.Context, id string, files []gymapi.MediaFile) error
}

var _ BranchAPI = (*gymapi.Client)(nil)
