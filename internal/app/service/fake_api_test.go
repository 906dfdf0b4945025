package service

import (
	"context"
	"sync"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/pkg/gymapi"
)

type fakeBranchAPI struct {
	mu sync.Mutex

	created    []model.Registration
	facilities map[string]model.Facilities
	uploads    map[string]int

	branches []model.Branch

	createErr     error
	listErr       error
	facilitiesErr error
	mediaErr      error

	// block, when set, holds CreateBranch until closed
	block chan struct{}
	calls int
}

func newFakeBranchAPI() *fakeBranchAPI {
	return &fakeBranchAPI{
		facilities: map[string]model.Facilities{},
		uploads:    map[string]int{},
	}
}

func (f *fakeBranchAPI) CreateBranch(ctx context.Context, reg model.Registration) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, reg)
	return nil
}

func (f *fakeBranchAPI) ListBranches(ctx context.Context) ([]model.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.branches, f.listErr
}

func (f *fakeBranchAPI) GetBranch(ctx context.Context, id string) (*model.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for i := range f.branches {
		if f.branches[i].ID.String() == id {
			b := f.branches[i]
			return &b, nil
		}
	}
	return nil, &gymapi.APIError{StatusCode: 404}
}

func (f *fakeBranchAPI) UpdateFacilities(ctx context.Context, id string, facilities model.Facilities) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.facilitiesErr != nil {
		return f.facilitiesErr
	}
	f.facilities[id] = facilities
	return nil
}

func (f *fakeBranchAPI) UploadMedia(ctx context.Context, id string, files []gymapi.MediaFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.mediaErr != nil {
		return f.mediaErr
	}
	f.uploads[id] += len(files)
	return nil
}
