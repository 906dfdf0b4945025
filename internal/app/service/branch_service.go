package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/milicode/gym-panel/internal/app/model"
	apperrors "github.com/milicode/gym-panel/internal/errors"
	"github.com/milicode/gym-panel/internal/inflight"
	"github.com/milicode/gym-panel/pkg/gymapi"
	"github.com/milicode/gym-panel/pkg/logger"
)

// CompletionResult reports the optional media half of CompleteInformation.
// MediaErr is additive: the facilities update already succeeded and is not
// rolled back.
type CompletionResult struct {
	MediaUploaded int
	MediaErr      error
}

type BranchService interface {
	ListBranches(ctx context.Context) ([]model.Branch, error)
	GetBranch(ctx context.Context, id string) (*model.Branch, error)
	// CompleteInformation updates the facility flags and, when files are
	// given and the update succeeded, uploads them in a second request.
	CompleteInformation(ctx context.Context, id string, facilities model.Facilities, files []gymapi.MediaFile) (CompletionResult, error)
}

type branchService struct {
	api      BranchAPI
	inFlight inflight.Registry
}

func NewBranchService(api BranchAPI, inFlight inflight.Registry) BranchService {
	return &branchService{
		api:      api,
		inFlight: inFlight,
	}
}

func (s *branchService) ListBranches(ctx context.Context) ([]model.Branch, error) {
	branches, err := s.api.ListBranches(ctx)
	if err != nil {
		logger.Error("Failed to list branches", err)
		return nil, err
	}

	logger.Debug("Branches fetched", logger.Fields{
		"count": len(branches),
	})
	return branches, nil
}

func (s *branchService) GetBranch(ctx context.Context, id string) (*model.Branch, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ErrMissingBranchID
	}

	branch, err := s.api.GetBranch(ctx, id)
	if err != nil {
		logger.Error("Failed to fetch branch", err, logger.Fields{
			"branch_id": id,
		})
		return nil, err
	}
	return branch, nil
}

func (s *branchService) CompleteInformation(ctx context.Context, id string, facilities model.Facilities, files []gymapi.MediaFile) (CompletionResult, error) {
	var result CompletionResult
	if strings.TrimSpace(id) == "" {
		return result, apperrors.ErrMissingBranchID
	}

	key := inflight.FacilitiesKey(id)
	token, err := s.inFlight.Acquire(ctx, key)
	if err != nil {
		return result, err
	}
	defer func() {
		if err := s.inFlight.Release(context.WithoutCancel(ctx), key, token); err != nil {
			logger.Error("Failed to release in-flight token", err, logger.Fields{"key": key})
		}
	}()

	if err := s.api.UpdateFacilities(ctx, id, facilities); err != nil {
		logger.Error("Failed to update facilities", err, logger.Fields{
			"branch_id": id,
		})
		return result, fmt.Errorf("failed to update facilities: %w", err)
	}

	logger.Info("Facilities updated", logger.Fields{
		"branch_id": id,
	})

	if len(files) == 0 {
		return result, nil
	}

	if err := s.api.UploadMedia(ctx, id, files); err != nil {
		logger.Error("Failed to upload media", err, logger.Fields{
			"branch_id": id,
			"files":     len(files),
		})
		result.MediaErr = fmt.Errorf("failed to upload media: %w", err)
		return result, nil
	}

	result.MediaUploaded = len(files)
	logger.Info("Media uploaded", logger.Fields{
		"branch_id": id,
		"files":     len(files),
	})
	return result, nil
}
