package service

import (
	"context"
	"fmt"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/internal/inflight"
	"github.com/milicode/gym-panel/internal/wizard"
	"github.com/milicode/gym-panel/pkg/gymapi"
	"github.com/milicode/gym-panel/pkg/logger"
)

// WizardService runs the registration steps against the session draft.
// Every Save* validates the form first and returns wizard.ErrInvalidForm,
// leaving the draft untouched, when it fails.
type WizardService interface {
	Draft(ctx context.Context, sessionID string) (model.Draft, error)
	SaveInformation(ctx context.Context, sessionID string, form *wizard.InformationForm, rejected wizard.FieldErrors) (model.Draft, error)
	SaveManager(ctx context.Context, sessionID string, form *wizard.ManagerForm, rejected wizard.FieldErrors) (model.Draft, error)
	SaveAddress(ctx context.Context, sessionID string, form *wizard.AddressForm, rejected wizard.FieldErrors) (model.Draft, error)
	Back(ctx context.Context, sessionID string) (model.Draft, error)
	// SubmitLocation sends the assembled registration and clears the draft
	// on acknowledgement. On any failure before the acknowledgement the draft
	// is kept as it was.
	SubmitLocation(ctx context.Context, sessionID string, form *wizard.LocationForm, rejected wizard.FieldErrors) error
}

type wizardService struct {
	drafts   DraftService
	api      BranchAPI
	inFlight inflight.Registry
}

func NewWizardService(drafts DraftService, api BranchAPI, inFlight inflight.Registry) WizardService {
	return &wizardService{
		drafts:   drafts,
		api:      api,
		inFlight: inFlight,
	}
}

func (s *wizardService) Draft(ctx context.Context, sessionID string) (model.Draft, error) {
	return s.drafts.Current(ctx, sessionID)
}

func (s *wizardService) save(ctx context.Context, sessionID string, step int, form wizard.Form, rejected wizard.FieldErrors, action wizard.Action) (model.Draft, error) {
	if !wizard.Check(form, rejected) {
		logger.Debug("Wizard step rejected", logger.Fields{
			"session_id": sessionID,
			"step":       step,
		})
		return model.Draft{}, wizard.ErrInvalidForm
	}

	return s.drafts.Update(ctx, sessionID, func(current model.Draft) []wizard.Action {
		return wizard.Advance(step, current, action)
	})
}

func (s *wizardService) SaveInformation(ctx context.Context, sessionID string, form *wizard.InformationForm, rejected wizard.FieldErrors) (model.Draft, error) {
	return s.save(ctx, sessionID, wizard.StepInformation, form, rejected, wizard.SetProject(form.Patch()))
}

func (s *wizardService) SaveManager(ctx context.Context, sessionID string, form *wizard.ManagerForm, rejected wizard.FieldErrors) (model.Draft, error) {
	return s.save(ctx, sessionID, wizard.StepManager, form, rejected, wizard.SetManager(form.Manager()))
}

func (s *wizardService) SaveAddress(ctx context.Context, sessionID string, form *wizard.AddressForm, rejected wizard.FieldErrors) (model.Draft, error) {
	return s.save(ctx, sessionID, wizard.StepAddress, form, rejected, wizard.SetAddress(form.Address))
}

func (s *wizardService) Back(ctx context.Context, sessionID string) (model.Draft, error) {
	return s.drafts.Dispatch(ctx, sessionID, wizard.PrevStep{})
}

func (s *wizardService) SubmitLocation(ctx context.Context, sessionID string, form *wizard.LocationForm, rejected wizard.FieldErrors) error {
	if !wizard.Check(form, rejected) {
		return wizard.ErrInvalidForm
	}

	key := inflight.CreateKey(sessionID)
	token, err := s.inFlight.Acquire(ctx, key)
	if err != nil {
		logger.Warn("Duplicate branch creation refused", logger.Fields{
			"session_id": sessionID,
		})
		return err
	}
	defer func() {
		if err := s.inFlight.Release(context.WithoutCancel(ctx), key, token); err != nil {
			logger.Error("Failed to release in-flight token", err, logger.Fields{"key": key})
		}
	}()

	draft, err := s.drafts.Current(ctx, sessionID)
	if err != nil {
		return err
	}
	reg := wizard.Reduce(draft, wizard.SetLocation(form.Location())).Registration

	logger.Info("Creating branch", logger.Fields{
		"session_id": sessionID,
		"name":       reg.Name,
	})

	if err := s.api.CreateBranch(ctx, reg); err != nil {
		logger.Error("Failed to create branch", err, logger.Fields{
			"session_id": sessionID,
			"status":     gymapi.StatusCode(err),
		})
		return fmt.Errorf("failed to create branch: %w", err)
	}

	// The branch exists now; reporting a failure here would invite a retry
	// that creates it twice.
	if _, err := s.drafts.Dispatch(context.WithoutCancel(ctx), sessionID, wizard.Reset{}); err != nil {
		logger.Error("Branch created but draft reset failed", err, logger.Fields{
			"session_id": sessionID,
		})
		return nil
	}

	logger.Info("Branch created, draft cleared", logger.Fields{
		"session_id": sessionID,
	})
	return nil
}
