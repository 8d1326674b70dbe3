package offerletter

import (
	"context"
	"errors"
	"strings"
	"time"

	offerlettererrors "vthr/internal/offerletter/errors"
	"vthr/internal/shared/apperror"
	"vthr/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateOfferLetterRequest) (OfferLetterResponse, error)
	GetAll(ctx context.Context) ([]OfferLetterResponse, error)
	GetByID(ctx context.Context, id string) (OfferLetterResponse, error)
	Regenerate(ctx context.Context, id string) (OfferLetterResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateOfferLetterStatusRequest) (OfferLetterResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	validator *validation.Validator
	docDir    string
	logger    *zap.Logger
}

func NewService(repo Repository, validator *validation.Validator, documentDir string, logger ...*zap.Logger) Service {
	l := zap.L().Named("offerletter.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("offerletter.service")
	}
	return &service{repo: repo, validator: validator, docDir: documentDir, logger: l}
}

// Create renders the letter before persisting; a record never exists without
// its document.
func (s *service) Create(ctx context.Context, req CreateOfferLetterRequest) (OfferLetterResponse, error) {
	if violations := s.validator.ValidateOfferLetterData(validation.OfferLetterData{
		EmployeeName: req.EmployeeName,
		Designation:  req.Designation,
		JoiningDate:  req.JoiningDate,
		OfferedCTC:   req.OfferedCTC,
	}); len(violations) > 0 {
		return OfferLetterResponse{}, apperror.NewValidationFailed(violations)
	}

	joiningDate, _ := time.Parse("2006-01-02", req.JoiningDate)
	offer := &OfferLetter{
		ID:               uuid.New(),
		EmployeeName:     req.EmployeeName,
		RelationPrefix:   req.RelationPrefix,
		FatherName:       req.FatherName,
		EmployeeAddress:  strings.Join(req.EmployeeAddress, "\n"),
		Designation:      req.Designation,
		JoiningDate:      joiningDate,
		Basic:            req.Basic,
		HRA:              req.HRA,
		DA:               req.DA,
		SpecialAllowance: req.SpecialAllowance,
		TDS:              req.TDS,
		OfferedCTC:       req.OfferedCTC,
		Status:           StatusGenerated,
	}

	path, err := renderOfferLetter(offer, s.docDir)
	if err != nil {
		s.logger.Error("render offer letter failed", zap.Error(err))
		return OfferLetterResponse{}, err
	}
	offer.PDFURL = path

	if err := s.repo.Create(ctx, offer); err != nil {
		s.logger.Error("create offer letter persist failed", zap.Error(err))
		return OfferLetterResponse{}, err
	}

	s.logger.Info("create offer letter success",
		zap.String("offer_id", offer.ID.String()),
		zap.String("employee_name", offer.EmployeeName),
	)

	return mapToResponse(*offer), nil
}

func (s *service) GetAll(ctx context.Context) ([]OfferLetterResponse, error) {
	offers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all offer letters failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(offers), nil
}

func (s *service) GetByID(ctx context.Context, id string) (OfferLetterResponse, error) {
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OfferLetterResponse{}, offerlettererrors.ErrOfferLetterNotFound
		}
		return OfferLetterResponse{}, err
	}
	return mapToResponse(*offer), nil
}

// Regenerate re-renders the document from the stored record, overwriting the
// previous file.
func (s *service) Regenerate(ctx context.Context, id string) (OfferLetterResponse, error) {
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OfferLetterResponse{}, offerlettererrors.ErrOfferLetterNotFound
		}
		return OfferLetterResponse{}, err
	}

	path, err := renderOfferLetter(offer, s.docDir)
	if err != nil {
		s.logger.Error("regenerate offer letter failed", zap.String("offer_id", id), zap.Error(err))
		return OfferLetterResponse{}, err
	}

	if err := s.repo.UpdatePDFURL(ctx, id, path); err != nil {
		return OfferLetterResponse{}, err
	}
	offer.PDFURL = path

	s.logger.Info("regenerate offer letter success", zap.String("offer_id", id))
	return mapToResponse(*offer), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateOfferLetterStatusRequest) (OfferLetterResponse, error) {
	if !IsValidStatus(req.Status) {
		return OfferLetterResponse{}, offerlettererrors.ErrInvalidStatus
	}

	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OfferLetterResponse{}, offerlettererrors.ErrOfferLetterNotFound
		}
		return OfferLetterResponse{}, err
	}

	if offer.Status != req.Status {
		if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
			s.logger.Error("update offer letter status failed", zap.String("offer_id", id), zap.Error(err))
			return OfferLetterResponse{}, err
		}
		offer.Status = req.Status
	}

	return mapToResponse(*offer), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return offerlettererrors.ErrOfferLetterNotFound
		}
		s.logger.Error("delete offer letter failed", zap.String("offer_id", id), zap.Error(err))
		return err
	}
	return nil
}
