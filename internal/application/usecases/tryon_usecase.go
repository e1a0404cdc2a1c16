package usecases

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"virtuwear/internal/domain/entities"
	"virtuwear/internal/domain/repositories"
	"virtuwear/internal/domain/services"
	"virtuwear/internal/domain/valueobjects"
)

type TryOnUseCase struct {
	garmentRepo   repositories.GarmentRepository
	tryOnRepo     repositories.TryOnRepository
	domainService *services.TryOnDomainService
	logger        *slog.Logger
}

func NewTryOnUseCase(
	garmentRepo repositories.GarmentRepository,
	tryOnRepo repositories.TryOnRepository,
	domainService *services.TryOnDomainService,
	logger *slog.Logger,
) *TryOnUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &TryOnUseCase{
		garmentRepo:   garmentRepo,
		tryOnRepo:     tryOnRepo,
		domainService: domainService,
		logger:        logger,
	}
}

type TryOnInput struct {
	Photo         io.Reader
	PhotoFilename string
	OutfitName    string
	Parameters    *TryOnParametersInput
}

type TryOnParametersInput struct {
	Prompt             string
	CompressionQuality int
}

type TryOnOutput struct {
	RequestID  entities.TryOnRequestID
	ResultPath string
	MimeType   valueobjects.MimeType
	Garment    string
}

// Execute runs one try-on: persist the upload, resolve the garment, call the
// model and write the JPEG result. Files are namespaced by a fresh request id.
func (uc *TryOnUseCase) Execute(ctx context.Context, input TryOnInput) (*TryOnOutput, error) {
	if input.Photo == nil {
		return nil, entities.NewValidationError("Missing 'photo' file.")
	}
	if input.OutfitName == "" {
		return nil, entities.NewValidationError("Missing 'outfit' parameter.")
	}

	parameters, err := uc.convertParameters(input.Parameters)
	if err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	id := entities.NewTryOnRequestID()
	logger := uc.logger.With("requestID", id)

	photoPath, err := uc.tryOnRepo.SaveUpload(ctx, id, valueobjects.UploadExtension(input.PhotoFilename), input.Photo)
	if err != nil {
		return nil, err
	}

	garment, err := uc.garmentRepo.Resolve(ctx, input.OutfitName)
	if err != nil {
		return nil, err
	}
	logger.Info("Resolved outfit", "outfit", input.OutfitName, "path", garment.Path())

	personImage, err := valueobjects.LoadImageFile(photoPath)
	if err != nil {
		return nil, &entities.DecodeError{Source: "user photo", Err: err}
	}
	garmentImage, err := valueobjects.LoadImageFile(garment.Path())
	if err != nil {
		return nil, &entities.DecodeError{Source: "outfit " + garment.Filename(), Err: err}
	}

	request, err := entities.NewTryOnRequest(id, personImage, garmentImage, parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.SetGarment(garment)

	result, err := uc.domainService.ProcessTryOn(ctx, request)
	if err != nil {
		return nil, err
	}

	delivered, err := uc.domainService.Materialize(result, parameters)
	if err != nil {
		return nil, err
	}

	resultPath, err := uc.tryOnRepo.SaveResult(ctx, entities.NewTryOnResult(id, delivered, result.Model()))
	if err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}
	logger.Info("Try-on completed", "model", result.Model(), "result", resultPath)

	return &TryOnOutput{
		RequestID:  id,
		ResultPath: resultPath,
		MimeType:   delivered.MimeType(),
		Garment:    garment.Filename(),
	}, nil
}

// ListOutfits returns the catalog filenames offered to users.
func (uc *TryOnUseCase) ListOutfits(ctx context.Context) ([]string, error) {
	return uc.garmentRepo.List(ctx)
}

func (uc *TryOnUseCase) convertParameters(input *TryOnParametersInput) (*valueobjects.TryOnParameters, error) {
	if input == nil {
		return valueobjects.DefaultTryOnParameters(), nil
	}

	quality := input.CompressionQuality
	if quality == 0 {
		quality = valueobjects.DefaultCompressionQuality
	}

	return valueobjects.NewTryOnParameters(input.Prompt, quality)
}
