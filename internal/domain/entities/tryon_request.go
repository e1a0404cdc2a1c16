package entities

import (
	"fmt"

	"github.com/google/uuid"

	"virtuwear/internal/domain/valueobjects"
)

type TryOnRequestID string

// NewTryOnRequestID returns a fresh id used to namespace the files of one
// request.
func NewTryOnRequestID() TryOnRequestID {
	return TryOnRequestID(uuid.NewString())
}

type PartKind int

const (
	TextPart PartKind = iota
	ImagePart
)

// RequestPart is one element of the outbound request: either instruction
// text or an inline image.
type RequestPart struct {
	Kind  PartKind
	Text  string
	Image *valueobjects.ImageData
}

type TryOnRequest struct {
	id           TryOnRequestID
	personImage  *valueobjects.ImageData
	garmentImage *valueobjects.ImageData
	garment      *GarmentAsset
	parameters   *valueobjects.TryOnParameters
}

func NewTryOnRequest(
	id TryOnRequestID,
	personImage *valueobjects.ImageData,
	garmentImage *valueobjects.ImageData,
	parameters *valueobjects.TryOnParameters,
) (*TryOnRequest, error) {
	if personImage == nil {
		return nil, fmt.Errorf("person image is required")
	}

	if garmentImage == nil {
		return nil, fmt.Errorf("garment image is required")
	}

	if parameters == nil {
		parameters = valueobjects.DefaultTryOnParameters()
	}

	if id == "" {
		id = NewTryOnRequestID()
	}

	return &TryOnRequest{
		id:           id,
		personImage:  personImage,
		garmentImage: garmentImage,
		parameters:   parameters,
	}, nil
}

func (r *TryOnRequest) ID() TryOnRequestID {
	return r.id
}

func (r *TryOnRequest) PersonImage() *valueobjects.ImageData {
	return r.personImage
}

func (r *TryOnRequest) GarmentImage() *valueobjects.ImageData {
	return r.garmentImage
}

// Garment is the catalog asset the garment image was loaded from, if known.
func (r *TryOnRequest) Garment() *GarmentAsset {
	return r.garment
}

func (r *TryOnRequest) SetGarment(garment *GarmentAsset) {
	r.garment = garment
}

func (r *TryOnRequest) Parameters() *valueobjects.TryOnParameters {
	return r.parameters
}

func (r *TryOnRequest) Prompt() string {
	return BuildTryOnPrompt(r.parameters.StylingPrompt())
}

// Parts returns the request in wire order: instruction, person, garment.
func (r *TryOnRequest) Parts() []RequestPart {
	return []RequestPart{
		{Kind: TextPart, Text: r.Prompt()},
		{Kind: ImagePart, Image: r.personImage},
		{Kind: ImagePart, Image: r.garmentImage},
	}
}

// PrepareImages normalizes both images to RGB PNG in place.
func (r *TryOnRequest) PrepareImages() error {
	person, err := r.personImage.Normalize()
	if err != nil {
		return &DecodeError{Source: "user photo", Err: err}
	}

	garment, err := r.garmentImage.Normalize()
	if err != nil {
		return &DecodeError{Source: "outfit image", Err: err}
	}

	r.personImage = person
	r.garmentImage = garment
	return nil
}
