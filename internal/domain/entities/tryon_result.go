package entities

import (
	"fmt"
	"time"

	"virtuwear/internal/domain/valueobjects"
)

type TryOnResultID string

type TryOnResult struct {
	id        TryOnResultID
	requestID TryOnRequestID
	image     *valueobjects.ImageData
	model     string
	text      string
}

func NewTryOnResult(requestID TryOnRequestID, image *valueobjects.ImageData, model string) *TryOnResult {
	id := TryOnResultID(fmt.Sprintf("result_%d", time.Now().UnixNano()))

	return &TryOnResult{
		id:        id,
		requestID: requestID,
		image:     image,
		model:     model,
	}
}

func (r *TryOnResult) ID() TryOnResultID {
	return r.id
}

func (r *TryOnResult) RequestID() TryOnRequestID {
	return r.requestID
}

func (r *TryOnResult) Image() *valueobjects.ImageData {
	return r.image
}

func (r *TryOnResult) Model() string {
	return r.model
}

// Text is any commentary the model returned alongside the image.
func (r *TryOnResult) Text() string {
	return r.text
}

func (r *TryOnResult) SetText(text string) {
	r.text = text
}

func (r *TryOnResult) HasImage() bool {
	return r.image != nil && len(r.image.Data()) > 0
}
