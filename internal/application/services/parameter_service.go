package services

import (
	"net/http"
	"strconv"
	"strings"

	"virtuwear/internal/application/usecases"
)

type ParameterService struct{}

func NewParameterService() *ParameterService {
	return &ParameterService{}
}

// OutfitName returns the garment identifier from the form field "outfit",
// then the form field "outfit_name", then the "outfit" query parameter.
// The multipart form must already be parsed.
func (s *ParameterService) OutfitName(r *http.Request) string {
	for _, v := range []string{
		r.PostFormValue("outfit"),
		r.PostFormValue("outfit_name"),
		r.URL.Query().Get("outfit"),
	} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (s *ParameterService) ParseFromRequest(r *http.Request) *usecases.TryOnParametersInput {
	return &usecases.TryOnParametersInput{
		Prompt:             s.getString(r, "prompt", ""),
		CompressionQuality: s.getInt(r, "quality", 95, 1, 100),
	}
}

func (s *ParameterService) getInt(r *http.Request, key string, defaultValue, min, max int) int {
	value := r.PostFormValue(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if intVal < min || intVal > max {
		return defaultValue
	}

	return intVal
}

func (s *ParameterService) getString(r *http.Request, key, defaultValue string) string {
	value := r.PostFormValue(key)
	if value == "" {
		return defaultValue
	}
	return value
}
