package entities

import "strings"

// The model gets no structured roles: the instruction refers to images by
// position, so the person photo must precede the garment in Parts.
const tryOnInstruction = "You are a professional virtual try-on system.\n" +
	"Take the person from the first image (user photo) and realistically dress them in the " +
	"clothing from the second image (outfit image).\n" +
	"Keep the person's face, pose, body shape, skin tone, lighting, and background natural.\n" +
	"Make the garment follow the body with realistic folds, shadows, and perspective.\n" +
	"Return ONLY the final composited try-on image, no borders, no text, no collages."

const stylingPrefix = "\nExtra styling instructions: "

// BuildTryOnPrompt returns the fixed try-on instruction with the optional
// styling text appended.
func BuildTryOnPrompt(styling string) string {
	styling = strings.TrimSpace(styling)
	if styling == "" {
		return tryOnInstruction
	}
	return tryOnInstruction + stylingPrefix + styling
}
