package gemini

import (
	"fmt"
	"strings"

	"github.com/fwojciec/folio"
	"google.golang.org/genai"
)

// Operation names used in errors and logs.
const (
	OpChat     = "chat"
	OpSuggest  = "suggest"
	OpGenerate = "generate image"
	OpEdit     = "edit image"
	OpSpeech   = "synthesize speech"
	OpSearch   = "search bio"
)

// Call is a fully described provider request.
type Call struct {
	Op       string
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// ChatCall builds the reasoning-model request answering the final history
// entry with the full history and the persona as context.
// Exported for testing.
func ChatCall(models folio.ModelConfig, persona folio.Persona, history []folio.Message) (Call, error) {
	if len(history) == 0 {
		return Call{}, fmt.Errorf("chat history is empty: %w", folio.ErrValidation)
	}
	contents := ConvertMessages(history)
	budget := models.ThinkingBudget
	return Call{
		Op:       OpChat,
		Model:    models.Chat,
		Contents: contents,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: persona.SystemInstruction()}},
			},
			ThinkingConfig: &genai.ThinkingConfig{
				IncludeThoughts: true,
				ThinkingBudget:  &budget,
			},
		},
	}, nil
}

// ConvertMessages converts folio Messages to genai Contents, one text part per
// message. Exported for testing.
func ConvertMessages(msgs []folio.Message) []*genai.Content {
	result := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.RoleUser
		if m.Role == folio.RoleModel {
			role = genai.RoleModel
		}
		result = append(result, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return result
}

// SuggestionCall builds the low-latency structured-output request for
// follow-up questions. Exported for testing.
func SuggestionCall(models folio.ModelConfig, question, answer string) (Call, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return Call{}, fmt.Errorf("suggestions need a complete exchange: %w", folio.ErrValidation)
	}
	prompt := fmt.Sprintf(`Based on this interaction, suggest 3 short (max 5 words each) follow-up questions for a visitor to ask.
User asked: %s
Assistant answered: %s
Return the suggestions as a simple JSON array of strings.`, question, answer)
	return Call{
		Op:       OpSuggest,
		Model:    models.Suggest,
		Contents: genai.Text(prompt),
		Config: &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
	}, nil
}

// ImageCall builds an image generation request. 2K and 4K route to the
// high-capability model with an explicit size; 1K routes to the fast model
// without one. The aspect ratio is always attached. Exported for testing.
func ImageCall(models folio.ModelConfig, req folio.ImageRequest) (Call, error) {
	if err := req.Validate(); err != nil {
		return Call{}, err
	}
	imageConfig := &genai.ImageConfig{AspectRatio: string(req.Ratio)}
	model := models.Image
	if req.Size.HighQuality() {
		model = models.ImagePro
		imageConfig.ImageSize = string(req.Size)
	}
	return Call{
		Op:       OpGenerate,
		Model:    model,
		Contents: []*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: req.Prompt}}}},
		Config:   &genai.GenerateContentConfig{ImageConfig: imageConfig},
	}, nil
}

// EditCall builds an image edit request from a data-URI source image and an
// instruction. The data-URI prefix is stripped and the decoded bytes are sent
// inline ahead of the instruction. Exported for testing.
func EditCall(models folio.ModelConfig, source, instruction string) (Call, error) {
	if strings.TrimSpace(instruction) == "" {
		return Call{}, fmt.Errorf("edit instruction is empty: %w", folio.ErrValidation)
	}
	mimeType, data, err := folio.DecodeDataURI(source)
	if err != nil {
		return Call{}, err
	}
	return Call{
		Op:    OpEdit,
		Model: models.Edit,
		Contents: []*genai.Content{{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
				{Text: instruction},
			},
		}},
	}, nil
}

// SpeechCall builds an audio-only text-to-speech request with a fixed voice.
// Exported for testing.
func SpeechCall(models folio.ModelConfig, text string) (Call, error) {
	if strings.TrimSpace(text) == "" {
		return Call{}, fmt.Errorf("speech text is empty: %w", folio.ErrValidation)
	}
	return Call{
		Op:       OpSpeech,
		Model:    models.Speech,
		Contents: []*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: "Say clearly: " + text}}}},
		Config: &genai.GenerateContentConfig{
			ResponseModalities: []string{string(genai.ModalityAudio)},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: models.Voice},
				},
			},
		},
	}, nil
}

// SearchCall builds a web-search grounded biography request.
// Exported for testing.
func SearchCall(models folio.ModelConfig, subject string) (Call, error) {
	if strings.TrimSpace(subject) == "" {
		return Call{}, fmt.Errorf("search subject is empty: %w", folio.ErrValidation)
	}
	prompt := fmt.Sprintf("Tell me everything about %s as a professional. Search for their latest works, social media presence, and skills. Format the response as a clean, markdown professional bio.", subject)
	return Call{
		Op:       OpSearch,
		Model:    models.Search,
		Contents: genai.Text(prompt),
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		},
	}, nil
}
