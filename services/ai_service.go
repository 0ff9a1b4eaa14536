// file: services/ai_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"vibebuild/apperrors"
	"vibebuild/dto"
	"vibebuild/utils"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AIService 面向主办方的内容生成协作方。产出只是普通的草稿输入，
// 核心既不信任它也不特殊对待：采纳后照常走发布时校验
type AIService struct {
	apiKey    string
	modelName string
}

func NewAIService(apiKey, modelName string) *AIService {
	return &AIService{apiKey: apiKey, modelName: modelName}
}

const draftPrompt = `You are an expert hackathon organizer.
Generate a detailed hackathon event plan based on the topic: %s
Return ONLY a valid JSON object with the following fields:
- title: a creative title for the hackathon
- description: a compelling description (markdown supported)
- theme_tags: a string of comma-separated tags
- rules_detail: detailed rules
- scoring_dimensions: a list of objects, each with "name" (string) and "weight" (integer) fields; weights must sum to 100
- awards: a list of objects, each with "name" and "detail" fields

Do not include any markdown formatting (like ` + "```json" + `) in the response, just the raw JSON string.`

// GenerateHackathonDraft 根据主题生成结构化的黑客松草稿。
// 模型输出无法按约定结构解码时直接拒绝，不做兜底容错
func (s *AIService) GenerateHackathonDraft(ctx context.Context, topic string) (*dto.HackathonDraft, error) {
	if topic == "" {
		return nil, apperrors.New(apperrors.Validation, "topic is required")
	}
	if s.apiKey == "" {
		return nil, apperrors.New(apperrors.Validation, "AI draft generation is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, err
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.7)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(draftPrompt, topic)))
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, apperrors.New(apperrors.Validation, "AI returned an empty draft")
	}

	raw := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	draft, err := decodeDraft(raw)
	if err != nil {
		slog.Error("AI draft does not decode", "topic", topic, "raw", raw, "error", err)
		return nil, err
	}
	draft.DraftID = utils.GenerateDraftID()
	return draft, nil
}

// decodeDraft 容忍模型偶尔带上的 markdown 代码围栏，其余格式问题直接拒绝
func decodeDraft(raw string) (*dto.HackathonDraft, error) {
	jsonText := strings.TrimSpace(raw)
	jsonText = strings.ReplaceAll(jsonText, "```json", "")
	jsonText = strings.ReplaceAll(jsonText, "```", "")
	jsonText = strings.TrimSpace(jsonText)

	var draft dto.HackathonDraft
	if err := json.Unmarshal([]byte(jsonText), &draft); err != nil {
		return nil, apperrors.New(apperrors.Validation, "AI draft does not match the expected structure")
	}
	if draft.Title == "" {
		return nil, apperrors.New(apperrors.Validation, "AI draft does not match the expected structure")
	}
	return &draft, nil
}
