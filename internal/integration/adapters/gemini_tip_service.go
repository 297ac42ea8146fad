package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ecooy/backend/config"
	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/valueobject"
)

const (
	maxTipTitleLength   = 60
	maxTipMessageLength = 400
)

// GeminiTipService implements adapter.TipGenerator using Google Gemini.
type GeminiTipService struct {
	apiKey    string
	modelName string
	timeout   time.Duration
}

// NewGeminiTipService creates a new Gemini tip service instance.
func NewGeminiTipService(cfg *config.GeminiConfig) *GeminiTipService {
	return &GeminiTipService{
		apiKey:    cfg.APIKey,
		modelName: cfg.Model,
		timeout:   cfg.Timeout,
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiTipService) IsAvailable() bool {
	return s.apiKey != ""
}

// GenerateTip asks the model for one short tip in Brazilian Portuguese.
func (s *GeminiTipService) GenerateTip(ctx context.Context, request *adapter.TipRequest) (*adapter.Tip, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.7)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildTipPrompt(request)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	tip, err := parseTipResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return tip, nil
}

func buildTipPrompt(request *adapter.TipRequest) string {
	var sb strings.Builder

	sb.WriteString(`Voce e um consultor financeiro pessoal. Escreva UMA dica curta e pratica, em Portugues Brasileiro, com base no resumo financeiro abaixo.

REGRAS:
- Titulo com no maximo 60 caracteres
- Mensagem com no maximo 300 caracteres
- Use valores em reais (R$) quando citar numeros
- Nao invente dados que nao estao no resumo

RESUMO:
`)

	if request.DisplayName != "" {
		fmt.Fprintf(&sb, "- Nome: %s\n", request.DisplayName)
	}
	fmt.Fprintf(&sb, "- Receitas: %s\n", valueobject.FormatCurrency(request.Income))
	fmt.Fprintf(&sb, "- Despesas: %s\n", valueobject.FormatCurrency(request.Expenses))
	fmt.Fprintf(&sb, "- Saldo: %s\n", valueobject.FormatCurrency(request.Balance))
	if request.Salary != nil {
		fmt.Fprintf(&sb, "- Salario: %s\n", valueobject.FormatCurrency(*request.Salary))
	}
	if request.FixedExpenses != nil {
		fmt.Fprintf(&sb, "- Gastos fixos: %s\n", valueobject.FormatCurrency(*request.FixedExpenses))
	}

	if len(request.ExpensesByCategory) > 0 {
		sb.WriteString("- Despesas por categoria:\n")
		categories := make([]string, 0, len(request.ExpensesByCategory))
		for category := range request.ExpensesByCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			fmt.Fprintf(&sb, "  * %s: %s\n", category, valueobject.FormatCurrency(request.ExpensesByCategory[category]))
		}
	}

	if len(request.OpenGoals) > 0 {
		fmt.Fprintf(&sb, "- Metas em andamento: %s\n", strings.Join(request.OpenGoals, ", "))
	}

	sb.WriteString(`
FORMATO DE RESPOSTA: apenas um objeto JSON, sem texto adicional:
{"title": "string", "message": "string"}
`)

	return sb.String()
}

type geminiTip struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func parseTipResponse(resp *genai.GenerateContentResponse) (*adapter.Tip, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	return decodeTip(textContent)
}

// decodeTip accepts the JSON object with or without a markdown code fence.
func decodeTip(textContent string) (*adapter.Tip, error) {
	textContent = strings.TrimSpace(textContent)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	var raw geminiTip
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	title := truncateRunes(strings.TrimSpace(raw.Title), maxTipTitleLength)
	message := truncateRunes(strings.TrimSpace(raw.Message), maxTipMessageLength)
	if title == "" || message == "" {
		return nil, fmt.Errorf("tip is missing title or message")
	}

	return &adapter.Tip{Title: title, Message: message}, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
