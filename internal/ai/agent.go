package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"biztrack/internal/core"
)

// AdvisorService produces a structured business analysis from a snapshot
// of the ledger.
type AdvisorService interface {
	Analyze(ctx context.Context, snapshot core.AnalysisSnapshot) (*AnalysisResult, error)
}

// FocusProduct names a product the business should concentrate on.
type FocusProduct struct {
	ProductName string `json:"productName" jsonschema_description:"Name of the product to focus on"`
	Reason      string `json:"reason" jsonschema_description:"Why this product deserves attention"`
}

// PricingAdjustment suggests a concrete price change for a product.
type PricingAdjustment struct {
	ProductName     string `json:"productName" jsonschema_description:"Name of the product"`
	SuggestedAction string `json:"suggestedAction" jsonschema_description:"The concrete pricing action to take"`
	Reason          string `json:"reason" jsonschema_description:"Why the price should change"`
}

// AnalysisResult is the structured output returned by the model.
type AnalysisResult struct {
	TopFocusProducts    []FocusProduct      `json:"topFocusProducts" jsonschema_description:"Products with the best return on attention"`
	PricingAdjustments  []PricingAdjustment `json:"pricingAdjustments" jsonschema_description:"Suggested price changes"`
	MarketingStrategy   []string            `json:"marketingStrategy" jsonschema_description:"Actionable marketing suggestions"`
	ExpenseOptimization []string            `json:"expenseOptimization" jsonschema_description:"Ways to reduce or restructure expenses"`
	InventoryActions    []string            `json:"inventoryActions" jsonschema_description:"Restocking or clearance actions"`
	GeneralAnalysis     string              `json:"generalAnalysis" jsonschema_description:"Overall assessment of business health"`
}

// Advisor implements AdvisorService over the OpenAI API.
type Advisor struct {
	client *openai.Client
}

// NewAdvisor builds an Advisor with the given API key.
func NewAdvisor(apiKey string) *Advisor {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Advisor{client: &client}
}

func (a *Advisor) Analyze(ctx context.Context, snapshot core.AnalysisSnapshot) (*AnalysisResult, error) {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	prompt := fmt.Sprintf(`You are an experienced business analyst advising a small retail business.
Analyze the business data below and produce concrete, actionable advice.
Rules:
1. Base every suggestion strictly on the data provided.
2. Prefer specific actions over generic advice.
3. Reference products by their exact names.
4. Consider profit margins, refund losses, and stock levels together.

Business data:
%s`, snapshotJSON)

	// Dynamically generate the JSON schema from the Go struct
	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "business_analysis",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Structured analysis of small-business sales, expenses and inventory"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	return &result, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v AnalysisResult
	return reflector.Reflect(v)
}
