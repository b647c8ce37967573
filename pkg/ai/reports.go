package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// AIReportResponse represents the structure of AI-generated reports
type AIReportResponse struct {
	Status      string     `json:"status"`
	Data        ReportData `json:"data"`
	GeneratedAt time.Time  `json:"generated_at"`
	AIEnabled   bool       `json:"ai_enabled"`
}

type ReportData struct {
	RawData    interface{} `json:"raw_data"`
	AIInsights string      `json:"ai_insights,omitempty"`
	Summary    string      `json:"summary"`
	Error      string      `json:"error,omitempty"`
}

// GenerateCatalogReport generates AI-powered insights from per-country
// catalog statistics. The caller fetches the aggregates from the store and
// hands them in; this package only talks to the model. When the AI service
// is not configured the raw aggregates are returned unchanged.
func GenerateCatalogReport(ctx context.Context, countryStats interface{}) (*AIReportResponse, error) {
	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: countryStats,
			Summary: "Catalog statistics retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatCatalogDataPrompt(countryStats)
		aiInsights, err := generateCompletion(ctx, CatalogReportSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated catalog insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw catalog statistics (AI insights unavailable)"
	}

	return response, nil
}

// GenerateReviewInsights generates AI-powered analysis of the reviews
// carried by the top-rated souvenirs.
func GenerateReviewInsights(ctx context.Context, topSouvenirs interface{}) (*AIReportResponse, error) {
	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: topSouvenirs,
			Summary: "Top-rated souvenir reviews retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatReviewDataPrompt(topSouvenirs)
		aiInsights, err := generateCompletion(ctx, ReviewInsightsSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated review insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw review data (AI insights unavailable)"
	}

	return response, nil
}

// Helper functions to format data for AI prompts

func formatCatalogDataPrompt(countryStats interface{}) string {
	jsonData, _ := json.MarshalIndent(countryStats, "", "  ")
	return fmt.Sprintf(`Analyze the following souvenir catalog statistics grouped by country and provide merchandising insights:

%s

Please provide:
1. Best and worst performing countries by rating and price
2. Stock level concerns
3. Assortment recommendations
4. Actionable next steps for the buying team`, string(jsonData))
}

func formatReviewDataPrompt(topSouvenirs interface{}) string {
	jsonData, _ := json.MarshalIndent(topSouvenirs, "", "  ")
	return fmt.Sprintf(`Analyze the reviews of the following top-rated souvenirs and provide insights:

%s

Please provide:
1. Common themes in customer feedback
2. Rating patterns across products
3. Listings that need attention
4. Recommendations for the merchandising team`, string(jsonData))
}
