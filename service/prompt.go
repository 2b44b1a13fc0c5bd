package service

import (
	"fmt"

	"saylorscope/domain"
)

// BuildEstimationPrompt renders the instruction sent to the model. The
// template is deterministic: the same name, type and kind always produce the
// same string. The worked examples anchor the required output format so the
// model answers with a bare JSON object.
func BuildEstimationPrompt(name string, assetType domain.AssetType, kind domain.EstimationKind) string {
	ask := "Monthly maintenance cost (in USD)"
	if kind == domain.EstimateAppreciation {
		ask = "Annual appreciation rate (as a percentage)"
	}

	return fmt.Sprintf(`Please provide an estimate for the following asset:
Name: %s
Type: %s

Provide an estimate for:
%s

Always try to provide a numeric estimate or range. If the asset is volatile or speculative, give a reasonable range based on historical data or expert predictions.

Format your response as a JSON object with three keys:
"value" (a single numeric estimate or the midpoint of a range),
"range" (an array with two numbers representing the low and high estimates, or null if not applicable),
and "explanation" (a brief explanation of the estimate or range).

Example responses:
{"value": 500, "range": null, "explanation": "Based on average maintenance costs for similar assets."}
{"value": 25, "range": [-50, 100], "explanation": "Bitcoin's annual appreciation rate is highly volatile. Historical data suggests a range of -50%% to 100%% annual growth, with 25%% as a midpoint estimate."}
{"value": null, "range": null, "explanation": "Cannot provide an estimate for 'Food' as an asset. Food is typically a consumable item, not an investment asset."}

IMPORTANT: Your response should contain ONLY the JSON object, without any additional text before or after it.`,
		name, assetType, ask)
}
