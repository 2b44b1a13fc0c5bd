package service

import (
	"context"
	"errors"

	"saylorscope/domain"
	"saylorscope/ratelimit"
)

// EstimationService turns an EstimationRequest into a validated result by
// chaining quota check, prompt rendering, the remote model call and response
// extraction. Each call is a single stateless round trip; the only shared
// state is the rate limiter.
type EstimationService struct {
	llm     LLMClient
	limiter *ratelimit.Limiter
}

// NewEstimationService creates an EstimationService backed by the given model
// client and limiter.
func NewEstimationService(llm LLMClient, limiter *ratelimit.Limiter) *EstimationService {
	return &EstimationService{llm: llm, limiter: limiter}
}

// Estimate asks the model for the requested figure. callerToken identifies
// the invoking caller for quota accounting. Failures are always a classified
// *EstimationError; partial results are never fabricated.
//
// A request cancelled before the remote call is never counted against the
// quota; one cancelled mid-call has already been counted and the charge is
// not refunded.
func (s *EstimationService) Estimate(
	ctx context.Context,
	callerToken string,
	req domain.EstimationRequest,
) (domain.EstimationResult, error) {

	// Validate before any I/O.
	if req.Name == "" {
		return domain.EstimationResult{}, newValidationError("asset name is required")
	}
	if !req.Type.Valid() {
		return domain.EstimationResult{}, newValidationError("asset type is required")
	}
	if !req.Kind.Valid() {
		return domain.EstimationResult{}, newValidationError("estimation kind must be \"maintenance\" or \"appreciation\"")
	}

	// A request abandoned before reaching the remote call must not be
	// charged against the quota.
	if err := ctx.Err(); err != nil {
		return domain.EstimationResult{}, newUpstreamError("request cancelled", "", err)
	}

	if err := s.limiter.Check(ctx, callerToken); err != nil {
		if errors.Is(err, ratelimit.ErrLimitExceeded) {
			return domain.EstimationResult{}, newQuotaError("estimation quota exhausted, try again after the window resets", err)
		}
		// A failing counter store is infrastructure, not an exhausted quota.
		return domain.EstimationResult{}, newUpstreamError("checking estimation quota", "", err)
	}

	prompt := BuildEstimationPrompt(req.Name, req.Type, req.Kind)

	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		var ee *EstimationError
		if errors.As(err, &ee) {
			return domain.EstimationResult{}, err
		}
		return domain.EstimationResult{}, newUpstreamError("calling model", "", err)
	}

	result, err := ExtractEstimation(raw)
	if err != nil {
		return domain.EstimationResult{}, err
	}
	return result, nil
}
