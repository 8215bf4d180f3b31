// Copyright (c) 2026 Giftwise. All rights reserved.

package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/giftwise/giftwise/internal/platform/apperr"
	"github.com/giftwise/giftwise/internal/users/auth"
)

// # Service Layer

// Service resolves gift ideas from a participant's stored profile.
type Service struct {
	accounts auth.AccountStore
	client   SuggestionClient
	cache    SuggestionCache
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accounts auth.AccountStore, client SuggestionClient, cache SuggestionCache, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		client:   client,
		cache:    cache,
		logger:   logger,
	}
}

/*
Suggest produces a gift idea for the authenticated participant.

Description: Loads the participant's stored gift preferences and budget,
serves a cached answer when one exists for that combination, and otherwise
asks the upstream API and caches the result.

The cache is advisory: cache failures are logged and the request proceeds to
the upstream. Only an unusable profile or an upstream failure is fatal.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *Suggestion: The resolved gift idea
  - error: Unprocessable profile, upstream, or storage failures
*/
func (service *Service) Suggest(context context.Context, accountID string) (*Suggestion, error) {
	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		if errors.Is(err, auth.ErrAccountNotFound) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("suggest_service_lookup_failed: %w", err)
	}

	interest := account.GiftPreferences
	if interest == "" {
		interest = account.Interests
	}
	if interest == "" {
		return nil, apperr.Unprocessable("Add gift preferences to your profile to receive suggestions")
	}

	budget := account.Budget
	if budget <= 0 {
		budget = auth.DefaultBudget
	}

	if gift, found, err := service.cache.Get(context, interest, budget); err != nil {
		service.logger.Warn("suggestion_cache_read_failed", slog.Any("error", err))
	} else if found {
		return &Suggestion{Gift: gift, Interest: interest, Budget: budget, Cached: true}, nil
	}

	gift, err := service.client.Suggest(context, interest, budget)
	if err != nil {
		return nil, err
	}

	if err := service.cache.Set(context, interest, budget, gift, SuggestionCacheTTL); err != nil {
		service.logger.Warn("suggestion_cache_write_failed", slog.Any("error", err))
	}

	service.logger.Info("gift_suggestion_resolved",
		slog.String("account_id", accountID),
		slog.Int("budget", budget),
	)

	return &Suggestion{Gift: gift, Interest: interest, Budget: budget}, nil
}
