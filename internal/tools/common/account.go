package common

import (
	"context"

	"github.com/teemow/formcaller/internal/server"
)

// GetAccountFromArgs returns the account a tool call acts for.
//
// Priority order:
//  1. Account bound to the HTTP request (X-Formcaller-Account)
//  2. Explicit "account" argument
//  3. "default"
func GetAccountFromArgs(ctx context.Context, args map[string]any) string {
	if account, ok := server.AccountFromContext(ctx); ok {
		return account
	}
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return server.DefaultAccount
}
