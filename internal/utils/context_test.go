// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestIDTokenCtxKey(t *testing.T) {
	if IDTokenCtxKey.String() != "idToken" {
		t.Errorf("expected 'idToken', got '%s'", IDTokenCtxKey.String())
	}
}

func TestIDTokenFromContext_Success(t *testing.T) {
	ctx := WithIDToken(context.Background(), "token-value")

	idToken, ok := IDTokenFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if idToken != "token-value" {
		t.Errorf("expected 'token-value', got '%s'", idToken)
	}
}

func TestIDTokenFromContext_Missing(t *testing.T) {
	idToken, ok := IDTokenFromContext(context.Background())

	if ok {
		t.Error("expected ok=false for missing token")
	}
	if idToken != "" {
		t.Errorf("expected empty token, got '%s'", idToken)
	}
}

func TestIDTokenFromContext_Empty(t *testing.T) {
	ctx := WithIDToken(context.Background(), "")

	if _, ok := IDTokenFromContext(ctx); ok {
		t.Error("expected ok=false for empty token")
	}
}

func TestIDTokenFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), IDTokenCtxKey, 42)

	if _, ok := IDTokenFromContext(ctx); ok {
		t.Error("expected ok=false for non-string value")
	}
}
