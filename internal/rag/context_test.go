package rag

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAssembleContext_EmptyResults(t *testing.T) {
	base := "基本コンテキスト"

	if got := AssembleContext(base, nil, 400); got != base {
		t.Errorf("AssembleContext() with no results = %q, want base unchanged", got)
	}
	if got := AssembleContext(base, []SearchResult{}, 400); got != base {
		t.Errorf("AssembleContext() with empty slice = %q, want base unchanged", got)
	}
}

func TestAssembleContext_Formatting(t *testing.T) {
	base := "基本コンテキスト"
	results := []SearchResult{
		{ID: 1, Title: "チェックイン案内", Content: "15時からです。", Category: "チェックイン・チェックアウト", Similarity: 0.92},
		{ID: 2, Title: "Wi-Fi", Content: "パスワードはpal2024です。", Category: "設備・アメニティ", Similarity: 0.455},
	}

	got := AssembleContext(base, results, 400)

	if !strings.HasPrefix(got, base) {
		t.Error("AssembleContext() should start with the base template")
	}
	wantFragments := []string{
		"関連する情報:",
		"1. 【チェックイン・チェックアウト】チェックイン案内",
		"15時からです。",
		"(関連度: 92.0%)",
		"2. 【設備・アメニティ】Wi-Fi",
		"(関連度: 45.5%)",
		"上記の関連情報を参考にして",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(got, fragment) {
			t.Errorf("AssembleContext() missing %q", fragment)
		}
	}
}

func TestAssembleContext_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("あ", 500)
	results := []SearchResult{
		{ID: 1, Title: "t", Content: long, Category: "c", Similarity: 0.5},
	}

	got := AssembleContext("base", results, 100)

	if strings.Contains(got, long) {
		t.Error("AssembleContext() should truncate content beyond the budget")
	}
	if !strings.Contains(got, strings.Repeat("あ", 100)+"…") {
		t.Error("AssembleContext() should mark the cut with an ellipsis")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		budget int
		want   string
	}{
		{name: "under budget unchanged", s: "short", budget: 100, want: "short"},
		{name: "exact budget unchanged", s: "12345", budget: 5, want: "12345"},
		{name: "over budget cut with ellipsis", s: "123456", budget: 5, want: "12345…"},
		{name: "multibyte counted in runes", s: "あいうえお", budget: 3, want: "あいう…"},
		{name: "zero budget unchanged", s: "keep", budget: 0, want: "keep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.s, tt.budget)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.budget, got, tt.want)
			}
			if tt.budget > 0 && utf8.RuneCountInString(got) > tt.budget+1 {
				t.Errorf("truncate() result exceeds budget: %d runes", utf8.RuneCountInString(got))
			}
		})
	}
}
