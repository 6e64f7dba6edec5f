// Package language provides the supported response languages and a small
// regex classifier that guesses the language of a guest message. The
// classifier's main job is telling Japanese and Chinese apart, since both can
// be written entirely in kanji.
package language

import "regexp"

// Config describes one supported response language.
type Config struct {
	Code         string
	Name         string
	PropertyName string
	// SystemPrompt states the per-language length rules for answers.
	SystemPrompt string
}

var supported = []Config{
	{
		Code:         "ja",
		Name:         "日本語",
		PropertyName: "ととのいヴィラ PAL",
		SystemPrompt: "基本は300文字以内で十分な情報を、詳細要求時は1500文字以内で徹底的に回答してください。",
	},
	{
		Code:         "en",
		Name:         "English",
		PropertyName: "Totonoiii Villa PAL",
		SystemPrompt: "Basic responses within 200 words with sufficient info, detailed responses within 1000 words when requested.",
	},
	{
		Code:         "zh",
		Name:         "中文",
		PropertyName: "整备别墅PAL",
		SystemPrompt: "基础回答300字内提供充分信息，详细要求时1500字内全面回答。",
	},
	{
		Code:         "ko",
		Name:         "한국어",
		PropertyName: "토토노이 빌라 PAL",
		SystemPrompt: "기본 답변은 300자 내 충분한 정보로, 상세 요청시 1500자 내 포괄적으로 답변하세요.",
	},
}

var (
	hangulRe   = regexp.MustCompile(`[\x{ac00}-\x{d7af}]`)
	latinRe    = regexp.MustCompile(`[a-zA-Z]`)
	japaneseRe = regexp.MustCompile(`[\x{3040}-\x{309f}\x{30a0}-\x{30ff}\x{4e00}-\x{9fff}]`)
	hiraganaRe = regexp.MustCompile(`[\x{3040}-\x{309f}]`)
	katakanaRe = regexp.MustCompile(`[\x{30a0}-\x{30ff}]`)
	kanjiRe    = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)

	// Function words and particles that only appear in Chinese text.
	chineseMarkersRe = regexp.MustCompile(`[请您吗呢的了在是有我你他]`)
)

// Supported returns every supported language config in display order.
func Supported() []Config {
	out := make([]Config, len(supported))
	copy(out, supported)
	return out
}

// Get returns the config for the given code, falling back to Japanese for
// unknown codes.
func Get(code string) Config {
	for _, l := range supported {
		if l.Code == code {
			return l
		}
	}
	return supported[0]
}

// Valid reports whether code names a supported language.
func Valid(code string) bool {
	for _, l := range supported {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Detect guesses the language of text. Defaults to Japanese when unsure.
func Detect(text string) string {
	if text == "" {
		return "ja"
	}

	if hangulRe.MatchString(text) {
		return "ko"
	}

	// Mostly Latin letters with no CJK at all reads as English.
	if latinRe.MatchString(text) && !japaneseRe.MatchString(text) {
		letters := len(latinRe.FindAllString(text, -1))
		if float64(letters)/float64(len([]rune(text))) > 0.5 {
			return "en"
		}
	}

	// Hiragana or katakana settles it immediately.
	if hiraganaRe.MatchString(text) || katakanaRe.MatchString(text) {
		return "ja"
	}

	// Kanji-only text: Chinese function words decide, otherwise assume
	// Japanese as the safer default for this property's guests.
	if kanjiRe.MatchString(text) && chineseMarkersRe.MatchString(text) {
		return "zh"
	}

	return "ja"
}
