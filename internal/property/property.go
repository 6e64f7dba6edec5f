// Package property holds the static facts about the rental property and
// renders the base prompt template from them. The config is an explicit value
// injected where needed rather than module-level state, so tests can supply
// fixtures.
package property

import (
	"fmt"
	"strings"
)

// Config describes the property the assistant answers questions about.
type Config struct {
	Name             string
	Address          string
	PropertyType     string
	CheckinTime      string
	CheckoutTime     string
	WifiPassword     string
	EmergencyContact string

	// Access directions for guests arriving by car.
	NaviSetting string
	ViaPoint    string
	AccessNotes string

	// BBQ and shopping guidance.
	BBQPreparation string
	ShoppingArea   string
}

// Default returns the built-in configuration for ととのいヴィラ PAL.
// Individual fields can be overridden via environment variables (see config).
func Default() Config {
	return Config{
		Name:             "ととのいヴィラ PAL",
		Address:          "静岡県伊豆の国市奈古谷字石橋2206番133 エメラルドタウン207-1-77",
		PropertyType:     "貸別荘・バーベキュー施設",
		CheckinTime:      "15:00",
		CheckoutTime:     "11:00",
		WifiPassword:     "pal2024",
		EmergencyContact: "055-000-0000",
		NaviSetting:      "芙蓉公園（伊豆の国市奈古谷）",
		ViaPoint:         "南箱根・グランビュー（〒410-2132 静岡県伊豆の国市奈古谷2219-60）",
		AccessNotes:      "Googleマップでは細い山道に案内される場合があるため、南箱根・グランビューを経由地として設定することをおすすめします。",
		BBQPreparation:   "BBQの準備は到着前にお済ませください。別荘地内にはお店がほとんどありません。",
		ShoppingArea:     "車で15分圏内に必要な食材・用品が揃うお店があります。",
	}
}

// BaseContext renders the static instructional template: property facts,
// persona instructions, and tone rules. This is the context the assistant
// falls back to when retrieval returns nothing.
func (c Config) BaseContext() string {
	var b strings.Builder

	fmt.Fprintf(&b, "あなたは「%s」のカスタマーサポートAIアシスタントです。以下の情報を参考にして、ゲストの質問に親切で丁寧に回答してください。\n\n", c.Name)

	b.WriteString("基本情報:\n")
	fmt.Fprintf(&b, "- 施設名: %s\n", c.Name)
	fmt.Fprintf(&b, "- 住所: %s\n", c.Address)
	fmt.Fprintf(&b, "- 施設タイプ: %s\n", c.PropertyType)
	fmt.Fprintf(&b, "- チェックイン時間: %s\n", c.CheckinTime)
	fmt.Fprintf(&b, "- チェックアウト時間: %s\n", c.CheckoutTime)
	fmt.Fprintf(&b, "- Wi-Fiパスワード: %s\n", c.WifiPassword)
	fmt.Fprintf(&b, "- 緊急連絡先: %s\n\n", c.EmergencyContact)

	b.WriteString("アクセス情報:\n")
	fmt.Fprintf(&b, "- ナビ設定: %s\n", c.NaviSetting)
	fmt.Fprintf(&b, "- 経由地推奨: %s\n", c.ViaPoint)
	fmt.Fprintf(&b, "- 注意事項: %s\n\n", c.AccessNotes)

	b.WriteString("BBQ・お買い物情報:\n")
	fmt.Fprintf(&b, "- %s\n", c.BBQPreparation)
	fmt.Fprintf(&b, "- %s\n\n", c.ShoppingArea)

	b.WriteString("回答の際の注意点:\n")
	b.WriteString("1. 常に丁寧で親切な日本語で回答してください\n")
	b.WriteString("2. BBQや自然を楽しむ滞在をサポートしてください\n")
	b.WriteString("3. 地元の新鮮な食材やお店の情報を積極的に案内してください\n")
	b.WriteString("4. アクセスの質問には経由地設定をおすすめしてください\n")
	b.WriteString("5. 不明な点は「確認いたします」と答え、緊急連絡先をお伝えください\n")

	return b.String()
}
