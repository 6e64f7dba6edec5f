package documents

import "minpaku-ai/internal/category"

// SeedDocument is one entry of the fixed initial knowledge base.
type SeedDocument struct {
	Title    string
	Content  string
	Category category.Category
}

// SeedDocuments returns the fixed seed set loaded by the init endpoint.
// The shopping guide is intentionally long enough to exercise multi-chunk
// storage.
func SeedDocuments() []SeedDocument {
	return []SeedDocument{
		{
			Title:    "チェックイン・チェックアウトのご案内",
			Category: category.CheckInOut,
			Content: "チェックイン時間は15:00からです。チェックアウト時間は11:00までです。" +
				"セルフチェックイン方式のため、フロントはございません。" +
				"玄関のキーボックスの暗証番号は、ご予約確定後にメッセージでお送りします。" +
				"チェックイン前・チェックアウト後の荷物のお預かりは行っておりません。" +
				"アーリーチェックイン・レイトチェックアウトをご希望の場合は、事前にご相談ください。空き状況によりご案内できる場合があります。",
		},
		{
			Title:    "Wi-Fi・設備のご利用方法",
			Category: category.Amenities,
			Content: "Wi-Fiは館内全域で無料でご利用いただけます。パスワードはpal2024です。" +
				"エアコンは各部屋に設置されています。リモコンはテレビ台の引き出しにあります。" +
				"キッチンには冷蔵庫、電子レンジ、炊飯器、基本的な調理器具と食器を備え付けています。" +
				"洗濯機と乾燥機は脱衣所にあります。洗剤は備え付けのものをお使いください。" +
				"お風呂は追い焚き機能付きです。操作パネルは脱衣所の壁にあります。",
		},
		{
			Title:    "お車でのアクセス方法",
			Category: category.Access,
			Content: "カーナビには「芙蓉公園（伊豆の国市奈古谷）」を設定してください。" +
				"Googleマップでは細い山道に案内される場合があるため、南箱根・グランビュー（静岡県伊豆の国市奈古谷2219-60）を経由地として設定することをおすすめします。" +
				"東名高速道路の沼津ICから約40分、伊豆縦貫道の函南塚本ICから約25分です。" +
				"駐車場は敷地内に2台分ございます。大型車でお越しの場合は事前にご連絡ください。",
		},
		{
			Title:    "周辺のお買い物ガイド",
			Category: category.Sightseeing,
			Content: "BBQの食材や滞在中のお買い物は、到着前に済ませておくことを強くおすすめします。別荘地内にはお店がほとんどありません。車で15分圏内に必要な食材・用品が揃うお店があります。" +
				"スーパーあおき函南店は車で約15分です。住所は静岡県田方郡函南町間宮833-1、営業時間は9:00から21:00です。地元食材が揃う人気スーパーで、精肉・野菜・お惣菜も充実しています。BBQ用の肉の量り売りもあり、到着前のまとめ買いに最適です。" +
				"マックスバリュ函南店も車で約15分です。住所は静岡県田方郡函南町間宮字寺前台341、営業時間は7:00から23:30です。早朝から深夜まで営業しているため、買い忘れがあった場合や急な飲み物の補充に便利です。日用品も揃います。" +
				"エース生鮮館畑毛店は車で約10分です。住所は静岡県田方郡函南町柏谷1310-4です。ローカル感あふれる生鮮市場で、野菜や果物が新鮮で安いのが魅力です。" +
				"杉山鮮魚店は車で約10分です。住所は静岡県田方郡函南町平井1264-282、営業時間は10:30から18:30、月曜定休です。沼津港直送の新鮮な魚が手に入ります。名物の鯵の干物は3枚380円です。伊勢海老や鮑は1kgあたり8,000円から10,000円で予約も可能です。BBQで海鮮を楽しみたい方はぜひお立ち寄りください。" +
				"良酒倉庫宮内酒店は車で約10分です。住所は静岡県伊豆の国市守木767-6です。伊豆の地酒やクラフトビールが豊富に揃っており、BBQのお供にぴったりです。" +
				"調味料や炭などのBBQ用品は事前購入をおすすめします。伊勢海老・鮑をご希望の場合は杉山鮮魚店への事前予約がおすすめです。",
		},
		{
			Title:    "BBQのご利用案内",
			Category: category.Amenities,
			Content: "BBQコンロはテラスに常設しています。炭と着火剤はご持参ください。" +
				"BBQの準備は到着前にお済ませください。別荘地内にはお店がほとんどありません。" +
				"ご利用後は網と鉄板を洗って元の場所にお戻しください。灰は完全に消火してから専用の灰捨て場に捨ててください。" +
				"雨天時は屋根付きテラスでご利用いただけます。" +
				"夜間のBBQは21時までにお願いします。煙や声が近隣に届きやすい環境です。",
		},
		{
			Title:    "緊急時の連絡先と対応",
			Category: category.Emergency,
			Content: "設備の故障やトラブルの際は、緊急連絡先055-000-0000までお電話ください。" +
				"火事・救急は119番、警察は110番です。" +
				"最寄りの病院は順天堂大学医学部附属静岡病院（伊豆の国市長岡1129）で、車で約20分です。" +
				"地震や台風などの災害時は、別荘地管理事務所の指示に従って避難してください。避難場所は芙蓉公園です。" +
				"停電の際は、ブレーカーをご確認の上、復旧しない場合は緊急連絡先までご連絡ください。",
		},
		{
			Title:    "ハウスルール・注意事項",
			Category: category.HouseRules,
			Content: "建物内は全面禁煙です。喫煙はテラスの灰皿をご利用ください。" +
				"ペットの同伴はご遠慮いただいております。" +
				"22時以降は大きな音を立てないようお願いします。静かな別荘地のため、音が響きやすい環境です。" +
				"ゴミは分別の上、キッチンの案内に従って所定の場所にお出しください。" +
				"定員を超えるご宿泊や、無断での訪問者の招き入れはお断りしています。" +
				"チェックアウト時は、食器を洗い、ゴミをまとめ、エアコンと電気を消してから鍵をキーボックスにお戻しください。",
		},
		{
			Title:    "よくある質問",
			Category: category.Sightseeing,
			Content: "タオルやアメニティはありますか？バスタオル・フェイスタオル・シャンプー・ボディソープを人数分ご用意しています。歯ブラシとパジャマはご持参ください。" +
				"近くに温泉はありますか？車で約15分の畑毛温泉、約20分の伊豆長岡温泉がおすすめです。" +
				"コンビニはありますか？最寄りのコンビニまで車で約10分です。別荘地内にはお店がないため、お買い物は到着前がおすすめです。" +
				"花火はできますか？手持ち花火のみ、22時まで敷地内でお楽しみいただけます。打ち上げ花火はご遠慮ください。",
		},
	}
}
