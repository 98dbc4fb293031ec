package lexicon

import "diarylens/domain/analytics"

// defaultWords is the built-in Japanese lexicon. Lists are matched as raw
// substrings, so entries are stems where conjugation would otherwise split a
// match (e.g. 疲れ covers 疲れた and 疲れる).
var defaultWords = map[analytics.Category][]string{
	analytics.CategoryNegative: {
		"辛い", "つらい", "苦しい", "悲しい", "寂しい", "不安", "憂鬱", "落ち込", "疲れ",
		"嫌だ", "怖い", "イライラ", "焦り", "絶望", "死にたい", "消えたい", "泣い", "後悔",
		"しんどい", "虚しい", "最悪", "孤独", "怒り", "無理",
	},
	analytics.CategoryPositive: {
		"嬉しい", "楽しい", "幸せ", "良かった", "よかった", "安心", "感謝", "ありがとう",
		"笑っ", "充実", "満足", "希望", "穏やか", "頑張れた", "好き", "ワクワク", "楽しみ",
		"心地よ", "元気",
	},
	analytics.CategorySelfDenial: {
		"自分が嫌い", "自分なんか", "私なんか", "僕なんか", "ダメな自分", "価値がない",
		"生きている意味", "役に立たない", "迷惑をかけ", "情けない", "自己嫌悪", "どうせ",
	},
	analytics.CategoryFirstPerson: {
		"私", "僕", "俺", "自分", "わたし", "あたし",
	},
	analytics.CategoryOtherPerson: {
		"彼女", "彼氏", "友達", "友人", "母", "父", "上司", "同僚", "家族", "みんな",
		"先生", "あの人", "子ども", "夫", "妻",
	},
	analytics.CategoryTask: {
		"やること", "予定", "締め切り", "締切", "タスク", "片付け", "買い物", "掃除",
		"洗濯", "手続き", "準備",
	},
	analytics.CategorySelfMonitor: {
		"気づい", "振り返", "反省", "考えてみる", "客観的", "自分を見", "整理", "観察",
		"記録",
	},
	analytics.CategoryPhysicalSymptom: {
		"頭痛", "頭が痛", "腹痛", "お腹が痛", "吐き気", "眠れ", "不眠", "めまい", "だるい",
		"疲れ", "熱が", "肩こり", "動悸", "食欲", "胃が痛",
	},
	analytics.CategoryWork: {
		"仕事", "会社", "会議", "残業", "出勤", "職場", "業務", "プロジェクト", "取引先",
		"納期", "転職",
	},
	analytics.CategoryLightNegative: {
		"疲れ", "面倒", "だるい", "イライラ", "微妙", "残念", "モヤモヤ", "憂鬱", "億劫",
	},
	analytics.CategoryDeepNegative: {
		"絶望", "死にたい", "消えたい", "虚しい", "生きている意味", "孤独", "限界",
		"壊れ", "自己嫌悪", "価値がない",
	},
}
