package main

import (
	"strings"
	"sync"

	pinyin_sentence "github.com/Lofanmi/pinyin-golang/pinyin"
)

// 普通话拼音只作为对照读音输出，字典较大，首次使用时加载
var (
	pinyinSentenceDict *pinyin_sentence.Dict
	pinyinSentenceOnce sync.Once
)

func Mandaren_pinyinresourcePreload() {
	pinyinSentenceOnce.Do(func() {
		pinyinSentenceDict = pinyin_sentence.NewDict()
	})
}

// MandarinReading 普通话对照读音（数字标调，空格分隔），文本中没有汉字时返回空串
func MandarinReading(zhText string) string {
	if !containsChinese(zhText) {
		return ""
	}
	Mandaren_pinyinresourcePreload()
	return strings.TrimSpace(pinyinSentenceDict.Convert(zhText, " ").ASCII())
}

func containsChinese(s string) bool {
	for _, r := range s {
		if getCharType(r) == TypeChinese {
			return true
		}
	}
	return false
}
