package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/ZingYao/chinese_number"
	"github.com/liuzl/gocc"
)

// OpenCC 转换器缓存，key 为配置名（如 t2s）。加载字典较慢，进程内只建一次。
var (
	openccCache = make(map[string]*gocc.OpenCC)
	openccMutex sync.RWMutex
)

// getOrCreateOpenCC 获取或创建 OpenCC 实例
func getOrCreateOpenCC(conversion string) (*gocc.OpenCC, error) {
	openccMutex.RLock()
	if cc, ok := openccCache[conversion]; ok {
		openccMutex.RUnlock()
		return cc, nil
	}
	openccMutex.RUnlock()

	openccMutex.Lock()
	defer openccMutex.Unlock()

	// 双重检查，防止并发创建
	if cc, ok := openccCache[conversion]; ok {
		return cc, nil
	}
	cc, err := gocc.New(conversion)
	if err != nil {
		return nil, fmt.Errorf("load opencc %s: %w", conversion, err)
	}
	openccCache[conversion] = cc
	slog.Debug("opencc loaded", slog.String("conversion", conversion))
	return cc, nil
}

// PrepareOptions 分词前的文本预处理选项
type PrepareOptions struct {
	Traditional bool // 繁体转简体
	Numbers     bool // 阿拉伯数字转中文数字
}

// TextConverter 繁简转换的最小接口，便于替换
type TextConverter interface {
	Convert(string) (string, error)
}

// Preparer 把混合文本整理成适合吴语分词的简体中文
type Preparer struct {
	opts PrepareOptions
	t2s  TextConverter
}

// NewPreparer 创建预处理器；需要繁简转换时加载 OpenCC t2s。
func NewPreparer(opts PrepareOptions) (*Preparer, error) {
	p := &Preparer{opts: opts}
	if opts.Traditional {
		cc, err := getOrCreateOpenCC("t2s")
		if err != nil {
			return nil, err
		}
		p.t2s = cc
	}
	return p, nil
}

// Prepare 按片段类型处理：汉字片段做繁简转换，数字片段换成中文数字，其余原样保留。
func (p *Preparer) Prepare(text string) (string, error) {
	if !p.opts.Traditional && !p.opts.Numbers {
		return text, nil
	}

	var b strings.Builder
	for _, seg := range SplitText(text) {
		switch {
		case seg.Type == TypeChinese && p.t2s != nil:
			s, err := p.t2s.Convert(seg.Content)
			if err != nil {
				return "", fmt.Errorf("t2s %q: %w", seg.Content, err)
			}
			b.WriteString(s)
		case seg.Type == TypeNumber && p.opts.Numbers:
			b.WriteString(numberToChinese(seg.Content))
		default:
			b.WriteString(seg.Content)
		}
	}
	return b.String(), nil
}

// numberToChinese 数字简单转换为中文读法；超出 int64 的保持原样
func numberToChinese(digits string) string {
	num, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return digits
	}
	return chinese_number.Number2Simplified(num)
}
