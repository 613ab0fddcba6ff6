// 吴语拼音 HTTP 服务，与 CLI 共用词典和转换器

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"wupin-golang/converter"
	"wupin-golang/ipa"
	"wupin-golang/lexicon"
)

// 查询接口最多返回的近似词条数
const lookupSuggestionLimit = 5

// ConvertRequest /api/convert 请求
type ConvertRequest struct {
	Text        string `json:"text" binding:"required"`
	IPA         bool   `json:"ipa,omitempty"`
	Tone        string `json:"tone,omitempty"`
	Traditional bool   `json:"traditional,omitempty"`
	Numbers     bool   `json:"numbers,omitempty"`
	Mandarin    bool   `json:"mandarin,omitempty"`
}

// IPARequest /api/ipa 请求
type IPARequest struct {
	Key  string `json:"key" binding:"required"`
	Tone string `json:"tone,omitempty"`
}

// MandarinRequest /api/mandarin 请求，字段名与训练端保持一致
type MandarinRequest struct {
	Zhtext string `json:"zhtext" binding:"required"`
}

// convertResult 缓存的转换结果
type convertResult struct {
	Text     string          `json:"text"`
	Pinyin   string          `json:"pinyin"`
	Segments []segmentRecord `json:"segments"`
}

// WupinService HTTP 服务状态
type WupinService struct {
	lex     *lexicon.Lexicon
	conv    *converter.Converter
	tone    ipa.ToneMode
	results *cache.Cache
	started time.Time
}

// NewWupinService 创建服务；tone 是请求未指定声调模式时的默认值
func NewWupinService(lex *lexicon.Lexicon, conv *converter.Converter, tone ipa.ToneMode, cfg ServerConfig) *WupinService {
	return &WupinService{
		lex:     lex,
		conv:    conv,
		tone:    tone,
		results: cache.New(cfg.CacheTTL, cfg.CacheCleanup),
		started: time.Now(),
	}
}

// toneOrDefault 解析请求里的声调模式，空串用服务默认值
func (s *WupinService) toneOrDefault(raw string) (ipa.ToneMode, error) {
	if raw == "" {
		return s.tone, nil
	}
	return ipa.ParseToneMode(raw)
}

func badRequest(c *gin.Context, msg string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": msg + ": " + err.Error(),
	})
}

// convertHandler 文本转吴语拼音
func (s *WupinService) convertHandler(c *gin.Context) {
	startTime := time.Now()

	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求参数错误", err)
		return
	}
	tone, err := s.toneOrDefault(req.Tone)
	if err != nil {
		badRequest(c, "声调模式错误", err)
		return
	}

	key := fmt.Sprintf("%t|%s|%t|%t|%t|%s", req.IPA, tone, req.Traditional, req.Numbers, req.Mandarin, req.Text)
	if cached, ok := s.results.Get(key); ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "cached": true, "data": cached})
		return
	}

	prep, err := NewPreparer(PrepareOptions{Traditional: req.Traditional, Numbers: req.Numbers})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	text, err := prep.Prepare(req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	detail := s.conv.ConvertWithDetail(text)
	result := convertResult{
		Text:   detail.Text,
		Pinyin: detail.Pinyin,
		Segments: buildRecords(detail.Segments, FormatOptions{
			IPA:      req.IPA,
			Tone:     tone,
			Mandarin: req.Mandarin,
		}),
	}
	s.results.SetDefault(key, result)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
	slog.Debug("convert",
		slog.Int("text_len", len(req.Text)),
		slog.Int("segments", len(result.Segments)),
		slog.Duration("elapsed", time.Since(startTime)))
}

// ipaHandler 拼音 key 转 IPA
func (s *WupinService) ipaHandler(c *gin.Context) {
	var req IPARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求参数错误", err)
		return
	}
	tone, err := s.toneOrDefault(req.Tone)
	if err != nil {
		badRequest(c, "声调模式错误", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"key":  req.Key,
			"tone": tone.String(),
			"ipa":  ipa.KeyToIPA(req.Key, tone),
		},
	})
}

// mandarinHandler 普通话对照拼音
func (s *WupinService) mandarinHandler(c *gin.Context) {
	var req MandarinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求参数错误", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"timestamp": time.Now().Unix(),
		"data": gin.H{
			"zhtext":  req.Zhtext,
			"pinyins": MandarinReading(req.Zhtext),
		},
	})
}

// lookupHandler 查词：词条读音、单字读音，查不到时给出近似词条
func (s *WupinService) lookupHandler(c *gin.Context) {
	word := c.Query("word")
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "缺少参数 word"})
		return
	}

	data := gin.H{"word": word}
	pinyin, found := s.lex.WordReading(word)
	if found {
		data["pinyin"] = pinyin
	}
	if readings := s.lex.CharReadings(word); readings != nil {
		found = true
		data["readings"] = readings
	}
	data["found"] = found
	if !found {
		data["suggestions"] = s.lex.Suggest(word, lookupSuggestionLimit)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// healthHandler 健康检查
func (s *WupinService) healthHandler(c *gin.Context) {
	st := s.conv.Stats()
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "吴语拼音服务运行正常",
		"timestamp":    time.Now().Unix(),
		"uptime":       time.Since(s.started).Round(time.Second).String(),
		"word_count":   st.Words,
		"char_count":   st.Chars,
		"max_word_len": s.conv.MaxWordLen(),
		"cache_size":   s.results.ItemCount(),
	})
}

// Router 创建路由
func (s *WupinService) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
	})

	api := r.Group("/api")
	api.POST("/convert", s.convertHandler)
	api.POST("/ipa", s.ipaHandler)
	api.GET("/lookup", s.lookupHandler)
	api.POST("/mandarin", s.mandarinHandler)
	r.GET("/health", s.healthHandler)
	return r
}

// StartWupinHTTPService 启动 HTTP 服务，阻塞直到监听失败
func StartWupinHTTPService(svc *WupinService, port int) error {
	gin.SetMode(gin.ReleaseMode)
	addr := ":" + strconv.Itoa(port)
	slog.Info("wupin http service listening", slog.String("addr", addr))
	if err := svc.Router().Run(addr); err != nil {
		return fmt.Errorf("start http service: %w", err)
	}
	return nil
}
