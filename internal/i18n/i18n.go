// Package i18n translates the gateway's fixed user-facing messages.
//
// Only messages registered in the catalog are translated; backend supplied
// text is returned as is.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	English = "en"
	Chinese = "zh"
)

var (
	supported = []language.Tag{language.English, language.Chinese}
	matcher   = language.NewMatcher(supported)
	cat       = catalog.NewBuilder(catalog.Fallback(language.English))
	known     = map[string]struct{}{}
)

// Countries whose visitors get Chinese when nothing else was negotiated.
var chineseCountries = map[string]struct{}{
	"CN": {}, "TW": {}, "HK": {}, "MO": {}, "SG": {},
}

var zhMessages = map[string]string{
	// generation
	"Failed to upload template image":                                       "上传模板图片失败",
	"Failed to get generated result":                                        "获取生成结果失败",
	"Generation failed":                                                     "生成失败",
	"Generation timed out. Please try again.":                               "生成超时，请重试。",
	"Regeneration failed":                                                   "重新生成失败",
	"Failed to get regenerated result":                                      "获取重新生成结果失败",
	"Regeneration timed out. Please try again.":                             "重新生成超时，请重试。",
	"Backend returned invalid JSON response. Please check backend service.": "后端返回了无效的 JSON 响应，请检查后端服务。",
	"Backend reported completion without an image":                          "后端报告已完成但未返回图片",
	"Request canceled before the result was ready":                          "请求在结果就绪前被取消",

	// validation
	"User ID is required":                               "缺少用户 ID",
	"Template image is required":                        "请选择模板图片",
	"Detail modify is required":                         "缺少修改方式",
	"Detail modify must be one of style, add or remove": "修改方式必须是 style、add 或 remove",
	"Element is required for add and remove":            "添加或删除时必须指定元素",
	"Unsupported generation mode":                       "不支持的生成模式",

	// http
	"Invalid request body":                                "请求体无效",
	"Registration failed":                                 "注册失败",
	"User registered successfully":                        "用户注册成功",
	"Invalid request. Provide at least keywords or tags.": "请求无效，请至少提供关键词或标签。",
	"Method not allowed. Use POST to process keywords.":   "不支持该请求方法，请使用 POST 提交关键词。",
	"Failed to fetch template images":                     "获取模板图片失败",
	"History is not enabled":                              "未启用生成历史",
	"Failed to load history":                              "加载生成历史失败",
	"Limit must be a positive number":                     "limit 必须是正整数",
	"Backend returned a non-JSON response":                "后端返回了非 JSON 响应",
	"Too many requests":                                   "请求过于频繁",
}

func init() {
	for en, zh := range zhMessages {
		known[en] = struct{}{}
		_ = cat.SetString(language.English, en, en)
		_ = cat.SetString(language.Chinese, en, zh)
	}
}

// Localize returns msg translated into locale when msg is a known message.
func Localize(locale, msg string) string {
	if _, ok := known[msg]; !ok {
		return msg
	}
	p := message.NewPrinter(tagFor(locale), message.Catalog(cat))
	return p.Sprintf(msg)
}

// Has reports whether msg is registered in the catalog.
func Has(msg string) bool {
	_, ok := known[msg]
	return ok
}

// Normalize maps any BCP 47 tag onto a supported locale, or "" if none fits.
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	return match(parsed)
}

// MatchAcceptLanguage negotiates a supported locale from an Accept-Language header.
func MatchAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return match(tags...)
}

// ForCountry returns the locale hinted by an ISO country code, or "".
func ForCountry(country string) string {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		return ""
	}
	if _, ok := chineseCountries[country]; ok {
		return Chinese
	}
	return English
}

func match(tags ...language.Tag) string {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	if supported[idx] == language.Chinese {
		return Chinese
	}
	return English
}

func tagFor(locale string) language.Tag {
	if locale == Chinese {
		return language.Chinese
	}
	return language.English
}
