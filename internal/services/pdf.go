package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// TextExtractor converts a stored resume document into markdown-like text.
type TextExtractor interface {
	ExtractMarkdown(filePath string) (string, error)
}

type pdfExtractor struct{}

func NewPDFExtractor() TextExtractor {
	return &pdfExtractor{}
}

var (
	whitespaceRun = regexp.MustCompile(`[ \t\r\f\v]+`)

	// Allow-list: word characters, whitespace, CJK, and common
	// half/full-width punctuation. Everything else is stripped.
	disallowedChars = regexp.MustCompile(`[^\w\s\p{Han}.,;:!?()（）【】《》“”‘’、，。；：！？]`)
)

// Resume section headings recognized by the title heuristic.
var titleKeywords = []string{
	"个人信息", "基本信息", "个人简介", "联系方式",
	"教育背景", "教育经历", "学历", "教育",
	"工作经历", "工作经验", "职业经历", "工作",
	"项目经历", "项目经验", "项目",
	"技能", "专业技能", "技术技能", "能力",
	"获奖情况", "荣誉", "奖项",
	"自我评价", "个人评价", "自我描述",
}

var terminalPunctuation = []string{"。", "，", "；", "："}

// ExtractMarkdown walks the document page by page, normalizes each page's
// text, marks detected section headings, and joins pages under numbered
// section markers. Any page that cannot be read fails the whole document;
// there is no partial-page fallback.
func (p *pdfExtractor) ExtractMarkdown(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pages []string
	totalPages := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}

		markdown := textToMarkdown(cleanText(text))
		if strings.TrimSpace(markdown) == "" {
			continue
		}

		pages = append(pages, fmt.Sprintf("## 第 %d 页\n\n%s\n", pageIndex, markdown))
	}

	result := strings.Join(pages, "\n")
	if strings.TrimSpace(result) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return result, nil
}

// cleanText collapses whitespace runs within lines, strips characters
// outside the allow-list, and drops empty lines so paragraph boundaries
// survive normalization.
func cleanText(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = disallowedChars.ReplaceAllString(text, "")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

// textToMarkdown renders detected headings as markdown section lines and
// passes everything else through unchanged.
func textToMarkdown(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isTitleLine(line) {
			out = append(out, "### "+line)
		} else {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// isTitleLine treats a line as a heading when it contains a known section
// keyword, or when it is short and does not end in terminal punctuation.
func isTitleLine(line string) bool {
	for _, keyword := range titleKeywords {
		if strings.Contains(line, keyword) {
			return true
		}
	}

	if utf8.RuneCountInString(line) < 20 {
		for _, p := range terminalPunctuation {
			if strings.HasSuffix(line, p) {
				return false
			}
		}
		return true
	}

	return false
}
