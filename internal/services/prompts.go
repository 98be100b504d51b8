package services

import (
	"fmt"
	"strings"
)

const extractionSystemPrompt = "你是一个专业的简历信息提取助手，能够准确从简历中提取关键信息。"

const scoringSystemPrompt = "你是一个专业的校园招聘简历评分助手，严格按照给定的评分规则打分，不编造信息。"

// BuildExtractionPrompt embeds the resume text and the fixed JSON schema of
// the extracted-info record, plus the school-city inference rules.
func BuildExtractionPrompt(content string) string {
	return fmt.Sprintf(`请从以下简历内容中提取关键信息，并以JSON格式返回。请确保提取的信息准确且完整。

简历内容：
%s

请提取以下信息并以JSON格式返回：
{
    "name": "姓名",
    "school_name": "学校名称",
    "school_city": "学校所在城市",
    "education_level": "学历层次（本科/硕士/博士等）",
    "major": "专业",
    "graduation_year": "毕业年份",
    "phone": "手机号",
    "email": "邮箱",
    "work_experience": [
        {
            "company": "公司名称",
            "position": "职位",
            "duration": "工作时长",
            "description": "工作描述"
        }
    ],
    "skills": ["技能1", "技能2", "技能3"],
    "projects": [
        {
            "name": "项目名称",
            "description": "项目描述",
            "technologies": ["技术栈"]
        }
    ],
    "summary": "个人简介或自我评价"
}

注意：
1. 如果某些信息在简历中没有找到，请设置为null
2. 确保JSON格式正确
3. 提取的信息要准确，不要编造
4. 学校名称要完整，不要缩写
5. 城市名称要准确：如果学校是知名院校，请给出该校所在城市；如果学校名称中包含可识别的城市名，使用该城市；否则设置为null

请只返回JSON格式的结果，不要包含其他内容。`, content)
}

// BuildScoringPrompt embeds the six-dimension rubric with its point caps,
// the institution tier lists, the major keyword buckets, the previously
// extracted candidate info, and the full resume text.
func BuildScoringPrompt(content, extractedInfoJSON string, rules *RuleData) string {
	computer := rules.MajorRules["computer_related"]
	stem := rules.MajorRules["related_stem"]

	return fmt.Sprintf(`请根据以下评分规则对候选人简历进行评分，并以JSON格式返回结果。

评分规则（共六个维度，总分为各维度得分之和）：
1. 地域（region，最高5分）：根据学校所在城市和候选人意向地域打分。
2. 学校档次（school_tier，最高10分）：一类院校得高分，二类院校次之，其他院校酌情给分。
   一类院校名单：%s
   二类院校名单：%s
3. 专业匹配（major_match，最高8分）：计算机相关专业得高分，理工科相关专业次之。
   计算机相关核心专业：%s
   计算机相关扩展专业：%s
   理工科相关核心专业：%s
   理工科相关扩展专业：%s
4. 个人亮点（highlight，最高10分）：竞赛获奖、开源贡献、实习大厂等。只取单项最高分，不累加。
5. 工作经验（experience，最高10分）：根据实习/工作经历的数量、时长和相关性打分。
6. 简历质量（quality，最高3分）：结构清晰、表述准确、信息完整等，可多项累计，最高3分封顶。

已提取的候选人信息：
%s

简历原文：
%s

请以如下JSON格式返回评分结果，total_score必须等于六个维度得分之和：
{
    "total_score": <总分>,
    "score_details": {
        "region": {"score": <0-5>, "reason": "评分理由"},
        "school_tier": {"score": <0-10>, "reason": "评分理由"},
        "major_match": {"score": <0-8>, "reason": "评分理由"},
        "highlight": {"score": <0-10>, "reason": "评分理由"},
        "experience": {"score": <0-10>, "reason": "评分理由"},
        "quality": {"score": <0-3>, "reason": "评分理由"}
    }
}

请只返回JSON格式的结果，不要包含其他内容。`,
		strings.Join(rules.TierOneSchools, "、"),
		strings.Join(rules.TierTwoSchools, "、"),
		strings.Join(computer.Core, "、"),
		strings.Join(computer.Extended, "、"),
		strings.Join(stem.Core, "、"),
		strings.Join(stem.Extended, "、"),
		extractedInfoJSON,
		content)
}

// stripCodeFence removes a wrapping markdown code block from a model
// response, which models often add around JSON output.
func stripCodeFence(response string) string {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```json") {
		response = response[len("```json"):]
	} else if strings.HasPrefix(response, "```") {
		response = response[len("```"):]
	}
	response = strings.TrimSuffix(strings.TrimSpace(response), "```")
	return strings.TrimSpace(response)
}
