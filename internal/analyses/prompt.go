package analyses

import (
	"encoding/json"
	"fmt"
	"strings"

	"resume-analysis/internal/fields"
)

const maxPromptChars = 3000

const analysisPromptTemplate = `You are a professional resume analyst with expertise in recruitment and career development. Analyze the following resume comprehensively.

Resume Text:
%s

Provide a detailed analysis in the following JSON format:
{
    "score": <number between 0-100>,
    "summary": "<brief 2-3 sentence summary of the candidate's profile>",
    "strengths": ["<specific strength 1>", "<specific strength 2>", "<specific strength 3>"],
    "weaknesses": ["<specific weakness 1>", "<specific weakness 2>", "<specific weakness 3>"],
    "improvement_tips": ["<actionable improvement tip 1>", "<actionable improvement tip 2>", "<actionable improvement tip 3>"]
}

Focus on:
- Content quality and relevance
- Structure and formatting
- Achievement quantification
- Keyword optimization for ATS
- Professional presentation
- Skill-experience alignment

Return ONLY the JSON object.`

func buildAnalysisPrompt(record fields.ResumeRecord) string {
	return fmt.Sprintf(analysisPromptTemplate, clip(record.RawText, maxPromptChars))
}

func buildQuestionsPrompt(record fields.ResumeRecord, weaknesses []string) string {
	weaknessJSON, _ := json.MarshalIndent(weaknesses, "", "  ")
	return fmt.Sprintf(`Based on the following resume weaknesses, generate 5-8 specific, targeted questions to gather information needed to improve the resume.

Weaknesses identified:
%s

Current Resume Data:
- Name: %s
- Skills: %s
- Experience: %d entries
- Education: %d entries

Generate questions that:
1. Are specific to the identified weaknesses
2. Help gather concrete details (numbers, achievements, technologies)
3. Focus on quantifiable results and impact
4. Explore missing information
5. Clarify vague points

Return ONLY a JSON array with this structure:
[
  {
    "question_id": "q1",
    "question": "The specific question to ask",
    "category": "experience/skills/education/achievements/summary",
    "context": "Why this question is important"
  }
]`,
		weaknessJSON,
		orNotProvided(record.Name),
		strings.Join(record.Skills, ", "),
		len(record.Experience),
		len(record.Education),
	)
}

func buildImprovementsPrompt(record fields.ResumeRecord, weaknesses []string, answers []Answer) string {
	weaknessJSON, _ := json.MarshalIndent(weaknesses, "", "  ")

	var answerLines []string
	for _, a := range answers {
		answerLines = append(answerLines, fmt.Sprintf("Q: %s\nA: %s", a.Question, a.Answer))
	}

	return fmt.Sprintf(`You are a professional resume writer. Based on the original resume and the user's answers, generate improved, professional resume content.

Original Resume Text:
%s

Identified Weaknesses:
%s

User's Additional Information:
%s

Generate improved content for each major section. For each improvement:
1. Make it ATS-friendly with relevant keywords
2. Use strong action verbs
3. Quantify achievements where possible
4. Keep it concise and impactful
5. Follow professional resume writing standards

Return ONLY a JSON array with this structure:
[
  {
    "category": "professional_summary/experience/skills/education/achievements",
    "original_content": "Brief excerpt from original",
    "improved_content": "The improved version",
    "explanation": "Why this is better"
  }
]`,
		clip(record.RawText, 1500),
		weaknessJSON,
		strings.Join(answerLines, "\n"),
	)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func orNotProvided(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "Not provided"
	}
	return *s
}
