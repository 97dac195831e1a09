package ai

// Prompt templates for the two LLM stages. Both expect the resume text to
// be substituted via fmt.Sprintf.

const suggestionPrompt = `Based on the following resume text, analyze it for ATS optimization.
Identify weaknesses in terms of keywords, action verbs, formatting clarity, and overall structure.
Provide a concise list of suggestions for improvement.

Respond with ONLY a single JSON object of the form {"suggestions": ["...", "..."]}.
Do NOT include any explanatory text, backticks, or code fences.

Resume Text:
---
%s
---
`

const rewritePrompt = `Rewrite and enhance the following resume text to be highly optimized for Applicant Tracking Systems (ATS).
Incorporate the following suggestions.
- Use strong action verbs.
- Integrate relevant keywords for common job roles (like software engineering, marketing, etc.).
- Ensure a clean, parsable structure with clear headings (e.g., "Experience", "Education", "Skills").
- Quantify achievements with metrics where possible.
- Do not invent information, only rephrase and restructure existing content. The output should only be the enhanced resume text.

Original Resume:
---
%s
---

Suggestions for Improvement:
---
%s
---

Enhanced Resume Text:
`
