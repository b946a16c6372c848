package summarizer

import (
	"encoding/json"
	"fmt"
)

// maxPromptChars caps how much transcript text is sent to an LLM backend.
// Long transcripts are truncated from the middle so both the opening and
// the closing of the meeting survive.
const maxPromptChars = 24000

const systemPrompt = `You are a meeting analysis assistant. You read a raw meeting transcript and produce a structured JSON analysis. Respond with JSON only, no markdown fences and no commentary.`

const promptTemplate = `Analyze the following meeting transcript and return a JSON object with exactly these fields:
- "summary": a 2-4 sentence executive summary
- "key_topics": up to 10 topic strings
- "participants": names of people who spoke or were mentioned as attending
- "action_items": array of {"task", "assignee", "priority", "due_date"} with priority one of low/medium/high
- "decisions": array of {"decision", "made_by", "rationale", "impact", "status"} with impact low/medium/high and status approved/rejected/deferred
- "risks": array of {"risk", "category", "impact", "likelihood", "mitigation", "owner"} with category technical/security/business
- "user_stories": array of {"story", "acceptance_criteria", "priority", "epic"} where story uses the "As a ..., I want ..., so that ..." form
- "sentiment": one of positive/neutral/negative
- "next_steps": up to 5 short strings

Transcript:
%s`

// buildPrompt renders the analysis prompt for the given transcript text
func buildPrompt(text string) string {
	if len(text) > maxPromptChars {
		half := maxPromptChars / 2
		text = text[:half] + "\n...[transcript truncated]...\n" + text[len(text)-half:]
	}
	return fmt.Sprintf(promptTemplate, text)
}

// ollamaFormat is the structured-output schema passed to Ollama so the model
// is constrained to valid JSON.
var ollamaFormat = json.RawMessage(`{
  "type": "object",
  "properties": {
    "summary": {"type": "string"},
    "key_topics": {"type": "array", "items": {"type": "string"}},
    "participants": {"type": "array", "items": {"type": "string"}},
    "action_items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "task": {"type": "string"},
          "assignee": {"type": "string"},
          "priority": {"type": "string"},
          "due_date": {"type": "string"}
        },
        "required": ["task"]
      }
    },
    "decisions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "decision": {"type": "string"},
          "made_by": {"type": "string"},
          "rationale": {"type": "string"},
          "impact": {"type": "string"},
          "status": {"type": "string"}
        },
        "required": ["decision"]
      }
    },
    "risks": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "risk": {"type": "string"},
          "category": {"type": "string"},
          "impact": {"type": "string"},
          "likelihood": {"type": "string"},
          "mitigation": {"type": "string"},
          "owner": {"type": "string"}
        },
        "required": ["risk"]
      }
    },
    "user_stories": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "story": {"type": "string"},
          "acceptance_criteria": {"type": "array", "items": {"type": "string"}},
          "priority": {"type": "string"},
          "epic": {"type": "string"}
        },
        "required": ["story"]
      }
    },
    "sentiment": {"type": "string"},
    "next_steps": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["summary"]
}`)
