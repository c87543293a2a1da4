package constant

// GenerationSystemPrompt pins the model to strict-JSON output so the
// incremental decoder can track partial objects frame by frame.
const GenerationSystemPrompt = `You are an interview preparation content generator.
You always answer with a single JSON document and nothing else: no prose, no markdown fences, no comments.
Every generated item must carry a short stable "id" slug derived from its content (lowercase, hyphenated, max 6 words).
When the user asks for more items on a topic you have seen before, invent new items; never repeat an id.`

// Per-module prompt templates. Placeholders: role, company, job description,
// item count, free-form instructions.
const (
	BriefPromptTemplate = `Create an interview preparation brief for a candidate.
Target role: %s
Company: %s
Job description:
%s

Extra instructions: %s

Respond with JSON of shape:
{"sections":[{"id":"...","title":"...","body":"..."}]}
Cover: role expectations, core technical topics, likely interview structure, and preparation tips.`

	McqPromptTemplate = `Create %d multiple-choice questions to drill a candidate.
Target role: %s
Company: %s
Job description:
%s

Extra instructions: %s

Respond with JSON of shape:
{"items":[{"id":"...","question":"...","options":["...","...","...","..."],"answer_index":0,"explanation":"..."}]}
Exactly 4 options per question, one correct answer.`

	QuestionPromptTemplate = `Create %d open interview questions an interviewer would realistically ask.
Target role: %s
Company: %s
Job description:
%s

Extra instructions: %s

Respond with JSON of shape:
{"items":[{"id":"...","prompt":"...","guidance":"...","category":"technical|behavioral|system-design"}]}
Guidance describes what a strong answer covers.`

	FlashcardPromptTemplate = `Create %d flashcards for rapid-fire review.
Target role: %s
Company: %s
Job description:
%s

Extra instructions: %s

Respond with JSON of shape:
{"items":[{"id":"...","front":"...","back":"..."}]}
Front is a term or question, back is a concise answer.`
)
