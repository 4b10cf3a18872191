package judge

import (
	"fmt"
	"strings"

	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

// notesTruncateLimit caps how much uploaded-note text is sent for analysis.
const notesTruncateLimit = 4000

const brainDumpSystemPrompt = `You are a supportive middle-school biology tutor aligned to the Georgia Standards of Excellence. A student just did a "brain dump" — they typed everything they remember about a topic. Analyze their writing at a 6th-8th grade reading level, keep the tone encouraging and low-stakes, and set is_correct to null because nothing was asked yet.`

func buildBrainDumpUserMessage(t topic.Topic, studentText string) string {
	var b strings.Builder

	writeTopicHeader(&b, t)
	writeConceptList(&b, "Expected concepts for this topic:", t.ExpectedConcepts)
	writeConceptList(&b, "Common misconceptions to watch for:", t.CommonMisconceptions)

	b.WriteString(fmt.Sprintf("\nStudent's brain dump:\n\n%s\n", studentText))

	b.WriteString(`
Instructions:
1. Identify which expected concepts the student demonstrated understanding of.
2. Identify which expected concepts are MISSING from their response.
3. Identify any MISCONCEPTIONS (things the student stated incorrectly), each with a short age-appropriate correction (2-3 sentences max).
4. Generate ONE targeted follow-up question that probes the most critical gap.
5. Leave corrected_misconceptions empty — there is no prior turn to correct.`)

	return b.String()
}

const followUpSystemPrompt = `You are a supportive middle-school biology tutor aligned to the Georgia Standards of Excellence. The student just answered a follow-up question in an ongoing recall session. Evaluate only their latest answer, keep the tone encouraging, and use a 6th-8th grade reading level.`

// Exchange is one prompt/response pair from earlier in the session, rendered
// into the follow-up analysis context.
type Exchange struct {
	Prompt   string
	Response string
}

func buildFollowUpUserMessage(t topic.Topic, history []Exchange, studentResponse string, openMisconceptions []string) string {
	var b strings.Builder

	writeTopicHeader(&b, t)
	writeConceptList(&b, "Expected concepts for this topic:", t.ExpectedConcepts)

	b.WriteString("\nConversation so far:\n")
	for _, x := range history {
		b.WriteString(fmt.Sprintf("Tutor: %s\n", x.Prompt))
		b.WriteString(fmt.Sprintf("Student: %s\n", x.Response))
	}

	writeConceptList(&b, "\nMisconceptions still standing from earlier turns:", openMisconceptions)

	b.WriteString(fmt.Sprintf("\nStudent's latest response:\n\n%s\n", studentResponse))

	b.WriteString(`
Instructions:
1. Decide whether the latest answer is correct or mostly correct (is_correct: true/false).
2. If incorrect, include a SHORT, encouraging correction in the feedback (2-3 sentences).
3. List the expected concepts this answer demonstrated and which remain missing.
4. List any NEW misconceptions, each with a short correction.
5. In corrected_misconceptions, list only the standing misconceptions above that this answer explicitly fixed. When in doubt, leave one standing.
6. If gaps remain, generate ONE new follow-up question; otherwise set follow_up_question to an empty string and say so encouragingly.`)

	return b.String()
}

const notesSystemPrompt = `You are a middle-school biology curriculum specialist aligned to the Georgia Standards of Excellence. A student uploaded their class notes. Judge only what the notes say, not what the student might know.`

func buildNotesUserMessage(t topic.Topic, notesText string) string {
	if len(notesText) > notesTruncateLimit {
		notesText = notesText[:notesTruncateLimit]
	}

	var b strings.Builder

	writeTopicHeader(&b, t)
	writeConceptList(&b, "Expected concepts for this topic:", t.ExpectedConcepts)

	b.WriteString(fmt.Sprintf("\nStudent's notes:\n\n%s\n", notesText))

	b.WriteString(`
Instructions:
1. Identify which expected concepts are COVERED in the notes.
2. Identify which expected concepts are MISSING from the notes.
3. Identify any statements in the notes that reflect MISCONCEPTIONS, each with a short age-appropriate correction.`)

	return b.String()
}

const quizSystemPrompt = `You are a supportive middle-school biology tutor creating a low-stakes quiz from a student's own notes. Questions must be short-answer, age-appropriate for grades 6-8, and encouraging in tone.`

func buildQuizUserMessage(t topic.Topic, analysis NotesAnalysis, numQuestions int) string {
	var b strings.Builder

	writeTopicHeader(&b, t)
	writeConceptList(&b, "Concepts covered in the notes:", analysis.Covered)
	writeConceptList(&b, "Concepts missing from the notes:", analysis.Missing)

	b.WriteString("\nMisconceptions found in the notes:\n")
	if len(analysis.Misconceptions) == 0 {
		b.WriteString("None\n")
	} else {
		for _, m := range analysis.Misconceptions {
			b.WriteString(fmt.Sprintf("- %s\n", m.Claim))
		}
	}

	b.WriteString(fmt.Sprintf(`
Instructions:
Generate exactly %d short-answer questions that:
1. Focus on MISSING concepts and MISCONCEPTIONS first (prioritize gaps).
2. Require conceptual understanding, not just vocabulary recall.
3. Include a small hint the student can use if they are stuck.`, numQuestions))

	return b.String()
}

const evaluationSystemPrompt = `You are a supportive middle-school biology tutor grading one short-answer quiz response. Partial credit is fine: mostly-correct answers count as correct. Keep feedback encouraging and brief.`

func buildEvaluationUserMessage(t topic.Topic, q QuizQuestion, studentAnswer string) string {
	var b strings.Builder

	writeTopicHeader(&b, t)
	b.WriteString(fmt.Sprintf("Question: %s\n", q.Question))
	b.WriteString(fmt.Sprintf("Target concept: %s\n", q.TargetConcept))
	b.WriteString(fmt.Sprintf("\nStudent's answer:\n\n%s\n", studentAnswer))

	b.WriteString(`
Instructions:
1. Decide whether the answer is correct or mostly correct.
2. If incorrect or incomplete, explain WHY in 2-3 encouraging sentences.
3. Provide the complete correct answer for reference.
4. Set concept_demonstrated to true only if the answer shows real understanding of the target concept.`)

	return b.String()
}

const summarySystemPrompt = `You are a supportive middle-school biology tutor writing an end-of-session summary. Use age-appropriate, non-evaluative language.`

func buildSummaryUserMessage(t topic.Topic, in SummaryInput) string {
	var b strings.Builder

	writeTopicHeader(&b, t)
	b.WriteString(fmt.Sprintf("Session mode: %s\n", in.Mode))
	b.WriteString(fmt.Sprintf("Turns completed: %d\n", in.TurnCount))
	b.WriteString(fmt.Sprintf("End reason: %s\n", endReason(in.Status)))

	writeConceptList(&b, "\nConcepts the student demonstrated:", in.Demonstrated)
	writeConceptList(&b, "Concepts still missing:", in.Missing)
	writeConceptList(&b, "Misconceptions identified:", in.Misconceptions)

	b.WriteString(`
Instructions:
Write a brief, encouraging summary (4-6 sentences) that:
1. Celebrates what the student knows well.
2. Gently names 1-2 areas to review.
3. Includes one reflection prompt (e.g., "What surprised you about...?").`)

	return b.String()
}

func endReason(status string) string {
	switch status {
	case "mastery":
		return "Student reached mastery"
	case "max_turns":
		return "Maximum turns reached"
	case "opted_out":
		return "Student chose to stop"
	case "quiz_exhausted":
		return "Student finished all quiz questions"
	case "active":
		return "Session still active"
	default:
		return status
	}
}

func writeTopicHeader(b *strings.Builder, t topic.Topic) {
	b.WriteString(fmt.Sprintf("Topic: %s (standard %s)\n", t.Name, t.Standard))
}

func writeConceptList(b *strings.Builder, header string, items []string) {
	b.WriteString(header + "\n")
	if len(items) == 0 {
		b.WriteString("None\n")
		return
	}
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- %s\n", item))
	}
}
