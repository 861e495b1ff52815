// Package prompt builds the system and user instructions for the generation
// collaborator. Construction is pure string assembly; callers own all I/O.
package prompt

import (
	"fmt"
	"strings"

	"github.com/blairify/interview-engine/internal/answer"
	"github.com/blairify/interview-engine/internal/domain"
)

// Pair is one complete generation request.
type Pair struct {
	System string
	User   string
}

var difficultyNotes = map[string]string{
	domain.SeniorityEntry:  "entry-level (basic concepts, fundamental understanding)",
	domain.SeniorityJunior: "junior (practical experience, core knowledge)",
	domain.SeniorityMid:    "mid-level (architectural decisions, complex scenarios)",
	domain.SenioritySenior: "senior (leadership, optimization, advanced patterns)",
}

var styleDescriptions = map[string]string{
	domain.InterviewTechnical:    "technical skills and implementation",
	domain.InterviewSystemDesign: "system architecture and design principles",
	domain.InterviewCoding:       "programming and coding challenges",
	domain.InterviewRapidFire:    "behavioral and soft skills",
}

// Build assembles both instructions for one turn. questionPrompt, when
// non-empty, is a bank question the next turn must ask verbatim.
func Build(cfg domain.InterviewConfig, history []domain.ConversationTurn, message string, questionCount int, isFollowUp bool, questionPrompt string) Pair {
	return Pair{
		System: System(cfg),
		User:   User(cfg, history, message, questionCount, isFollowUp, questionPrompt),
	}
}

// System produces the full interviewer instruction: persona, per-tier
// assessment criteria, style notes, an optional company addendum, and closing
// guidelines. Demo sessions use a separate non-evaluative persona.
func System(cfg domain.InterviewConfig) string {
	if cfg.DemoMode {
		return demoSystem
	}

	sections := []string{
		basePrompt(cfg),
		styleSection(cfg),
		companySection(cfg.Company),
		guidelines(cfg.Seniority),
	}

	nonEmpty := sections[:0]
	for _, s := range sections {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

// User produces the turn-specific instruction. Path selection, in order:
// demo, first turn, follow-up, unknown-answer pivot, next question.
func User(cfg domain.InterviewConfig, history []domain.ConversationTurn, message string, questionCount int, isFollowUp bool, questionPrompt string) string {
	if cfg.DemoMode {
		return demoUser(message, history, questionCount)
	}
	if len(history) == 0 {
		return firstQuestion(cfg)
	}
	if isFollowUp {
		return followUp(message)
	}
	if answer.IsUnknown(message) {
		return unknownPivot(cfg, message, questionCount)
	}
	return nextQuestion(cfg, history, message, questionCount, questionPrompt)
}

const demoSystem = `You are Alex, a friendly AI demo guide showing users how the interview system works. Your role is to:

1. Keep things casual and relaxed - this is just a demo!
2. Ask only 2-3 simple, non-intimidating questions
3. Be encouraging and supportive throughout
4. Explain what you're doing as you go ("Now I'll ask you about...")
5. Make it feel like exploring the system rather than being evaluated
6. Use a conversational, friendly tone
7. Remind users this is just practice and not being scored

Keep questions broad and approachable - focus on letting them experience the interface rather than testing their knowledge. Think of yourself as a helpful guide rather than an interviewer.`

func basePrompt(cfg domain.InterviewConfig) string {
	return fmt.Sprintf(`You are Sarah, an expert technical interviewer with 10+ years of experience conducting interviews at top tech companies. You're conducting a %[1]s interview for a %[2]s-level %[3]s position.

## CORE PRINCIPLES:
1. **Progressive Questioning**: Start with fundamentals, build complexity based on responses
2. **Contextual Assessment**: Adapt difficulty and depth to candidate's demonstrated knowledge level
3. **Real-world Focus**: Prioritize practical scenarios over theoretical knowledge
4. **Clear Communication**: Use precise technical language while remaining accessible
5. **Constructive Approach**: Guide candidates toward better answers when they struggle

## INTERVIEW BEHAVIOR:
- **Question Quality**: Each question should assess specific competencies relevant to %[2]s-level %[3]s
- **Response Length**: Keep questions concise (1-3 sentences), detailed enough to be clear
- **Professional Tone**: Maintain friendly professionalism, encourage elaboration when appropriate
- **NO REPETITION**: Never ask similar questions or revisit the same topics/concepts

## EXAMPLE INTERACTIONS:
**Good Question**: "Can you walk me through how you'd optimize a React component that's causing performance issues in a large application?"
**Good Follow-up**: "That's a solid approach with React.memo. What would you do if the performance issue persisted even after memoization?"

## ASSESSMENT CRITERIA FOR %[4]s LEVEL:
%[5]s`,
		cfg.InterviewStyle, cfg.Seniority, cfg.Position,
		strings.ToUpper(cfg.Seniority), seniorityExpectations[cfg.Seniority])
}

func styleSection(cfg domain.InterviewConfig) string {
	tmpl, ok := styleNotes[cfg.InterviewStyle]
	if !ok {
		return ""
	}
	return fmt.Sprintf(tmpl, cfg.Seniority)
}

func companySection(company string) string {
	if company == "" {
		return ""
	}
	note, ok := companyNotes[strings.ToLower(company)]
	if !ok {
		return ""
	}
	return fmt.Sprintf("Company Context for %s: %s", company, note)
}

func guidelines(seniority string) string {
	return fmt.Sprintf(`Important Guidelines:
- Keep responses conversational and brief (2-3 sentences max)
- Provide context for your questions
- If answering a follow-up, reference the candidate's previous response
- End with ONE clear, specific question
- Adjust difficulty for %s level:
  * Junior: Focus on fundamentals and basic concepts
  * Mid: Include some intermediate concepts and practical scenarios
  * Senior: Advanced topics and complex scenarios
- Avoid overly complex or theoretical questions for junior/mid levels`, seniority)
}

func demoUser(message string, history []domain.ConversationTurn, questionCount int) string {
	if len(history) == 0 {
		return `This is the start of a demo session. Ask a simple, friendly introductory question that helps the user get comfortable with the system. Something like asking about their interests in tech or what they'd like to learn. Keep it very casual and non-intimidating.`
	}
	if questionCount < 2 {
		return fmt.Sprintf(`The user just responded: %q

Ask a casual follow-up question that keeps the conversation flowing. This is still demo mode, so keep it light and conversational. Maybe ask about their experience level or what type of role they're interested in.`, message)
	}
	return fmt.Sprintf(`The user just responded: %q

This should be the final demo question. Ask something fun and encouraging that wraps up the demo nicely, like asking about their career goals or what they found interesting about the demo. Then let them know the demo is wrapping up.`, message)
}

func firstQuestion(cfg domain.InterviewConfig) string {
	return fmt.Sprintf(`This is the start of a %s interview. Please introduce yourself as Sarah, the interviewer, and ask the first question appropriate for a %s-level %s position.`,
		cfg.InterviewStyle, cfg.Seniority, cfg.Position)
}

func followUp(message string) string {
	return fmt.Sprintf(`The candidate just responded: %q

Based on their response, ask a thoughtful follow-up question that digs deeper into their understanding or asks them to elaborate on a specific aspect. Keep it related to the current topic.`, message)
}

func unknownPivot(cfg domain.InterviewConfig, message string, questionCount int) string {
	return fmt.Sprintf(`The candidate responded: %q

The candidate indicated they don't know the answer or skipped the question. Acknowledge this professionally and move to the next question. Ask a different %s question appropriate for a %s-level %s position that covers a different topic area.

Be encouraging and supportive - it's normal not to know everything. Consider asking about a topic they might be more familiar with based on the conversation so far.

This is question %d of the interview.`,
		message, cfg.InterviewStyle, cfg.Seniority, cfg.Position, questionCount+1)
}

func nextQuestion(cfg domain.InterviewConfig, history []domain.ConversationTurn, message string, questionCount int, questionPrompt string) string {
	if questionPrompt != "" {
		return fmt.Sprintf(`The candidate's previous response was: %q

This is question %d of the interview. Acknowledge their response briefly, then ask this prepared question, worded naturally for the conversation:

%s

Recent conversation context:
%s`,
			message, questionCount+1, questionPrompt, recentContext(history))
	}
	return fmt.Sprintf(`The candidate's previous response was: %q

This is question %d of the interview. Please ask the next %s question appropriate for a %s-level %s position.

Recent conversation context:
%s

Ask a new question that builds upon the conversation and covers different aspects of the role.`,
		message, questionCount+1, cfg.InterviewStyle, cfg.Seniority, cfg.Position, recentContext(history))
}

// recentContext renders the trailing four turns, oldest first.
func recentContext(history []domain.ConversationTurn) string {
	start := len(history) - 4
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, 4)
	for _, turn := range history[start:] {
		speaker := "Candidate"
		if turn.Role == domain.RoleInterviewer {
			speaker = "Interviewer"
		}
		lines = append(lines, speaker+": "+turn.Text)
	}
	return strings.Join(lines, "\n")
}

// QuestionBank renders selected question-bank records into a system-prompt
// addendum that pins the interviewer to those questions. With an empty
// selection it instead instructs the model to generate its own questions.
func QuestionBank(cfg domain.InterviewConfig, questions []domain.Question, questionCount int) string {
	if len(questions) == 0 {
		return generationFallback(cfg, questionCount)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `## MANDATORY INTERVIEW QUESTIONS FROM PRACTICE LIBRARY:

**STRICT REQUIREMENT**: You MUST ONLY ask questions from the list below. DO NOT create, generate, or improvise any questions outside of this list.

**Total Questions to Ask**: %d
**Selection Criteria**:
- **Difficulty**: %s-level (%s)
- **Category**: %s interview (%s)
- **Tech Stack**: %s

---
**YOUR QUESTION BANK** (Use ONLY these questions):
`,
		len(questions),
		cfg.Seniority, difficultyNotes[cfg.Seniority],
		cfg.InterviewStyle, styleDescriptions[cfg.InterviewStyle],
		techList(cfg.Technologies))

	for i, q := range questions {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, FormatQuestion(q))
	}

	b.WriteString(`---

**CRITICAL INSTRUCTIONS**:
1. **ONLY USE THE QUESTIONS ABOVE** - Do not create new questions or deviate from this list
2. **Ask questions sequentially** - Start with Question 1, then 2, then 3, etc.
3. **Rephrase naturally** - Make questions conversational while keeping the core content
4. **One question at a time** - Wait for candidate's answer before moving to next question
5. **Provide feedback** - Give constructive feedback after each answer
6. **Ask follow-ups** - Clarify or dig deeper based on candidate's response, but return to the next question from the list`)
	return b.String()
}

func generationFallback(cfg domain.InterviewConfig, questionCount int) string {
	return fmt.Sprintf(`## INTERVIEW QUESTION GENERATION GUIDELINES:

Since no practice library questions are available for this specific configuration, you will need to generate %[1]d appropriate interview questions.

**Interview Configuration**:
- **Position**: %[2]s
- **Seniority Level**: %[3]s (%[4]s)
- **Interview Type**: %[5]s (%[6]s)
- **Tech Stack**: %[7]s
- **Total Questions**: %[1]d

**QUESTION GENERATION REQUIREMENTS**:
1. Questions must match %[3]s-level expectations
2. Focus on %[5]s interview topics
3. Start with easier warm-up questions and progress to more challenging topics
4. Ask one question at a time and wait for the candidate's answer
5. Keep questions relevant to the %[2]s role`,
		questionCount,
		cfg.Position,
		cfg.Seniority, difficultyNotes[cfg.Seniority],
		cfg.InterviewStyle, styleDescriptions[cfg.InterviewStyle],
		techList(cfg.Technologies))
}

// FormatQuestion renders one bank record for prompt inclusion. Reference
// answers are never exposed to the model.
func FormatQuestion(q domain.Question) string {
	tech := strings.Join(q.TechStack, ", ")
	if tech == "" {
		tech = "General"
	}
	return fmt.Sprintf("**%s** (%s)\nTopic: %s\nTech: %s\nQuestion: %s\nTags: %s",
		q.Title, q.Difficulty, q.Topic, tech, q.Prompt, strings.Join(q.Tags, ", "))
}

func techList(technologies []string) string {
	if len(technologies) == 0 {
		return "General"
	}
	return strings.Join(technologies, ", ")
}
