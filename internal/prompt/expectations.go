package prompt

import "github.com/blairify/interview-engine/internal/domain"

// Per-tier assessment criteria inlined into the system instruction. The prose
// is fixed; shifting it changes interviewer behavior across every session.
var seniorityExpectations = map[string]string{
	domain.SeniorityEntry: `
- **Technical Knowledge**: Foundational understanding of programming concepts and basic syntax
- **Problem Solving**: Can solve simple problems with clear instructions
- **Communication**: Can articulate basic technical concepts and ask clarifying questions
- **Learning**: Demonstrates strong willingness to learn and adapt
- **Examples**: Focus on coursework, personal projects, bootcamp assignments, or internship work`,

	domain.SeniorityJunior: `
- **Technical Knowledge**: Basic understanding of core concepts and technologies
- **Problem Solving**: Can solve straightforward problems with guidance
- **Communication**: Can explain their thinking process clearly
- **Learning**: Shows eagerness to learn and asks thoughtful questions
- **Examples**: Focus on academic projects, tutorials, or simple implementations`,

	domain.SeniorityMid: `
- **Technical Knowledge**: Solid understanding of frameworks, tools, and best practices
- **Problem Solving**: Can independently solve complex problems and consider trade-offs
- **Communication**: Can explain technical decisions and their reasoning
- **Experience**: 2-5 years of practical experience with real-world applications
- **Examples**: Focus on production systems, optimization, and architectural decisions`,

	domain.SenioritySenior: `
- **Technical Leadership**: Deep expertise in technologies and ability to guide technical decisions
- **System Design**: Can design scalable, maintainable systems and consider non-functional requirements
- **Communication**: Can mentor others and communicate complex concepts to various audiences
- **Business Impact**: Understands how technical decisions affect business outcomes
- **Examples**: Focus on system architecture, team leadership, and strategic technical initiatives`,
}

// Behavioral notes per interview style, appended after the base instruction.
var styleNotes = map[string]string{
	domain.InterviewTechnical: `
- Cover fundamental concepts for %[1]s level
- Ask about frameworks and tools they should know
- Include practical scenarios they might face`,

	domain.InterviewRapidFire: `
- Ask 3 essential questions for %[1]s level
- Focus on core competencies and quick assessment
- Keep questions concise and direct`,

	domain.InterviewCoding: `
- Present problems appropriate for %[1]s level
- Focus on clean, working solutions over optimization
- Ask about their thought process`,

	domain.InterviewSystemDesign: `
- Start with basic architecture for %[1]s level
- Focus on fundamental design principles
- Keep complexity appropriate to their experience`,
}
