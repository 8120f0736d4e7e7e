package domain

import (
	"strconv"
	"strings"
)

// Level describes one tier of the agent-sophistication taxonomy.
type Level struct {
	// Number is the narrative level, from -1 (Fixed Automation) to 7 (Self-Learning).
	Number int

	// Slug is a stable lowercase identifier (e.g. "react", "self-learning").
	Slug string

	Title   string
	Summary string

	// Dir is the guide directory for this level (e.g. "01-ReAct").
	Dir string

	Characteristics []string
	UseCases        []string
	Limitations     []string

	// HasExample reports whether the guide ships a runnable example for this level.
	HasExample bool
}

// Label renders the level the way the guide titles it, e.g. "Level 1: ReAct".
func (l Level) Label() string {
	return "Level " + strconv.Itoa(l.Number) + ": " + l.Title
}

// Levels returns the full taxonomy in ascending order.
//
// Summaries and trait lists come from the guide's level READMEs; the three
// lowest tiers additionally ship runnable weather-agent examples.
func Levels() []Level {
	return []Level{
		{
			Number:  -1,
			Slug:    "fixed-automation",
			Title:   "Fixed Automation",
			Dir:     "00-Fixed-Automation",
			Summary: "Rigid, pre-programmed behavior with no decision making. Highly efficient for repetitive tasks, fails on anything unplanned.",
			Characteristics: []string{
				"Follows exact, predetermined steps",
				"No adaptation to unexpected inputs",
				"Predictable, scripted behavior",
				"High efficiency for repetitive tasks",
			},
			UseCases: []string{
				"Scheduled report generation",
				"Data pipeline steps",
				"Batch file processing",
			},
			Limitations: []string{
				"Fails when encountering unplanned scenarios",
				"No retry logic or error recovery",
				"Cannot interpret intent",
			},
			HasExample: true,
		},
		{
			Number:  0,
			Slug:    "llm-enhanced",
			Title:   "LLM-Enhanced",
			Dir:     "00-LLM-Enhanced",
			Summary: "A fixed workflow with a language model in the loop. Understands phrasing variations but operates inside strict boundaries.",
			Characteristics: []string{
				"Natural language understanding",
				"Contextual responses within a narrow domain",
				"Boundary enforcement and safety filtering",
			},
			UseCases: []string{
				"Domain-restricted Q&A",
				"Intent extraction front-ends",
				"Conversational wrappers over fixed services",
			},
			Limitations: []string{
				"Cannot act outside its allowed domain",
				"No planning or multi-step reasoning",
				"No memory beyond a bounded history",
			},
			HasExample: true,
		},
		{
			Number:  1,
			Slug:    "react",
			Title:   "ReAct",
			Dir:     "01-ReAct",
			Summary: "Reason-and-act loops: strategic thinking, task decomposition, and adaptive multi-step planning.",
			Characteristics: []string{
				"Strategic thinking and planning",
				"Multi-step decision making",
				"Dynamic problem solving",
				"Task decomposition",
				"Adaptive planning",
				"Self-correcting behavior",
			},
			UseCases: []string{
				"Strategic planning",
				"Project management",
				"Research tasks",
				"Problem diagnosis",
				"Workflow optimization",
			},
			Limitations: []string{
				"Cannot access real-time external data",
				"Cannot learn from past interactions",
				"No tool integration capabilities",
				"No memory of past experiences",
			},
			HasExample: true,
		},
		{
			Number:  2,
			Slug:    "react-rag",
			Title:   "ReAct+RAG",
			Dir:     "02-ReAct-RAG",
			Summary: "ReAct loops grounded in retrieved knowledge: the agent consults a corpus before reasoning.",
			Characteristics: []string{
				"Knowledge-grounded reasoning",
				"Reduced hallucination through retrieval",
				"Domain corpora as working context",
			},
			UseCases: []string{
				"Documentation assistants",
				"Support agents over a knowledge base",
				"Research synthesis",
			},
			Limitations: []string{
				"Bounded by corpus quality and freshness",
				"Still no persistent memory or tools",
			},
		},
		{
			Number:  3,
			Slug:    "tool-enhanced",
			Title:   "Tool-Enhanced",
			Dir:     "03-Tool-Enhanced",
			Summary: "Agents that call external tools and APIs as part of their reasoning loop.",
			Characteristics: []string{
				"Tool selection and invocation",
				"Real-time external data access",
				"Action execution beyond text",
			},
			UseCases: []string{
				"Booking and scheduling agents",
				"Data-retrieval assistants",
				"Operations automation",
			},
			Limitations: []string{
				"Bounded by the registered tool set",
				"No self-evaluation of outcomes",
			},
		},
		{
			Number:  4,
			Slug:    "self-reflecting",
			Title:   "Self-Reflecting",
			Dir:     "04-Self-Reflecting",
			Summary: "Agents that critique and revise their own outputs before committing to them.",
			Characteristics: []string{
				"Output evaluation against criteria",
				"Iterative refinement",
				"Error detection in own reasoning",
			},
			UseCases: []string{
				"Code generation with review loops",
				"High-accuracy content drafting",
			},
			Limitations: []string{
				"Reflection adds latency and cost",
				"Critique quality bounded by the same model",
			},
		},
		{
			Number:  5,
			Slug:    "memory-enhanced",
			Title:   "Memory-Enhanced",
			Dir:     "05-Memory-Enhanced",
			Summary: "Agents with persistent memory across sessions: preferences, history, and learned context.",
			Characteristics: []string{
				"Long-term memory storage and recall",
				"Personalization over time",
				"Cross-session continuity",
			},
			UseCases: []string{
				"Personal assistants",
				"Long-running project collaborators",
			},
			Limitations: []string{
				"Memory curation and decay are unsolved",
				"Privacy and retention obligations",
			},
		},
		{
			Number:  6,
			Slug:    "environment-controller",
			Title:   "Environment Controller",
			Dir:     "06-Environment-Controller",
			Summary: "Agents that sense and act on a physical or digital environment, e.g. a smart building.",
			Characteristics: []string{
				"Sensor integration and actuation",
				"Closed-loop control with safety systems",
				"Real-world side effects",
			},
			UseCases: []string{
				"Smart building control",
				"Infrastructure orchestration",
			},
			Limitations: []string{
				"Safety violations have physical consequences",
				"Requires extensive guardrails",
			},
		},
		{
			Number:  7,
			Slug:    "self-learning",
			Title:   "Self-Learning",
			Dir:     "07-Self-Learning",
			Summary: "Agents that analyze their own experience and mutate their behavior to improve.",
			Characteristics: []string{
				"Experience analysis",
				"Behavioral mutation under safety constraints",
				"Autonomous improvement",
			},
			UseCases: []string{
				"Autonomous research agents",
				"Long-horizon optimization",
			},
			Limitations: []string{
				"Largely aspirational today",
				"Verification of learned behavior is an open problem",
			},
		},
	}
}

// LevelByNumber returns the level with the given number.
func LevelByNumber(n int) (Level, bool) {
	for _, l := range Levels() {
		if l.Number == n {
			return l, true
		}
	}
	return Level{}, false
}

// LevelBySlug returns the level with the given slug (case-insensitive).
func LevelBySlug(slug string) (Level, bool) {
	s := strings.ToLower(strings.TrimSpace(slug))
	for _, l := range Levels() {
		if l.Slug == s {
			return l, true
		}
	}
	return Level{}, false
}
