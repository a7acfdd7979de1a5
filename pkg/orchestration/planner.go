package orchestration

// GenerationTask is one slice of the app a single LLM call is responsible
// for. Tasks run in order; later tasks see the paths earlier tasks produced
// and overwrite by path on collision.
type GenerationTask struct {
	Area string
}

// PlanTasks splits a requirement into generation tasks. The split is
// static: small apps always decompose into scaffold, shared state, and
// components, and a fixed plan keeps task prompts focused without another
// LLM round-trip.
func PlanTasks(requirement string) []GenerationTask {
	return []GenerationTask{
		{Area: "project scaffold (index.html, package.json, src/main.tsx, src/App.tsx)"},
		{Area: "shared state (context modules under context/, one <Name>Context file per state concern)"},
		{Area: "components (files under components/ wired into src/App.tsx)"},
	}
}
