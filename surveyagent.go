// Package surveyagent is a natural-language spreadsheet assistant.
//
// Usage:
//
//	ds, _ := dataset.ParseFile("notices.csv", data)
//	prof := profile.Build(ds)
//
//	planner := translator.NewOpenAI(translator.DefaultOpenAIConfig(apiKey))
//	p, _ := planner.CreatePlan(ctx, "SDVOSB solicitations posted in February", prof)
//
//	validated, _ := plan.Validate(p, prof)
//	result, _ := engine.Execute(validated, ds)
//	export.WriteXLSX(w, result)
//
// The translator is the only component that calls an external AI service.
// It receives column metadata and the user's request, and returns a
// declarative Plan. The engine applies the validated plan locally — it
// never calls out, never mutates the source dataset, and holds no state
// between invocations.
package surveyagent
