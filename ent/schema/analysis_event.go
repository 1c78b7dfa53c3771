package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnalysisEvent records one classification verdict for a learner request.
// Ambiguous verdicts and the clarification rounds that follow each get
// their own row, so the full resolution path of a request is replayable.
type AnalysisEvent struct {
	ent.Schema
}

func (AnalysisEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnalysisEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.Int("turn").
			Comment("Session-scoped turn number the verdict belongs to"),
		field.Int("round").
			Default(0).
			Comment("Clarification round, 0 for the initial request"),
		field.String("category").
			Comment("Request category: grammar, vocabulary, reading, composition, ..."),
		field.String("topic").
			Default("").
			Comment("Short topic the model identified"),
		field.String("summary").
			Default("").
			Comment("One-line restatement of what the learner wants"),
		field.Bool("ambiguous").
			Comment("Whether the verdict was ambiguous"),
		field.String("ambiguity_reason").
			Default("").
			Comment("Why the request was judged ambiguous; empty when clear"),
	}
}

func (AnalysisEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("category"),
	}
}
