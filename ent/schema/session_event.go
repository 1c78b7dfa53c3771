package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records session lifecycle transitions: a request arriving,
// a clarification question going out, resolution, abandonment, reset.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("action").
			NotEmpty().
			Comment("request, clarify, resolve, abandon, reset"),
		field.Int("turn").
			Default(0).
			Comment("Session-scoped turn number"),
		field.Int("rounds").
			Default(0).
			Comment("Clarification rounds used (on resolve/abandon)"),
		field.String("category").
			Default("").
			Comment("Final category (on resolve only)"),
		field.String("topic").
			Default("").
			Comment("Final topic (on resolve only)"),
		field.String("detail").
			Default("").
			Comment("Free-form detail: clarification question text, abandon reason"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
