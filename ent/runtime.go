// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/kotoba-ai/kotoba/ent/analysisevent"
	"github.com/kotoba-ai/kotoba/ent/llmrequestevent"
	"github.com/kotoba-ai/kotoba/ent/schema"
	"github.com/kotoba-ai/kotoba/ent/sessionevent"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	analysiseventMixin := schema.AnalysisEvent{}.Mixin()
	analysiseventMixinFields0 := analysiseventMixin[0].Fields()
	_ = analysiseventMixinFields0
	analysiseventFields := schema.AnalysisEvent{}.Fields()
	_ = analysiseventFields
	// analysiseventDescTimestamp is the schema descriptor for timestamp field.
	analysiseventDescTimestamp := analysiseventMixinFields0[1].Descriptor()
	// analysisevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	analysisevent.DefaultTimestamp = analysiseventDescTimestamp.Default.(func() time.Time)
	// analysiseventDescSessionID is the schema descriptor for session_id field.
	analysiseventDescSessionID := analysiseventFields[0].Descriptor()
	// analysisevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	analysisevent.SessionIDValidator = analysiseventDescSessionID.Validators[0].(func(string) error)
	// analysiseventDescRound is the schema descriptor for round field.
	analysiseventDescRound := analysiseventFields[2].Descriptor()
	// analysisevent.DefaultRound holds the default value on creation for the round field.
	analysisevent.DefaultRound = analysiseventDescRound.Default.(int)
	// analysiseventDescTopic is the schema descriptor for topic field.
	analysiseventDescTopic := analysiseventFields[4].Descriptor()
	// analysisevent.DefaultTopic holds the default value on creation for the topic field.
	analysisevent.DefaultTopic = analysiseventDescTopic.Default.(string)
	// analysiseventDescSummary is the schema descriptor for summary field.
	analysiseventDescSummary := analysiseventFields[5].Descriptor()
	// analysisevent.DefaultSummary holds the default value on creation for the summary field.
	analysisevent.DefaultSummary = analysiseventDescSummary.Default.(string)
	// analysiseventDescAmbiguityReason is the schema descriptor for ambiguity_reason field.
	analysiseventDescAmbiguityReason := analysiseventFields[7].Descriptor()
	// analysisevent.DefaultAmbiguityReason holds the default value on creation for the ambiguity_reason field.
	analysisevent.DefaultAmbiguityReason = analysiseventDescAmbiguityReason.Default.(string)
	llmrequesteventMixin := schema.LLMRequestEvent{}.Mixin()
	llmrequesteventMixinFields0 := llmrequesteventMixin[0].Fields()
	_ = llmrequesteventMixinFields0
	llmrequesteventFields := schema.LLMRequestEvent{}.Fields()
	_ = llmrequesteventFields
	// llmrequesteventDescTimestamp is the schema descriptor for timestamp field.
	llmrequesteventDescTimestamp := llmrequesteventMixinFields0[1].Descriptor()
	// llmrequestevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	llmrequestevent.DefaultTimestamp = llmrequesteventDescTimestamp.Default.(func() time.Time)
	// llmrequesteventDescInputTokens is the schema descriptor for input_tokens field.
	llmrequesteventDescInputTokens := llmrequesteventFields[3].Descriptor()
	// llmrequestevent.DefaultInputTokens holds the default value on creation for the input_tokens field.
	llmrequestevent.DefaultInputTokens = llmrequesteventDescInputTokens.Default.(int)
	// llmrequesteventDescOutputTokens is the schema descriptor for output_tokens field.
	llmrequesteventDescOutputTokens := llmrequesteventFields[4].Descriptor()
	// llmrequestevent.DefaultOutputTokens holds the default value on creation for the output_tokens field.
	llmrequestevent.DefaultOutputTokens = llmrequesteventDescOutputTokens.Default.(int)
	// llmrequesteventDescLatencyMs is the schema descriptor for latency_ms field.
	llmrequesteventDescLatencyMs := llmrequesteventFields[5].Descriptor()
	// llmrequestevent.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	llmrequestevent.DefaultLatencyMs = llmrequesteventDescLatencyMs.Default.(int64)
	// llmrequesteventDescErrorMessage is the schema descriptor for error_message field.
	llmrequesteventDescErrorMessage := llmrequesteventFields[7].Descriptor()
	// llmrequestevent.DefaultErrorMessage holds the default value on creation for the error_message field.
	llmrequestevent.DefaultErrorMessage = llmrequesteventDescErrorMessage.Default.(string)
	// llmrequesteventDescRequestBody is the schema descriptor for request_body field.
	llmrequesteventDescRequestBody := llmrequesteventFields[8].Descriptor()
	// llmrequestevent.DefaultRequestBody holds the default value on creation for the request_body field.
	llmrequestevent.DefaultRequestBody = llmrequesteventDescRequestBody.Default.(string)
	// llmrequesteventDescResponseBody is the schema descriptor for response_body field.
	llmrequesteventDescResponseBody := llmrequesteventFields[9].Descriptor()
	// llmrequestevent.DefaultResponseBody holds the default value on creation for the response_body field.
	llmrequestevent.DefaultResponseBody = llmrequesteventDescResponseBody.Default.(string)
	sessioneventMixin := schema.SessionEvent{}.Mixin()
	sessioneventMixinFields0 := sessioneventMixin[0].Fields()
	_ = sessioneventMixinFields0
	sessioneventFields := schema.SessionEvent{}.Fields()
	_ = sessioneventFields
	// sessioneventDescTimestamp is the schema descriptor for timestamp field.
	sessioneventDescTimestamp := sessioneventMixinFields0[1].Descriptor()
	// sessionevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	sessionevent.DefaultTimestamp = sessioneventDescTimestamp.Default.(func() time.Time)
	// sessioneventDescSessionID is the schema descriptor for session_id field.
	sessioneventDescSessionID := sessioneventFields[0].Descriptor()
	// sessionevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	sessionevent.SessionIDValidator = sessioneventDescSessionID.Validators[0].(func(string) error)
	// sessioneventDescAction is the schema descriptor for action field.
	sessioneventDescAction := sessioneventFields[1].Descriptor()
	// sessionevent.ActionValidator is a validator for the "action" field. It is called by the builders before save.
	sessionevent.ActionValidator = sessioneventDescAction.Validators[0].(func(string) error)
	// sessioneventDescTurn is the schema descriptor for turn field.
	sessioneventDescTurn := sessioneventFields[2].Descriptor()
	// sessionevent.DefaultTurn holds the default value on creation for the turn field.
	sessionevent.DefaultTurn = sessioneventDescTurn.Default.(int)
	// sessioneventDescRounds is the schema descriptor for rounds field.
	sessioneventDescRounds := sessioneventFields[3].Descriptor()
	// sessionevent.DefaultRounds holds the default value on creation for the rounds field.
	sessionevent.DefaultRounds = sessioneventDescRounds.Default.(int)
	// sessioneventDescCategory is the schema descriptor for category field.
	sessioneventDescCategory := sessioneventFields[4].Descriptor()
	// sessionevent.DefaultCategory holds the default value on creation for the category field.
	sessionevent.DefaultCategory = sessioneventDescCategory.Default.(string)
	// sessioneventDescTopic is the schema descriptor for topic field.
	sessioneventDescTopic := sessioneventFields[5].Descriptor()
	// sessionevent.DefaultTopic holds the default value on creation for the topic field.
	sessionevent.DefaultTopic = sessioneventDescTopic.Default.(string)
	// sessioneventDescDetail is the schema descriptor for detail field.
	sessioneventDescDetail := sessioneventFields[6].Descriptor()
	// sessionevent.DefaultDetail holds the default value on creation for the detail field.
	sessionevent.DefaultDetail = sessioneventDescDetail.Default.(string)
}
