package store

import (
	"context"
	"fmt"

	"github.com/kotoba-ai/kotoba/ent"
	"github.com/kotoba-ai/kotoba/ent/analysisevent"
)

func (r *eventRepo) AppendAnalysis(ctx context.Context, data AnalysisEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.AnalysisEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetTurn(data.Turn).
		SetRound(data.Round).
		SetCategory(data.Category).
		SetTopic(data.Topic).
		SetSummary(data.Summary).
		SetAmbiguous(data.Ambiguous).
		SetAmbiguityReason(data.AmbiguityReason).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save analysis event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnalyses(ctx context.Context, opts QueryOpts) ([]AnalysisEventRecord, error) {
	q := r.client.AnalysisEvent.Query().
		Order(ent.Asc(analysisevent.FieldSequence))

	if opts.SessionID != "" {
		q = q.Where(analysisevent.SessionID(opts.SessionID))
	}
	if opts.After > 0 {
		q = q.Where(analysisevent.SequenceGT(opts.After))
	}
	if !opts.From.IsZero() {
		q = q.Where(analysisevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		q = q.Where(analysisevent.TimestampLTE(opts.To))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query analysis events: %w", err)
	}

	records := make([]AnalysisEventRecord, 0, len(events))
	for _, e := range events {
		records = append(records, AnalysisEventRecord{
			ID:        e.ID,
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			AnalysisEventData: AnalysisEventData{
				SessionID:       e.SessionID,
				Turn:            e.Turn,
				Round:           e.Round,
				Category:        e.Category,
				Topic:           e.Topic,
				Summary:         e.Summary,
				Ambiguous:       e.Ambiguous,
				AmbiguityReason: e.AmbiguityReason,
			},
		})
	}
	return records, nil
}
