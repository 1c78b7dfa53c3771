package store

import (
	"context"
	"fmt"

	"github.com/kotoba-ai/kotoba/ent"
	"github.com/kotoba-ai/kotoba/ent/sessionevent"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.SessionEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetAction(data.Action).
		SetTurn(data.Turn).
		SetRounds(data.Rounds).
		SetCategory(data.Category).
		SetTopic(data.Topic).
		SetDetail(data.Detail).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	q := r.client.SessionEvent.Query().
		Order(ent.Asc(sessionevent.FieldSequence))

	if opts.SessionID != "" {
		q = q.Where(sessionevent.SessionID(opts.SessionID))
	}
	if opts.After > 0 {
		q = q.Where(sessionevent.SequenceGT(opts.After))
	}
	if !opts.From.IsZero() {
		q = q.Where(sessionevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		q = q.Where(sessionevent.TimestampLTE(opts.To))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}

	records := make([]SessionEventRecord, 0, len(events))
	for _, e := range events {
		records = append(records, SessionEventRecord{
			ID:        e.ID,
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			SessionEventData: SessionEventData{
				SessionID: e.SessionID,
				Action:    e.Action,
				Turn:      e.Turn,
				Rounds:    e.Rounds,
				Category:  e.Category,
				Topic:     e.Topic,
				Detail:    e.Detail,
			},
		})
	}
	return records, nil
}
