// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/kotoba-ai/kotoba/ent/analysisevent"
	"github.com/kotoba-ai/kotoba/ent/predicate"
)

// AnalysisEventUpdate is the builder for updating AnalysisEvent entities.
type AnalysisEventUpdate struct {
	config
	hooks    []Hook
	mutation *AnalysisEventMutation
}

// Where appends a list predicates to the AnalysisEventUpdate builder.
func (_u *AnalysisEventUpdate) Where(ps ...predicate.AnalysisEvent) *AnalysisEventUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetSessionID sets the "session_id" field.
func (_u *AnalysisEventUpdate) SetSessionID(v string) *AnalysisEventUpdate {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *AnalysisEventUpdate) SetNillableSessionID(v *string) *AnalysisEventUpdate {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetTurn sets the "turn" field.
func (_u *AnalysisEventUpdate) SetTurn(v int) *AnalysisEventUpdate {
	_u.mutation.ResetTurn()
	_u.mutation.SetTurn(v)
	return _u
}

// SetNillableTurn sets the "turn" field if the given value is not nil.
func (_u *AnalysisEventUpdate) SetNillableTurn(v *int) *AnalysisEventUpdate {
	if v != nil {
		_u.SetTurn(*v)
	}
	return _u
}

// AddTurn adds value to the "turn" field.
func (_u *AnalysisEventUpdate) AddTurn(v int) *AnalysisEventUpdate {
	_u.mutation.AddTurn(v)
	return _u
}

// SetRound sets the "round" field.
func (_u *AnalysisEventUpdate) SetRound(v int) *AnalysisEventUpdate {
	_u.mutation.ResetRound()
	_u.mutation.SetRound(v)
	return _u
}

// SetNillableRound sets the "round" field if the given value is not nil.
func (_u *AnalysisEventUpdate) SetNillableRound(v *int) *AnalysisEventUpdate {
	if v != nil {
		_u.SetRound(*v)
	}
	return _u
}

// AddRound adds value to the "round" field.
func (_u *AnalysisEventUpdate) AddRound(v int) *AnalysisEventUpdate {
	_u.mutation.AddRound(v)
	return _u
}

// SetCategory sets the "category" field.
func (_u *AnalysisEventUpdate) SetCategory(v string) *AnalysisEventUpdate {
	_u.mutation.SetCategory(v)
	return _u
}

// SetNillableCategory sets the "category" field if the given value is not nil.
func (_u *AnalysisEventUpdate) SetNillableCategory(v *string) *AnalysisEventUpdate {
	if v != nil {
		_u.SetCategory(*v)
	}
	return _u
}

// SetTopic sets the "topic" field.
func (_u *AnalysisEventUpdate) SetTopic(v string) *AnalysisEventUpdate {
	_u.mutation.SetTopic(v)
	return _u
}

// SetNillableTopic sets the "topic" field if the given value is not nil.
func (_u *AnalysisEventUpdate) SetNillableTopic(v *string) *AnalysisEventUpdate {
	if v != nil {
		_u.SetTopic(*v)
	}
	return _u
}

// SetSummary sets the "summary" field.
func (_u *AnalysisEventUpdate) SetSummary(v string) *AnalysisEventUpdate {
	_u.mutation.SetSummary(v)
	return _u
}

// SetNillableSummary sets the "summary" field if the given value is not nil.
func (_u *AnalysisEventUpdate) SetNillableSummary(v *string) *AnalysisEventUpdate {
	if v != nil {
		_u.SetSummary(*v)
	}
	return _u
}

// SetAmbiguous sets the "ambiguous" field.
func (_u *AnalysisEventUpdate) SetAmbiguous(v bool) *AnalysisEventUpdate {
	_u.mutation.SetAmbiguous(v)
	return _u
}

// SetNillableAmbiguous sets the "ambiguous" field if the given value is not nil.
func (_u *AnalysisEventUpdate) SetNillableAmbiguous(v *bool) *AnalysisEventUpdate {
	if v != nil {
		_u.SetAmbiguous(*v)
	}
	return _u
}

// SetAmbiguityReason sets the "ambiguity_reason" field.
func (_u *AnalysisEventUpdate) SetAmbiguityReason(v string) *AnalysisEventUpdate {
	_u.mutation.SetAmbiguityReason(v)
	return _u
}

// SetNillableAmbiguityReason sets the "ambiguity_reason" field if the given value is not nil.
func (_u *AnalysisEventUpdate) SetNillableAmbiguityReason(v *string) *AnalysisEventUpdate {
	if v != nil {
		_u.SetAmbiguityReason(*v)
	}
	return _u
}

// Mutation returns the AnalysisEventMutation object of the builder.
func (_u *AnalysisEventUpdate) Mutation() *AnalysisEventMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *AnalysisEventUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *AnalysisEventUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *AnalysisEventUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *AnalysisEventUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *AnalysisEventUpdate) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := analysisevent.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "AnalysisEvent.session_id": %w`, err)}
		}
	}
	return nil
}

func (_u *AnalysisEventUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(analysisevent.Table, analysisevent.Columns, sqlgraph.NewFieldSpec(analysisevent.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(analysisevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Turn(); ok {
		_spec.SetField(analysisevent.FieldTurn, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTurn(); ok {
		_spec.AddField(analysisevent.FieldTurn, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Round(); ok {
		_spec.SetField(analysisevent.FieldRound, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedRound(); ok {
		_spec.AddField(analysisevent.FieldRound, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Category(); ok {
		_spec.SetField(analysisevent.FieldCategory, field.TypeString, value)
	}
	if value, ok := _u.mutation.Topic(); ok {
		_spec.SetField(analysisevent.FieldTopic, field.TypeString, value)
	}
	if value, ok := _u.mutation.Summary(); ok {
		_spec.SetField(analysisevent.FieldSummary, field.TypeString, value)
	}
	if value, ok := _u.mutation.Ambiguous(); ok {
		_spec.SetField(analysisevent.FieldAmbiguous, field.TypeBool, value)
	}
	if value, ok := _u.mutation.AmbiguityReason(); ok {
		_spec.SetField(analysisevent.FieldAmbiguityReason, field.TypeString, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{analysisevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// AnalysisEventUpdateOne is the builder for updating a single AnalysisEvent entity.
type AnalysisEventUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *AnalysisEventMutation
}

// SetSessionID sets the "session_id" field.
func (_u *AnalysisEventUpdateOne) SetSessionID(v string) *AnalysisEventUpdateOne {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *AnalysisEventUpdateOne) SetNillableSessionID(v *string) *AnalysisEventUpdateOne {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetTurn sets the "turn" field.
func (_u *AnalysisEventUpdateOne) SetTurn(v int) *AnalysisEventUpdateOne {
	_u.mutation.ResetTurn()
	_u.mutation.SetTurn(v)
	return _u
}

// SetNillableTurn sets the "turn" field if the given value is not nil.
func (_u *AnalysisEventUpdateOne) SetNillableTurn(v *int) *AnalysisEventUpdateOne {
	if v != nil {
		_u.SetTurn(*v)
	}
	return _u
}

// AddTurn adds value to the "turn" field.
func (_u *AnalysisEventUpdateOne) AddTurn(v int) *AnalysisEventUpdateOne {
	_u.mutation.AddTurn(v)
	return _u
}

// SetRound sets the "round" field.
func (_u *AnalysisEventUpdateOne) SetRound(v int) *AnalysisEventUpdateOne {
	_u.mutation.ResetRound()
	_u.mutation.SetRound(v)
	return _u
}

// SetNillableRound sets the "round" field if the given value is not nil.
func (_u *AnalysisEventUpdateOne) SetNillableRound(v *int) *AnalysisEventUpdateOne {
	if v != nil {
		_u.SetRound(*v)
	}
	return _u
}

// AddRound adds value to the "round" field.
func (_u *AnalysisEventUpdateOne) AddRound(v int) *AnalysisEventUpdateOne {
	_u.mutation.AddRound(v)
	return _u
}

// SetCategory sets the "category" field.
func (_u *AnalysisEventUpdateOne) SetCategory(v string) *AnalysisEventUpdateOne {
	_u.mutation.SetCategory(v)
	return _u
}

// SetNillableCategory sets the "category" field if the given value is not nil.
func (_u *AnalysisEventUpdateOne) SetNillableCategory(v *string) *AnalysisEventUpdateOne {
	if v != nil {
		_u.SetCategory(*v)
	}
	return _u
}

// SetTopic sets the "topic" field.
func (_u *AnalysisEventUpdateOne) SetTopic(v string) *AnalysisEventUpdateOne {
	_u.mutation.SetTopic(v)
	return _u
}

// SetNillableTopic sets the "topic" field if the given value is not nil.
func (_u *AnalysisEventUpdateOne) SetNillableTopic(v *string) *AnalysisEventUpdateOne {
	if v != nil {
		_u.SetTopic(*v)
	}
	return _u
}

// SetSummary sets the "summary" field.
func (_u *AnalysisEventUpdateOne) SetSummary(v string) *AnalysisEventUpdateOne {
	_u.mutation.SetSummary(v)
	return _u
}

// SetNillableSummary sets the "summary" field if the given value is not nil.
func (_u *AnalysisEventUpdateOne) SetNillableSummary(v *string) *AnalysisEventUpdateOne {
	if v != nil {
		_u.SetSummary(*v)
	}
	return _u
}

// SetAmbiguous sets the "ambiguous" field.
func (_u *AnalysisEventUpdateOne) SetAmbiguous(v bool) *AnalysisEventUpdateOne {
	_u.mutation.SetAmbiguous(v)
	return _u
}

// SetNillableAmbiguous sets the "ambiguous" field if the given value is not nil.
func (_u *AnalysisEventUpdateOne) SetNillableAmbiguous(v *bool) *AnalysisEventUpdateOne {
	if v != nil {
		_u.SetAmbiguous(*v)
	}
	return _u
}

// SetAmbiguityReason sets the "ambiguity_reason" field.
func (_u *AnalysisEventUpdateOne) SetAmbiguityReason(v string) *AnalysisEventUpdateOne {
	_u.mutation.SetAmbiguityReason(v)
	return _u
}

// SetNillableAmbiguityReason sets the "ambiguity_reason" field if the given value is not nil.
func (_u *AnalysisEventUpdateOne) SetNillableAmbiguityReason(v *string) *AnalysisEventUpdateOne {
	if v != nil {
		_u.SetAmbiguityReason(*v)
	}
	return _u
}

// Mutation returns the AnalysisEventMutation object of the builder.
func (_u *AnalysisEventUpdateOne) Mutation() *AnalysisEventMutation {
	return _u.mutation
}

// Where appends a list predicates to the AnalysisEventUpdate builder.
func (_u *AnalysisEventUpdateOne) Where(ps ...predicate.AnalysisEvent) *AnalysisEventUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *AnalysisEventUpdateOne) Select(field string, fields ...string) *AnalysisEventUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated AnalysisEvent entity.
func (_u *AnalysisEventUpdateOne) Save(ctx context.Context) (*AnalysisEvent, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *AnalysisEventUpdateOne) SaveX(ctx context.Context) *AnalysisEvent {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *AnalysisEventUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *AnalysisEventUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *AnalysisEventUpdateOne) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := analysisevent.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "AnalysisEvent.session_id": %w`, err)}
		}
	}
	return nil
}

func (_u *AnalysisEventUpdateOne) sqlSave(ctx context.Context) (_node *AnalysisEvent, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(analysisevent.Table, analysisevent.Columns, sqlgraph.NewFieldSpec(analysisevent.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "AnalysisEvent.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, analysisevent.FieldID)
		for _, f := range fields {
			if !analysisevent.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != analysisevent.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(analysisevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Turn(); ok {
		_spec.SetField(analysisevent.FieldTurn, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTurn(); ok {
		_spec.AddField(analysisevent.FieldTurn, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Round(); ok {
		_spec.SetField(analysisevent.FieldRound, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedRound(); ok {
		_spec.AddField(analysisevent.FieldRound, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Category(); ok {
		_spec.SetField(analysisevent.FieldCategory, field.TypeString, value)
	}
	if value, ok := _u.mutation.Topic(); ok {
		_spec.SetField(analysisevent.FieldTopic, field.TypeString, value)
	}
	if value, ok := _u.mutation.Summary(); ok {
		_spec.SetField(analysisevent.FieldSummary, field.TypeString, value)
	}
	if value, ok := _u.mutation.Ambiguous(); ok {
		_spec.SetField(analysisevent.FieldAmbiguous, field.TypeBool, value)
	}
	if value, ok := _u.mutation.AmbiguityReason(); ok {
		_spec.SetField(analysisevent.FieldAmbiguityReason, field.TypeString, value)
	}
	_node = &AnalysisEvent{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{analysisevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
