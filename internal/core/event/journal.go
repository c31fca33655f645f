package event

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Record is the journal form of one event.
type Record struct {
	Name    string
	Payload json.RawMessage
}

// Describe encodes an event for the journal. The name is the Go type name
// without package, so "event.Damage" becomes "Damage".
func Describe(ev any) (Record, error) {
	t := reflect.TypeOf(ev)
	if t == nil {
		return Record{}, fmt.Errorf("describe: nil event")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return Record{}, fmt.Errorf("describe %s: %w", name, err)
	}
	return Record{Name: name, Payload: payload}, nil
}
