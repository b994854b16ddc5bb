package overlay

import (
	"encoding/json"

	"tableflip.dev/satcat/pkg/node"
)

// Marshal serialises an overlay record.
func Marshal(o Overlay) ([]byte, error) {
	if o.Modified == nil {
		o.Modified = []*node.Node{}
	}
	if o.Added == nil {
		o.Added = []*node.Node{}
	}
	if o.Deleted == nil {
		o.Deleted = []string{}
	}
	return json.Marshal(o)
}

// Unmarshal deserialises an overlay record. Missing sections are empty.
func Unmarshal(data []byte) (Overlay, error) {
	o := Empty()
	if err := json.Unmarshal(data, &o); err != nil {
		return Empty(), err
	}
	if o.Modified == nil {
		o.Modified = []*node.Node{}
	}
	if o.Added == nil {
		o.Added = []*node.Node{}
	}
	if o.Deleted == nil {
		o.Deleted = []string{}
	}
	return o, nil
}
