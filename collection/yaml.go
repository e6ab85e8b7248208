package collection

import (
	"fmt"

	errors2 "github.com/amp-labs/amp-collections/errors"
	"github.com/amp-labs/amp-collections/freeze"
	"github.com/amp-labs/amp-collections/maps"
	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes the collection as a YAML mapping that keeps insertion order.
func (c *Collection[K, V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for key, value := range c.store.All() {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(key); err != nil {
			return nil, fmt.Errorf("encoding key %v: %w", key, err)
		}

		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return nil, fmt.Errorf("encoding value of key %v: %w", key, err)
		}

		node.Content = append(node.Content, keyNode, valueNode)
	}

	return node, nil
}

// UnmarshalYAML replaces the contents of the collection with a YAML mapping, in document
// order, or a YAML sequence, keyed by position. A zero-value Collection is initialized.
// A frozen collection is left untouched and an *errors.ImmutabilityError is returned.
func (c *Collection[K, V]) UnmarshalYAML(value *yaml.Node) error {
	if c.store == nil {
		c.store = maps.NewOrdered[K, V]()
		c.guard = freeze.NewGuard(errors2.KindCollection)
	}

	if err := c.guard.Check("unmarshal"); err != nil {
		return err
	}

	if value.Kind == yaml.DocumentNode && len(value.Content) == 1 {
		value = value.Content[0]
	}

	store := maps.NewOrdered[K, V]()

	switch value.Kind { //nolint:exhaustive
	case yaml.MappingNode:
		for idx := 0; idx+1 < len(value.Content); idx += 2 {
			var (
				key K
				val V
			)

			if err := value.Content[idx].Decode(&key); err != nil {
				return fmt.Errorf("decoding key at line %d: %w", value.Content[idx].Line, err)
			}

			if err := value.Content[idx+1].Decode(&val); err != nil {
				return fmt.Errorf("decoding value of key %v: %w", key, err)
			}

			store.Add(key, val)
		}
	case yaml.SequenceNode:
		for idx, item := range value.Content {
			var val V
			if err := item.Decode(&val); err != nil {
				return fmt.Errorf("decoding item %d: %w", idx, err)
			}

			store.Add(keyFromIndex[K](idx), val)
		}
	default:
		return fmt.Errorf("%w: expected a YAML mapping or sequence at line %d", errors2.ErrWrongType, value.Line)
	}

	c.store = store

	return nil
}
